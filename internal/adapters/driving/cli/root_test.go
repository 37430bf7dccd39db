package cli

import (
	"bytes"
	"context"

	configfile "github.com/Jpmac110205/jarvis/internal/adapters/driven/config/file"
	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
)

// --- Test service stubs ---

type stubIngestor struct {
	stats       *driving.IngestStats
	ingestErr   error
	gotSettings domain.IngestSettings
}

func (s *stubIngestor) Ingest(
	_ context.Context, settings domain.IngestSettings,
) (*driving.IngestStats, error) {
	s.gotSettings = settings
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	return s.stats, nil
}

type stubChatService struct {
	reply   string
	answer  *driving.GroundedAnswer
	err     error
	history []domain.Turn
	gotOpts domain.RetrieveOptions
}

func (s *stubChatService) Send(_ context.Context, message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	pair := domain.NewTurnPair(message, s.reply)
	s.history = append(s.history, pair.User, pair.Assistant)
	return s.reply, nil
}

func (s *stubChatService) Ask(
	_ context.Context, _ string, opts domain.RetrieveOptions,
) (*driving.GroundedAnswer, error) {
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func (s *stubChatService) History() []domain.Turn { return s.history }

func (s *stubChatService) Reset() { s.history = nil }

// setupTestServices installs stub services and temp-dir stores, and
// returns a cleanup that restores the globals.
func setupTestServices(tmpDir string) func() {
	oldConfig, oldPrompt := configStore, promptStore
	oldIngestor, oldChat := ingestor, chatService

	store, err := configfile.NewConfigStore(tmpDir)
	if err != nil {
		panic(err)
	}
	prompts, err := configfile.NewPromptStore(tmpDir + "/prompts")
	if err != nil {
		panic(err)
	}

	configStore = store
	promptStore = prompts
	ingestor = &stubIngestor{stats: &driving.IngestStats{Documents: 2, Chunks: 5, IndexSize: 5}}
	chatService = &stubChatService{
		reply:  "stub reply",
		answer: &driving.GroundedAnswer{Answer: "stub answer"},
	}

	return func() {
		configStore, promptStore = oldConfig, oldPrompt
		ingestor, chatService = oldIngestor, oldChat
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
