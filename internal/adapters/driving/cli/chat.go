package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Jarvis in the terminal",
	Long: `Starts an interactive conversation. Jarvis keeps the history for the
session and weaves your documents, citing them when it uses them.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	svc, err := buildChatService()
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(svc), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
