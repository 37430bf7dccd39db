package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
)

type fakeChatService struct {
	reply   string
	sendErr error
	history []domain.Turn
	resets  int
}

func (f *fakeChatService) Send(_ context.Context, message string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	pair := domain.NewTurnPair(message, f.reply)
	f.history = append(f.history, pair.User, pair.Assistant)
	return f.reply, nil
}

func (f *fakeChatService) Ask(
	_ context.Context, _ string, _ domain.RetrieveOptions,
) (*driving.GroundedAnswer, error) {
	return nil, nil
}

func (f *fakeChatService) History() []domain.Turn { return f.history }

func (f *fakeChatService) Reset() {
	f.resets++
	f.history = nil
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestNew_InitialState(t *testing.T) {
	m := New(&fakeChatService{})

	assert.False(t, m.waiting)
	assert.Contains(t, m.View(), "Loading...")
}

func TestUpdate_WindowSizeMakesReady(t *testing.T) {
	m := sized(New(&fakeChatService{}))

	view := m.View()
	assert.Contains(t, view, "Jarvis")
	assert.Contains(t, view, "No messages yet")
}

func TestUpdate_EnterSendsMessage(t *testing.T) {
	svc := &fakeChatService{reply: "Hello!"}
	m := sized(New(svc))
	m.input.SetValue("Hi there")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Equal(t, "Thinking...", m.status)
	assert.Empty(t, m.input.Value())

	// Run the async command, then feed its message back
	msg := cmd()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)

	updated, _ = m.Update(reply)
	m = updated.(Model)
	assert.False(t, m.waiting)
	assert.Contains(t, m.viewport.View(), "Hello!")
}

func TestUpdate_EmptyInputIgnored(t *testing.T) {
	svc := &fakeChatService{reply: "unused"}
	m := sized(New(svc))
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, svc.history)
}

func TestUpdate_SendErrorShownInStatus(t *testing.T) {
	svc := &fakeChatService{sendErr: domain.ErrLLMService}
	m := sized(New(svc))
	m.input.SetValue("Hi")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	assert.False(t, m.waiting)
	assert.Contains(t, m.status, "Error:")
}

func TestUpdate_CtrlRResets(t *testing.T) {
	svc := &fakeChatService{reply: "yes"}
	m := sized(New(svc))
	_, err := svc.Send(context.Background(), "hello")
	require.NoError(t, err)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	assert.Equal(t, 1, svc.resets)
	assert.Contains(t, m.status, "reset")
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := sized(New(&fakeChatService{}))

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
