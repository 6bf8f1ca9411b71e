package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishisahay/internal/assistant"
	"krishisahay/internal/lang"
)

type stubAssistant struct {
	lastReq assistant.AskRequest
	calls   int
}

func (s *stubAssistant) Ask(ctx context.Context, req assistant.AskRequest) assistant.AskResponse {
	s.calls++
	s.lastReq = req
	answer := "English answer"
	if req.Language == lang.Telugu {
		answer = "తెలుగు సమాధానం"
	}
	return assistant.AskResponse{Answer: answer, Source: "offline"}
}

func (s *stubAssistant) CorpusSize() int   { return 17 }
func (s *stubAssistant) VectorReady() bool { return false }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := New(&stubAssistant{})
	assert.Equal(t, "Loading...", m.View())
}

func TestEnterAsksAndRendersAnswer(t *testing.T) {
	stub := &stubAssistant{}
	m := New(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	m.input.SetValue("aphids in mustard")

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)

	require.Equal(t, 1, stub.calls)
	assert.Equal(t, "aphids in mustard", stub.lastReq.Query)
	assert.Equal(t, lang.English, stub.lastReq.Language)
	assert.Empty(t, m.input.Value(), "input clears after asking")
	assert.Contains(t, m.View(), "English answer")
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	stub := &stubAssistant{}
	m := New(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	m.input.SetValue("   ")

	updated, _ = m.Update(keyMsg("enter"))
	_ = updated

	assert.Zero(t, stub.calls)
}

func TestTabTogglesLanguageAndReasks(t *testing.T) {
	stub := &stubAssistant{}
	m := New(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	m.input.SetValue("aphids")
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)

	require.Equal(t, 2, stub.calls, "language toggle re-asks the last query")
	assert.Equal(t, lang.Telugu, stub.lastReq.Language)
	assert.Equal(t, "aphids", stub.lastReq.Query)
	assert.Contains(t, m.View(), "తెలుగు సమాధానం")

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)
	assert.Equal(t, lang.English, stub.lastReq.Language)
}

func TestTabWithoutQueryOnlyToggles(t *testing.T) {
	stub := &stubAssistant{}
	m := New(stub)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(Model)

	assert.Zero(t, stub.calls)
	assert.Equal(t, lang.Telugu, m.language)
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&stubAssistant{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
