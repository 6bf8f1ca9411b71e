package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"krishisahay/internal/assistant"
	"krishisahay/internal/lang"
)

// AssistantPort is the TUI-facing subset of the assistant service.
type AssistantPort interface {
	Ask(ctx context.Context, req assistant.AskRequest) assistant.AskResponse
	CorpusSize() int
	VectorReady() bool
}

// Model is the Bubble Tea model for the assistant chat.
type Model struct {
	service   AssistantPort
	input     textinput.Model
	viewport  viewport.Model
	language  lang.Language
	status    string
	ready     bool
	lastQuery string
	answer    string
	notice    string
}

// New creates a new TUI model instance.
func New(service AssistantPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your agriculture question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	mode := "keyword search"
	if service.VectorReady() {
		mode = "semantic + keyword search"
	}
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		language: lang.English,
		status:   fmt.Sprintf("Loaded %d Q&A pairs (%s). Tab toggles language.", service.CorpusSize(), mode),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + status + query frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				resp := m.service.Ask(context.Background(), assistant.AskRequest{
					Query:    q,
					Language: m.language,
				})
				m.lastQuery = q
				m.answer = resp.Answer
				m.notice = resp.Notice
				m.status = fmt.Sprintf("Answer for %q (%s)", q, resp.Source)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "tab":
			if m.language == lang.English {
				m.language = lang.Telugu
			} else {
				m.language = lang.English
			}
			if m.lastQuery != "" {
				resp := m.service.Ask(context.Background(), assistant.AskRequest{
					Query:    m.lastQuery,
					Language: m.language,
				})
				m.answer = resp.Answer
				m.notice = resp.Notice
				m.viewport.SetContent(m.renderAnswer())
			}
			m.status = fmt.Sprintf("Answer language: %s", m.language)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("KrishiSahay - Offline Agriculture Assistant")
	langLine := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Answer language: " + string(m.language))
	answer := answerBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + langLine + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if m.answer == "" {
		return "No answer yet. Ask about crop diseases, pests, fertilizers or government schemes."
	}
	out := m.answer
	if m.notice != "" {
		out = noticeStyle.Render(m.notice) + "\n\n" + out
	}
	return out
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
