package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfqa/internal/domain"
)

// QAPort is the TUI-facing subset of the query engine.
type QAPort interface {
	Answer(question string, k int) (string, error)
	Sources(question string, k int) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for the interactive question loop.
type Model struct {
	engine   QAPort
	input    textinput.Model
	viewport viewport.Model
	title    string
	status   string
	topK     int
	ready    bool
}

// New creates a new TUI model over an already-built index.
func New(engine QAPort, title string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:   engine,
		input:    ti,
		viewport: vp,
		title:    title,
		topK:     topK,
		status:   "Document indexed. Type a question.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around answer and question boxes
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header + status + question box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.viewport.SetContent(m.answer(q))
				m.input.SetValue("")
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) answer(question string) string {
	m.status = "Thinking..."
	text, err := m.engine.Answer(question, m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		return ""
	}
	if strings.TrimSpace(text) == "" {
		m.status = fmt.Sprintf("Answered %q", question)
		return "No relevant information found. Please try a different question."
	}
	m.status = fmt.Sprintf("Answered %q", question)
	sources, err := m.engine.Sources(question, m.topK)
	if err != nil || len(sources) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(sourceStyle.Render(renderSources(sources)))
	return b.String()
}

func renderSources(sources []domain.SearchResult) string {
	var b strings.Builder
	b.WriteString("Sources:")
	for i, s := range sources {
		b.WriteString(fmt.Sprintf("\n  %d. %s p.%d  score=%.3f", i+1, s.Entry.Source, s.Entry.Page, s.Score))
	}
	return b.String()
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF Q&A — " + m.title)
	answer := answerBoxStyle.Render(m.viewport.View())
	input := questionBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + answer + "\n" + input + "\n" + status
}

var (
	answerBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
