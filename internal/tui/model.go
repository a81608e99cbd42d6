package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"embedlab/internal/models"
	"embedlab/internal/report"
)

// SearchPort is the TUI-facing subset of the similarity explorer.
type SearchPort interface {
	Search(query string, topK int) ([]models.ResultRow, error)
}

// Model is the Bubble Tea model for the explorer.
type Model struct {
	service   SearchPort
	modelName string
	topK      int

	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new explorer model.
func New(service SearchPort, modelName string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a sentence and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:   service,
		modelName: modelName,
		topK:      topK,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Type to search.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.String() == "esc" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.runQuery(q)
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runQuery(q string) Model {
	rows, err := m.service.Search(q, m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.viewport.SetContent("no results")
		return m
	}
	m.status = fmt.Sprintf("Results for %q", q)
	var b strings.Builder
	b.WriteString(report.Table(rows))
	b.WriteString("\n")
	b.WriteString(report.Bars(rows))
	b.WriteString("\n")
	b.WriteString(report.Summary(rows, m.modelName))
	m.viewport.SetContent(b.String())
	return m
}

// View renders the explorer layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Embedding Similarity Explorer")
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + results + "\n" + input + "\n" + status
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
