// Package tui is the terminal chat surface. It renders pipeline outputs
// only; all dialogue logic lives in the session package.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"carbongpt/internal/domain"
	"carbongpt/internal/sentence"
	"carbongpt/internal/session"
)

type entryKind int

const (
	entryQuestion entryKind = iota
	entryFollowUp
	entryAnswer
	entryClarification
	entrySources
	entryError
)

type entry struct {
	kind    entryKind
	text    string
	sources []domain.SignificantSource
}

// turnMsg carries the result of an asynchronous dialogue turn.
type turnMsg struct {
	turn session.Turn
	err  error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	sess     *session.Session
	input    textinput.Model
	viewport viewport.Model
	entries  []entry
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model bound to one dialogue session.
func New(sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about carbon standards (ctrl+n: new chat)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{sess: sess, input: ti, viewport: vp, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input box + spacer
		vh := msg.Height - reserved - fh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case turnMsg:
		m.waiting = false
		if msg.err != nil {
			m.entries = append(m.entries, entry{kind: entryError, text: msg.err.Error()})
			m.status = "Turn failed; the question is kept, press Enter to retry."
		} else if msg.turn.Clarification != "" {
			m.entries = append(m.entries, entry{kind: entryClarification, text: msg.turn.Clarification})
			m.status = "Clarification needed. Type your answer."
		} else {
			m.entries = append(m.entries, entry{kind: entryAnswer, text: msg.turn.Answer})
			if len(msg.turn.Sources) > 0 {
				m.entries = append(m.entries, entry{kind: entrySources, sources: msg.turn.Sources})
			}
			m.status = sentence.First(msg.turn.Answer)
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+n":
			m.sess.Reset()
			m.entries = nil
			m.status = "New chat."
			m.viewport.SetContent(m.renderHistory())
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			var cmd tea.Cmd
			if m.sess.State() == session.StateAwaitingClarification {
				m.entries = append(m.entries, entry{kind: entryFollowUp, text: q})
				m.status = "Generating refined answer..."
				cmd = m.followUpCmd(q)
			} else {
				m.entries = append(m.entries, entry{kind: entryQuestion, text: q})
				m.status = "Generating answer..."
				cmd = m.askCmd(q)
			}
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, cmd
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

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("carbongpt: ask about carbon standards")
	history := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) askCmd(query string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.sess.Ask(context.Background(), query)
		return turnMsg{turn: turn, err: err}
	}
}

func (m Model) followUpCmd(fragment string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.sess.FollowUp(context.Background(), fragment)
		return turnMsg{turn: turn, err: err}
	}
}

func (m Model) renderHistory() string {
	if len(m.entries) == 0 {
		return "No messages yet. Type a question and press Enter."
	}
	var parts []string
	for _, e := range m.entries {
		switch e.kind {
		case entryQuestion:
			parts = append(parts, questionStyle.Render("You: ")+e.text)
		case entryFollowUp:
			parts = append(parts, questionStyle.Render("Follow-up: ")+e.text)
		case entryAnswer:
			parts = append(parts, answerStyle.Render("Answer:")+"\n"+e.text)
		case entryClarification:
			parts = append(parts, clarifyStyle.Render("Clarification: ")+e.text)
		case entrySources:
			parts = append(parts, renderSources(e.sources))
		case entryError:
			parts = append(parts, errorStyle.Render("Error: ")+e.text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderSources(sources []domain.SignificantSource) string {
	var b strings.Builder
	b.WriteString(sourceHeadStyle.Render("Significant source documents:"))
	for _, src := range sources {
		line := fmt.Sprintf("\n- File: %s", src.Source)
		if src.Clause != "" && !strings.EqualFold(src.Clause, domain.ClauseUnknown) {
			line += fmt.Sprintf(" | Clause: %s", src.Clause)
		}
		b.WriteString(line)
	}
	return b.String()
}

var (
	chatBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle   = lipgloss.NewStyle().Bold(true)
	answerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	clarifyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
