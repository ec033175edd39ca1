// Package tui is the interactive chat session over the ingested guides.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dozuki/rag-guide-chat-poc/internal/answer"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

var (
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// Run opens the interactive chat loop. It returns when the user quits
// with Esc or Ctrl-C.
func Run(ctx context.Context, svc *answer.Service, siteID string) error {
	m := model{
		ctx:    ctx,
		svc:    svc,
		siteID: siteID,
	}
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// turn is one completed exchange rendered in the transcript.
type turn struct {
	question string
	answer   string
	sources  []api.SourceGuide
	err      error
	dur      time.Duration
}

// answerResultMsg conveys a finished answer back to Update.
type answerResultMsg struct {
	turn turn
}

type model struct {
	ctx    context.Context
	svc    *answer.Service
	siteID string

	turns   []turn
	input   string
	waiting bool
	width   int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case answerResultMsg:
		m.turns = append(m.turns, msg.turn)
		m.waiting = false
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			q := strings.TrimSpace(m.input)
			if q == "" {
				return m, nil
			}
			m.input = ""
			m.waiting = true
			return m, m.ask(q)
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				r := []rune(m.input)
				m.input = string(r[:len(r)-1])
			}
			return m, nil
		case tea.KeySpace:
			m.input += " "
			return m, nil
		case tea.KeyRunes:
			m.input += string(msg.Runes)
			return m, nil
		}
	}
	return m, nil
}

// ask runs the answer pipeline off the UI goroutine. History carries
// the prior transcript so follow-up questions resolve in context.
func (m model) ask(q string) tea.Cmd {
	history := make([]string, 0, len(m.turns)*2)
	for _, t := range m.turns {
		if t.err != nil {
			continue
		}
		history = append(history, "User: "+t.question, "Assistant: "+t.answer)
	}
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		start := time.Now()
		cctx, cancel := context.WithTimeout(ctx, 90*time.Second)
		defer cancel()
		res, err := svc.Answer(cctx, q, history)
		return answerResultMsg{turn: turn{
			question: q,
			answer:   res.Answer,
			sources:  res.SourceGuides,
			err:      err,
			dur:      time.Since(start),
		}}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(botStyle.Render("guidechat") + sourceStyle.Render(" — "+m.siteID) + "\n")
	b.WriteString(sourceStyle.Render("Ask about the ingested guides. Esc or Ctrl-C quits.") + "\n\n")

	for _, t := range m.turns {
		b.WriteString(userStyle.Render("you: ") + t.question + "\n")
		if t.err != nil {
			b.WriteString(errStyle.Render("error: "+t.err.Error()) + "\n\n")
			continue
		}
		b.WriteString(botStyle.Render("bot: ") + strings.TrimSpace(t.answer) + "\n")
		for _, g := range t.sources {
			b.WriteString(sourceStyle.Render("     ↳ "+g.Title) + "\n")
		}
		b.WriteString(sourceStyle.Render(fmt.Sprintf("     (%s)", t.dur.Round(time.Millisecond))) + "\n\n")
	}

	if m.waiting {
		b.WriteString(sourceStyle.Render("thinking…") + "\n")
	} else {
		b.WriteString(promptStyle.Render("> ") + m.input + "█\n")
	}
	return b.String()
}
