// Package tui is a bubbletea inspector for the parser: type a line, see
// its tree, optionally with the token stream and diagnostics.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/foundation/ghll/printer"
)

// entry is one processed line in the scrollback
type entry struct {
	line   string
	result *ghll.Result
	err    error
}

// Model is the main TUI model
type Model struct {
	// State
	width      int
	height     int
	ready      bool
	showTokens bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	engine  *ghll.Engine
	entries []entry
}

// NewModel creates a new TUI model around engine
func NewModel(engine *ghll.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "1 + 2 - 3"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = engine.MaxInputLength()
	ti.Width = 76

	return Model{
		input:   ti,
		engine:  engine,
		entries: []entry{},
	}
}

// Run starts the TUI on the alternate screen and blocks until it quits
func Run(engine *ghll.Engine) error {
	p := tea.NewProgram(NewModel(engine), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.showTokens = !m.showTokens
			m.updateContent()
			return m, nil

		case "ctrl+l":
			m.entries = []entry{}
			m.updateContent()
			return m, nil

		case "enter":
			line := m.input.Value()
			if strings.TrimSpace(line) != "" {
				res, err := m.engine.Process(context.Background(), line)
				m.entries = append(m.entries, entry{line: line, result: res, err: err})
				m.input.Reset()
				m.updateContent()
				m.viewport.GotoBottom()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := max(msg.Height-6, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = 2
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = max(msg.Width-8, 10)
		m.updateContent()
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// updateContent re-renders the scrollback into the viewport
func (m *Model) updateContent() {
	m.viewport.SetContent(m.renderEntries())
}

func (m *Model) renderEntries() string {
	if len(m.entries) == 0 {
		return SubtitleStyle.Render("Type an arithmetic line and press Enter.")
	}

	var s strings.Builder
	for _, e := range m.entries {
		s.WriteString(LineStyle.Render("> " + e.line))
		s.WriteString("\n")

		if e.err != nil {
			s.WriteString(RenderError(e.err.Error()))
			s.WriteString("\n\n")
			continue
		}

		for _, line := range e.result.Tree {
			s.WriteString(TreeStyle.Render(line))
			s.WriteString("\n")
		}
		if m.showTokens {
			for _, line := range printer.RenderTokens(e.result.Tokens) {
				s.WriteString(TokenStyle.Render("  " + line))
				s.WriteString("\n")
			}
		}
		for _, d := range e.result.Diagnostics {
			s.WriteString(DiagnosticStyle.Render("! " + d.String()))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}
	return s.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m *Model) renderHeader() string {
	tokens := "off"
	if m.showTokens {
		tokens = "on"
	}
	status := StatusBarStyle.Render(fmt.Sprintf("%d lines | tokens %s", len(m.entries), tokens))
	return lipgloss.JoinHorizontal(lipgloss.Center, TitleStyle.Render("GHLL Compiler "), status)
}

func (m *Model) renderFooter() string {
	return RenderHelp("enter: parse • tab: tokens • ctrl+l: clear • esc: quit")
}
