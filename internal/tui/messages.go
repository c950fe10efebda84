package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carelogin/internal/login"
)

type loginResultMsg struct {
	result login.Result
}

type toastExpiredMsg struct {
	seq int
}

type resetMsg struct {
	route login.Route
}

type navigateMsg struct {
	screen login.Screen
}

// effects buffers the commands produced by collaborator callbacks during
// one Update turn.
type effects struct {
	cmds []tea.Cmd
}

func (e *effects) add(cmd tea.Cmd) {
	if cmd != nil {
		e.cmds = append(e.cmds, cmd)
	}
}

func (e *effects) flush() tea.Cmd {
	if len(e.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(e.cmds...)
	e.cmds = nil
	return cmd
}

// navigator turns workflow navigation into App messages.
type navigator struct {
	fx *effects
}

func (n navigator) Reset(r login.Route) {
	n.fx.add(func() tea.Msg { return resetMsg{route: r} })
}

func (n navigator) Navigate(s login.Screen) {
	n.fx.add(func() tea.Msg { return navigateMsg{screen: s} })
}
