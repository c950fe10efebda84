package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carelogin/internal/i18n"
	"github.com/jask/carelogin/internal/login"
)

type loginKeyMap struct {
	Next     key.Binding
	Submit   key.Binding
	Switch   key.Binding
	Register key.Binding
	Forgot   key.Binding
	Quit     key.Binding
}

func newLoginKeyMap(tr Translator) loginKeyMap {
	return loginKeyMap{
		Next:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / "+tr.T(i18n.KeyLogIn))),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", tr.T(i18n.KeyLogIn))),
		Switch:   key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "switch field")),
		Register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", tr.T(i18n.KeyCreateAccount))),
		Forgot:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", tr.T(i18n.KeyForgotPassword))),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k loginKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Switch, k.Register, k.Forgot, k.Quit}
}

func (k loginKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Submit, k.Switch}, {k.Register, k.Forgot, k.Quit}}
}

// loginScreen renders the form and hosts the workflow. It is the workflow's
// notifier and focus collaborator.
type loginScreen struct {
	ctx      context.Context
	tr       Translator
	wf       *login.Workflow
	fx       *effects
	inputs   [2]textinput.Model
	focus    login.Field
	spinner  spinner.Model
	help     help.Model
	keys     loginKeyMap
	toast    string
	toastSeq int
}

func newLoginScreen(ctx context.Context, opts Options) *loginScreen {
	tr := opts.Translator
	s := &loginScreen{
		ctx:     ctx,
		tr:      tr,
		fx:      &effects{},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
		help:    help.New(),
		keys:    newLoginKeyMap(tr),
	}

	user := textinput.New()
	user.Prompt = ""
	user.Placeholder = "name@example.com"
	user.CharLimit = 254
	user.Focus()

	pass := textinput.New()
	pass.Prompt = ""
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	s.inputs = [2]textinput.Model{user, pass}
	s.wf = login.New(login.Deps{
		Auth:          opts.Auth,
		Navigator:     navigator{fx: s.fx},
		Notifier:      s,
		Translator:    tr,
		Locale:        tr,
		Focus:         s,
		Logger:        opts.Logger,
		ToastDuration: opts.ToastDuration,
	})
	return s
}

func (s *loginScreen) Name() login.Screen { return login.ScreenLogin }

func (s *loginScreen) Init() tea.Cmd { return textinput.Blink }

// Close unmounts the workflow so late results are ignored.
func (s *loginScreen) Close() { s.wf.Close() }

// Show implements login.Notifier.
func (s *loginScreen) Show(n login.Notification) {
	s.toast = n.Text
	s.toastSeq++
	seq := s.toastSeq
	s.fx.add(tea.Tick(n.Duration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} }))
}

// RequestFocus implements login.FocusRequester.
func (s *loginScreen) RequestFocus(f login.Field) {
	s.inputs[s.focus].Blur()
	s.focus = f
	s.fx.add(s.inputs[s.focus].Focus())
}

func (s *loginScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return s, s.handleKey(m)
	case loginResultMsg:
		s.wf.Complete(m.result)
		return s, s.fx.flush()
	case toastExpiredMsg:
		if m.seq == s.toastSeq {
			s.toast = ""
		}
		return s, nil
	case spinner.TickMsg:
		if !s.wf.InFlight() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(m)
		return s, cmd
	}
	// paste and cursor messages land here
	return s, s.updateInput(msg)
}

func (s *loginScreen) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, s.keys.Next):
		if s.focus == login.FieldUsername {
			s.wf.UsernameDone()
			return s.fx.flush()
		}
		return s.submit()
	case key.Matches(m, s.keys.Submit):
		return s.submit()
	case key.Matches(m, s.keys.Switch):
		if s.focus == login.FieldUsername {
			s.RequestFocus(login.FieldPassword)
		} else {
			s.RequestFocus(login.FieldUsername)
		}
		return s.fx.flush()
	case key.Matches(m, s.keys.Register):
		s.wf.CreateAccount()
		return s.fx.flush()
	case key.Matches(m, s.keys.Forgot):
		s.wf.ForgotPassword()
		return s.fx.flush()
	}

	return s.updateInput(m)
}

// updateInput forwards msg to the focused field and reports any value change
// to the workflow.
func (s *loginScreen) updateInput(msg tea.Msg) tea.Cmd {
	before := s.inputs[s.focus].Value()
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	if after := s.inputs[s.focus].Value(); after != before {
		if s.focus == login.FieldUsername {
			s.wf.SetUsername(after)
		} else {
			s.wf.SetPassword(after)
		}
	}
	return tea.Batch(cmd, s.fx.flush())
}

func (s *loginScreen) submit() tea.Cmd {
	call := s.wf.Submit()
	if call == nil {
		return s.fx.flush()
	}
	ctx := s.ctx
	return tea.Batch(
		s.fx.flush(),
		s.spinner.Tick,
		func() tea.Msg { return loginResultMsg{result: call(ctx)} },
	)
}

func (s *loginScreen) View() string {
	v := s.wf.Validation()
	var b strings.Builder

	b.WriteString(titleStyle.Render(s.tr.T(i18n.KeyLoginTitle)))
	b.WriteString("\n")
	b.WriteString(s.renderField(s.tr.T(i18n.KeyLoginLabel), s.inputs[login.FieldUsername], v.UsernameInvalid))
	b.WriteString("\n")
	b.WriteString(s.renderField(s.tr.T(i18n.KeyPassword), s.inputs[login.FieldPassword], v.PasswordInvalid))
	b.WriteString("\n\n")

	b.WriteString(buttonStyle.Render(s.tr.T(i18n.KeyLogIn)))
	if s.wf.InFlight() {
		b.WriteString("  " + s.spinner.View() + " " + s.tr.T(i18n.KeyLoggingIn))
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(s.tr.T(i18n.KeyDontHaveAccount)) + " " + linkStyle.Render(s.tr.T(i18n.KeyCreateAccount)))
	b.WriteString("\n")
	b.WriteString(linkStyle.Render(s.tr.T(i18n.KeyForgotPassword)))
	b.WriteString("\n")

	if s.toast != "" {
		b.WriteString("\n" + toastStyle.Render(s.toast) + "\n")
	}
	b.WriteString("\n" + s.help.View(s.keys))
	return b.String()
}

func (s *loginScreen) renderField(label string, in textinput.Model, invalid bool) string {
	style := fieldStyle
	mark := ""
	if invalid {
		style = fieldErrStyle
		mark = " " + errMarkStyle.Render("✗")
	}
	return labelStyle.Render(label) + "\n" + style.Render(in.View()) + mark
}
