package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/carelogin/internal/auth"
	"github.com/jask/carelogin/internal/i18n"
	"github.com/jask/carelogin/internal/login"
)

// Translator is the localization lookup the screens render with.
type Translator interface {
	T(key string) string
	IsUS() bool
}

// Options configure the App.
type Options struct {
	Auth          auth.Client
	Translator    Translator
	Logger        zerolog.Logger
	ToastDuration time.Duration
}

// Screen is one entry of the navigation stack.
type Screen interface {
	Name() login.Screen
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
}

// closer is implemented by screens that hold state needing teardown when
// they leave the stack.
type closer interface {
	Close()
}

// App is the root model. It owns the screen stack and acts on navigation
// messages emitted by screens.
type App struct {
	ctx    context.Context
	opts   Options
	log    zerolog.Logger
	stack  ScreenStack
	width  int
	height int
}

func New(ctx context.Context, opts Options) *App {
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = login.DefaultToastDuration
	}
	a := &App{ctx: ctx, opts: opts, log: opts.Logger}
	a.stack.Push(a.screenFor(login.Route{Screen: login.ScreenLogin}))
	return a
}

func (a *App) Init() tea.Cmd {
	if top := a.stack.Top(); top != nil {
		return top.Init()
	}
	return nil
}

// Current is the screen on top of the stack.
func (a *App) Current() Screen { return a.stack.Top() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c":
			a.closeAll()
			return a, tea.Quit
		case "esc":
			if a.stack.Len() > 1 {
				a.closeScreen(a.stack.Pop())
				return a, nil
			}
		}
		top := a.stack.Top()
		if top == nil {
			return a, nil
		}
		next, cmd := top.Update(m)
		a.stack.ReplaceTop(next)
		return a, cmd
	case resetMsg:
		a.log.Info().Str("screen", string(m.route.Screen)).Msg("navigation reset")
		a.closeAll()
		screen := a.screenFor(m.route)
		a.stack.Push(screen)
		return a, screen.Init()
	case navigateMsg:
		a.log.Debug().Str("screen", string(m.screen)).Msg("navigate")
		screen := a.screenFor(login.Route{Screen: m.screen})
		a.stack.Push(screen)
		return a, screen.Init()
	}

	switch msg.(type) {
	case loginResultMsg, toastExpiredMsg, spinner.TickMsg:
		// async results go to every mounted screen; each one drops what it does not own
		var cmds []tea.Cmd
		for i, s := range a.stack.items {
			next, cmd := s.Update(msg)
			if next != nil {
				a.stack.items[i] = next
			}
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// input such as paste and cursor blinks belongs to the visible screen
	top := a.stack.Top()
	if top == nil {
		return a, nil
	}
	next, cmd := top.Update(msg)
	a.stack.ReplaceTop(next)
	return a, cmd
}

func (a *App) View() string {
	top := a.stack.Top()
	if top == nil {
		return ""
	}
	return appStyle.Render(top.View())
}

func (a *App) screenFor(r login.Route) Screen {
	tr := a.opts.Translator
	switch r.Screen {
	case login.ScreenLogin:
		return newLoginScreen(a.ctx, a.opts)
	case login.ScreenWelcomeRepeat, login.ScreenWelcomeRepeatUS:
		return newWelcomeScreen(r, tr)
	case login.ScreenRegister:
		return newPlaceholderScreen(r.Screen, tr, i18n.KeyRegisterTitle)
	case login.ScreenResetPassword:
		return newPlaceholderScreen(r.Screen, tr, i18n.KeyResetPasswordTitle)
	default:
		a.log.Warn().Str("screen", string(r.Screen)).Msg("unknown route, showing login")
		return newLoginScreen(a.ctx, a.opts)
	}
}

func (a *App) closeScreen(s Screen) {
	if c, ok := s.(closer); ok {
		c.Close()
	}
}

func (a *App) closeAll() {
	for a.stack.Len() > 0 {
		a.closeScreen(a.stack.Pop())
	}
}
