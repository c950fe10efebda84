package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/carelogin/internal/i18n"
	"github.com/jask/carelogin/internal/login"
)

// welcomeScreen is the follow-up screen after a successful login.
type welcomeScreen struct {
	route login.Route
	tr    Translator
}

func newWelcomeScreen(r login.Route, tr Translator) *welcomeScreen {
	return &welcomeScreen{route: r, tr: tr}
}

func (s *welcomeScreen) Name() login.Screen { return s.route.Screen }
func (s *welcomeScreen) Init() tea.Cmd      { return nil }

func (s *welcomeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "q" {
		return s, tea.Quit
	}
	return s, nil
}

func (s *welcomeScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.tr.T(i18n.KeyWelcomeRepeatTitle)))
	b.WriteString("\n")
	b.WriteString(s.tr.T(i18n.KeyWelcomeRepeatBody))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%s · patient %s", s.route.Screen, s.route.Params.PatientID)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("q: quit"))
	return b.String()
}

// placeholderScreen stands in for screens the terminal client does not
// implement (registration, password reset).
type placeholderScreen struct {
	name     login.Screen
	tr       Translator
	titleKey string
}

func newPlaceholderScreen(name login.Screen, tr Translator, titleKey string) *placeholderScreen {
	return &placeholderScreen{name: name, tr: tr, titleKey: titleKey}
}

func (s *placeholderScreen) Name() login.Screen { return s.name }
func (s *placeholderScreen) Init() tea.Cmd      { return nil }

func (s *placeholderScreen) Update(tea.Msg) (Screen, tea.Cmd) { return s, nil }

func (s *placeholderScreen) View() string {
	return titleStyle.Render(s.tr.T(s.titleKey)) + "\n" +
		s.tr.T(i18n.KeyPlaceholderBody) + "\n\n" +
		labelStyle.Render("esc: back")
}
