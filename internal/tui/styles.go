package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorSurface lipgloss.Color = "#313244"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText).Padding(1, 3)

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBorder)
	fieldErrStyle = fieldStyle.BorderForeground(colorError)
	errMarkStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorSurface).
			Bold(true).
			Padding(0, 2)
	linkStyle = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)

	toastStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Padding(0, 1)
	pendingStyle = lipgloss.NewStyle().Foreground(colorSuccess)
)
