package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// Label renders a dim fixed-width label followed by a bright value.
func Label(name, value string) string {
	return dim.Render(padRight(name, 10)) + white.Render(value)
}

// Panel draws a titled rounded box around body.
func Panel(title, body string) string {
	return panelStyle.Render(cyan.Render(title) + "\n" + body)
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
