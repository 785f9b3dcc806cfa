package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	hintStyle = lipgloss.NewStyle().
			Faint(true)
)

// Titled decorates a view with a static styled header line.
func Titled[P comparable](title string, view func(P) string) func(P) string {
	header := titleStyle.Render(title)
	return func(p P) string {
		return header + "\n\n" + view(p)
	}
}

// Hint renders key-binding help text in a muted style.
func Hint(text string) string {
	return hintStyle.Render(text)
}
