package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"tab", "Cycle views"},
				{"d/n/f/l", "Dashboard/Resources/Files/Log"},
				{"esc", "Return to dashboard"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"[/]", "Switch section"},
			},
		},
		{
			title: "Server control",
			items: []helpItem{
				{"p", "Pause/resume processing"},
				{"s", "Rescan enabled libraries"},
				{"Space", "Enable/disable selected"},
				{"r", "Run task / reprocess file"},
				{"u", "Release file from hold"},
				{"x", "Abort selected worker"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"R", "Refresh now"},
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	if m.snapshot.Data != nil && !m.snapshot.Data.Authenticated {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Control keys need credentials in config.toml."))
	}

	content := b.String()

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
