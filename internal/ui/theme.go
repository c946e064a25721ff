package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels
	SurfaceAlt string // Secondary surfaces
	FocusBg    string // Focus/active states

	// Selection colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Colors per library-file processing state
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	// For dynamic status colors
	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for the given file state.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Ocean":  oceanTheme(),
	"Ember":  emberTheme(),
	"Forest": forestTheme(),
}

var themeOrder = []string{"Ocean", "Ember", "Forest"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return oceanTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func oceanTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Ocean",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[string]string{
			"unprocessed":     "#64748b", // slate-500
			"processing":      "#38bdf8", // sky-400
			"processed":       "#22c55e", // green-500
			"failed":          "#dc2626", // red-600
			"on hold":         "#f59e0b", // amber-500
			"out of schedule": "#a78bfa", // violet-400
			"disabled":        "#475569", // slate-600
		},
	}
}

func emberTheme() Theme {
	// Gruvbox-inspired warm palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Ember",

		Background: "#1d2021", // hard dark
		Surface:    "#282828", // bg0
		SurfaceAlt: "#3c3836", // bg1
		FocusBg:    "#504945", // bg2

		SelectionBg:   "#d65d0e", // orange
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#fe8019", // bright orange

		Text:    "#ebdbb2", // fg1
		Muted:   "#a89984", // gray
		Faint:   "#928374", // dark gray
		Accent:  "#fe8019", // bright orange
		Success: "#b8bb26", // bright green
		Warning: "#fabd2f", // bright yellow
		Danger:  "#fb4934", // bright red
		Info:    "#83a598", // bright blue

		StatusColors: map[string]string{
			"unprocessed":     "#928374",
			"processing":      "#83a598",
			"processed":       "#b8bb26",
			"failed":          "#fb4934",
			"on hold":         "#fabd2f",
			"out of schedule": "#d3869b",
			"disabled":        "#665c54",
		},
	}
}

func forestTheme() Theme {
	// Everforest palette: https://github.com/sainnhe/everforest
	return Theme{
		Name: "Forest",

		Background: "#272e33", // bg0 hard
		Surface:    "#2e383c", // bg1
		SurfaceAlt: "#374145", // bg2
		FocusBg:    "#414b50", // bg3

		SelectionBg:   "#425047", // bg green
		SelectionText: "#d3c6aa", // fg

		Border:      "#4f5b58", // bg5
		BorderFocus: "#a7c080", // green

		Text:    "#d3c6aa", // fg
		Muted:   "#859289", // gray1
		Faint:   "#7a8478", // gray0
		Accent:  "#a7c080", // green
		Success: "#a7c080", // green
		Warning: "#dbbc7f", // yellow
		Danger:  "#e67e80", // red
		Info:    "#7fbbb3", // aqua

		StatusColors: map[string]string{
			"unprocessed":     "#7a8478",
			"processing":      "#7fbbb3",
			"processed":       "#a7c080",
			"failed":          "#e67e80",
			"on hold":         "#dbbc7f",
			"out of schedule": "#d699b6",
			"disabled":        "#4f5b58",
		},
	}
}
