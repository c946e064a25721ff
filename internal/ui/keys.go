package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewResources key.Binding
	ViewFiles     key.Binding
	ViewLog       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Section tabs within a view
	NextSection key.Binding
	PrevSection key.Binding

	// Server control
	PauseResume key.Binding
	Toggle      key.Binding
	Rescan      key.Binding
	RunTask     key.Binding
	Abort       key.Binding
	Reprocess   key.Binding
	Unhold      key.Binding

	// Log view
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Return to dashboard"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh now"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dashboard"),
		),
		ViewResources: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Nodes & resources"),
		),
		ViewFiles: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Files"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Server log"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		NextSection: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "Next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "Previous section"),
		),

		PauseResume: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pause/resume processing"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Enable/disable selected"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Rescan libraries"),
		),
		RunTask: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Run selected task"),
		),
		Abort: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Abort selected worker"),
		),
		Reprocess: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reprocess selected file"),
		),
		Unhold: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Release selected file from hold"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow mode"),
		),
	}
}
