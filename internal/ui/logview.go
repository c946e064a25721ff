package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// initLogViewport initializes the server log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(m.width-2, m.contentHeight())
}

// updateLogViewport resizes the viewport and reloads its content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	m.logViewport.Width = m.width - 2
	m.logViewport.Height = m.contentHeight()
	m.logViewport.SetContent(m.logText)
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// contentHeight is the height left after the header and command bar.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// renderLog renders the server log view.
func (m Model) renderLog() string {
	styles := m.theme.Styles()

	if m.logErr != nil && m.logText == "" {
		return styles.MutedText.Render("  server log unavailable: " + truncate(m.logErr.Error(), 80))
	}
	if strings.TrimSpace(m.logText) == "" {
		return styles.MutedText.Render("  fetching server log...")
	}
	return m.logViewport.View()
}

// handleLogKey processes keyboard input for the log view.
func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
			return m, fetchServerLogCmd(m.ctx, m.client)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.logFollow = false
		m.logViewport.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.logFollow = false
		m.logViewport.ScrollUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.logFollow = false
		m.logViewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}
