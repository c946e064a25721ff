package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowtop/flowtop/internal/fileflows"
)

// renderHeader renders the status bar with connection and queue information.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasData() {
		return m.renderConnectingHeader(styles, bg)
	}

	content := m.buildStatusContent(styles, bg)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(content)
}

// renderConnectingHeader shows the connecting/error state before the first
// successful poll.
func (m Model) renderConnectingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	if m.snapshot.LastError != nil {
		last := "soon"
		if !m.lastUpdated.IsZero() {
			last = m.lastUpdated.Format("15:04:05")
		}
		errorMsg := classifyConnectionError(m.snapshot.LastError)

		parts := []string{
			bg.Render("flowtop", styles.Logo),
			bg.Render("SERVER "+errorMsg, styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
			bg.Render(last, styles.MutedText),
		}
		return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
	}

	return styles.Header.Width(m.width).Render(
		bg.Render("flowtop", styles.Logo) + sep +
			bg.Render("Connecting to FileFlows...", styles.WarningText.Bold(true)),
	)
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < 100
	sep := bg.Spaces(2)
	data := m.snapshot.Data

	var parts []string

	parts = append(parts, bg.Render("flowtop", styles.Logo))

	// Connection and pause state
	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case data.Paused:
		parts = append(parts, bg.Render("● PAUSED", styles.WarningText.Bold(true)))
	case data.IsProcessing():
		parts = append(parts, bg.Render("● BUSY", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● IDLE", styles.InfoText))
	}

	// Queue and processing counts
	parts = append(parts,
		bg.Render("Queue:", styles.MutedText)+bg.Space()+
			bg.Render(formatCount(data.QueueSize()), styles.Text),
	)
	if data.Status != nil && data.Status.Processing > 0 {
		color := lipgloss.Color(m.theme.StatusColors["processing"])
		activeStyle := lipgloss.NewStyle().Foreground(color)
		parts = append(parts,
			bg.Render("Active:", styles.MutedText)+bg.Space()+
				bg.Render(formatCount(data.Status.Processing), activeStyle),
		)
	}

	// Failed count, only alarming when nonzero
	if data.FileStatus != nil {
		failedStyle := styles.MutedText
		if data.FileStatus.Failed > 0 {
			failedStyle = styles.DangerText
		}
		label := "Failed:"
		if compact {
			label = "F:"
		}
		parts = append(parts,
			bg.Render(label, styles.MutedText)+bg.Space()+
				bg.Render(formatCount(data.FileStatus.Failed), failedStyle),
		)
	}

	// Storage savings
	if saved := data.StorageSavedBytes(); saved > 0 && !compact {
		parts = append(parts,
			bg.Render("Saved:", styles.MutedText)+bg.Space()+
				bg.Render(formatBytes(saved), styles.SuccessText),
		)
	}

	// Server version and update hint
	if data.Version != "" && !compact {
		version := "v" + data.Version
		if data.UpdateAvailable {
			version += " ⬆"
		}
		parts = append(parts, bg.Render(version, styles.FaintText))
	}

	// Public mode indicator: no credentials, read-only surface
	if !data.Authenticated {
		parts = append(parts, bg.Render("read-only", styles.FaintText))
	}

	// Timestamp with relative time
	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// Poll error while stale data is on screen
	if m.snapshot.LastError != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(m.snapshot.LastError.Error(), maxErr)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText),
		)
	}

	// Transient action feedback
	if m.statusMsg != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(m.statusMsg, styles.WarningText),
		)
	}

	return strings.Join(parts, sep)
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.lastUpdated.IsZero() {
		return ""
	}

	since := time.Since(m.snapshot.LastUpdated)
	timeStr := m.snapshot.LastUpdated.Format("15:04:05")

	if since < time.Minute {
		timeStr += " (now)"
	} else if since < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	} else if since < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return timeStr
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, fileflows.ErrAuth):
		return "AUTH FAILED"
	case errors.Is(err, fileflows.ErrConnect):
		msg := err.Error()
		switch {
		case strings.Contains(msg, "connection refused"):
			return "OFFLINE"
		case strings.Contains(msg, "no such host"):
			return "HOST NOT FOUND"
		case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
			return "TIMEOUT"
		default:
			return "UNREACHABLE"
		}
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewResources:
		commands = []cmd{
			{"[/]", m.resourceTabLabel()},
			{"j/k", "Navigate"},
		}
		if m.canControl() {
			commands = append(commands, cmd{"Space", "Toggle"})
			if m.resourceTab == tabTasks {
				commands = append(commands, cmd{"r", "Run"})
			}
			if m.resourceTab == tabLibraries {
				commands = append(commands, cmd{"s", "Rescan"})
			}
		}
		commands = append(commands, cmd{"d", "Dashboard"}, cmd{"?", "More"})
	case ViewFiles:
		commands = []cmd{
			{"[/]", m.fileSectionLabel()},
			{"j/k", "Navigate"},
		}
		if m.canControl() {
			switch m.fileSection {
			case sectionWorkers:
				commands = append(commands, cmd{"x", "Abort"})
			case sectionUpcoming:
				commands = append(commands, cmd{"u", "Unhold"})
			case sectionRecent:
				commands = append(commands, cmd{"r", "Reprocess"})
			}
		}
		commands = append(commands, cmd{"d", "Dashboard"}, cmd{"?", "More"})
	case ViewLog:
		followLabel := "Pause"
		if !m.logFollow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"j/k", "Scroll"},
			{"d", "Dashboard"},
			{"?", "More"},
		}
	default: // ViewDashboard
		commands = []cmd{
			{"n", "Resources"},
			{"f", "Files"},
			{"l", "Log"},
		}
		if m.canControl() {
			pauseLabel := "Pause"
			if m.snapshot.Data != nil && m.snapshot.Data.Paused {
				pauseLabel = "Resume"
			}
			commands = append(commands, cmd{"p", pauseLabel}, cmd{"s", "Rescan"})
		}
		commands = append(commands, cmd{"R", "Refresh"}, cmd{"?", "More"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
