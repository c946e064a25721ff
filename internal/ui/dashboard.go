package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the overview: queue breakdown, system load,
// storage savings and the files currently in flight.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data
	if data == nil {
		return styles.MutedText.Render("  Waiting for first poll...")
	}

	var b strings.Builder

	b.WriteString(m.renderQueuePanel())
	b.WriteString("\n")
	if data.Authenticated {
		b.WriteString(m.renderSystemPanel())
		b.WriteString("\n")
	}
	b.WriteString(m.renderSavingsPanel())
	if data.Status != nil && len(data.Status.ProcessingFiles) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderProcessingPanel())
	}

	return b.String()
}

func (m Model) panelStyle() lipgloss.Style {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(width)
}

func (m Model) panelTitle(title string) string {
	return m.theme.Styles().AccentText.Bold(true).Render(title)
}

// renderQueuePanel shows the per-state file counts.
func (m Model) renderQueuePanel() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.panelTitle("Queue"))
	b.WriteString("\n")

	if fs := data.FileStatus; fs != nil {
		rows := []struct {
			state string
			count int
		}{
			{"unprocessed", fs.Unprocessed},
			{"processing", fs.Processing},
			{"processed", fs.Processed},
			{"failed", fs.Failed},
			{"on hold", fs.OnHold},
			{"out of schedule", fs.OutOfSchedule},
			{"disabled", fs.Disabled},
		}
		for _, row := range rows {
			badge := styles.StatusStyle(row.state).Render(row.state)
			b.WriteString(fmt.Sprintf("%s %s\n", badge, styles.Text.Render(formatCount(row.count))))
		}
	} else if st := data.Status; st != nil {
		// Public family: only the coarse counters exist.
		b.WriteString(fmt.Sprintf("%s %s\n",
			styles.MutedText.Render("queued"), styles.Text.Render(formatCount(st.Queue))))
		b.WriteString(fmt.Sprintf("%s %s\n",
			styles.MutedText.Render("processing"), styles.Text.Render(formatCount(st.Processing))))
		b.WriteString(fmt.Sprintf("%s %s\n",
			styles.MutedText.Render("processed"), styles.Text.Render(formatCount(st.Processed))))
	} else {
		b.WriteString(styles.MutedText.Render("no queue data"))
		b.WriteString("\n")
	}

	if data.Authenticated {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf(
			"nodes %d/%d enabled · %d runners · %d/%d libraries · %d/%d flows",
			data.EnabledNodes(), len(data.Nodes), data.TotalRunners(),
			data.EnabledLibraries(), len(data.Libraries),
			data.EnabledFlows(), len(data.Flows))))
	}

	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

// renderSystemPanel shows server CPU, memory and GPU figures when the server
// version exposes them.
func (m Model) renderSystemPanel() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.panelTitle("System"))
	b.WriteString("\n")

	wrote := false
	if sys := data.System; sys != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.MutedText.Render("cpu"),
			progressBar(sys.CPUUsage, 20),
			styles.Text.Render(fmt.Sprintf("%.0f%%", sys.CPUUsage))))
		mem := sys.MemoryUsage
		if mem <= 0 && sys.MemoryTotal > 0 {
			mem = float64(sys.MemoryUsed) / float64(sys.MemoryTotal) * 100
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.MutedText.Render("mem"),
			progressBar(mem, 20),
			styles.Text.Render(formatBytes(sys.MemoryUsed))))
		if sys.TempDirectorySize > 0 {
			b.WriteString(fmt.Sprintf("%s %s\n",
				styles.MutedText.Render("temp dir"),
				styles.Text.Render(formatBytes(sys.TempDirectorySize))))
		}
		wrote = true
	}
	if gpu := data.Nvidia; gpu != nil {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styles.MutedText.Render("gpu"),
			progressBar(gpu.GPUUsage, 20),
			styles.Text.Render(fmt.Sprintf("%.0f%% enc %.0f%% dec %.0f%%",
				gpu.GPUUsage, gpu.EncoderUsage, gpu.DecoderUsage))))
		wrote = true
	}
	if !wrote {
		b.WriteString(styles.MutedText.Render("not reported by this server version"))
		b.WriteString("\n")
	}

	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

// renderSavingsPanel shows per-library storage savings, largest first.
func (m Model) renderSavingsPanel() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.panelTitle("Storage saved"))
	b.WriteString("\n")

	if len(data.Shrinkage) == 0 {
		b.WriteString(styles.MutedText.Render("no savings recorded yet"))
		return m.panelStyle().Render(b.String())
	}

	groups := make([]struct {
		library string
		saved   int64
	}, 0, len(data.Shrinkage))
	for _, g := range data.Shrinkage {
		groups = append(groups, struct {
			library string
			saved   int64
		}{g.Library, g.SavedBytes()})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].saved > groups[j].saved })

	shown := groups
	if len(shown) > 6 {
		shown = shown[:6]
	}
	for _, g := range shown {
		name := g.library
		if name == "" {
			name = "(total)"
		}
		b.WriteString(fmt.Sprintf("%s %s\n",
			styles.MutedText.Render(truncate(name, 30)),
			styles.SuccessText.Render(formatBytes(g.saved))))
	}
	if len(groups) > len(shown) {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("+%d more", len(groups)-len(shown))))
		b.WriteString("\n")
	}

	b.WriteString(styles.Text.Render(fmt.Sprintf("total %s (%.1f%%)",
		formatBytes(data.StorageSavedBytes()), data.StorageSavedPercent())))

	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

// renderProcessingPanel shows the files currently being worked on, with the
// progress the public status endpoint reports.
func (m Model) renderProcessingPanel() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.panelTitle("Processing"))
	b.WriteString("\n")

	for _, f := range data.Status.ProcessingFiles {
		name := truncateMiddle(f.DisplayName(), m.width-40)
		line := fmt.Sprintf("%s %s %s",
			progressBar(f.Percent, 15),
			styles.AccentText.Render(fmt.Sprintf("%5.1f%%", f.Percent)),
			styles.Text.Render(name))
		if f.Step != "" {
			line += " " + styles.FaintText.Render(f.Step)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}

// handleDashboardKey processes keyboard input for the dashboard view.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.canControl() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PauseResume):
		if m.snapshot.Data.Paused {
			return m, actionCmd(m.ctx, "resume", m.client.Resume)
		}
		return m, actionCmd(m.ctx, "pause", func(ctx context.Context) error {
			return m.client.Pause(ctx, 0)
		})

	case key.Matches(msg, m.keys.Rescan):
		return m, actionCmd(m.ctx, "rescan", m.client.RescanEnabledLibraries)
	}

	return m, nil
}
