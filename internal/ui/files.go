package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var fileSectionOrder = []fileSection{sectionWorkers, sectionUpcoming, sectionRecent}

func (m Model) fileSectionLabel() string {
	switch m.fileSection {
	case sectionUpcoming:
		return "Upcoming"
	case sectionRecent:
		return "Recent"
	default:
		return "Active"
	}
}

// renderFiles renders the active file list with a tab strip.
func (m Model) renderFiles() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.renderFileTabs())
	b.WriteString("\n")

	if data == nil {
		b.WriteString(styles.MutedText.Render("  Waiting for first poll..."))
		return b.String()
	}
	if !data.Authenticated {
		b.WriteString(styles.MutedText.Render("  File lists need credentials; running against the public endpoints."))
		return b.String()
	}

	switch m.fileSection {
	case sectionWorkers:
		b.WriteString(m.renderWorkerRows())
	case sectionUpcoming:
		b.WriteString(m.renderUpcomingRows())
	case sectionRecent:
		b.WriteString(m.renderRecentRows())
	}

	return b.String()
}

func (m Model) renderFileTabs() string {
	styles := m.theme.Styles()

	labels := []string{"Active", "Upcoming", "Recent"}
	segments := make([]string, 0, len(labels))
	for i, label := range labels {
		if fileSectionOrder[i] == m.fileSection {
			segments = append(segments, styles.Selected.Render(" "+label+" "))
		} else {
			segments = append(segments, styles.MutedText.Render(" "+label+" "))
		}
	}
	return strings.Join(segments, " ")
}

func (m Model) renderWorkerRows() string {
	styles := m.theme.Styles()
	workers := m.snapshot.Data.Workers
	if len(workers) == 0 {
		return styles.MutedText.Render("  nothing is being processed right now")
	}

	var b strings.Builder
	for i, w := range workers {
		render := m.rowStyle(i)
		name := truncateMiddle(w.FileName(), m.width-45)
		current, total := w.PartProgress()
		line := fmt.Sprintf(" %s %5.1f%% ", progressBar(w.CurrentPartPercent, 15), w.CurrentPartPercent)
		if total > 0 {
			line += fmt.Sprintf("part %d/%d ", current, total)
		}
		line += name
		if w.NodeName != "" {
			line += " @" + w.NodeName
		}
		b.WriteString(render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderUpcomingRows() string {
	styles := m.theme.Styles()
	files := m.snapshot.Data.Upcoming
	if len(files) == 0 {
		return styles.MutedText.Render("  the queue is empty")
	}

	var b strings.Builder
	for i, f := range files {
		render := m.rowStyle(i)
		line := fmt.Sprintf(" %-24s %s",
			truncate(f.LibraryName, 24), truncateMiddle(f.DisplayName(), m.width-30))
		b.WriteString(render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRecentRows() string {
	styles := m.theme.Styles()
	files := m.snapshot.Data.RecentlyFinished
	if len(files) == 0 {
		return styles.MutedText.Render("  nothing finished recently")
	}

	var b strings.Builder
	for i, f := range files {
		render := m.rowStyle(i)
		line := fmt.Sprintf(" %-24s %s", truncate(f.LibraryName, 24),
			truncateMiddle(f.DisplayName(), m.width-50))
		if f.OriginalSize > 0 {
			saved := f.OriginalSize - f.FinalSize
			if saved > 0 {
				line += fmt.Sprintf("  −%s", formatBytes(saved))
			} else {
				line += fmt.Sprintf("  +%s", formatBytes(-saved))
			}
		}
		b.WriteString(render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleFilesKey processes keyboard input for the files view.
func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextSection):
		m.fileSection = fileSection((int(m.fileSection) + 1) % len(fileSectionOrder))
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.fileSection = fileSection((int(m.fileSection) + len(fileSectionOrder) - 1) % len(fileSectionOrder))
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Abort):
		if m.fileSection != sectionWorkers || !m.canControl() {
			break
		}
		workers := m.snapshot.Data.Workers
		if m.selectedRow >= len(workers) {
			return m, nil
		}
		uid := workers[m.selectedRow].UID
		return m, actionCmd(m.ctx, "abort", func(ctx context.Context) error {
			return m.client.AbortWorker(ctx, uid)
		})

	case key.Matches(msg, m.keys.Unhold):
		if m.fileSection != sectionUpcoming || !m.canControl() {
			break
		}
		files := m.snapshot.Data.Upcoming
		if m.selectedRow >= len(files) {
			return m, nil
		}
		uid := files[m.selectedRow].UID
		return m, actionCmd(m.ctx, "unhold", func(ctx context.Context) error {
			return m.client.UnholdFiles(ctx, []string{uid})
		})

	case key.Matches(msg, m.keys.Reprocess):
		if m.fileSection != sectionRecent || !m.canControl() {
			break
		}
		files := m.snapshot.Data.RecentlyFinished
		if m.selectedRow >= len(files) {
			return m, nil
		}
		uid := files[m.selectedRow].UID
		return m, actionCmd(m.ctx, "reprocess", func(ctx context.Context) error {
			return m.client.ReprocessFiles(ctx, []string{uid})
		})
	}

	m.moveSelection(msg, m.currentListLength())
	return m, nil
}
