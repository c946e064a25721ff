package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var resourceTabOrder = []resourceTab{tabNodes, tabLibraries, tabFlows, tabPlugins, tabTasks}

func (m Model) resourceTabLabel() string {
	switch m.resourceTab {
	case tabLibraries:
		return "Libraries"
	case tabFlows:
		return "Flows"
	case tabPlugins:
		return "Plugins"
	case tabTasks:
		return "Tasks"
	default:
		return "Nodes"
	}
}

// renderResources renders the active resource list with a tab strip.
func (m Model) renderResources() string {
	styles := m.theme.Styles()
	data := m.snapshot.Data

	var b strings.Builder
	b.WriteString(m.renderResourceTabs())
	b.WriteString("\n")

	if data == nil {
		b.WriteString(styles.MutedText.Render("  Waiting for first poll..."))
		return b.String()
	}
	if !data.Authenticated {
		b.WriteString(styles.MutedText.Render("  Resource lists need credentials; running against the public endpoints."))
		return b.String()
	}

	switch m.resourceTab {
	case tabNodes:
		b.WriteString(m.renderNodeRows())
	case tabLibraries:
		b.WriteString(m.renderLibraryRows())
	case tabFlows:
		b.WriteString(m.renderFlowRows())
	case tabPlugins:
		b.WriteString(m.renderPluginRows())
	case tabTasks:
		b.WriteString(m.renderTaskRows())
	}

	return b.String()
}

func (m Model) renderResourceTabs() string {
	styles := m.theme.Styles()

	labels := []string{"Nodes", "Libraries", "Flows", "Plugins", "Tasks"}
	segments := make([]string, 0, len(labels))
	for i, label := range labels {
		if resourceTabOrder[i] == m.resourceTab {
			segments = append(segments, styles.Selected.Render(" "+label+" "))
		} else {
			segments = append(segments, styles.MutedText.Render(" "+label+" "))
		}
	}
	return strings.Join(segments, " ")
}

// rowStyle returns the style for a list row, highlighting the selection.
func (m Model) rowStyle(index int) func(string) string {
	styles := m.theme.Styles()
	if index == m.selectedRow {
		return func(s string) string { return styles.Selected.Render(s) }
	}
	return func(s string) string { return styles.Text.Render(s) }
}

func (m Model) renderNodeRows() string {
	styles := m.theme.Styles()
	nodes := m.snapshot.Data.Nodes
	if len(nodes) == 0 {
		return styles.MutedText.Render("  no processing nodes")
	}

	var b strings.Builder
	for i, n := range nodes {
		render := m.rowStyle(i)
		state := onOff(n.Enabled)
		line := fmt.Sprintf(" %-3s %-24s runners:%-2d priority:%-3d %s %s",
			state, truncate(n.Name, 24), n.FlowRunners, n.Priority,
			n.OperatingSystem, n.Version)
		b.WriteString(render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderLibraryRows() string {
	styles := m.theme.Styles()
	libs := m.snapshot.Data.Libraries
	if len(libs) == 0 {
		return styles.MutedText.Render("  no libraries")
	}

	var b strings.Builder
	for i, l := range libs {
		render := m.rowStyle(i)
		line := fmt.Sprintf(" %-3s %-24s %s",
			onOff(l.Enabled), truncate(l.Name, 24), truncateMiddle(l.Path, m.width-40))
		b.WriteString(render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFlowRows() string {
	styles := m.theme.Styles()
	flows := m.snapshot.Data.Flows
	if len(flows) == 0 {
		return styles.MutedText.Render("  no flows")
	}

	var b strings.Builder
	for i, f := range flows {
		render := m.rowStyle(i)
		name := truncate(f.Name, 40)
		if f.Default {
			name += " (default)"
		}
		b.WriteString(render(fmt.Sprintf(" %-3s %s", onOff(f.Enabled), name)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPluginRows() string {
	styles := m.theme.Styles()
	plugins := m.snapshot.Data.Plugins
	if len(plugins) == 0 {
		return styles.MutedText.Render("  no plugins")
	}

	var b strings.Builder
	for i, p := range plugins {
		render := m.rowStyle(i)
		b.WriteString(render(fmt.Sprintf(" %-3s %-32s %s",
			onOff(p.Enabled), truncate(p.Name, 32), p.Version)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTaskRows() string {
	styles := m.theme.Styles()
	tasks := m.snapshot.Data.Tasks
	if len(tasks) == 0 {
		return styles.MutedText.Render("  no scheduled tasks")
	}

	var b strings.Builder
	for i, t := range tasks {
		render := m.rowStyle(i)
		lastRun := t.LastRun
		if lastRun == "" {
			lastRun = "never"
		}
		b.WriteString(render(fmt.Sprintf(" %-3s %-32s last run %s",
			onOff(t.Enabled), truncate(t.Name, 32), lastRun)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleResourcesKey processes keyboard input for the resources view.
func (m Model) handleResourcesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextSection):
		m.resourceTab = resourceTab((int(m.resourceTab) + 1) % len(resourceTabOrder))
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.resourceTab = resourceTab((int(m.resourceTab) + len(resourceTabOrder) - 1) % len(resourceTabOrder))
		m.selectedRow = 0
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelectedResource()

	case key.Matches(msg, m.keys.RunTask):
		if m.resourceTab != tabTasks || !m.canControl() {
			return m, nil
		}
		tasks := m.snapshot.Data.Tasks
		if m.selectedRow >= len(tasks) {
			return m, nil
		}
		uid := tasks[m.selectedRow].UID
		return m, actionCmd(m.ctx, "run task", func(ctx context.Context) error {
			return m.client.RunTask(ctx, uid)
		})

	case key.Matches(msg, m.keys.Rescan):
		if m.resourceTab != tabLibraries || !m.canControl() {
			return m, nil
		}
		return m, actionCmd(m.ctx, "rescan", m.client.RescanEnabledLibraries)
	}

	m.moveSelection(msg, m.currentListLength())
	return m, nil
}

// toggleSelectedResource flips the enabled state of the selected node,
// library or flow. Plugins and tasks have no state endpoint.
func (m Model) toggleSelectedResource() (tea.Model, tea.Cmd) {
	if !m.canControl() {
		return m, nil
	}
	data := m.snapshot.Data

	switch m.resourceTab {
	case tabNodes:
		if m.selectedRow >= len(data.Nodes) {
			return m, nil
		}
		n := data.Nodes[m.selectedRow]
		return m, actionCmd(m.ctx, "toggle node", func(ctx context.Context) error {
			return m.client.SetNodeState(ctx, n.UID, !n.Enabled)
		})
	case tabLibraries:
		if m.selectedRow >= len(data.Libraries) {
			return m, nil
		}
		l := data.Libraries[m.selectedRow]
		return m, actionCmd(m.ctx, "toggle library", func(ctx context.Context) error {
			return m.client.SetLibraryState(ctx, l.UID, !l.Enabled)
		})
	case tabFlows:
		if m.selectedRow >= len(data.Flows) {
			return m, nil
		}
		f := data.Flows[m.selectedRow]
		return m, actionCmd(m.ctx, "toggle flow", func(ctx context.Context) error {
			return m.client.SetFlowState(ctx, f.UID, !f.Enabled)
		})
	}
	return m, nil
}
