package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowtop/flowtop/internal/fileflows"
	"github.com/flowtop/flowtop/internal/prefs"
	"github.com/flowtop/flowtop/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewResources
	ViewFiles
	ViewLog
)

// resourceTab selects which resource list the resources view shows.
type resourceTab int

const (
	tabNodes resourceTab = iota
	tabLibraries
	tabFlows
	tabPlugins
	tabTasks
)

// fileSection selects which file list the files view shows.
type fileSection int

const (
	sectionWorkers fileSection = iota
	sectionUpcoming
	sectionRecent
)

const actionTimeout = 10 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *fileflows.Client
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *fileflows.Client
	store     *state.Store
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Selection state
	selectedRow int
	resourceTab resourceTab
	fileSection fileSection

	// Server log state
	logViewport viewport.Model
	logText     string
	logFollow   bool
	logErr      error

	// Transient action feedback
	statusMsg   string
	statusMsgAt time.Time

	// Help overlay
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}
	// The UI redraws faster than the poller fetches so timestamps and
	// transient messages stay fresh.
	if pollTick > 2*time.Second {
		pollTick = 2 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Ocean"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewDashboard,
		logFollow:   true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case serverLogMsg:
		m.logErr = msg.err
		if msg.err == nil {
			m.logText = msg.text
			m.updateLogViewport()
		}
		return m, nil

	case actionResultMsg:
		if msg.err != nil {
			m.statusMsg = msg.label + " failed: " + truncate(msg.err.Error(), 60)
		} else {
			m.statusMsg = msg.label + " ok"
		}
		m.statusMsgAt = time.Now()
		// Re-poll so the action's effect shows up without waiting a cycle.
		return m, refreshNowCmd(m.ctx, m.client, m.store)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.nextView())

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.prevView())

	case key.Matches(msg, m.keys.Escape):
		return m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.ViewResources):
		return m.switchView(ViewResources)

	case key.Matches(msg, m.keys.ViewFiles):
		return m.switchView(ViewFiles)

	case key.Matches(msg, m.keys.ViewLog):
		return m.switchView(ViewLog)

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshNowCmd(m.ctx, m.client, m.store)
	}

	switch m.currentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewResources:
		return m.handleResourcesKey(msg)
	case ViewFiles:
		return m.handleFilesKey(msg)
	case ViewLog:
		return m.handleLogKey(msg)
	}

	return m, nil
}

// switchView changes the active view and resets per-view selection.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	m.selectedRow = 0
	if v == ViewLog {
		return m, fetchServerLogCmd(m.ctx, m.client)
	}
	return m, nil
}

func (m Model) nextView() View {
	return View((int(m.currentView) + 1) % 4)
}

func (m Model) prevView() View {
	return View((int(m.currentView) + 3) % 4)
}

// moveSelection applies shared j/k/g/G navigation against a list length.
func (m *Model) moveSelection(msg tea.KeyMsg, count int) {
	if count == 0 {
		m.selectedRow = 0
		return
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}
}

// clampSelection keeps the selection in range after a snapshot refresh.
func (m *Model) clampSelection() {
	count := m.currentListLength()
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
}

func (m *Model) currentListLength() int {
	data := m.snapshot.Data
	if data == nil {
		return 0
	}
	switch m.currentView {
	case ViewResources:
		switch m.resourceTab {
		case tabNodes:
			return len(data.Nodes)
		case tabLibraries:
			return len(data.Libraries)
		case tabFlows:
			return len(data.Flows)
		case tabPlugins:
			return len(data.Plugins)
		case tabTasks:
			return len(data.Tasks)
		}
	case ViewFiles:
		switch m.fileSection {
		case sectionWorkers:
			return len(data.Workers)
		case sectionUpcoming:
			return len(data.Upcoming)
		case sectionRecent:
			return len(data.RecentlyFinished)
		}
	}
	return 0
}

// canControl reports whether control actions are available. The public
// endpoint family is read-only.
func (m Model) canControl() bool {
	return m.snapshot.Data != nil && m.snapshot.Data.Authenticated
}

// handleTick processes the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	// Refresh the server log while it is on screen and following.
	if m.currentView == ViewLog && m.logFollow {
		cmds = append(cmds, fetchServerLogCmd(m.ctx, m.client))
	}

	// Expire transient action feedback.
	if m.statusMsg != "" && time.Since(m.statusMsgAt) > 5*time.Second {
		m.statusMsg = ""
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewResources:
		return m.renderResources()
	case ViewFiles:
		return m.renderFiles()
	case ViewLog:
		return m.renderLog()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type serverLogMsg struct {
	text string
	err  error
}

type actionResultMsg struct {
	label string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchServerLogCmd(ctx context.Context, client *fileflows.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return serverLogMsg{}
		}
		cctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		text, err := client.FetchServerLog(cctx)
		return serverLogMsg{text: text, err: err}
	}
}

// refreshNowCmd runs one poll cycle outside the regular cadence and publishes
// the result through the store so the poller's failure accounting stays true.
func refreshNowCmd(ctx context.Context, client *fileflows.Client, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if client == nil || store == nil {
			return nil
		}
		cctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		snap, err := client.FetchSnapshot(cctx)
		if err != nil {
			store.Update(nil, err)
		} else {
			store.Update(snap, nil)
		}
		return snapshotMsg(store.Snapshot())
	}
}

// actionCmd runs one control operation against the server.
func actionCmd(ctx context.Context, label string, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		cctx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		return actionResultMsg{label: label, err: op(cctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
