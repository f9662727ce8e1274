package dash

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultRefreshInterval is the auto-refresh cadence of the dashboard.
const DefaultRefreshInterval = 30 * time.Second

// Model is the Bubble Tea model for the cluster dashboard. It owns the
// event loop state: the current snapshot (read view), the partition being
// displayed, timers, and the node table with its selection cursor.
type Model struct {
	pipeline  *Pipeline
	partition string
	interval  time.Duration

	snap  Snapshot
	table table.Model
	keys  KeyMap

	width  int
	height int

	// refreshing guards the in-flight fetch cycle: a refresh trigger
	// arriving while one is running is dropped, never run concurrently.
	refreshing bool
	quitting   bool
}

// tickMsg signals that the auto-refresh interval elapsed.
type tickMsg time.Time

// snapMsg carries the completed snapshot of one refresh cycle.
type snapMsg Snapshot

// NewModel creates the dashboard model. interval <= 0 falls back to the
// default 30 s cadence.
func NewModel(pipeline *Pipeline, partition string, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	m := Model{
		pipeline:  pipeline,
		partition: partition,
		interval:  interval,
		keys:      DefaultKeyMap(),
		// Init fires the first refresh unconditionally.
		refreshing: true,
	}
	m.initTable()
	return m
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "Node", Width: 12},
		{Title: "CPU", Width: 26},
		{Title: "Memory", Width: 26},
		{Title: "Avail CPU", Width: 9},
		{Title: "Avail Mem", Width: 9},
		{Title: "State", Width: 10},
		{Title: "Jobs", Width: 5},
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithHeight(15),
		table.WithFocused(true),
	)
	m.table.SetStyles(tableStyles())
}

// Init starts the tick timer and the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tickCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, next, cmd := m.handleKey(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 4)
		// Leave room for title, header, stats box, jobs line, and help.
		tableHeight := msg.Height - 12
		if tableHeight < 5 {
			tableHeight = 5
		}
		m.table.SetHeight(tableHeight)

	case tickMsg:
		cmds := []tea.Cmd{m.tickCmd()}
		if cmd, ok := m.triggerRefresh(); ok {
			cmds = append(cmds, cmd)
		}
		return m.passToTable(msg, cmds...)

	case snapMsg:
		m.refreshing = false
		m.snap = Snapshot(msg)
		m.syncTable()
	}

	return m.passToTable(msg)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Partition returns the partition currently displayed.
func (m Model) Partition() string {
	return m.partition
}

// Snapshot returns the current read view for rendering and tests.
func (m Model) Snapshot() Snapshot {
	return m.snap
}

// SelectedRow returns the index of the highlighted node row.
func (m Model) SelectedRow() int {
	return m.table.Cursor()
}

// SelectRow moves the highlight to the given row, clamped to the current
// node collection.
func (m *Model) SelectRow(index int) {
	if len(m.snap.Nodes) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.snap.Nodes) {
		index = len(m.snap.Nodes) - 1
	}
	m.table.SetCursor(index)
}

// SwitchPartition changes the displayed partition and triggers an
// immediate refresh unless one is already in flight.
func (m *Model) SwitchPartition(partition string) tea.Cmd {
	m.partition = partition
	cmd, _ := m.triggerRefresh()
	return cmd
}

// triggerRefresh starts a fetch cycle unless one is already running, in
// which case the trigger is dropped.
func (m *Model) triggerRefresh() (tea.Cmd, bool) {
	if m.refreshing {
		return nil, false
	}
	m.refreshing = true
	return m.refreshCmd(), true
}

// refreshCmd runs one pipeline cycle off the event loop. The inputs are
// captured by value so a snapshot in progress can't observe later model
// changes.
func (m Model) refreshCmd() tea.Cmd {
	pipeline := m.pipeline
	prev := m.snap
	partition := m.partition
	return func() tea.Msg {
		return snapMsg(pipeline.Refresh(prev, partition))
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// syncTable rebuilds the table rows from the current snapshot and clamps
// the selection when the node collection shrank.
func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.snap.Nodes))
	for i := range m.snap.Nodes {
		node := &m.snap.Nodes[i]
		rows = append(rows, table.Row{
			formatNodeID(node.ID, m.snap.UserOwnsNode(node.ID)),
			formatResourceBar(node.UsedCores, node.TotalCores),
			formatResourceBar(node.UsedMemGB(), node.TotalMemGB()),
			fmt.Sprintf("%d", node.AvailCores()),
			fmt.Sprintf("%d GB", node.AvailMemGB()),
			formatNodeState(node.State),
			fmt.Sprintf("%d", len(node.Jobs)),
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// passToTable forwards the message to the node table so it can handle
// scrolling and navigation, then batches any resulting command.
func (m Model) passToTable(msg tea.Msg, cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
