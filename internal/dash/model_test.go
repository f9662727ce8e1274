package dash

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodetop/nodetop/internal/model"
)

func newTestModel(fake *fakeScheduler) Model {
	p := &Pipeline{Sched: fake, User: "alice"}
	return NewModel(p, "batch", time.Minute)
}

func applySnap(t *testing.T, m Model, snap Snapshot) Model {
	t.Helper()
	next, _ := m.Update(snapMsg(snap))
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(&Pipeline{Sched: &fakeScheduler{}}, "batch", 0)
	assert.Equal(t, DefaultRefreshInterval, m.interval)
	assert.Equal(t, "batch", m.Partition())
	assert.True(t, m.refreshing)

	m = NewModel(&Pipeline{Sched: &fakeScheduler{}}, "gpu_q", 10*time.Second)
	assert.Equal(t, 10*time.Second, m.interval)
	assert.Equal(t, "gpu_q", m.Partition())
}

func TestModelAppliesSnapshot(t *testing.T) {
	m := newTestModel(&fakeScheduler{})

	snap := Snapshot{Nodes: testNodes(), LastUpdate: time.Now()}
	m = applySnap(t, m, snap)

	assert.False(t, m.refreshing)
	assert.Len(t, m.Snapshot().Nodes, 4)
}

func TestModelSelectionClampsWhenNodesShrink(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	m = applySnap(t, m, Snapshot{Nodes: testNodes()})

	m.SelectRow(3)
	assert.Equal(t, 3, m.SelectedRow())

	// A shrunken collection pulls the cursor back to the last row.
	m = applySnap(t, m, Snapshot{Nodes: testNodes()[:2]})
	assert.Equal(t, 1, m.SelectedRow())
}

func TestModelSelectRowBounds(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	m = applySnap(t, m, Snapshot{Nodes: testNodes()})

	m.SelectRow(-5)
	assert.Equal(t, 0, m.SelectedRow())

	m.SelectRow(99)
	assert.Equal(t, len(testNodes())-1, m.SelectedRow())

	empty := newTestModel(&fakeScheduler{})
	empty = applySnap(t, empty, Snapshot{})
	empty.SelectRow(5)
	assert.Equal(t, 0, empty.SelectedRow())
}

func TestModelRefreshGuard(t *testing.T) {
	m := newTestModel(&fakeScheduler{})

	// The initial refresh is still in flight; further triggers are dropped.
	cmd, ok := m.triggerRefresh()
	assert.False(t, ok)
	assert.Nil(t, cmd)

	m = applySnap(t, m, Snapshot{Nodes: testNodes()})
	cmd, ok = m.triggerRefresh()
	assert.True(t, ok)
	assert.NotNil(t, cmd)

	// And dropped again while that one runs.
	_, ok = m.triggerRefresh()
	assert.False(t, ok)
}

func TestModelSwitchPartition(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	m = applySnap(t, m, Snapshot{Nodes: testNodes()})

	cmd := m.SwitchPartition(partitionGPU)
	assert.Equal(t, partitionGPU, m.Partition())
	assert.NotNil(t, cmd)

	// Switching again mid-refresh still flips the partition; the fetch
	// trigger is dropped.
	cmd = m.SwitchPartition(partitionHighmem)
	assert.Equal(t, partitionHighmem, m.Partition())
	assert.Nil(t, cmd)
}

func TestModelQuitKey(t *testing.T) {
	m := newTestModel(&fakeScheduler{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	updated := next.(Model)

	assert.True(t, updated.quitting)
	assert.Equal(t, "", updated.View())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelPartitionKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want string
	}{
		{key: 'b', want: partitionBatch},
		{key: 'm', want: partitionHighmem},
		{key: 'g', want: partitionGPU},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := newTestModel(&fakeScheduler{})
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			assert.Equal(t, tt.want, next.(Model).Partition())
		})
	}
}

func TestModelRefreshKeyRunsPipeline(t *testing.T) {
	fake := &fakeScheduler{nodes: testNodes()}
	m := newTestModel(fake)
	m = applySnap(t, m, Snapshot{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(Model)
	require.NotNil(t, cmd)

	// The command runs the pipeline off the event loop and delivers the
	// snapshot back as a message.
	msg := cmd()
	snap, ok := msg.(snapMsg)
	require.True(t, ok)
	assert.Len(t, snap.Nodes, 4)

	m = applySnap(t, m, Snapshot(snap))
	assert.Equal(t, 4, m.Snapshot().Stats.TotalNodes)
}

func TestFormatResourceBar(t *testing.T) {
	bar := formatResourceBar(0, 0)
	assert.Contains(t, bar, " 0/0")

	bar = formatResourceBar(16, 32)
	assert.Contains(t, bar, " 16/32")

	// Over-reported usage never overflows the gauge.
	bar = formatResourceBar(64, 32)
	assert.Contains(t, bar, " 64/32")
}

func TestFormatNodeID(t *testing.T) {
	assert.Equal(t, "node001", formatNodeID("node001", false))
	assert.Contains(t, formatNodeID("node001", true), "★")
}

func TestModelViewBeforeFirstSize(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	assert.Equal(t, "Loading...", m.View())
}

func TestModelViewRendersSnapshot(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m = applySnap(t, m, Snapshot{
		Nodes:      testNodes(),
		Stats:      model.ComputeStats(testNodes()),
		LastUpdate: time.Now(),
	})

	view := m.View()
	assert.Contains(t, view, "Partition: batch")
	assert.Contains(t, view, "Nodes: 4 total")
	assert.Contains(t, view, "Jobs: 0 running")
}

func TestModelViewShowsError(t *testing.T) {
	m := newTestModel(&fakeScheduler{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m = applySnap(t, m, Snapshot{ErrMsg: "scontrol failed: timeout", LastUpdate: time.Now()})

	assert.Contains(t, m.View(), "scontrol failed: timeout")
}
