package dash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodetop/nodetop/internal/model"
	"github.com/nodetop/nodetop/internal/sched"
)

// fakeScheduler scripts backend responses for pipeline tests.
type fakeScheduler struct {
	nodes    []model.Node
	nodesErr error

	jobs    []model.Job
	jobsErr error

	userJobs    []model.Job
	userJobsErr error
}

func (f *fakeScheduler) Nodes(partition string) ([]model.Node, error) {
	return f.nodes, f.nodesErr
}

func (f *fakeScheduler) Jobs(partition string) ([]model.Job, error) {
	return f.jobs, f.jobsErr
}

func (f *fakeScheduler) UserJobs(user string) ([]model.Job, error) {
	return f.userJobs, f.userJobsErr
}

func testNodes() []model.Node {
	return []model.Node{
		{ID: "node001", State: model.StateRunning, TotalCores: 32, UsedCores: 16, TotalMemMB: 128000, UsedMemMB: 64000},
		{ID: "node002", State: model.StateIdle, TotalCores: 48, TotalMemMB: 256000},
		{ID: "node003", State: model.StateDown, TotalCores: 32, TotalMemMB: 128000},
		{ID: "node004", State: model.StateBusy, TotalCores: 32, UsedCores: 32, TotalMemMB: 128000, UsedMemMB: 128000},
	}
}

func TestPipelineRefreshSuccess(t *testing.T) {
	fake := &fakeScheduler{
		nodes:    testNodes(),
		jobs:     []model.Job{{ID: "1001", State: model.JobRunning}},
		userJobs: []model.Job{{ID: "1001", User: "alice", State: model.JobRunning}},
	}
	p := &Pipeline{Sched: fake, User: "alice"}

	snap := p.Refresh(Snapshot{}, "batch")

	require.Len(t, snap.Nodes, 4)
	assert.Equal(t, "node002", snap.Nodes[0].ID) // idle 48-core node leads
	assert.Equal(t, "node001", snap.Nodes[1].ID)
	assert.Empty(t, snap.ErrMsg)
	assert.False(t, snap.LastUpdate.IsZero())
	assert.Len(t, snap.Jobs, 1)
	assert.Len(t, snap.UserJobs, 1)

	// Stats derive from exactly the fetched collection.
	assert.Equal(t, 4, snap.Stats.TotalNodes)
	assert.Equal(t, snap.Stats, model.ComputeStats(snap.Nodes))
}

func TestPipelineNodeErrorRetainsPreviousData(t *testing.T) {
	good := &fakeScheduler{nodes: testNodes()}
	p := &Pipeline{Sched: good, User: "alice"}
	prev := p.Refresh(Snapshot{}, "batch")
	require.Empty(t, prev.ErrMsg)

	bad := &fakeScheduler{nodesErr: &sched.CommandError{Command: "scontrol", Stderr: "timeout"}}
	p.Sched = bad
	next := p.Refresh(prev, "batch")

	assert.Equal(t, prev.Nodes, next.Nodes)
	assert.Equal(t, prev.Stats, next.Stats)
	assert.Equal(t, "scontrol failed: timeout", next.ErrMsg)
	assert.True(t, next.LastUpdate.After(prev.LastUpdate) || next.LastUpdate.Equal(prev.LastUpdate))
}

func TestPipelineErrorClearsOnRecovery(t *testing.T) {
	p := &Pipeline{Sched: &fakeScheduler{nodesErr: &sched.NoNodesError{Partition: "batch"}}}
	failed := p.Refresh(Snapshot{}, "batch")
	require.NotEmpty(t, failed.ErrMsg)

	p.Sched = &fakeScheduler{nodes: testNodes()}
	recovered := p.Refresh(failed, "batch")

	assert.Empty(t, recovered.ErrMsg)
	assert.Len(t, recovered.Nodes, 4)
}

func TestPipelineJobErrorsAreAbsorbed(t *testing.T) {
	good := &fakeScheduler{
		nodes:    testNodes(),
		jobs:     []model.Job{{ID: "1001"}},
		userJobs: []model.Job{{ID: "1002"}},
	}
	p := &Pipeline{Sched: good}
	prev := p.Refresh(Snapshot{}, "batch")

	p.Sched = &fakeScheduler{
		nodes:       testNodes(),
		jobsErr:     &sched.CommandError{Command: "sacct"},
		userJobsErr: &sched.CommandError{Command: "sacct"},
	}
	next := p.Refresh(prev, "batch")

	// Node data refreshed, job lists carried over, no error surfaced.
	assert.Empty(t, next.ErrMsg)
	assert.Equal(t, prev.Jobs, next.Jobs)
	assert.Equal(t, prev.UserJobs, next.UserJobs)
}

func TestPipelineRefreshIsIdempotent(t *testing.T) {
	fake := &fakeScheduler{nodes: testNodes()}
	p := &Pipeline{Sched: fake}

	first := p.Refresh(Snapshot{}, "batch")
	second := p.Refresh(first, "batch")

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestSortNodes(t *testing.T) {
	nodes := []model.Node{
		{ID: "down", State: model.StateDown, TotalCores: 64, TotalMemMB: 512000},
		{ID: "busy", State: model.StateBusy, TotalCores: 32, UsedCores: 32, TotalMemMB: 128000, UsedMemMB: 128000},
		{ID: "small", State: model.StateIdle, TotalCores: 8, TotalMemMB: 32000},
		{ID: "saturated", State: model.StateRunning, TotalCores: 32, UsedCores: 32, TotalMemMB: 128000},
		{ID: "big", State: model.StateIdle, TotalCores: 48, TotalMemMB: 256000},
	}

	SortNodes(nodes)

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"big", "small", "saturated", "busy", "down"}, ids)
}

func TestSortNodesMemoryBreaksTies(t *testing.T) {
	nodes := []model.Node{
		{ID: "lean", State: model.StateIdle, TotalCores: 32, TotalMemMB: 64000},
		{ID: "fat", State: model.StateIdle, TotalCores: 32, TotalMemMB: 256000},
	}

	SortNodes(nodes)
	assert.Equal(t, "fat", nodes[0].ID)
}

func TestSortNodesStable(t *testing.T) {
	nodes := []model.Node{
		{ID: "first", State: model.StateDown},
		{ID: "second", State: model.StateDown},
		{ID: "third", State: model.StateOffline},
	}

	SortNodes(nodes)

	assert.Equal(t, "first", nodes[0].ID)
	assert.Equal(t, "second", nodes[1].ID)
	assert.Equal(t, "third", nodes[2].ID)
}

func TestSnapshotUserOwnsNode(t *testing.T) {
	snap := Snapshot{
		UserJobs: []model.Job{
			{ID: "1", State: model.JobRunning, NodeList: []string{"node001", "node002"}},
			{ID: "2", State: model.JobPending, NodeList: []string{"node003"}},
		},
	}

	assert.True(t, snap.UserOwnsNode("node001"))
	assert.True(t, snap.UserOwnsNode("node002"))
	assert.False(t, snap.UserOwnsNode("node003")) // pending jobs don't count
	assert.False(t, snap.UserOwnsNode("node004"))
}

func TestSnapshotSecondsSinceUpdate(t *testing.T) {
	var snap Snapshot
	assert.Equal(t, 0, snap.SecondsSinceUpdate())

	snap.LastUpdate = time.Now().Add(-5 * time.Second)
	assert.GreaterOrEqual(t, snap.SecondsSinceUpdate(), 5)
	assert.Less(t, snap.SecondsSinceUpdate(), 8)
}
