package dash

import (
	"time"

	"github.com/nodetop/nodetop/internal/model"
)

// Snapshot is one refresh cycle's consistent view state: the sorted node
// collection, the stats computed from exactly that collection, the
// partition's running jobs, and the current user's jobs. Snapshots are
// value types replaced whole; nodes and stats are never observed in a
// mismatched pairing.
type Snapshot struct {
	Nodes      []model.Node
	Stats      model.ClusterStats
	Jobs       []model.Job
	UserJobs   []model.Job
	LastUpdate time.Time
	ErrMsg     string // most recent node-fetch failure, empty when healthy
}

// UserOwnsNode reports whether the current user has a running job on the
// named node. Drives the star highlight in the node table.
func (s *Snapshot) UserOwnsNode(nodeID string) bool {
	for i := range s.UserJobs {
		job := &s.UserJobs[i]
		if job.State == model.JobRunning && job.OnNode(nodeID) {
			return true
		}
	}
	return false
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// refresh, zero before the first one.
func (s *Snapshot) SecondsSinceUpdate() int {
	if s.LastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(s.LastUpdate).Seconds())
}
