// Package dash contains the refresh/derive pipeline and the Bubble Tea
// dashboard built on top of it. The pipeline owns the rules that turn a
// raw scheduler snapshot into sorted, highlighted, aggregated view state;
// the dashboard model owns timers, input, and rendering.
package dash

import (
	"sort"
	"time"

	"github.com/nodetop/nodetop/internal/logger"
	"github.com/nodetop/nodetop/internal/model"
	"github.com/nodetop/nodetop/internal/sched"
)

// Pipeline runs one fetch cycle against a scheduler backend and derives
// the next snapshot from it. It holds no mutable state of its own, which
// keeps Refresh trivially testable with a fake scheduler.
type Pipeline struct {
	Sched sched.Scheduler
	User  string
	Log   logger.Logger
}

// Refresh fetches nodes, partition jobs, and user jobs, and derives the
// next snapshot from prev.
//
// A node-fetch failure records an error message and retains the previous
// nodes and stats unchanged; transient failures must not blank out valid
// data. Job fetches are independent: either may fail without aborting the
// cycle, leaving the corresponding previous list in place. The refresh
// timestamp is recorded regardless of partial failures.
func (p *Pipeline) Refresh(prev Snapshot, partition string) Snapshot {
	next := prev

	nodes, err := p.Sched.Nodes(partition)
	if err != nil {
		p.log().Debug("node fetch for %s failed: %v", partition, err)
		next.ErrMsg = err.Error()
	} else {
		SortNodes(nodes)
		next.Nodes = nodes
		next.Stats = model.ComputeStats(nodes)
		next.ErrMsg = ""
	}

	if jobs, err := p.Sched.Jobs(partition); err == nil {
		next.Jobs = jobs
	} else {
		p.log().Debug("job fetch for %s failed: %v", partition, err)
	}

	if userJobs, err := p.Sched.UserJobs(p.User); err == nil {
		next.UserJobs = userJobs
	} else {
		p.log().Debug("user job fetch for %s failed: %v", p.User, err)
	}

	next.LastUpdate = time.Now()
	return next
}

func (p *Pipeline) log() logger.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logger.Noop()
}

// SortNodes orders a node collection for display: available nodes first,
// the most powerful (free cores dominating, free memory breaking ties) at
// the top; unavailable nodes after, Running before Busy before everything
// else. The sort is stable, so equal nodes keep their input order and the
// result is deterministic for identical backend output.
func SortNodes(nodes []model.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ni, nj := &nodes[i], &nodes[j]

		availI, availJ := ni.IsAvailable(), nj.IsAvailable()
		if availI != availJ {
			return availI
		}
		if availI {
			return ni.Power() > nj.Power()
		}
		return unavailableRank(ni.State) < unavailableRank(nj.State)
	})
}

// unavailableRank orders nodes that can't accept work: still-running
// nodes are the most interesting, saturated ones next, everything else
// ties.
func unavailableRank(state model.NodeState) int {
	switch state {
	case model.StateRunning:
		return 0
	case model.StateBusy:
		return 1
	default:
		return 2
	}
}
