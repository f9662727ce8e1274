package sched

import (
	"github.com/nodetop/nodetop/internal/model"
	"github.com/nodetop/nodetop/internal/sched/parsers"
)

// torqueScheduler queries a Torque/PBS cluster through mdiag and qstat.
type torqueScheduler struct {
	run runner
}

func (t *torqueScheduler) Nodes(partition string) ([]model.Node, error) {
	out, err := t.run.run("mdiag", "-n", "-v")
	if err != nil {
		return nil, err
	}

	nodes := parsers.TorqueNodes(out, partition)
	if len(nodes) == 0 {
		return nil, &NoNodesError{Partition: partition}
	}
	return nodes, nil
}

func (t *torqueScheduler) Jobs(partition string) ([]model.Job, error) {
	out, err := t.run.run("qstat", "-f", partition)
	if err != nil {
		return nil, err
	}
	return parsers.TorqueJobs(out), nil
}

func (t *torqueScheduler) UserJobs(user string) ([]model.Job, error) {
	out, err := t.run.run("qstat", "-u", user)
	if err != nil {
		return nil, err
	}
	return parsers.TorqueUserJobs(out), nil
}
