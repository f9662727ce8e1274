package sched

import (
	"github.com/nodetop/nodetop/internal/model"
	"github.com/nodetop/nodetop/internal/sched/parsers"
)

// slurmJobFormat selects the sacct columns the job parser expects, in
// order.
const slurmJobFormat = "partition,NodeList,JobID,User,jobname,State," +
	"ReqNodes,ReqCPUs,ReqMem,Timelimit,Elapsed,CPUTime"

// slurmScheduler queries a Slurm cluster through scontrol and sacct.
type slurmScheduler struct {
	run runner
}

func (s *slurmScheduler) Nodes(partition string) ([]model.Node, error) {
	out, err := s.run.run("scontrol", "show", "nodes")
	if err != nil {
		return nil, err
	}

	nodes := parsers.SlurmNodes(out, partition)
	if len(nodes) == 0 {
		return nil, &NoNodesError{Partition: partition}
	}
	return nodes, nil
}

func (s *slurmScheduler) Jobs(partition string) ([]model.Job, error) {
	out, err := s.run.run("sacct", "-a", "--format", slurmJobFormat, "-p")
	if err != nil {
		return nil, err
	}
	return parsers.SlurmJobs(out, partition), nil
}

func (s *slurmScheduler) UserJobs(user string) ([]model.Job, error) {
	out, err := s.run.run("sacct", "-u", user, "--format", slurmJobFormat, "-p")
	if err != nil {
		return nil, err
	}
	return parsers.SlurmUserJobs(out), nil
}
