package model

import "time"

// JobState is the normalized lifecycle class of a submitted job.
type JobState int

const (
	JobRunning JobState = iota
	JobPending
	JobCompleted
	JobCancelled
	JobFailed
)

// String returns the short scheduler-style code for the state.
func (s JobState) String() string {
	switch s {
	case JobRunning:
		return "R"
	case JobPending:
		return "PD"
	case JobCompleted:
		return "C"
	case JobCancelled:
		return "CA"
	case JobFailed:
		return "F"
	default:
		return "?"
	}
}

// Job is a unit of scheduled work. Like nodes, jobs are rebuilt on every
// fetch cycle. Backends that can't report a submit time substitute the
// current time.
type Job struct {
	ID         string
	User       string
	Name       string
	State      JobState
	NodeList   []string // node IDs the job occupies; may hold a placeholder
	Partition  string
	ReqNodes   int
	ReqCPUs    int
	ReqMemMB   int
	TimeLimit  time.Duration
	Elapsed    time.Duration
	CPUTime    time.Duration
	SubmitTime time.Time
}

// ReqMemGB returns requested memory in decimal gigabytes.
func (j *Job) ReqMemGB() int {
	return j.ReqMemMB / 1000
}

// OnNode reports whether the job occupies the named node.
func (j *Job) OnNode(nodeID string) bool {
	for _, n := range j.NodeList {
		if n == nodeID {
			return true
		}
	}
	return false
}
