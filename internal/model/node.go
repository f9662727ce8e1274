// Package model defines the canonical node, job, and cluster statistics
// types shared by every scheduler backend and the dashboard. The types are
// pure data; all derived quantities are total for non-negative inputs.
package model

// NodeState is the normalized availability class of a compute host.
// Backend-specific state strings that don't map to a known class are
// reported as StateOffline, the conservative default.
type NodeState int

const (
	StateIdle NodeState = iota
	StateRunning
	StateDown
	StateOffline
	StateBusy
	StateDrained
)

// String returns the display label for the state.
func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateDown:
		return "Down"
	case StateOffline:
		return "Offline"
	case StateBusy:
		return "Busy"
	case StateDrained:
		return "Drained"
	default:
		return "Offline"
	}
}

// Node is a single compute host as reported by a scheduler backend.
// Node collections are rebuilt from scratch on every fetch cycle; nothing
// mutates a Node in place after parsing.
type Node struct {
	ID         string
	State      NodeState
	TotalCores int
	UsedCores  int
	TotalMemMB int
	UsedMemMB  int
	Partitions []string
	Jobs       []string // job IDs scheduled on this node; may be incomplete
}

// AvailCores returns unallocated CPU cores, never negative.
func (n *Node) AvailCores() int {
	if n.UsedCores >= n.TotalCores {
		return 0
	}
	return n.TotalCores - n.UsedCores
}

// AvailMemGB returns unallocated memory in decimal gigabytes (MB/1000).
func (n *Node) AvailMemGB() int {
	if n.UsedMemMB >= n.TotalMemMB {
		return 0
	}
	return (n.TotalMemMB - n.UsedMemMB) / 1000
}

// TotalMemGB returns total memory in decimal gigabytes.
func (n *Node) TotalMemGB() int {
	return n.TotalMemMB / 1000
}

// UsedMemGB returns used memory in decimal gigabytes.
func (n *Node) UsedMemGB() int {
	return n.UsedMemMB / 1000
}

// IsAvailable reports whether the node can accept work: it must be idle or
// running and have both cores and at least a gigabyte of memory free.
func (n *Node) IsAvailable() bool {
	return (n.State == StateIdle || n.State == StateRunning) &&
		n.AvailCores() > 0 && n.AvailMemGB() > 0
}

// CPUUtilization returns the used-core fraction in [0,1].
func (n *Node) CPUUtilization() float64 {
	if n.TotalCores == 0 {
		return 0
	}
	return float64(n.UsedCores) / float64(n.TotalCores)
}

// MemoryUtilization returns the used-memory fraction in [0,1].
func (n *Node) MemoryUtilization() float64 {
	if n.TotalMemMB == 0 {
		return 0
	}
	return float64(n.UsedMemMB) / float64(n.TotalMemMB)
}

// InPartition reports whether the node declares membership in the named
// partition.
func (n *Node) InPartition(partition string) bool {
	for _, p := range n.Partitions {
		if p == partition {
			return true
		}
	}
	return false
}

// Power is the composite ranking score used to order available nodes:
// free cores dominate, free memory breaks ties.
func (n *Node) Power() int {
	return n.AvailCores()*1000 + n.AvailMemGB()
}
