package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeAvailCores(t *testing.T) {
	tests := []struct {
		name  string
		total int
		used  int
		want  int
	}{
		{name: "normal headroom", total: 32, used: 8, want: 24},
		{name: "fully used", total: 32, used: 32, want: 0},
		{name: "over-reported usage clamps to zero", total: 32, used: 40, want: 0},
		{name: "empty node", total: 0, used: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Node{TotalCores: tt.total, UsedCores: tt.used}
			assert.Equal(t, tt.want, n.AvailCores())
		})
	}
}

func TestNodeAvailMemGB(t *testing.T) {
	tests := []struct {
		name    string
		totalMB int
		usedMB  int
		want    int
	}{
		{name: "decimal division", totalMB: 128000, usedMB: 64000, want: 64},
		{name: "sub-gigabyte remainder truncates", totalMB: 128000, usedMB: 127500, want: 0},
		{name: "over-reported usage clamps to zero", totalMB: 8000, usedMB: 9000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Node{TotalMemMB: tt.totalMB, UsedMemMB: tt.usedMB}
			assert.Equal(t, tt.want, n.AvailMemGB())
		})
	}
}

func TestNodeIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{
			name: "idle with headroom",
			node: Node{State: StateIdle, TotalCores: 32, TotalMemMB: 128000},
			want: true,
		},
		{
			name: "running with headroom",
			node: Node{State: StateRunning, TotalCores: 32, UsedCores: 16, TotalMemMB: 128000, UsedMemMB: 64000},
			want: true,
		},
		{
			name: "running but no free cores",
			node: Node{State: StateRunning, TotalCores: 32, UsedCores: 32, TotalMemMB: 128000},
			want: false,
		},
		{
			name: "running but under a gigabyte free",
			node: Node{State: StateRunning, TotalCores: 32, UsedCores: 16, TotalMemMB: 128000, UsedMemMB: 127500},
			want: false,
		},
		{
			name: "down node with headroom",
			node: Node{State: StateDown, TotalCores: 32, TotalMemMB: 128000},
			want: false,
		},
		{
			name: "drained node",
			node: Node{State: StateDrained, TotalCores: 32, TotalMemMB: 128000},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.IsAvailable())
		})
	}
}

func TestNodePower(t *testing.T) {
	// Cores dominate the score; memory only breaks ties.
	small := Node{State: StateIdle, TotalCores: 4, TotalMemMB: 999000}
	big := Node{State: StateIdle, TotalCores: 5, TotalMemMB: 1000}

	assert.Equal(t, 4*1000+999, small.Power())
	assert.Equal(t, 5*1000+1, big.Power())
	assert.Greater(t, big.Power(), small.Power())
}

func TestNodeUtilization(t *testing.T) {
	n := Node{TotalCores: 32, UsedCores: 8, TotalMemMB: 100, UsedMemMB: 25}
	assert.InDelta(t, 0.25, n.CPUUtilization(), 0.001)
	assert.InDelta(t, 0.25, n.MemoryUtilization(), 0.001)

	empty := Node{}
	assert.Zero(t, empty.CPUUtilization())
	assert.Zero(t, empty.MemoryUtilization())
}

func TestNodeInPartition(t *testing.T) {
	n := Node{Partitions: []string{"batch", "long"}}
	assert.True(t, n.InPartition("batch"))
	assert.True(t, n.InPartition("long"))
	assert.False(t, n.InPartition("gpu_q"))
	assert.False(t, (&Node{}).InPartition("batch"))
}

func TestNodeStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Down", StateDown.String())
	assert.Equal(t, "Offline", StateOffline.String())
	assert.Equal(t, "Busy", StateBusy.String())
	assert.Equal(t, "Drained", StateDrained.String())
}
