package sched

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nodetop/nodetop/internal/model"
)

// Synthetic cluster shape per partition. Tests assert against these bands,
// so they are constants rather than inline literals: a partition's nodes
// always land in [base, base+spread).
const (
	mockBatchNodes        = 25
	mockBatchBaseCores    = 32
	mockBatchCoreSpread   = 32
	mockBatchBaseMemGB    = 128
	mockBatchMemSpreadGB  = 256
	mockHighmemNodes      = 8
	mockHighmemBaseCores  = 48
	mockHighmemCoreSpread = 16
	mockHighmemBaseMemGB  = 512
	mockHighmemMemSpread  = 1024
	mockGPUNodes          = 6
	mockGPUBaseCores      = 40
	mockGPUCoreSpread     = 20
	mockGPUBaseMemGB      = 256
	mockGPUMemSpreadGB    = 256

	mockMinPartitionJobs    = 10
	mockPartitionJobsSpread = 20
	mockMaxUserJobs         = 3
)

// mockScheduler generates plausible random nodes and jobs for demos and
// testing without a real cluster.
type mockScheduler struct {
	rng *rand.Rand
}

// NewMock returns a synthetic backend seeded from the clock.
func NewMock() Scheduler {
	return &mockScheduler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// newMockWithSeed returns a deterministic synthetic backend for tests.
func newMockWithSeed(seed int64) *mockScheduler {
	return &mockScheduler{rng: rand.New(rand.NewSource(seed))}
}

func (m *mockScheduler) Nodes(partition string) ([]model.Node, error) {
	var count int
	var prefix string
	switch partition {
	case "batch":
		count, prefix = mockBatchNodes, "batch"
	case "highmem_q":
		count, prefix = mockHighmemNodes, "highmem"
	case "gpu_q":
		count, prefix = mockGPUNodes, "gpu"
	default:
		return nil, &NoNodesError{Partition: partition}
	}

	nodes := make([]model.Node, count)
	for i := range nodes {
		node := model.Node{
			ID:         fmt.Sprintf("%s%03d", prefix, i+1),
			Partitions: []string{partition},
		}

		switch partition {
		case "batch":
			node.TotalCores = mockBatchBaseCores + m.rng.Intn(mockBatchCoreSpread)
			node.TotalMemMB = (mockBatchBaseMemGB + m.rng.Intn(mockBatchMemSpreadGB)) * 1000
		case "highmem_q":
			node.TotalCores = mockHighmemBaseCores + m.rng.Intn(mockHighmemCoreSpread)
			node.TotalMemMB = (mockHighmemBaseMemGB + m.rng.Intn(mockHighmemMemSpread)) * 1000
		case "gpu_q":
			node.TotalCores = mockGPUBaseCores + m.rng.Intn(mockGPUCoreSpread)
			node.TotalMemMB = (mockGPUBaseMemGB + m.rng.Intn(mockGPUMemSpreadGB)) * 1000
		}

		// Running is twice as likely as the other states.
		states := []model.NodeState{
			model.StateIdle,
			model.StateRunning,
			model.StateRunning,
			model.StateDown,
			model.StateBusy,
		}
		node.State = states[m.rng.Intn(len(states))]

		switch node.State {
		case model.StateIdle:
			node.UsedCores = 0
			node.UsedMemMB = m.rng.Intn(node.TotalMemMB / 10)
		case model.StateRunning:
			node.UsedCores = m.rng.Intn(node.TotalCores)
			node.UsedMemMB = m.rng.Intn(node.TotalMemMB)
		case model.StateBusy:
			node.UsedCores = node.TotalCores
			node.UsedMemMB = node.TotalMemMB - m.rng.Intn(node.TotalMemMB/4)
		default:
			node.UsedCores = 0
			node.UsedMemMB = 0
		}

		if node.State == model.StateRunning && node.UsedCores > 0 {
			for j := 0; j < 1+m.rng.Intn(3); j++ {
				node.Jobs = append(node.Jobs, fmt.Sprintf("%d", 100000+m.rng.Intn(999999)))
			}
		}

		nodes[i] = node
	}

	return nodes, nil
}

func (m *mockScheduler) Jobs(partition string) ([]model.Job, error) {
	users := []string{"alice", "bob", "carol", "dave", "eve", "frank", "grace", "henry"}

	count := mockMinPartitionJobs + m.rng.Intn(mockPartitionJobsSpread)
	jobs := make([]model.Job, count)
	for i := range jobs {
		jobs[i] = model.Job{
			ID:         fmt.Sprintf("%d", 100000+m.rng.Intn(999999)),
			User:       users[m.rng.Intn(len(users))],
			Name:       fmt.Sprintf("job_%d", i+1),
			State:      model.JobRunning,
			Partition:  partition,
			NodeList:   []string{fmt.Sprintf("%s%03d", partition, 1+m.rng.Intn(20))},
			ReqNodes:   1 + m.rng.Intn(4),
			ReqCPUs:    8 + m.rng.Intn(32),
			ReqMemMB:   (16 + m.rng.Intn(128)) * 1000,
			Elapsed:    time.Duration(m.rng.Intn(86400)) * time.Second,
			SubmitTime: time.Now(),
		}
	}

	return jobs, nil
}

func (m *mockScheduler) UserJobs(user string) ([]model.Job, error) {
	count := m.rng.Intn(mockMaxUserJobs + 1)
	jobs := make([]model.Job, count)
	for i := range jobs {
		jobs[i] = model.Job{
			ID:         fmt.Sprintf("%d", 200000+m.rng.Intn(999999)),
			User:       user,
			Name:       fmt.Sprintf("my_job_%d", i+1),
			State:      model.JobRunning,
			Partition:  "batch",
			NodeList:   []string{fmt.Sprintf("batch%03d", 1+m.rng.Intn(10))},
			ReqNodes:   1,
			ReqCPUs:    4 + m.rng.Intn(16),
			ReqMemMB:   (8 + m.rng.Intn(64)) * 1000,
			Elapsed:    time.Duration(m.rng.Intn(43200)) * time.Second,
			SubmitTime: time.Now(),
		}
	}

	return jobs, nil
}
