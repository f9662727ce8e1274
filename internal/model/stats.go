package model

// ClusterStats aggregates a node collection into cluster-wide totals.
// A ClusterStats value is always recomputed from the collection it
// describes and never mutated independently.
type ClusterStats struct {
	TotalNodes    int
	AvailNodes    int
	TotalCores    int
	UsedCores     int
	AvailCores    int
	TotalMemoryGB int
	UsedMemoryGB  int
	AvailMemoryGB int
}

// ComputeStats sums node resources into cluster statistics. Available
// figures are clamped at zero so over-reported usage can't produce
// negative capacity.
func ComputeStats(nodes []Node) ClusterStats {
	var stats ClusterStats

	for i := range nodes {
		n := &nodes[i]
		stats.TotalNodes++
		stats.TotalCores += n.TotalCores
		stats.UsedCores += n.UsedCores
		stats.TotalMemoryGB += n.TotalMemGB()
		stats.UsedMemoryGB += n.UsedMemGB()

		if n.IsAvailable() {
			stats.AvailNodes++
		}
	}

	stats.AvailCores = stats.TotalCores - stats.UsedCores
	if stats.AvailCores < 0 {
		stats.AvailCores = 0
	}
	stats.AvailMemoryGB = stats.TotalMemoryGB - stats.UsedMemoryGB
	if stats.AvailMemoryGB < 0 {
		stats.AvailMemoryGB = 0
	}

	return stats
}
