package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nodetop/nodetop/internal/model"
)

// resourceBarWidth is the character width of the usage gauges.
const resourceBarWidth = 20

func (m Model) render() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, titleStyle.Render("nodetop — cluster monitor"))
	sections = append(sections, "")

	if m.snap.ErrMsg != "" {
		sections = append(sections, errorStyle.Render("Error: "+m.snap.ErrMsg))
		sections = append(sections, "")
	}

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStats())
	sections = append(sections, "")

	sections = append(sections, headerStyle.Render("Nodes"))
	sections = append(sections, m.table.View())

	sections = append(sections, "")
	sections = append(sections, m.renderJobsSummary())
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the current partition and the age of the snapshot.
func (m Model) renderHeader() string {
	partition := partitionStyle.Render(fmt.Sprintf("Partition: %s", m.partition))

	age := "never"
	if !m.snap.LastUpdate.IsZero() {
		age = fmt.Sprintf("%s (%ds ago)",
			m.snap.LastUpdate.Format("15:04:05"), m.snap.SecondsSinceUpdate())
	}
	lastUpdate := mutedStyle.Render("Last update: " + age)

	return lipgloss.JoinHorizontal(lipgloss.Top, partition, "  ", lastUpdate)
}

// renderStats shows the aggregate utilization gauges and node counts.
func (m Model) renderStats() string {
	stats := m.snap.Stats

	cpuBar := formatResourceBar(stats.UsedCores, stats.TotalCores)
	memBar := formatResourceBar(stats.UsedMemoryGB, stats.TotalMemoryGB)
	nodeCounts := fmt.Sprintf("Nodes: %d total, %d available",
		stats.TotalNodes, stats.AvailNodes)

	return statsStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			"CPU  "+cpuBar,
			"MEM  "+memBar,
			nodeCounts,
		),
	)
}

func (m Model) renderJobsSummary() string {
	running := len(m.snap.Jobs)
	mine := 0
	for i := range m.snap.UserJobs {
		if m.snap.UserJobs[i].State == model.JobRunning {
			mine++
		}
	}
	return headerStyle.Render(fmt.Sprintf("Jobs: %d running (%d yours)", running, mine))
}

func (m Model) renderHelp() string {
	return mutedStyle.Render("b: batch | m: highmem | g: gpu | r: refresh | ↑/k ↓/j: navigate | q: quit")
}

// formatNodeID marks nodes running one of the current user's jobs with a
// star.
func formatNodeID(nodeID string, userHasJobs bool) string {
	if userHasJobs {
		return userNodeStyle.Render("★ " + nodeID)
	}
	return nodeID
}

// formatResourceBar renders a used/total gauge: a red used segment, a
// green free segment, and the numbers alongside.
func formatResourceBar(used, total int) string {
	if total == 0 {
		return strings.Repeat("░", resourceBarWidth) + " 0/0"
	}

	filled := int(float64(used) / float64(total) * float64(resourceBarWidth))
	if filled > resourceBarWidth {
		filled = resourceBarWidth
	}
	if filled < 0 {
		filled = 0
	}

	var bar strings.Builder
	bar.WriteString(usedStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(availableStyle.Render(strings.Repeat("░", resourceBarWidth-filled)))
	bar.WriteString(fmt.Sprintf(" %d/%d", used, total))
	return bar.String()
}

// formatNodeState renders the state label with its status color.
func formatNodeState(state model.NodeState) string {
	switch state {
	case model.StateIdle:
		return availableStyle.Render(state.String())
	case model.StateRunning:
		return runningStyle.Render(state.String())
	case model.StateDown, model.StateOffline:
		return offlineStyle.Render(state.String())
	default:
		return usedStyle.Render(state.String())
	}
}
