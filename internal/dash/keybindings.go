package dash

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Partition hotkeys map to the cluster's conventional queue names.
const (
	partitionBatch   = "batch"
	partitionHighmem = "highmem_q"
	partitionGPU     = "gpu_q"
)

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Batch   key.Binding
	HighMem key.Binding
	GPU     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", " "),
			key.WithHelp("r/space", "refresh"),
		),
		Batch: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "batch partition"),
		),
		HighMem: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "highmem partition"),
		),
		GPU: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gpu partition"),
		),
	}
}

// handleKey processes a key press. Navigation keys are left to the table;
// everything else either quits, refreshes, or switches partition.
func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		cmd, _ := m.triggerRefresh()
		return true, m, cmd

	case key.Matches(msg, m.keys.Batch):
		return true, m, m.SwitchPartition(partitionBatch)

	case key.Matches(msg, m.keys.HighMem):
		return true, m, m.SwitchPartition(partitionHighmem)

	case key.Matches(msg, m.keys.GPU):
		return true, m, m.SwitchPartition(partitionGPU)
	}

	return false, m, nil
}
