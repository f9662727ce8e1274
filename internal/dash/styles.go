package dash

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	colorTitle     = lipgloss.Color("212")
	colorHeader    = lipgloss.Color("39")
	colorBorder    = lipgloss.Color("62")
	colorMuted     = lipgloss.Color("240")
	colorError     = lipgloss.Color("196")
	colorAvailable = lipgloss.Color("46")
	colorUsed      = lipgloss.Color("196")
	colorRunning   = lipgloss.Color("205")
	colorHighlight = lipgloss.Color("226")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader).
			MarginBottom(1)

	partitionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	availableStyle = lipgloss.NewStyle().
			Foreground(colorAvailable)

	usedStyle = lipgloss.NewStyle().
			Foreground(colorUsed)

	runningStyle = lipgloss.NewStyle().
			Foreground(colorRunning)

	offlineStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	userNodeStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)
)

// tableStyles returns the bubbles table styling for the node table.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
