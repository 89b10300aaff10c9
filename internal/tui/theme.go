package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors are picked to stay readable on both light and dark terminal
// backgrounds.
var (
	alephTextColor = lipgloss.AdaptiveColor{Light: "#1f2933", Dark: "#f5f7fa"}
	alephMuted     = lipgloss.AdaptiveColor{Light: "#7b8794", Dark: "#cbd2d9"}
	// Borders must remain visible on light terminals; keep light-theme borders darker.
	alephBorder = lipgloss.AdaptiveColor{Light: "#7b8794", Dark: "#cbd2d9"}
	alephAccent = lipgloss.AdaptiveColor{Light: "#2e5aac", Dark: "#7aa5e8"}
	alephDanger = lipgloss.AdaptiveColor{Light: "#a32138", Dark: "#e36e6e"}
	alephWarn   = lipgloss.AdaptiveColor{Light: "#8a6d1a", Dark: "#e8c468"}
)

func dashboardTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(alephTextColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(alephBorder).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(alephTextColor).
		Background(lipgloss.AdaptiveColor{Light: "#dce6f7", Dark: "#2b3a55"}).
		Bold(true)
	s.Cell = s.Cell.Foreground(alephTextColor)
	return s
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(alephBorder).
		Padding(0, 1)
}

func detailTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(alephTextColor)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(alephDanger)
}

func warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(alephWarn)
}

func footerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(alephMuted)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(alephMuted)
}

func modalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(alephAccent).
		Padding(1, 2)
}

func modalTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(alephTextColor)
}

func selectedItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(alephAccent)
}
