package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(36)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	ballStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff00ff"))
	floorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

// BallStyle is the glyph style shared with the plain animator.
func BallStyle() lipgloss.Style { return ballStyle }
