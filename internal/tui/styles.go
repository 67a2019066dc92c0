package tui

import "github.com/charmbracelet/lipgloss"

const (
	cardWidth       = 26
	defaultColumns  = 3
	defaultWidth    = 80
	defaultHeight   = 24
	detailMinHeight = 6
)

var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")).
			MarginTop(1)

	cardStyle = lipgloss.NewStyle().
			Border(asciiBorder).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(cardWidth - 4).
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = cardStyle.Copy().
				BorderForeground(lipgloss.Color("214")).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("237"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254"))

	cardMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("161")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	loaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	detailStyle = lipgloss.NewStyle().
			Border(asciiBorder).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)
