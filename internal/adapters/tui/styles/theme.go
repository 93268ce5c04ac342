package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Online = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Starting = lipgloss.NewStyle().
			Foreground(Warning)

	CountLabel = lipgloss.NewStyle().
			Foreground(Muted)

	CountValue = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	EventRead = lipgloss.NewStyle().
			Foreground(Secondary)

	EventChange = lipgloss.NewStyle().
			Foreground(Primary)

	EventTime = lipgloss.NewStyle().
			Foreground(Muted)
)
