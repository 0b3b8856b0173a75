package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/utils"
)

var (
	// Color palette
	Primary    = lipgloss.Color("#EF5350")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Background = lipgloss.Color("#263238")
	Foreground = lipgloss.Color("#EEFFFF")

	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// Name line inside cards
	NameStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Name line of the selected card
	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Status styles
	StatusLoading = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Stat bar styles
	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#37474F")).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

// StatusStyle maps a loader state name to its style.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "loading":
		return StatusLoading
	case "exhausted":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}

// TypeBadge renders a type name on its type color.
func TypeBadge(typeName string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(utils.ColorForType(typeName))).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true).
		Padding(0, 1).
		Render(utils.FormatName(typeName))
}

// TypeAccent is a foreground style in the color of typeName.
func TypeAccent(typeName string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(utils.ColorForType(typeName)))
}
