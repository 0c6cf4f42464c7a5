package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Region wedge accent colors, most urgent first
	RegionDays   lipgloss.Color
	RegionWeeks  lipgloss.Color
	RegionMonths lipgloss.Color
	RegionYears  lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on a theme
type Styles struct {
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	TaskNormal  lipgloss.Style
	TaskCursor  lipgloss.Style
	TaskDone    lipgloss.Style
	Subtle      lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	InputLabel  lipgloss.Style
	RingGlyph   lipgloss.Style
	AxisGlyph   lipgloss.Style
}

// Default is the built-in dark theme
func Default() Theme {
	return Theme{
		Name:       "default",
		Foreground: lipgloss.Color("#c0caf5"),
		Subtle:     lipgloss.Color("#565f89"),
		Highlight:  lipgloss.Color("#7aa2f7"),
		Border:     lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),

		RegionDays:   lipgloss.Color("#f7768e"),
		RegionWeeks:  lipgloss.Color("#e0af68"),
		RegionMonths: lipgloss.Color("#7aa2f7"),
		RegionYears:  lipgloss.Color("#565f89"),
	}
}

// Nord is the alternate cool-toned theme
func Nord() Theme {
	return Theme{
		Name:       "nord",
		Foreground: lipgloss.Color("#eceff4"),
		Subtle:     lipgloss.Color("#4c566a"),
		Highlight:  lipgloss.Color("#88c0d0"),
		Border:     lipgloss.Color("#434c5e"),
		Success:    lipgloss.Color("#a3be8c"),
		Warning:    lipgloss.Color("#ebcb8b"),
		Error:      lipgloss.Color("#bf616a"),

		RegionDays:   lipgloss.Color("#bf616a"),
		RegionWeeks:  lipgloss.Color("#ebcb8b"),
		RegionMonths: lipgloss.Color("#81a1c1"),
		RegionYears:  lipgloss.Color("#4c566a"),
	}
}

// ByName returns the named theme, falling back to the default
func ByName(name string) Theme {
	switch name {
	case "nord":
		return Nord()
	default:
		return Default()
	}
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true),
		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),
		TaskCursor: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true),
		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),
		Subtle: lipgloss.NewStyle().
			Foreground(t.Subtle),
		Status: lipgloss.NewStyle().
			Foreground(t.Success),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
		InputLabel: lipgloss.NewStyle().
			Foreground(t.Highlight),
		RingGlyph: lipgloss.NewStyle().
			Foreground(t.Border),
		AxisGlyph: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}
