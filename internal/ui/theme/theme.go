package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: ink-dark library shelves lit by a brass clock face.
var (
	Primary   = lipgloss.Color("#7AA2F7") // Ink blue
	Secondary = lipgloss.Color("#2DD4BF") // Verdigris
	Accent    = lipgloss.Color("#E8913A") // Amber
	Highlight = lipgloss.Color("#E5C15D") // Brass
	Success   = lipgloss.Color("#4ADE80") // Leaf
	Error     = lipgloss.Color("#EF5A6F") // Wax seal
	Text      = lipgloss.Color("#F4EFE6") // Parchment
	TextDim   = lipgloss.Color("#A39E93") // Faded ink
	BgDark    = lipgloss.Color("#14110F") // Shelf shadow
	BgCard    = lipgloss.Color("#231E1A") // Walnut
	Border    = lipgloss.Color("#4A3F35") // Oak
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Highlight).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// CountdownColor shades the timer bar as time runs out.
func CountdownColor(remaining, limit int) lipgloss.Style {
	switch {
	case limit > 0 && remaining*3 <= limit:
		return lipgloss.NewStyle().Background(Error)
	case limit > 0 && remaining*3 <= limit*2:
		return lipgloss.NewStyle().Background(Accent)
	default:
		return lipgloss.NewStyle().Background(Secondary)
	}
}
