package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

// Countdown is a horizontal timer bar that drains as seconds pass.
type Countdown struct {
	Remaining int
	Limit     int
	Width     int
}

// Fraction is the share of time left in [0,1].
func (c Countdown) Fraction() float64 {
	if c.Limit <= 0 {
		return 0
	}
	return min(max(float64(c.Remaining)/float64(c.Limit), 0), 1)
}

// View renders the bar followed by the seconds left.
func (c Countdown) View() string {
	label := fmt.Sprintf(" %2ds", max(c.Remaining, 0))
	barWidth := max(c.Width-len(label), 4)

	filled := int(float64(barWidth) * c.Fraction())
	empty := barWidth - filled

	return theme.CountdownColor(c.Remaining, c.Limit).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(label)
}
