// Package layout draws the chrome around every screen: the header bar,
// the key-hint footer and the too-small notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

// Below MinWidth x MinHeight only the resize notice is drawn.
const (
	MinWidth  = 80
	MinHeight = 24

	// CompactWidthThreshold is where screens drop to their narrow art.
	CompactWidthThreshold = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

func IsTooSmall(width, height int) bool { return width < MinWidth || height < MinHeight }

// RenderMinSizeMessage fills width x height with the resize notice.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("The clock face does not fit!\n\nResize the terminal to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(text)
}

// RenderHeader draws the brand on the left, title in the middle and the
// logged-in player with their running score on the right.
func RenderHeader(title, username string, score int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render("  ⏱ TimeTick")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	var player string
	if username != "" {
		player = lipgloss.NewStyle().Foreground(theme.Secondary).Render(username) + "   " +
			lipgloss.NewStyle().Foreground(theme.Highlight).Render(fmt.Sprintf("★ %d", score))
	}
	return bar(width).Render(spread(max(width-4, 0), brand, mid, player))
}

// RenderFooter draws hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(h.render())
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return strings.Join([]string{
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	}, "\n")
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// spread pins left and right to the edges of width and centers mid,
// keeping at least one space between neighbours.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((width-mw)/2-lw, 1)
	gapR := max(width-lw-gapL-mw-rw, 1)
	return left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
}
