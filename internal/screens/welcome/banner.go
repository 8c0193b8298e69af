package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

const bannerArt = `
 ████████╗██╗███╗   ███╗███████╗████████╗██╗ ██████╗██╗  ██╗
 ╚══██╔══╝██║████╗ ████║██╔════╝╚══██╔══╝██║██╔════╝██║ ██╔╝
    ██║   ██║██╔████╔██║█████╗     ██║   ██║██║     █████╔╝
    ██║   ██║██║╚██╔╝██║██╔══╝     ██║   ██║██║     ██╔═██╗
    ██║   ██║██║ ╚═╝ ██║███████╗   ██║   ██║╚██████╗██║  ██╗
    ╚═╝   ╚═╝╚═╝     ╚═╝╚══════╝   ╚═╝   ╚═╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "T I M E T I C K"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 62

// RenderBanner returns the TimeTick banner, or a one-line fallback on
// narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
