package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timetick/internal/ui/theme"
)

const arcadeTitleFull = `╔╦╗╦╔╦╗╔═╗╔╦╗╦╔═╗╦╔═
 ║ ║║║║║╣  ║ ║║  ╠╩╗
 ╩ ╩╩ ╩╚═╝ ╩ ╩╚═╝╩ ╩`

const arcadeTitleCompact = "T · I · M · E · T · I · C · K"

func renderTitle(cw int, compact bool) string {
	art := arcadeTitleFull
	if compact {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(art))
}

// renderStatsBar shows the player's total, rank and session count in a
// bordered box at content width.
func renderStatsBar(st playerStats, cw int, compact bool) string {
	score := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	rank := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	rankText := dim.Render("unranked")
	if st.Rank > 0 {
		rankText = rank.Render(fmt.Sprintf("#%d of %d", st.Rank, st.Players))
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s", score.Render(fmt.Sprintf("★%d", st.Score)), rankText)
	} else {
		sessions := dim.Render(fmt.Sprintf("%d sessions", st.Sessions))
		stats = fmt.Sprintf("%s  %s  %s",
			score.Render(fmt.Sprintf("★ %d POINTS", st.Score)), rankText, sessions)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("New version %s available. Run: timetick update", latestVersion))
}
