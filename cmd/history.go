package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/timetick/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		s, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		sessions, err := s.RecentSessions(ctx, store.QueryOpts{Username: user, Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded.")
			return nil
		}

		fmt.Printf("%-16s  %-16s  %-24s  %-6s  %-8s  %5s  %s\n",
			"Started", "User", "Category", "Level", "Type", "Score", "Source")
		fmt.Println(strings.Repeat("─", 100))
		for _, r := range sessions {
			fmt.Printf("%-16s  %-16s  %-24s  %-6s  %-8s  %2d/%-2d  %s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Username, 16),
				truncate(r.Category, 24),
				r.Difficulty,
				r.QuestionType,
				r.Score, r.Total,
				r.Source,
			)
		}

		if user != "" {
			st, err := s.UserStats(ctx, user)
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}
			fmt.Println()
			fmt.Printf("%s: %d sessions, %d/%d correct (%.0f%%), best %d\n",
				user, st.Sessions, st.Correct, st.Questions, st.Accuracy()*100, st.BestScore)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	// --user is inherited from the root persistent flags.
}
