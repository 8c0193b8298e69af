package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/timetick/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect player profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show a player's total score and rank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles(cmd)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(args[0])
		board := profiles.Leaderboard()
		for i, e := range board {
			if e.Username == name {
				fmt.Printf("User:   %s\n", e.Username)
				fmt.Printf("Score:  %d\n", e.Score)
				fmt.Printf("Rank:   %d of %d\n", i+1, len(board))
				return nil
			}
		}
		return fmt.Errorf("no profile for %q", name)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all players by score",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := loadProfiles(cmd)
		if err != nil {
			return err
		}

		board := profiles.Leaderboard()
		if len(board) == 0 {
			fmt.Println("No profiles yet.")
			return nil
		}
		fmt.Printf("%-5s  %-32s  %8s\n", "Rank", "User", "Score")
		fmt.Println(strings.Repeat("─", 49))
		for i, e := range board {
			fmt.Printf("%-5d  %-32s  %8d\n", i+1, truncate(e.Username, 32), e.Score)
		}
		return nil
	},
}

// loadProfiles reads the profile file. A corrupt file is reported as a
// warning and shown as empty.
func loadProfiles(cmd *cobra.Command) (*profile.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	profiles, err := profile.Load(cfg.ProfilesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	return profiles, nil
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
}
