package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/timetick/internal/console"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in plain line mode on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		defaults := d.cfg.Quiz
		defaults.Interlude = 0

		g := &console.Game{
			Console:    console.New(os.Stdin, os.Stdout),
			Service:    d.service(),
			Defaults:   defaults,
			Categories: d.categories,
			Username:   d.cfg.User,
		}
		return g.Run(cmd.Context())
	},
}
