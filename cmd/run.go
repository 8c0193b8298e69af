package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/timetick/internal/app"
	"github.com/abhisek/timetick/internal/screens/home"
	"github.com/abhisek/timetick/internal/selfupdate"
)

// runApp builds the dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Home: home.Options{
			Service:    d.service(),
			Categories: d.categories,
			Defaults:   d.cfg.Quiz,
			Username:   d.cfg.User,
		},
	}
	if d.history != nil {
		opts.Home.History = d.history
	}
	if version != devVersion {
		checker := selfupdate.NewChecker()
		opts.Home.CheckUpdate = func(ctx context.Context) (string, error) {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
			if err != nil || !res.UpdateAvailable {
				return "", err
			}
			return res.LatestVersion, nil
		}
	}

	return app.Run(opts)
}
