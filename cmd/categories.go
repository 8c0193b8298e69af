package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the question categories of the configured source",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		cats, err := d.categories.Categories(ctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		for _, c := range cats {
			fmt.Printf("%4d  %s\n", c.ID, c.Name)
		}
		return nil
	},
}
