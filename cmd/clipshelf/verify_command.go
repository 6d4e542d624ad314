package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/watcher"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every cataloged file still exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				result, err := watcher.Verify(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Checked %d record(s): %d missing, %d updated\n",
					result.Checked, result.Missing, result.Changed)
				return nil
			})
		},
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch cataloged directories and track file presence",
		Long: "Sweep the catalog once, then follow filesystem events on the\n" +
			"directories holding cataloged files until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *catalog.Store) error {
				return watcher.New(store, logger).Run(cmd.Context())
			})
		},
	}
}
