package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clipshelf/internal/distbuild"
)

func newDistCommand(ctx *commandContext) *cobra.Command {
	var workDir string

	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Build the standalone distribution",
		Long: "Run the configured packager to produce a standalone binary and\n" +
			"copy the configured auxiliary files beside it. A missing packager\n" +
			"aborts the build; a missing auxiliary file only produces a warning.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var opts []distbuild.Option
			if workDir != "" {
				opts = append(opts, distbuild.WithWorkDir(workDir))
			}
			builder := distbuild.NewBuilder(cfg, logger, opts...)

			result, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build %s finished in %s\n", result.BuildID, result.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "Artifact: %s\n", result.Artifact)
			for _, copied := range result.Copied {
				fmt.Fprintf(out, "Bundled: %s\n", copied)
			}
			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workDir, "dir", "C", "", "Directory to run the packager in (defaults to the current directory)")
	return cmd
}
