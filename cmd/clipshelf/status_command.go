package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog counts and external tool availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			statuses := deps.CheckBinaries(deps.Default(cfg))

			return ctx.withStore(func(store *catalog.Store) error {
				summary, err := store.Summarize(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, struct {
						Database     string         `json:"database"`
						Summary      catalog.Summary `json:"summary"`
						Dependencies []deps.Status  `json:"dependencies"`
					}{
						Database:     store.Path(),
						Summary:      summary,
						Dependencies: statuses,
					})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				fmt.Fprintf(out, "Records: %d (%d missing), tags: %d\n",
					summary.Records, summary.Missing, summary.Tags)

				rows := make([][]string, 0, len(statuses))
				for _, status := range statuses {
					detail := status.Detail
					if detail == "" {
						detail = status.Command
					}
					rows = append(rows, []string{
						status.Name,
						yesNo(status.Available),
						yesNo(status.Optional),
						detail,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Dependency", "Available", "Optional", "Detail"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))

				if missing := deps.MissingRequired(statuses); len(missing) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "Missing required dependencies: %v\n", missing)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}
