package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/config"
)

func newImportJSONCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import-json <file>",
		Short: "Import catalog records from a JSON document",
		Long: "Import records from a JSON array of {path, tags, description} objects.\n" +
			"Malformed entries are skipped and counted; existing records are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return ctx.withStore(func(store *catalog.Store) error {
				result, err := store.ImportJSON(cmd.Context(), file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s), skipped %d\n", result.Imported, result.Skipped)
				return nil
			})
		},
	}
}

func newExportJSONCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export-json",
		Short: "Export the catalog as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			target := outFlag
			if target == "" {
				target = filepath.Join(cfg.Paths.DataDir, "data.json")
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *catalog.Store) error {
				count, err := store.ExportJSON(cmd.Context(), expanded)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", count, expanded)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination file (defaults to data.json in the data directory)")
	return cmd
}
