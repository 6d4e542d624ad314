package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/config"
	"clipshelf/internal/efu"
	"clipshelf/internal/everything"
	"clipshelf/internal/textutil"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var tagFlags []string
	var outFlag string
	var openFlag bool
	var noOpenFlag bool
	var checkFlag bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching records as an Everything file list (EFU)",
		Long: "Write the paths of matching records to an EFU file list and\n" +
			"optionally open it in Everything. With several --tag flags only\n" +
			"records carrying all of them are exported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			target := outFlag
			if target == "" {
				target = cfg.EFUPath()
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return err
			}

			shouldOpen := cfg.Export.Open
			if openFlag {
				shouldOpen = true
			}
			if noOpenFlag {
				shouldOpen = false
			}

			return ctx.withStore(func(store *catalog.Store) error {
				filter := catalog.Filter{Tags: textutil.NormalizeTags(tagFlags)}
				records, err := store.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				paths := make([]string, 0, len(records))
				for _, record := range records {
					paths = append(paths, record.Path)
				}
				if err := efu.WriteFile(expanded, paths); err != nil {
					if errors.Is(err, efu.ErrNoEntries) {
						return errors.New("no matching records to export")
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d path(s) to %s\n", len(paths), expanded)

				if checkFlag {
					if err := verifyEFU(expanded, len(paths)); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Check passed")
				}

				if !shouldOpen {
					return nil
				}
				executable, found := everything.Locate(cfg)
				if !found {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Everything not found (looked for %s); open the file list manually\n", executable)
					return nil
				}
				if err := everything.NewCLI(executable).Open(cmd.Context(), expanded); err != nil {
					// The export itself succeeded; a viewer failure is not fatal.
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open Everything: %v\n", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&tagFlags, "tag", "t", nil, "Require this tag (repeatable; records must carry all)")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination file (defaults to the configured EFU path)")
	cmd.Flags().BoolVar(&openFlag, "open", false, "Open the exported list in Everything")
	cmd.Flags().BoolVar(&noOpenFlag, "no-open", false, "Never open the exported list, overriding config")
	cmd.Flags().BoolVar(&checkFlag, "check", false, "Read the written list back and verify the entry count")
	return cmd
}

// verifyEFU re-reads the exported list and confirms it carries the expected
// number of entries.
func verifyEFU(path string, want int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen export: %w", err)
	}
	defer file.Close()

	paths, err := efu.Read(file)
	if err != nil {
		return fmt.Errorf("check export: %w", err)
	}
	if len(paths) != want {
		return fmt.Errorf("check export: wrote %d entries, read back %d", want, len(paths))
	}
	return nil
}
