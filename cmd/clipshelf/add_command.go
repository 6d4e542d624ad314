package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/textutil"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var descFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a video file to the catalog",
		Long: "Catalog a video file. The path does not have to exist yet; offline\n" +
			"media is cataloged with its missing flag set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			cleaned := textutil.CleanPath(args[0])
			if cleaned == "" {
				return errors.New("a file path is required")
			}
			absPath, err := filepath.Abs(cleaned)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			missing := false
			info, err := os.Stat(absPath)
			switch {
			case err == nil:
				if info.IsDir() {
					return fmt.Errorf("%s is a directory; use 'clipshelf import' for directories", absPath)
				}
			case errors.Is(err, os.ErrNotExist):
				missing = true
			default:
				return fmt.Errorf("inspect file: %w", err)
			}

			if !force {
				ext := strings.ToLower(filepath.Ext(absPath))
				if !cfg.AcceptsExtension(ext) {
					return fmt.Errorf("unsupported file extension %q (use --force to catalog it anyway)", ext)
				}
			}

			return ctx.withStore(func(store *catalog.Store) error {
				existing, err := store.GetByPath(cmd.Context(), absPath)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("already cataloged as #%d: %s", existing.ID, absPath)
				}

				tags := textutil.ParseTags(tagsFlag)
				record, err := store.Add(cmd.Context(), absPath, tags, strings.TrimSpace(descFlag))
				if err != nil {
					return err
				}
				if missing {
					if err := store.MarkPresence(cmd.Context(), record.ID, true); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Cataloged #%d (%s)\n", record.ID, filepath.Base(absPath))
				if len(record.Tags) > 0 {
					fmt.Fprintf(out, "Tags: %s\n", textutil.FormatTags(record.Tags))
				}
				if missing {
					fmt.Fprintf(out, "Note: file does not exist yet; record is flagged missing\n")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tagsFlag, "tags", "t", "", "Tags separated by commas or spaces")
	cmd.Flags().StringVarP(&descFlag, "desc", "d", "", "Short description")
	cmd.Flags().BoolVar(&force, "force", false, "Catalog the path even with an unknown extension")
	return cmd
}
