package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/config"
	"clipshelf/internal/textutil"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var tagsFlag string
	var descFlag string

	cmd := &cobra.Command{
		Use:   "import <dir|file>...",
		Short: "Catalog video files in bulk",
		Long: "Catalog the given files and every video file found under the given\n" +
			"directories. Tags and description apply to all imported files;\n" +
			"already-cataloged paths are skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			candidates, err := collectCandidates(cfg, args)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No video files found")
				return nil
			}

			tags := textutil.ParseTags(tagsFlag)
			description := strings.TrimSpace(descFlag)
			bar := newScanBar(len(candidates))

			var added, skipped int
			err = ctx.withStore(func(store *catalog.Store) error {
				for _, candidate := range candidates {
					if bar != nil {
						_ = bar.Add(1)
					}
					existing, err := store.GetByPath(cmd.Context(), candidate)
					if err != nil {
						return err
					}
					if existing != nil {
						skipped++
						continue
					}
					if _, err := store.Add(cmd.Context(), candidate, tags, description); err != nil {
						return err
					}
					added++
				}
				return nil
			})
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d file(s), skipped %d already cataloged\n", added, skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tagsFlag, "tags", "t", "", "Tags applied to every imported file")
	cmd.Flags().StringVarP(&descFlag, "desc", "d", "", "Description applied to every imported file")
	return cmd
}

// collectCandidates expands the given arguments into a deduplicated list of
// video file paths. Directories are walked recursively; files are accepted
// regardless of extension since the caller named them explicitly.
func collectCandidates(cfg *config.Config, args []string) ([]string, error) {
	var candidates []string
	seen := make(map[string]struct{})
	appendPath := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		candidates = append(candidates, path)
	}

	for _, arg := range args {
		root, err := filepath.Abs(textutil.CleanPath(arg))
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", root, err)
		}
		if !info.IsDir() {
			appendPath(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if cfg.AcceptsExtension(strings.ToLower(filepath.Ext(entry.Name()))) {
				appendPath(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}
	return candidates, nil
}

// newScanBar returns a progress bar when stderr is a terminal, nil otherwise
// so scripted runs stay quiet.
func newScanBar(total int) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}
