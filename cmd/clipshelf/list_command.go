package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipshelf/internal/catalog"
	"clipshelf/internal/textutil"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var tagFlags []string
	var missingOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged video files",
		Long: "List cataloged files, optionally narrowed by tags. When several\n" +
			"--tag flags are given, only records carrying all of them match.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				filter := catalog.Filter{
					Tags:        textutil.NormalizeTags(tagFlags),
					MissingOnly: missingOnly,
				}
				records, err := store.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				if asJSON {
					if records == nil {
						records = []*catalog.Record{}
					}
					return writeJSON(cmd, records)
				}

				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No matching records")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						strconv.FormatInt(record.ID, 10),
						record.Path,
						textutil.FormatTags(record.Tags),
						record.Description,
						yesNo(record.Missing),
					})
				}
				headers := []string{"ID", "Path", "Tags", "Description", "Missing"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				fmt.Fprintf(cmd.OutOrStdout(), "%d record(s)\n", len(records))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&tagFlags, "tag", "t", nil, "Require this tag (repeatable; records must carry all)")
	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Show only records whose file is absent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List all tags with usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				tags, err := store.AllTags(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					if tags == nil {
						tags = []catalog.TagCount{}
					}
					return writeJSON(cmd, tags)
				}

				if len(tags) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tags in the catalog")
					return nil
				}
				rows := make([][]string, 0, len(tags))
				for _, tag := range tags {
					rows = append(rows, []string{tag.Tag, strconv.Itoa(tag.Count)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Tag", "Records"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
