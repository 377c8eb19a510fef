// Package status implements the command that reports per-category completion.
package status

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/common"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/pipeline"
)

// CompletionChecker answers whether a document's artifacts are complete.
type CompletionChecker interface {
	IsComplete(ctx context.Context, category, baseName string) bool
}

// Row is the completion state of one category.
type Row struct {
	Category  string
	Documents int
	Complete  int
}

// Pending is the number of documents still to extract.
func (r Row) Pending() int {
	return r.Documents - r.Complete
}

// Collect groups docs by category, in first-seen order, and counts the complete ones.
func Collect(ctx context.Context, docs []pipeline.LocalDocument, store CompletionChecker) []Row {
	var rows []Row
	index := make(map[string]int)

	for _, d := range docs {
		i, ok := index[d.Category]
		if !ok {
			i = len(rows)
			index[d.Category] = i
			rows = append(rows, Row{Category: d.Category})
		}
		rows[i].Documents++
		if store.IsComplete(ctx, d.Category, domain.BaseName(d.FileName)) {
			rows[i].Complete++
		}
	}
	return rows
}

// Render writes rows as a table with a totals footer.
func Render(w io.Writer, rows []Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Documents", "Complete", "Pending"})

	var total Row
	for _, r := range rows {
		t.AppendRow(table.Row{r.Category, r.Documents, r.Complete, r.Pending()})
		total.Documents += r.Documents
		total.Complete += r.Complete
	}
	t.AppendFooter(table.Row{"Total", total.Documents, total.Complete, total.Pending()})
	t.Render()
}

// Command returns the status command.
func Command() *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show how many downloaded documents have complete artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			ctx := cmd.Context()
			store, err := deps.NewStore(ctx)
			if err != nil {
				return err
			}
			runner, err := deps.NewRunner(store, nil)
			if err != nil {
				return err
			}

			docs, err := runner.ScanInput(suffix)
			if err != nil {
				return err
			}
			Render(cmd.OutOrStdout(), Collect(ctx, docs, store))
			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", catalog.DefaultDocumentSuffix, "file name suffix of documents to count")

	return cmd
}
