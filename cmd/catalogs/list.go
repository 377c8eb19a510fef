// Package catalogs implements the command that lists the configured catalog definitions.
package catalogs

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/common"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
)

// RenderTable writes one row per catalog definition.
func RenderTable(w io.Writer, defs []catalog.Definition) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "URL Template", "Categories", "Max Pages", "Link Selector"})

	for _, d := range defs {
		t.AppendRow(table.Row{
			d.Name,
			d.URLTemplate,
			strings.Join(d.Categories, ", "),
			d.MaxPages,
			d.LinkSelector,
		})
	}
	t.Render()
}

// Command returns the catalogs command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List the configured catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			defs, err := catalog.NewLoader(deps.Config.Catalog.File).Load()
			if err != nil {
				return fmt.Errorf("failed to load catalogs: %w", err)
			}
			RenderTable(cmd.OutOrStdout(), defs)
			return nil
		},
	}
}
