// Package extract implements the command that processes documents already on disk.
package extract

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/common"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
)

// Command returns the extract command.
func Command() *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract text and images from documents under the input root",
		Long: `Extract processes every document below the input root without touching the
network. Each subdirectory is a category; files directly in the root are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			ctx, stop := common.SignalContext(cmd.Context())
			defer stop()

			m, _ := common.NewMetrics()
			store, err := deps.NewStore(ctx)
			if err != nil {
				return err
			}
			runner, err := deps.NewRunner(store, m)
			if err != nil {
				return err
			}

			summary, err := runner.RunLocal(ctx, suffix)
			summary.Render(cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", catalog.DefaultDocumentSuffix, "file name suffix of documents to extract")

	return cmd
}
