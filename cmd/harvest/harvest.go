// Package harvest implements the command that crawls a catalog and processes its documents.
package harvest

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/common"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/crawler"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/metrics"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/pipeline"
)

// Options selects what one harvest run covers.
type Options struct {
	// Catalog is the definition name; empty selects the first definition.
	Catalog string
	// Categories restricts the run; empty harvests every configured category.
	Categories []string
	// MaxPages overrides the definition's page count when positive.
	MaxPages int
}

// Command returns the harvest command.
func Command() *cobra.Command {
	var (
		opts    Options
		refetch bool
	)

	cmd := &cobra.Command{
		Use:   "harvest [catalog]",
		Short: "Crawl a catalog and extract every linked document",
		Long: `Harvest walks the listing pages of every configured category, downloads each linked
document and writes its text and representative image. Documents whose artifacts
already exist are skipped, so an interrupted harvest can simply be re-run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Catalog = args[0]
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			if refetch {
				deps.Config.Fetcher.Refetch = true
			}

			ctx, stop := common.SignalContext(cmd.Context())
			defer stop()

			m, reg := common.NewMetrics()
			deps.ServeMetrics(ctx, reg)

			summary, err := Run(ctx, deps, m, opts)
			if summary != nil {
				summary.Render(cmd.OutOrStdout())
			}
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "category to harvest (repeatable)")
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", 0, "listing pages per category (default from the catalog)")
	cmd.Flags().BoolVar(&refetch, "refetch", false, "download documents even when a local copy exists")

	return cmd
}

// Run performs one harvest. The crawl session lives exactly as long as the run.
func Run(ctx context.Context, deps common.CommandDeps, m *metrics.Metrics, opts Options) (*pipeline.Summary, error) {
	def, err := deps.LoadCatalog(opts.Catalog)
	if err != nil {
		return nil, err
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = def.Categories
	}
	for _, c := range categories {
		if !def.HasCategory(c) {
			return nil, domain.ConfigError("select categories", fmt.Errorf("catalog %s has no category %q", def.Name, c))
		}
	}

	maxPages := def.MaxPages
	if opts.MaxPages > 0 {
		maxPages = opts.MaxPages
	}

	store, err := deps.NewStore(ctx)
	if err != nil {
		return nil, err
	}
	runner, err := deps.NewRunner(store, m)
	if err != nil {
		return nil, err
	}

	session, err := crawler.NewSession(ctx, deps.Config.Crawler, deps.Logger)
	if err != nil {
		return nil, domain.ConfigError("open crawl session", err)
	}
	defer session.Close()

	deps.Logger.Info("Harvesting catalog",
		logger.String("catalog", def.Name),
		logger.Strings("categories", categories),
		logger.Int("max_pages", maxPages),
	)

	return runner.Run(ctx, crawler.New(session, def, deps.Logger, m), categories, maxPages)
}
