package schedule

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/common"
	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/harvest"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	var (
		spec string
		opts harvest.Options
	)

	cmd := &cobra.Command{
		Use:   "schedule [catalog]",
		Short: "Harvest a catalog on a cron schedule",
		Long: `Schedule keeps running and harvests the catalog every time the cron expression
fires (default from schedule.cron). Each run skips documents already complete, so only
new patterns are downloaded.`,
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

			if spec == "" {
				spec = deps.Config.Schedule.Cron
			}

			ctx, stop := common.SignalContext(cmd.Context())
			defer stop()

			m, reg := common.NewMetrics()
			deps.ServeMetrics(ctx, reg)

			job := func(ctx context.Context) error {
				summary, runErr := harvest.Run(ctx, deps, m, opts)
				if summary != nil {
					deps.Logger.Info("Harvest summary",
						logger.String("run_id", summary.RunID),
						logger.Int("failed", summary.Failed()),
					)
				}
				return runErr
			}

			s, err := NewScheduler(spec, job, deps.Logger)
			if err != nil {
				return err
			}
			return s.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "cron expression (default from schedule.cron)")
	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "category to harvest (repeatable)")
	cmd.Flags().IntVar(&opts.MaxPages, "max-pages", 0, "listing pages per category (default from the catalog)")

	return cmd
}
