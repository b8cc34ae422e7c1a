package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run data quality checks",
	Long: `Run the full battery of data quality checks against the warehouse
and append the results to the quality metrics history. The command exits
nonzero when any check fails its threshold.

Example:
  pgedge-warehouse check --connection "postgres://..."`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	wh := warehouse.New(pool, cfg.Quality.Thresholds)

	metrics, err := wh.RunChecks(ctx)
	if err != nil {
		return fmt.Errorf("quality checks failed to run: %w", err)
	}

	failed := 0
	for _, m := range metrics {
		event := logging.Info()
		if m.Status == warehouse.StatusFail {
			event = logging.Warn()
			failed++
		}
		event.
			Str("table", m.TableName).
			Str("check", m.MetricName).
			Float64("value", m.MetricValue).
			Float64("threshold", m.ThresholdValue).
			Str("status", m.Status).
			Msg("Quality check")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d quality checks failed", failed, len(metrics))
	}

	logging.Info().Int("checks", len(metrics)).Msg("All quality checks passed")
	return nil
}
