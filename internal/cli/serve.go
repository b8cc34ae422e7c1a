package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/api"
	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

const shutdownTimeout = 5 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the warehouse HTTP API",
	Long: `Serve the warehouse JSON API for the dashboard. The schema is
created at startup if missing, and sample data is seeded when the fact
table is empty (disable with seed.on_empty: false in the config file).

Endpoints:
  GET  /analytics        sales KPIs, breakdowns, and monthly trends
  GET  /quality-metrics  stored quality check history
  POST /quality-check    run quality checks, return the new results
  GET  /lineage          static data lineage metadata

Example:
  pgedge-warehouse serve --connection "postgres://..." --listen :8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"HTTP listen address (default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListen != "" {
		cfg.HTTP.Listen = serveListen
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	wh := warehouse.New(pool, cfg.Quality.Thresholds)

	// Schema problems are fatal here, before the listener starts.
	if err := wh.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if cfg.Seed.OnEmpty {
		if err := seedIfEmpty(ctx, wh, pool); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Listen,
		Handler:           api.NewHandler(wh).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("listen", cfg.HTTP.Listen).Msg("HTTP server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedIfEmpty(ctx context.Context, wh *warehouse.Warehouse, pool warehouse.DB) error {
	count, err := wh.FactCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count facts: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("facts", count).Msg("Warehouse already seeded")
		return nil
	}

	gen := warehouse.NewGenerator(cfg.Seed.Seed)
	return gen.Generate(ctx, pool, warehouse.SeedConfig{
		Customers:    cfg.Seed.Customers,
		Products:     cfg.Seed.Products,
		Days:         cfg.Seed.Days,
		Transactions: cfg.Seed.Transactions,
		Seed:         cfg.Seed.Seed,
	})
}
