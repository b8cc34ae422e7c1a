package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
	"github.com/pgEdge/pgedge-warehouse/internal/warehouse"
)

var (
	initCustomers    int
	initProducts     int
	initDays         int
	initTransactions int
	initSeed         uint64
	initDropExisting bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the warehouse schema and load sample data",
	Long: `Create the star-schema tables and populate them with synthetic
sales data. Re-running init without --drop-existing appends another
batch of sample data on top of the existing rows.

Example:
  pgedge-warehouse init --connection "postgres://..." --transactions 200`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initCustomers, "customers", 0,
		"number of customers to generate")
	initCmd.Flags().IntVar(&initProducts, "products", 0,
		"number of products to generate")
	initCmd.Flags().IntVar(&initDays, "days", 0,
		"time dimension span in days, ending today")
	initCmd.Flags().IntVar(&initTransactions, "transactions", 0,
		"number of sales transactions to generate")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"random seed for reproducible data (0 = time-based)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing warehouse tables before initialization")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initCustomers > 0 {
		cfg.Seed.Customers = initCustomers
	}
	if initProducts > 0 {
		cfg.Seed.Products = initProducts
	}
	if initDays > 0 {
		cfg.Seed.Days = initDays
	}
	if initTransactions > 0 {
		cfg.Seed.Transactions = initTransactions
	}
	if initSeed > 0 {
		cfg.Seed.Seed = initSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	wh := warehouse.New(pool, cfg.Quality.Thresholds)

	if initDropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := wh.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := wh.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	gen := warehouse.NewGenerator(cfg.Seed.Seed)
	if err := gen.Generate(ctx, pool, warehouse.SeedConfig{
		Customers:    cfg.Seed.Customers,
		Products:     cfg.Seed.Products,
		Days:         cfg.Seed.Days,
		Transactions: cfg.Seed.Transactions,
		Seed:         cfg.Seed.Seed,
	}); err != nil {
		return fmt.Errorf("failed to generate sample data: %w", err)
	}

	if err := db.SaveSeedMetadata(ctx, pool, db.SeedInfo{
		Customers:    cfg.Seed.Customers,
		Products:     cfg.Seed.Products,
		Days:         cfg.Seed.Days,
		Transactions: cfg.Seed.Transactions,
	}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Int("customers", cfg.Seed.Customers).
		Int("products", cfg.Seed.Products).
		Int("transactions", cfg.Seed.Transactions).
		Msg("Warehouse initialization complete")

	return nil
}
