//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-warehouse/internal/datagen"
	"github.com/pgEdge/pgedge-warehouse/internal/logging"
)

// Reference data for dimension generation.
var countries = []string{"USA", "Spain", "China", "Egypt", "Canada", "Germany", "Brazil", "Japan"}
var segments = []string{"Enterprise", "SMB", "Consumer"}

var productCatalog = []struct {
	category    string
	subcategory string
	minPrice    float64
	maxPrice    float64
}{
	{"Electronics", "Computers", 400, 2500},
	{"Electronics", "Mobile", 200, 1200},
	{"Electronics", "Accessories", 10, 150},
	{"Furniture", "Seating", 80, 600},
	{"Furniture", "Lighting", 20, 120},
	{"Office Supplies", "Paper", 5, 40},
}

// SeedConfig holds configuration for sample data generation.
type SeedConfig struct {
	// Customers is the number of customer dimension rows.
	Customers int

	// Products is the number of product dimension rows.
	Products int

	// Days is the span of the time dimension, ending today.
	Days int

	// Transactions is the number of fact rows.
	Transactions int

	// Seed is the random seed (0 = time-based).
	Seed uint64
}

// Validate checks that generation counts are usable.
func (c SeedConfig) Validate() error {
	if c.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}
	if c.Transactions < 0 {
		return fmt.Errorf("transactions must be non-negative")
	}
	return nil
}

// Generator generates sample data for the warehouse schema.
type Generator struct {
	faker *datagen.Faker
}

// NewGenerator creates a sample data generator. A zero seed produces
// time-based randomness; any other value is reproducible.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		return &Generator{faker: datagen.NewFaker()}
	}
	return &Generator{faker: datagen.NewFakerWithSeed(seed)}
}

type productRow struct {
	id    int
	price float64
	cost  float64
}

// Generate populates the dimension and fact tables inside a single
// transaction. Every fact row references dimension rows written in the
// same run, so referential integrity holds by construction. Running it
// twice without dropping first duplicates data; that is intended
// behavior, not a bug.
func (g *Generator) Generate(ctx context.Context, db DB, cfg SeedConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(cfg.Days - 1))

	logging.Info().
		Int("customers", cfg.Customers).
		Int("products", cfg.Products).
		Int("days", cfg.Days).
		Int("transactions", cfg.Transactions).
		Msg("Generating sample data")

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := g.generateCustomers(ctx, tx, cfg.Customers, start); err != nil {
		return fmt.Errorf("failed to generate customers: %w", err)
	}

	products, err := g.generateProducts(ctx, tx, cfg.Products)
	if err != nil {
		return fmt.Errorf("failed to generate products: %w", err)
	}

	dateIDs, err := g.generateTimeDim(ctx, tx, start, cfg.Days)
	if err != nil {
		return fmt.Errorf("failed to generate time dimension: %w", err)
	}

	if err := g.generateFacts(ctx, tx, cfg.Transactions, cfg.Customers, products, dateIDs); err != nil {
		return fmt.Errorf("failed to generate facts: %w", err)
	}

	return tx.Commit(ctx)
}

func (g *Generator) generateCustomers(ctx context.Context, tx pgx.Tx, count int, windowStart time.Time) error {
	logging.Debug().Int("count", count).Msg("Generating customers")
	for i := 1; i <= count; i++ {
		first := g.faker.FirstName()
		last := g.faker.LastName()
		// Email derived from the id keeps the duplicate-email check at zero
		// for generated data.
		email := fmt.Sprintf("%s.%s.%d@example.com",
			strings.ToLower(first), strings.ToLower(last), i)
		signup := g.faker.DateRange(windowStart.AddDate(-1, 0, 0), windowStart)

		_, err := tx.Exec(ctx, `
			INSERT INTO dim_customers (customer_id, customer_name, email, country, segment, signup_date)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, i, first+" "+last, email,
			datagen.Choose(g.faker, countries),
			datagen.Choose(g.faker, segments),
			signup)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateProducts(ctx context.Context, tx pgx.Tx, count int) ([]productRow, error) {
	logging.Debug().Int("count", count).Msg("Generating products")
	products := make([]productRow, 0, count)

	for i := 1; i <= count; i++ {
		entry := productCatalog[(i-1)%len(productCatalog)]
		price := round2(g.faker.Price(entry.minPrice, entry.maxPrice))
		cost := round2(price * g.faker.Float64(0.4, 0.8))

		_, err := tx.Exec(ctx, `
			INSERT INTO dim_products (product_id, product_name, category, subcategory, price, cost)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, i, datagen.Truncate(g.faker.ProductName(), 60), entry.category, entry.subcategory, price, cost)
		if err != nil {
			return nil, err
		}

		products = append(products, productRow{id: i, price: price, cost: cost})
	}
	return products, nil
}

func (g *Generator) generateTimeDim(ctx context.Context, tx pgx.Tx, start time.Time, days int) ([]int, error) {
	logging.Debug().Int("days", days).Msg("Generating time dimension")
	dateIDs := make([]int, 0, days)

	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dateID, quarter, weekday, isWeekend := timeRow(d)

		_, err := tx.Exec(ctx, `
			INSERT INTO dim_time (date_id, date, year, quarter, month, day, weekday, is_weekend)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, dateID, d, d.Year(), quarter, int(d.Month()), d.Day(), weekday, isWeekend)
		if err != nil {
			return nil, err
		}

		dateIDs = append(dateIDs, dateID)
	}
	return dateIDs, nil
}

func (g *Generator) generateFacts(ctx context.Context, tx pgx.Tx, count, numCustomers int, products []productRow, dateIDs []int) error {
	logging.Debug().Int("count", count).Msg("Generating sales facts")
	for i := 0; i < count; i++ {
		product := products[g.faker.Int(0, len(products)-1)]
		quantity := g.faker.Int(1, 5)

		// Revenue and profit are computed here, not in SQL, so the stored
		// values satisfy the fact invariants exactly.
		totalRevenue := round2(product.price * float64(quantity))
		totalCost := round2(product.cost * float64(quantity))
		profit := round2(totalRevenue - totalCost)

		_, err := tx.Exec(ctx, `
			INSERT INTO fact_sales (customer_id, product_id, date_id, quantity, unit_price, total_revenue, total_cost, profit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, g.faker.Int(1, numCustomers), product.id,
			dateIDs[g.faker.Int(0, len(dateIDs)-1)],
			quantity, product.price, totalRevenue, totalCost, profit)
		if err != nil {
			return err
		}
	}
	return nil
}

// timeRow derives the dim_time attributes for a calendar day.
func timeRow(d time.Time) (dateID, quarter int, weekday string, isWeekend bool) {
	dateID = d.Year()*10000 + int(d.Month())*100 + d.Day()
	quarter = (int(d.Month())-1)/3 + 1
	weekday = d.Weekday().String()
	isWeekend = d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	return dateID, quarter, weekday, isWeekend
}

// round2 rounds to two decimal places to match the NUMERIC(12,2) columns.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
