package warehouse

import (
	"context"
)

// Schema SQL for the star-schema warehouse: three dimension tables, one
// fact table referencing all of them, and an append-only quality metrics
// table.
const createSchemaSQL = `
-- Customer dimension
CREATE TABLE IF NOT EXISTS dim_customers (
    customer_id   INTEGER PRIMARY KEY,
    customer_name TEXT NOT NULL,
    email         TEXT,
    country       TEXT,
    segment       TEXT,
    signup_date   DATE
);

-- Product dimension
CREATE TABLE IF NOT EXISTS dim_products (
    product_id   INTEGER PRIMARY KEY,
    product_name TEXT NOT NULL,
    category     TEXT,
    subcategory  TEXT,
    price        NUMERIC(12,2),
    cost         NUMERIC(12,2)
);

-- Time dimension: one row per calendar day, keyed yyyymmdd
CREATE TABLE IF NOT EXISTS dim_time (
    date_id    INTEGER PRIMARY KEY,
    date       DATE NOT NULL,
    year       INTEGER NOT NULL,
    quarter    INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    day        INTEGER NOT NULL,
    weekday    TEXT NOT NULL,
    is_weekend BOOLEAN NOT NULL
);

-- Sales facts: one row per synthetic transaction
CREATE TABLE IF NOT EXISTS fact_sales (
    sale_id       BIGSERIAL PRIMARY KEY,
    customer_id   INTEGER NOT NULL REFERENCES dim_customers(customer_id),
    product_id    INTEGER NOT NULL REFERENCES dim_products(product_id),
    date_id       INTEGER NOT NULL REFERENCES dim_time(date_id),
    quantity      INTEGER NOT NULL,
    unit_price    NUMERIC(12,2) NOT NULL,
    total_revenue NUMERIC(12,2) NOT NULL,
    total_cost    NUMERIC(12,2) NOT NULL,
    profit        NUMERIC(12,2) NOT NULL
);

-- Quality check history, append-only
CREATE TABLE IF NOT EXISTS quality_metrics (
    metric_id       BIGSERIAL PRIMARY KEY,
    table_name      TEXT NOT NULL,
    metric_name     TEXT NOT NULL,
    metric_value    DOUBLE PRECISION NOT NULL,
    threshold_value DOUBLE PRECISION NOT NULL,
    status          TEXT NOT NULL,
    check_date      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_customer ON fact_sales(customer_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product ON fact_sales(product_id);
CREATE INDEX IF NOT EXISTS idx_fact_sales_date ON fact_sales(date_id);
CREATE INDEX IF NOT EXISTS idx_quality_metrics_date ON quality_metrics(check_date);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS quality_metrics CASCADE;
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_time CASCADE;
DROP TABLE IF EXISTS dim_products CASCADE;
DROP TABLE IF EXISTS dim_customers CASCADE;
`

// CreateSchema creates the warehouse tables. Idempotent; failure here is
// fatal to startup.
func (w *Warehouse) CreateSchema(ctx context.Context) error {
	_, err := w.db.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse tables.
func (w *Warehouse) DropSchema(ctx context.Context) error {
	_, err := w.db.Exec(ctx, dropSchemaSQL)
	return err
}
