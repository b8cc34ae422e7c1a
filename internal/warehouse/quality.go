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
	"time"
)

// Check statuses.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// revenueEpsilon is the tolerance for the revenue consistency check.
// Values are stored as NUMERIC(12,2), so generated data is exact; the
// epsilon only guards against rounding introduced by external writes.
const revenueEpsilon = 1e-6

// Thresholds maps a check name to its maximum passing metric value.
// Missing entries default to 0.
type Thresholds map[string]float64

func (t Thresholds) threshold(name string) float64 {
	if t == nil {
		return 0
	}
	return t[name]
}

// QualityMetric is one persisted quality check result.
type QualityMetric struct {
	TableName      string    `json:"table_name"`
	MetricName     string    `json:"metric_name"`
	MetricValue    float64   `json:"metric_value"`
	ThresholdValue float64   `json:"threshold_value"`
	Status         string    `json:"status"`
	CheckDate      time.Time `json:"check_date"`
}

// Critical fields checked for nulls. Table and column names are fixed
// here, never caller input.
var nullChecks = []struct {
	table  string
	column string
}{
	{"dim_customers", "customer_name"},
	{"dim_customers", "email"},
	{"dim_products", "product_name"},
	{"dim_products", "price"},
	{"fact_sales", "total_revenue"},
}

// RunChecks executes the full battery of quality checks, persists every
// result, and returns the new rows. All rows from one run share a single
// check_date. History is append-only: a second run adds rows, it never
// overwrites earlier ones.
func (w *Warehouse) RunChecks(ctx context.Context) ([]QualityMetric, error) {
	now := time.Now().UTC()
	metrics := make([]QualityMetric, 0, len(nullChecks)+2)

	for _, check := range nullChecks {
		var nullCount float64
		err := w.db.QueryRow(ctx, fmt.Sprintf(
			"SELECT COUNT(*) FROM %s WHERE %s IS NULL", check.table, check.column,
		)).Scan(&nullCount)
		if err != nil {
			return nil, fmt.Errorf("null check on %s.%s failed: %w", check.table, check.column, err)
		}
		metrics = append(metrics, w.metric(check.table, "null_"+check.column, nullCount, now))
	}

	var duplicateEmails float64
	err := w.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM (
			SELECT email FROM dim_customers
			WHERE email IS NOT NULL
			GROUP BY email
			HAVING COUNT(*) > 1
		) dup
	`).Scan(&duplicateEmails)
	if err != nil {
		return nil, fmt.Errorf("duplicate email check failed: %w", err)
	}
	metrics = append(metrics, w.metric("dim_customers", "duplicate_emails", duplicateEmails, now))

	var inconsistent float64
	err = w.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM fact_sales
		WHERE ABS(total_revenue - quantity * unit_price) > $1
	`, revenueEpsilon).Scan(&inconsistent)
	if err != nil {
		return nil, fmt.Errorf("revenue consistency check failed: %w", err)
	}
	metrics = append(metrics, w.metric("fact_sales", "revenue_consistency", inconsistent, now))

	// One transaction per run keeps the batch all-or-nothing.
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range metrics {
		_, err := tx.Exec(ctx, `
			INSERT INTO quality_metrics (table_name, metric_name, metric_value, threshold_value, status, check_date)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, m.TableName, m.MetricName, m.MetricValue, m.ThresholdValue, m.Status, m.CheckDate)
		if err != nil {
			return nil, fmt.Errorf("failed to store metric %s: %w", m.MetricName, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return metrics, nil
}

// StoredMetrics returns the full quality check history, most recent first.
func (w *Warehouse) StoredMetrics(ctx context.Context) ([]QualityMetric, error) {
	rows, err := w.db.Query(ctx, `
		SELECT table_name, metric_name, metric_value, threshold_value, status, check_date
		FROM quality_metrics
		ORDER BY check_date DESC, metric_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load quality metrics: %w", err)
	}
	defer rows.Close()

	metrics := []QualityMetric{}
	for rows.Next() {
		var m QualityMetric
		if err := rows.Scan(&m.TableName, &m.MetricName, &m.MetricValue,
			&m.ThresholdValue, &m.Status, &m.CheckDate); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

func (w *Warehouse) metric(table, name string, value float64, checkDate time.Time) QualityMetric {
	threshold := w.thresholds.threshold(name)
	return QualityMetric{
		TableName:      table,
		MetricName:     name,
		MetricValue:    value,
		ThresholdValue: threshold,
		Status:         statusFor(value, threshold),
		CheckDate:      checkDate,
	}
}

// statusFor applies the pass rule: a check passes when its value does not
// exceed the threshold.
func statusFor(value, threshold float64) string {
	if value <= threshold {
		return StatusPass
	}
	return StatusFail
}
