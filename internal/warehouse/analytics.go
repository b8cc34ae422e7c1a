package warehouse

import (
	"context"
	"fmt"
)

// KPIs are the headline warehouse metrics. All values are zero when the
// fact table is empty.
type KPIs struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalProfit         float64 `json:"total_profit"`
	TotalTransactions   int64   `json:"total_transactions"`
	AvgTransactionValue float64 `json:"avg_transaction_value"`
}

// CategorySales is revenue grouped by product category.
type CategorySales struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int64   `json:"quantity"`
}

// CountrySales is revenue grouped by customer country.
type CountrySales struct {
	Country   string  `json:"country"`
	Revenue   float64 `json:"revenue"`
	Customers int64   `json:"customers"`
}

// MonthlyTrend is revenue and profit for one (year, month) pair.
type MonthlyTrend struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// AnalyticsReport is the full analytics payload served over HTTP.
type AnalyticsReport struct {
	KPIs          KPIs            `json:"kpis"`
	CategorySales []CategorySales `json:"category_sales"`
	CountrySales  []CountrySales  `json:"country_sales"`
	MonthlyTrends []MonthlyTrend  `json:"monthly_trends"`
}

// Analytics computes KPIs, category and country breakdowns, and monthly
// trends from the fact table. Read-only. Breakdown ordering is revenue
// descending with name ascending on ties, so output is deterministic.
func (w *Warehouse) Analytics(ctx context.Context) (*AnalyticsReport, error) {
	report := &AnalyticsReport{
		CategorySales: []CategorySales{},
		CountrySales:  []CountrySales{},
		MonthlyTrends: []MonthlyTrend{},
	}

	// COALESCE keeps the empty fact table from producing NULL sums or a
	// NULL average.
	err := w.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_revenue), 0),
			COALESCE(SUM(profit), 0),
			COUNT(*),
			COALESCE(AVG(total_revenue), 0)
		FROM fact_sales
	`).Scan(
		&report.KPIs.TotalRevenue,
		&report.KPIs.TotalProfit,
		&report.KPIs.TotalTransactions,
		&report.KPIs.AvgTransactionValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute kpis: %w", err)
	}

	rows, err := w.db.Query(ctx, `
		SELECT p.category, SUM(s.total_revenue), SUM(s.quantity)
		FROM fact_sales s
		JOIN dim_products p ON s.product_id = p.product_id
		GROUP BY p.category
		ORDER BY SUM(s.total_revenue) DESC, p.category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c CategorySales
		if err := rows.Scan(&c.Category, &c.Revenue, &c.Quantity); err != nil {
			return nil, err
		}
		report.CategorySales = append(report.CategorySales, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = w.db.Query(ctx, `
		SELECT c.country, SUM(s.total_revenue), COUNT(DISTINCT s.customer_id)
		FROM fact_sales s
		JOIN dim_customers c ON s.customer_id = c.customer_id
		GROUP BY c.country
		ORDER BY SUM(s.total_revenue) DESC, c.country ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute country sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c CountrySales
		if err := rows.Scan(&c.Country, &c.Revenue, &c.Customers); err != nil {
			return nil, err
		}
		report.CountrySales = append(report.CountrySales, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = w.db.Query(ctx, `
		SELECT t.year, t.month, SUM(s.total_revenue), SUM(s.profit)
		FROM fact_sales s
		JOIN dim_time t ON s.date_id = t.date_id
		GROUP BY t.year, t.month
		ORDER BY t.year ASC, t.month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly trends: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m MonthlyTrend
		if err := rows.Scan(&m.Year, &m.Month, &m.Revenue, &m.Profit); err != nil {
			return nil, err
		}
		report.MonthlyTrends = append(report.MonthlyTrends, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
