// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/storelens/internal/models"
)

// insights.go - Derived, cross-table, and window-based metrics.
//
// These operate over the full order history (no Filter) unless a function
// takes an explicit parameter. Ratio fallbacks are handled in SQL with
// NULLIF/COALESCE so undefined divisions surface as defined values, never
// as engine errors.

// ReturnRateByManager computes, for every (manager, region) pair, the
// distinct order count, the count of those orders appearing in returns,
// and the return percentage rounded to 2 decimals, ordered descending by
// rate. The LEFT JOIN keeps orders without a return in the denominator;
// a region with zero orders cannot divide by zero thanks to the NULLIF
// guard.
func (db *DB) ReturnRateByManager(ctx context.Context) ([]models.ManagerReturnRate, error) {
	query := `
		SELECT
			p.person AS manager,
			o.region,
			COUNT(DISTINCT o.order_id) AS total_orders,
			COUNT(DISTINCT r.order_id) AS returned_orders,
			ROUND(COALESCE(
				COUNT(DISTINCT r.order_id) * 100.0 / NULLIF(COUNT(DISTINCT o.order_id), 0),
			0), 2) AS return_rate_percentage
		FROM orders o
		LEFT JOIN returns r ON o.order_id = r.order_id
		JOIN people p ON o.region = p.region
		GROUP BY p.person, o.region
		ORDER BY return_rate_percentage DESC`

	result := []models.ManagerReturnRate{}
	err := db.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var row models.ManagerReturnRate
		if err := rows.Scan(&row.Manager, &row.Region, &row.TotalOrders, &row.ReturnedOrders, &row.ReturnRatePct); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("return rate by manager: %w", err)
	}
	return result, nil
}

// TopCustomersByState sums sales per customer within the given state and
// dense-ranks them by descending total. All customers with rank < 6 are
// returned: ties share a rank and the next distinct total takes the next
// rank with no gap, so a tie at rank 5 can yield more than five rows.
func (db *DB) TopCustomersByState(ctx context.Context, state string) ([]models.CustomerSales, error) {
	query := `
		SELECT customer_id, customer_name, state, total_sales, rn
		FROM (
			SELECT *,
				DENSE_RANK() OVER (PARTITION BY state ORDER BY total_sales DESC) AS rn
			FROM (
				SELECT
					customer_id,
					customer_name,
					state,
					ROUND(SUM(sales), 2) AS total_sales
				FROM orders
				WHERE state = ?
				GROUP BY customer_id, customer_name, state
			) totals
		) ranked
		WHERE rn < 6
		ORDER BY rn, customer_name`

	result := []models.CustomerSales{}
	err := db.queryAndScan(ctx, query, []any{state}, func(rows *sql.Rows) error {
		var row models.CustomerSales
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.State, &row.TotalSales, &row.Rank); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("top customers by state: %w", err)
	}
	return result, nil
}

// States returns the distinct states present in orders, ascending.
func (db *DB) States(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT state FROM orders WHERE state IS NOT NULL ORDER BY state`

	result := []string{}
	err := db.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var state string
		if err := rows.Scan(&state); err != nil {
			return err
		}
		result = append(result, state)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("states: %w", err)
	}
	return result, nil
}

// ShippingPerformance classifies each order line as late via a fixed
// per-mode threshold on ship_date - order_date in days (strictly greater
// than: a Second Class order shipped in exactly 4 days is on time, 5 is
// late). Modes outside the four known labels are never late. Results
// aggregate per ship mode, ordered descending by late percentage.
func (db *DB) ShippingPerformance(ctx context.Context) ([]models.ShipModePerformance, error) {
	query := `
		SELECT
			ship_mode,
			ROUND(AVG(days_taken), 2) AS avg_shipping_days,
			ROUND(SUM(is_late) * 100.0 / COUNT(*), 2) AS late_percentage
		FROM (
			SELECT
				ship_mode,
				datediff('day', order_date, ship_date) AS days_taken,
				CASE
					WHEN ship_mode = 'Same Day' AND datediff('day', order_date, ship_date) > 0 THEN 1
					WHEN ship_mode = 'First Class' AND datediff('day', order_date, ship_date) > 2 THEN 1
					WHEN ship_mode = 'Second Class' AND datediff('day', order_date, ship_date) > 4 THEN 1
					WHEN ship_mode = 'Standard Class' AND datediff('day', order_date, ship_date) > 6 THEN 1
					ELSE 0
				END AS is_late
			FROM orders
			WHERE ship_date IS NOT NULL
		) shipments
		GROUP BY ship_mode
		ORDER BY late_percentage DESC`

	result := []models.ShipModePerformance{}
	err := db.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var row models.ShipModePerformance
		if err := rows.Scan(&row.ShipMode, &row.AvgShippingDays, &row.LatePercentage); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("shipping performance: %w", err)
	}
	return result, nil
}

// latestYear resolves the maximum calendar year present in order dates.
// Returns ok=false when the orders table is empty.
func (db *DB) latestYear(ctx context.Context) (int, bool, error) {
	var year sql.NullInt64
	if err := db.queryRow(ctx, `SELECT MAX(year(order_date)) FROM orders`, nil, &year); err != nil {
		return 0, false, fmt.Errorf("latest year: %w", err)
	}
	if !year.Valid {
		return 0, false, nil
	}
	return int(year.Int64), true, nil
}

// MonthOverMonthGrowth computes the monthly sales series within a single
// year together with the prior month's sales and the growth percentage
// (current-previous)/previous*100, rounded to 2 decimals.
//
// A nil year resolves to the latest year present in the data. This
// default is a convenience policy carried over from the dashboard UX; the
// resolved year is echoed in the response so the fallback is observable.
//
// The first month of the window has no prior value: PrevMonthSales and
// GrowthPct are null, not zero. Growth is also null when the previous
// month's sales are exactly zero, since growth from zero is undefined.
func (db *DB) MonthOverMonthGrowth(ctx context.Context, year *int) (models.GrowthResponse, error) {
	resolved := 0
	if year != nil {
		resolved = *year
	} else {
		latest, ok, err := db.latestYear(ctx)
		if err != nil {
			return models.GrowthResponse{}, err
		}
		if !ok {
			// Empty dataset: an empty series is a valid outcome.
			return models.GrowthResponse{Months: []models.MonthlyGrowth{}}, nil
		}
		resolved = latest
	}

	query := `
		SELECT
			order_year_month,
			ROUND(monthly_sales, 2) AS monthly_sales,
			ROUND(prev_month_sales, 2) AS prev_month_sales,
			ROUND((monthly_sales - prev_month_sales) / NULLIF(prev_month_sales, 0) * 100, 2) AS growth_percentage
		FROM (
			SELECT
				order_year_month,
				monthly_sales,
				LAG(monthly_sales) OVER (ORDER BY order_year_month) AS prev_month_sales
			FROM (
				SELECT
					strftime(order_date, '%Y-%m') AS order_year_month,
					SUM(sales) AS monthly_sales
				FROM orders
				WHERE year(order_date) = ?
				GROUP BY order_year_month
			) monthly
		) windowed
		ORDER BY order_year_month`

	months := []models.MonthlyGrowth{}
	err := db.queryAndScan(ctx, query, []any{resolved}, func(rows *sql.Rows) error {
		var row models.MonthlyGrowth
		var prev, growth sql.NullFloat64
		if err := rows.Scan(&row.Month, &row.MonthlySales, &prev, &growth); err != nil {
			return err
		}
		if prev.Valid {
			row.PrevMonthSales = &prev.Float64
		}
		if growth.Valid {
			row.GrowthPct = &growth.Float64
		}
		months = append(months, row)
		return nil
	})
	if err != nil {
		return models.GrowthResponse{}, fmt.Errorf("month over month growth: %w", err)
	}

	return models.GrowthResponse{Year: resolved, Months: months}, nil
}

// AvailableYears returns the distinct calendar years present in order
// dates, most recent first.
func (db *DB) AvailableYears(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT year(order_date) AS order_year
		FROM orders
		ORDER BY order_year DESC`

	result := []int{}
	err := db.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var year int
		if err := rows.Scan(&year); err != nil {
			return err
		}
		result = append(result, year)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("available years: %w", err)
	}
	return result, nil
}

// ProfitLossAnalysis partitions every order line's profit into a loss
// component (negative values) and a profit component (positive values),
// then reports the totals and each side's percentage of the combined
// absolute magnitude. A dataset with no profit and no loss reports zeros;
// the NULLIF guard keeps the degenerate case division-free.
func (db *DB) ProfitLossAnalysis(ctx context.Context) (models.ProfitLossSummary, error) {
	query := `
		WITH profit_loss AS (
			SELECT
				CASE WHEN profit < 0 THEN profit ELSE 0 END AS loss_amt,
				CASE WHEN profit > 0 THEN profit ELSE 0 END AS profit_amt
			FROM orders
		)
		SELECT
			ROUND(COALESCE(SUM(profit_amt), 0), 2) AS total_gross_profit,
			ROUND(ABS(COALESCE(SUM(loss_amt), 0)), 2) AS total_lost_money,
			ROUND(COALESCE(
				SUM(profit_amt) * 100.0 / NULLIF(SUM(profit_amt) + ABS(SUM(loss_amt)), 0),
			0), 2) AS profit_percentage_impact,
			ROUND(COALESCE(
				ABS(SUM(loss_amt)) * 100.0 / NULLIF(SUM(profit_amt) + ABS(SUM(loss_amt)), 0),
			0), 2) AS loss_percentage_impact
		FROM profit_loss`

	var summary models.ProfitLossSummary
	err := db.queryRow(ctx, query, nil,
		&summary.TotalGrossProfit,
		&summary.TotalLostMoney,
		&summary.ProfitPct,
		&summary.LossPct,
	)
	if err != nil {
		return models.ProfitLossSummary{}, fmt.Errorf("profit loss analysis: %w", err)
	}
	return summary, nil
}

// TopLossProducts returns the five products contributing most to total
// loss, each with its share of the loss across ALL loss-making products.
// The window-sum denominator is computed before the LIMIT, so the five
// shares sum to less than 100 whenever more than five products lose money.
func (db *DB) TopLossProducts(ctx context.Context) ([]models.ProductShare, error) {
	query := `
		WITH product_losses AS (
			SELECT
				product_name,
				SUM(CASE WHEN profit < 0 THEN profit ELSE 0 END) AS loss_amt
			FROM orders
			GROUP BY product_name
		),
		losing AS (
			SELECT product_name, ABS(loss_amt) AS loss_amt
			FROM product_losses
			WHERE loss_amt < 0
		)
		SELECT
			product_name,
			ROUND(loss_amt, 2) AS amount,
			ROUND(loss_amt * 100.0 / SUM(loss_amt) OVER (), 2) AS percentage
		FROM losing
		ORDER BY loss_amt DESC
		LIMIT 5`

	return db.scanProductShares(ctx, query, "top loss products")
}

// TopProfitProducts mirrors TopLossProducts for the profit side: the five
// products contributing most to total profit, with shares of the profit
// across all profit-making products.
func (db *DB) TopProfitProducts(ctx context.Context) ([]models.ProductShare, error) {
	query := `
		WITH product_profits AS (
			SELECT
				product_name,
				SUM(CASE WHEN profit > 0 THEN profit ELSE 0 END) AS profit_amt
			FROM orders
			GROUP BY product_name
		),
		earning AS (
			SELECT product_name, profit_amt
			FROM product_profits
			WHERE profit_amt > 0
		)
		SELECT
			product_name,
			ROUND(profit_amt, 2) AS amount,
			ROUND(profit_amt * 100.0 / SUM(profit_amt) OVER (), 2) AS percentage
		FROM earning
		ORDER BY profit_amt DESC
		LIMIT 5`

	return db.scanProductShares(ctx, query, "top profit products")
}

func (db *DB) scanProductShares(ctx context.Context, query, label string) ([]models.ProductShare, error) {
	result := []models.ProductShare{}
	err := db.queryAndScan(ctx, query, nil, func(rows *sql.Rows) error {
		var row models.ProductShare
		if err := rows.Scan(&row.ProductName, &row.Amount, &row.Percentage); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return result, nil
}
