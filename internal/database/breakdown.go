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

// breakdown.go - Grouped breakdown series for the dashboard charts.

// RevenueByMonth sums sales per calendar month of order_date, ordered
// chronologically ascending. Bucket labels are "YYYY-MM" with the month
// zero-padded, which makes the lexicographic ORDER BY chronological.
func (db *DB) RevenueByMonth(ctx context.Context, filter Filter) ([]models.MonthlyRevenue, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`
		SELECT
			strftime(order_date, '%%Y-%%m') AS period,
			ROUND(SUM(sales), 2) AS revenue
		FROM orders
		WHERE %s
		GROUP BY period
		ORDER BY period`, where)

	result := []models.MonthlyRevenue{}
	err := db.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var row models.MonthlyRevenue
		if err := rows.Scan(&row.Period, &row.Revenue); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	return result, nil
}

// SalesByCategory sums sales per category, ordered descending by value.
func (db *DB) SalesByCategory(ctx context.Context, filter Filter) ([]models.CategorySales, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`
		SELECT
			category,
			ROUND(SUM(sales), 2) AS total_sales
		FROM orders
		WHERE %s
		GROUP BY category
		ORDER BY total_sales DESC`, where)

	result := []models.CategorySales{}
	err := db.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var row models.CategorySales
		if err := rows.Scan(&row.Name, &row.Value); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	return result, nil
}

// TopStatesByRevenue returns the top 5 states by summed sales, descending.
// Fewer than 5 distinct states yields fewer rows, never padding.
func (db *DB) TopStatesByRevenue(ctx context.Context, filter Filter) ([]models.StateRevenue, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`
		SELECT
			state,
			ROUND(SUM(sales), 2) AS revenue
		FROM orders
		WHERE %s
		GROUP BY state
		ORDER BY revenue DESC
		LIMIT 5`, where)

	result := []models.StateRevenue{}
	err := db.queryAndScan(ctx, query, args, func(rows *sql.Rows) error {
		var row models.StateRevenue
		if err := rows.Scan(&row.State, &row.Revenue); err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("top states by revenue: %w", err)
	}
	return result, nil
}

// DashboardCharts runs the three breakdown series under one filter.
func (db *DB) DashboardCharts(ctx context.Context, filter Filter) (models.DashboardCharts, error) {
	var charts models.DashboardCharts
	var err error

	if charts.RevenueTrend, err = db.RevenueByMonth(ctx, filter); err != nil {
		return models.DashboardCharts{}, err
	}
	if charts.SalesByCategory, err = db.SalesByCategory(ctx, filter); err != nil {
		return models.DashboardCharts{}, err
	}
	if charts.TopStates, err = db.TopStatesByRevenue(ctx, filter); err != nil {
		return models.DashboardCharts{}, err
	}
	return charts, nil
}
