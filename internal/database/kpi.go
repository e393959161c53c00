// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/storelens/internal/models"
)

// kpi.go - Scalar KPI aggregates for the dashboard cards.
//
// Every metric shares the Filter contract and coalesces empty result sets
// to 0 in SQL, so callers never see NULL aggregates or NaN ratios.

// TotalSales returns the summed sales over filtered rows, 0 if none match.
func (db *DB) TotalSales(ctx context.Context, filter Filter) (float64, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`SELECT ROUND(COALESCE(SUM(sales), 0), 2) FROM orders WHERE %s`, where)

	var total float64
	if err := db.queryRow(ctx, query, args, &total); err != nil {
		return 0, fmt.Errorf("total sales: %w", err)
	}
	return total, nil
}

// TotalProfit returns the summed profit over filtered rows, 0 if none match.
func (db *DB) TotalProfit(ctx context.Context, filter Filter) (float64, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`SELECT ROUND(COALESCE(SUM(profit), 0), 2) FROM orders WHERE %s`, where)

	var total float64
	if err := db.queryRow(ctx, query, args, &total); err != nil {
		return 0, fmt.Errorf("total profit: %w", err)
	}
	return total, nil
}

// TotalOrders counts distinct order ids over filtered rows. A multi-line
// order contributes exactly once.
func (db *DB) TotalOrders(ctx context.Context, filter Filter) (int64, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT order_id) FROM orders WHERE %s`, where)

	var count int64
	if err := db.queryRow(ctx, query, args, &count); err != nil {
		return 0, fmt.Errorf("total orders: %w", err)
	}
	return count, nil
}

// ProfitMargin returns sum(profit)/sum(sales)*100 over filtered rows,
// rounded to 2 decimals. When the sales sum is zero the margin is 0; the
// NULLIF guard keeps division by zero out of the engine entirely.
func (db *DB) ProfitMargin(ctx context.Context, filter Filter) (float64, error) {
	where, args := filter.WhereClause()
	query := fmt.Sprintf(`
		SELECT ROUND(COALESCE(SUM(profit) / NULLIF(SUM(sales), 0) * 100, 0), 2)
		FROM orders
		WHERE %s`, where)

	var margin float64
	if err := db.queryRow(ctx, query, args, &margin); err != nil {
		return 0, fmt.Errorf("profit margin: %w", err)
	}
	return margin, nil
}

// DashboardCards runs the four KPI metrics under one filter.
func (db *DB) DashboardCards(ctx context.Context, filter Filter) (models.DashboardCards, error) {
	var cards models.DashboardCards
	var err error

	if cards.TotalSales, err = db.TotalSales(ctx, filter); err != nil {
		return models.DashboardCards{}, err
	}
	if cards.TotalProfit, err = db.TotalProfit(ctx, filter); err != nil {
		return models.DashboardCards{}, err
	}
	if cards.TotalOrders, err = db.TotalOrders(ctx, filter); err != nil {
		return models.DashboardCards{}, err
	}
	if cards.ProfitMargin, err = db.ProfitMargin(ctx, filter); err != nil {
		return models.DashboardCards{}, err
	}
	return cards, nil
}
