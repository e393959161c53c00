// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// crud.go - Startup-time batch inserts used by the importer and seeder.
// The request path never writes; these run once before the server accepts
// traffic.

// OrderRecord is the ingest shape of one order line.
type OrderRecord struct {
	OrderID      string
	OrderDate    time.Time
	ShipDate     time.Time
	ShipMode     string
	CustomerID   string
	CustomerName string
	Region       string
	State        string
	Category     string
	ProductName  string
	Sales        float64
	Profit       float64
}

// PersonRecord maps a region to its responsible manager.
type PersonRecord struct {
	Person string
	Region string
}

// CountOrders returns the number of order lines in the fact table.
// Used to make startup imports idempotent.
func (db *DB) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := db.queryRow(ctx, `SELECT COUNT(*) FROM orders`, nil, &count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// InsertOrders batch-inserts order lines with bound parameters.
func (db *DB) InsertOrders(ctx context.Context, records []OrderRecord) error {
	if len(records) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const cols = 12
	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records)*cols)
	for _, r := range records {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			r.OrderID, r.OrderDate, r.ShipDate, r.ShipMode,
			r.CustomerID, r.CustomerName, r.Region, r.State,
			r.Category, r.ProductName, r.Sales, r.Profit,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO orders (
			order_id, order_date, ship_date, ship_mode,
			customer_id, customer_name, region, state,
			category, product_name, sales, profit
		) VALUES %s`, strings.Join(placeholders, ", "))

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

// InsertReturns batch-inserts returned order ids.
func (db *DB) InsertReturns(ctx context.Context, orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	placeholders := make([]string, 0, len(orderIDs))
	args := make([]any, 0, len(orderIDs))
	for _, id := range orderIDs {
		placeholders = append(placeholders, "(?)")
		args = append(args, id)
	}

	query := fmt.Sprintf(`INSERT INTO returns (order_id) VALUES %s`, strings.Join(placeholders, ", "))
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert returns: %w", err)
	}
	return nil
}

// InsertPeople batch-inserts region-manager mappings.
func (db *DB) InsertPeople(ctx context.Context, people []PersonRecord) error {
	if len(people) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	placeholders := make([]string, 0, len(people))
	args := make([]any, 0, len(people)*2)
	for _, p := range people {
		placeholders = append(placeholders, "(?, ?)")
		args = append(args, p.Person, p.Region)
	}

	query := fmt.Sprintf(`INSERT INTO people (person, region) VALUES %s`, strings.Join(placeholders, ", "))
	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert people: %w", err)
	}
	return nil
}
