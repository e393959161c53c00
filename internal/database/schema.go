// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the fact and auxiliary tables. order_id is
// intentionally non-unique in orders: an order spans one row per line item.
// A row in returns marks the whole order as returned. people maps each
// region to its responsible manager.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS orders_row_id_seq`,
	`CREATE TABLE IF NOT EXISTS orders (
		row_id        BIGINT PRIMARY KEY DEFAULT nextval('orders_row_id_seq'),
		order_id      VARCHAR NOT NULL,
		order_date    DATE NOT NULL,
		ship_date     DATE,
		ship_mode     VARCHAR,
		customer_id   VARCHAR,
		customer_name VARCHAR,
		region        VARCHAR,
		state         VARCHAR,
		category      VARCHAR,
		product_name  VARCHAR,
		sales         DOUBLE NOT NULL DEFAULT 0,
		profit        DOUBLE NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS returns (
		order_id VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS people (
		person VARCHAR NOT NULL,
		region VARCHAR NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders (order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_region ON orders (region)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_category ON orders (category)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_state ON orders (state)`,
	`CREATE INDEX IF NOT EXISTS idx_returns_order_id ON returns (order_id)`,
}

// createSchema creates tables and indexes idempotently.
func (db *DB) createSchema(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
