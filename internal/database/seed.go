// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"
	"time"
)

// SeedSampleData inserts a small deterministic dataset covering every
// dashboard dimension: two years, four regions, three categories, all
// four ship modes, returned orders, and loss-making products. Intended
// for demos and development (database.seed_sample_data=true); does
// nothing when the orders table already has rows.
func (db *DB) SeedSampleData(ctx context.Context) error {
	count, err := db.CountOrders(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	date := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}

	orders := []OrderRecord{
		{OrderID: "US-2016-1001", OrderDate: date(2016, 1, 5), ShipDate: date(2016, 1, 8), ShipMode: "Second Class", CustomerID: "CG-1234", CustomerName: "Claire Gute", Region: "South", State: "Kentucky", Category: "Furniture", ProductName: "Bush Somerset Bookcase", Sales: 261.96, Profit: 41.91},
		{OrderID: "US-2016-1001", OrderDate: date(2016, 1, 5), ShipDate: date(2016, 1, 8), ShipMode: "Second Class", CustomerID: "CG-1234", CustomerName: "Claire Gute", Region: "South", State: "Kentucky", Category: "Furniture", ProductName: "Hon Deluxe Chairs", Sales: 731.94, Profit: 219.58},
		{OrderID: "US-2016-1002", OrderDate: date(2016, 3, 12), ShipDate: date(2016, 3, 12), ShipMode: "Same Day", CustomerID: "DV-3305", CustomerName: "Darrin Van Huff", Region: "West", State: "California", Category: "Office Supplies", ProductName: "Self-Adhesive Labels", Sales: 14.62, Profit: 6.87},
		{OrderID: "US-2016-1003", OrderDate: date(2016, 6, 20), ShipDate: date(2016, 6, 27), ShipMode: "Standard Class", CustomerID: "SO-5432", CustomerName: "Sean O'Donnell", Region: "South", State: "Florida", Category: "Furniture", ProductName: "Bretford Rectangular Table", Sales: 957.58, Profit: -383.03},
		{OrderID: "US-2016-1004", OrderDate: date(2016, 9, 2), ShipDate: date(2016, 9, 6), ShipMode: "First Class", CustomerID: "BH-6677", CustomerName: "Brosina Hoffman", Region: "West", State: "California", Category: "Technology", ProductName: "Mitel Cordless Phone", Sales: 907.15, Profit: 90.72},
		{OrderID: "US-2017-2001", OrderDate: date(2017, 2, 14), ShipDate: date(2017, 2, 17), ShipMode: "Second Class", CustomerID: "AA-1010", CustomerName: "Andrew Allen", Region: "East", State: "New York", Category: "Technology", ProductName: "Logitech Keyboard", Sales: 120.00, Profit: 30.00},
		{OrderID: "US-2017-2002", OrderDate: date(2017, 4, 8), ShipDate: date(2017, 4, 16), ShipMode: "Standard Class", CustomerID: "IM-2020", CustomerName: "Irene Maddox", Region: "Central", State: "Texas", Category: "Office Supplies", ProductName: "Newell Pens", Sales: 55.48, Profit: -11.10},
		{OrderID: "US-2017-2003", OrderDate: date(2017, 5, 25), ShipDate: date(2017, 5, 28), ShipMode: "First Class", CustomerID: "HP-3030", CustomerName: "Harold Pawlan", Region: "East", State: "New York", Category: "Furniture", ProductName: "Global Leather Chair", Sales: 600.56, Profit: 150.14},
		{OrderID: "US-2017-2004", OrderDate: date(2017, 8, 30), ShipDate: date(2017, 9, 3), ShipMode: "Second Class", CustomerID: "PK-4040", CustomerName: "Pete Kriz", Region: "Central", State: "Wisconsin", Category: "Technology", ProductName: "Cisco IP Phone", Sales: 1097.54, Profit: 274.38},
		{OrderID: "US-2017-2005", OrderDate: date(2017, 11, 11), ShipDate: date(2017, 11, 13), ShipMode: "First Class", CustomerID: "AG-5050", CustomerName: "Alejandro Grove", Region: "West", State: "Utah", Category: "Office Supplies", ProductName: "Fellowes Shredder", Sales: 665.88, Profit: 13.32},
	}

	returns := []string{"US-2016-1003", "US-2017-2002"}

	people := []PersonRecord{
		{Person: "Anna Andreadi", Region: "West"},
		{Person: "Chuck Magee", Region: "East"},
		{Person: "Kelly Williams", Region: "Central"},
		{Person: "Cassandra Brandow", Region: "South"},
	}

	if err := db.InsertOrders(ctx, orders); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := db.InsertReturns(ctx, returns); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := db.InsertPeople(ctx, people); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
