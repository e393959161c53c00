// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
)

const ordersHeader = "Order ID,Order Date,Ship Date,Ship Mode,Customer ID,Customer Name,Region,State,Category,Product Name,Sales,Profit\n"

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxMemory:    "1GB",
		QueryTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadNoFilesConfigured(t *testing.T) {
	db := setupTestDB(t)

	if err := Load(context.Background(), db, &config.ImportConfig{BatchSize: 100}); err != nil {
		t.Fatalf("Load with no files: %v", err)
	}
}

func TestLoadOrdersReturnsPeople(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orders := ordersHeader +
		"US-2017-0001,2017-01-05,2017-01-08,Second Class,CG-1234,Claire Gute,South,Kentucky,Furniture,Bookcase,261.96,41.91\n" +
		"US-2017-0002,2017-03-12,2017-03-12,Same Day,DV-3305,Darrin Van Huff,West,California,Technology,Phone,907.15,90.72\n"
	returns := "Returned,Order ID\nYes,US-2017-0001\n"
	people := "Person,Region\nAnna Andreadi,West\nCassandra Brandow,South\n"

	cfg := &config.ImportConfig{
		OrdersCSV:  writeTempCSV(t, "orders.csv", orders),
		ReturnsCSV: writeTempCSV(t, "returns.csv", returns),
		PeopleCSV:  writeTempCSV(t, "people.csv", people),
		BatchSize:  100,
	}

	if err := Load(ctx, db, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	count, err := db.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if count != 2 {
		t.Errorf("Orders imported = %d, want 2", count)
	}

	rates, err := db.ReturnRateByManager(ctx)
	if err != nil {
		t.Fatalf("ReturnRateByManager: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("Got %d manager rows, want 2", len(rates))
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orders := ordersHeader +
		"US-2017-0001,2017-01-05,2017-01-08,Second Class,CG-1234,Claire Gute,South,Kentucky,Furniture,Bookcase,261.96,41.91\n" +
		",2017-02-01,2017-02-03,First Class,AA-0001,Nobody,West,California,Technology,Widget,10.0,1.0\n" +
		"US-2017-0003,not-a-date,2017-02-03,First Class,AA-0001,Nobody,West,California,Technology,Widget,10.0,1.0\n" +
		"US-2017-0004,2017-02-01,2017-02-03,First Class,AA-0001,Nobody,West,California,Technology,Widget,abc,1.0\n"

	cfg := &config.ImportConfig{
		OrdersCSV: writeTempCSV(t, "orders.csv", orders),
		BatchSize: 100,
	}

	if err := Load(ctx, db, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	count, err := db.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if count != 1 {
		t.Errorf("Orders imported = %d, want 1 (three rows malformed)", count)
	}
}

func TestLoadIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orders := ordersHeader +
		"US-2017-0001,2017-01-05,2017-01-08,Second Class,CG-1234,Claire Gute,South,Kentucky,Furniture,Bookcase,261.96,41.91\n"

	cfg := &config.ImportConfig{
		OrdersCSV: writeTempCSV(t, "orders.csv", orders),
		BatchSize: 100,
	}

	if err := Load(ctx, db, cfg); err != nil {
		t.Fatalf("First load: %v", err)
	}
	if err := Load(ctx, db, cfg); err != nil {
		t.Fatalf("Second load: %v", err)
	}

	count, err := db.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders: %v", err)
	}
	if count != 1 {
		t.Errorf("Orders after repeat load = %d, want 1", count)
	}
}

func TestLoadSlashDates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orders := ordersHeader +
		"US-2017-0001,1/5/2017,1/8/2017,Second Class,CG-1234,Claire Gute,South,Kentucky,Furniture,Bookcase,261.96,41.91\n"

	cfg := &config.ImportConfig{
		OrdersCSV: writeTempCSV(t, "orders.csv", orders),
		BatchSize: 100,
	}

	if err := Load(ctx, db, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	years, err := db.AvailableYears(ctx)
	if err != nil {
		t.Fatalf("AvailableYears: %v", err)
	}
	if len(years) != 1 || years[0] != 2017 {
		t.Errorf("Years = %v, want [2017]", years)
	}
}

func TestLoadMissingOrdersFile(t *testing.T) {
	db := setupTestDB(t)

	cfg := &config.ImportConfig{
		OrdersCSV: filepath.Join(t.TempDir(), "missing.csv"),
		BatchSize: 100,
	}

	if err := Load(context.Background(), db, cfg); err == nil {
		t.Fatal("Expected error for missing orders file")
	}
}

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		input   string
		wantDay int
		wantErr bool
	}{
		{"2017-01-05", 5, false},
		{"1/5/2017", 5, false},
		{"01/05/2017", 5, false},
		{"05.01.2017", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDate(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDate(%q): %v", tt.input, err)
			continue
		}
		if got.Day() != tt.wantDay {
			t.Errorf("parseDate(%q).Day() = %d, want %d", tt.input, got.Day(), tt.wantDay)
		}
	}
}
