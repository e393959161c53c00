// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package importer loads the orders, returns, and people tables from CSV
// files at startup. The import is idempotent: it runs only when the fact
// table is empty, so restarting the server never duplicates data.
//
// Files are parsed concurrently, one goroutine per file, and rows are
// written in batches with bound parameters. Malformed rows are skipped
// and counted rather than aborting the import.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
)

// dateFormats are tried in order when parsing order and ship dates.
var dateFormats = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

// Load imports the configured CSV files into db. Files with empty paths
// are skipped. Returns immediately when the orders table already has rows.
func Load(ctx context.Context, db *database.DB, cfg *config.ImportConfig) error {
	if cfg.OrdersCSV == "" && cfg.ReturnsCSV == "" && cfg.PeopleCSV == "" {
		return nil
	}

	count, err := db.CountOrders(ctx)
	if err != nil {
		return fmt.Errorf("import precheck: %w", err)
	}
	if count > 0 {
		logging.Info().Int64("existing_rows", count).Msg("orders table already populated, skipping import")
		return nil
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.OrdersCSV != "" {
		g.Go(func() error { return loadOrders(ctx, db, cfg.OrdersCSV, cfg.BatchSize) })
	}
	if cfg.ReturnsCSV != "" {
		g.Go(func() error { return loadReturns(ctx, db, cfg.ReturnsCSV, cfg.BatchSize) })
	}
	if cfg.PeopleCSV != "" {
		g.Go(func() error { return loadPeople(ctx, db, cfg.PeopleCSV) })
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logging.Info().Dur("duration", time.Since(start)).Msg("csv import complete")
	return nil
}

// headerIndex maps lower-cased, trimmed column names to positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseDate(value string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func loadOrders(ctx context.Context, db *database.DB, path string, batchSize int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open orders csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read orders header: %w", err)
	}
	idx := headerIndex(header)

	batch := make([]database.OrderRecord, 0, batchSize)
	var imported, skipped int64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		order, err := parseOrder(record, idx)
		if err != nil {
			skipped++
			continue
		}

		batch = append(batch, order)
		if len(batch) >= batchSize {
			if err := db.InsertOrders(ctx, batch); err != nil {
				return err
			}
			imported += int64(len(batch))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := db.InsertOrders(ctx, batch); err != nil {
			return err
		}
		imported += int64(len(batch))
	}

	logging.Info().
		Str("file", path).
		Int64("imported", imported).
		Int64("skipped", skipped).
		Msg("orders import finished")

	if imported == 0 {
		return fmt.Errorf("orders csv %s produced no valid rows", path)
	}
	return nil
}

func parseOrder(record []string, idx map[string]int) (database.OrderRecord, error) {
	orderID := field(record, idx, "order id")
	if orderID == "" {
		return database.OrderRecord{}, fmt.Errorf("missing order id")
	}

	orderDate, err := parseDate(field(record, idx, "order date"))
	if err != nil {
		return database.OrderRecord{}, err
	}
	shipDate, err := parseDate(field(record, idx, "ship date"))
	if err != nil {
		return database.OrderRecord{}, err
	}

	sales, err := strconv.ParseFloat(field(record, idx, "sales"), 64)
	if err != nil {
		return database.OrderRecord{}, fmt.Errorf("bad sales value: %w", err)
	}
	profit, err := strconv.ParseFloat(field(record, idx, "profit"), 64)
	if err != nil {
		return database.OrderRecord{}, fmt.Errorf("bad profit value: %w", err)
	}

	return database.OrderRecord{
		OrderID:      orderID,
		OrderDate:    orderDate,
		ShipDate:     shipDate,
		ShipMode:     field(record, idx, "ship mode"),
		CustomerID:   field(record, idx, "customer id"),
		CustomerName: field(record, idx, "customer name"),
		Region:       field(record, idx, "region"),
		State:        field(record, idx, "state"),
		Category:     field(record, idx, "category"),
		ProductName:  field(record, idx, "product name"),
		Sales:        sales,
		Profit:       profit,
	}, nil
}

func loadReturns(ctx context.Context, db *database.DB, path string, batchSize int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open returns csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read returns header: %w", err)
	}
	idx := headerIndex(header)

	batch := make([]string, 0, batchSize)
	var imported, skipped int64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		orderID := field(record, idx, "order id")
		if orderID == "" {
			skipped++
			continue
		}

		batch = append(batch, orderID)
		if len(batch) >= batchSize {
			if err := db.InsertReturns(ctx, batch); err != nil {
				return err
			}
			imported += int64(len(batch))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := db.InsertReturns(ctx, batch); err != nil {
			return err
		}
		imported += int64(len(batch))
	}

	logging.Info().
		Str("file", path).
		Int64("imported", imported).
		Int64("skipped", skipped).
		Msg("returns import finished")
	return nil
}

func loadPeople(ctx context.Context, db *database.DB, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open people csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read people header: %w", err)
	}
	idx := headerIndex(header)

	people := []database.PersonRecord{}
	var skipped int64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		person := field(record, idx, "person")
		region := field(record, idx, "region")
		if person == "" || region == "" {
			skipped++
			continue
		}
		people = append(people, database.PersonRecord{Person: person, Region: region})
	}

	if err := db.InsertPeople(ctx, people); err != nil {
		return err
	}

	logging.Info().
		Str("file", path).
		Int("imported", len(people)).
		Int64("skipped", skipped).
		Msg("people import finished")
	return nil
}
