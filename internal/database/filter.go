// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import "strings"

// Filter contains the optional filter parameters shared by every KPI and
// breakdown query. All fields are optional and combine with AND logic;
// a nil field means "no restriction", never an empty-string match.
//
// Filter is an ephemeral value object: constructed per request, passed by
// value, and discarded after use. It is safe for concurrent read access.
//
// SQL generation: WhereClause produces a parameterized conjunction whose
// clause order is fixed — year, then region, then category — with bound
// values in the same order:
//
//	f := Filter{Year: &year, Category: &cat}
//	clause, args := f.WhereClause()
//	// clause: "year(order_date) = ? AND category = ?"
//	// args:   [2017, "Furniture"]
//
// Matching is exact equality on stored values. No case normalization or
// partial matching is applied; callers pass values as stored.
type Filter struct {
	Year     *int
	Region   *string
	Category *string
}

// WhereClause builds the WHERE clause conditions and bound arguments for
// the filter. With no filters present it returns the no-op predicate
// "1=1" (matching every row) for safe AND concatenation, and no args.
//
// This is the single predicate implementation used by every aggregate
// query in this package; individual metrics never re-derive filter SQL.
func (f Filter) WhereClause() (string, []any) {
	clauses := []string{}
	args := []any{}

	if f.Year != nil {
		clauses = append(clauses, "year(order_date) = ?")
		args = append(args, *f.Year)
	}
	if f.Region != nil {
		clauses = append(clauses, "region = ?")
		args = append(args, *f.Region)
	}
	if f.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *f.Category)
	}

	if len(clauses) == 0 {
		return "1=1", args
	}
	return strings.Join(clauses, " AND "), args
}
