// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"
)

// CustomersRequest carries the validated parameters of the top-customers
// insight. State is mandatory; the ranking is only meaningful per state.
type CustomersRequest struct {
	State string `validate:"required,max=100"`
}

// InsightReturnRates returns per-manager return rates across regions.
func (h *Handler) InsightReturnRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rates, err := h.db.ReturnRateByManager(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, rates, start)
}

// InsightCustomers returns the top customers by sales within one state,
// dense-ranked so ties share a position.
func (h *Handler) InsightCustomers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := CustomersRequest{State: r.URL.Query().Get("state")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	customers, err := h.db.TopCustomersByState(r.Context(), req.State)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, customers, start)
}

// InsightStates lists the distinct states present in the data, for
// populating the state selector of the customers insight.
func (h *Handler) InsightStates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	states, err := h.db.States(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, states, start)
}

// InsightShipping returns average shipping days and late percentage per
// ship mode.
func (h *Handler) InsightShipping(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	performance, err := h.db.ShippingPerformance(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, performance, start)
}

// InsightGrowth returns the month-over-month sales growth series for the
// requested year, defaulting to the latest year with data.
func (h *Handler) InsightGrowth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	year, apiErr := parseOptionalYear(r)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	growth, err := h.db.MonthOverMonthGrowth(r.Context(), year)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, growth, start)
}

// InsightYears lists the distinct order years, newest first.
func (h *Handler) InsightYears(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	years, err := h.db.AvailableYears(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, years, start)
}

// InsightProfitLoss returns the gained-versus-lost money partition.
func (h *Handler) InsightProfitLoss(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	summary, err := h.db.ProfitLossAnalysis(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, summary, start)
}

// InsightTopLossProducts returns the five products losing the most money,
// each with its share of the total loss.
func (h *Handler) InsightTopLossProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	products, err := h.db.TopLossProducts(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, products, start)
}

// InsightTopProfitProducts returns the five most profitable products,
// each with its share of the total profit.
func (h *Handler) InsightTopProfitProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	products, err := h.db.TopProfitProducts(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondSuccess(w, products, start)
}
