// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
)

// Handler holds dependencies for the HTTP handlers.
type Handler struct {
	db        *database.DB
	startedAt time.Time
}

// NewHandler creates a handler backed by db.
func NewHandler(db *database.DB) *Handler {
	return &Handler{
		db:        db,
		startedAt: time.Now(),
	}
}

// HealthLive reports process liveness. Always 200 while the process runs.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"status": "alive"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady reports readiness: the database must answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database unavailable", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"status": "ready"},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Health reports overall service health with uptime and database status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	status := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Warn().Err(err).Msg("Health check database ping failed")
		dbStatus = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         dbStatus,
			"database":       dbStatus,
			"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Dashboard returns the combined KPI cards and chart series, restricted
// by the optional year/region/category filter.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter, apiErr := parseFilter(r)
	if apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	cards, err := h.db.DashboardCards(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}

	charts, err := h.db.DashboardCharts(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondSuccess(w, models.DashboardResponse{Cards: cards, Charts: charts}, start)
}
