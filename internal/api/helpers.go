// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/logging"
	"github.com/tomtom215/storelens/internal/models"
	"github.com/tomtom215/storelens/internal/validation"
)

// sanitizeLogValue removes control characters from strings before they
// reach the log stream, so request input cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in the success envelope with query timing.
func respondSuccess(w http.ResponseWriter, data interface{}, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError sends a 400 carrying field-level details.
func respondValidationError(w http.ResponseWriter, apiErr *models.APIError) {
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: apiErr,
	})
}

// respondDBError maps a query failure to a 500 DATABASE_ERROR without
// leaking SQL details to the client.
func respondDBError(w http.ResponseWriter, err error) {
	if database.IsConnectionError(err) {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database connection lost", err)
		return
	}
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Query execution failed", err)
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}

// parseFilter extracts the shared year/region/category query parameters.
// Absent parameters stay nil (no restriction). A non-integer year is a
// validation failure, not a silent no-filter.
func parseFilter(r *http.Request) (database.Filter, *models.APIError) {
	var filter database.Filter
	q := r.URL.Query()

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, &models.APIError{
				Code:    "VALIDATION_ERROR",
				Message: "year must be an integer",
				Details: map[string]interface{}{"field": "year", "value": raw},
			}
		}
		filter.Year = &year
	}
	if raw := q.Get("region"); raw != "" {
		filter.Region = &raw
	}
	if raw := q.Get("category"); raw != "" {
		filter.Category = &raw
	}

	return filter, nil
}

// parseOptionalYear extracts an optional year query parameter.
func parseOptionalYear(r *http.Request) (*int, *models.APIError) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "year must be an integer",
			Details: map[string]interface{}{"field": "year", "value": raw},
		}
	}
	return &year, nil
}
