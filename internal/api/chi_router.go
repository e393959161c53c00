// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/storelens/internal/config"
	"github.com/tomtom215/storelens/internal/database"
	"github.com/tomtom215/storelens/internal/middleware"
	"github.com/tomtom215/storelens/internal/models"
)

// Router wires handlers and middleware into the chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given database and security config.
func NewRouter(db *database.DB, sec *config.SecurityConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if sec != nil {
		mwConfig.CORSAllowedOrigins = sec.CORSOrigins
		mwConfig.RateLimitRequests = sec.RateLimitReqs
		mwConfig.RateLimitWindow = sec.RateLimitWindow
		mwConfig.RateLimitDisabled = sec.RateLimitDisabled
	}

	return &Router{
		handler:       NewHandler(db),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. CORS must be
	// global to handle OPTIONS preflight.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get permissive rate limiting so monitoring tools
	// can poll frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Dashboard and insight endpoints. Read-only analytics share one
	// rate limit bucket.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/dashboard", router.handler.Dashboard)

		r.Route("/insights", func(r chi.Router) {
			r.Get("/return-rates", router.handler.InsightReturnRates)
			r.Get("/customers", router.handler.InsightCustomers)
			r.Get("/states", router.handler.InsightStates)
			r.Get("/shipping", router.handler.InsightShipping)
			r.Get("/growth", router.handler.InsightGrowth)
			r.Get("/years", router.handler.InsightYears)
			r.Get("/profit-loss", router.handler.InsightProfitLoss)
			r.Get("/top-loss-products", router.handler.InsightTopLossProducts)
			r.Get("/top-profit-products", router.handler.InsightTopProfitProducts)
		})
	})

	// Prometheus scrape endpoint, outside the API rate limit bucket.
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, &models.APIResponse{
			Status: "error",
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "NOT_FOUND",
				Message: "Unknown route",
			},
		})
	})

	return r
}
