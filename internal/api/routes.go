// Package api is the HTTP presentation layer: an interactive page, a JSON
// API and an MCP tool endpoint, all backed by the same lookup-and-render
// flow.
package api

import (
	"net/http"

	"github.com/korjavin/fitnourish/internal/auth"
	"github.com/korjavin/fitnourish/internal/metrics"
)

// Deps are the optional cross-cutting pieces wired around the handlers.
type Deps struct {
	Keys     auth.Keys
	Registry *metrics.Registry
	Prom     *metrics.Prom
}

// RegisterRoutes registers all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler, d Deps) {
	if d.Registry != nil {
		h.PresentHist = d.Registry.Register("present", metrics.BucketsPresent)
		h.SearchHist = d.Registry.Register("search", metrics.BucketsSearch)
		h.SVGHist = d.Registry.Register("chart_svg", metrics.BucketsSVG)
	}
	protected := d.Keys.Middleware

	// Public
	mux.HandleFunc("GET /{$}", h.Page)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /metrics", h.Metrics(d.Registry))
	if d.Prom != nil {
		mux.Handle("GET /metrics/prometheus", d.Prom.Handler())
	}

	// Protected: X-API-Key header or api_key query param
	mux.Handle("GET /api/v1/foods", protected(http.HandlerFunc(h.Foods)))
	mux.Handle("GET /api/v1/foods/search", protected(http.HandlerFunc(h.FoodSearch)))
	mux.Handle("GET /api/v1/goals", protected(http.HandlerFunc(h.Goals)))
	mux.Handle("GET /api/v1/present", protected(http.HandlerFunc(h.Present)))
	mux.Handle("GET /api/v1/chart.svg", protected(http.HandlerFunc(h.ChartSVG)))
	mux.Handle("POST /mcp", protected(http.HandlerFunc(h.MCP)))
}
