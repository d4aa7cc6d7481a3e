package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/korjavin/fitnourish/internal/chart"
	"github.com/korjavin/fitnourish/internal/dataset"
	"github.com/korjavin/fitnourish/internal/metrics"
	"github.com/korjavin/fitnourish/internal/nutrition"
	"github.com/korjavin/fitnourish/internal/present"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Data        *dataset.Dataset
	Search      *dataset.SearchIndex
	Presenter   *present.Presenter
	SearchLimit int

	PresentHist *metrics.Histogram
	SearchHist  *metrics.Histogram
	SVGHist     *metrics.Histogram
}

func observe(h *metrics.Histogram, start time.Time) {
	if h != nil {
		h.Since(start)
	}
}

// Health returns a liveness check with the dataset manifest.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"dataset": h.Data.Manifest(),
	})
}

// Metrics returns latency percentiles of every registered histogram.
func (h *Handler) Metrics(reg *metrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, reg.Snapshot())
	}
}

// Foods lists every selectable food name in ascending order.
func (h *Handler) Foods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"names": h.Data.Names()})
}

// Goals lists the goal choices in display order.
func (h *Handler) Goals(w http.ResponseWriter, r *http.Request) {
	goals := make([]string, len(nutrition.Goals))
	for i, g := range nutrition.Goals {
		goals[i] = g.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// FoodSearch finds food names by fuzzy match.
func (h *Handler) FoodSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	limit := h.SearchLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if n, err := strconv.Atoi(ls); err == nil && n > 0 {
			limit = n
		}
	}

	start := time.Now()
	names, err := h.Search.Search(q, limit)
	observe(h.SearchHist, start)
	if err != nil {
		slog.Error("search failed", "query", q, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": names})
}

// Present runs the lookup-and-render flow for ?food=&goal=. A missing or
// unknown food is still a 200: the result text explains it to the user.
func (h *Handler) Present(w http.ResponseWriter, r *http.Request) {
	goal, err := nutrition.ParseGoal(r.URL.Query().Get("goal"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	food := r.URL.Query().Get("food")

	start := time.Now()
	res := h.Presenter.Present(food, goal)
	observe(h.PresentHist, start)

	html, err := renderMarkdown(res.Text)
	if err != nil {
		slog.Error("markdown render failed", "food", food, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	slog.Debug("present", "food", food, "goal", goal.String(), "kind", res.Kind)
	writeJSON(w, http.StatusOK, presentResponse{Result: res, HTML: html})
}

// presentResponse is a present.Result plus its text rendered as HTML.
type presentResponse struct {
	present.Result
	HTML string `json:"html"`
}

// ChartSVG draws the macro chart for ?food= as an SVG image.
func (h *Handler) ChartSVG(w http.ResponseWriter, r *http.Request) {
	food := r.URL.Query().Get("food")
	if food == "" {
		http.Error(w, "missing query parameter 'food'", http.StatusBadRequest)
		return
	}
	rec, ok := h.Data.Lookup(food)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := chart.Render(rec).WriteSVG(&buf); err != nil {
		slog.Error("chart render failed", "food", food, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	observe(h.SVGHist, start)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
