// Package metrics keeps in-process latency histograms for the JSON metrics
// endpoint and Prometheus collectors for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/korjavin/fitnourish/internal/nutrition"
	"github.com/korjavin/fitnourish/internal/present"
)

// Prom owns the Prometheus collectors. It uses its own registry so tests can
// create as many as they like.
type Prom struct {
	reg           *prometheus.Registry
	presentations *prometheus.CounterVec
	verdicts      *prometheus.CounterVec
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

func NewProm() *Prom {
	p := &Prom{
		reg: prometheus.NewRegistry(),
		presentations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitnourish_presentations_total",
				Help: "Lookup-and-render calls by outcome.",
			},
			[]string{"kind"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitnourish_verdicts_total",
				Help: "Verdicts handed out, by goal and verdict.",
			},
			[]string{"goal", "verdict"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"method", "route"},
		),
	}
	p.reg.MustRegister(
		p.presentations,
		p.verdicts,
		p.requests,
		p.duration,
		collectors.NewGoCollector(),
	)
	return p
}

// Presented implements present.Observer.
func (p *Prom) Presented(kind present.Kind, goal nutrition.Goal, v nutrition.Verdict) {
	p.presentations.WithLabelValues(string(kind)).Inc()
	if kind == present.KindOK {
		p.verdicts.WithLabelValues(goal.String(), v.String()).Inc()
	}
}

// ObserveRequest records one served HTTP request. route should be the mux
// pattern, not the raw path, to keep label cardinality bounded.
func (p *Prom) ObserveRequest(method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the exposition format.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (p *Prom) Gatherer() prometheus.Gatherer {
	return p.reg
}
