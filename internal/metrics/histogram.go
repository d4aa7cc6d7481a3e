package metrics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram is a fixed-bucket latency histogram with lock-free observation.
// Bounds are bucket upper limits in microseconds; the last one must be
// math.MaxInt64 so every observation lands somewhere.
type Histogram struct {
	bounds []int64
	counts []atomic.Int64
	total  atomic.Int64
	sum    atomic.Int64 // microseconds
}

// NewHistogram creates a Histogram with the given bucket upper bounds.
func NewHistogram(boundsMicros []int64) *Histogram {
	h := &Histogram{
		bounds: make([]int64, len(boundsMicros)),
		counts: make([]atomic.Int64, len(boundsMicros)),
	}
	copy(h.bounds, boundsMicros)
	return h
}

// Observe records one latency.
func (h *Histogram) Observe(d time.Duration) {
	micros := d.Microseconds()
	i := sort.Search(len(h.bounds), func(i int) bool { return micros <= h.bounds[i] })
	if i == len(h.bounds) {
		i = len(h.bounds) - 1
	}
	h.counts[i].Add(1)
	h.total.Add(1)
	h.sum.Add(micros)
}

// Since observes the time elapsed from start. Handy with defer.
func (h *Histogram) Since(start time.Time) {
	h.Observe(time.Since(start))
}

// Snapshot is a point-in-time view with bucket-resolution percentiles.
type Snapshot struct {
	P50   time.Duration `json:"p50"`
	P95   time.Duration `json:"p95"`
	P99   time.Duration `json:"p99"`
	Mean  time.Duration `json:"mean"`
	Total int64         `json:"total"`
}

// Snapshot returns the current percentiles of h.
func (h *Histogram) Snapshot() Snapshot {
	total := h.total.Load()
	if total == 0 {
		return Snapshot{}
	}

	counts := make([]int64, len(h.counts))
	for i := range h.counts {
		counts[i] = h.counts[i].Load()
	}

	return Snapshot{
		P50:   percentile(h.bounds, counts, total, 50),
		P95:   percentile(h.bounds, counts, total, 95),
		P99:   percentile(h.bounds, counts, total, 99),
		Mean:  time.Duration(h.sum.Load()/total) * time.Microsecond,
		Total: total,
	}
}

// percentile returns the upper bound of the bucket holding the pth
// percentile. The catch-all bucket reports the bound before it.
func percentile(bounds, counts []int64, total int64, p int) time.Duration {
	target := int64(math.Ceil(float64(total) * float64(p) / 100.0))
	var cumulative int64
	for i, c := range counts {
		cumulative += c
		if cumulative < target {
			continue
		}
		bound := bounds[i]
		if bound == math.MaxInt64 {
			bound = 0
			if i > 0 {
				bound = bounds[i-1]
			}
		}
		return time.Duration(bound) * time.Microsecond
	}
	return 0
}

// Registry holds named histograms.
type Registry struct {
	mu    sync.RWMutex
	hists map[string]*Histogram
}

func NewRegistry() *Registry {
	return &Registry{hists: make(map[string]*Histogram)}
}

// Register returns the histogram called name, creating it with bounds on
// first use.
func (r *Registry) Register(name string, bounds []int64) *Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hists[name]; ok {
		return h
	}
	h := NewHistogram(bounds)
	r.hists[name] = h
	return h
}

// Snapshot returns every histogram's snapshot keyed by name.
func (r *Registry) Snapshot() map[string]Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Snapshot, len(r.hists))
	for name, h := range r.hists {
		out[name] = h.Snapshot()
	}
	return out
}

// Bucket sets, upper bounds in microseconds.

// BucketsPresent suits the in-memory lookup, classify and chart flow.
var BucketsPresent = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, math.MaxInt64}

// BucketsSearch suits fuzzy name searches against the Bleve index.
var BucketsSearch = []int64{100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000, math.MaxInt64}

// BucketsSVG suits chart drawing.
var BucketsSVG = []int64{50, 100, 250, 500, 1000, 2500, 5000, math.MaxInt64}
