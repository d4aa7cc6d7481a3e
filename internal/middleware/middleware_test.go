package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), mark("outer"), mark("middle"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,middle,inner" {
		t.Errorf("order = %v", order)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("generated id %q, header %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "abc-123" {
		t.Errorf("incoming id not reused: %q", seen)
	}

	if RequestIDFrom(context.Background()) != "" {
		t.Error("empty context should have no id")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/foods/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})
	h := Chain(mux, RequestID, Logging(logger))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods/Paneer", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, buf.String())
	}
	checks := map[string]any{
		"msg":        "request",
		"request_id": "req-1",
		"method":     "GET",
		"path":       "/api/v1/foods/Paneer",
		"route":      "GET /api/v1/foods/{name}",
		"status":     float64(http.StatusTeapot),
		"bytes":      float64(len("short and stout")),
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s = %v; want %v", k, entry[k], want)
		}
	}
}

type fakeObserver struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, route)
	f.status = append(f.status, status)
}

func TestObserve(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /health", okHandler())
	obs := &fakeObserver{}
	h := Observe(obs)(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if len(obs.routes) != 2 {
		t.Fatalf("observed %d requests; want 2", len(obs.routes))
	}
	if obs.routes[0] != "GET /health" || obs.status[0] != http.StatusOK {
		t.Errorf("first = %s %d", obs.routes[0], obs.status[0])
	}
	if obs.status[1] != http.StatusNotFound {
		t.Errorf("second status = %d; want 404", obs.status[1])
	}
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := RateLimit(ctx, 1, 2)(okHandler())

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if do("10.0.0.1") != http.StatusOK || do("10.0.0.1") != http.StatusOK {
		t.Fatal("burst requests should pass")
	}
	if got := do("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d; want 429", got)
	}
	// another client has its own bucket
	if got := do("10.0.0.2"); got != http.StatusOK {
		t.Errorf("other client = %d; want 200", got)
	}
}

func TestLimiters_Sweep(t *testing.T) {
	l := newLimiters(10, 10)
	now := time.Now()
	l.get("old", now.Add(-10*time.Minute))
	l.get("fresh", now)

	l.sweep(now.Add(-limiterIdleTTL))
	if l.len() != 1 {
		t.Errorf("len after sweep = %d; want 1", l.len())
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	if got := realIP(req); got != "192.0.2.7" {
		t.Errorf("RemoteAddr ip = %q", got)
	}
	req.Header.Set("X-Real-IP", "198.51.100.1")
	if got := realIP(req); got != "198.51.100.1" {
		t.Errorf("X-Real-IP = %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if got := realIP(req); got != "203.0.113.5" {
		t.Errorf("X-Forwarded-For = %q", got)
	}
}
