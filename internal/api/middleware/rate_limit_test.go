package middleware

import (
	"MedWarehouse/internal/pkg/cache"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type memStore struct {
	mu       sync.Mutex
	counters map[string]int64
	failing  bool
}

func newMemStore() *memStore {
	return &memStore{counters: make(map[string]int64)}
}

func (m *memStore) Get(_ context.Context, _ string) (string, error) { return "", nil }
func (m *memStore) Set(_ context.Context, _, _ string, _ time.Duration) error {
	return nil
}
func (m *memStore) Del(_ context.Context, _ string) error                 { return nil }
func (m *memStore) DelPattern(_ context.Context, _ string) (int64, error) { return 0, nil }

func (m *memStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return 0, errors.New("store down")
	}
	m.counters[key]++
	return m.counters[key], nil
}

func newLimitedRouter(rl *rateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.handle)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/api/analytics/dashboard", ok)
	r.GET("/api/ping", ok)
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "203.0.113.9:4711"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := &rateLimiter{
		cache:  cache.New(newMemStore(), time.Minute),
		limit:  3,
		window: 60 * time.Second,
		now:    func() time.Time { return now },
	}
	r := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := doGet(r, "/api/analytics/dashboard")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := doGet(r, "/api/analytics/dashboard")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on request over limit, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("X-RateLimit-Limit") != "3" {
		t.Fatalf("unexpected limit header %q", w.Header().Get("X-RateLimit-Limit"))
	}

	// 下一个窗口重新计数
	now = now.Add(61 * time.Second)
	w = doGet(r, "/api/analytics/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 in next window, got %d", w.Code)
	}
}

func TestRateLimitExemptPaths(t *testing.T) {
	rl := &rateLimiter{
		cache:  cache.New(newMemStore(), time.Minute),
		limit:  1,
		window: 60 * time.Second,
		now:    time.Now,
	}
	r := newLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		if w := doGet(r, "/api/ping"); w.Code != http.StatusOK {
			t.Fatalf("ping must never be limited, got %d", w.Code)
		}
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	store := newMemStore()
	store.failing = true
	rl := &rateLimiter{
		cache:  cache.New(store, time.Minute),
		limit:  1,
		window: 60 * time.Second,
		now:    time.Now,
	}
	r := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		if w := doGet(r, "/api/analytics/dashboard"); w.Code != http.StatusOK {
			t.Fatalf("expected fail-open 200, got %d", w.Code)
		}
	}
}
