package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

type memStore struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
	now     func() time.Time
	failing bool
}

func newMemStore() *memStore {
	return &memStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", errors.New("store down")
	}
	if exp, ok := s.expires[key]; ok && s.now().After(exp) {
		delete(s.values, key)
		delete(s.expires, key)
	}
	return s.values[key], nil
}

func (s *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store down")
	}
	s.values[key] = value
	s.expires[key] = s.now().Add(ttl)
	return nil
}

func (s *memStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store down")
	}
	delete(s.values, key)
	return nil
}

func (s *memStore) DelPattern(_ context.Context, pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, errors.New("store down")
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var deleted int64
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, errors.New("store down")
	}
	if exp, ok := s.expires[key]; ok && s.now().After(exp) {
		delete(s.values, key)
		delete(s.expires, key)
	}
	count := int64(1)
	if raw, ok := s.values[key]; ok {
		prev, _ := strconv.ParseInt(raw, 10, 64)
		count = prev + 1
	}
	s.values[key] = strconv.FormatInt(count, 10)
	s.expires[key] = s.now().Add(ttl)
	return count, nil
}

func TestCacheRoundTrip(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := payload{Name: "paracetamol", Count: 3}
	if ok := c.Set(ctx, "k1", in, 0); !ok {
		t.Fatal("set failed")
	}

	var out payload
	if ok := c.Get(ctx, "k1", &out); !ok {
		t.Fatal("expected cache hit")
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v want %+v", out, in)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	store := newMemStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	c := New(store, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Second)

	var out string
	if ok := c.Get(ctx, "k", &out); !ok {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(11 * time.Second)
	if ok := c.Get(ctx, "k", &out); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestBuildKeyDeterministic(t *testing.T) {
	k1 := BuildKey("top_products", 10, "week", "chemed")
	k2 := BuildKey("top_products", 10, "week", "chemed")
	if k1 != k2 {
		t.Error("identical args must produce identical keys")
	}

	k3 := BuildKey("top_products", 10, "month", "chemed")
	if k1 == k3 {
		t.Error("different args must produce different keys")
	}
}

func TestBuildKeyFieldsOrderIndependent(t *testing.T) {
	a := BuildKeyFields("activity", map[string]any{"channel": "chemed", "granularity": "daily", "days": 30})
	b := BuildKeyFields("activity", map[string]any{"days": 30, "granularity": "daily", "channel": "chemed"})
	if a != b {
		t.Error("field order must not affect the key")
	}
}

func TestCacheDegradedMode(t *testing.T) {
	ctx := context.Background()

	var nilCache *Cache
	var out string
	if nilCache.Get(ctx, "k", &out) {
		t.Error("nil cache must report miss")
	}
	if nilCache.Set(ctx, "k", "v", time.Minute) {
		t.Error("nil cache must report set failure")
	}

	store := newMemStore()
	store.failing = true
	c := New(store, time.Minute)

	if c.Get(ctx, "k", &out) {
		t.Error("failing backend must look like a miss")
	}
	if c.Set(ctx, "k", "v", time.Minute) {
		t.Error("failing backend must report set failure without panicking")
	}
	if n := c.ClearPattern(ctx, "query:*"); n != 0 {
		t.Errorf("failing backend must report 0 cleared, got %d", n)
	}
}

func TestRememberSkipsFnOnHit(t *testing.T) {
	c := New(newMemStore(), time.Minute)
	ctx := context.Background()

	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := Remember(ctx, c, "memo", time.Minute, fn)
	if err != nil || v != 42 {
		t.Fatalf("first call: got %d, %v", v, err)
	}

	v, err = Remember(ctx, c, "memo", time.Minute, fn)
	if err != nil || v != 42 {
		t.Fatalf("second call: got %d, %v", v, err)
	}
	if calls != 1 {
		t.Errorf("fn executed %d times, want 1 (hit must skip execution)", calls)
	}
}
