package datalake

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	path, err := store.WriteJSON(ctx, date, "pharma_a", "messages.json", []byte(`[{"id":1}]`))
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(path, "2026-08-20/pharma_a") {
		t.Fatalf("unexpected partition path %s", path)
	}

	got, err := store.ReadJSON(ctx, path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestLocalStoreListJSON(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	if _, err = store.WriteJSON(ctx, date, "pharma_a", "a.json", []byte("[]")); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if _, err = store.WriteJSON(ctx, date, "pharma_b", "b.json", []byte("[]")); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if _, err = store.WriteImage(ctx, date, "pharma_a", "img.jpg", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	paths, err := store.ListJSON(ctx, date)
	if err != nil {
		t.Fatalf("ListJSON: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 json objects, got %v", paths)
	}

	// 空分区不视为错误
	empty, err := store.ListJSON(ctx, date.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ListJSON empty partition: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty, got %v", empty)
	}
}
