package registry

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGetDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	if err := cache.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Fatalf("expected v, got %v", got)
	}

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := cache.Get(ctx, "k"); got != nil {
		t.Fatalf("expected miss after delete, got %v", got)
	}
}

func TestMemoryCacheExpiresLazily(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := cache.Get(ctx, "k"); got != "v" {
		t.Fatalf("expected hit before expiry, got %v", got)
	}

	now = now.Add(2 * time.Minute)
	if got, _ := cache.Get(ctx, "k"); got != nil {
		t.Fatalf("expected expiry, got %v", got)
	}
	// The expired entry must be dropped, not just hidden.
	if len(cache.entries) != 0 {
		t.Fatalf("expected expired entry removed, have %d", len(cache.entries))
	}
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, key, key, 0); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if got, _ := cache.Get(ctx, key); got != nil {
			t.Fatalf("expected %s cleared, got %v", key, got)
		}
	}
}
