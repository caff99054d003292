package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotencyStore_ReserveCompleteReplay(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	id, reserved, err := store.Reserve(ctx, "booking", "abc")
	if err != nil || !reserved || id != "" {
		t.Fatalf("first reserve: id=%q reserved=%v err=%v", id, reserved, err)
	}

	// Second request while the first is in flight.
	id, reserved, err = store.Reserve(ctx, "booking", "abc")
	if err != nil || reserved || id != "" {
		t.Fatalf("in-flight reserve: id=%q reserved=%v err=%v", id, reserved, err)
	}

	if err := store.Complete(ctx, "booking", "abc", "665f1c"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	id, reserved, err = store.Reserve(ctx, "booking", "abc")
	if err != nil || reserved || id != "665f1c" {
		t.Fatalf("replay reserve: id=%q reserved=%v err=%v", id, reserved, err)
	}

	// Scopes do not collide.
	if _, reserved, _ := store.Reserve(ctx, "contact", "abc"); !reserved {
		t.Fatalf("contact scope must be independent of booking scope")
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	store.Reserve(ctx, "contact", "k")
	if err := store.Release(ctx, "contact", "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, reserved, _ := store.Reserve(ctx, "contact", "k"); !reserved {
		t.Fatalf("released key must be reservable again")
	}
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	store.Reserve(ctx, "booking", "k")
	store.Complete(ctx, "booking", "k", "id1")
	if ttl := mr.TTL("idem:booking:k"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, reserved, _ := store.Reserve(ctx, "booking", "k"); !reserved {
		t.Fatalf("expired key must be reservable again")
	}
}

func TestIdempotencyStore_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewIdempotencyStore(client, time.Minute)
	mr.Close()

	if _, _, err := store.Reserve(context.Background(), "booking", "k"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
