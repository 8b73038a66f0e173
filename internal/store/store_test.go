package store

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set(ctx, "session:current", `{"username":"alice"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := s.Get(ctx, "session:current")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `{"username":"alice"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := s.Set(ctx, "session:current", `{"username":"bob"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, err = s.Get(ctx, "session:current")
	if err != nil || value != `{"username":"bob"}` {
		t.Fatalf("expected overwritten value, got %q err=%v", value, err)
	}

	if err := s.Delete(ctx, "session:current"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "session:current"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testRoundTrip(t, NewMemory())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testRoundTrip(t, NewRedis(client))
}

func TestRedisStoreNamespacesKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedis(client)
	if err := s.Set(context.Background(), "users:seen", `["alice"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := mr.Get(keyPrefix + "users:seen"); err != nil {
		t.Fatalf("expected namespaced key in redis: %v", err)
	}
}
