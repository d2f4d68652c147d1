package cache

import (
	"context"
	"testing"
	"time"

	"github.com/hamedsh/agentchat/config"
)

func TestInMemorySetGet(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	got, ok := c.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestInMemoryExpiry(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestInMemoryOverwrite(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()

	_ = c.Set(ctx, "k", "old", time.Minute)
	_ = c.Set(ctx, "k", "new", time.Minute)
	got, _ := c.Get(ctx, "k")
	if got != "new" {
		t.Fatalf("got %q", got)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(config.CacheConfig{Backend: "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*InMemory); !ok {
		t.Fatalf("expected in-memory store, got %T", store)
	}

	if _, err := New(config.CacheConfig{Backend: "bogus"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
