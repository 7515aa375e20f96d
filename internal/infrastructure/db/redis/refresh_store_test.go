package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Runs against a live server; set REDIS_TEST_ADDR (e.g. localhost:6379) to enable.
func TestRefreshStore_ConsumeOnce(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	store := NewRefreshStore(client)
	id := uuid.NewString()

	if err := store.Save(ctx, id, 7, time.Minute); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	ok, err := store.Consume(ctx, id)
	if err != nil || !ok {
		t.Fatalf("expected first consume to succeed, got ok=%v err=%v", ok, err)
	}
	ok, err = store.Consume(ctx, id)
	if err != nil || ok {
		t.Fatalf("expected second consume to fail, got ok=%v err=%v", ok, err)
	}
}

func TestRefreshStore_Key(t *testing.T) {
	s := NewRefreshStore(nil)
	if got := s.key("abc"); got != "refresh_token:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestConnect_EmptyAddr(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}
