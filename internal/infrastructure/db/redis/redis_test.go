package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestConnectAndHealthCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	mr.RequireAuth("s3cret")

	if _, err = Connect(context.Background(), Config{Addr: mr.Addr(), Password: "wrong"}); err == nil {
		t.Fatalf("expected connect to fail with a wrong password")
	}

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "s3cret"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	check := HealthCheck(client)
	if err := check(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	mr.Close()
	if err := check(context.Background()); err == nil {
		t.Fatalf("expected unhealthy after server shutdown")
	}
}
