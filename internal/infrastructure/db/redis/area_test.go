package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestArea(t *testing.T, prefix string) (*Area, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewArea(client, prefix), mr
}

func TestArea_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	a, mr := newTestArea(t, "")

	if _, ok, err := a.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("expected missing key, got %v %v", ok, err)
	}

	if err := a.SetAll(ctx, map[string]string{"token": "t", "user": `{"role":"admin"}`}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	if got, _ := mr.Get("admin_console:token"); got != "t" {
		t.Fatalf("expected prefixed key, got %q", got)
	}
	v, ok, err := a.Get(ctx, "user")
	if err != nil || !ok || v != `{"role":"admin"}` {
		t.Fatalf("unexpected Get result %q %v %v", v, ok, err)
	}

	if err := a.Delete(ctx, "token", "user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("admin_console:token") || mr.Exists("admin_console:user") {
		t.Fatalf("expected both keys removed")
	}
}

func TestArea_CustomPrefixAndPing(t *testing.T) {
	ctx := context.Background()
	a, mr := newTestArea(t, "tenant_a")

	_ = a.SetAll(ctx, map[string]string{"token": "t"})
	if !mr.Exists("tenant_a:token") {
		t.Fatalf("expected custom prefix")
	}
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	mr.Close()
	if err := a.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail once the server is gone")
	}
	if _, _, err := a.Get(ctx, "token"); err == nil {
		t.Fatalf("expected Get to report the connection error")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr}); err == nil {
		t.Fatalf("expected Connect to fail against a closed server")
	}
}
