package redisstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

// creates new client connected to miniredis for testing
func newMini(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	rc, err := New(ctx, mr.Addr())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestGetSetDel(t *testing.T) {
	rc, _ := newMini(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := rc.Set(ctx, "k1", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b, ok, err := rc.Get(ctx, "k1")
	if err != nil || !ok || string(b) != "v1" {
		t.Fatalf("Get: b=%q ok=%v err=%v", b, ok, err)
	}

	_, ok, err = rc.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if ok {
		t.Fatal("missing key reported present")
	}

	if err := rc.Del(ctx, "k1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	_, ok, _ = rc.Get(ctx, "k1")
	if ok {
		t.Fatal("key present after Del")
	}
}

func TestSet_TTLApplied(t *testing.T) {
	rc, mr := newMini(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := rc.Set(ctx, "k", []byte("v"), 30*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := mr.TTL("k"); ttl <= 0 || ttl > 30*time.Second {
		t.Fatalf("ttl=%v", ttl)
	}

	mr.FastForward(31 * time.Second)
	_, ok, err := rc.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("key survived its ttl")
	}
}

func TestDelPrefix(t *testing.T) {
	rc, _ := newMini(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for _, k := range []string{"features:a", "features:b", "features:c", "elev:x"} {
		if err := rc.Set(ctx, k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	n, err := rc.DelPrefix(ctx, "features:")
	if err != nil {
		t.Fatalf("DelPrefix: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted=%d want 3", n)
	}

	_, ok, _ := rc.Get(ctx, "elev:x")
	if !ok {
		t.Fatal("unrelated key was deleted")
	}
	_, ok, _ = rc.Get(ctx, "features:a")
	if ok {
		t.Fatal("prefixed key survived")
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
