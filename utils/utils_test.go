package utils

import (
	"context"
	"testing"
	"time"
)

func TestQueryCacheKeyDeterministic(t *testing.T) {
	a := QueryCacheKey("search", map[string]string{"query": "Kota", "minPrice": "1000"})
	b := QueryCacheKey("search", map[string]string{"minPrice": "1000", "query": "Kota"})
	if a != b {
		t.Fatalf("cache key must not depend on map order: %q vs %q", a, b)
	}

	c := QueryCacheKey("search", map[string]string{"query": "Pune", "minPrice": "1000"})
	if a == c {
		t.Fatal("different parameters must hash to different keys")
	}
}

func TestQueryCacheKeyPrefix(t *testing.T) {
	key := QueryCacheKey("search", map[string]string{"query": "Kota"})
	if len(key) <= len("search:") || key[:7] != "search:" {
		t.Fatalf("key should carry its prefix: %q", key)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password must not be stored in clear")
	}
	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong-pass"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest string
	hit, err := c.Get(ctx, "k", &dest)
	if hit || err != nil {
		t.Fatalf("nil cache Get: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", "v", time.Second); err != nil {
		t.Fatalf("nil cache Set: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache Close: %v", err)
	}
}
