package store

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/rushteam/outfit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) error = %v, want not found", err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	// 返回值是拷贝，修改不影响存储内容
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(after delete) error = %v, want not found", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Set(ctx, "short", []byte("1"), 1)
	s.mu.Lock()
	e := s.data["short"]
	e.expireAt = time.Now().Add(-time.Second)
	s.data["short"] = e
	s.mu.Unlock()

	if _, err := s.Get(ctx, "short"); !core.IsStoreNotFound(err) {
		t.Errorf("expired key error = %v, want not found", err)
	}
}

func TestMemoryStore_BatchGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))

	got, err := s.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

// TestRedisStore 需要 OUTFIT_TEST_REDIS_ADDR 指向可用的 Redis
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("OUTFIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("需要连接真实的 Redis 服务器才能运行")
	}

	ctx := context.Background()
	s, err := NewRedisStore(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer s.Close()

	key := "outfit:test:" + strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := s.Set(ctx, key, []byte("v"), 10); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, err)
	}
	_ = s.Delete(ctx, key)
	if _, err := s.Get(ctx, key); !core.IsStoreNotFound(err) {
		t.Errorf("Get(after delete) error = %v, want not found", err)
	}
}
