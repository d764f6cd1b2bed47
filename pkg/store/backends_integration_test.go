//go:build integration

package store

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"
)

// Run with: go test -tags integration ./pkg/store/...
// Set ELEMENTMERGE_REDIS_ADDR and ELEMENTMERGE_MONGO_URI to point at live
// servers; backends without a setting are skipped.

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := "it-" + time.Now().Format("150405.000000")
	defer s.Delete(ctx, name)

	if _, ok, err := s.Get(ctx, name); err != nil || ok {
		t.Fatalf("Get before Put = %v, %v", ok, err)
	}
	if err := s.Put(ctx, name, []byte(`{"name":"it"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok, err := s.Get(ctx, name)
	if err != nil || !ok || string(data) != `{"name":"it"}` {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !slices.Contains(names, name) {
		t.Errorf("List() missing %s", name)
	}
	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, name); ok {
		t.Error("document still present after Delete")
	}
}

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("ELEMENTMERGE_REDIS_ADDR")
	if addr == "" {
		t.Skip("ELEMENTMERGE_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("ELEMENTMERGE_MONGO_URI")
	if uri == "" {
		t.Skip("ELEMENTMERGE_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), MongoOptions{URI: uri, Database: "elementmerge_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}
