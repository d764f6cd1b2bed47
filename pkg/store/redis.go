package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces model keys.
const RedisKeyPrefix = "elementmerge:model:"

// RedisOptions configures a [RedisStore].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each model document under RedisKeyPrefix + name.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and checks the connection with a ping.
// A failed ping is [Retryable].
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, Retryable(fmt.Errorf("connect to redis at %s: %w", opts.Addr, err))
	}
	return &RedisStore{client: rdb}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get reads a document.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := validKey(name); err != nil {
		return nil, false, err
	}
	data, err := s.client.Get(ctx, RedisKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes a document without expiry.
func (s *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := validKey(name); err != nil {
		return err
	}
	return s.client.Set(ctx, RedisKeyPrefix+name, data, 0).Err()
}

// Delete removes a document.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := validKey(name); err != nil {
		return err
	}
	return s.client.Del(ctx, RedisKeyPrefix+name).Err()
}

// List scans for model keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, RedisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), RedisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
