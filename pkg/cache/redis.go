package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// RedisStore keeps entries in Redis under a common key prefix.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore connects to the Redis server at url and checks it responds.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreFromClient(client, ttl, prefix), nil
}

// NewRedisStoreFromClient creates a store on an existing client.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// Get returns the value stored under key.
func (store *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, store.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key with the store's TTL.
func (store *RedisStore) Set(ctx context.Context, key, value string) error {
	return store.client.Set(ctx, store.prefix+key, value, store.ttl).Err()
}

// Close closes the Redis connection.
func (store *RedisStore) Close() error {
	return store.client.Close()
}

var _ Store = (*RedisStore)(nil)
