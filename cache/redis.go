package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/readlai"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the snapshot document when no key is configured.
const DefaultRedisKey = "readlai:translation_cache"

// RedisStore keeps the snapshot JSON document under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL string // Redis connection URL (e.g., "redis://localhost:6379/0")
	Key string // Key holding the snapshot (default: DefaultRedisKey)
}

// NewRedisStore creates a new Redis store with the given configuration.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &readlai.ConfigurationError{Message: "invalid redis URL", Cause: err}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &readlai.PersistenceError{Op: "connect", Path: cfg.URL, Cause: err}
	}

	return NewRedisStoreFromClient(client, cfg.Key), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing Redis client.
func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisStore{
		client: client,
		key:    key,
	}
}

// Load reads the snapshot. A missing key yields an empty snapshot.
func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return readlai.NewSnapshot(), nil
	}
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.key, Cause: err}
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, &readlai.PersistenceError{Op: "load", Path: s.key, Cause: err}
	}
	return snap, nil
}

// Save overwrites the key with the full snapshot. Entries never expire.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return &readlai.PersistenceError{Op: "save", Path: s.key, Cause: err}
	}
	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return &readlai.PersistenceError{Op: "save", Path: s.key, Cause: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements Store
var _ Store = (*RedisStore)(nil)
