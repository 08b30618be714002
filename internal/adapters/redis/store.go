// Package redis provides a Redis-backed SaveStore for shared or long-lived
// save slots.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/nous/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SaveStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for save slots.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for save slots.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "nous:save:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(slot string) string {
	return s.prefix + slot
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the payload to Redis.
func (s *Store) Save(ctx context.Context, slot string, data []byte) error {
	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(slot), data, s.ttl)

	// Index score = expiry time. Slots without TTL sort far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: slot,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the payload from Redis.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	return val, nil
}

// Delete removes the slot.
func (s *Store) Delete(ctx context.Context, slot string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(slot))
	pipe.ZRem(ctx, s.indexKey(), slot)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns existing slots, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired slots: %w", err)
	}

	slots, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	return slots, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
