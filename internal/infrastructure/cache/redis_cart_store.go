package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// RedisCartStore implements cart.Repository on Redis. Carts are ephemeral
// working state, not bookkeeping, so a TTL-refreshed JSON value per owner
// is all the durability they need: an abandoned cart simply expires.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store with its own Redis client
func NewRedisCartStore(cfg *config.RedisConfig) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       cfg.CartTTL,
	}, nil
}

// NewRedisCartStoreWithClient creates a store over an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       ttl,
	}
}

// FindByOwner returns the cart for an owner
func (s *RedisCartStore) FindByOwner(ctx context.Context, ownerID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+ownerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// Save creates or replaces the owner's cart. Every save refreshes the TTL,
// so a cart only expires after the owner goes quiet.
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+c.OwnerID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Delete removes the owner's cart; deleting a missing cart is a no-op
func (s *RedisCartStore) Delete(ctx context.Context, ownerID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+ownerID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Repository
var _ cart.Repository = (*RedisCartStore)(nil)
