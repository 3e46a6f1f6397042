package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/shared"
)

// cartEntry holds a stored cart with its expiration
type cartEntry struct {
	cart      cart.Cart
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Repository using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	entries   map[string]cartEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a new in-memory cart store.
// It starts a background goroutine to clean up expired carts.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	store := &InMemoryCartStore{
		entries:  make(map[string]cartEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// FindByOwner returns the cart for an owner
func (s *InMemoryCartStore) FindByOwner(ctx context.Context, ownerID string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[ownerID]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, shared.ErrNotFound
	}

	c := cloneCart(&e.cart)
	return c, nil
}

// Save creates or replaces the owner's cart and refreshes its TTL
func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[c.OwnerID] = cartEntry{
		cart:      *cloneCart(c),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the owner's cart; deleting a missing cart is a no-op
func (s *InMemoryCartStore) Delete(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, ownerID)
	return nil
}

// Close stops the cleanup goroutine
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired carts
func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopChan:
			return
		}
	}
}

// removeExpired removes all expired entries
func (s *InMemoryCartStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for owner, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, owner)
		}
	}
}

// cloneCart deep-copies a cart so callers never share line slices with the store
func cloneCart(c *cart.Cart) *cart.Cart {
	copied := *c
	copied.Lines = make([]cart.Line, len(c.Lines))
	copy(copied.Lines, c.Lines)
	return &copied
}

// Ensure InMemoryCartStore implements cart.Repository
var _ cart.Repository = (*InMemoryCartStore)(nil)
