package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenTTL = 2 * time.Hour

// RedisResetTokenStore keeps password-reset tokens in Redis with a TTL.
type RedisResetTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisResetTokenStore creates a reset-token store with an existing Redis client
func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{
		client:    client,
		keyPrefix: "password:reset:",
	}
}

// Store saves the token mapped to the customer for the reset TTL
func (s *RedisResetTokenStore) Store(ctx context.Context, token string, customerID uuid.UUID) error {
	key := s.keyPrefix + token
	if err := s.client.Set(ctx, key, customerID.String(), resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

// Consume resolves and invalidates a token, returning the customer it was
// issued for. An unknown or expired token returns redis.Nil.
func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	key := s.keyPrefix + token
	value, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(value)
}

// InMemoryResetTokenStore provides an in-memory implementation for tests and
// single-instance deployments without Redis.
type InMemoryResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
}

type resetEntry struct {
	customerID uuid.UUID
	expiresAt  time.Time
}

// NewInMemoryResetTokenStore creates a new in-memory reset-token store
func NewInMemoryResetTokenStore() *InMemoryResetTokenStore {
	return &InMemoryResetTokenStore{tokens: make(map[string]resetEntry)}
}

// Store saves the token mapped to the customer for the reset TTL
func (s *InMemoryResetTokenStore) Store(_ context.Context, token string, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetEntry{
		customerID: customerID,
		expiresAt:  time.Now().Add(resetTokenTTL),
	}
	return nil
}

// Consume resolves and invalidates a token
func (s *InMemoryResetTokenStore) Consume(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.tokens[token]
	if !exists {
		return uuid.Nil, redis.Nil
	}
	delete(s.tokens, token)
	if time.Now().After(entry.expiresAt) {
		return uuid.Nil, redis.Nil
	}
	return entry.customerID, nil
}
