package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
)

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Put(ctx context.Context, token string, id auth.Identity, ttl time.Duration) error {
	if token == "" || id.ID == "" {
		return fmt.Errorf("session: missing token or user id")
	}
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	if err := r.client.Set(ctx, Key(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("session: set: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (auth.Identity, bool, error) {
	val, err := r.client.Get(ctx, Key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, fmt.Errorf("session: get: %w", err)
	}

	var id auth.Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return auth.Identity{}, false, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return id, true, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, Key(token)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}
