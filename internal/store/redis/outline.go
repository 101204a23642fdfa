package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hollowdust/pavilion/internal/domain"
)

const (
	// DefaultOutlineTTL is the TTL for mirrored outlines (48 hours).
	// Long enough to warm a restart, short enough that a dead content
	// source eventually ages out.
	DefaultOutlineTTL = 48 * time.Hour
	// DefaultArticleTTL is the TTL for cached rendered articles (24 hours)
	DefaultArticleTTL = 24 * time.Hour
)

// Store mirrors the memory index into Redis: parsed outlines, rendered
// article HTML and view counters. Every write here is best effort; the
// memory index stays authoritative when Redis is down.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SaveOutline stores a collection's outline as JSON.
func (s *Store) SaveOutline(ctx context.Context, out *domain.Outline) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal outline: %w", err)
	}

	key := OutlineKey(string(out.Kind))
	if err := s.client.Set(ctx, key, data, DefaultOutlineTTL).Err(); err != nil {
		return fmt.Errorf("failed to save outline: %w", err)
	}

	return nil
}

// GetOutline retrieves a collection's outline. A missing key is not an
// error; it returns (nil, nil).
func (s *Store) GetOutline(ctx context.Context, kind domain.Kind) (*domain.Outline, error) {
	data, err := s.client.Get(ctx, OutlineKey(string(kind))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outline: %w", err)
	}

	var out domain.Outline
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outline: %w", err)
	}

	return &out, nil
}

// SaveOutlinesMany stores multiple outlines in one pipeline round trip.
func (s *Store) SaveOutlinesMany(ctx context.Context, outs []*domain.Outline) error {
	pipe := s.client.Pipeline()

	for _, out := range outs {
		data, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal %s outline: %w", out.Kind, err)
		}
		pipe.Set(ctx, OutlineKey(string(out.Kind)), data, DefaultOutlineTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save outlines: %w", err)
	}

	return nil
}

// IncrementViews bumps the durable view counter for an entry.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	if err := s.client.HIncrBy(ctx, ViewsKey(), id, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// GetAllViews retrieves every persisted view counter.
func (s *Store) GetAllViews(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, ViewsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get view counters: %w", err)
	}

	views := make(map[string]int64, len(raw))
	for id, v := range raw {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			views[id] = n
		}
	}
	return views, nil
}
