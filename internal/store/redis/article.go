package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hollowdust/pavilion/internal/domain"
)

// SaveArticle caches a rendered article with TTL and tracks its ID in the
// set of cached articles.
func (s *Store) SaveArticle(ctx context.Context, a *domain.RenderedArticle) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal rendered article: %w", err)
	}

	if err := s.client.Set(ctx, ArticleKey(a.ID), data, DefaultArticleTTL).Err(); err != nil {
		return fmt.Errorf("failed to save rendered article: %w", err)
	}
	if err := s.client.SAdd(ctx, AllArticlesKey(), a.ID).Err(); err != nil {
		return fmt.Errorf("failed to track rendered article: %w", err)
	}

	return nil
}

// GetArticle retrieves a cached rendered article. A cache miss returns
// (nil, nil).
func (s *Store) GetArticle(ctx context.Context, id string) (*domain.RenderedArticle, error) {
	data, err := s.client.Get(ctx, ArticleKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rendered article: %w", err)
	}

	var a domain.RenderedArticle
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rendered article: %w", err)
	}

	return &a, nil
}

// DeleteArticle removes a rendered article from the cache.
func (s *Store) DeleteArticle(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, ArticleKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete rendered article: %w", err)
	}
	if err := s.client.SRem(ctx, AllArticlesKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to untrack rendered article: %w", err)
	}
	return nil
}

// CachedArticleIDs returns the IDs in the cached-articles set. Entries
// whose value key has expired may still appear here until the janitor
// prunes them.
func (s *Store) CachedArticleIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllArticlesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cached article IDs: %w", err)
	}
	return ids, nil
}

// FlushArticles removes every cached rendered article.
func (s *Store) FlushArticles(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixArticle+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete article key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush articles: %w", err)
	}
	if err := s.client.Del(ctx, AllArticlesKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear article set: %w", err)
	}
	return nil
}
