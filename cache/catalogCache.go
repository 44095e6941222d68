// Package cache keeps read-mostly catalog data in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the requested key is not cached
var ErrCacheMiss = errors.New("cache: key not found")

const prefixCourses = "learning:courses:"

// CatalogCache is a JSON read-through cache. A nil *CatalogCache is valid and
// always misses, so callers need no branching when redis is not configured.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to url (redis://...). An empty url disables caching.
func NewCatalogCache(ctx context.Context, url string, ttl time.Duration) (*CatalogCache, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Printf("[CACHE] Connected to redis at %s", opts.Addr)
	return &CatalogCache{client: client, ttl: ttl}, nil
}

// CoursesKey namespaces the course list of one route
func CoursesKey(routeType string) string {
	return prefixCourses + routeType
}

// Get decodes the cached value at key into dest
func (c *CatalogCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return ErrCacheMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *CatalogCache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// InvalidateCourses drops the cached course lists of every route
func (c *CatalogCache) InvalidateCourses(ctx context.Context, routeTypes ...string) error {
	if c == nil || len(routeTypes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(routeTypes))
	for _, r := range routeTypes {
		keys = append(keys, CoursesKey(r))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CatalogCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
