package cache

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"radagast/internal/auth"
	"radagast/internal/domain"
)

// Store is the minimal surface the coordinator needs from the cache backend.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore adapts a redis client to the Store interface.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	keys, err := s.client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

const (
	foodsPrefix      = "cache:GET:/foods"
	categoriesPrefix = "cache:GET:/categories"
	ordersPrefix     = "cache:GET:/orders"
)

// Cache is the read-through cache and invalidation coordinator. A nil store
// disables caching entirely: reads go straight to the source of truth and
// invalidation becomes a no-op, with no effect on correctness. Every backend
// failure is absorbed and logged, never surfaced to the request.
type Cache struct {
	store   Store
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

func New(store Store, ttl, timeout time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		store:   store,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// Key builds the cache key for a request. Responses are role/location
// projected, so the viewer is part of the key: the same path must never serve
// one actor's projection to another.
func Key(r *http.Request, actor domain.Actor) string {
	return fmt.Sprintf("cache:%s:%s|%s|%s", r.Method, r.URL.RequestURI(), actor.Role, actor.Location)
}

type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// Middleware serves GET requests from the cache and stores successful
// responses on miss. Non-GET requests pass through untouched.
func (c *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.store == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := Key(r, auth.ActorFrom(r.Context()))

		ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
		cached, hit, err := c.store.Get(ctx, key)
		cancel()
		if err != nil {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}

		cw := &captureWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)

		if cw.status != http.StatusOK {
			return
		}

		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.store.Set(ctx, key, cw.body.String(), c.ttl); err != nil {
			c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	})
}

// InvalidateFoods drops every cached catalog read, list and per-category
// alike.
func (c *Cache) InvalidateFoods(ctx context.Context) {
	c.invalidate(ctx, foodsPrefix)
}

// InvalidateCategories also drops food reads: a category rename cascades into
// food payloads.
func (c *Cache) InvalidateCategories(ctx context.Context) {
	c.invalidate(ctx, categoriesPrefix)
	c.invalidate(ctx, foodsPrefix)
}

func (c *Cache) InvalidateOrders(ctx context.Context) {
	c.invalidate(ctx, ordersPrefix)
}

func (c *Cache) invalidate(ctx context.Context, prefix string) {
	if c.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	if err := c.store.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
