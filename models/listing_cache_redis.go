package models

import (
	"context"
	"errors"
	"time"

	"goflix/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

const redisKeyPrefix = "goflix:listing:"

// RedisCacheConfig holds Redis connection settings.
type RedisCacheConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache shares listings between several server instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects and pings Redis; a failed ping is returned so the
// server refuses to start with a cache it cannot reach.
func NewRedisCache(cfg RedisCacheConfig, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, serr.Wrap(err, "redis connection failed")
	}

	logger.Info("Connected to Redis listing cache", "addr", cfg.Addr, "db", cfg.DB)
	return newRedisCacheWithClient(client, ttl), nil
}

func newRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, endpoint string) (*Listing, bool) {
	b, err := c.client.Get(ctx, redisKeyPrefix+endpoint).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.LogErr(serr.Wrap(err, "redis get failed"), "endpoint", endpoint)
		}
		metrics.ObserveCache(CacheRedis, false)
		return nil, false
	}

	listing, err := decodeListing(b)
	if err != nil {
		logger.LogErr(err, "dropping undecodable cache entry", "endpoint", endpoint)
		metrics.ObserveCache(CacheRedis, false)
		return nil, false
	}

	metrics.ObserveCache(CacheRedis, true)
	return listing, true
}

func (c *RedisCache) Set(ctx context.Context, endpoint string, listing *Listing) {
	b, err := encodeListing(listing)
	if err != nil {
		logger.LogErr(err, "listing not cached", "endpoint", endpoint)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+endpoint, b, c.ttl).Err(); err != nil {
		logger.LogErr(serr.Wrap(err, "redis set failed"), "endpoint", endpoint)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
