package cache

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scanCount     = 100
	generationKey = keyPrefix + "generation"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// New returns a Redis backed cache, or an in-process one when client is nil.
func New(client *redis.Client, ttl time.Duration) PropertyCache {
	if client == nil {
		return NewMemory(ttl)
	}
	return NewRedisCache(client, ttl)
}

func entryKey(key string, gen int64) string {
	return key + ":" + strconv.FormatInt(gen, 10)
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		log.Printf("Redis GET error for %s: %v", generationKey, err)
		return nil, -1, false
	}
	data, err := c.client.Get(ctx, entryKey(key, gen)).Bytes()
	if err == nil {
		log.Printf("Cache Hit for key: %s", key)
		return data, gen, true
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("Redis GET error for key %s: %v", key, err)
	}
	return nil, gen, false
}

func (c *RedisCache) Set(ctx context.Context, key string, gen int64, value []byte) {
	if gen < 0 {
		return
	}
	current, err := c.generation(ctx)
	if err != nil {
		log.Printf("Redis GET error for %s: %v", generationKey, err)
		return
	}
	// Entries written under an older generation are unreachable anyway.
	if current != gen {
		log.Printf("Skipping stale cache write for key %s", key)
		return
	}
	if err := c.client.Set(ctx, entryKey(key, gen), value, c.ttl).Err(); err != nil {
		log.Printf("Redis SET error for key %s: %v", key, err)
	}
}

// Invalidate bumps the generation and drops every cached property list.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		log.Printf("Redis INCR error for %s: %v", generationKey, err)
	}

	const scanPattern = keyPrefix + "*"

	var keysToDelete []string
	var cursor uint64
	for {
		var currentKeys []string
		var err error
		currentKeys, cursor, err = c.client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		for _, key := range currentKeys {
			if key != generationKey {
				keysToDelete = append(keysToDelete, key)
			}
		}
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error executing Redis pipeline for cache deletion: %v", err)
		return
	}
	log.Printf("Invalidated %d property cache keys", len(keysToDelete))
}
