// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint of each SCAN round trip and the size of each DEL.
const scanBatch = 100

// RedisStore keeps entries in Redis under a common key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a [RedisStore]. The prefix must not contain glob metacharacters.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (store *RedisStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	entry := &Entry{}
	if err := json.Unmarshal(raw, entry); err != nil {
		// A corrupt entry is a miss; the next write replaces it.
		return nil, false, nil
	}
	return entry, true, nil
}

func (store *RedisStore) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	if err := store.client.Set(ctx, store.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (store *RedisStore) Delete(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = store.prefix + key
	}

	deleted, err := store.client.Del(ctx, prefixed...).Result()
	if err != nil {
		return 0, fmt.Errorf("cache: delete: %w", err)
	}
	return int(deleted), nil
}

// DeleteMatching walks the keyspace with SCAN and deletes matches in batches.
func (store *RedisStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	iterator := store.client.Scan(ctx, 0, store.prefix+pattern, scanBatch).Iterator()

	var (
		batch   = make([]string, 0, scanBatch)
		deleted int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := store.client.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("cache: delete %s: %w", pattern, err)
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	for iterator.Next(ctx) {
		batch = append(batch, iterator.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iterator.Err(); err != nil {
		return deleted, fmt.Errorf("cache: scan %s: %w", pattern, err)
	}

	return deleted, flush()
}
