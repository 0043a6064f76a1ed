// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache keeps rendered API responses so repeated page builds do not reach
the CMS.

Entries are keyed by request path and query and expire after a TTL. The
revalidation webhook evicts them early through [Invalidate]:

	/api/v1/ja/posts      evicts the exact path and every query variant of it
	/api/v1/ja/books/*    evicts the path and everything below it
*/
package cache

import (
	"context"
	"strings"
	"time"
)

// Entry is one cached response.
type Entry struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store persists entries by key. Patterns follow Redis glob syntax.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) (int, error)
	DeleteMatching(ctx context.Context, pattern string) (int, error)
}

// Key returns the cache key of a path and raw query.
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

/*
Invalidate evicts the cached responses of paths.

A path ending in "/*" evicts a whole subtree. Any other path evicts the exact
key and its query variants.

Returns:
  - int: Number of evicted entries
  - error: The first store failure; remaining paths are still attempted
*/
func Invalidate(ctx context.Context, store Store, paths ...string) (int, error) {
	var (
		evicted  int
		firstErr error
	)

	record := func(n int, err error) {
		evicted += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, path := range paths {
		base, subtree := strings.CutSuffix(path, "/*")

		record(store.Delete(ctx, base))
		record(store.DeleteMatching(ctx, escapeGlob(base)+`\?*`))
		if subtree {
			record(store.DeleteMatching(ctx, escapeGlob(base)+"/*"))
		}
	}

	return evicted, firstErr
}

// escapeGlob quotes the Redis glob metacharacters of s.
func escapeGlob(s string) string {
	var builder strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
