// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a process-local [Store] for tests and single-instance development.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (store *MemoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored, ok := store.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !stored.expiresAt.IsZero() && !store.now().Before(stored.expiresAt) {
		delete(store.entries, key)
		return nil, false, nil
	}

	entry := stored.entry
	return &entry, true, nil
}

func (store *MemoryStore) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := memoryEntry{entry: *entry}
	if ttl > 0 {
		stored.expiresAt = store.now().Add(ttl)
	}
	store.entries[key] = stored
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, keys ...string) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	deleted := 0
	for _, key := range keys {
		if _, ok := store.entries[key]; ok {
			delete(store.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

func (store *MemoryStore) DeleteMatching(_ context.Context, pattern string) (int, error) {
	matcher := globRegexp(pattern)

	store.mu.Lock()
	defer store.mu.Unlock()

	deleted := 0
	for key := range store.entries {
		if matcher.MatchString(key) {
			delete(store.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// Keys returns the stored keys, expired or not.
func (store *MemoryStore) Keys() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	keys := make([]string, 0, len(store.entries))
	for key := range store.entries {
		keys = append(keys, key)
	}
	return keys
}

// globRegexp translates the subset of Redis glob syntax produced by [Invalidate]:
// '*', '?' and backslash escapes.
func globRegexp(pattern string) *regexp.Regexp {
	var builder strings.Builder
	builder.WriteString("^")

	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			builder.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*':
			builder.WriteString(".*")
		case r == '?':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	builder.WriteString("$")
	return regexp.MustCompile(builder.String())
}
