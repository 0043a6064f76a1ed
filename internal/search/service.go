// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/validate"
)

const (
	// DefaultLimit is the number of hits returned when none is requested.
	DefaultLimit = 10
	// MaxLimit bounds the hits of a single search.
	MaxLimit = 50

	maxQueryLength = 200
)

// Source lists every post that should be searchable.
type Source interface {
	ListAll(ctx context.Context) ([]*blog.Post, error)
}

// Service searches posts, rebuilding the index lazily after it is marked stale.
type Service struct {
	source Source
	index  *Index
	logger *slog.Logger

	rebuild sync.Mutex
	stale   atomic.Bool
}

// NewService constructs a [Service]. The index starts stale and is built on first use.
func NewService(source Source, index *Index, logger *slog.Logger) *Service {
	service := &Service{source: source, index: index, logger: logger}
	service.stale.Store(true)
	return service
}

// MarkStale forces a rebuild before the next search.
func (service *Service) MarkStale() {
	service.stale.Store(true)
}

/*
Search returns the posts of locale l matching query.

Parameters:
  - ctx: context.Context
  - query: string (Bleve query-string syntax)
  - l: locale.Locale
  - limit: int (clamped to [1, MaxLimit])

Returns:
  - []Hit: Hits ordered by score
  - error: VALIDATION_ERROR for empty or unparsable queries
*/
func (service *Service) Search(ctx context.Context, query string, l locale.Locale, limit int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if err := (&validate.Validator{}).Required("q", query).MaxLen("q", query, maxQueryLength).Err(); err != nil {
		return nil, err
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	if err := service.ensureFresh(ctx); err != nil {
		return nil, err
	}

	hits, err := service.index.Search(query, l, limit)
	if err != nil {
		return nil, apperr.ValidationError("Invalid search query", apperr.FieldError{Field: "q", Message: err.Error()})
	}
	return hits, nil
}

// ensureFresh rebuilds the index if it is stale. A MarkStale that lands
// during a rebuild schedules another one.
func (service *Service) ensureFresh(ctx context.Context) error {
	if !service.stale.Load() {
		return nil
	}

	service.rebuild.Lock()
	defer service.rebuild.Unlock()

	if !service.stale.CompareAndSwap(true, false) {
		return nil
	}

	posts, err := service.source.ListAll(ctx)
	if err != nil {
		service.stale.Store(true)
		return err
	}

	if err := service.index.Rebuild(posts); err != nil {
		service.stale.Store(true)
		return apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "search_index_rebuilt", slog.Int("documents", len(posts)))
	return nil
}
