// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/search"
)

type countingSource struct {
	posts []*blog.Post
	calls int
	err   error
}

func (s *countingSource) ListAll(context.Context) ([]*blog.Post, error) {
	s.calls++
	return s.posts, s.err
}

func samplePosts() []*blog.Post {
	rust := topic.Topic{ID: "rust", Label: "Rust"}
	post := func(id string, l locale.Locale) *blog.Post {
		return &blog.Post{
			ID:          id,
			Locale:      l,
			Japanese:    blog.Translation{Title: "Rust入門ガイド", Summary: "所有権を学ぶ"},
			English:     blog.Translation{Title: "Rust ownership guide", Summary: "Learn borrowing"},
			PublishedAt: time.Now(),
			Topics:      []topic.Topic{rust},
		}
	}
	return []*blog.Post{
		post("rust-intro", locale.Japanese),
		post("rust-intro", locale.English),
	}
}

func newService(t *testing.T, source search.Source) *search.Service {
	t.Helper()

	index, err := search.NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return search.NewService(source, index, slog.New(slog.DiscardHandler))
}

/*
TestService_Search verifies locale-restricted matching for both languages.
*/
func TestService_Search(t *testing.T) {
	service := newService(t, &countingSource{posts: samplePosts()})
	ctx := context.Background()

	hits, err := service.Search(ctx, "ownership", locale.English, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "rust-intro", hits[0].ID)
	assert.Equal(t, "rust-intro-en", hits[0].LocalizedID)
	assert.Equal(t, "Rust ownership guide", hits[0].Title)

	hits, err = service.Search(ctx, "ownership", locale.Japanese, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = service.Search(ctx, "入門", locale.Japanese, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "rust-intro", hits[0].LocalizedID)
}

/*
TestService_LazyRebuild verifies the index is built once and rebuilt after MarkStale.
*/
func TestService_LazyRebuild(t *testing.T) {
	source := &countingSource{posts: samplePosts()}
	service := newService(t, source)
	ctx := context.Background()

	_, err := service.Search(ctx, "rust", locale.English, 0)
	require.NoError(t, err)
	_, err = service.Search(ctx, "rust", locale.English, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	service.MarkStale()
	_, err = service.Search(ctx, "rust", locale.English, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls)
}

/*
TestService_SourceFailure verifies a failed rebuild is retried on the next search.
*/
func TestService_SourceFailure(t *testing.T) {
	source := &countingSource{err: apperr.Upstream("Content store is unavailable", errors.New("down"))}
	service := newService(t, source)
	ctx := context.Background()

	_, err := service.Search(ctx, "rust", locale.English, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperr.As(err).HTTPStatus)

	source.err = nil
	source.posts = samplePosts()
	hits, err := service.Search(ctx, "rust", locale.English, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, 2, source.calls)
}

/*
TestService_EmptyQuery verifies the query is required.
*/
func TestService_EmptyQuery(t *testing.T) {
	source := &countingSource{}
	service := newService(t, source)

	_, err := service.Search(context.Background(), "   ", locale.English, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	assert.Zero(t, source.calls)
}
