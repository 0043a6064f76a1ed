// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/api"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/core/book"
	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/internal/platform/cache"
	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/internal/platform/config"
	"github.com/taibuivan/techblog/internal/revalidate"
	"github.com/taibuivan/techblog/internal/search"
)

const (
	apiKey = "read-key"
	secret = "s3cret"
)

func postRecord(id, published, title, titleEn string) map[string]any {
	return map[string]any{
		"id":          id,
		"publishedAt": published,
		"updatedAt":   published,
		"title":       title,
		"title_en":    titleEn,
		"summary":     title + "の概要",
		"sammary_en":  "About " + titleEn,
		"topics":      []map[string]any{{"id": "rust", "topic": "Rust"}},
	}
}

// newContentStore serves a small bilingual site in the CMS wire format.
func newContentStore(t *testing.T) *httptest.Server {
	t.Helper()

	posts := []map[string]any{
		postRecord("ownership", "2026-02-01T00:00:00.000Z", "所有権", "Ownership"),
		postRecord("ownership-en", "2026-02-01T00:00:00.000Z", "所有権", "Ownership"),
		postRecord("borrowing", "2026-01-15T00:00:00.000Z", "借用", "Borrowing"),
		postRecord("borrowing-en", "2026-01-15T00:00:00.000Z", "借用", "Borrowing"),
	}
	books := []map[string]any{
		{
			"id":         "rust",
			"book_title": "Rust Book",
			"book_blogs": []map[string]any{
				{"id": "ownership"}, {"id": "ownership-en"}, {"id": "borrowing"}, {"id": "borrowing-en"},
			},
		},
		{
			// "ghost" is referenced but was unpublished, so it never resolves.
			"id":         "drafts",
			"book_title": "Drafts",
			"book_blogs": []map[string]any{{"id": "ghost"}, {"id": "borrowing"}},
		},
	}
	topics := []map[string]any{{"id": "rust", "topic": "Rust"}}

	list := func(contents []map[string]any) map[string]any {
		return map[string]any{"contents": contents, "totalCount": len(contents), "offset": 0, "limit": 100}
	}
	find := func(contents []map[string]any, id string) map[string]any {
		for _, c := range contents {
			if c["id"] == id {
				return c
			}
		}
		return nil
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get(cms.HeaderAPIKey) != apiKey {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		collections := map[string][]map[string]any{"blogs": posts, "book": books, "topics": topics}
		endpoint, id, _ := strings.Cut(strings.TrimPrefix(request.URL.Path, "/"), "/")

		contents, ok := collections[endpoint]
		if !ok {
			writer.WriteHeader(http.StatusNotFound)
			return
		}

		var body any = list(contents)
		if id != "" {
			record := find(contents, id)
			if record == nil {
				writer.WriteHeader(http.StatusNotFound)
				return
			}
			body = record
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

type discardEvents struct{}

func (discardEvents) Record(context.Context, *revalidate.Event) error { return nil }
func (discardEvents) ListRecent(context.Context, int) ([]*revalidate.Event, error) {
	return []*revalidate.Event{}, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	contentStore := newContentStore(t)

	client, err := cms.NewClient(cms.Config{BaseURL: contentStore.URL, APIKey: apiKey}, logger)
	require.NoError(t, err)

	postRepository := blog.NewCMSRepository(client)
	bookService := book.NewService(book.NewCMSRepository(client), book.NewResolver(postRepository, 2, logger), logger)
	postService := blog.NewService(postRepository, bookService, logger)

	index, err := search.NewIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	searchService := search.NewService(postService, index, logger)

	store := cache.NewMemoryStore()
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "production", CacheTTL: time.Hour}
	server := api.NewServer(ctx, cfg, logger, store, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Post:       blog.NewHandler(postService),
		Topic:      topic.NewHandler(topic.NewService(topic.NewCMSRepository(client), logger)),
		Book:       book.NewHandler(bookService),
		Search:     search.NewHandler(searchService),
		Revalidate: revalidate.NewHandler(revalidate.NewService(secret, store, searchService, discardEvents{}, logger)),
	})
	return server.Handler()
}

func get(t *testing.T, router http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		request.Header.Set(header[i], header[i+1])
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target), recorder.Body.String())
}

/*
TestServer_Posts verifies locale routing, listing and caching of posts.
*/
func TestServer_Posts(t *testing.T) {
	router := newRouter(t)

	first := get(t, router, "/api/v1/en/posts?limit=1")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, cache.StatusMiss, first.Header().Get("X-Cache"))

	var envelope struct {
		Data struct {
			Posts  []blog.PostView `json:"posts"`
			Facets blog.Facets     `json:"facets"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	decode(t, first, &envelope)

	require.Len(t, envelope.Data.Posts, 1)
	assert.Equal(t, "ownership-en", envelope.Data.Posts[0].LocalizedID)
	assert.Equal(t, "Ownership", envelope.Data.Posts[0].Title)
	assert.Equal(t, 2, envelope.Meta.Total)
	require.Len(t, envelope.Data.Facets.Archives, 2)
	assert.Equal(t, "2026-02", envelope.Data.Facets.Archives[0].Month)

	second := get(t, router, "/api/v1/en/posts?limit=1")
	assert.Equal(t, cache.StatusHit, second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	detail := get(t, router, "/api/v1/ja/posts/borrowing")
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), `"title":"借用"`)

	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/v1/ja/posts/missing").Code)
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/v1/fr/posts").Code)
}

/*
TestServer_LocaleRedirect verifies locale-less paths redirect by Accept-Language.
*/
func TestServer_LocaleRedirect(t *testing.T) {
	router := newRouter(t)

	recorder := get(t, router, "/api/v1/books/rust", "Accept-Language", "en-GB,en;q=0.8")
	assert.Equal(t, http.StatusTemporaryRedirect, recorder.Code)
	assert.Equal(t, "/api/v1/en/books/rust", recorder.Header().Get("Location"))

	negotiated := get(t, router, "/api/v1/locale", "Accept-Language", "en")
	require.Equal(t, http.StatusOK, negotiated.Code)
	assert.Contains(t, negotiated.Body.String(), `"locale":"en"`)
	assert.Empty(t, negotiated.Header().Get("X-Cache"))
}

/*
TestServer_Books verifies book details, chapter navigation and the static path listing.
*/
func TestServer_Books(t *testing.T) {
	router := newRouter(t)

	detail := get(t, router, "/api/v1/en/books/rust")
	require.Equal(t, http.StatusOK, detail.Code, detail.Body.String())
	assert.Contains(t, detail.Body.String(), `"chapters":2`)

	chapter := get(t, router, "/api/v1/ja/books/rust/chapters/borrowing")
	require.Equal(t, http.StatusOK, chapter.Code, chapter.Body.String())

	var envelope struct {
		Data struct {
			CurrentChapter int               `json:"current_chapter"`
			TotalChapters  int               `json:"total_chapters"`
			Prev           *book.ChapterLink `json:"prev_chapter"`
			Next           *book.ChapterLink `json:"next_chapter"`
		} `json:"data"`
	}
	decode(t, chapter, &envelope)
	assert.Equal(t, 2, envelope.Data.CurrentChapter)
	assert.Equal(t, 2, envelope.Data.TotalChapters)
	require.NotNil(t, envelope.Data.Prev)
	assert.Equal(t, "ownership", envelope.Data.Prev.ID)
	assert.Nil(t, envelope.Data.Next)

	paths := get(t, router, "/api/v1/paths")
	require.Equal(t, http.StatusOK, paths.Code)
	assert.Contains(t, paths.Body.String(), `"article":"borrowing"`)

	filtered := get(t, router, "/api/v1/ja/posts?book=rust")
	require.Equal(t, http.StatusOK, filtered.Code)
	assert.Contains(t, filtered.Body.String(), `"total":2`)
}

/*
TestServer_PartialBookNotCached verifies a book with an unresolved member is served but not cached.
*/
func TestServer_PartialBookNotCached(t *testing.T) {
	router := newRouter(t)

	for range 2 {
		detail := get(t, router, "/api/v1/ja/books/drafts")
		require.Equal(t, http.StatusOK, detail.Code, detail.Body.String())
		assert.Contains(t, detail.Body.String(), `"chapters":1`)
		assert.Equal(t, cache.StatusMiss, detail.Header().Get("X-Cache"))
		assert.Equal(t, "no-store", detail.Header().Get("Cache-Control"))
	}

	for range 2 {
		chapter := get(t, router, "/api/v1/ja/books/drafts/chapters/borrowing")
		require.Equal(t, http.StatusOK, chapter.Code, chapter.Body.String())
		assert.Contains(t, chapter.Body.String(), `"partial":true`)
		assert.Equal(t, cache.StatusMiss, chapter.Header().Get("X-Cache"))
	}

	complete := get(t, router, "/api/v1/ja/books/rust")
	require.Equal(t, http.StatusOK, complete.Code)
	assert.Empty(t, complete.Header().Get("Cache-Control"))
	assert.Equal(t, cache.StatusHit, get(t, router, "/api/v1/ja/books/rust").Header().Get("X-Cache"))
}

/*
TestServer_SearchAndRevalidate verifies search results and webhook eviction.
*/
func TestServer_SearchAndRevalidate(t *testing.T) {
	router := newRouter(t)

	hits := get(t, router, "/api/v1/en/search?q=borrowing")
	require.Equal(t, http.StatusOK, hits.Code, hits.Body.String())
	assert.Contains(t, hits.Body.String(), `"localized_id":"borrowing-en"`)

	get(t, router, "/api/v1/en/posts")
	assert.Equal(t, cache.StatusHit, get(t, router, "/api/v1/en/posts").Header().Get("X-Cache"))

	unauthorized := httptest.NewRecorder()
	router.ServeHTTP(unauthorized, httptest.NewRequest(http.MethodPost, "/api/revalidate?secret=guess",
		strings.NewReader(`{"api":"blogs","id":"borrowing"}`)))
	assert.Equal(t, http.StatusUnauthorized, unauthorized.Code)

	webhook := httptest.NewRecorder()
	router.ServeHTTP(webhook, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/revalidate?secret=%s", secret),
		strings.NewReader(`{"api":"blogs","id":"borrowing-en","type":"edit"}`)))
	require.Equal(t, http.StatusOK, webhook.Code, webhook.Body.String())

	assert.Equal(t, cache.StatusMiss, get(t, router, "/api/v1/en/posts").Header().Get("X-Cache"))
}

/*
TestServer_Health verifies the liveness probe.
*/
func TestServer_Health(t *testing.T) {
	router := newRouter(t)

	assert.Equal(t, http.StatusOK, get(t, router, "/health").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/ready").Code)
}
