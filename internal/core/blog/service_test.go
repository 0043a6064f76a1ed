// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/cms"
)

// # Fakes

type memoryRepository struct {
	posts []*blog.Post
	err   error
}

func (r *memoryRepository) List(_ context.Context, opts blog.ListOptions) ([]*blog.Post, int, error) {
	return r.posts, len(r.posts), r.err
}

func (r *memoryRepository) ListAll(context.Context, blog.ListOptions) ([]*blog.Post, error) {
	return r.posts, r.err
}

func (r *memoryRepository) FindByID(_ context.Context, recordID string) (*blog.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, post := range r.posts {
		if post.LocalizedID() == recordID {
			return post, nil
		}
	}
	return nil, &cms.Error{Kind: cms.KindNotFound, Endpoint: "blogs/" + recordID}
}

type staticMembership blog.Membership

func (m staticMembership) Membership(context.Context) (blog.Membership, error) {
	return blog.Membership(m), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func bilingual() []*blog.Post {
	posts := tenPosts()
	english := make([]*blog.Post, 0, len(posts))
	for _, post := range posts {
		copied := *post
		copied.Locale = locale.English
		english = append(english, &copied)
	}
	return append(posts, english...)
}

// # Tests

/*
TestService_ListPosts verifies locale narrowing, filtering, paging and facets.
*/
func TestService_ListPosts(t *testing.T) {
	service := blog.NewService(&memoryRepository{posts: bilingual()}, nil, discardLogger())

	result, err := service.ListPosts(context.Background(), blog.ListQuery{
		Locale:   locale.English,
		Criteria: blog.Criteria{TopicID: "rust"},
		Selected: "go-1",
		Page:     1,
		Limit:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rust-a-en", "rust-b-en"}, ids(result.Posts))
	assert.Equal(t, 3, result.Meta.Total)
	assert.Equal(t, 2, result.Meta.TotalPages)
	assert.Empty(t, result.Selection.ID, "selection outside the filter is cleared")

	// Facets cover the whole locale, not the filtered subset.
	assert.Len(t, result.Facets.Archives, 3)
}

/*
TestService_ListPosts_Book verifies the membership-based book filter.
*/
func TestService_ListPosts_Book(t *testing.T) {
	membership := staticMembership{"rust-a": {"rust-book"}, "rust-c-en": {"rust-book"}}
	service := blog.NewService(&memoryRepository{posts: bilingual()}, membership, discardLogger())

	result, err := service.ListPosts(context.Background(), blog.ListQuery{
		Locale:   locale.Japanese,
		Criteria: blog.Criteria{BookID: "rust-book"},
		Selected: "rust-a",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rust-a"}, ids(result.Posts))
	assert.Equal(t, "rust-a", result.Selection.ID)
}

/*
TestService_ListPosts_Validation verifies malformed criteria are rejected before any fetch.
*/
func TestService_ListPosts_Validation(t *testing.T) {
	repo := &memoryRepository{err: errors.New("must not be called")}
	service := blog.NewService(repo, nil, discardLogger())

	_, err := service.ListPosts(context.Background(), blog.ListQuery{
		Locale:   locale.Japanese,
		Criteria: blog.Criteria{Archive: "January", BookID: "rust-book"},
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Len(t, appErr.Details, 2)
}

/*
TestService_GetPost verifies localized lookup and not-found mapping.
*/
func TestService_GetPost(t *testing.T) {
	service := blog.NewService(&memoryRepository{posts: bilingual()}, nil, discardLogger())
	ctx := context.Background()

	post, err := service.GetPost(ctx, "rust-a", locale.English)
	require.NoError(t, err)
	assert.Equal(t, "rust-a-en", post.LocalizedID())

	post, err = service.GetPost(ctx, "rust-a-en", locale.Japanese)
	require.NoError(t, err)
	assert.Equal(t, "rust-a", post.LocalizedID())

	_, err = service.GetPost(ctx, "missing", locale.Japanese)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

/*
TestService_UpstreamFailure verifies store failures surface as retryable 502s.
*/
func TestService_UpstreamFailure(t *testing.T) {
	repo := &memoryRepository{err: &cms.Error{Kind: cms.KindTransport, Endpoint: "blogs", Status: 503}}
	service := blog.NewService(repo, nil, discardLogger())

	_, err := service.ListPosts(context.Background(), blog.ListQuery{Locale: locale.Japanese})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.True(t, appErr.Retryable)
}

/*
TestCMSRepository_Decode verifies record decoding, defaults and the locale split.
*/
func TestCMSRepository_Decode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-publishedAt", r.URL.Query().Get("orders"))
		_, _ = w.Write([]byte(`{
			"contents": [{
				"id": "intro-en",
				"publishedAt": "2026-01-05T10:00:00.000Z",
				"updatedAt": "2026-01-06T10:00:00.000Z",
				"title": "はじめに", "title_en": "Intro",
				"summary": "概要", "sammary_en": "Summary",
				"topics": [{"id": "go", "topic": "Go"}],
				"book": {"id": "go-book"}
			}],
			"totalCount": 1, "offset": 0, "limit": 100
		}`))
	}))
	defer server.Close()

	client, err := cms.NewClient(cms.Config{BaseURL: server.URL, APIKey: "k"}, discardLogger())
	require.NoError(t, err)

	posts, err := blog.NewCMSRepository(client).ListAll(context.Background(), blog.ListOptions{})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "intro", post.ID)
	assert.Equal(t, locale.English, post.Locale)
	assert.Equal(t, "Intro", post.English.Title)
	assert.Equal(t, blog.DefaultReadTime, post.ReadTime)
	assert.Equal(t, "go-book", post.BookID)
	assert.Equal(t, "2026-01-05", post.Date())
	assert.True(t, post.HasTopic("go"))
	assert.Equal(t, time.January, post.PublishedAt.Month())
}

/*
TestListOptions verifies the store filter expressions.
*/
func TestListOptions(t *testing.T) {
	assert.Equal(t, "topics[contains]rust", blog.ListOptions{}.ByTopic("rust").Filters)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"publishedAt[greater_than]2026-01-01[and]publishedAt[less_than]2026-02-01",
		blog.ListOptions{}.ByDateRange(from, to).Filters,
	)
}
