// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/platform/cmserr"
	"github.com/taibuivan/techblog/internal/platform/validate"
	"github.com/taibuivan/techblog/pkg/pagination"
	"github.com/taibuivan/techblog/pkg/slice"
)

// Field identifiers reported in validation errors.
const (
	FieldID       = "id"
	FieldTopic    = "topic"
	FieldArchive  = "archive"
	FieldBook     = "book"
	FieldSelected = "selected"
)

// MembershipSource provides the post-to-book membership used by the book filter.
type MembershipSource interface {
	Membership(ctx context.Context) (Membership, error)
}

// # Service Layer

// Service lists and looks up posts for one locale at a time.
type Service struct {
	repo       Repository
	membership MembershipSource
	logger     *slog.Logger
}

// NewService constructs a [Service]. membership may be nil, in which case
// filtering by book is rejected.
func NewService(repo Repository, membership MembershipSource, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		membership: membership,
		logger:     logger,
	}
}

// ListQuery describes one list request.
type ListQuery struct {
	Locale   locale.Locale
	Criteria Criteria
	Selected string
	Page     int
	Limit    int
}

// ListResult is one page of a filtered listing.
type ListResult struct {
	Posts     []*Post
	Meta      pagination.Meta
	Facets    Facets
	Selection Selection
}

/*
ListPosts returns a filtered, paginated page of posts in one locale.

Description: The whole collection is fetched, narrowed to the requested
locale and then filtered in memory. Facets are counted over the locale's
posts before filtering so the sidebar keeps showing every option. The
selection is reconciled against the filtered (not the paged) result.

Parameters:
  - ctx: context.Context
  - query: ListQuery (locale, criteria, selected id, page, limit)

Returns:
  - *ListResult: Page of posts plus metadata
  - error: Validation errors or classified content store errors
*/
func (service *Service) ListPosts(ctx context.Context, query ListQuery) (*ListResult, error) {

	// 1. Parameter validation
	validator := &validate.Validator{}
	validator.
		ContentID(FieldTopic, query.Criteria.TopicID).
		Month(FieldArchive, query.Criteria.Archive).
		ContentID(FieldBook, query.Criteria.BookID).
		ContentID(FieldSelected, query.Selected).
		Custom(FieldBook, query.Criteria.BookID != "" && service.membership == nil, "Book filter is not available")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 2. Collection fetch
	all, err := service.repo.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, cmserr.Wrap(err, "Posts")
	}

	localized := slice.Filter(all, func(post *Post) bool { return post.Locale == query.Locale })

	// 3. Membership is only needed for the book filter
	var membership Membership
	if query.Criteria.BookID != "" {
		membership, err = service.membership.Membership(ctx)
		if err != nil {
			return nil, err
		}
	}

	filtered := Apply(localized, query.Criteria, membership)

	// 4. In-memory pagination
	params := pagination.Normalize(query.Page, query.Limit)
	start, end := params.Window(len(filtered))

	service.logger.DebugContext(ctx, "posts_listed",
		slog.String("locale", query.Locale.String()),
		slog.Int("total", len(localized)),
		slog.Int("matched", len(filtered)),
	)

	return &ListResult{
		Posts:     filtered[start:end],
		Meta:      pagination.NewMeta(params.Page, params.Limit, len(filtered)),
		Facets:    CountFacets(localized),
		Selection: Selection{ID: query.Selected}.Reconcile(filtered),
	}, nil
}

/*
GetPost fetches the record of a post in locale l.

Parameters:
  - ctx: context.Context
  - id: string (canonical or localized id)
  - l: locale.Locale

Returns:
  - *Post: The post as stored for l
  - error: NOT_FOUND when the translation does not exist
*/
func (service *Service) GetPost(ctx context.Context, id string, l locale.Locale) (*Post, error) {
	if err := (&validate.Validator{}).Required(FieldID, id).ContentID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	post, err := service.repo.FindByID(ctx, locale.WithSuffix(id, l))
	if err != nil {
		return nil, cmserr.Wrap(err, "Post")
	}
	return post, nil
}

// ListAll returns every post of every locale, newest first.
func (service *Service) ListAll(ctx context.Context) ([]*Post, error) {
	posts, err := service.repo.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, cmserr.Wrap(err, "Posts")
	}
	return posts, nil
}
