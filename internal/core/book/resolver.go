// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
)

// DefaultConcurrency bounds the parallel member fetches of one book.
const DefaultConcurrency = 4

// PostFinder fetches a single post record by its localized id.
type PostFinder interface {
	FindByID(ctx context.Context, recordID string) (*blog.Post, error)
}

// SkippedMember is a member that could not be resolved. The book is still
// served without it.
type SkippedMember struct {
	RecordID string `json:"record_id"`
	// Position is the member's 1-based place among the locale's members.
	Position int   `json:"position"`
	Err      error `json:"-"`
}

// Chapters is a book resolved for one locale.
type Chapters struct {
	BookID string
	Locale locale.Locale

	// Posts are the resolved chapters in member order.
	Posts   []*blog.Post
	Skipped []SkippedMember
}

// Index returns the 1-based chapter number of postID and the chapter count.
// postID may be canonical or localized.
func (c *Chapters) Index(postID string) (position, total int, ok bool) {
	for i, post := range c.Posts {
		if post.ID == postID || post.LocalizedID() == postID {
			return i + 1, len(c.Posts), true
		}
	}
	return 0, len(c.Posts), false
}

// Adjacent returns the chapters before and after postID. Either is nil at
// the ends of the book or when postID is not a chapter.
func (c *Chapters) Adjacent(postID string) (prev, next *blog.Post) {
	position, total, ok := c.Index(postID)
	if !ok {
		return nil, nil
	}

	if position > 1 {
		prev = c.Posts[position-2]
	}
	if position < total {
		next = c.Posts[position]
	}
	return prev, next
}

// # Resolver

// Resolver turns a book's member references into full posts.
type Resolver struct {
	finder      PostFinder
	concurrency int
	logger      *slog.Logger
}

// NewResolver constructs a [Resolver]. A non-positive concurrency uses [DefaultConcurrency].
func NewResolver(finder PostFinder, concurrency int, logger *slog.Logger) *Resolver {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Resolver{finder: finder, concurrency: concurrency, logger: logger}
}

/*
Resolve fetches the members of book that belong to locale l.

Description: Members are fetched concurrently (bounded by the resolver's
concurrency) and reassembled by position, so the chapter order is the member
order regardless of completion order. A member that fails is skipped,
recorded in [Chapters.Skipped] and logged. Only cancellation of ctx fails
the whole call.

Parameters:
  - ctx: context.Context
  - book: *Book
  - l: locale.Locale

Returns:
  - *Chapters: Resolved chapters plus skipped members
  - error: ctx.Err() if the context ends first
*/
func (resolver *Resolver) Resolve(ctx context.Context, book *Book, l locale.Locale) (*Chapters, error) {
	members := book.MembersIn(l)

	posts := make([]*blog.Post, len(members))
	failures := make([]error, len(members))

	group := &errgroup.Group{}
	group.SetLimit(resolver.concurrency)

	for i, member := range members {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			post, err := resolver.finder.FindByID(ctx, member.RecordID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failures[i] = err
				return nil
			}

			posts[i] = post
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	chapters := &Chapters{
		BookID:  book.ID,
		Locale:  l,
		Posts:   make([]*blog.Post, 0, len(members)),
		Skipped: make([]SkippedMember, 0),
	}

	for i, member := range members {
		if failures[i] != nil {
			chapters.Skipped = append(chapters.Skipped, SkippedMember{
				RecordID: member.RecordID,
				Position: i + 1,
				Err:      failures[i],
			})

			resolver.logger.WarnContext(ctx, "partial_member_resolution",
				slog.String("book_id", book.ID),
				slog.String("record_id", member.RecordID),
				slog.Int("position", i+1),
				slog.Any("error", failures[i]),
			)
			continue
		}
		chapters.Posts = append(chapters.Posts, posts[i])
	}

	resolver.logger.DebugContext(ctx, "chapters_resolved",
		slog.String("book_id", book.ID),
		slog.String("locale", l.String()),
		slog.Int("chapters", len(chapters.Posts)),
		slog.Int("skipped", len(chapters.Skipped)),
	)

	return chapters, nil
}
