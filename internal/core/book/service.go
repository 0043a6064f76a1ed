// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/cmserr"
	"github.com/taibuivan/techblog/internal/platform/validate"
)

// Field identifiers reported in validation errors.
const (
	FieldID      = "id"
	FieldArticle = "article"
)

// # Service Layer

// Service orchestrates book listing and chapter navigation.
type Service struct {
	repo     Repository
	resolver *Resolver
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, resolver *Resolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
	}
}

// # Book Lookups

// ListBooks returns every book ordered by title.
func (service *Service) ListBooks(ctx context.Context) ([]*Book, error) {
	books, err := service.repo.ListAll(ctx)
	if err != nil {
		return nil, cmserr.Wrap(err, "Books")
	}
	return books, nil
}

// GetBook fetches one book. A missing book is NOT_FOUND.
func (service *Service) GetBook(ctx context.Context, id string) (*Book, error) {
	if err := (&validate.Validator{}).Required(FieldID, id).ContentID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	book, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, cmserr.Wrap(err, "Book")
	}
	return book, nil
}

// Membership implements [blog.MembershipSource].
func (service *Service) Membership(ctx context.Context) (blog.Membership, error) {
	books, err := service.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMembership(books), nil
}

// BuildMembership maps every member record id to the books listing it.
// A record listed twice in one book maps to that book once.
func BuildMembership(books []*Book) blog.Membership {
	membership := blog.Membership{}
	for _, book := range books {
		for _, member := range book.Members {
			if membership.Contains(member.RecordID, book.ID) {
				continue
			}
			membership[member.RecordID] = append(membership[member.RecordID], book.ID)
		}
	}
	return membership
}

// # Chapter Resolution

// ResolveChapters resolves the chapters of book in locale l.
func (service *Service) ResolveChapters(ctx context.Context, book *Book, l locale.Locale) (*Chapters, error) {
	return service.resolver.Resolve(ctx, book, l)
}

// ChapterIndex resolves book and returns the 1-based chapter number of postID.
func (service *Service) ChapterIndex(ctx context.Context, book *Book, postID string, l locale.Locale) (position, total int, ok bool, err error) {
	chapters, err := service.ResolveChapters(ctx, book, l)
	if err != nil {
		return 0, 0, false, err
	}
	position, total, ok = chapters.Index(postID)
	return position, total, ok, nil
}

// AdjacentChapters resolves book and returns the neighbours of postID.
func (service *Service) AdjacentChapters(ctx context.Context, book *Book, postID string, l locale.Locale) (prev, next *blog.Post, err error) {
	chapters, err := service.ResolveChapters(ctx, book, l)
	if err != nil {
		return nil, nil, err
	}
	prev, next = chapters.Adjacent(postID)
	return prev, next, nil
}

// # Navigation

// ChapterLink points at a neighbouring chapter.
type ChapterLink struct {
	// ID is the canonical post id used in article URLs.
	ID     string `json:"id"`
	Title  string `json:"title"`
	Number int    `json:"number"`
}

// Navigation is everything an article page inside a book needs.
type Navigation struct {
	BookID         string       `json:"book_id"`
	BookTitle      string       `json:"book_title"`
	Article        *blog.Post   `json:"-"`
	CurrentChapter int          `json:"current_chapter"`
	TotalChapters  int          `json:"total_chapters"`
	Prev           *ChapterLink `json:"prev_chapter,omitempty"`
	Next           *ChapterLink `json:"next_chapter,omitempty"`
	// Partial is set when some chapters failed to resolve, so numbering may be off.
	Partial        bool         `json:"partial,omitempty"`
}

/*
Navigate builds the article page of articleID inside bookID.

Description: The book is resolved for l and the article is looked up among
the resolved chapters. An article that is not a chapter of the book in l,
including one whose record failed to resolve, is NOT_FOUND.

Parameters:
  - ctx: context.Context
  - bookID: string
  - articleID: string (canonical or localized post id)
  - l: locale.Locale

Returns:
  - *Navigation: Current chapter, total and neighbours with localized titles
  - error: NOT_FOUND, validation, or classified content store errors
*/
func (service *Service) Navigate(ctx context.Context, bookID, articleID string, l locale.Locale) (*Navigation, error) {
	if err := (&validate.Validator{}).Required(FieldArticle, articleID).ContentID(FieldArticle, articleID).Err(); err != nil {
		return nil, err
	}

	book, err := service.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	chapters, err := service.ResolveChapters(ctx, book, l)
	if err != nil {
		return nil, err
	}

	canonical := locale.Canonical(articleID)
	position, total, ok := chapters.Index(canonical)
	if !ok {
		service.logger.InfoContext(ctx, "article_not_in_book",
			slog.String("book_id", book.ID),
			slog.String("article_id", canonical),
			slog.String("locale", l.String()),
		)
		return nil, apperr.NotFound("Chapter")
	}

	prev, next := chapters.Adjacent(canonical)

	return &Navigation{
		BookID:         book.ID,
		BookTitle:      book.Title,
		Article:        chapters.Posts[position-1],
		CurrentChapter: position,
		TotalChapters:  total,
		Prev:           chapterLink(prev, position-1, l),
		Next:           chapterLink(next, position+1, l),
		Partial:        len(chapters.Skipped) > 0,
	}, nil
}

func chapterLink(post *blog.Post, number int, l locale.Locale) *ChapterLink {
	if post == nil {
		return nil
	}
	return &ChapterLink{ID: post.ID, Title: post.Text(l).Title, Number: number}
}

// # Pre-rendering

// StaticPath is one page to pre-render. ArticleID is empty for the book page itself.
type StaticPath struct {
	Locale    locale.Locale `json:"lang"`
	BookID    string        `json:"id"`
	ArticleID string        `json:"article,omitempty"`
}

// StaticPaths enumerates every book page and every chapter page of both locales.
// Article ids are canonical; the locale prefix selects the translation.
func (service *Service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	books, err := service.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0)
	for _, l := range locale.All {
		for _, book := range books {
			paths = append(paths, StaticPath{Locale: l, BookID: book.ID})
		}
	}

	for _, book := range books {
		for _, l := range locale.All {
			for _, member := range book.MembersIn(l) {
				paths = append(paths, StaticPath{Locale: l, BookID: book.ID, ArticleID: member.PostID()})
			}
		}
	}
	return paths, nil
}
