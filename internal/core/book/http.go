// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
	requestutil "github.com/taibuivan/techblog/internal/platform/request"
	"github.com/taibuivan/techblog/internal/platform/respond"
)

// # Handler Implementation

// Handler serves book listings, resolved books and chapter pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the book routes, mounted under /api/v1/{lang}/books.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/chapters/{article}", handler.getChapter)
	return router
}

// # Views

type bookView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Cover    *Image `json:"cover,omitempty"`
	Chapters int    `json:"chapters"`
}

type bookDetailView struct {
	bookView
	Posts   []blog.PostView `json:"posts"`
	Skipped []SkippedMember `json:"skipped"`
}

type chapterView struct {
	Navigation
	Article blog.PostView `json:"article"`
}

func newBookView(book *Book, l locale.Locale) bookView {
	return bookView{
		ID:       book.ID,
		Title:    book.Title,
		Cover:    book.Cover,
		Chapters: len(book.MembersIn(l)),
	}
}

// # Handlers

// listBooks handles GET /books.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	l := requestutil.Locale(request)
	views := make([]bookView, 0, len(books))
	for _, book := range books {
		views = append(views, newBookView(book, l))
	}
	respond.OK(writer, views)
}

// getBook handles GET /books/{id} with its resolved chapters.
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	l := requestutil.Locale(request)

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(ctx, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.ResolveChapters(ctx, book, l)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view := newBookView(book, l)
	view.Chapters = len(chapters.Posts)

	// A partial chapter list is served once, never cached.
	if len(chapters.Skipped) > 0 {
		respond.NoStore(writer)
	}

	respond.OK(writer, bookDetailView{
		bookView: view,
		Posts:    blog.Views(chapters.Posts),
		Skipped:  chapters.Skipped,
	})
}

// getChapter handles GET /books/{id}/chapters/{article}.
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	articleID, err := requestutil.ID(request, "article")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	navigation, err := handler.service.Navigate(request.Context(), bookID, articleID, requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if navigation.Partial {
		respond.NoStore(writer)
	}

	respond.OK(writer, chapterView{
		Navigation: *navigation,
		Article:    navigation.Article.View(true),
	})
}

// ListStaticPaths handles GET /api/v1/paths.
func (handler *Handler) ListStaticPaths(writer http.ResponseWriter, request *http.Request) {
	paths, err := handler.service.StaticPaths(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paths)
}
