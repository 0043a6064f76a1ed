// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/techblog/internal/platform/request"
	"github.com/taibuivan/techblog/internal/platform/respond"
	"github.com/taibuivan/techblog/pkg/convert"
	"github.com/taibuivan/techblog/pkg/pagination"
)

// # Handler Implementation

// Handler serves the post list and detail endpoints of one locale prefix.
// The locale is resolved by middleware before these routes run.
type Handler struct {
	service *Service
}

// NewHandler constructs a new blog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the post routes, mounted under /api/v1/{lang}/posts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listPosts)
	router.Get("/{id}", handler.getPost)
	return router
}

type listView struct {
	Posts    []PostView `json:"posts"`
	Facets   Facets     `json:"facets"`
	Selected string     `json:"selected,omitempty"`
}

// listPosts handles GET /posts?topic&archive&book&selected&page&limit.
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	result, err := handler.service.ListPosts(request.Context(), ListQuery{
		Locale: requestutil.Locale(request),
		Criteria: Criteria{
			TopicID: values.Get("topic"),
			Archive: values.Get("archive"),
			BookID:  values.Get("book"),
		},
		Selected: values.Get("selected"),
		Page:     params.Page,
		Limit:    params.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listView{
		Posts:    Views(result.Posts),
		Facets:   result.Facets,
		Selected: result.Selection.ID,
	}, result.Meta)
}

// getPost handles GET /posts/{id}?body=. The body is included unless body=false.
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.GetPost(request.Context(), id, requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := request.URL.Query().Get("body")
	respond.OK(writer, post.View(body == "" || convert.ToBool(body)))
}
