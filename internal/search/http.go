// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/techblog/internal/platform/request"
	"github.com/taibuivan/techblog/internal/platform/respond"
	"github.com/taibuivan/techblog/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the search routes, mounted under /api/v1/{lang}/search.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

// search handles GET /search?q&limit.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	hits, err := handler.service.Search(
		request.Context(),
		values.Get("q"),
		requestutil.Locale(request),
		convert.ToIntD(values.Get("limit"), DefaultLimit),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, hits)
}
