// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

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

// Routes returns the webhook routes, mounted under /api/revalidate.
// Every route authenticates with the ?secret= query parameter.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authorize)

	router.Post("/", handler.webhook)
	router.Get("/", handler.manual)
	router.Get("/events", handler.listEvents)

	return router
}

func (handler *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := handler.service.Authorize(request.URL.Query().Get("secret")); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// webhook handles POST /api/revalidate with the CMS payload.
func (handler *Handler) webhook(writer http.ResponseWriter, request *http.Request) {
	var payload Payload
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Handle(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// manual handles GET /api/revalidate?path=.
func (handler *Handler) manual(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.InvalidatePath(request.Context(), request.URL.Query().Get("path"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// listEvents handles GET /api/revalidate/events?limit=.
func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), DefaultEventLimit)

	events, err := handler.service.Events(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}
