// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/cache"
	"github.com/taibuivan/techblog/internal/platform/validate"
	"github.com/taibuivan/techblog/pkg/uuid"
)

const (
	// DefaultEventLimit is the number of events listed when none is requested.
	DefaultEventLimit = 20
	// MaxEventLimit bounds a single event listing.
	MaxEventLimit = 100
)

var errSecretNotConfigured = errors.New("revalidate: secret is not configured")

// Staler is implemented by indexes that rebuild lazily.
type Staler interface {
	MarkStale()
}

// Result reports what a revalidation evicted.
type Result struct {
	Revalidated bool     `json:"revalidated"`
	API         string   `json:"api,omitempty"`
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type,omitempty"`
	Paths       []string `json:"paths"`
	Evicted     int      `json:"evicted"`
	Now         int64    `json:"now"`
}

// Service evicts cached responses for CMS changes.
type Service struct {
	secret string
	store  cache.Store
	search Staler
	events EventRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(secret string, store cache.Store, search Staler, events EventRepository, logger *slog.Logger) *Service {
	return &Service{
		secret: secret,
		store:  store,
		search: search,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

/*
Authorize checks the shared webhook secret.

Returns:
  - error: INTERNAL_ERROR when no secret is configured, UNAUTHORIZED on mismatch
*/
func (service *Service) Authorize(secret string) error {
	if service.secret == "" {
		return apperr.Internal(errSecretNotConfigured)
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(service.secret)) != 1 {
		return apperr.Unauthorized("Invalid secret")
	}
	return nil
}

/*
Handle applies the evictions of one webhook payload and records the event.

A failure to record the event is logged and does not fail the webhook.
*/
func (service *Service) Handle(ctx context.Context, payload Payload) (*Result, error) {
	validator := &validate.Validator{}
	validator.Required("api", payload.API).ContentID("id", payload.ID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "revalidation_received",
		slog.String("api", payload.API),
		slog.String("id", payload.ID),
		slog.String("type", payload.Type),
	)

	plan := PlanFor(payload)
	if plan.StaleSearch && service.search != nil {
		service.search.MarkStale()
	}

	evicted, err := cache.Invalidate(ctx, service.store, plan.Paths...)
	if err != nil {
		service.logger.ErrorContext(ctx, "revalidation_eviction_failed", slog.Any("error", err))
		return nil, apperr.ServiceUnavailable("Cache is unavailable")
	}

	receivedAt := service.now()
	service.record(ctx, &Event{
		ID:         uuid.New(),
		API:        payload.API,
		ContentID:  payload.ID,
		Type:       payload.Type,
		PathCount:  len(plan.Paths),
		Evicted:    evicted,
		ReceivedAt: receivedAt.UTC(),
	})

	return &Result{
		Revalidated: true,
		API:         payload.API,
		ID:          payload.ID,
		Type:        payload.Type,
		Paths:       plan.Paths,
		Evicted:     evicted,
		Now:         receivedAt.UnixMilli(),
	}, nil
}

// InvalidatePath evicts a single path, for manual use.
func (service *Service) InvalidatePath(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		path = "/api/v1/*"
	}

	validator := &validate.Validator{}
	validator.Custom("path", !strings.HasPrefix(path, "/"), "must start with /").MaxLen("path", path, 512)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	evicted, err := cache.Invalidate(ctx, service.store, path)
	if err != nil {
		service.logger.ErrorContext(ctx, "revalidation_eviction_failed", slog.Any("error", err))
		return nil, apperr.ServiceUnavailable("Cache is unavailable")
	}

	service.logger.InfoContext(ctx, "manual_revalidation", slog.String("path", path), slog.Int("evicted", evicted))

	return &Result{
		Revalidated: true,
		Paths:       []string{path},
		Evicted:     evicted,
		Now:         service.now().UnixMilli(),
	}, nil
}

// Events lists the most recent webhook events, newest first.
func (service *Service) Events(ctx context.Context, limit int) ([]*Event, error) {
	if limit < 1 || limit > MaxEventLimit {
		limit = DefaultEventLimit
	}
	return service.events.ListRecent(ctx, limit)
}

func (service *Service) record(ctx context.Context, event *Event) {
	if err := service.events.Record(ctx, event); err != nil {
		service.logger.WarnContext(ctx, "revalidation_record_failed",
			slog.String("event_id", event.ID),
			slog.Any("error", err),
		)
	}
}
