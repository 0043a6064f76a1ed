// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/ctxutil"
)

// Cache status values of the X-Cache header.
const (
	StatusHit  = "HIT"
	StatusMiss = "MISS"
)

// recorder tees the response body while passing it through.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

/*
Middleware serves GET requests from store and stores successful responses for ttl.

Only 200 responses are cached, and only when the handler did not mark them
Cache-Control no-store. A failing store never fails the request: the error is
logged and the request goes to the handler.
*/
func Middleware(store Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method != http.MethodGet {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			key := Key(request.URL.Path, request.URL.RawQuery)

			// 1. Serve from the store when possible
			entry, found, err := store.Get(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "cache_read_failed", slog.String("key", key), slog.Any("error", err))
			}
			if found {
				writer.Header().Set("Content-Type", entry.ContentType)
				writer.Header().Set(constants.HeaderXCache, StatusHit)
				writer.WriteHeader(http.StatusOK)
				_, _ = writer.Write(entry.Body)
				return
			}

			// 2. Render and remember the response
			writer.Header().Set(constants.HeaderXCache, StatusMiss)
			rec := &recorder{ResponseWriter: writer}
			next.ServeHTTP(rec, request)

			if rec.status != http.StatusOK || rec.body.Len() == 0 || noStore(writer.Header()) {
				return
			}

			fresh := &Entry{ContentType: writer.Header().Get("Content-Type"), Body: rec.body.Bytes()}
			if err := store.Set(ctx, key, fresh, ttl); err != nil {
				logger.WarnContext(ctx, "cache_write_failed", slog.String("key", key), slog.Any("error", err))
			}
		})
	}
}

func noStore(header http.Header) bool {
	for _, directive := range strings.Split(header.Get(constants.HeaderCacheControl), ",") {
		switch strings.ToLower(strings.TrimSpace(directive)) {
		case constants.CacheControlNoStore, "private":
			return true
		}
	}
	return false
}
