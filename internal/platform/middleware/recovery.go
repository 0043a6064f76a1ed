// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/ctxkey"
	"github.com/taibuivan/techblog/internal/platform/respond"
)

// # Reliability & Safety

const stackSize = 4096

// PanicRecovery turns a handler panic into a 500 and logs the stack.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stackTrace := make([]byte, stackSize)
				length := runtime.Stack(stackTrace, false)

				requestLogger := logger
				if scoped, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok {
					requestLogger = scoped
				}
				requestLogger.ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}
