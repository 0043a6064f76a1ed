// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/ctxutil"
	"github.com/taibuivan/techblog/internal/platform/respond"
)

// # Localization

// Locale resolves the URL parameter param into the request locale.
// An unsupported locale is a 404 so that /api/v1/fr/... never reaches a handler.
func Locale(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			l, ok := locale.Parse(chi.URLParam(request, param))
			if !ok {
				respond.Error(writer, request, apperr.NotFound("Locale"))
				return
			}

			ctx := ctxutil.WithLocale(request.Context(), l)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

/*
LocaleRedirect sends locale-less requests for the given sections to the
negotiated locale with a 307, keeping the query string.

	GET /api/v1/posts/abc?x=1  (Accept-Language: en)  ->  /api/v1/en/posts/abc?x=1
*/
func LocaleRedirect(prefix string, sections ...string) func(http.Handler) http.Handler {
	redirected := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		redirected[section] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			rest, found := strings.CutPrefix(request.URL.Path, prefix+"/")
			if !found {
				next.ServeHTTP(writer, request)
				return
			}

			section, _, _ := strings.Cut(rest, "/")
			if _, ok := redirected[section]; !ok {
				next.ServeHTTP(writer, request)
				return
			}

			l := locale.Negotiate(request.Header.Get(constants.HeaderAcceptLanguage))
			target := prefix + "/" + l.String() + "/" + rest
			if request.URL.RawQuery != "" {
				target += "?" + request.URL.RawQuery
			}

			writer.Header().Add("Vary", constants.HeaderAcceptLanguage)
			http.Redirect(writer, request, target, http.StatusTemporaryRedirect)
		})
	}
}
