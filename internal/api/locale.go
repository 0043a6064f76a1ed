// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/respond"
)

type localeView struct {
	Locale    locale.Locale   `json:"locale"`
	Default   locale.Locale   `json:"default"`
	Supported []locale.Locale `json:"supported"`
}

// NegotiateLocale handles GET /api/v1/locale.
// The result depends on Accept-Language, so it is never cached.
func NegotiateLocale(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Add("Vary", constants.HeaderAcceptLanguage)
	respond.OK(writer, localeView{
		Locale:    locale.Negotiate(request.Header.Get(constants.HeaderAcceptLanguage)),
		Default:   locale.Default,
		Supported: locale.All,
	})
}
