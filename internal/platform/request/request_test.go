// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	requestutil "github.com/taibuivan/techblog/internal/platform/request"
)

/*
TestID verifies content ids are accepted with or without a locale suffix and junk is rejected.
*/
func TestID(t *testing.T) {
	tests := []struct {
		path  string
		want  string
		valid bool
	}{
		{"/posts/rust-intro", "rust-intro", true},
		{"/posts/rust-intro-en", "rust-intro-en", true},
		{"/posts/a.b", "", false},
		{"/posts/" + strings.Repeat("x", 65), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				got string
				err error
			)
			router := chi.NewRouter()
			router.Get("/posts/{id}", func(_ http.ResponseWriter, request *http.Request) {
				got, err = requestutil.ID(request, "id")
			})
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		})
	}
}

/*
TestDecodeJSON verifies payload decoding, extra fields and malformed bodies.
*/
func TestDecodeJSON(t *testing.T) {
	var payload struct {
		API string `json:"api"`
		ID  string `json:"id"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"service":"blog","api":"blogs","id":"abc"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &payload))
	assert.Equal(t, "blogs", payload.API)
	assert.Equal(t, "abc", payload.ID)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"api":`))
	assert.Error(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &payload))
}
