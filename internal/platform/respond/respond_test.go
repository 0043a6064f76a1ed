// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/respond"
	"github.com/taibuivan/techblog/pkg/pagination"
)

/*
TestError_Envelope verifies status codes and the retryable flag of error responses.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"not found", apperr.NotFound("Post"), http.StatusNotFound, "NOT_FOUND", false},
		{"upstream", apperr.Upstream("Content store is unavailable", errors.New("dial tcp")), http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", true},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])

			retryable, _ := body["retryable"].(bool)
			assert.Equal(t, tt.retryable, retryable)
			assert.NotContains(t, recorder.Body.String(), "dial tcp")
		})
	}
}

/*
TestPaginated verifies the data and meta blocks of list responses.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(2, 10, 25))

	var body struct {
		Data []string        `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []string{"a"}, body.Data)
	assert.Equal(t, 3, body.Meta.TotalPages)
}
