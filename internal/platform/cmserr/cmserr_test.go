// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmserr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/internal/platform/cmserr"
)

/*
TestWrap verifies the content store error to HTTP error mapping.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"not found", &cms.Error{Kind: cms.KindNotFound, Endpoint: "blogs/x"}, http.StatusNotFound, "NOT_FOUND", false},
		{"transport", &cms.Error{Kind: cms.KindTransport, Endpoint: "blogs", Status: 500}, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", true},
		{"validation", &cms.Error{Kind: cms.KindValidation, Endpoint: "blogs", Field: "contents[0].title"}, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", true},
		{"wrapped not found", fmt.Errorf("resolve: %w", &cms.Error{Kind: cms.KindNotFound, Endpoint: "book/x"}), http.StatusNotFound, "NOT_FOUND", false},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperr.As(cmserr.Wrap(tt.err, "Post"))
			require.NotNil(t, appErr)

			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.retryable, appErr.Retryable)
			assert.NotContains(t, appErr.Message, "blogs")
		})
	}
}

/*
TestWrap_Passthrough verifies nil and already classified errors are returned as-is.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, cmserr.Wrap(nil, "Post"))

	original := apperr.Unauthorized("nope")
	assert.Same(t, original, cmserr.Wrap(original, "Post"))
}

/*
TestWrap_KeepsCause verifies the store error stays reachable for logging.
*/
func TestWrap_KeepsCause(t *testing.T) {
	err := cmserr.Wrap(&cms.Error{Kind: cms.KindNotFound, Endpoint: "book/x"}, "Book")

	assert.ErrorIs(t, err, cms.ErrNotFound)
	assert.Equal(t, "Book not found", err.Error())
}
