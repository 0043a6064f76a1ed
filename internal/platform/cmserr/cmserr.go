// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cmserr bridges content store errors and application errors.
package cmserr

import (
	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/cms"
)

// Wrap classifies a content store error into an [apperr.AppError].
//
// Not-found lookups become 404s naming resource. Transport and validation
// failures become retryable 502s; the raw cause is kept for logs only.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified by a lower layer
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Kind mapping
	switch {
	case cms.IsKind(err, cms.KindNotFound):
		notFound := apperr.NotFound(resource)
		notFound.Cause = err
		return notFound
	case cms.IsKind(err, cms.KindValidation):
		return apperr.Upstream("Content store returned an unexpected response", err)
	case cms.IsKind(err, cms.KindTransport):
		return apperr.Upstream("Content store is unavailable", err)
	default:
		return apperr.Internal(err)
	}
}
