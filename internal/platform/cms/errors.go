// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cms

import (
	"errors"
	"fmt"
)

// Kind classifies why a CMS call failed.
type Kind int

const (
	// KindTransport covers network failures and non-2xx responses other than 404.
	KindTransport Kind = iota + 1

	// KindValidation means the response did not match the expected schema.
	KindValidation

	// KindNotFound means the store answered 404 for a single-record lookup.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// ErrNotFound matches any [*Error] of [KindNotFound] via [errors.Is].
var ErrNotFound = errors.New("cms: content not found")

// Error is returned by every fetch operation in this package.
type Error struct {
	Kind     Kind
	Endpoint string

	// Field is the offending field path for validation errors, e.g. "contents[3].title".
	Field string

	// Status is the HTTP status when the store answered at all.
	Status int

	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindValidation:
		if e.Cause != nil {
			return fmt.Sprintf("cms: %s: invalid response at %q: %v", e.Endpoint, e.Field, e.Cause)
		}
		return fmt.Sprintf("cms: %s: invalid response at %q", e.Endpoint, e.Field)
	case KindNotFound:
		return fmt.Sprintf("cms: %s: not found", e.Endpoint)
	}

	if e.Cause != nil {
		return fmt.Sprintf("cms: %s: %v", e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("cms: %s: unexpected status %d", e.Endpoint, e.Status)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports NotFound-kind errors as [ErrNotFound].
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// IsKind reports whether err carries a CMS error of the given kind.
func IsKind(err error, kind Kind) bool {
	var cmsErr *Error
	return errors.As(err, &cmsErr) && cmsErr.Kind == kind
}

func transportError(endpoint string, status int, cause error) *Error {
	return &Error{Kind: KindTransport, Endpoint: endpoint, Status: status, Cause: cause}
}

func validationError(endpoint, field string, cause error) *Error {
	return &Error{Kind: KindValidation, Endpoint: endpoint, Field: field, Cause: cause}
}
