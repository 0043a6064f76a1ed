// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer to check query parameters and
// webhook payloads before any content store call is made.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/techblog/internal/platform/apperr"
)

var (
	// contentIDRegex matches CMS content ids: letters, digits, hyphens and underscores.
	contentIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	// monthRegex matches an archive month in "YYYY-MM" form.
	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// ContentID fails if a non-empty value is not a valid CMS content id.
//
// Empty values pass; chain [Validator.Required] when the id is mandatory.
func (v *Validator) ContentID(field, value string) *Validator {
	if value != "" && !contentIDRegex.MatchString(value) {
		v.add(field, "Must be a valid content id")
	}
	return v
}

// Month fails if a non-empty value is not an archive month ("YYYY-MM").
func (v *Validator) Month(field, value string) *Validator {
	if value != "" && !monthRegex.MatchString(value) {
		v.add(field, "Must be a month in YYYY-MM format")
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("path", !strings.HasPrefix(path, "/"), "Must start with /")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
