// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/techblog/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. A missing relation means migrations did not run
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && (pgError.Code == pgerrcode.UndefinedTable || pgError.Code == pgerrcode.InvalidSchemaName) {
		appError := apperr.ServiceUnavailable("Database schema is not ready")
		appError.Cause = err
		return appError
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
