// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Uniqueness Strategy
//
// Completion records and certificates rely on database unique constraints as
// the authoritative guard against duplicate writes. Two concurrent requests
// can both pass an application-level existence check; only one insert wins.
// Repositories use [IsUniqueViolation] to translate the loser's constraint
// violation into the same domain outcome as the pre-check failure.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edura-app/edura/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
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

	// 2. Duplicate-write mapping (SQLSTATE 23505)
	if IsUniqueViolation(err) {
		return apperr.Conflict(resource + " already exists")
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
