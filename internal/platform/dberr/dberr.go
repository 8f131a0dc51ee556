// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package dberr translates pgx errors into the apperr vocabulary at the
// store boundary, so SQL details never ride an error up to a handler.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
)

// ErrNotFound is returned whenever a queried row does not exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap classifies a database error. action names the store operation and is
// folded into the logged cause, never into the client message.
//
// The unique constraint in the database is the authoritative duplicate
// check: a service-layer pre-check can lose the race between two concurrent
// inserts, so SQLSTATE 23505 always comes back as Conflict here regardless
// of what the service saw earlier.
func Wrap(err error, action string) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound

	case isUniqueViolation(err):
		return apperr.Conflict("Record already exists").WithCause(fmt.Errorf("%s: %w", action, err))

	default:
		return apperr.Internal(fmt.Errorf("%s: %w", action, err))
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
