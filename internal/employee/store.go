// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package employee

import "context"

// Store defines the data access contract for employee records.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresStore]). Tests use an
// in-memory fake.
type Store interface {
	// FindByID returns the record with the given ID.
	//
	// Returns [apperr.NotFound] if the record does not exist.
	FindByID(ctx context.Context, id int64) (*Employee, error)

	// FindByEmail returns the record with the given email.
	//
	// Returns [apperr.NotFound] if no record carries this email.
	FindByEmail(ctx context.Context, email string) (*Employee, error)

	// Create persists a brand-new record and fills in ID and CreatedAt.
	//
	// Returns [apperr.Conflict] if the email's unique constraint fails —
	// the store's answer is authoritative over any service-layer pre-check.
	Create(ctx context.Context, e *Employee) error

	// Update replaces the record's mutable fields (name, email, password
	// hash, level). CreatedAt is never touched.
	//
	// Returns [apperr.NotFound] if the record does not exist and
	// [apperr.Conflict] on an email collision.
	Update(ctx context.Context, e *Employee) error

	// Delete removes the record.
	//
	// Returns [apperr.NotFound] if the record does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns a page of records ordered by ID plus the total count.
	List(ctx context.Context, f Filter, limit, offset int) ([]*Employee, int, error)
}
