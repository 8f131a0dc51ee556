// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package employee implements the employee records domain.
//
// An employee record doubles as the account behind authentication: the token
// subject is the record's email, and the record's level drives every
// authorization decision.
package employee

import (
	"time"

	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// Employee represents a single staff record.
//
// # Rules
//   - Email is unique (enforced by the store's constraint, not by this layer).
//   - PasswordHash is produced exclusively by [sec.Hasher] and is excluded
//     from every JSON response via the struct tag — sanitization is uniform,
//     not per-endpoint.
//   - Level is an integer privilege rank 0..5.
type Employee struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Level        sec.Level `json:"level"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity returns the request-scoped authorization view of the record.
func (e *Employee) Identity() *sec.Identity {
	return &sec.Identity{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Level: e.Level,
	}
}

// Filter holds the parameters for a paginated employee search.
type Filter struct {
	Query string // Folded substring match against the employee name.
}

// Global field names for validation
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLevel    = "level"
)

// PasswordMinLen is the minimum accepted password length.
const PasswordMinLen = 8
