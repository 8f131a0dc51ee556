// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/sec"
	"github.com/ndquang/staffdesk/internal/platform/validate"
)

// Service implements the employee record use cases.
//
// It is pass-through glue over the store plus boundary validation; the only
// domain rule it owns is that plaintext passwords are hashed before they ever
// reach the store and never appear in logs or responses.
type Service struct {
	store  Store
	hasher *sec.Hasher
	logger *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(store Store, hasher *sec.Hasher, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// ResolveSubject loads the current record behind a token subject and returns
// its authorization view. It implements the middleware's IdentitySource and
// performs exactly one store lookup per call.
func (service *Service) ResolveSubject(ctx context.Context, email string) (*sec.Identity, error) {
	record, err := service.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return record.Identity(), nil
}

// Get returns a single record by ID.
func (service *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return service.store.FindByID(ctx, id)
}

// List returns a page of records and the total count.
func (service *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Employee, int, error) {
	return service.store.List(ctx, f, limit, offset)
}

// CreateInput holds the data required to create a record.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Level    sec.Level
}

// Create validates, hashes, and persists a new employee record.
//
// # Returns
//   - [apperr.ValidationError] before any store call on malformed input.
//   - [apperr.Conflict] on a duplicate email (the store's unique constraint
//     is the authoritative check).
func (service *Service) Create(ctx context.Context, input CreateInput) (*Employee, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		Range(FieldLevel, int(input.Level), int(sec.LevelMin), int(sec.LevelMax))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := service.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record := &Employee{
		Name:         input.Name,
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Level:        input.Level,
	}

	if err := service.store.Create(ctx, record); err != nil {
		return nil, err
	}

	service.logger.Info("employee_created",
		slog.Int64("employee_id", record.ID),
		slog.Int("level", int(record.Level)),
	)
	return record, nil
}

// PatchInput holds the optional fields of a partial update.
// A nil field means "leave unchanged".
type PatchInput struct {
	Name     *string
	Email    *string
	Password *string
	Level    *sec.Level
}

// Empty reports whether the patch carries no effective change.
func (p PatchInput) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Level == nil
}

// Patch applies a partial update to a record.
//
// An empty effective changeset is rejected before any store access, so a
// no-op PATCH never mutates the store.
func (service *Service) Patch(ctx context.Context, id int64, input PatchInput) (*Employee, error) {
	if input.Empty() {
		return nil, apperr.ValidationError("No data to update")
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 200)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).Email(FieldEmail, *input.Email)
	}
	if input.Password != nil {
		validator.MinLen(FieldPassword, *input.Password, PasswordMinLen)
	}
	if input.Level != nil {
		validator.Range(FieldLevel, int(*input.Level), int(sec.LevelMin), int(sec.LevelMax))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record, err := service.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		record.Name = *input.Name
	}
	if input.Email != nil {
		record.Email = NormalizeEmail(*input.Email)
	}
	if input.Password != nil {
		hash, err := service.hasher.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		record.PasswordHash = hash
	}
	if input.Level != nil {
		record.Level = *input.Level
	}

	if err := service.store.Update(ctx, record); err != nil {
		return nil, err
	}

	service.logger.Info("employee_patched", slog.Int64("employee_id", id))
	return record, nil
}

// ReplaceInput holds the full set of mutable fields for a PUT.
type ReplaceInput struct {
	Name     string
	Email    string
	Password string
	Level    sec.Level
}

// Replace performs a full replace of a record's mutable fields.
// CreatedAt is preserved across the replace.
func (service *Service) Replace(ctx context.Context, id int64, input ReplaceInput) (*Employee, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		Range(FieldLevel, int(input.Level), int(sec.LevelMin), int(sec.LevelMax))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	record, err := service.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := service.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	record.Name = input.Name
	record.Email = NormalizeEmail(input.Email)
	record.PasswordHash = hash
	record.Level = input.Level

	if err := service.store.Update(ctx, record); err != nil {
		return nil, err
	}

	service.logger.Info("employee_replaced", slog.Int64("employee_id", id))
	return record, nil
}

// Delete removes a record.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.store.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("employee_deleted", slog.Int64("employee_id", id))
	return nil
}

// NormalizeEmail lowercases an email so lookups and uniqueness are
// case-insensitive regardless of how the client typed the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
