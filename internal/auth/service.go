// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package auth implements the session lifecycle: registration, login,
// logout, and token refresh.
//
// # Architecture
//
// The service orchestrates the credential hasher, the token issuer, and the
// employee store. It is technology-agnostic and does not know about HTTP;
// cookies and headers are the handler's concern.
package auth

import (
	"context"
	"time"

	"github.com/ndquang/staffdesk/internal/auth/revocation"
	"github.com/ndquang/staffdesk/internal/employee"
	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// TokenProvider defines the contract for issuing and verifying access tokens.
type TokenProvider interface {
	// Issue creates a signed access token for the given subject (email).
	Issue(subject string) (string, error)

	// Verify checks signature integrity first, then expiry, and returns the
	// claims. Errors are the sec package sentinels.
	Verify(tokenString string) (*sec.Claims, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}

// Service implements the session lifecycle: register, login, logout,
// refresh, and the per-request token verification behind all of them.
type Service struct {
	employees   employee.Store
	hasher      *sec.Hasher
	tokens      TokenProvider
	revocations revocation.Store
}

// NewService constructs a new [Service] with its dependencies.
func NewService(employees employee.Store, hasher *sec.Hasher, tokens TokenProvider, revocations revocation.Store) *Service {
	return &Service{
		employees:   employees,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
	}
}

// TokenTTL returns the lifetime of issued access tokens.
func (service *Service) TokenTTL() time.Duration {
	return service.tokens.TTL()
}

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register hashes the password and persists a brand new account at level 0.
//
// # Business Rules
//   - Emails must be unique. The FindByEmail pre-check gives a friendly
//     error message, but the store's unique constraint is the authoritative
//     check: a race between two concurrent registrations is resolved by the
//     store and still surfaces as Conflict.
//   - New accounts always start at the minimum privilege level.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*employee.Employee, error) {
	email := employee.NormalizeEmail(input.Email)

	// ── 1. Uniqueness Pre-Check (optimization, not a guarantee) ───────────

	if _, err := service.employees.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 2. Credential Hashing ─────────────────────────────────────────────

	// The plaintext never leaves this scope: it is hashed here and dropped.
	hash, err := service.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	record := &employee.Employee{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Level:        sec.LevelMin,
	}

	if err := service.employees.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// LoginResult represents a successfully established session.
type LoginResult struct {
	AccessToken string
	Employee    *employee.Employee
}

// Login validates credentials and issues an access token.
//
// # Flow
//  1. Lookup by email — an unknown email is NotFound (the API's observed
//     contract distinguishes unknown account from wrong password).
//  2. Verify the password hash; mismatch is Unauthorized with a generic
//     message that does not reveal which part failed.
//  3. Issue a fresh access token for the email subject.
func (service *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	record, err := service.employees.FindByEmail(ctx, employee.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !service.hasher.CheckPasswordHash(password, record.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.Issue(record.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{AccessToken: token, Employee: record}, nil
}

// Logout revokes the presented token, if any.
//
// The jti is denylisted for exactly the token's remaining lifetime, after
// which the entry expires on its own. Logout is idempotent: an absent,
// expired, or already-revoked token is still a successful logout.
func (service *Service) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}

	claims, err := service.tokens.Verify(tokenString)
	if err != nil {
		// Nothing worth revoking.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	return service.revocations.Revoke(ctx, claims.ID, remaining)
}

// Refresh issues a new token for an already-verified subject without
// re-checking the password. The caller must have resolved the identity
// through the standard token gate first.
func (service *Service) Refresh(ctx context.Context, subject string) (string, error) {
	token, err := service.tokens.Issue(subject)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// VerifyToken implements the middleware's TokenVerifier.
//
// A token must pass both the cryptographic check and the revocation check.
// A revocation-store outage fails closed: better to reject a valid token
// than to accept a revoked one.
func (service *Service) VerifyToken(ctx context.Context, tokenString string) (*sec.Claims, error) {
	claims, err := service.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := service.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, revocation.ErrRevoked
	}

	return claims, nil
}
