// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package revocation tracks access tokens that were invalidated before their
// natural expiry.
//
// # Security Concept
//
// Access tokens are stateless and remain cryptographically valid until their
// exp claim passes, so a bare "clear the cookie" logout is purely cosmetic.
// The revocation set closes that gap: logout denylists the token's jti for
// exactly the token's remaining lifetime, after which the entry expires on
// its own — the set never grows beyond the population of live tokens.
package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrRevoked reports a token that was explicitly invalidated at logout.
var ErrRevoked = errors.New("revocation: token has been revoked")

// Store defines the contract for the jti denylist.
type Store interface {
	// Revoke denylists a token ID for the given duration.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked reports whether a token ID is currently denylisted.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
