// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package authz implements the per-endpoint authorization gates.
//
// # Architecture
//
// Gates are pure functions over a resolved identity — not framework
// decorators. Handlers compose them explicitly after the identity resolver
// has run, which keeps the rules trivially unit-testable and makes every
// endpoint's policy readable at its call site.
//
// Authorization never runs without a resolved identity: a nil identity is a
// programming error upstream and is answered with Unauthorized, not Forbidden.
package authz

import (
	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// Require passes only if the identity's level meets or exceeds minLevel.
//
// # Returns
//   - nil when identity.Level >= minLevel.
//   - [apperr.Forbidden] otherwise.
func Require(identity *sec.Identity, minLevel sec.Level) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !identity.Level.AtLeast(minLevel) {
		return apperr.Forbidden("Insufficient privilege level")
	}
	return nil
}

// CanAccess passes if the identity owns the resource or holds staff privilege.
//
// # Rule
//
// Access is granted when identity.Level >= LevelStaff, OR when the identity's
// own record is the resource (identity.ID == resourceOwnerID) — regardless of
// level in both cases.
func CanAccess(identity *sec.Identity, resourceOwnerID int64) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if identity.Level.AtLeast(sec.LevelStaff) || identity.ID == resourceOwnerID {
		return nil
	}
	return apperr.Forbidden("You do not have access to this record")
}
