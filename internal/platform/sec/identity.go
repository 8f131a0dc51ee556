// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package sec

// # Privilege Levels

// Level represents the numeric privilege rank of an employee account.
//
// Levels form a total order from 0 (lowest) to 5 (highest). Authorization is
// purely numeric: no role names, just >= comparisons. In practice the API only
// ever gates on level 0 or 1, but the full 0..5 range is persisted so future
// intermediate privileges need no schema change.
type Level int

const (
	// LevelMin is the default privilege for a freshly registered account.
	LevelMin Level = 0

	// LevelStaff is the minimum privilege required for cross-account
	// operations (listing, deleting, touching records you do not own).
	LevelStaff Level = 1

	// LevelMax is the highest assignable privilege.
	LevelMax Level = 5
)

// AtLeast checks if the level meets or exceeds the required target level.
//
// # Why numeric comparison?
//
// Using a plain >= keeps access decisions to a single comparison instead of
// nested IF/SWITCH statements over named roles.
func (l Level) AtLeast(target Level) bool {
	return l >= target
}

// Valid reports whether the level is within the assignable 0..5 range.
func (l Level) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

// Identity is the request-scoped view of an employee record used for
// authorization decisions.
//
// # Lifecycle
//
// It is created per-request by the identity resolver after the token's subject
// has been re-verified against the store, and discarded when the request
// completes. It is never cached across requests: a deleted or demoted account
// loses access on its very next request, not at token expiry.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Level Level
}
