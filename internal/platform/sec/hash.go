// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing with a tunable work factor.
// bcrypt embeds the salt in its output, so nothing but the hash string needs
// storing, and comparison runs in constant time.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher at the given bcrypt cost. Zero or anything
// below bcrypt.MinCost falls back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// HashPassword produces a bcrypt hash of the plain-text password. The
// plain text is never stored or logged anywhere.
func (h *Hasher) HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash reports whether the plain-text password matches the
// stored hash. Malformed hash strings fail closed: any bcrypt parse error
// yields false, never a panic or an error surfaced to the caller.
func (h *Hasher) CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
