// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package uuidv7 generates the identifiers used for request correlation and
// token jti claims. Version 7 UUIDs lead with a millisecond timestamp, so
// they sort by creation time in logs and indexes.
package uuidv7

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string, degrading to a random v4 in the
// unlikely case the v7 generator errors.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
