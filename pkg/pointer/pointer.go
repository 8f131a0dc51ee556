// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package pointer removes the boilerplate of taking and dereferencing
// pointers to values, which comes up constantly with optional PATCH fields.
package pointer

// To returns a pointer to v. Handy for literals: pointer.To("name").
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, yielding the type's zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, yielding fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
