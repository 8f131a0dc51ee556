// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package textfold normalizes arbitrary Unicode strings for loose matching.
//
// # Usage
//
// The employee list endpoint accepts a free-text name filter. Folding both
// sides of the comparison (query and stored name) makes the match insensitive
// to case and diacritics, so "Côté" is found by "cote".
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts a Unicode string into its folded comparison form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Collapses runs of whitespace into single spaces and trims the ends.
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Collapse whitespace
	return strings.Join(strings.Fields(result), " ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
