// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package validate checks request input at the boundary, before anything
// touches a store. A [Validator] accumulates every failed rule so the client
// sees all problems in one response instead of fixing them one at a time.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
)

// ErrInvalidJSON is the error for request bodies that fail to decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field errors through a chainable API. Not safe for
// concurrent use; build one per request.
type Validator struct {
	errs []apperr.FieldError
}

// Required rejects values that are empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "This field is required")
	}
	return v
}

// MinLen rejects values shorter than min, counted in Unicode characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.fail(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// MaxLen rejects values longer than max, counted in Unicode characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.fail(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range rejects integers outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.fail(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email rejects values net/mail cannot parse as an address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.fail(field, "Must be a valid email address")
	}
	return v
}

// HasErrors reports whether any rule in the chain has failed.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err terminates the chain: nil if everything passed, otherwise a single
// VALIDATION_ERROR carrying every accumulated field failure in order.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) fail(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
