// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package requestutil pulls typed data out of incoming requests: JSON
// bodies, record IDs from the URL, and the authenticated identity from the
// context. Handlers use it instead of touching chi or the context directly.
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/ctxutil"
	"github.com/ndquang/staffdesk/internal/platform/sec"
	"github.com/ndquang/staffdesk/internal/platform/validate"
)

// DecodeJSON decodes the request body into target, collapsing every decode
// failure into [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// IntID reads the named URL parameter as a positive record ID.
//
// Garbage input maps to [apperr.NotFound]: a non-numeric ID can never
// address an existing record, and answering 404 keeps routing internals out
// of the error.
func IntID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.NotFound("Record")
	}
	return id, nil
}

// Identity returns the authenticated caller, or nil on anonymous requests.
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

// RequiredIdentity returns the authenticated caller, or
// [apperr.Unauthorized] when the request is anonymous.
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
