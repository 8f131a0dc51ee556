// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package pagination implements page/limit navigation for list endpoints.
//
// Callers parse the incoming query string with [FromRequest], feed
// [Params.Offset] to their SQL query, and attach a [Meta] built by [NewMeta]
// to the response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
	// DefaultLimit is the page size used when the client sends none.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Params is a sanitized page/limit pair. Construct it with [FromRequest] to
// get clamping; a zero or hand-built Params is still safe to use.
type Params struct {
	Page  int
	Limit int
}

// Offset converts the page number into a SQL OFFSET.
func (p Params) Offset() int {
	if p.Page <= DefaultPage {
		return 0
	}
	return (p.Page - DefaultPage) * p.Limit
}

// Meta describes the full result set a single page was cut from.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds list-response metadata, rounding TotalPages up so a partial
// final page still counts.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads the "page" and "limit" query parameters.
//
// Anything unusable falls back to the defaults: non-numeric or missing values,
// pages below 1, and limits outside (0, MaxLimit]. Out-of-range limits
// deliberately reset to DefaultLimit rather than clamping to MaxLimit, so a
// client asking for limit=5000 cannot creep up to the ceiling.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page := atoiOr(query.Get("page"), DefaultPage)
	if page < DefaultPage {
		page = DefaultPage
	}

	limit := atoiOr(query.Get("limit"), DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
