// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package ctxkey holds the context keys the middleware stack writes and the
// handlers read. The key type is unexported so no other package can collide
// with these entries, even if it stores a value under the same string.
package ctxkey

type key string

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity carries the authenticated [sec.Identity], when present.
	KeyIdentity key = "identity"

	// KeyLogger carries the per-request [*slog.Logger].
	KeyLogger key = "logger"
)
