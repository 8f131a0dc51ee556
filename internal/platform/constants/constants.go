// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package constants collects the fixed values shared across layers: server
// timeouts, rate-limit tuning, auth claim/cookie names, header names, and the
// Redis key taxonomy. Anything configurable per deployment belongs in config
// instead.
package constants

import "time"

const (
	AppName    = "staffdesk-api"
	AppVersion = "0.1.0-dev"
)

// HTTP server timing.
const (
	// DefaultReadTimeout bounds reading a full request, body included.
	DefaultReadTimeout = 5 * time.Second

	// DefaultReadHeaderTimeout bounds reading just the header block and is
	// the first line of defense against slowloris clients.
	DefaultReadHeaderTimeout = 2 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is how long a keep-alive connection may sit unused.
	DefaultIdleTimeout = 120 * time.Second

	// GlobalRequestTimeout caps the whole request lifecycle, including every
	// store call made on the request's behalf. The Postgres statement
	// timeout is derived from it.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests when the
	// process receives a termination signal.
	ShutdownTimeout = 30 * time.Second
)

// Per-IP rate limiting.
const (
	// DefaultRateLimitRPS is the sustained request rate allowed per client IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the bucket depth above the sustained rate.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle client buckets are swept.
	RateLimitCleanupInterval = time.Minute

	// RateLimitClientTTL is the idle time after which a client's bucket is
	// forgotten.
	RateLimitClientTTL = 3 * time.Minute
)

// Authentication.
const (
	// AuthIssuer is the value of the JWT 'iss' claim.
	AuthIssuer = "staffdesk"

	// AccessTokenCookieName names the session cookie carrying the JWT.
	AccessTokenCookieName = "access_token"

	// AccessTokenCookiePath scopes the session cookie to the whole API.
	AccessTokenCookiePath = "/"
)

// Header names used by the middleware stack.
const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// Envelope keys written outside the respond package.
const (
	FieldError = "error"
	FieldCode  = "code"
)

// Redis key prefixes.
const (
	RedisPrefixRevokedToken = "auth:revoked_jti:"
)
