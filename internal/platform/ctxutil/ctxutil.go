// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package ctxutil is the typed accessor layer over the per-request context
// values: request ID, logger, and resolved identity. Middleware writes them,
// handlers and services read them; nobody touches ctxkey directly.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/ndquang/staffdesk/internal/platform/ctxkey"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// WithRequestID attaches the correlation ID for this request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" when the request never went
// through the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// [slog.Default] so callers never have to nil-check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithIdentity attaches the authenticated caller.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity returns the authenticated caller, or nil for anonymous
// requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	if identity, ok := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity); ok {
		return identity
	}
	return nil
}
