// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

Every request passes through the same decorator stack before a domain
handler runs:

  - RequestID: correlation ID generation for log tracing.
  - StructuredLogger: per-request slog sub-logger plus an access log line.
  - RateLimit: per-IP token bucket.
  - PanicRecovery: converts panics into clean 500 responses.
  - Authenticate: token extraction, verification, and store-backed identity
    resolution (see auth.go).
  - CORS: origin allow-listing with credential support.

Domain handlers never deal with any of this directly; they read the request
ID, logger, and identity out of the context.
*/
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndquang/staffdesk/internal/platform/constants"
	"github.com/ndquang/staffdesk/internal/platform/ctxutil"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request.
//
// A client-supplied X-Request-ID is honored so IDs survive proxy hops;
// otherwise a fresh UUIDv7 is minted, which keeps IDs time-sortable in log
// storage. The ID is echoed back on the response for client-side correlation.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = newRequestID()
			}

			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Entropy exhaustion; a random v4 keeps requests traceable.
		return uuid.New().String()
	}
	return id.String()
}

// # Access Logging

// responseCapture records the status code written by downstream handlers.
type responseCapture struct {
	http.ResponseWriter
	status int
}

func (capture *responseCapture) WriteHeader(code int) {
	capture.status = code
	capture.ResponseWriter.WriteHeader(code)
}

// StructuredLogger writes one access-log line per finished request and seeds
// the context with a request-scoped sub-logger.
//
// The log level tracks the response class: 2xx/3xx at Info, 4xx at Warn,
// 5xx at Error, so alerting can key off level alone.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startedAt := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			capture := &responseCapture{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(capture, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case capture.status >= 500:
				level = slog.LevelError
			case capture.status >= 400:
				level = slog.LevelWarn
			}

			attrs := []any{
				slog.Int("status", capture.status),
				slog.Int64("latency_ms", time.Since(startedAt).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if identity := ctxutil.GetIdentity(ctx); identity != nil {
				attrs = append(attrs, slog.Int64("employee_id", identity.ID))
			}

			requestLogger.Log(ctx, level, "http_request_finished", attrs...)
		})
	}
}

// # Reliability & Safety

// PanicRecovery converts downstream panics into 500 responses.
//
// The stack trace goes to the structured log; the client sees only a generic
// message.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 2048)
				length := runtime.Stack(stack, false)

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stack[:length])),
				)

				writeError(writer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the slice of configuration the CORS middleware needs.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigin(origin string) bool
}

// CORS answers cross-origin requests for allow-listed origins.
//
// Credentials are enabled because the session rides in a cookie, which also
// means the wildcard origin can never be used: the matched origin is echoed
// back verbatim. Development mode allows any origin.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				// Same-origin or non-browser client.
				next.ServeHTTP(writer, request)
				return
			}

			if cfg.IsDevelopment() || cfg.AllowedOrigin(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Helpers

// RealIP extracts the client IP, preferring the usual proxy headers over the
// socket address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		// First hop is the original client.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// writeError emits a minimal JSON error for failures that happen before the
// request reaches the enveloped response path.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
