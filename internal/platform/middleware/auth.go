// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package middleware — identity resolution for the Staffdesk API.
//
// # Architecture
//
// The resolver is the single synchronous gate every protected endpoint passes
// through. It extracts a candidate token, verifies it, and re-reads the
// subject's record from the store — exactly one lookup per request, no
// caching. Freshness is traded for latency on purpose: a deleted or demoted
// account loses access on its very next request, not at token expiry.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/constants"
	"github.com/ndquang/staffdesk/internal/platform/ctxutil"
	"github.com/ndquang/staffdesk/internal/platform/respond"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `auth` service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*sec.Claims, error)
}

// IdentitySource loads the current record behind a token subject.
//
// Returns [apperr.NotFound] when the subject no longer exists in the store.
type IdentitySource interface {
	ResolveSubject(ctx context.Context, email string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the access token, then resolves the
// subject against the store.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header first.
//  2. Failing that, check the 'access_token' cookie.
//  3. If neither is present, the request proceeds as anonymous
//     ([RequireIdentity] gates the protected routes).
//  4. Verify the token via [TokenVerifier]; rejected tokens answer 401 with a
//     generic message, while the precise reason is logged server-side only.
//  5. Load the subject's record via [IdentitySource]; a stale subject (record
//     since deleted) also answers 401.
//  6. Inject the resolved [*sec.Identity] into the request context.
func Authenticate(verifier TokenVerifier, source IdentitySource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenString, found := ExtractToken(request)
			if !found {
				next.ServeHTTP(writer, request)
				return
			}

			logger := ctxutil.GetLogger(request.Context())

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(request.Context(), tokenString)
			if err != nil {
				// The reason (expired vs forged vs revoked) stays in the logs.
				logger.WarnContext(request.Context(), "token_rejected",
					slog.String("reason", err.Error()),
				)
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Subject Resolution ─────────────────────────────────────────
			identity, err := source.ResolveSubject(request.Context(), claims.Subject())
			if err != nil {
				if apperr.As(err) != nil && apperr.As(err).HTTPStatus == http.StatusNotFound {
					// Token is cryptographically valid but its subject is gone.
					logger.WarnContext(request.Context(), "token_subject_stale",
						slog.String("subject", claims.Subject()),
					)
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireIdentity blocks requests that did not resolve an identity.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// ExtractToken locates a candidate token on the request.
//
// The Authorization header takes precedence over the cookie so API clients
// can override a stale browser cookie.
func ExtractToken(request *http.Request) (token string, found bool) {
	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	cookie, err := request.Cookie(constants.AccessTokenCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// GetIdentity retrieves the resolved [*sec.Identity] from the request context.
// Returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	return ctxutil.GetIdentity(ctx)
}
