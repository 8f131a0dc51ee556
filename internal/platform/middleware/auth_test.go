// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/staffdesk/internal/platform/apperr"
	"github.com/ndquang/staffdesk/internal/platform/middleware"
	"github.com/ndquang/staffdesk/internal/platform/sec"
)

// fakeVerifier returns a canned claims/error pair and records the token it saw.
type fakeVerifier struct {
	claims    *sec.Claims
	err       error
	seenToken string
}

func (f *fakeVerifier) VerifyToken(ctx context.Context, tokenString string) (*sec.Claims, error) {
	f.seenToken = tokenString
	return f.claims, f.err
}

// fakeSource resolves every subject to a fixed identity, or fails.
type fakeSource struct {
	identity *sec.Identity
	err      error
}

func (f *fakeSource) ResolveSubject(ctx context.Context, email string) (*sec.Identity, error) {
	return f.identity, f.err
}

func claimsFor(subject string) *sec.Claims {
	claims := &sec.Claims{}
	claims.RegisteredClaims.Subject = subject
	return claims
}

// echoIdentity is a terminal handler that reports the resolved identity.
func echoIdentity(t *testing.T, got **sec.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*got = middleware.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_NoToken verifies that a request without any credentials
passes through as anonymous instead of being rejected outright.
*/
func TestAuthenticate_NoToken(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{}
	source := &fakeSource{}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/employee/1", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, got)
	assert.Empty(t, verifier.seenToken, "verifier must not run without a token")
}

/*
TestAuthenticate_ValidBearer verifies the full resolution path: header token,
verified claims, store lookup, identity in context.
*/
func TestAuthenticate_ValidBearer(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{claims: claimsFor("alice@example.com")}
	source := &fakeSource{identity: &sec.Identity{ID: 7, Email: "alice@example.com", Level: sec.LevelStaff}}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	request := httptest.NewRequest("GET", "/employee/7", nil)
	request.Header.Set("Authorization", "Bearer sometoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "sometoken", verifier.seenToken)
}

/*
TestAuthenticate_CookieFallback verifies the cookie is used when no
Authorization header is present.
*/
func TestAuthenticate_CookieFallback(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{claims: claimsFor("alice@example.com")}
	source := &fakeSource{identity: &sec.Identity{ID: 7, Email: "alice@example.com"}}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	request := httptest.NewRequest("GET", "/employee/7", nil)
	request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookietoken"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, got)
	assert.Equal(t, "cookietoken", verifier.seenToken)
}

/*
TestAuthenticate_HeaderBeatsCookie verifies the documented precedence: an API
client's explicit header wins over a stale browser cookie.
*/
func TestAuthenticate_HeaderBeatsCookie(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{claims: claimsFor("alice@example.com")}
	source := &fakeSource{identity: &sec.Identity{ID: 7}}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	request := httptest.NewRequest("GET", "/employee/7", nil)
	request.Header.Set("Authorization", "Bearer headertoken")
	request.AddCookie(&http.Cookie{Name: "access_token", Value: "cookietoken"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "headertoken", verifier.seenToken)
}

/*
TestAuthenticate_RejectedToken verifies that any verification failure answers
a generic 401, never the specific reason.
*/
func TestAuthenticate_RejectedToken(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{err: sec.ErrExpired}
	source := &fakeSource{}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	request := httptest.NewRequest("GET", "/employee/7", nil)
	request.Header.Set("Authorization", "Bearer expiredtoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, got)
	assert.NotContains(t, recorder.Body.String(), "expired token signature")
	assert.Contains(t, recorder.Body.String(), "Invalid or expired token")
}

/*
TestAuthenticate_StaleSubject verifies that a valid token whose subject no
longer exists in the store is treated as unauthorized, not as a 404.
*/
func TestAuthenticate_StaleSubject(t *testing.T) {
	var got *sec.Identity

	verifier := &fakeVerifier{claims: claimsFor("ghost@example.com")}
	source := &fakeSource{err: apperr.NotFound("Employee")}
	handler := middleware.Authenticate(verifier, source)(echoIdentity(t, &got))

	request := httptest.NewRequest("GET", "/employee/7", nil)
	request.Header.Set("Authorization", "Bearer validtoken")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, got)
}

/*
TestRequireIdentity verifies the anonymous-blocking gate.
*/
func TestRequireIdentity(t *testing.T) {
	handler := middleware.RequireIdentity(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	// Anonymous request is blocked.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/employees", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestExtractToken covers the token location rules.
*/
func TestExtractToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		cookie    string
		wantToken string
		wantFound bool
	}{
		{"bearer_header", "Bearer abc123", "", "abc123", true},
		{"lowercase_scheme", "bearer abc123", "", "abc123", true},
		{"wrong_scheme", "Basic abc123", "", "", false},
		{"empty_bearer", "Bearer ", "", "", false},
		{"cookie_only", "", "cookievalue", "cookievalue", true},
		{"nothing", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}

			token, found := middleware.ExtractToken(request)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
