// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package sec holds the cryptographic pieces of the API: password hashing
// and JWT issuance/verification. Domain services receive them through small
// interfaces and never touch key material or hash parameters themselves.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndquang/staffdesk/pkg/uuidv7"
)

// Token rejection reasons.
//
// # Usage
//
// The resolver logs the specific reason server-side but always answers the
// client with a generic 401. Never put these messages in a response body.
var (
	// ErrInvalidSignature reports a token whose signature does not match the
	// signing secret. Checked before any claim is inspected, so forged claims
	// are never trusted.
	ErrInvalidSignature = errors.New("sec: token signature invalid")

	// ErrExpired reports a structurally valid, correctly signed token whose
	// exp claim is in the past.
	ErrExpired = errors.New("sec: token expired")

	// ErrMalformed reports a token that could not be parsed at all.
	ErrMalformed = errors.New("sec: token malformed")
)

// Claims represents the payload embedded inside a Staffdesk access token.
//
// The subject is the account's email address, and the jti (RegisteredClaims.ID)
// uniquely identifies the token so a single token can be revoked at logout
// without affecting the account's other tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Subject returns the token's subject (the account email).
func (c *Claims) Subject() string { return c.RegisteredClaims.Subject }

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Key Management
//
// The symmetric secret is process-wide configuration, loaded once at startup
// and immutable thereafter. Rotating it invalidates every outstanding token;
// with a 60-minute default lifetime that costs at most one re-login.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService builds a TokenService around the HMAC-SHA256 secret.
// An empty secret or non-positive ttl is refused outright.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token TTL must be positive")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the lifetime of tokens issued by this service.
func (service *TokenService) TTL() time.Duration { return service.ttl }

// Issue creates a new signed access token for the given subject (email).
func (service *TokenService) Issue(subject string) (string, error) {
	currentTime := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidv7.New(),
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a JWT string.
//
// # Order of Checks
//
// Signature integrity is verified before any claim is inspected (the jwt/v5
// parser enforces this), then expiry. The returned error is always one of the
// package sentinels so callers can log a precise rejection reason.
func (service *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}
