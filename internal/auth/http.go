// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

/*
Package auth — HTTP delivery layer for the session lifecycle.

It implements the gateway for the authentication lifecycle, from account
creation to logout.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service:
  - Protocol: Standard RESTful JSON interface.
  - Security: Cookie-only token delivery. The access token is set as an
    HttpOnly cookie and never appears in a JSON body (XSS mitigation).
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, cookies, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndquang/staffdesk/internal/employee"
	"github.com/ndquang/staffdesk/internal/platform/constants"
	"github.com/ndquang/staffdesk/internal/platform/middleware"
	requestutil "github.com/ndquang/staffdesk/internal/platform/request"
	"github.com/ndquang/staffdesk/internal/platform/respond"
	"github.com/ndquang/staffdesk/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the session HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler wraps the auth service in its HTTP surface.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the session endpoints on the given router.
//
// # Endpoints
//   - POST /register      : Creates a new account (public).
//   - POST /login         : Authenticates and sets the session cookie (public).
//   - POST /logout        : Revokes the token and clears the cookie (public).
//   - POST /refresh-token : Reissues the token (requires a valid token).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireIdentity)
		protected.Post("/refresh-token", handler.refreshToken)
	})
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
register handles the creation of a new account.

POST /register

Description: Validates input, checks for email conflicts, and persists a new
level-0 employee record.

Response:
  - 201: Created record (password hash stripped by the entity's JSON tags)
  - 400: Email already registered
  - 422: Validation failure (rejected before any store call)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(employee.FieldName, input.Name).
		MaxLen(employee.FieldName, input.Name, 200).
		Required(employee.FieldEmail, input.Email).
		Email(employee.FieldEmail, input.Email).
		Required(employee.FieldPassword, input.Password).
		MinLen(employee.FieldPassword, input.Password, employee.PasswordMinLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

/*
login authenticates an account and establishes a session.

POST /login

Description: Verifies credentials and delivers the access token exclusively
as an HttpOnly cookie. The token is never placed in the JSON body.

Response:
  - 200: Sanitized profile plus cookie metadata
  - 401: Password mismatch
  - 404: Unknown email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(employee.FieldEmail, input.Email).
		Required(employee.FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setAccessTokenCookie(writer, result.AccessToken)

	respond.OK(writer, map[string]any{
		"user":       result.Employee,
		"token_type": "Bearer",
		"expires_in": int(handler.authService.TokenTTL() / time.Second),
	})
}

/*
logout terminates the current session.

POST /logout

Description: Denylists the presented token's jti (if any) and clears the
session cookie. Idempotent: logging out without a valid token still succeeds.

Response:
  - 204: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token, found := middleware.ExtractToken(request); found {
		// Best effort: a failed revocation must not block clearing the cookie.
		_ = handler.authService.Logout(request.Context(), token)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     constants.AccessTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.NoContent(writer)
}

/*
refreshToken reissues the access token for the current subject.

POST /refresh-token

Description: The identity resolver has already verified the presented token
(header or cookie) and re-read the subject from the store. A fresh token with
a new expiry is issued without re-checking the password and delivered via the
session cookie.

Response:
  - 200: Cookie metadata (token stays out of the body)
  - 401: Missing, invalid, expired, or revoked token
*/
func (handler *Handler) refreshToken(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Refresh(request.Context(), identity.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setAccessTokenCookie(writer, token)

	respond.OK(writer, map[string]any{
		"token_type": "Bearer",
		"expires_in": int(handler.authService.TokenTTL() / time.Second),
	})
}

// setAccessTokenCookie delivers the access token to the client.
//
// HttpOnly keeps it away from scripts, Secure keeps it off plain HTTP, and
// SameSite=Lax stops it riding along on cross-site POSTs.
func (handler *Handler) setAccessTokenCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    token,
		Path:     constants.AccessTokenCookiePath,
		MaxAge:   int(handler.authService.TokenTTL() / time.Second),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
