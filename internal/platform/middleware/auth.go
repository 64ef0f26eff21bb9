// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/ctxutil"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
)

// Authentication failure codes reported by [RequireAuth].
const (
	CodeNoToken        = "NO_TOKEN"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeTokenInvalid   = "TOKEN_INVALID"
	CodeTokenNotActive = "TOKEN_NOT_ACTIVE"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining it here decouples the middleware from [sec.TokenService] and lets
// tests inject stubs.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.SessionClaims, error)
}

// ResolveIdentity extracts and verifies the session token carried by a request.
//
// # Flow
//  1. The session cookie wins when present.
//  2. Otherwise an 'Authorization: Bearer <token>' header is used.
//  3. No token at all yields (nil, nil): the caller is anonymous.
//  4. A token that fails verification yields the verifier's error.
func ResolveIdentity(request *http.Request, verifier TokenVerifier, cookieName string) (*sec.SessionClaims, error) {
	token := ""

	if cookie, err := request.Cookie(cookieName); err == nil && cookie.Value != "" {
		token = cookie.Value
	} else if header := request.Header.Get(constants.HeaderAuthorization); strings.HasPrefix(header, constants.BearerPrefix) {
		token = strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
	}

	if token == "" {
		return nil, nil
	}

	return verifier.Verify(token)
}

// Authenticate resolves the caller's identity without ever rejecting a request.
//
// Valid claims are stored with [ctxutil.WithAuthUser]. A rejected token leaves
// the request anonymous and records the reason with [ctxutil.WithAuthFailure],
// so public routes keep working while [RequireAuth] can still explain itself.
func Authenticate(verifier TokenVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := ResolveIdentity(request, verifier, cookieName)

			ctx := request.Context()
			switch {
			case err != nil:
				ctxutil.GetLogger(ctx).DebugContext(ctx, "token_rejected", "reason", err.Error())
				ctx = ctxutil.WithAuthFailure(ctx, err)
			case claims != nil:
				ctx = ctxutil.WithAuthUser(ctx, claims)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, AuthError(ctxutil.GetAuthFailure(request.Context())))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// AuthError converts a token verification failure into a 401 application error.
// A nil failure means no token was presented.
func AuthError(failure error) *apperr.AppError {
	switch {
	case failure == nil:
		return apperr.Unauthorized("Authentication required").WithCode(CodeNoToken)
	case errors.Is(failure, sec.ErrTokenExpired):
		return apperr.Unauthorized("Session expired, please log in again").WithCode(CodeTokenExpired)
	case errors.Is(failure, sec.ErrTokenNotYetValid):
		return apperr.Unauthorized("Session token is not active yet").WithCode(CodeTokenNotActive)
	default:
		return apperr.Unauthorized("Invalid session token").WithCode(CodeTokenInvalid)
	}
}
