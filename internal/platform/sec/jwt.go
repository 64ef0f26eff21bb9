// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. Session tokens are stateless HS256 JWTs: everything needed
// to identify the caller travels inside the signed payload, and the only state
// held here is the signing secret injected at startup.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Callers map these onto transport error codes.
var (
	ErrTokenExpired          = errors.New("sec: token expired")
	ErrTokenNotYetValid      = errors.New("sec: token not yet valid")
	ErrTokenSignatureInvalid = errors.New("sec: token signature invalid")
	ErrTokenClaimsInvalid    = errors.New("sec: token issuer or audience mismatch")
	ErrTokenMalformed        = errors.New("sec: token malformed")
)

// Identity is the subset of a user account embedded in a session token.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// SessionClaims represents the payload embedded inside a session token.
//
// The subject and the userId claim both carry the user ID.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Identity returns the identity carried by the claims.
func (claims *SessionClaims) Identity() Identity {
	return Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}
}

// TokenOptions configures a [TokenService].
type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	Leeway   time.Duration

	// Clock overrides time.Now; nil means the wall clock.
	Clock func() time.Time
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
	now      func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(options TokenOptions) (*TokenService, error) {
	if options.Secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if options.TTL <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", options.TTL)
	}

	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}

	return &TokenService{
		secret:   []byte(options.Secret),
		issuer:   options.Issuer,
		audience: options.Audience,
		ttl:      options.TTL,
		leeway:   options.Leeway,
		now:      clock,
	}, nil
}

// TTL returns the lifetime of freshly issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue signs a new session token for identity and returns it with its expiry.
func (service *TokenService) Issue(identity Identity) (string, time.Time, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(service.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    identity.UserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks signature, issuer, audience and validity window of a token.
//
// The returned error is always one of the package's ErrToken* sentinels.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithLeeway(service.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}

	return claims, nil
}

// classify maps jwt parser errors onto the sentinels of this package.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrTokenClaimsInvalid
	default:
		return ErrTokenMalformed
	}
}
