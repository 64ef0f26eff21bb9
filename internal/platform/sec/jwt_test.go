// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
)

const testSecret = "a-very-long-test-secret-for-hs256-signing"

func newTokenService(t *testing.T, clock func() time.Time, mutate ...func(*sec.TokenOptions)) *sec.TokenService {
	t.Helper()

	options := sec.TokenOptions{
		Secret:   testSecret,
		Issuer:   "vizza-app",
		Audience: "vizza-users",
		TTL:      4 * time.Hour,
		Leeway:   60 * time.Second,
		Clock:    clock,
	}
	for _, apply := range mutate {
		apply(&options)
	}

	service, err := sec.NewTokenService(options)
	require.NoError(t, err)
	return service
}

var identity = sec.Identity{
	UserID:    "0190a8c4-0000-7000-8000-000000000001",
	Email:     "alice@example.com",
	FirstName: "Alice",
	LastName:  "Martin",
}

/*
TestTokenService_RoundTrip verifies that issue then verify returns the same identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, nil)

	token, expiresAt, err := service.Issue(identity)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(4*time.Hour), expiresAt, 5*time.Second)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, identity, claims.Identity())
	assert.Equal(t, identity.UserID, claims.Subject)
	assert.Equal(t, "vizza-app", claims.Issuer)
	assert.Contains(t, claims.Audience, "vizza-users")
}

/*
TestTokenService_VerifyFailures covers every verification failure class.
*/
func TestTokenService_VerifyFailures(t *testing.T) {
	wallClock := newTokenService(t, nil)

	longAgo := func() time.Time { return time.Now().Add(-5 * time.Hour) }
	inFuture := func() time.Time { return time.Now().Add(10 * time.Minute) }

	expired, _, err := newTokenService(t, longAgo).Issue(identity)
	require.NoError(t, err)

	notYetValid, _, err := newTokenService(t, inFuture).Issue(identity)
	require.NoError(t, err)

	otherSecret, _, err := newTokenService(t, nil, func(o *sec.TokenOptions) {
		o.Secret = "another-secret-that-is-also-long-enough"
	}).Issue(identity)
	require.NoError(t, err)

	otherAudience, _, err := newTokenService(t, nil, func(o *sec.TokenOptions) {
		o.Audience = "someone-else"
	}).Issue(identity)
	require.NoError(t, err)

	valid, _, err := wallClock.Issue(identity)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, sec.ErrTokenExpired},
		{"not_yet_valid", notYetValid, sec.ErrTokenNotYetValid},
		{"wrong_secret", otherSecret, sec.ErrTokenSignatureInvalid},
		{"tampered_signature", tampered, sec.ErrTokenSignatureInvalid},
		{"wrong_audience", otherAudience, sec.ErrTokenClaimsInvalid},
		{"garbage", "not-a-jwt", sec.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := wallClock.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

/*
TestTokenService_LeewayAcceptsSlightlyExpired checks the 60s clock tolerance.
*/
func TestTokenService_LeewayAcceptsSlightlyExpired(t *testing.T) {
	justExpired := func() time.Time { return time.Now().Add(-4*time.Hour - 30*time.Second) }

	token, _, err := newTokenService(t, justExpired).Issue(identity)
	require.NoError(t, err)

	_, err = newTokenService(t, nil).Verify(token)
	assert.NoError(t, err)
}

/*
TestNewTokenService_RejectsEmptySecret guards against unsigned deployments.
*/
func TestNewTokenService_RejectsEmptySecret(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenOptions{TTL: time.Hour})
	assert.Error(t, err)
}
