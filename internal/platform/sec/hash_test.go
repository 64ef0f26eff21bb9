// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
)

func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("s3cret!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, sec.CheckPasswordHash("s3cret!", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

func TestDummyPasswordHash(t *testing.T) {
	hash := sec.DummyPasswordHash()

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.Equal(t, hash, sec.DummyPasswordHash())
	assert.False(t, sec.CheckPasswordHash("radium1", hash))
}
