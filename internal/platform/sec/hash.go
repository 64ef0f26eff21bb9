// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package sec

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
)

// HashPassword hashes a plain-text password using bcrypt at [constants.PasswordHashCost].
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), constants.PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// DummyPasswordHash returns a fixed bcrypt hash at [constants.PasswordHashCost].
// Comparing against it costs as much as a real check, so lookups of unknown
// accounts take as long as wrong passwords.
var DummyPasswordHash = sync.OnceValue(func() string {
	hash, err := HashPassword("vizza-unknown-account")
	if err != nil {
		panic(err)
	}
	return hash
})
