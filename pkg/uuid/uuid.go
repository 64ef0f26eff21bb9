// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package uuid generates the identifiers of user accounts.

Identifiers are UUID version 7: time-ordered, so new rows append to the end
of the primary key index instead of landing at random positions.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}
