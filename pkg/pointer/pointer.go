// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Package pointer builds pointers to values, mostly for optional fields.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
