// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package favorite implements the journeys a traveller saved for later.

A favorite is an (origin, destination) pair owned by a user. Pairs are unique
per user; the storage key enforces it even when two requests race.

Favorites reference countries by code only. A country that is later removed
or deactivated leaves a stale entry behind, which listings skip.
*/
package favorite

import (
	"slices"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
)

// # Errors

var (
	ErrAlreadyFavorite  = apperr.Conflict("This journey is already in your favorites").WithCode("ALREADY_FAVORITE")
	ErrFavoriteNotFound = apperr.NotFound("Favorite").WithCode("FAVORITE_NOT_FOUND")
	ErrVisaNotFound     = apperr.NotFound("Visa information for this journey").WithCode("VISA_NOT_FOUND")
)

// # Domain Entities

// Favorite is one saved journey.
type Favorite struct {
	UserID      string    `json:"-"                  db:"userid"`
	Origin      string    `json:"originCountry"      db:"origincode"`
	Destination string    `json:"destinationCountry" db:"destinationcode"`
	AddedAt     time.Time `json:"addedAt"            db:"addedat"`
}

// Key identifies the journey, e.g. "FR-JP".
func (f Favorite) Key() string {
	return visa.JourneyKey(f.Origin, f.Destination)
}

// Favorites is the ordered list of a user's saved journeys with set
// semantics on the (origin, destination) pair.
type Favorites []Favorite

// Contains reports whether the pair is saved.
func (favorites Favorites) Contains(origin, destination string) bool {
	return slices.ContainsFunc(favorites, func(f Favorite) bool {
		return f.Origin == origin && f.Destination == destination
	})
}

// Add appends f unless its pair is already present.
func (favorites *Favorites) Add(f Favorite) bool {
	if favorites.Contains(f.Origin, f.Destination) {
		return false
	}
	*favorites = append(*favorites, f)
	return true
}

// Remove deletes the pair and reports whether it was present.
func (favorites *Favorites) Remove(origin, destination string) bool {
	before := len(*favorites)
	*favorites = slices.DeleteFunc(*favorites, func(f Favorite) bool {
		return f.Origin == origin && f.Destination == destination
	})
	return len(*favorites) != before
}

// NewestFirst sorts by AddedAt, most recent first. Ties keep their order.
func (favorites Favorites) NewestFirst() {
	slices.SortStableFunc(favorites, func(a, b Favorite) int {
		return b.AddedAt.Compare(a.AddedAt)
	})
}
