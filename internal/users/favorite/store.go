// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package favorite

import "context"

// Repository defines the data access contract for saved journeys.
type Repository interface {

	/*
		ListByUser returns every favorite of userID, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - Favorites: Possibly empty
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string) (Favorites, error)

	/*
		Insert saves a favorite. It never overwrites an existing pair.

		Parameters:
		  - context: context.Context
		  - favorite: Favorite

		Returns:
		  - bool: false when the pair was already saved
		  - error: Persistence failures
	*/
	Insert(context context.Context, favorite Favorite) (bool, error)

	/*
		Delete removes a saved pair.

		Returns:
		  - bool: false when the pair was not saved
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID, origin, destination string) (bool, error)

	// Exists reports whether the pair is saved for userID.
	Exists(context context.Context, userID, origin, destination string) (bool, error)

	// CountByUser returns the number of favorites of userID.
	CountByUser(context context.Context, userID string) (int, error)
}
