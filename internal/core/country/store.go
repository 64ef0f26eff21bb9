// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package country

import "context"

// Repository defines the data access contract for the country directory.
type Repository interface {

	/*
		FindActiveByCode returns the active country with the given code.

		Parameters:
		  - context: context.Context
		  - code: string (normalized, uppercase)

		Returns:
		  - *Country: Hydrated entity
		  - error: ErrCountryNotFound when absent or inactive, storage errors otherwise
	*/
	FindActiveByCode(context context.Context, code string) (*Country, error)

	/*
		ListActive returns every active country.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Country: Active countries, ordered by name
		  - error: Database retrieval failures
	*/
	ListActive(context context.Context) ([]*Country, error)

	// Counts returns total, active and inactive country counts.
	Counts(context context.Context) (Counts, error)

	/*
		Upsert creates the country or replaces every field of the existing row.

		Parameters:
		  - context: context.Context
		  - country: *Country

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, country *Country) error
}
