// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package visa

import "context"

// Repository defines the data access contract for visa requirements.
type Repository interface {

	/*
		FindByPair returns the requirement for travelling from origin to destination.

		Parameters:
		  - context: context.Context
		  - origin: string (normalized code)
		  - destination: string (normalized code)

		Returns:
		  - *Requirement: The directed edge
		  - error: ErrRequirementNotFound when no edge exists
	*/
	FindByPair(context context.Context, origin, destination string) (*Requirement, error)

	/*
		ListFromOrigin returns every requirement leaving origin whose destination
		country is active, joined with that country.

		Parameters:
		  - context: context.Context
		  - origin: string (normalized code)

		Returns:
		  - []*Destination: Ordered by destination name
		  - error: Database retrieval failures
	*/
	ListFromOrigin(context context.Context, origin string) ([]*Destination, error)

	// CountByLevel returns the number of stored requirements per level.
	CountByLevel(context context.Context) (LevelCounts, error)

	// Upsert creates the requirement or replaces the stored one for the same pair.
	Upsert(context context.Context, requirement *Requirement) error

	// Delete removes the requirement for a pair. Deleting a missing pair is not an error.
	Delete(context context.Context, origin, destination string) error
}
