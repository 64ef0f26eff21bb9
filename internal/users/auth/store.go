// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email, compared
		case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string (normalized)

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrEmailAlreadyExists on a unique violation, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists the mutable fields of an account, including the
		password hash.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrUserNotFound or persistence failures
	*/
	Update(context context.Context, user *User) error
}
