// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package auth implements traveller accounts: registration, credential checks
and profile management.

Sessions are stateless signed tokens issued by [sec.TokenService]; this
package never stores them. Logging out only clears the client cookie.
*/
package auth

import (
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/validate"
)

// # Errors

var (
	ErrMissingFields          = validate.Failure("MISSING_FIELDS", "Email, password, first name and last name are required")
	ErrInvalidEmail           = validate.Failure("INVALID_EMAIL", "Email format is not valid")
	ErrPasswordTooShort       = validate.Failure("PASSWORD_TOO_SHORT", "Password must contain at least 6 characters")
	ErrNameTooShort           = validate.Failure("NAME_TOO_SHORT", "First name and last name must contain at least 2 characters")
	ErrInvalidLanguage        = validate.Failure("INVALID_LANGUAGE", "Language must be one of: fr, en")
	ErrInvalidOriginCountry   = validate.Failure("INVALID_COUNTRY_CODE", "Default origin country must be a 2 or 3 letter code")
	ErrMissingCredentials     = validate.Failure("MISSING_CREDENTIALS", "Email and password are required")
	ErrEmailAlreadyExists     = apperr.Conflict("An account already exists with this email").WithCode("EMAIL_ALREADY_EXISTS")
	ErrInvalidCredentials     = apperr.Unauthorized("Invalid email or password").WithCode("INVALID_CREDENTIALS")
	ErrCurrentPasswordInvalid = apperr.Unauthorized("Current password is incorrect").WithCode("CURRENT_PASSWORD_INVALID")
	ErrUserNotFound           = apperr.NotFound("User").WithCode("USER_NOT_FOUND")
)

// # Domain Entities

// User is a registered traveller.
type User struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	DefaultOriginCountry *string   `json:"defaultOriginCountry"`
	Language             string    `json:"language"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Identity returns the claims embedded in the user's session token.
func (u *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// # Field Identifiers

const (
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldDefaultOriginCountry = "defaultOriginCountry"
	FieldLanguage             = "language"
	FieldCurrentPassword      = "currentPassword"
	FieldNewPassword          = "newPassword"
)
