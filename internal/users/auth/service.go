// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/validate"
	"github.com/daalagelerua/holbertonschool-portfolio-project/pkg/pointer"
	"github.com/daalagelerua/holbertonschool-portfolio-project/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer signs session tokens. [sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(identity sec.Identity) (string, time.Time, error)
	TTL() time.Duration
}

// FavoriteCounter reports how many journeys a user saved.
type FavoriteCounter interface {
	CountByUser(context context.Context, userID string) (int, error)
}

// Service implements account use cases.
type Service struct {
	userRepository UserRepository
	tokens         TokenIssuer
	favorites      FavoriteCounter
	logger         *slog.Logger
	checkPassword  func(plain, hash string) bool
}

// NewService constructs a new [Service]. favorites may be nil, in which case
// favorite counts are reported as zero.
func NewService(userRepository UserRepository, tokens TokenIssuer, favorites FavoriteCounter, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepository,
		tokens:         tokens,
		favorites:      favorites,
		logger:         logger,
		checkPassword:  sec.CheckPasswordHash,
	}
}

// WithPasswordCheck overrides the password comparison. Used by tests.
func (service *Service) WithPasswordCheck(check func(plain, hash string) bool) *Service {
	service.checkPassword = check
	return service
}

// Session is an issued token together with the account it belongs to.
type Session struct {
	User          *User
	FavoriteCount int
	Token         string
	ExpiresAt     time.Time
	ExpiresIn     time.Duration
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	DefaultOriginCountry string
	Language             string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Checks run in a fixed order and the first failing one is
reported: required fields, email format, password length, name length,
then email uniqueness. The password is hashed exactly once.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: MISSING_FIELDS, INVALID_EMAIL, PASSWORD_TOO_SHORT, NAME_TOO_SHORT,
    INVALID_COUNTRY_CODE, INVALID_LANGUAGE, EMAIL_ALREADY_EXISTS or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).
		Custom(FieldPassword, input.Password == "", "This field is required").
		Required(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName)
	if err := v.ErrCode(ErrMissingFields.Code, ErrMissingFields.Message); err != nil {
		return nil, err
	}

	email := NormalizeEmail(input.Email)
	if err := (&validate.Validator{}).Email(FieldEmail, email).ErrCode(ErrInvalidEmail.Code, ErrInvalidEmail.Message); err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	firstName, lastName := strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName)
	if !validName(firstName) || !validName(lastName) {
		return nil, ErrNameTooShort
	}

	origin, err := normalizeOrigin(input.DefaultOriginCountry)
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = DefaultLanguage
	}
	if !slices.Contains(Languages, language) {
		return nil, ErrInvalidLanguage
	}

	// Pre-check for a friendly error; the unique index still decides races.
	_, err = service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:                   uuid.New(),
		Email:                email,
		PasswordHash:         hashedPassword,
		FirstName:            firstName,
		LastName:             lastName,
		DefaultOriginCountry: origin,
		Language:             language,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return user, nil
}

// validName reports whether a trimmed name has an acceptable length.
func validName(name string) bool {
	length := utf8.RuneCountInString(name)
	return length >= MinNameLength && length <= MaxNameLength
}

// normalizeOrigin uppercases an optional country code. Empty means unset.
func normalizeOrigin(code string) (*string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	v := &validate.Validator{}
	if v.CountryCode(FieldDefaultOriginCountry, code).HasErrors() {
		return nil, ErrInvalidOriginCountry.WithField(FieldDefaultOriginCountry)
	}
	return pointer.To(code), nil
}

// # Authentication Flow

/*
Authenticate checks an email and password pair.

Description: An unknown email and a wrong password produce the same error so
callers cannot tell which accounts exist. Both paths cost one bcrypt comparison.

Parameters:
  - context: context.Context
  - email: string (any case)
  - password: string

Returns:
  - *User: The matching account
  - error: MISSING_CREDENTIALS, INVALID_CREDENTIALS or storage errors
*/
func (service *Service) Authenticate(context context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same bcrypt cost as a wrong password.
			service.checkPassword(password, sec.DummyPasswordHash())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !service.checkPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the credentials and opens a session.
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	user, err := service.Authenticate(context, email, password)
	if err != nil {
		return nil, err
	}
	return service.OpenSession(context, user)
}

/*
OpenSession issues a token for an already verified user.

Description: Used after registration and login. The favorite count is
informational; a failure to read it is logged and reported as zero.
*/
func (service *Service) OpenSession(context context.Context, user *User) (*Session, error) {
	token, expiresAt, err := service.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		User:          user,
		FavoriteCount: service.favoriteCount(context, user.ID),
		Token:         token,
		ExpiresAt:     expiresAt,
		ExpiresIn:     service.tokens.TTL(),
	}, nil
}

func (service *Service) favoriteCount(context context.Context, userID string) int {
	if service.favorites == nil {
		return 0
	}

	count, err := service.favorites.CountByUser(context, userID)
	if err != nil {
		service.logger.WarnContext(context, "favorite_count_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return 0
	}
	return count
}

// # Profile Management

// Profile is an account with its favorite count.
type Profile struct {
	User          *User
	FavoriteCount int
}

// Profile returns the account of userID.
func (service *Service) Profile(context context.Context, userID string) (*Profile, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, FavoriteCount: service.favoriteCount(context, userID)}, nil
}

// UpdateProfileInput lists the fields a user may change. Nil fields are left
// untouched; an empty DefaultOriginCountry clears it.
type UpdateProfileInput struct {
	FirstName            *string
	LastName             *string
	DefaultOriginCountry *string
	Language             *string
	CurrentPassword      string
	NewPassword          string
}

/*
UpdateProfile applies a partial update to the caller's account.

Description: Every field is validated before anything is written. Changing
the password requires the current one and re-hashes only the new value; any
other update leaves the stored hash untouched.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *Profile: The updated account
  - error: USER_NOT_FOUND, NAME_TOO_SHORT, INVALID_COUNTRY_CODE, INVALID_LANGUAGE,
    PASSWORD_TOO_SHORT, CURRENT_PASSWORD_INVALID or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if !validName(name) {
			return nil, ErrNameTooShort.WithField(FieldFirstName)
		}
		user.FirstName = name
	}

	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if !validName(name) {
			return nil, ErrNameTooShort.WithField(FieldLastName)
		}
		user.LastName = name
	}

	if input.DefaultOriginCountry != nil {
		origin, err := normalizeOrigin(*input.DefaultOriginCountry)
		if err != nil {
			return nil, err
		}
		user.DefaultOriginCountry = origin
	}

	if input.Language != nil {
		language := strings.TrimSpace(*input.Language)
		if !slices.Contains(Languages, language) {
			return nil, ErrInvalidLanguage.WithField(FieldLanguage)
		}
		user.Language = language
	}

	if input.NewPassword != "" {
		if utf8.RuneCountInString(input.NewPassword) < MinPasswordLength {
			return nil, ErrPasswordTooShort.WithField(FieldNewPassword)
		}
		if !service.checkPassword(input.CurrentPassword, user.PasswordHash) {
			return nil, ErrCurrentPasswordInvalid.WithField(FieldCurrentPassword)
		}

		hashedPassword, err := sec.HashPassword(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profile_updated",
		slog.String("user_id", user.ID),
		slog.Bool("password_changed", input.NewPassword != ""),
	)

	return &Profile{User: user, FavoriteCount: service.favoriteCount(context, userID)}, nil
}
