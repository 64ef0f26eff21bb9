// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/auth"
)

// memoryUsers is an in-memory auth.UserRepository keyed by lowercase email.
type memoryUsers struct {
	byID    map[string]*auth.User
	updates int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}}
}

func (repository *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (repository *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.byID {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repository.byID {
		if strings.EqualFold(existing.Email, user.Email) {
			return auth.ErrEmailAlreadyExists
		}
	}
	clone := *user
	repository.byID[user.ID] = &clone
	return nil
}

func (repository *memoryUsers) Update(_ context.Context, user *auth.User) error {
	if _, ok := repository.byID[user.ID]; !ok {
		return auth.ErrUserNotFound
	}
	repository.updates++
	clone := *user
	repository.byID[user.ID] = &clone
	return nil
}

// stubFavorites returns a fixed count or fails.
type stubFavorites struct {
	count  int
	broken bool
}

func (favorites *stubFavorites) CountByUser(_ context.Context, _ string) (int, error) {
	if favorites.broken {
		return 0, errors.New("connection refused")
	}
	return favorites.count, nil
}

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenOptions{
		Secret:   "test-secret-that-is-long-enough-for-hs256",
		Issuer:   "vizza-app",
		Audience: "vizza-users",
		TTL:      4 * time.Hour,
		Leeway:   time.Minute,
	})
	require.NoError(t, err)
	return tokens
}

func newService(t *testing.T, users auth.UserRepository, favorites auth.FavoriteCounter) *auth.Service {
	return auth.NewService(users, newTokens(t), favorites, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput() auth.RegisterInput {
	return auth.RegisterInput{
		Email:     "  Marie.Curie@Example.FR ",
		Password:  "radium1",
		FirstName: " Marie ",
		LastName:  "Curie",
	}
}

/*
TestService_Register normalizes and stores a new account.
*/
func TestService_Register(t *testing.T) {
	users := newMemoryUsers()
	service := newService(t, users, nil)

	user, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "marie.curie@example.fr", user.Email)
	assert.Equal(t, "Marie", user.FirstName)
	assert.Equal(t, auth.LanguageFrench, user.Language)
	assert.Nil(t, user.DefaultOriginCountry)
	assert.NotEqual(t, "radium1", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("radium1", user.PasswordHash))
}

/*
TestService_Register_ValidationOrder reports the first failing rule.
*/
func TestService_Register_ValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
		code   string
	}{
		{"missing_email", func(in *auth.RegisterInput) { in.Email = "" }, "MISSING_FIELDS"},
		{"missing_beats_bad_email", func(in *auth.RegisterInput) { in.Email = "nope"; in.LastName = "" }, "MISSING_FIELDS"},
		{"bad_email", func(in *auth.RegisterInput) { in.Email = "marie@curie" }, "INVALID_EMAIL"},
		{"bad_email_beats_short_password", func(in *auth.RegisterInput) { in.Email = "x"; in.Password = "a" }, "INVALID_EMAIL"},
		{"short_password", func(in *auth.RegisterInput) { in.Password = "12345" }, "PASSWORD_TOO_SHORT"},
		{"short_password_beats_short_name", func(in *auth.RegisterInput) { in.Password = "12345"; in.FirstName = "M" }, "PASSWORD_TOO_SHORT"},
		{"short_name_after_trim", func(in *auth.RegisterInput) { in.FirstName = "  M  " }, "NAME_TOO_SHORT"},
		{"bad_origin", func(in *auth.RegisterInput) { in.DefaultOriginCountry = "France" }, "INVALID_COUNTRY_CODE"},
		{"bad_language", func(in *auth.RegisterInput) { in.Language = "de" }, "INVALID_LANGUAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(t, newMemoryUsers(), nil)
			input := validInput()
			tt.mutate(&input)

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
		})
	}
}

/*
TestService_Register_MissingFieldsDetails lists every absent field.
*/
func TestService_Register_MissingFieldsDetails(t *testing.T) {
	service := newService(t, newMemoryUsers(), nil)

	_, err := service.Register(context.Background(), auth.RegisterInput{Email: "a@b.co"})
	require.ErrorIs(t, err, auth.ErrMissingFields)

	var fields []string
	for _, detail := range apperr.As(err).Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{auth.FieldPassword, auth.FieldFirstName, auth.FieldLastName}, fields)
}

/*
TestService_Register_DuplicateEmail is case-insensitive.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service := newService(t, newMemoryUsers(), nil)

	_, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	again := validInput()
	again.Email = "MARIE.CURIE@example.fr"
	_, err = service.Register(context.Background(), again)
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

/*
TestService_Authenticate_RoundTrip registers then authenticates, and checks
that wrong passwords and unknown emails fail identically.
*/
func TestService_Authenticate_RoundTrip(t *testing.T) {
	service := newService(t, newMemoryUsers(), nil)

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, err := service.Authenticate(context.Background(), "MARIE.CURIE@EXAMPLE.FR", "radium1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, wrongPassword := service.Authenticate(context.Background(), "marie.curie@example.fr", "polonium")
	_, unknownEmail := service.Authenticate(context.Background(), "pierre@example.fr", "radium1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)

	_, err = service.Authenticate(context.Background(), "", "radium1")
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)
}

/*
TestService_Authenticate_UnknownEmailComparesHash runs one bcrypt comparison
for unknown emails, as for known ones.
*/
func TestService_Authenticate_UnknownEmailComparesHash(t *testing.T) {
	users := newMemoryUsers()
	service := newService(t, users, nil)
	_, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	var hashes []string
	service.WithPasswordCheck(func(plain, hash string) bool {
		hashes = append(hashes, hash)
		return sec.CheckPasswordHash(plain, hash)
	})

	tests := []struct {
		name  string
		email string
	}{
		{"unknown_email", "pierre@example.fr"},
		{"known_email", "marie.curie@example.fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashes = nil

			_, err := service.Authenticate(context.Background(), tt.email, "polonium")

			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
			require.Len(t, hashes, 1)
			assert.True(t, strings.HasPrefix(hashes[0], "$2a$10$"))
		})
	}

	hashes = nil
	_, err = service.Authenticate(context.Background(), "pierre@example.fr", "radium1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	assert.Equal(t, sec.DummyPasswordHash(), hashes[0])
}

/*
TestService_Login issues a verifiable token carrying the user identity.
*/
func TestService_Login(t *testing.T) {
	tokens := newTokens(t)
	service := auth.NewService(newMemoryUsers(), tokens, &stubFavorites{count: 3}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	session, err := service.Login(context.Background(), "marie.curie@example.fr", "radium1")
	require.NoError(t, err)

	assert.Equal(t, 3, session.FavoriteCount)
	assert.Equal(t, 4*time.Hour, session.ExpiresIn)

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, registered.ID, claims.Subject)
	assert.Equal(t, "marie.curie@example.fr", claims.Email)
}

/*
TestService_Login_FavoriteCountIsBestEffort keeps login working without favorites storage.
*/
func TestService_Login_FavoriteCountIsBestEffort(t *testing.T) {
	service := newService(t, newMemoryUsers(), &stubFavorites{broken: true})

	_, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	session, err := service.Login(context.Background(), "marie.curie@example.fr", "radium1")
	require.NoError(t, err)
	assert.Zero(t, session.FavoriteCount)
}

/*
TestService_Profile reports missing accounts.
*/
func TestService_Profile(t *testing.T) {
	service := newService(t, newMemoryUsers(), &stubFavorites{count: 2})

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	profile, err := service.Profile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, profile.User.Email)
	assert.Equal(t, 2, profile.FavoriteCount)

	_, err = service.Profile(context.Background(), "0190f1b2-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

/*
TestService_UpdateProfile_KeepsHashWithoutPassword ensures unrelated updates never re-hash.
*/
func TestService_UpdateProfile_KeepsHashWithoutPassword(t *testing.T) {
	users := newMemoryUsers()
	service := newService(t, users, nil)

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	firstName, origin, language := "Maria", "fr", "en"
	profile, err := service.UpdateProfile(context.Background(), registered.ID, auth.UpdateProfileInput{
		FirstName:            &firstName,
		DefaultOriginCountry: &origin,
		Language:             &language,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria", profile.User.FirstName)
	require.NotNil(t, profile.User.DefaultOriginCountry)
	assert.Equal(t, "FR", *profile.User.DefaultOriginCountry)
	assert.Equal(t, "en", profile.User.Language)
	assert.Equal(t, registered.PasswordHash, users.byID[registered.ID].PasswordHash)

	_, err = service.Authenticate(context.Background(), registered.Email, "radium1")
	assert.NoError(t, err)
}

/*
TestService_UpdateProfile_Password requires the current password.
*/
func TestService_UpdateProfile_Password(t *testing.T) {
	users := newMemoryUsers()
	service := newService(t, users, nil)

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = service.UpdateProfile(context.Background(), registered.ID, auth.UpdateProfileInput{
		CurrentPassword: "wrong",
		NewPassword:     "polonium",
	})
	assert.ErrorIs(t, err, auth.ErrCurrentPasswordInvalid)
	assert.Zero(t, users.updates)

	_, err = service.UpdateProfile(context.Background(), registered.ID, auth.UpdateProfileInput{
		CurrentPassword: "radium1",
		NewPassword:     "abc",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = service.UpdateProfile(context.Background(), registered.ID, auth.UpdateProfileInput{
		CurrentPassword: "radium1",
		NewPassword:     "polonium",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, users.updates)

	_, err = service.Authenticate(context.Background(), registered.Email, "polonium")
	assert.NoError(t, err)
	_, err = service.Authenticate(context.Background(), registered.Email, "radium1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

/*
TestService_UpdateProfile_NamesOffendingField reports which input failed.
*/
func TestService_UpdateProfile_NamesOffendingField(t *testing.T) {
	users := newMemoryUsers()
	service := newService(t, users, nil)

	registered, err := service.Register(context.Background(), validInput())
	require.NoError(t, err)

	short, german, country := "M", "de", "France"

	tests := []struct {
		name  string
		input auth.UpdateProfileInput
		code  string
		field string
	}{
		{"first_name", auth.UpdateProfileInput{FirstName: &short}, "NAME_TOO_SHORT", auth.FieldFirstName},
		{"last_name", auth.UpdateProfileInput{LastName: &short}, "NAME_TOO_SHORT", auth.FieldLastName},
		{"origin", auth.UpdateProfileInput{DefaultOriginCountry: &country}, "INVALID_COUNTRY_CODE", auth.FieldDefaultOriginCountry},
		{"language", auth.UpdateProfileInput{Language: &german}, "INVALID_LANGUAGE", auth.FieldLanguage},
		{"new_password", auth.UpdateProfileInput{CurrentPassword: "radium1", NewPassword: "abc"}, "PASSWORD_TOO_SHORT", auth.FieldNewPassword},
		{"current_password", auth.UpdateProfileInput{CurrentPassword: "wrong", NewPassword: "polonium"}, "CURRENT_PASSWORD_INVALID", auth.FieldCurrentPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateProfile(context.Background(), registered.ID, tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
	assert.Zero(t, users.updates)
}

/*
TestService_Register_InvalidEmailNamesField attaches the email detail.
*/
func TestService_Register_InvalidEmailNamesField(t *testing.T) {
	service := newService(t, newMemoryUsers(), nil)

	input := validInput()
	input.Email = "marie@curie"
	_, err := service.Register(context.Background(), input)
	require.ErrorIs(t, err, auth.ErrInvalidEmail)

	appErr := apperr.As(err)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, auth.FieldEmail, appErr.Details[0].Field)
}

/*
TestHandler_Register sets the session cookie and never returns the hash.
*/
func TestHandler_Register(t *testing.T) {
	service := newService(t, newMemoryUsers(), nil)
	handler := auth.NewHandler(service, auth.CookieOptions{Name: "token", Secure: true})

	body := `{"email":"ada@example.com","password":"engine","firstName":"Ada","lastName":"Lovelace","language":"en"}`
	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Equal(t, int((4 * time.Hour).Seconds()), cookies[0].MaxAge)

	var envelope struct {
		Data struct {
			User  map[string]any `json:"user"`
			Token struct {
				Value     string `json:"value"`
				ExpiresIn int64  `json:"expiresIn"`
			} `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))

	assert.Equal(t, "ada@example.com", envelope.Data.User["email"])
	assert.NotContains(t, envelope.Data.User, "passwordHash")
	assert.NotContains(t, envelope.Data.User, "PasswordHash")
	assert.Equal(t, cookies[0].Value, envelope.Data.Token.Value)
	assert.Equal(t, int64(14400), envelope.Data.Token.ExpiresIn)
}

/*
TestHandler_Logout expires the cookie.
*/
func TestHandler_Logout(t *testing.T) {
	handler := auth.NewHandler(newService(t, newMemoryUsers(), nil), auth.CookieOptions{Name: "token"})

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
