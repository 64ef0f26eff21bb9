// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package favorite_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/ctxutil"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/sec"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/auth"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/favorite"
	"github.com/daalagelerua/holbertonschool-portfolio-project/pkg/pointer"
)

const userID = "0190f1b2-7c3d-7000-8000-00000000a11c"

// memoryStore is an in-memory favorite.Repository.
type memoryStore struct {
	saved map[string]favorite.Favorites
	// raceOnInsert makes Insert behave as if a concurrent request saved the pair first.
	raceOnInsert bool
	broken       bool
}

func (store *memoryStore) ListByUser(_ context.Context, user string) (favorite.Favorites, error) {
	if store.broken {
		return nil, apperr.Internal(errors.New("connection reset"))
	}
	return append(favorite.Favorites{}, store.saved[user]...), nil
}

func (store *memoryStore) Insert(_ context.Context, f favorite.Favorite) (bool, error) {
	if store.raceOnInsert {
		return false, nil
	}
	list := store.saved[f.UserID]
	added := list.Add(f)
	store.saved[f.UserID] = list
	return added, nil
}

func (store *memoryStore) Delete(_ context.Context, user, origin, destination string) (bool, error) {
	list := store.saved[user]
	removed := list.Remove(origin, destination)
	store.saved[user] = list
	return removed, nil
}

func (store *memoryStore) Exists(_ context.Context, user, origin, destination string) (bool, error) {
	return store.saved[user].Contains(origin, destination), nil
}

func (store *memoryStore) CountByUser(_ context.Context, user string) (int, error) {
	return len(store.saved[user]), nil
}

type memoryCountries map[string]*country.Country

func (countries memoryCountries) FindByCode(_ context.Context, code string) (*country.Country, error) {
	c, ok := countries[code]
	if !ok || !c.IsActive {
		return nil, country.ErrCountryNotFound
	}
	return c, nil
}

type memoryRequirements map[string]*visa.Requirement

func (requirements memoryRequirements) FindByPair(_ context.Context, origin, destination string) (*visa.Requirement, error) {
	r, ok := requirements[visa.JourneyKey(origin, destination)]
	if !ok {
		return nil, visa.ErrRequirementNotFound
	}
	return r, nil
}

type memoryUsers map[string]*auth.User

func (users memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

type fixture struct {
	store        *memoryStore
	requirements memoryRequirements
	service      *favorite.Service
	clock        time.Time
}

func newFixture() *fixture {
	countries := memoryCountries{
		"FR": {Code: "FR", Name: "France", Flag: "🇫🇷", IsActive: true},
		"JP": {Code: "JP", Name: "Japon", Flag: "🇯🇵", IsActive: true},
		"CN": {Code: "CN", Name: "Chine", Flag: "🇨🇳", IsActive: true},
		"BR": {Code: "BR", Name: "Brésil", Flag: "🇧🇷", IsActive: true},
		"YU": {Code: "YU", Name: "Yougoslavie", Flag: "🏳", IsActive: false},
	}
	requirements := memoryRequirements{
		"FR-JP": {Origin: "FR", Destination: "JP", Level: visa.LevelGreen, Text: "Visa not required", MaxStay: pointer.To("90 jours")},
		"FR-CN": {Origin: "FR", Destination: "CN", Level: visa.LevelRed, Text: "Visa required", Cost: pointer.To("126 EUR")},
		"FR-YU": {Origin: "FR", Destination: "YU", Level: visa.LevelRed, Text: "Visa required"},
	}
	users := memoryUsers{userID: {ID: userID, Email: "ada@example.com"}}

	f := &fixture{
		store:        &memoryStore{saved: map[string]favorite.Favorites{}},
		requirements: requirements,
		clock:        time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = favorite.NewService(f.store, countries, requirements, users,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	).WithClock(func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	})
	return f
}

/*
TestService_Add saves a journey and reports the total.
*/
func TestService_Add(t *testing.T) {
	f := newFixture()

	result, err := f.service.Add(context.Background(), userID, " fr", "jp ")
	require.NoError(t, err)

	assert.Equal(t, "FR-JP", result.Favorite.ID)
	assert.Equal(t, "Japon", result.Favorite.Journey.To.Name)
	assert.Equal(t, visa.LevelGreen, result.Favorite.Requirement.Level)
	assert.Equal(t, 1, result.TotalFavorites)

	saved, err := f.service.IsFavorite(context.Background(), userID, "FR", "JP")
	require.NoError(t, err)
	assert.True(t, saved)
}

/*
TestService_Add_Errors checks the order of every rejection.
*/
func TestService_Add_Errors(t *testing.T) {
	tests := []struct {
		name string
		user string
		from string
		to   string
		code string
	}{
		{"missing", userID, "FR", "", "MISSING_PARAMETERS"},
		{"same_country", userID, "FR", "fr", "SAME_COUNTRY"},
		{"unknown_country", userID, "FR", "ZZ", "COUNTRY_NOT_FOUND"},
		{"inactive_country", userID, "FR", "YU", "COUNTRY_NOT_FOUND"},
		{"no_requirement", userID, "FR", "BR", "VISA_NOT_FOUND"},
		{"unknown_user_after_data_checks", "nobody", "FR", "JP", "USER_NOT_FOUND"},
		{"country_checked_before_user", "nobody", "FR", "ZZ", "COUNTRY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.service.Add(context.Background(), tt.user, tt.from, tt.to)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

/*
TestService_Add_Duplicate reports ALREADY_FAVORITE from the set check and
from a lost race at insert time.
*/
func TestService_Add_Duplicate(t *testing.T) {
	f := newFixture()

	_, err := f.service.Add(context.Background(), userID, "FR", "JP")
	require.NoError(t, err)

	_, err = f.service.Add(context.Background(), userID, "FR", "JP")
	assert.ErrorIs(t, err, favorite.ErrAlreadyFavorite)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	f.store.raceOnInsert = true
	_, err = f.service.Add(context.Background(), userID, "FR", "CN")
	assert.ErrorIs(t, err, favorite.ErrAlreadyFavorite)

	count, err := f.service.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

/*
TestService_Remove covers removal and its failures.
*/
func TestService_Remove(t *testing.T) {
	f := newFixture()

	_, err := f.service.Add(context.Background(), userID, "FR", "JP")
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), userID, "FR", "CN")
	require.NoError(t, err)

	result, err := f.service.Remove(context.Background(), userID, "fr", "jp")
	require.NoError(t, err)
	assert.Equal(t, "FR", result.Removed.From)
	assert.Equal(t, "JP", result.Removed.To)
	assert.Equal(t, 1, result.TotalFavorites)

	_, err = f.service.Remove(context.Background(), userID, "FR", "JP")
	assert.ErrorIs(t, err, favorite.ErrFavoriteNotFound)

	_, err = f.service.Remove(context.Background(), userID, "", "JP")
	assert.ErrorIs(t, err, visa.ErrMissingParameters)

	_, err = f.service.Remove(context.Background(), "nobody", "FR", "CN")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

/*
TestService_ListWithDetail orders newest first and skips stale entries.
*/
func TestService_ListWithDetail(t *testing.T) {
	f := newFixture()

	_, err := f.service.Add(context.Background(), userID, "FR", "JP")
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), userID, "FR", "CN")
	require.NoError(t, err)

	// A favorite whose destination was deactivated after it was saved.
	f.store.saved[userID] = append(f.store.saved[userID], favorite.Favorite{
		UserID: userID, Origin: "FR", Destination: "YU", AddedAt: f.clock.Add(time.Hour),
	})

	result, err := f.service.ListWithDetail(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, result.Favorites, 2)
	assert.Equal(t, "FR-CN", result.Favorites[0].ID)
	assert.Equal(t, "FR-JP", result.Favorites[1].ID)
	assert.Equal(t, "#EF4444", result.Favorites[0].Requirement.Color)
	require.NotNil(t, result.Favorites[0].Details)
	assert.Equal(t, "126 EUR", *result.Favorites[0].Details.Cost)

	assert.Equal(t, 2, result.Metadata.Total)
	assert.Equal(t, 3, result.Metadata.TotalInProfile)
}

/*
TestService_ListWithDetail_SkipsDeletedRequirement hides a journey whose
requirement row disappeared, while still counting it in the profile.
*/
func TestService_ListWithDetail_SkipsDeletedRequirement(t *testing.T) {
	f := newFixture()

	_, err := f.service.Add(context.Background(), userID, "FR", "JP")
	require.NoError(t, err)
	delete(f.requirements, "FR-JP")

	result, err := f.service.ListWithDetail(context.Background(), userID)
	require.NoError(t, err)

	assert.Empty(t, result.Favorites)
	assert.Equal(t, 0, result.Metadata.Total)
	assert.Equal(t, 1, result.Metadata.TotalInProfile)
}

/*
TestService_ListWithDetail_PropagatesStorageErrors does not hide outages as empty lists.
*/
func TestService_ListWithDetail_PropagatesStorageErrors(t *testing.T) {
	f := newFixture()
	f.store.broken = true

	_, err := f.service.ListWithDetail(context.Background(), userID)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))

	_, err = f.service.ListWithDetail(context.Background(), "nobody")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

/*
TestFavorites_SetSemantics checks the in-memory collection.
*/
func TestFavorites_SetSemantics(t *testing.T) {
	var favorites favorite.Favorites

	assert.True(t, favorites.Add(favorite.Favorite{Origin: "FR", Destination: "JP"}))
	assert.False(t, favorites.Add(favorite.Favorite{Origin: "FR", Destination: "JP"}))
	assert.True(t, favorites.Add(favorite.Favorite{Origin: "JP", Destination: "FR"}))
	assert.Len(t, favorites, 2)

	assert.True(t, favorites.Remove("FR", "JP"))
	assert.False(t, favorites.Remove("FR", "JP"))
	assert.False(t, favorites.Contains("FR", "JP"))
	assert.True(t, favorites.Contains("JP", "FR"))
}

func authenticated(request *http.Request) *http.Request {
	claims := &sec.SessionClaims{UserID: userID}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

/*
TestHandler_AddAndRemove drives the HTTP surface end to end.
*/
func TestHandler_AddAndRemove(t *testing.T) {
	f := newFixture()
	router := favorite.NewHandler(f.service).Routes()

	body, err := json.Marshal(map[string]string{"from": "FR", "to": "JP"})
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, authenticated(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authenticated(httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))))
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authenticated(httptest.NewRequest(http.MethodDelete, "/?from=fr&to=jp", nil)))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, authenticated(httptest.NewRequest(http.MethodDelete, "/", bytes.NewReader(body))))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
