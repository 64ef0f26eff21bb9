// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package favorite

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/users/auth"
)

// # Contracts

// CountryLookup resolves active countries.
type CountryLookup interface {
	FindByCode(context context.Context, code string) (*country.Country, error)
}

// RequirementLookup resolves the requirement of a journey.
type RequirementLookup interface {
	FindByPair(context context.Context, origin, destination string) (*visa.Requirement, error)
}

// UserLookup resolves accounts.
type UserLookup interface {
	FindByID(context context.Context, id string) (*auth.User, error)
}

// Service manages saved journeys.
type Service struct {
	repository   Repository
	countries    CountryLookup
	requirements RequirementLookup
	users        UserLookup
	logger       *slog.Logger
	now          func() time.Time
}

// NewService constructs a new [Service].
func NewService(
	repository Repository,
	countries CountryLookup,
	requirements RequirementLookup,
	users UserLookup,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository:   repository,
		countries:    countries,
		requirements: requirements,
		users:        users,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides time.Now. Used by tests.
func (service *Service) WithClock(clock func() time.Time) *Service {
	service.now = clock
	return service
}

// # Views

// RequirementView is the requirement shown next to a saved journey.
type RequirementView struct {
	Level visa.Level `json:"level"`
	Text  string     `json:"text"`
	Color string     `json:"color,omitempty"`
}

// Details holds the practical information of a saved journey.
type Details struct {
	MaxStay        *string `json:"maxStay"`
	Cost           *string `json:"cost"`
	ProcessingTime *string `json:"processingTime"`
}

// Entry is a favorite joined with current country and requirement data.
type Entry struct {
	ID          string          `json:"id"`
	Journey     visa.Journey    `json:"journey"`
	Requirement RequirementView `json:"requirement"`
	Details     *Details        `json:"details,omitempty"`
	AddedAt     time.Time       `json:"addedAt"`
}

// AddResult is returned by [Service.Add].
type AddResult struct {
	Favorite       Entry `json:"favorite"`
	TotalFavorites int   `json:"totalFavorites"`
}

// RemoveResult is returned by [Service.Remove].
type RemoveResult struct {
	Removed struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"removed"`
	TotalFavorites int `json:"totalFavorites"`
}

// ListResult is returned by [Service.ListWithDetail].
type ListResult struct {
	Favorites []Entry `json:"favorites"`
	Metadata  struct {
		Total          int       `json:"total"`
		TotalInProfile int       `json:"totalInProfile"`
		RetrievedAt    time.Time `json:"retrievedAt"`
	} `json:"metadata"`
}

// # Use Cases

/*
Add saves a journey for userID.

Description: Checks run in a fixed order: parameters present, distinct
countries, both countries active, requirement known, account exists, pair
not already saved. The pair is added to the in-memory set first and then
persisted; the storage key rejects a concurrent duplicate as well.

Parameters:
  - context: context.Context
  - userID: string
  - from: string (origin code, any case)
  - to: string (destination code, any case)

Returns:
  - *AddResult: The saved journey and the new total
  - error: MISSING_PARAMETERS, SAME_COUNTRY, COUNTRY_NOT_FOUND, VISA_NOT_FOUND,
    USER_NOT_FOUND, ALREADY_FAVORITE or storage errors
*/
func (service *Service) Add(context context.Context, userID, from, to string) (*AddResult, error) {
	origin, destination, err := visa.NormalizePair(from, to)
	if err != nil {
		return nil, err
	}

	originCountry, err := service.countries.FindByCode(context, origin)
	if err != nil {
		return nil, err
	}
	destinationCountry, err := service.countries.FindByCode(context, destination)
	if err != nil {
		return nil, err
	}

	requirement, err := service.requirements.FindByPair(context, origin, destination)
	if err != nil {
		if errors.Is(err, visa.ErrRequirementNotFound) {
			return nil, ErrVisaNotFound
		}
		return nil, err
	}

	if _, err := service.users.FindByID(context, userID); err != nil {
		return nil, err
	}

	favorites, err := service.repository.ListByUser(context, userID)
	if err != nil {
		return nil, err
	}

	favorite := Favorite{
		UserID:      userID,
		Origin:      origin,
		Destination: destination,
		AddedAt:     service.now().UTC(),
	}
	if !favorites.Add(favorite) {
		return nil, ErrAlreadyFavorite
	}

	inserted, err := service.repository.Insert(context, favorite)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrAlreadyFavorite
	}

	service.logger.InfoContext(context, "favorite_added",
		slog.String("user_id", userID),
		slog.String("journey", favorite.Key()),
	)

	return &AddResult{
		Favorite: Entry{
			ID: favorite.Key(),
			Journey: visa.Journey{
				From: originCountry.Summary(),
				To:   destinationCountry.Summary(),
			},
			Requirement: RequirementView{
				Level: requirement.Level,
				Text:  requirement.Text,
			},
			AddedAt: favorite.AddedAt,
		},
		TotalFavorites: len(favorites),
	}, nil
}

/*
Remove deletes a saved journey.

Returns:
  - *RemoveResult: The removed pair and the new total
  - error: MISSING_PARAMETERS, USER_NOT_FOUND, FAVORITE_NOT_FOUND or storage errors
*/
func (service *Service) Remove(context context.Context, userID, from, to string) (*RemoveResult, error) {
	origin, destination := country.NormalizeCode(from), country.NormalizeCode(to)
	if origin == "" || destination == "" {
		return nil, visa.ErrMissingParameters
	}

	if _, err := service.users.FindByID(context, userID); err != nil {
		return nil, err
	}

	deleted, err := service.repository.Delete(context, userID, origin, destination)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrFavoriteNotFound
	}

	total, err := service.repository.CountByUser(context, userID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "favorite_removed",
		slog.String("user_id", userID),
		slog.String("journey", visa.JourneyKey(origin, destination)),
	)

	result := &RemoveResult{TotalFavorites: total}
	result.Removed.From = origin
	result.Removed.To = destination
	return result, nil
}

/*
ListWithDetail returns the saved journeys of userID joined with current data.

Description: Entries whose countries or requirement no longer resolve are
skipped with a warning; TotalInProfile still counts them.

Returns:
  - *ListResult: Entries newest first
  - error: USER_NOT_FOUND or storage errors
*/
func (service *Service) ListWithDetail(context context.Context, userID string) (*ListResult, error) {
	if _, err := service.users.FindByID(context, userID); err != nil {
		return nil, err
	}

	favorites, err := service.repository.ListByUser(context, userID)
	if err != nil {
		return nil, err
	}
	favorites.NewestFirst()

	entries := make([]Entry, 0, len(favorites))
	for _, favorite := range favorites {
		entry, err := service.detail(context, favorite)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindNotFound {
				return nil, err
			}
			service.logger.WarnContext(context, "stale_favorite_skipped",
				slog.String("user_id", userID),
				slog.String("journey", favorite.Key()),
				slog.Any("error", err),
			)
			continue
		}
		entries = append(entries, *entry)
	}

	result := &ListResult{Favorites: entries}
	result.Metadata.Total = len(entries)
	result.Metadata.TotalInProfile = len(favorites)
	result.Metadata.RetrievedAt = service.now().UTC()

	return result, nil
}

// detail joins one favorite with its countries and requirement.
func (service *Service) detail(context context.Context, favorite Favorite) (*Entry, error) {
	originCountry, err := service.countries.FindByCode(context, favorite.Origin)
	if err != nil {
		return nil, err
	}
	destinationCountry, err := service.countries.FindByCode(context, favorite.Destination)
	if err != nil {
		return nil, err
	}
	requirement, err := service.requirements.FindByPair(context, favorite.Origin, favorite.Destination)
	if err != nil {
		return nil, err
	}

	return &Entry{
		ID: favorite.Key(),
		Journey: visa.Journey{
			From: originCountry.Summary(),
			To:   destinationCountry.Summary(),
		},
		Requirement: RequirementView{
			Level: requirement.Level,
			Text:  requirement.Text,
			Color: requirement.Level.Color(),
		},
		Details: &Details{
			MaxStay:        requirement.MaxStay,
			Cost:           requirement.Cost,
			ProcessingTime: requirement.ProcessingTime,
		},
		AddedAt: favorite.AddedAt,
	}, nil
}

// IsFavorite reports whether userID saved the journey. Codes are expected
// normalized.
func (service *Service) IsFavorite(context context.Context, userID, origin, destination string) (bool, error) {
	return service.repository.Exists(context, userID, origin, destination)
}

// CountByUser returns the number of saved journeys of userID.
func (service *Service) CountByUser(context context.Context, userID string) (int, error) {
	return service.repository.CountByUser(context, userID)
}
