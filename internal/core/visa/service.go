// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package visa

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
)

// # Contracts

// CountryLookup resolves active countries. [country.Service] satisfies it.
type CountryLookup interface {
	FindByCode(context context.Context, code string) (*country.Country, error)
	Counts(context context.Context) (country.Counts, error)
}

// FavoriteChecker reports whether a user saved a journey.
type FavoriteChecker interface {
	IsFavorite(context context.Context, userID, origin, destination string) (bool, error)
}

// StatsCache stores the aggregated statistics between recomputations.
type StatsCache interface {
	Get(context context.Context, key string, target any) (bool, error)
	Set(context context.Context, key string, value any, ttl time.Duration) error
}

// Service answers journey searches and destination listings.
type Service struct {
	countries  CountryLookup
	repository Repository
	favorites  FavoriteChecker
	cache      StatsCache
	cacheTTL   time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Options carries the optional collaborators of a [Service].
type Options struct {
	// Favorites enables the isFavorite flag on searches.
	Favorites FavoriteChecker
	// Cache and CacheTTL enable caching of [Service.Statistics].
	Cache    StatsCache
	CacheTTL time.Duration
	// Clock overrides time.Now.
	Clock func() time.Time
}

// NewService constructs the query service.
func NewService(countries CountryLookup, repository Repository, logger *slog.Logger, options Options) *Service {
	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		countries:  countries,
		repository: repository,
		favorites:  options.Favorites,
		cache:      options.Cache,
		cacheTTL:   options.CacheTTL,
		logger:     logger,
		now:        clock,
	}
}

// # Search

// Journey is an ordered pair of countries.
type Journey struct {
	From country.Summary `json:"from"`
	To   country.Summary `json:"to"`
}

// RequirementView is the requirement as shown to a traveller.
type RequirementView struct {
	Level       Level  `json:"level"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Details holds the optional practical information of a requirement.
type Details struct {
	MaxStay        *string `json:"maxStay"`
	ProcessingTime *string `json:"processingTime"`
	Cost           *string `json:"cost"`
	Notes          *string `json:"notes"`
}

// SearchMetadata describes a [SearchResult].
type SearchMetadata struct {
	LastUpdated time.Time `json:"lastUpdated"`
	IsFavorite  bool      `json:"isFavorite"`
	SearchedAt  time.Time `json:"searchedAt"`
}

// SearchResult is the answer to "what do I need to travel from A to B".
type SearchResult struct {
	ID          string          `json:"id"`
	Journey     Journey         `json:"journey"`
	Requirement RequirementView `json:"requirement"`
	Details     Details         `json:"details"`
	Metadata    SearchMetadata  `json:"metadata"`
}

/*
Search resolves the requirement for travelling from one country to another.

Description: Validation happens before any storage access. When userID is
set, the favorite flag is looked up on a best-effort basis: a failure there
is logged and reported as "not a favorite".

Parameters:
  - context: context.Context
  - from: string (origin code, any case)
  - to: string (destination code, any case)
  - userID: string (empty for anonymous callers)

Returns:
  - *SearchResult: Journey, requirement and metadata
  - error: MISSING_PARAMETERS, SAME_COUNTRY, ORIGIN_COUNTRY_NOT_FOUND,
    DESTINATION_COUNTRY_NOT_FOUND, VISA_REQUIREMENT_NOT_FOUND or storage errors
*/
func (service *Service) Search(context context.Context, from, to, userID string) (*SearchResult, error) {
	origin, destination, err := NormalizePair(from, to)
	if err != nil {
		return nil, err
	}

	originCountry, err := service.countries.FindByCode(context, origin)
	if err != nil {
		return nil, narrowNotFound(err, ErrOriginNotFound)
	}

	destinationCountry, err := service.countries.FindByCode(context, destination)
	if err != nil {
		return nil, narrowNotFound(err, ErrDestinationNotFound)
	}

	requirement, err := service.repository.FindByPair(context, origin, destination)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		ID: requirement.Key(),
		Journey: Journey{
			From: originCountry.Summary(),
			To:   destinationCountry.Summary(),
		},
		Requirement: RequirementView{
			Level:       requirement.Level,
			Text:        requirement.Text,
			Description: requirement.Level.Description(),
		},
		Details: Details{
			MaxStay:        requirement.MaxStay,
			ProcessingTime: requirement.ProcessingTime,
			Cost:           requirement.Cost,
			Notes:          requirement.Notes,
		},
		Metadata: SearchMetadata{
			LastUpdated: requirement.LastUpdated,
			IsFavorite:  service.isFavorite(context, userID, origin, destination),
			SearchedAt:  service.now().UTC(),
		},
	}, nil
}

// isFavorite never fails the caller.
func (service *Service) isFavorite(context context.Context, userID, origin, destination string) bool {
	if userID == "" || service.favorites == nil {
		return false
	}

	favorite, err := service.favorites.IsFavorite(context, userID, origin, destination)
	if err != nil {
		service.logger.WarnContext(context, "favorite_lookup_failed",
			slog.String("user_id", userID),
			slog.String("journey", JourneyKey(origin, destination)),
			slog.Any("error", err),
		)
		return false
	}
	return favorite
}

// narrowNotFound replaces a country-not-found error with a role-specific one.
func narrowNotFound(err error, replacement error) error {
	if errors.Is(err, country.ErrCountryNotFound) {
		return replacement
	}
	return err
}

// # Destinations

// DestinationEntry is one destination in a grouped listing.
type DestinationEntry struct {
	ID          string          `json:"id"`
	Destination country.Summary `json:"destination"`
	Requirement struct {
		Level Level  `json:"level"`
		Text  string `json:"text"`
	} `json:"requirement"`
	Details struct {
		MaxStay *string `json:"maxStay"`
		Cost    *string `json:"cost"`
	} `json:"details"`
}

// Groups holds destinations bucketed by level. Every bucket is always present.
type Groups struct {
	Green  []DestinationEntry `json:"green"`
	Yellow []DestinationEntry `json:"yellow"`
	Blue   []DestinationEntry `json:"blue"`
	Red    []DestinationEntry `json:"red"`
}

// DestinationStatistics counts the destinations of a listing.
type DestinationStatistics struct {
	Total          int `json:"total"`
	NoVisaRequired int `json:"noVisaRequired"`
	EtaRequired    int `json:"etaRequired"`
	VisaOnArrival  int `json:"visaOnArrival"`
	VisaRequired   int `json:"visaRequired"`
}

// DestinationsResult is every destination reachable from one origin.
type DestinationsResult struct {
	Origin       country.Summary       `json:"origin"`
	Statistics   DestinationStatistics `json:"statistics"`
	Destinations Groups                `json:"destinations"`
	Metadata     struct {
		SearchedAt time.Time `json:"searchedAt"`
	} `json:"metadata"`
}

// GroupDestinations buckets destinations by level, keeping their order, and
// counts them. Destinations with an unknown level are left out.
func GroupDestinations(destinations []*Destination) (Groups, DestinationStatistics) {
	groups := Groups{
		Green:  []DestinationEntry{},
		Yellow: []DestinationEntry{},
		Blue:   []DestinationEntry{},
		Red:    []DestinationEntry{},
	}

	for _, destination := range destinations {
		entry := DestinationEntry{
			ID:          destination.Key(),
			Destination: destination.Summary(),
		}
		entry.Requirement.Level = destination.Level
		entry.Requirement.Text = destination.Text
		entry.Details.MaxStay = destination.MaxStay
		entry.Details.Cost = destination.Cost

		switch destination.Level {
		case LevelGreen:
			groups.Green = append(groups.Green, entry)
		case LevelYellow:
			groups.Yellow = append(groups.Yellow, entry)
		case LevelBlue:
			groups.Blue = append(groups.Blue, entry)
		case LevelRed:
			groups.Red = append(groups.Red, entry)
		}
	}

	statistics := DestinationStatistics{
		NoVisaRequired: len(groups.Green),
		EtaRequired:    len(groups.Yellow),
		VisaOnArrival:  len(groups.Blue),
		VisaRequired:   len(groups.Red),
	}
	statistics.Total = statistics.NoVisaRequired + statistics.EtaRequired + statistics.VisaOnArrival + statistics.VisaRequired

	return groups, statistics
}

/*
ListDestinations returns every active destination reachable from origin,
grouped by requirement level and ordered by destination name.

Returns:
  - *DestinationsResult: Groups, statistics and the origin summary
  - error: MISSING_PARAMETERS, COUNTRY_NOT_FOUND or storage errors
*/
func (service *Service) ListDestinations(context context.Context, origin string) (*DestinationsResult, error) {
	code := country.NormalizeCode(origin)
	if code == "" {
		return nil, ErrMissingParameters
	}

	originCountry, err := service.countries.FindByCode(context, code)
	if err != nil {
		return nil, err
	}

	destinations, err := service.repository.ListFromOrigin(context, code)
	if err != nil {
		return nil, err
	}

	compare := country.NameComparer()
	slices.SortStableFunc(destinations, func(a, b *Destination) int {
		return compare(a.DestinationName, b.DestinationName)
	})

	groups, statistics := GroupDestinations(destinations)

	result := &DestinationsResult{
		Origin:       originCountry.Summary(),
		Statistics:   statistics,
		Destinations: groups,
	}
	result.Metadata.SearchedAt = service.now().UTC()

	return result, nil
}

// # Statistics

// Statistics is the aggregate view over the whole dataset.
type Statistics struct {
	Countries country.Counts `json:"countries"`
	Visas     struct {
		Total   int         `json:"total"`
		ByLevel LevelCounts `json:"byLevel"`
	} `json:"visas"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Statistics returns dataset-wide counts, served from cache when available.
func (service *Service) Statistics(context context.Context) (*Statistics, error) {
	var cached Statistics
	if service.cache != nil {
		found, err := service.cache.Get(context, constants.RedisKeyStatistics, &cached)
		if err != nil {
			service.logger.WarnContext(context, "statistics_cache_read_failed", slog.Any("error", err))
		}
		if found {
			return &cached, nil
		}
	}

	countryCounts, err := service.countries.Counts(context)
	if err != nil {
		return nil, err
	}

	levelCounts, err := service.repository.CountByLevel(context)
	if err != nil {
		return nil, err
	}

	statistics := &Statistics{Countries: countryCounts, GeneratedAt: service.now().UTC()}
	statistics.Visas.Total = levelCounts.Total()
	statistics.Visas.ByLevel = levelCounts

	if service.cache != nil {
		if err := service.cache.Set(context, constants.RedisKeyStatistics, statistics, service.cacheTTL); err != nil {
			service.logger.WarnContext(context, "statistics_cache_write_failed", slog.Any("error", err))
		}
	}

	return statistics, nil
}
