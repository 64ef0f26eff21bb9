// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package country

import (
	"context"
	"log/slog"
	"time"
)

// Service exposes read access to the country directory.
type Service struct {
	repository Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a country directory service.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
		now:        time.Now,
	}
}

// FindByCode returns the active country for code, after normalizing it.
// Absent and inactive countries both yield [ErrCountryNotFound].
func (service *Service) FindByCode(context context.Context, code string) (*Country, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrCountryNotFound
	}
	return service.repository.FindActiveByCode(context, normalized)
}

// ListActive returns every active country ordered by name.
func (service *Service) ListActive(context context.Context) ([]*Country, error) {
	countries, err := service.repository.ListActive(context)
	if err != nil {
		return nil, err
	}

	SortByName(countries)
	return countries, nil
}

// Counts returns the directory size, including inactive countries.
func (service *Service) Counts(context context.Context) (Counts, error) {
	return service.repository.Counts(context)
}

// Directory is the payload of the country listing endpoint.
type Directory struct {
	Countries   []*Country        `json:"countries"`
	ByContinent []ContinentGroup  `json:"byContinent"`
	Metadata    DirectoryMetadata `json:"metadata"`
}

// DirectoryMetadata describes a [Directory].
type DirectoryMetadata struct {
	Total           int       `json:"total"`
	ContinentsCount int       `json:"continentsCount"`
	RetrievedAt     time.Time `json:"retrievedAt"`
}

// Directory lists active countries both flat and grouped by continent.
func (service *Service) Directory(context context.Context) (*Directory, error) {
	countries, err := service.ListActive(context)
	if err != nil {
		return nil, err
	}

	groups := GroupByContinent(countries)

	return &Directory{
		Countries:   countries,
		ByContinent: groups,
		Metadata: DirectoryMetadata{
			Total:           len(countries),
			ContinentsCount: len(groups),
			RetrievedAt:     service.now().UTC(),
		},
	}, nil
}
