// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package seed loads the reference dataset: countries and the directed visa
requirements between them.

A seed document is self-contained. Requirements may only reference countries
declared in the same document, so the loader never depends on what storage
already holds. Invalid entries are skipped and reported, storage failures
abort the run.
*/
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
)

// Document is the on-disk shape of a seed file.
type Document struct {
	Countries    []*country.Country  `json:"countries"`
	Requirements []*visa.Requirement `json:"requirements"`
}

// Decode reads a seed document.
func Decode(reader io.Reader) (*Document, error) {
	var document Document
	if err := json.NewDecoder(reader).Decode(&document); err != nil {
		return nil, fmt.Errorf("seed: invalid document: %w", err)
	}
	return &document, nil
}

// # Writers

// CountryWriter persists countries. [country.Repository] satisfies it.
type CountryWriter interface {
	Upsert(context context.Context, country *country.Country) error
}

// RequirementWriter persists requirements. [visa.PostgresRepository] satisfies it.
type RequirementWriter interface {
	Upsert(context context.Context, requirement *visa.Requirement) error
}

// Report counts what a run did.
type Report struct {
	Countries    int `json:"countries"`
	Requirements int `json:"requirements"`
	Skipped      int `json:"skipped"`
}

// Loader writes seed documents to storage.
type Loader struct {
	countries    CountryWriter
	requirements RequirementWriter
	logger       *slog.Logger
}

// NewLoader builds a loader over the given writers.
func NewLoader(countries CountryWriter, requirements RequirementWriter, logger *slog.Logger) *Loader {
	return &Loader{countries: countries, requirements: requirements, logger: logger}
}

/*
Apply creates or replaces every valid entry of the document.

Description: Countries are written first. A requirement without text gets the
default text of its level. Requirements referencing a country that is missing
or invalid in the document are skipped.

Returns:
  - Report: Written and skipped counts
  - error: The first storage failure
*/
func (loader *Loader) Apply(context context.Context, document *Document) (Report, error) {
	var report Report
	known := make(map[string]bool, len(document.Countries))

	for _, c := range document.Countries {
		if c == nil {
			report.Skipped++
			continue
		}

		c.Code = country.NormalizeCode(c.Code)
		if err := c.Validate(); err != nil {
			loader.skip(context, &report, "country", c.Code, err)
			continue
		}

		if err := loader.countries.Upsert(context, c); err != nil {
			return report, fmt.Errorf("seed: country %s: %w", c.Code, err)
		}
		known[c.Code] = true
		report.Countries++
	}

	for _, requirement := range document.Requirements {
		if requirement == nil {
			report.Skipped++
			continue
		}

		requirement.Origin = country.NormalizeCode(requirement.Origin)
		requirement.Destination = country.NormalizeCode(requirement.Destination)
		if requirement.Text == "" {
			requirement.Text = requirement.Level.ReadableText()
		}

		if err := requirement.Validate(); err != nil {
			loader.skip(context, &report, "requirement", requirement.Key(), err)
			continue
		}
		if !known[requirement.Origin] || !known[requirement.Destination] {
			loader.skip(context, &report, "requirement", requirement.Key(), country.ErrCountryNotFound)
			continue
		}

		if err := loader.requirements.Upsert(context, requirement); err != nil {
			return report, fmt.Errorf("seed: requirement %s: %w", requirement.Key(), err)
		}
		report.Requirements++
	}

	return report, nil
}

func (loader *Loader) skip(context context.Context, report *Report, kind, key string, err error) {
	report.Skipped++
	loader.logger.WarnContext(context, "seed_entry_skipped",
		slog.String("kind", kind),
		slog.String("key", key),
		slog.Any("error", err),
	)
}
