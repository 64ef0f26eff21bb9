// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package seed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/seed"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/visa"
)

type memoryCountries struct {
	saved map[string]*country.Country
}

func (writer *memoryCountries) Upsert(_ context.Context, c *country.Country) error {
	writer.saved[c.Code] = c
	return nil
}

type memoryRequirements struct {
	saved  map[string]*visa.Requirement
	broken bool
}

func (writer *memoryRequirements) Upsert(_ context.Context, requirement *visa.Requirement) error {
	if writer.broken {
		return errors.New("connection reset")
	}
	writer.saved[requirement.Key()] = requirement
	return nil
}

func newLoader() (*seed.Loader, *memoryCountries, *memoryRequirements) {
	countries := &memoryCountries{saved: map[string]*country.Country{}}
	requirements := &memoryRequirements{saved: map[string]*visa.Requirement{}}
	loader := seed.NewLoader(countries, requirements, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return loader, countries, requirements
}

const document = `{
  "countries": [
    {"code": "fr", "name": "France", "flag": "🇫🇷", "continent": "Europe", "isActive": true},
    {"code": "JP", "name": "Japon", "flag": "🇯🇵", "continent": "Asia", "isActive": true},
    {"code": "XX", "name": "", "flag": "🏳"}
  ],
  "requirements": [
    {"originCountry": "FR", "destinationCountry": "jp", "requirement": "green", "maxStay": "90 jours"},
    {"originCountry": "JP", "destinationCountry": "FR", "requirement": "blue", "requirementText": "eVisa"},
    {"originCountry": "FR", "destinationCountry": "XX", "requirement": "red"},
    {"originCountry": "FR", "destinationCountry": "US", "requirement": "yellow"},
    {"originCountry": "JP", "destinationCountry": "FR", "requirement": "purple"},
    {"originCountry": "FR", "destinationCountry": "JP", "requirement": "red", "requirementText": "Not admitted"}
  ]
}`

/*
TestLoader_Apply covers normalization, default texts and skipping rules.
*/
func TestLoader_Apply(t *testing.T) {
	loader, countries, requirements := newLoader()

	parsed, err := seed.Decode(strings.NewReader(document))
	require.NoError(t, err)

	report, err := loader.Apply(context.Background(), parsed)
	require.NoError(t, err)

	assert.Equal(t, seed.Report{Countries: 2, Requirements: 2, Skipped: 5}, report)
	assert.Contains(t, countries.saved, "FR")
	assert.NotContains(t, countries.saved, "XX")

	frJP := requirements.saved["FR-JP"]
	require.NotNil(t, frJP)
	assert.Equal(t, visa.LevelGreen, frJP.Level)
	assert.Equal(t, "Visa not required", frJP.Text)
	require.NotNil(t, frJP.MaxStay)
	assert.Equal(t, "90 jours", *frJP.MaxStay)

	assert.Equal(t, "eVisa", requirements.saved["JP-FR"].Text)
}

/*
TestLoader_Apply_StopsOnStorageFailure reports the failing entry.
*/
func TestLoader_Apply_StopsOnStorageFailure(t *testing.T) {
	loader, _, requirements := newLoader()
	requirements.broken = true

	parsed, err := seed.Decode(strings.NewReader(document))
	require.NoError(t, err)

	report, err := loader.Apply(context.Background(), parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FR-JP")
	assert.Equal(t, 2, report.Countries)
	assert.Zero(t, report.Requirements)
}

/*
TestDecode_SampleDocument keeps the bundled sample loadable.
*/
func TestDecode_SampleDocument(t *testing.T) {
	file, err := os.Open("../../../data/seed/sample.json")
	require.NoError(t, err)
	defer file.Close()

	parsed, err := seed.Decode(file)
	require.NoError(t, err)

	loader, _, _ := newLoader()
	report, err := loader.Apply(context.Background(), parsed)
	require.NoError(t, err)

	assert.Equal(t, len(parsed.Countries), report.Countries)
	assert.Equal(t, len(parsed.Requirements), report.Requirements)
	assert.Zero(t, report.Skipped)
}

/*
TestDecode_RejectsMalformedInput surfaces JSON errors.
*/
func TestDecode_RejectsMalformedInput(t *testing.T) {
	_, err := seed.Decode(strings.NewReader(`{"countries": [`))
	assert.Error(t, err)
}
