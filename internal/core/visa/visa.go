// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package visa implements the visa requirement graph and the queries built on it.

A requirement is a directed edge between two countries: what a holder of the
origin passport needs to enter the destination. Edges are reference data
loaded by the seed command; the application only reads them.

# Asymmetry

The edge (A, B) says nothing about (B, A). Every lookup is directional.
*/
package visa

import (
	"slices"
	"strings"
	"time"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/core/country"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/validate"
)

// # Errors

var (
	ErrMissingParameters   = validate.Failure("MISSING_PARAMETERS", "Origin and destination countries are required")
	ErrSameCountry         = validate.Failure("SAME_COUNTRY", "Origin and destination countries must be different")
	ErrOriginNotFound      = apperr.NotFound("Origin country").WithCode("ORIGIN_COUNTRY_NOT_FOUND")
	ErrDestinationNotFound = apperr.NotFound("Destination country").WithCode("DESTINATION_COUNTRY_NOT_FOUND")
	ErrRequirementNotFound = apperr.NotFound("Visa requirement").WithCode("VISA_REQUIREMENT_NOT_FOUND")
)

// # Requirement Levels

// Level is the four-colour severity of a visa requirement.
type Level string

const (
	LevelGreen  Level = "green"
	LevelYellow Level = "yellow"
	LevelBlue   Level = "blue"
	LevelRed    Level = "red"
)

// Levels lists every level from least to most restrictive.
var Levels = []Level{LevelGreen, LevelYellow, LevelBlue, LevelRed}

// Fallbacks used when a level is not one of [Levels].
const (
	UnknownDescription  = "Information non disponible"
	UnknownReadableText = "Unknown requirement"
	UnknownColor        = "#6B7280"
)

// levelInfo holds the fixed presentation data of a level.
type levelInfo struct {
	description string
	readable    string
	color       string
	texts       []string
}

var levelTable = map[Level]levelInfo{
	LevelGreen: {
		description: "Aucun visa requis. Vous pouvez voyager librement avec votre passeport.",
		readable:    "Visa not required",
		color:       "#10B981",
		texts:       []string{"Visa not required"},
	},
	LevelYellow: {
		description: "Autorisation de voyage électronique (eTA) requise. Demande en ligne avant le départ.",
		readable:    "eTA required",
		color:       "#F59E0B",
		texts:       []string{"eTA required"},
	},
	LevelBlue: {
		description: "Visa disponible à l'arrivée ou eVisa. Obtenez votre visa à l'aéroport ou en ligne.",
		readable:    "Visa on arrival",
		color:       "#3B82F6",
		texts:       []string{"Visa on arrival", "eVisa"},
	},
	LevelRed: {
		description: "Visa obligatoire. Vous devez obtenir un visa avant le départ auprès du consulat.",
		readable:    "Visa required",
		color:       "#EF4444",
		texts:       []string{"Visa required"},
	},
}

// Valid reports whether l is one of [Levels].
func (l Level) Valid() bool {
	_, ok := levelTable[l]
	return ok
}

// Description returns the traveller-facing description of the level.
func (l Level) Description() string {
	if info, ok := levelTable[l]; ok {
		return info.description
	}
	return UnknownDescription
}

// ReadableText returns a short English label for the level.
func (l Level) ReadableText() string {
	if info, ok := levelTable[l]; ok {
		return info.readable
	}
	return UnknownReadableText
}

// Color returns the hex colour used to render the level.
func (l Level) Color() string {
	if info, ok := levelTable[l]; ok {
		return info.color
	}
	return UnknownColor
}

// AcceptsText reports whether text is a valid requirement text for the level.
func (l Level) AcceptsText(text string) bool {
	info, ok := levelTable[l]
	return ok && slices.Contains(info.texts, text)
}

// # Domain Entities

// Requirement is the directed visa rule from Origin to Destination.
type Requirement struct {
	Origin         string    `json:"originCountry"      db:"origincode"`
	Destination    string    `json:"destinationCountry" db:"destinationcode"`
	Level          Level     `json:"requirement"        db:"requirement"`
	Text           string    `json:"requirementText"    db:"requirementtext"`
	MaxStay        *string   `json:"maxStay,omitempty"        db:"maxstay"`
	ProcessingTime *string   `json:"processingTime,omitempty" db:"processingtime"`
	Cost           *string   `json:"cost,omitempty"           db:"cost"`
	Notes          *string   `json:"notes,omitempty"          db:"notes"`
	LastUpdated    time.Time `json:"lastUpdated"        db:"lastupdated"`
}

// Key identifies the journey, e.g. "FR-JP".
func (r *Requirement) Key() string {
	return JourneyKey(r.Origin, r.Destination)
}

// Validate checks a requirement before it is stored.
//
// The origin may equal the destination at this level; self-pairs are only
// rejected where users supply input.
func (r *Requirement) Validate() error {
	v := &validate.Validator{}
	v.CountryCode("originCountry", r.Origin).
		CountryCode("destinationCountry", r.Destination).
		Custom("requirement", !r.Level.Valid(), "Must be one of: green, yellow, blue, red").
		Custom("requirementText", r.Level.Valid() && !r.Level.AcceptsText(r.Text), "Does not match the requirement level")
	return v.Err()
}

// JourneyKey formats the identifier of an origin/destination pair.
func JourneyKey(origin, destination string) string {
	return origin + "-" + destination
}

// NormalizePair trims and uppercases a user-supplied pair and rejects empty
// codes and self-pairs. It never touches storage.
func NormalizePair(from, to string) (string, string, error) {
	origin := country.NormalizeCode(from)
	destination := country.NormalizeCode(to)

	if origin == "" || destination == "" {
		return "", "", ErrMissingParameters
	}
	if strings.EqualFold(origin, destination) {
		return "", "", ErrSameCountry
	}
	return origin, destination, nil
}

// Destination is a requirement joined with its destination country.
type Destination struct {
	Requirement
	DestinationName string `db:"destinationname"`
	DestinationFlag string `db:"destinationflag"`
}

// Summary returns the destination country's short form.
func (d *Destination) Summary() country.Summary {
	return country.Summary{Code: d.Destination, Name: d.DestinationName, Flag: d.DestinationFlag}
}

// LevelCounts is the number of requirements per level.
type LevelCounts struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Blue   int `json:"blue"`
	Red    int `json:"red"`
}

// Total sums every level.
func (counts LevelCounts) Total() int {
	return counts.Green + counts.Yellow + counts.Blue + counts.Red
}

// add increments the counter of level; unknown levels are ignored.
func (counts *LevelCounts) add(level Level, n int) {
	switch level {
	case LevelGreen:
		counts.Green += n
	case LevelYellow:
		counts.Yellow += n
	case LevelBlue:
		counts.Blue += n
	case LevelRed:
		counts.Red += n
	}
}
