// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

/*
Package country implements the country directory: the reference set of
countries a traveller can search from or to.

Countries are created and replaced in bulk by the seed loader and are never
edited by end users. Inactive countries exist in storage but are invisible to
every lookup and listing.
*/
package country

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/apperr"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/validate"
)

// ErrCountryNotFound is returned when a code matches no active country.
var ErrCountryNotFound = apperr.NotFound("Country").WithCode("COUNTRY_NOT_FOUND")

// # Continents

// Continent is one of the seven continents a country can belong to.
type Continent string

const (
	ContinentAfrica       Continent = "Africa"
	ContinentAsia         Continent = "Asia"
	ContinentEurope       Continent = "Europe"
	ContinentNorthAmerica Continent = "North America"
	ContinentSouthAmerica Continent = "South America"
	ContinentOceania      Continent = "Oceania"
	ContinentAntarctica   Continent = "Antarctica"
)

// Continents lists every valid continent in display order.
var Continents = []Continent{
	ContinentAfrica,
	ContinentAsia,
	ContinentEurope,
	ContinentNorthAmerica,
	ContinentSouthAmerica,
	ContinentOceania,
	ContinentAntarctica,
}

// Valid reports whether c is one of [Continents].
func (c Continent) Valid() bool {
	return slices.Contains(Continents, c)
}

// # Domain Entities

// Country is a sovereign or territorial entity identified by its ISO code.
type Country struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Flag       string    `json:"flag"`
	Continent  Continent `json:"continent,omitempty"`
	Capital    *string   `json:"capital,omitempty"`
	Population *int64    `json:"population,omitempty"`
	Region     *string   `json:"region,omitempty"`
	Subregion  *string   `json:"subregion,omitempty"`
	IsActive   bool      `json:"isActive"`
}

// Summary is the short form of a country embedded in search results.
type Summary struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Summary returns the short form of the country.
func (c *Country) Summary() Summary {
	return Summary{Code: c.Code, Name: c.Name, Flag: c.Flag}
}

// Validate checks the fields the seed loader must provide.
func (c *Country) Validate() error {
	v := &validate.Validator{}
	v.CountryCode("code", c.Code).
		Required("name", c.Name).
		MaxLen("name", c.Name, MaxNameLength).
		Required("flag", c.Flag).
		Custom("continent", c.Continent != "" && !c.Continent.Valid(), "Unknown continent")
	return v.Err()
}

// MaxNameLength bounds country display names.
const MaxNameLength = 100

// Counts summarises the directory size.
type Counts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// ContinentGroup holds the active countries of one continent.
type ContinentGroup struct {
	Continent Continent  `json:"continent"`
	Countries []*Country `json:"countries"`
}

// # Helpers

// NormalizeCode trims and uppercases a user-supplied country code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NameComparer returns a comparison function for country names using French
// collation, so that accented names ("Égypte", "Équateur") sort with their
// base letter. The returned function is not safe for concurrent use.
func NameComparer() func(a, b string) int {
	collator := collate.New(language.French)
	return collator.CompareString
}

// SortByName orders countries by name, see [NameComparer].
func SortByName(countries []*Country) {
	compare := NameComparer()
	slices.SortStableFunc(countries, func(a, b *Country) int {
		return compare(a.Name, b.Name)
	})
}

// GroupByContinent buckets countries by continent in [Continents] order.
//
// Countries without a valid continent are left out and empty continents are
// omitted. The order of countries inside a group is preserved.
func GroupByContinent(countries []*Country) []ContinentGroup {
	buckets := make(map[Continent][]*Country, len(Continents))
	for _, c := range countries {
		if c.Continent.Valid() {
			buckets[c.Continent] = append(buckets[c.Continent], c)
		}
	}

	groups := make([]ContinentGroup, 0, len(buckets))
	for _, continent := range Continents {
		if members := buckets[continent]; len(members) > 0 {
			groups = append(groups, ContinentGroup{Continent: continent, Countries: members})
		}
	}
	return groups
}
