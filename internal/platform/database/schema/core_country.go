package schema

// CoreCountryTable represents the 'core.country' table
type CoreCountryTable struct {
	Table      string
	Code       string
	Name       string
	Flag       string
	Continent  string
	Capital    string
	Population string
	Region     string
	Subregion  string
	IsActive   string
	CreatedAt  string
	UpdatedAt  string
}

// CoreCountry is the schema definition for core.country
var CoreCountry = CoreCountryTable{
	Table:      "core.country",
	Code:       "code",
	Name:       "name",
	Flag:       "flag",
	Continent:  "continent",
	Capital:    "capital",
	Population: "population",
	Region:     "region",
	Subregion:  "subregion",
	IsActive:   "isactive",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns returns the columns hydrated into a country.Country, in scan order
func (t CoreCountryTable) Columns() []string {
	return []string{
		t.Code, t.Name, t.Flag, t.Continent, t.Capital,
		t.Population, t.Region, t.Subregion, t.IsActive,
	}
}
