package schema

// CoreVisaRequirementTable represents the 'core.visarequirement' table
type CoreVisaRequirementTable struct {
	Table           string
	Origin          string
	Destination     string
	Requirement     string
	RequirementText string
	MaxStay         string
	ProcessingTime  string
	Cost            string
	Notes           string
	LastUpdated     string
}

// CoreVisaRequirement is the schema definition for core.visarequirement
var CoreVisaRequirement = CoreVisaRequirementTable{
	Table:           "core.visarequirement",
	Origin:          "origincode",
	Destination:     "destinationcode",
	Requirement:     "requirement",
	RequirementText: "requirementtext",
	MaxStay:         "maxstay",
	ProcessingTime:  "processingtime",
	Cost:            "cost",
	Notes:           "notes",
	LastUpdated:     "lastupdated",
}

// Columns returns all standard column names
func (t CoreVisaRequirementTable) Columns() []string {
	return []string{
		t.Origin, t.Destination, t.Requirement, t.RequirementText,
		t.MaxStay, t.ProcessingTime, t.Cost, t.Notes, t.LastUpdated,
	}
}
