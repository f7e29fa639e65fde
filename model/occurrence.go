package model

// Occurrence counts how often concepts occur in a database, for example
// how many catalog records a subject heading indexes.
type Occurrence struct {
	Identity
	Provenance
	Qualifiable
	Bundle

	// Database identifies where the occurrence was counted.
	Database *Item `json:"database,omitempty"`

	Count *int `json:"count,omitempty"`

	// Frequency is the relative occurrence in the unit interval.
	Frequency *float64 `json:"frequency,omitempty"`

	// Relation is the URI of the property connecting the concepts to
	// the records.
	Relation string `json:"relation,omitempty"`

	Schemes []*ConceptScheme `json:"schemes,omitempty"`

	// URL links to the occurrence, for instance a catalog search.
	URL string `json:"url,omitempty"`

	// Template and Separator build such links from notations.
	Template  string `json:"template,omitempty"`
	Separator string `json:"separator,omitempty"`
}
