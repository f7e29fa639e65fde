package model

// ConceptBundle is a standalone group of concepts, used as the two ends
// of a mapping.
type ConceptBundle struct {
	Bundle
}

// Mapping relates concepts of one scheme to concepts of another.
type Mapping struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links

	// From is the subject bundle: the concepts mapped from.
	From *ConceptBundle `json:"from"`

	// To is the object bundle: the concepts mapped to.
	To *ConceptBundle `json:"to"`

	FromScheme *ConceptScheme `json:"fromScheme,omitempty"`
	ToScheme   *ConceptScheme `json:"toScheme,omitempty"`

	// MappingRelevance weights the mapping in the unit interval.
	MappingRelevance *float64 `json:"mappingRelevance,omitempty"`

	// Justification is the URI of the match type asserted by the
	// mapping, such as a SKOS mapping property.
	Justification string `json:"justification,omitempty"`
}
