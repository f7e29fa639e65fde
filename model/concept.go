package model

// Concept is an individual knowledge unit inside a scheme, linked into
// hierarchies and association networks with other concepts. Edge sets
// may share nodes or form cycles when a graph is built in memory; JSON
// input always decodes to a tree.
type Concept struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links
	Bundle

	Narrower  ConceptSet `json:"narrower,omitempty"`
	Broader   ConceptSet `json:"broader,omitempty"`
	Related   ConceptSet `json:"related,omitempty"`
	Previous  ConceptSet `json:"previous,omitempty"`
	Next      ConceptSet `json:"next,omitempty"`
	Ancestors ConceptSet `json:"ancestors,omitempty"`

	InScheme     []*ConceptScheme `json:"inScheme,omitempty"`
	TopConceptOf []*ConceptScheme `json:"topConceptOf,omitempty"`

	Mappings    []*Mapping    `json:"mappings,omitempty"`
	Occurrences []*Occurrence `json:"occurrences,omitempty"`

	Deprecated *bool `json:"deprecated,omitempty"`
}

// ConceptScheme is a curated collection of concepts, such as a
// classification or a thesaurus.
type ConceptScheme struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links

	TopConcepts []*Concept `json:"topConcepts,omitempty"`

	// Namespace is the common root of the scheme's concept URIs.
	Namespace string `json:"namespace,omitempty"`

	URIPattern       string   `json:"uriPattern,omitempty"`
	NotationPattern  string   `json:"notationPattern,omitempty"`
	NotationExamples []string `json:"notationExamples,omitempty"`
}
