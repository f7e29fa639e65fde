package model

// Resource is the base shape of the vocabulary: anything identified by
// a URI, with provenance and qualified statements.
type Resource struct {
	Identity
	Provenance
	Qualifiable
}

// Item is a named resource, adding labels, notes, temporal and spatial
// extent, and links to related items.
type Item struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links
}
