// Package jskos defines the graph vocabulary for knowledge organization
// entities: dotted predicates for concept attributes and edges, their
// mappings to standard SKOS and Dublin Core IRIs, entity class IRIs,
// and the built-in prefix table.
//
// Predicates register themselves with the platform vocabulary registry
// at init time, so importing this package is enough to make them known
// to graph components.
package jskos
