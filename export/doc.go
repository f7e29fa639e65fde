// Package export serializes processed knowledge organization systems to
// RDF. An Exporter accumulates entities and renders them as Turtle or
// N-Triples with deterministic output: subjects in first-add order,
// predicates in a fixed order per entity, and language keys sorted.
//
// Compact references expand through the converter they were resolved
// against. In Turtle, IRIs covered by a prefix print as prefixed names
// when the local part allows it; everything else prints in angle
// brackets. Entities without a URI become labeled blank nodes that stay
// stable across the export.
package export
