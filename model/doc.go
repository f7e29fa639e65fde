// Package model holds the raw JSKOS data model: a typed mirror of the
// external vocabulary as parsed from JSON, before any semantic
// processing.
//
// Entities are built from small shared blocks (Identity, Provenance,
// Qualifiable, Labels, Lifecycle, Links, Bundle) embedded by value, so
// JSON field names flatten through and no entity inherits from another.
// JSKOS sets keep their explicit nulls as nil elements, wire names live
// in the struct tags, and the unions (annotation targets, qualified
// values) are discriminated by JSON shape.
//
// Structural rules owned by this package, such as URI syntax, rank
// values, required fields, and unit intervals, are checked by Validate
// after decoding. Unknown JSON keys are ignored because the vocabulary
// is extensible; this also discards any "@context" key.
package model
