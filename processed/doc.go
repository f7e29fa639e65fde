// Package processed holds the semantically processed JSKOS model: the
// same shapes as package model, with every resolved URI position
// replaced by a compact curie.Reference.
//
// Processed values are produced by package process and are structurally
// independent of the raw entities they were derived from. Shared raw
// concept nodes come out as shared processed nodes, so subgraphs and
// cycles survive processing. Values marshal to JSON for storage and
// transport; this is an internal representation, not the interchange
// document format.
package processed
