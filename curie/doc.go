// Package curie compacts URIs into prefix-qualified references and
// expands them back, following the CURIE convention used across SKOS
// and JSKOS tooling.
//
// A Converter is built once from a prefix table and then shared freely.
// Resolution picks the longest registered namespace that prefixes the
// URI and verifies the compaction expands back to the original. Strict
// resolution turns unmatched URIs into errors; lenient resolution passes
// them through as opaque references that render and expand as the
// original URI.
package curie
