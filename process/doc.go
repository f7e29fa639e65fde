// Package process transforms raw JSKOS entities into their processed
// form, resolving every vocabulary URI into a compact reference against
// a converter's prefix table.
//
// The transform is a pure, deterministic recursive mapping with no I/O
// and no global state. In strict mode the first resolution failure
// aborts the entire call and no partial result is returned; in lenient
// mode unmatched URIs pass through as opaque references. Null
// placeholders in JSKOS sets keep their positions, qualified dicts are
// processed in sorted key order, and concept processing is memoized by
// node identity so shared subgraphs and cycles survive without
// revisiting.
//
// The dispositions tables declare what happens to every raw field, so
// nothing is dropped implicitly.
package process
