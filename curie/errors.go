package curie

import "fmt"

// UnresolvedURIError reports a URI that no registered namespace covers
// under strict resolution.
type UnresolvedURIError struct {
	URI string
}

func (e *UnresolvedURIError) Error() string {
	return fmt.Sprintf("no prefix registered for URI %q", e.URI)
}

// UnknownPrefixError reports an expansion attempt against a prefix that
// is not in the converter's table.
type UnknownPrefixError struct {
	Prefix string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown prefix %q", e.Prefix)
}
