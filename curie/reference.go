package curie

import (
	"fmt"
	"strings"
)

// Reference is a compact identifier for a URI: a registered prefix plus
// the local identifier under that prefix's namespace.
//
// A Reference with an empty Prefix is opaque: Identifier then holds a
// full URI that no registered namespace covered. Opaque references are
// produced only by lenient resolution.
type Reference struct {
	// Prefix is the registered short name of the namespace, such as "skos".
	Prefix string `json:"prefix"`

	// Identifier is the local part under the namespace, such as "broader".
	// For opaque references it holds the full original URI.
	Identifier string `json:"identifier"`
}

// IsOpaque reports whether the reference carries a full URI instead of a
// prefix and local identifier.
func (r Reference) IsOpaque() bool {
	return r.Prefix == ""
}

// IsZero reports whether the reference is entirely empty.
func (r Reference) IsZero() bool {
	return r.Prefix == "" && r.Identifier == ""
}

// String renders the reference in CURIE syntax ("skos:broader"). Opaque
// references render as the original URI unchanged.
func (r Reference) String() string {
	if r.IsOpaque() {
		return r.Identifier
	}
	return r.Prefix + ":" + r.Identifier
}

// MarshalText implements encoding.TextMarshaler so references can serve
// as JSON object keys.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(text []byte) error {
	ref, err := ParseCURIE(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// ParseCURIE parses CURIE syntax ("skos:broader") into a Reference.
// Strings whose colon is followed by "//" are full URIs and parse as
// opaque references, so "http://example.org/x" does not become an "http"
// prefix. A string without any colon is rejected.
func ParseCURIE(s string) (Reference, error) {
	if s == "" {
		return Reference{}, fmt.Errorf("empty curie")
	}
	i := strings.Index(s, ":")
	if i < 0 {
		return Reference{}, fmt.Errorf("curie %q has no prefix separator", s)
	}
	if strings.HasPrefix(s[i+1:], "//") {
		return Reference{Identifier: s}, nil
	}
	if i == 0 {
		return Reference{}, fmt.Errorf("curie %q has an empty prefix", s)
	}
	return Reference{Prefix: s[:i], Identifier: s[i+1:]}, nil
}
