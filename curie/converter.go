package curie

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Converter resolves URIs to compact references against a fixed prefix
// table and expands references back to URIs. A Converter is immutable
// after construction and safe for concurrent use.
type Converter struct {
	byPrefix map[string]string
	entries  []tableEntry
}

type tableEntry struct {
	prefix    string
	namespace string
}

// NewConverter builds a converter from a table mapping prefixes to
// namespace URIs. Prefixes must be non-empty and colon-free, namespaces
// must be absolute URIs, and no two prefixes may share a namespace.
func NewConverter(prefixes map[string]string) (*Converter, error) {
	c := &Converter{
		byPrefix: make(map[string]string, len(prefixes)),
		entries:  make([]tableEntry, 0, len(prefixes)),
	}
	byNamespace := make(map[string]string, len(prefixes))
	for prefix, namespace := range prefixes {
		if prefix == "" {
			return nil, fmt.Errorf("empty prefix for namespace %q", namespace)
		}
		if strings.Contains(prefix, ":") {
			return nil, fmt.Errorf("prefix %q contains a colon", prefix)
		}
		if namespace == "" {
			return nil, fmt.Errorf("empty namespace for prefix %q", prefix)
		}
		u, err := url.Parse(namespace)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("namespace %q for prefix %q is not an absolute URI", namespace, prefix)
		}
		if other, ok := byNamespace[namespace]; ok {
			return nil, fmt.Errorf("prefixes %q and %q share namespace %q", other, prefix, namespace)
		}
		byNamespace[namespace] = prefix
		c.byPrefix[prefix] = namespace
		c.entries = append(c.entries, tableEntry{prefix: prefix, namespace: namespace})
	}
	// Longest namespace first so the most specific prefix wins; ties
	// break on prefix name to keep resolution deterministic.
	sort.Slice(c.entries, func(i, j int) bool {
		if len(c.entries[i].namespace) != len(c.entries[j].namespace) {
			return len(c.entries[i].namespace) > len(c.entries[j].namespace)
		}
		return c.entries[i].prefix < c.entries[j].prefix
	})
	return c, nil
}

// Resolve compacts a URI against the prefix table. The longest matching
// namespace wins when namespaces overlap. In strict mode a URI outside
// every namespace fails with an UnresolvedURIError; in lenient mode it
// comes back as an opaque reference with a nil error.
func (c *Converter) Resolve(uri string, strict bool) (Reference, error) {
	if ref, ok := c.compact(uri); ok {
		return ref, nil
	}
	if strict {
		return Reference{}, &UnresolvedURIError{URI: uri}
	}
	return Reference{Identifier: uri}, nil
}

// MustResolve is Resolve in strict mode, panicking on failure. Intended
// for tests and static initialization of known-good URIs.
func (c *Converter) MustResolve(uri string) Reference {
	ref, err := c.Resolve(uri, true)
	if err != nil {
		panic(err)
	}
	return ref
}

func (c *Converter) compact(uri string) (Reference, bool) {
	for _, e := range c.entries {
		if !strings.HasPrefix(uri, e.namespace) {
			continue
		}
		ref := Reference{Prefix: e.prefix, Identifier: uri[len(e.namespace):]}
		// A compaction only counts if it expands back to the input
		// exactly; otherwise try the next shorter namespace.
		if expanded, err := c.Expand(ref); err != nil || expanded != uri {
			continue
		}
		return ref, true
	}
	return Reference{}, false
}

// Expand rebuilds the full URI for a reference. Opaque references expand
// to their embedded URI. An unregistered prefix is an UnknownPrefixError.
func (c *Converter) Expand(ref Reference) (string, error) {
	if ref.IsOpaque() {
		return ref.Identifier, nil
	}
	namespace, ok := c.byPrefix[ref.Prefix]
	if !ok {
		return "", &UnknownPrefixError{Prefix: ref.Prefix}
	}
	return namespace + ref.Identifier, nil
}

// Namespace returns the namespace registered for a prefix.
func (c *Converter) Namespace(prefix string) (string, bool) {
	ns, ok := c.byPrefix[prefix]
	return ns, ok
}

// Prefixes returns a copy of the prefix table.
func (c *Converter) Prefixes() map[string]string {
	out := make(map[string]string, len(c.byPrefix))
	for k, v := range c.byPrefix {
		out[k] = v
	}
	return out
}

// Len returns the number of registered prefixes.
func (c *Converter) Len() int {
	return len(c.byPrefix)
}
