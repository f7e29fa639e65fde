package jskos

import "github.com/c360studio/jskos/vocabulary/skos"

// DefaultPrefixes returns the built-in prefix table: the W3C base
// vocabularies plus namespaces of widely used knowledge organization
// systems. Callers merge their own prefixes over the result; the map is
// fresh on every call.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    skos.RDF,
		"rdfs":   skos.RDFS,
		"owl":    skos.OWL,
		"xsd":    skos.XSD,
		"skos":   skos.Namespace,
		"skosxl": skos.XLNamespace,
		"dct":    skos.DCTerms,
		"oa":     skos.OA,
		"foaf":   "http://xmlns.com/foaf/0.1/",
		"jskos":  Namespace,

		// Common knowledge organization systems.
		"wd":     "http://www.wikidata.org/entity/",
		"wdt":    "http://www.wikidata.org/prop/direct/",
		"gnd":    "https://d-nb.info/gnd/",
		"ddc":    "http://dewey.info/class/",
		"bartoc": "http://bartoc.org/en/node/",
	}
}

// MergePrefixes layers overrides on top of the defaults without
// touching either input.
func MergePrefixes(overrides map[string]string) map[string]string {
	merged := DefaultPrefixes()
	for prefix, namespace := range overrides {
		merged[prefix] = namespace
	}
	return merged
}
