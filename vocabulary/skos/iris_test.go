package skos

import (
	"strings"
	"testing"
)

func TestIRIComposition(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want string
	}{
		{"prefLabel", PrefLabel, "http://www.w3.org/2004/02/skos/core#prefLabel"},
		{"broader", Broader, "http://www.w3.org/2004/02/skos/core#broader"},
		{"exactMatch", ExactMatch, "http://www.w3.org/2004/02/skos/core#exactMatch"},
		{"hasTopConcept", HasTopConcept, "http://www.w3.org/2004/02/skos/core#hasTopConcept"},
		{"dct title", DCTitle, "http://purl.org/dc/terms/title"},
		{"owl deprecated", OWLDeprecated, "http://www.w3.org/2002/07/owl#deprecated"},
		{"xsd gYear", XSDGYear, "http://www.w3.org/2001/XMLSchema#gYear"},
		{"oa hasTarget", OAHasTarget, "http://www.w3.org/ns/oa#hasTarget"},
		{"prov generatedAtTime", ProvGeneratedAtTime, "http://www.w3.org/ns/prov#generatedAtTime"},
	}
	for _, tt := range tests {
		if tt.iri != tt.want {
			t.Errorf("%s = %s, expected %s", tt.name, tt.iri, tt.want)
		}
	}
}

func TestMappingRelationsShareNamespace(t *testing.T) {
	relations := []string{
		CloseMatch,
		ExactMatch,
		BroadMatch,
		NarrowMatch,
		RelatedMatch,
		MappingRelation,
	}
	for _, iri := range relations {
		if !strings.HasPrefix(iri, Namespace) {
			t.Errorf("mapping relation %s outside the skos namespace", iri)
		}
	}
}
