package storage

import (
	"testing"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
)

func TestKeyFor(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"wd:Q406", "wd.Q406"},
		{"ddc:641.3373", "ddc.641.3373"},
		{"gnd:4030270-2", "gnd.4030270-2"},
		{"https://example.org/c1", "https.__example.org_c1"},
		{"a::b", "a.b"},
		{":leading", "leading"},
		{"trailing:", "trailing"},
		{"", "_"},
	}
	for _, tc := range cases {
		if got := KeyFor(tc.input); got != tc.expected {
			t.Errorf("KeyFor(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestRecordConcept(t *testing.T) {
	t.Run("flattens attributes and edges", func(t *testing.T) {
		broader := new(processed.Concept)
		broader.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q2095"}
		anonymous := new(processed.Concept)

		scheme := new(processed.ConceptScheme)
		scheme.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q222"}

		deprecated := false
		c := new(processed.Concept)
		c.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q406"}
		c.Notation = []string{"Q406"}
		c.PrefLabel = model.LanguageMap{"en": "coffee"}
		c.Deprecated = &deprecated
		c.Broader = processed.ConceptSet{nil, broader, anonymous}
		c.InScheme = []*processed.ConceptScheme{scheme}

		rec := RecordConcept(c, "doc-1")
		if rec == nil {
			t.Fatal("expected a record")
		}
		if rec.CURIE != "wd:Q406" {
			t.Errorf("unexpected curie: %s", rec.CURIE)
		}
		if rec.Document != "doc-1" {
			t.Errorf("unexpected document: %s", rec.Document)
		}
		if len(rec.Broader) != 1 || rec.Broader[0] != "wd:Q2095" {
			t.Errorf("unexpected broader edges: %v", rec.Broader)
		}
		if len(rec.InScheme) != 1 || rec.InScheme[0] != "wd:Q222" {
			t.Errorf("unexpected scheme edges: %v", rec.InScheme)
		}
		if rec.Deprecated == nil || *rec.Deprecated {
			t.Errorf("unexpected deprecated flag: %v", rec.Deprecated)
		}
		if rec.PrefLabel["en"] != "coffee" {
			t.Errorf("unexpected label: %v", rec.PrefLabel)
		}
	})

	t.Run("record does not alias the concept", func(t *testing.T) {
		c := new(processed.Concept)
		c.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q406"}
		c.PrefLabel = model.LanguageMap{"en": "coffee"}

		rec := RecordConcept(c, "")
		c.PrefLabel["en"] = "changed"
		if rec.PrefLabel["en"] != "coffee" {
			t.Errorf("record label changed with the concept: %v", rec.PrefLabel)
		}
	})

	t.Run("anonymous concept yields nil", func(t *testing.T) {
		if rec := RecordConcept(new(processed.Concept), "doc-1"); rec != nil {
			t.Errorf("expected nil record, got %+v", rec)
		}
		if rec := RecordConcept(nil, "doc-1"); rec != nil {
			t.Errorf("expected nil record for nil concept, got %+v", rec)
		}
	})
}

func TestRecordKOS(t *testing.T) {
	t.Run("walks cycles once", func(t *testing.T) {
		parent := new(processed.Concept)
		parent.Reference = &curie.Reference{Prefix: "ex", Identifier: "parent"}
		child := new(processed.Concept)
		child.Reference = &curie.Reference{Prefix: "ex", Identifier: "child"}
		parent.Narrower = processed.ConceptSet{child}
		child.Broader = processed.ConceptSet{parent}

		doc := &processed.KOS{Concepts: []*processed.Concept{parent}}
		recs := RecordKOS(doc, "doc-1")
		if len(recs) != 2 {
			t.Fatalf("expected 2 records, got %d", len(recs))
		}
		if recs[0].CURIE != "ex:parent" || recs[1].CURIE != "ex:child" {
			t.Errorf("unexpected record order: %s, %s", recs[0].CURIE, recs[1].CURIE)
		}
	})

	t.Run("nil document yields nothing", func(t *testing.T) {
		if recs := RecordKOS(nil, "doc-1"); recs != nil {
			t.Errorf("expected nil, got %v", recs)
		}
	})
}

func TestBucketNames(t *testing.T) {
	if BucketConcepts != "JSKOS_CONCEPTS" {
		t.Errorf("unexpected concepts bucket: %s", BucketConcepts)
	}
	if BucketDocuments != "JSKOS_DOCUMENTS" {
		t.Errorf("unexpected documents bucket: %s", BucketDocuments)
	}
}
