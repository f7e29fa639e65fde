package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/storage"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return c
}

func testRecord(curieStr, label string) *storage.ConceptRecord {
	return &storage.ConceptRecord{
		CURIE:     curieStr,
		PrefLabel: model.LanguageMap{"en": label},
		Notation:  []string{"N-" + label},
		InScheme:  []string{"ex:scheme"},
		Document:  "doc-1",
	}
}

func TestUpsertAndLookup(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	rec := testRecord("wd:Q406", "coffee")
	if err := c.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := c.Lookup(ctx, "wd:Q406")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.CURIE != "wd:Q406" {
		t.Errorf("unexpected curie: %s", got.CURIE)
	}
	if got.PrefLabel["en"] != "coffee" {
		t.Errorf("unexpected label: %v", got.PrefLabel)
	}
	if got.Document != "doc-1" {
		t.Errorf("unexpected document: %s", got.Document)
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	if err := c.Upsert(ctx, testRecord("wd:Q406", "coffee")); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := c.Upsert(ctx, testRecord("wd:Q406", "espresso")); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := c.Lookup(ctx, "wd:Q406")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.PrefLabel["en"] != "espresso" {
		t.Errorf("expected replaced label, got %v", got.PrefLabel)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Concepts != 1 {
		t.Errorf("expected 1 concept after replace, got %d", stats.Concepts)
	}
}

func TestLookupMissing(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Lookup(context.Background(), "wd:Q999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	for _, rec := range []*storage.ConceptRecord{
		testRecord("wd:Q406", "coffee"),
		testRecord("wd:Q6097", "coffee bean"),
		testRecord("wd:Q44", "beer"),
	} {
		if err := c.Upsert(ctx, rec); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	hits, err := c.Search(ctx, "coffee", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %v", len(hits), hits)
	}
	if hits[0].CURIE != "wd:Q406" || hits[1].CURIE != "wd:Q6097" {
		t.Errorf("unexpected hit order: %v", hits)
	}

	t.Run("matches curie substring", func(t *testing.T) {
		hits, err := c.Search(ctx, "Q44", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 1 || hits[0].PrefLabel != "beer" {
			t.Errorf("unexpected hits: %v", hits)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		hits, err := c.Search(ctx, "coffee", 1)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 1 {
			t.Errorf("expected 1 hit, got %d", len(hits))
		}
	})

	t.Run("escapes like wildcards", func(t *testing.T) {
		hits, err := c.Search(ctx, "%", 10)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("bare wildcard must not match everything, got %d hits", len(hits))
		}
	})
}

func TestUpsertKOSAndStats(t *testing.T) {
	c := openTestCatalog(t)
	ctx := context.Background()

	deprecated := true
	child := new(processed.Concept)
	child.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q6097"}
	child.Deprecated = &deprecated

	top := new(processed.Concept)
	top.Reference = &curie.Reference{Prefix: "wd", Identifier: "Q406"}
	top.PrefLabel = model.LanguageMap{"de": "Kaffee"}
	top.Narrower = processed.ConceptSet{child}
	child.Broader = processed.ConceptSet{top}

	doc := &processed.KOS{Concepts: []*processed.Concept{top}}
	n, err := c.UpsertKOS(ctx, doc, "doc-1")
	if err != nil {
		t.Fatalf("upsert kos failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Concepts != 2 {
		t.Errorf("expected 2 concepts, got %d", stats.Concepts)
	}
	if stats.Documents != 1 {
		t.Errorf("expected 1 document, got %d", stats.Documents)
	}
	if stats.Deprecated != 1 {
		t.Errorf("expected 1 deprecated, got %d", stats.Deprecated)
	}

	// No scheme edges in this document.
	if stats.Schemes != 0 {
		t.Errorf("expected 0 schemes, got %d", stats.Schemes)
	}

	got, err := c.Lookup(ctx, "wd:Q406")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.PrefLabel["de"] != "Kaffee" {
		t.Errorf("unexpected label: %v", got.PrefLabel)
	}
	if len(got.Narrower) != 1 || got.Narrower[0] != "wd:Q6097" {
		t.Errorf("unexpected narrower edges: %v", got.Narrower)
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := []struct {
		name     string
		labels   model.LanguageMap
		expected string
	}{
		{"prefers english", model.LanguageMap{"de": "Kaffee", "en": "coffee"}, "coffee"},
		{"first sorted language", model.LanguageMap{"fr": "café", "de": "Kaffee"}, "Kaffee"},
		{"empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &storage.ConceptRecord{PrefLabel: tc.labels}
			if got := displayLabel(rec); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
