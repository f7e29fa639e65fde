package process_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/processed"
)

func testConverter(t *testing.T) *curie.Converter {
	t.Helper()
	conv, err := curie.NewConverter(map[string]string{
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"skosxl": "http://www.w3.org/2008/05/skos-xl#",
		"dct":    "http://purl.org/dc/terms/",
		"wd":     "http://www.wikidata.org/entity/",
		"wdt":    "http://www.wikidata.org/prop/direct/",
		"ex":     "http://example.org/",
	})
	require.NoError(t, err)
	return conv
}

func TestEngineResolvesIdentity(t *testing.T) {
	eng := process.New(testConverter(t))

	c := &model.Concept{}
	c.URI = "http://www.wikidata.org/entity/Q406"
	c.Type = []string{"http://www.w3.org/2004/02/skos/core#Concept"}
	c.Identifier = []string{"http://example.org/istanbul"}

	out, err := eng.Concept(c)
	require.NoError(t, err)
	require.NotNil(t, out.Reference)
	assert.Equal(t, "wd:Q406", out.Reference.String())
	require.Len(t, out.Type, 1)
	assert.Equal(t, curie.Reference{Prefix: "skos", Identifier: "Concept"}, out.Type[0])
	require.Len(t, out.Identifier, 1)
	assert.Equal(t, "ex:istanbul", out.Identifier[0].String())
}

func TestEngineKeepsNullPlaceholders(t *testing.T) {
	eng := process.New(testConverter(t))

	c := &model.Concept{}
	c.URI = "http://example.org/a"
	c.Creator = model.Set{
		nil,
		&model.Resource{Identity: model.Identity{URI: "http://example.org/creator"}},
	}
	c.Narrower = model.ConceptSet{
		&model.Concept{Identity: model.Identity{URI: "http://example.org/b"}},
		nil,
	}

	out, err := eng.Concept(c)
	require.NoError(t, err)

	require.Len(t, out.Creator, 2)
	assert.Nil(t, out.Creator[0])
	require.NotNil(t, out.Creator[1])
	assert.Equal(t, "ex:creator", out.Creator[1].Reference.String())

	require.Len(t, out.Narrower, 2)
	require.NotNil(t, out.Narrower[0])
	assert.Nil(t, out.Narrower[1])
}

func TestEngineStrictAbortsWholeCall(t *testing.T) {
	eng := process.New(testConverter(t))

	c := &model.Concept{}
	c.URI = "http://example.org/ok"
	c.Narrower = model.ConceptSet{
		&model.Concept{Identity: model.Identity{URI: "http://example.org/also-ok"}},
		&model.Concept{Identity: model.Identity{URI: "https://unregistered.test/nope"}},
	}

	out, err := eng.Concept(c)
	assert.Nil(t, out)
	require.Error(t, err)

	var fieldErr *process.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "narrower[1].uri", fieldErr.Path)
	assert.Equal(t, "https://unregistered.test/nope", fieldErr.Value)

	var unresolved *curie.UnresolvedURIError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "https://unregistered.test/nope", unresolved.URI)
}

func TestEngineLenientKeepsOpaqueURIs(t *testing.T) {
	eng := process.New(testConverter(t), process.Lenient())

	c := &model.Concept{}
	c.URI = "https://unregistered.test/nope"
	c.Type = []string{"http://www.w3.org/2004/02/skos/core#Concept"}

	out, err := eng.Concept(c)
	require.NoError(t, err)
	require.NotNil(t, out.Reference)
	assert.True(t, out.Reference.IsOpaque())
	assert.Equal(t, "https://unregistered.test/nope", out.Reference.Identifier)
	// Registered namespaces still compact in lenient mode.
	assert.Equal(t, "skos:Concept", out.Type[0].String())
}

func TestEngineResolvesDictKeys(t *testing.T) {
	eng := process.New(testConverter(t))

	c := &model.Concept{}
	c.URI = "http://www.wikidata.org/entity/Q406"
	c.QualifiedLiterals = map[string]*model.QualifiedLiteral{
		"http://www.w3.org/2008/05/skos-xl#literalForm": {
			Literal: &model.LiteralValue{Value: "Istanbul", Language: "en"},
		},
	}
	c.QualifiedRelations = map[string]*model.QualifiedRelation{
		"http://www.wikidata.org/prop/direct/P17": {
			Resource: &model.Resource{Identity: model.Identity{URI: "http://www.wikidata.org/entity/Q43"}},
		},
	}

	out, err := eng.Concept(c)
	require.NoError(t, err)

	litKey := curie.Reference{Prefix: "skosxl", Identifier: "literalForm"}
	require.Contains(t, out.QualifiedLiterals, litKey)
	lit := out.QualifiedLiterals[litKey]
	require.NotNil(t, lit.Literal)
	assert.Equal(t, "Istanbul", lit.Literal.Value)
	assert.Equal(t, "en", lit.Literal.Language)

	relKey := curie.Reference{Prefix: "wdt", Identifier: "P17"}
	require.Contains(t, out.QualifiedRelations, relKey)
	assert.Equal(t, "wd:Q43", out.QualifiedRelations[relKey].Resource.Reference.String())
}

func TestEngineDictErrorIsDeterministic(t *testing.T) {
	eng := process.New(testConverter(t))

	// Both keys fail to resolve; sorted visiting order pins which one
	// the error reports no matter how the map iterates.
	c := &model.Concept{}
	c.QualifiedDates = map[string]*model.QualifiedDate{
		"https://bad.test/zz": {Date: "2001"},
		"https://bad.test/aa": {Date: "2002"},
	}

	for i := 0; i < 10; i++ {
		_, err := eng.Concept(c)
		require.Error(t, err)
		var fieldErr *process.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, `qualifiedDates["https://bad.test/aa"]`, fieldErr.Path)
	}
}

func TestEngineAnnotationTargets(t *testing.T) {
	eng := process.New(testConverter(t))

	base := func(target *model.AnnotationTarget) *model.Annotation {
		return &model.Annotation{
			Context: "http://www.w3.org/ns/anno.jsonld",
			Type:    "Annotation",
			ID:      "http://example.org/anno/1",
			Target:  target,
		}
	}

	t.Run("uri target", func(t *testing.T) {
		out, err := eng.Annotation(base(&model.AnnotationTarget{URI: "http://www.wikidata.org/entity/Q406"}))
		require.NoError(t, err)
		assert.Equal(t, "ex:anno/1", out.Reference.String())
		require.NotNil(t, out.Target)
		require.NotNil(t, out.Target.Reference)
		assert.Equal(t, "wd:Q406", out.Target.Reference.String())
		assert.Nil(t, out.Target.Resource)
		assert.Nil(t, out.Target.Annotation)
	})

	t.Run("resource target", func(t *testing.T) {
		target := &model.AnnotationTarget{
			Resource: &model.Resource{Identity: model.Identity{URI: "http://example.org/r"}},
		}
		out, err := eng.Annotation(base(target))
		require.NoError(t, err)
		require.NotNil(t, out.Target.Resource)
		assert.Equal(t, "ex:r", out.Target.Resource.Reference.String())
		assert.Nil(t, out.Target.Reference)
	})

	t.Run("nested annotation target", func(t *testing.T) {
		inner := base(&model.AnnotationTarget{URI: "http://example.org/r"})
		inner.ID = "http://example.org/anno/2"
		out, err := eng.Annotation(base(&model.AnnotationTarget{Annotation: inner}))
		require.NoError(t, err)
		require.NotNil(t, out.Target.Annotation)
		assert.Equal(t, "ex:anno/2", out.Target.Annotation.Reference.String())
		require.NotNil(t, out.Target.Annotation.Target)
		assert.Equal(t, "ex:r", out.Target.Annotation.Target.Reference.String())
	})

	t.Run("missing target", func(t *testing.T) {
		out, err := eng.Annotation(base(nil))
		assert.Nil(t, out)
		require.Error(t, err)
		var mismatch *process.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		var fieldErr *process.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "target", fieldErr.Path)
	})

	t.Run("empty target", func(t *testing.T) {
		_, err := eng.Annotation(base(&model.AnnotationTarget{}))
		require.Error(t, err)
		var mismatch *process.TypeMismatchError
		assert.ErrorAs(t, err, &mismatch)
	})
}

func TestEngineCyclicConcepts(t *testing.T) {
	eng := process.New(testConverter(t))

	parent := &model.Concept{Identity: model.Identity{URI: "http://example.org/parent"}}
	child := &model.Concept{Identity: model.Identity{URI: "http://example.org/child"}}
	parent.Narrower = model.ConceptSet{child}
	child.Broader = model.ConceptSet{parent}

	out, err := eng.Concept(parent)
	require.NoError(t, err)
	require.Len(t, out.Narrower, 1)
	childOut := out.Narrower[0]
	assert.Equal(t, "ex:child", childOut.Reference.String())
	require.Len(t, childOut.Broader, 1)
	// The cycle closes on the same processed node, not on a copy.
	assert.Same(t, out, childOut.Broader[0])
}

func TestEngineSharedNodesStayShared(t *testing.T) {
	eng := process.New(testConverter(t))

	shared := &model.Concept{Identity: model.Identity{URI: "http://example.org/shared"}}
	root := &model.Concept{Identity: model.Identity{URI: "http://example.org/root"}}
	root.Narrower = model.ConceptSet{shared}
	root.Related = model.ConceptSet{shared}

	out, err := eng.Concept(root)
	require.NoError(t, err)
	require.Len(t, out.Narrower, 1)
	require.Len(t, out.Related, 1)
	assert.Same(t, out.Narrower[0], out.Related[0])
}

func TestEngineCallsAreIsolated(t *testing.T) {
	eng := process.New(testConverter(t))
	c := &model.Concept{Identity: model.Identity{URI: "http://example.org/a"}}

	first, err := eng.Concept(c)
	require.NoError(t, err)
	second, err := eng.Concept(c)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestEngineCopiesPassthroughValues(t *testing.T) {
	eng := process.New(testConverter(t))

	c := &model.Concept{}
	c.URI = "http://example.org/a"
	c.Notation = []string{"A"}
	c.PrefLabel = model.LanguageMap{"en": "Istanbul"}
	c.AltLabel = model.LanguageMapList{"en": {"Constantinople"}}

	out, err := eng.Concept(c)
	require.NoError(t, err)

	// Mutating the raw tree afterwards must not show through.
	c.Notation[0] = "changed"
	c.PrefLabel["en"] = "changed"
	c.AltLabel["en"][0] = "changed"

	assert.Equal(t, "A", out.Notation[0])
	assert.Equal(t, "Istanbul", out.PrefLabel["en"])
	assert.Equal(t, "Constantinople", out.AltLabel["en"][0])
}

func TestEngineMapping(t *testing.T) {
	eng := process.New(testConverter(t))

	m := &model.Mapping{
		From: &model.ConceptBundle{Bundle: model.Bundle{
			MemberSet: model.ConceptSet{
				&model.Concept{Identity: model.Identity{URI: "http://example.org/voc/c1"}},
			},
		}},
		To: &model.ConceptBundle{Bundle: model.Bundle{
			MemberSet: model.ConceptSet{
				nil,
				&model.Concept{Identity: model.Identity{URI: "http://www.wikidata.org/entity/Q406"}},
			},
		}},
		Justification: "http://www.w3.org/2004/02/skos/core#exactMatch",
	}
	relevance := 0.8
	m.MappingRelevance = &relevance

	out, err := eng.Mapping(m)
	require.NoError(t, err)
	require.NotNil(t, out.From)
	require.Len(t, out.From.MemberSet, 1)
	assert.Equal(t, "ex:voc/c1", out.From.MemberSet[0].Reference.String())
	require.NotNil(t, out.To)
	require.Len(t, out.To.MemberSet, 2)
	assert.Nil(t, out.To.MemberSet[0])
	assert.Equal(t, "wd:Q406", out.To.MemberSet[1].Reference.String())
	require.NotNil(t, out.Justification)
	assert.Equal(t, "skos:exactMatch", out.Justification.String())
	require.NotNil(t, out.MappingRelevance)
	assert.InDelta(t, 0.8, *out.MappingRelevance, 1e-9)
}

func TestEngineOccurrence(t *testing.T) {
	eng := process.New(testConverter(t))

	count := 123
	o := &model.Occurrence{
		Bundle: model.Bundle{
			MemberSet: model.ConceptSet{
				&model.Concept{Identity: model.Identity{URI: "http://example.org/voc/c1"}},
			},
		},
		Database: &model.Item{Identity: model.Identity{URI: "http://example.org/db"}},
		Count:    &count,
		Relation: "http://purl.org/dc/terms/subject",
		URL:      "https://catalog.example.org/search?c1",
	}

	out, err := eng.Occurrence(o)
	require.NoError(t, err)
	require.NotNil(t, out.Database)
	assert.Equal(t, "ex:db", out.Database.Reference.String())
	require.NotNil(t, out.Count)
	assert.Equal(t, 123, *out.Count)
	require.NotNil(t, out.Relation)
	assert.Equal(t, "dct:subject", out.Relation.String())
	// Web links are not vocabulary identifiers and stay verbatim.
	assert.Equal(t, "https://catalog.example.org/search?c1", out.URL)
}

func TestEngineNilInputs(t *testing.T) {
	eng := process.New(testConverter(t))

	_, err := eng.KOS(nil)
	assert.Error(t, err)
	_, err = eng.Concept(nil)
	assert.Error(t, err)
	_, err = eng.Annotation(nil)
	assert.Error(t, err)
}

const wikidataDoc = `{
	"id": "http://example.org/kos/wikidata-sample",
	"type": "http://www.w3.org/2004/02/skos/core#ConceptScheme",
	"title": {"en": "Wikidata sample"},
	"description": {"en": "One concept with its close neighborhood."},
	"hasTopConcept": [
		{
			"uri": "http://www.wikidata.org/entity/Q406",
			"type": ["http://www.w3.org/2004/02/skos/core#Concept"],
			"notation": ["Q406"],
			"prefLabel": {"en": "Istanbul", "tr": "İstanbul"},
			"altLabel": {"en": ["Constantinople", "Byzantium"]},
			"broader": [
				null,
				{"uri": "http://www.wikidata.org/entity/Q515", "prefLabel": {"en": "city"}}
			],
			"qualifiedRelations": {
				"http://www.wikidata.org/prop/direct/P17": {
					"resource": {"uri": "http://www.wikidata.org/entity/Q43"}
				}
			},
			"qualifiedLiterals": {
				"http://www.w3.org/2008/05/skos-xl#literalForm": {
					"literal": {"string": "İstanbul", "language": "tr"},
					"rank": "preferred"
				}
			},
			"annotations": [
				{
					"@context": "http://www.w3.org/ns/anno.jsonld",
					"type": "Annotation",
					"id": "http://example.org/anno/q406",
					"target": "http://www.wikidata.org/entity/Q406"
				}
			]
		}
	]
}`

func decodeWikidataDoc(t *testing.T) *model.KOS {
	t.Helper()
	var doc model.KOS
	require.NoError(t, json.Unmarshal([]byte(wikidataDoc), &doc))
	require.NoError(t, doc.Validate())
	return &doc
}

func TestEngineWikidataDocument(t *testing.T) {
	eng := process.New(testConverter(t))

	out, err := eng.KOS(decodeWikidataDoc(t))
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/kos/wikidata-sample", out.ID)
	require.Len(t, out.Concepts, 1)

	istanbul := out.Concepts[0]
	assert.Equal(t, "wd:Q406", istanbul.Reference.String())
	assert.Equal(t, "İstanbul", istanbul.PrefLabel["tr"])

	require.Len(t, istanbul.Broader, 2)
	assert.Nil(t, istanbul.Broader[0])
	assert.Equal(t, "wd:Q515", istanbul.Broader[1].Reference.String())

	relKey := curie.Reference{Prefix: "wdt", Identifier: "P17"}
	require.Contains(t, istanbul.QualifiedRelations, relKey)
	assert.Equal(t, "wd:Q43", istanbul.QualifiedRelations[relKey].Resource.Reference.String())

	litKey := curie.Reference{Prefix: "skosxl", Identifier: "literalForm"}
	require.Contains(t, istanbul.QualifiedLiterals, litKey)
	lit := istanbul.QualifiedLiterals[litKey]
	assert.Equal(t, model.RankPreferred, lit.Rank)
	assert.Equal(t, "İstanbul", lit.Literal.Value)

	require.Len(t, istanbul.Annotations, 1)
	anno := istanbul.Annotations[0]
	assert.Equal(t, "ex:anno/q406", anno.Reference.String())
	assert.Equal(t, "wd:Q406", anno.Target.Reference.String())
}

func TestEngineConcurrentCalls(t *testing.T) {
	eng := process.New(testConverter(t))
	doc := decodeWikidataDoc(t)

	want, err := eng.KOS(doc)
	require.NoError(t, err)
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)

	const workers = 16
	outs := make([]*processed.KOS, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = eng.KOS(doc)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		got, err := json.Marshal(outs[i])
		require.NoError(t, err)
		assert.JSONEq(t, string(wantJSON), string(got))
	}
}
