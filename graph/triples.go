package graph

import (
	"sort"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/vocabulary/jskos"
)

// Triple sources identify which pipeline stage asserted a fact.
const (
	SourceProcessor = "jskos.processor"
	SourceIngester  = "jskos.ingester"
)

// ConceptTriples builds the graph triples for one processed concept.
// Labels produce one triple per language; hierarchy and scheme edges
// point at the entity IDs of referenced neighbors. Neighbors without a
// reference cannot be addressed and produce no edge. documentID links
// the concept back to its source document and may be empty.
func ConceptTriples(c *processed.Concept, documentID string) []message.Triple {
	if c == nil || c.Reference == nil {
		return nil
	}
	now := time.Now()
	entityID := ConceptEntityID(*c.Reference)

	attr := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     SourceProcessor,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	triples := []message.Triple{
		attr(jskos.ConceptCURIE, c.Reference.String()),
	}
	for _, notation := range c.Notation {
		triples = append(triples, attr(jskos.ConceptNotation, notation))
	}
	for _, lang := range sortedLangs(c.PrefLabel) {
		triples = append(triples, attr(jskos.ConceptPrefLabel, c.PrefLabel[lang]))
	}
	for _, lang := range sortedLangs(c.AltLabel) {
		for _, value := range c.AltLabel[lang] {
			triples = append(triples, attr(jskos.ConceptAltLabel, value))
		}
	}
	if c.Deprecated != nil {
		triples = append(triples, attr(jskos.ConceptDeprecated, *c.Deprecated))
	}
	if documentID != "" {
		triples = append(triples, attr(jskos.ConceptDocument, documentID))
	}

	for _, scheme := range c.InScheme {
		if scheme == nil || scheme.Reference == nil {
			continue
		}
		triples = append(triples, attr(jskos.ConceptScheme, SchemeEntityID(*scheme.Reference)))
	}
	for _, scheme := range c.TopConceptOf {
		if scheme == nil || scheme.Reference == nil {
			continue
		}
		triples = append(triples, attr(jskos.ConceptTopOf, SchemeEntityID(*scheme.Reference)))
	}

	edges := []struct {
		predicate string
		set       processed.ConceptSet
	}{
		{jskos.ConceptBroader, c.Broader},
		{jskos.ConceptNarrower, c.Narrower},
		{jskos.ConceptRelated, c.Related},
	}
	for _, edge := range edges {
		for _, n := range edge.set {
			if n == nil || n.Reference == nil {
				continue
			}
			triples = append(triples, attr(edge.predicate, ConceptEntityID(*n.Reference)))
		}
	}
	return triples
}

// DocumentTriples builds the graph triples describing one ingested
// document.
func DocumentTriples(documentID, location, hash string, concepts int, ingestedAt time.Time) []message.Triple {
	now := time.Now()
	entityID := DocumentEntityID(documentID)

	attr := func(predicate string, object any) message.Triple {
		return message.Triple{
			Subject:    entityID,
			Predicate:  predicate,
			Object:     object,
			Source:     SourceIngester,
			Timestamp:  now,
			Confidence: 1.0,
		}
	}

	return []message.Triple{
		attr(jskos.DocumentID, documentID),
		attr(jskos.DocumentLocation, location),
		attr(jskos.DocumentHash, hash),
		attr(jskos.DocumentConcepts, concepts),
		attr(jskos.DocumentIngestedAt, ingestedAt.Format(time.RFC3339)),
	}
}

func sortedLangs[M ~map[string]V, V any](m M) []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
