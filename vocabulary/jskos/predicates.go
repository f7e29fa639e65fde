package jskos

import (
	"github.com/c360studio/semstreams/vocabulary"

	"github.com/c360studio/jskos/vocabulary/skos"
)

// Concept predicates carry the attributes of a published concept
// entity. Labels produce one triple per language; the language tag
// itself lives in the stored document, not in the graph.
const (
	// ConceptCURIE is the compact reference under the prefix table.
	ConceptCURIE = "jskos.concept.curie"

	// ConceptURI is the full expanded URI.
	ConceptURI = "jskos.concept.uri"

	// ConceptNotation is a notation of the concept, one triple each.
	ConceptNotation = "jskos.concept.notation"

	// ConceptPrefLabel is a preferred label, one triple per language.
	ConceptPrefLabel = "jskos.concept.pref_label"

	// ConceptAltLabel is an alternative label, one triple per value.
	ConceptAltLabel = "jskos.concept.alt_label"

	// ConceptDeprecated marks a concept no longer recommended for use.
	ConceptDeprecated = "jskos.concept.deprecated"

	// ConceptDocument is the identifier of the source document.
	ConceptDocument = "jskos.concept.document"
)

// Concept edge predicates link concept entities to each other and to
// their schemes.
const (
	// ConceptBroader links a concept to a more general concept.
	ConceptBroader = "jskos.concept.broader"

	// ConceptNarrower links a concept to a more specific concept.
	ConceptNarrower = "jskos.concept.narrower"

	// ConceptRelated links associatively related concepts.
	ConceptRelated = "jskos.concept.related"

	// ConceptScheme links a concept to a scheme it belongs to.
	ConceptScheme = "jskos.concept.scheme"

	// ConceptTopOf links a top concept to its scheme.
	ConceptTopOf = "jskos.concept.top_of"
)

// PredicateIRI returns the standard IRI registered for a dotted
// predicate, or "" when the predicate has none.
func PredicateIRI(predicate string) string {
	meta := vocabulary.GetPredicateMetadata(predicate)
	if meta == nil {
		return ""
	}
	return meta.StandardIRI
}

// Document predicates describe ingested vocabulary documents.
const (
	// DocumentID is the stable identifier derived from the document.
	DocumentID = "jskos.document.id"

	// DocumentLocation is the path or URL the document was read from.
	DocumentLocation = "jskos.document.location"

	// DocumentHash is the BLAKE3 content hash of the raw bytes.
	DocumentHash = "jskos.document.hash"

	// DocumentConcepts is the number of top concepts in the document.
	DocumentConcepts = "jskos.document.concepts"

	// DocumentIngestedAt is the RFC3339 ingestion timestamp.
	DocumentIngestedAt = "jskos.document.ingested_at"
)

func init() {
	// Concept attributes
	vocabulary.Register(ConceptCURIE,
		vocabulary.WithDescription("Compact reference of the concept under the prefix table"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(skos.Notation))

	vocabulary.Register(ConceptURI,
		vocabulary.WithDescription("Full URI of the concept"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(skos.DCIdentifier))

	vocabulary.Register(ConceptNotation,
		vocabulary.WithDescription("Notation of the concept within its scheme"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(skos.Notation))

	vocabulary.Register(ConceptPrefLabel,
		vocabulary.WithDescription("Preferred label, one triple per language"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(ConceptAltLabel,
		vocabulary.WithDescription("Alternative label, one triple per value"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosAltLabel))

	vocabulary.Register(ConceptDeprecated,
		vocabulary.WithDescription("Whether the concept is deprecated"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(skos.OWLDeprecated))

	vocabulary.Register(ConceptDocument,
		vocabulary.WithDescription("Identifier of the document the concept came from"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcSource))

	// Concept edges
	vocabulary.Register(ConceptBroader,
		vocabulary.WithDescription("More general concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(skos.Broader))

	vocabulary.Register(ConceptNarrower,
		vocabulary.WithDescription("More specific concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(skos.Narrower))

	vocabulary.Register(ConceptRelated,
		vocabulary.WithDescription("Associatively related concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(skos.Related))

	vocabulary.Register(ConceptScheme,
		vocabulary.WithDescription("Scheme the concept belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(skos.InScheme))

	vocabulary.Register(ConceptTopOf,
		vocabulary.WithDescription("Scheme the concept is a top concept of"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(skos.TopConceptOf))

	// Document metadata
	vocabulary.Register(DocumentID,
		vocabulary.WithDescription("Stable identifier of the ingested document"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcIdentifier))

	vocabulary.Register(DocumentLocation,
		vocabulary.WithDescription("Path or URL the document was read from"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcSource))

	vocabulary.Register(DocumentHash,
		vocabulary.WithDescription("BLAKE3 content hash of the raw document bytes"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(skos.DCIdentifier))

	vocabulary.Register(DocumentConcepts,
		vocabulary.WithDescription("Number of top concepts in the document"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"conceptCount"))

	vocabulary.Register(DocumentIngestedAt,
		vocabulary.WithDescription("RFC3339 timestamp of ingestion"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(skos.ProvGeneratedAtTime))
}
