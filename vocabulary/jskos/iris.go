package jskos

import "github.com/c360studio/jskos/vocabulary/skos"

// Namespace covers terms of the JSKOS vocabulary that have no SKOS
// equivalent, such as ordering relations between concepts.
const Namespace = "https://gbv.github.io/jskos/"

// ContextURI is the JSON-LD context document of the JSKOS format.
const ContextURI = "https://gbv.github.io/jskos/context.json"

// AnnotationContextURI is the JSON-LD context document of the Web
// Annotation data model, carried by annotations themselves.
const AnnotationContextURI = "http://www.w3.org/ns/anno.jsonld"

// Class IRIs for entities without a SKOS class.
const (
	// ClassMapping is a directed connection between concept bundles.
	ClassMapping = Namespace + "Mapping"

	// ClassOccurrence is a concept use count in a database.
	ClassOccurrence = Namespace + "Occurrence"
)

// Property IRIs for JSKOS terms outside SKOS.
const (
	// Previous links a concept to its predecessor in an ordered scheme.
	Previous = Namespace + "previous"

	// Next links a concept to its successor in an ordered scheme.
	Next = Namespace + "next"

	// Ancestors links a concept to its transitive broader closure.
	Ancestors = Namespace + "ancestors"

	// MappingRelevance is the confidence weight of a mapping.
	MappingRelevance = Namespace + "mappingRelevance"

	// Count is the absolute size of an occurrence.
	Count = Namespace + "count"

	// Frequency is the relative size of an occurrence.
	Frequency = Namespace + "frequency"
)

// EntityType identifies a kind of processed entity for class mapping.
type EntityType string

// Entity type constants name the exportable entity kinds.
const (
	// EntityTypeConcept is an individual knowledge unit.
	EntityTypeConcept EntityType = "concept"
	// EntityTypeScheme is a curated collection of concepts.
	EntityTypeScheme EntityType = "scheme"
	// EntityTypeMapping is a connection between concepts of two schemes.
	EntityTypeMapping EntityType = "mapping"
	// EntityTypeOccurrence is a concept use count in a database.
	EntityTypeOccurrence EntityType = "occurrence"
	// EntityTypeAnnotation is a Web Annotation about a resource.
	EntityTypeAnnotation EntityType = "annotation"
)

// ClassMap maps entity types to their RDF class IRIs.
var ClassMap = map[EntityType]string{
	EntityTypeConcept:    skos.ClassConcept,
	EntityTypeScheme:     skos.ClassConceptScheme,
	EntityTypeMapping:    ClassMapping,
	EntityTypeOccurrence: ClassOccurrence,
	EntityTypeAnnotation: skos.ClassAnnotation,
}
