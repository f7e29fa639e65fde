package skos

// Namespace is the SKOS core namespace.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// XLNamespace is the SKOS-XL extension namespace for reified labels.
const XLNamespace = "http://www.w3.org/2008/05/skos-xl#"

// DCTerms is the Dublin Core terms namespace.
const DCTerms = "http://purl.org/dc/terms/"

// OA is the Web Annotation vocabulary namespace.
const OA = "http://www.w3.org/ns/oa#"

// OAHasTarget links an annotation to what it is about.
const OAHasTarget = OA + "hasTarget"

// PROV is the W3C provenance ontology namespace.
const PROV = "http://www.w3.org/ns/prov#"

// ProvGeneratedAtTime is the time at which an entity was generated.
const ProvGeneratedAtTime = PROV + "generatedAtTime"

// Base vocabulary namespaces.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  = "http://www.w3.org/2002/07/owl#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

// Class IRIs of the SKOS data model.
const (
	// ClassConcept is an idea or unit of thought.
	ClassConcept = Namespace + "Concept"

	// ClassConceptScheme is a curated collection of concepts.
	ClassConceptScheme = Namespace + "ConceptScheme"

	// ClassCollection is a labeled group of concepts.
	ClassCollection = Namespace + "Collection"

	// ClassOrderedCollection is an ordered group of concepts.
	ClassOrderedCollection = Namespace + "OrderedCollection"

	// ClassXLLabel is the reified label class of SKOS-XL.
	ClassXLLabel = XLNamespace + "Label"

	// ClassAnnotation is the Web Annotation class.
	ClassAnnotation = OA + "Annotation"
)

// Label and documentation properties.
const (
	PrefLabel   = Namespace + "prefLabel"
	AltLabel    = Namespace + "altLabel"
	HiddenLabel = Namespace + "hiddenLabel"
	Notation    = Namespace + "notation"

	Note          = Namespace + "note"
	ScopeNote     = Namespace + "scopeNote"
	Definition    = Namespace + "definition"
	Example       = Namespace + "example"
	HistoryNote   = Namespace + "historyNote"
	EditorialNote = Namespace + "editorialNote"
	ChangeNote    = Namespace + "changeNote"
)

// Semantic relations between concepts.
const (
	Broader            = Namespace + "broader"
	Narrower           = Namespace + "narrower"
	Related            = Namespace + "related"
	BroaderTransitive  = Namespace + "broaderTransitive"
	NarrowerTransitive = Namespace + "narrowerTransitive"
	SemanticRelation   = Namespace + "semanticRelation"
)

// Scheme membership properties.
const (
	InScheme      = Namespace + "inScheme"
	TopConceptOf  = Namespace + "topConceptOf"
	HasTopConcept = Namespace + "hasTopConcept"
)

// Collection membership properties.
const (
	Member     = Namespace + "member"
	MemberList = Namespace + "memberList"
)

// Mapping relations between concepts of different schemes.
const (
	MappingRelation = Namespace + "mappingRelation"
	CloseMatch      = Namespace + "closeMatch"
	ExactMatch      = Namespace + "exactMatch"
	BroadMatch      = Namespace + "broadMatch"
	NarrowMatch     = Namespace + "narrowMatch"
	RelatedMatch    = Namespace + "relatedMatch"
)

// SKOS-XL label properties.
const (
	XLPrefLabel   = XLNamespace + "prefLabel"
	XLAltLabel    = XLNamespace + "altLabel"
	XLHiddenLabel = XLNamespace + "hiddenLabel"
	XLLiteralForm = XLNamespace + "literalForm"
)

// Dublin Core term properties used by the exporter.
const (
	DCTitle        = DCTerms + "title"
	DCDescription  = DCTerms + "description"
	DCCreated      = DCTerms + "created"
	DCIssued       = DCTerms + "issued"
	DCModified     = DCTerms + "modified"
	DCCreator      = DCTerms + "creator"
	DCContributor  = DCTerms + "contributor"
	DCPublisher    = DCTerms + "publisher"
	DCSource       = DCTerms + "source"
	DCIsPartOf     = DCTerms + "isPartOf"
	DCIdentifier   = DCTerms + "identifier"
	DCSubject      = DCTerms + "subject"
	DCHasVersion   = DCTerms + "hasVersion"
	DCReplaces     = DCTerms + "replaces"
	DCIsReplacedBy = DCTerms + "isReplacedBy"
)

// RDF, RDFS, and OWL properties.
const (
	RDFType       = RDF + "type"
	RDFNil        = RDF + "nil"
	RDFSLabel     = RDFS + "label"
	RDFSSeeAlso   = RDFS + "seeAlso"
	OWLDeprecated = OWL + "deprecated"
)

// XSD datatypes for typed literals.
const (
	XSDBoolean    = XSD + "boolean"
	XSDInteger    = XSD + "integer"
	XSDDecimal    = XSD + "decimal"
	XSDDate       = XSD + "date"
	XSDGYear      = XSD + "gYear"
	XSDGYearMonth = XSD + "gYearMonth"
	XSDAnyURI     = XSD + "anyURI"
)
