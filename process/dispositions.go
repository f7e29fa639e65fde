package process

// Disposition says what the engine does with one raw field.
type Disposition string

const (
	// Resolve compacts a URI string, or a list of them, into references.
	Resolve Disposition = "resolve"
	// Recurse processes a nested entity, set, list, or dict.
	Recurse Disposition = "recurse"
	// Copy carries the value into the processed model unchanged.
	Copy Disposition = "copy"
)

// Dispositions declares, per raw type, what happens to every field
// during processing. The tables are the authoritative statement of the
// engine's drop policy: nothing is dropped, so a raw field missing from
// its table is a defect, and the tests enforce full coverage against
// the model by reflection. Embedded blocks are covered by their own
// tables rather than repeated per entity.
var Dispositions = map[string]map[string]Disposition{
	"Identity": {
		"URI":        Resolve,
		"Identifier": Resolve,
		"Type":       Resolve,
	},
	"Provenance": {
		"Created":     Copy,
		"Issued":      Copy,
		"Modified":    Copy,
		"Creator":     Recurse,
		"Contributor": Recurse,
		"Source":      Recurse,
		"Publisher":   Recurse,
		"PartOf":      Recurse,
	},
	"Qualifiable": {
		"Annotations":        Recurse,
		"QualifiedRelations": Recurse,
		"QualifiedDates":     Recurse,
		"QualifiedLiterals":  Recurse,
		"Rank":               Copy,
	},
	"Labels": {
		"Notation":      Copy,
		"PrefLabel":     Copy,
		"AltLabel":      Copy,
		"HiddenLabel":   Copy,
		"ScopeNote":     Copy,
		"Definition":    Copy,
		"Example":       Copy,
		"HistoryNote":   Copy,
		"EditorialNote": Copy,
		"ChangeNote":    Copy,
		"Note":          Copy,
	},
	"Lifecycle": {
		"StartDate":    Copy,
		"EndDate":      Copy,
		"RelatedDate":  Copy,
		"RelatedDates": Copy,
		"StartPlace":   Recurse,
		"EndPlace":     Recurse,
		"Place":        Recurse,
	},
	"Links": {
		"ReplacedBy":   Recurse,
		"BasedOn":      Recurse,
		"Tool":         Recurse,
		"Issue":        Recurse,
		"IssueTracker": Recurse,
		"Guidelines":   Recurse,
		"VersionOf":    Recurse,
		"Subject":      Recurse,
		"SubjectOf":    Recurse,
		"Depiction":    Copy,
		"Version":      Copy,
	},
	"Bundle": {
		"MemberSet":    Recurse,
		"MemberList":   Recurse,
		"MemberChoice": Recurse,
	},
	"Resource": {},
	"Item":     {},
	"Concept": {
		"Narrower":     Recurse,
		"Broader":      Recurse,
		"Related":      Recurse,
		"Previous":     Recurse,
		"Next":         Recurse,
		"Ancestors":    Recurse,
		"InScheme":     Recurse,
		"TopConceptOf": Recurse,
		"Mappings":     Recurse,
		"Occurrences":  Recurse,
		"Deprecated":   Copy,
	},
	"ConceptScheme": {
		"TopConcepts":      Recurse,
		"Namespace":        Copy,
		"URIPattern":       Copy,
		"NotationPattern":  Copy,
		"NotationExamples": Copy,
	},
	"ConceptBundle": {},
	"Mapping": {
		"From":             Recurse,
		"To":               Recurse,
		"FromScheme":       Recurse,
		"ToScheme":         Recurse,
		"MappingRelevance": Copy,
		"Justification":    Resolve,
	},
	"Occurrence": {
		"Database":  Recurse,
		"Count":     Copy,
		"Frequency": Copy,
		"Relation":  Resolve,
		"Schemes":   Recurse,
		"URL":       Copy,
		"Template":  Copy,
		"Separator": Copy,
	},
	"Annotation": {
		"Context": Copy,
		"Type":    Copy,
		"ID":      Resolve,
		"Target":  Recurse,
	},
	"AnnotationTarget": {
		"URI":        Resolve,
		"Resource":   Recurse,
		"Annotation": Recurse,
	},
	"Qualifier": {
		"StartDate": Copy,
		"EndDate":   Copy,
		"Source":    Recurse,
		"Rank":      Copy,
	},
	"QualifiedRelation": {
		"Resource": Recurse,
	},
	"QualifiedDate": {
		"Date":  Copy,
		"Place": Recurse,
	},
	"QualifiedLiteral": {
		"Literal": Copy,
		"URI":     Resolve,
		"Type":    Resolve,
	},
	"LiteralValue": {
		"Value":    Copy,
		"Language": Copy,
	},
	"KOS": {
		"ID":            Copy,
		"Type":          Copy,
		"Title":         Copy,
		"Description":   Copy,
		"HasTopConcept": Recurse,
	},
}
