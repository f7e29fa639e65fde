package processed

import (
	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
)

// Resource is a processed resource.
type Resource struct {
	Identity
	Provenance
	Qualifiable
}

// Item is a processed item.
type Item struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links
}

// Concept is a processed concept. Edge sets may share nodes or form
// cycles exactly where the raw graph did.
type Concept struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links
	Bundle

	Narrower  ConceptSet `json:"narrower,omitempty"`
	Broader   ConceptSet `json:"broader,omitempty"`
	Related   ConceptSet `json:"related,omitempty"`
	Previous  ConceptSet `json:"previous,omitempty"`
	Next      ConceptSet `json:"next,omitempty"`
	Ancestors ConceptSet `json:"ancestors,omitempty"`

	InScheme     []*ConceptScheme `json:"inScheme,omitempty"`
	TopConceptOf []*ConceptScheme `json:"topConceptOf,omitempty"`

	Mappings    []*Mapping    `json:"mappings,omitempty"`
	Occurrences []*Occurrence `json:"occurrences,omitempty"`

	Deprecated *bool `json:"deprecated,omitempty"`
}

// ConceptScheme is a processed concept scheme.
type ConceptScheme struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links

	TopConcepts []*Concept `json:"topConcepts,omitempty"`

	Namespace        string   `json:"namespace,omitempty"`
	URIPattern       string   `json:"uriPattern,omitempty"`
	NotationPattern  string   `json:"notationPattern,omitempty"`
	NotationExamples []string `json:"notationExamples,omitempty"`
}

// ConceptBundle is a processed concept bundle.
type ConceptBundle struct {
	Bundle
}

// Mapping is a processed mapping. Justification holds the resolved
// match-type reference.
type Mapping struct {
	Identity
	Provenance
	Qualifiable
	Labels
	Lifecycle
	Links

	From *ConceptBundle `json:"from"`
	To   *ConceptBundle `json:"to"`

	FromScheme *ConceptScheme `json:"fromScheme,omitempty"`
	ToScheme   *ConceptScheme `json:"toScheme,omitempty"`

	MappingRelevance *float64         `json:"mappingRelevance,omitempty"`
	Justification    *curie.Reference `json:"justification,omitempty"`
}

// Occurrence is a processed occurrence. Relation holds the resolved
// property reference; URL, Template, and Separator stay verbatim since
// they point at web pages, not vocabulary identifiers.
type Occurrence struct {
	Identity
	Provenance
	Qualifiable
	Bundle

	Database *Item `json:"database,omitempty"`

	Count     *int             `json:"count,omitempty"`
	Frequency *float64         `json:"frequency,omitempty"`
	Relation  *curie.Reference `json:"relation,omitempty"`

	Schemes []*ConceptScheme `json:"schemes,omitempty"`

	URL       string `json:"url,omitempty"`
	Template  string `json:"template,omitempty"`
	Separator string `json:"separator,omitempty"`
}

// Annotation is a processed annotation. Reference holds the resolved
// form of the raw id.
type Annotation struct {
	Context   string            `json:"@context"`
	Type      string            `json:"type"`
	Reference curie.Reference   `json:"reference"`
	Target    *AnnotationTarget `json:"target"`
}

// AnnotationTarget mirrors the raw target union: exactly one of the
// three fields is set.
type AnnotationTarget struct {
	Reference  *curie.Reference `json:"reference,omitempty"`
	Resource   *Resource        `json:"resource,omitempty"`
	Annotation *Annotation      `json:"annotation,omitempty"`
}

// Qualifier carries the shared qualified-value fields.
type Qualifier struct {
	StartDate model.Date `json:"startDate,omitempty"`
	EndDate   model.Date `json:"endDate,omitempty"`
	Source    Set        `json:"source,omitempty"`
	Rank      model.Rank `json:"rank,omitempty"`
}

// QualifiedRelation is a processed qualified relation.
type QualifiedRelation struct {
	Qualifier

	Resource *Resource `json:"resource"`
}

// QualifiedDate is a processed qualified date.
type QualifiedDate struct {
	Qualifier

	Date  model.Date `json:"date"`
	Place Set        `json:"place,omitempty"`
}

// QualifiedLiteral is a processed qualified literal.
type QualifiedLiteral struct {
	Qualifier

	Literal   *model.LiteralValue `json:"literal"`
	Reference *curie.Reference    `json:"reference,omitempty"`
	Type      []curie.Reference   `json:"type,omitempty"`
}

// KOS is a processed document root. Concepts is never nil; a document
// without top concepts yields an empty slice.
type KOS struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Title       model.LanguageMap `json:"title"`
	Description model.LanguageMap `json:"description"`

	Concepts []*Concept `json:"concepts"`
}
