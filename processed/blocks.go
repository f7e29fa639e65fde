package processed

import (
	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
)

// Set is a processed JSKOS set. Null placeholders from the raw set
// survive as nil elements in the same positions.
type Set []*Resource

// ConceptSet is a processed JSKOS set of concepts.
type ConceptSet []*Concept

// Identity names a resource by compact references.
type Identity struct {
	// Reference is the resolved form of the raw uri field.
	Reference *curie.Reference `json:"reference,omitempty"`

	Identifier []curie.Reference `json:"identifier,omitempty"`
	Type       []curie.Reference `json:"type,omitempty"`
}

// Provenance mirrors the raw provenance block.
type Provenance struct {
	Created  model.Date `json:"created,omitempty"`
	Issued   model.Date `json:"issued,omitempty"`
	Modified model.Date `json:"modified,omitempty"`

	Creator     Set `json:"creator,omitempty"`
	Contributor Set `json:"contributor,omitempty"`
	Source      Set `json:"source,omitempty"`
	Publisher   Set `json:"publisher,omitempty"`
	PartOf      Set `json:"partOf,omitempty"`
}

// Qualifiable mirrors the raw block, with qualified statements keyed by
// resolved references instead of URI strings.
type Qualifiable struct {
	Annotations []*Annotation `json:"annotations,omitempty"`

	QualifiedRelations map[curie.Reference]*QualifiedRelation `json:"qualifiedRelations,omitempty"`
	QualifiedDates     map[curie.Reference]*QualifiedDate     `json:"qualifiedDates,omitempty"`
	QualifiedLiterals  map[curie.Reference]*QualifiedLiteral  `json:"qualifiedLiterals,omitempty"`

	Rank model.Rank `json:"rank,omitempty"`
}

// Labels mirrors the raw labels block unchanged.
type Labels struct {
	Notation []string `json:"notation,omitempty"`

	PrefLabel model.LanguageMap `json:"prefLabel,omitempty"`

	AltLabel      model.LanguageMapList `json:"altLabel,omitempty"`
	HiddenLabel   model.LanguageMapList `json:"hiddenLabel,omitempty"`
	ScopeNote     model.LanguageMapList `json:"scopeNote,omitempty"`
	Definition    model.LanguageMapList `json:"definition,omitempty"`
	Example       model.LanguageMapList `json:"example,omitempty"`
	HistoryNote   model.LanguageMapList `json:"historyNote,omitempty"`
	EditorialNote model.LanguageMapList `json:"editorialNote,omitempty"`
	ChangeNote    model.LanguageMapList `json:"changeNote,omitempty"`
	Note          model.LanguageMapList `json:"note,omitempty"`
}

// Lifecycle mirrors the raw lifecycle block.
type Lifecycle struct {
	StartDate    model.Date   `json:"startDate,omitempty"`
	EndDate      model.Date   `json:"endDate,omitempty"`
	RelatedDate  model.Date   `json:"relatedDate,omitempty"`
	RelatedDates []model.Date `json:"relatedDates,omitempty"`

	StartPlace Set `json:"startPlace,omitempty"`
	EndPlace   Set `json:"endPlace,omitempty"`
	Place      Set `json:"place,omitempty"`
}

// Links mirrors the raw links block.
type Links struct {
	ReplacedBy   []*Item `json:"replacedBy,omitempty"`
	BasedOn      []*Item `json:"basedOn,omitempty"`
	Tool         []*Item `json:"tool,omitempty"`
	Issue        []*Item `json:"issue,omitempty"`
	IssueTracker []*Item `json:"issueTracker,omitempty"`
	Guidelines   []*Item `json:"guidelines,omitempty"`
	VersionOf    []*Item `json:"versionOf,omitempty"`

	Subject   Set `json:"subject,omitempty"`
	SubjectOf Set `json:"subjectOf,omitempty"`

	Depiction []string `json:"depiction,omitempty"`

	Version string `json:"version,omitempty"`
}

// Bundle mirrors the raw bundle block.
type Bundle struct {
	MemberSet    ConceptSet `json:"memberSet,omitempty"`
	MemberList   ConceptSet `json:"memberList,omitempty"`
	MemberChoice ConceptSet `json:"memberChoice,omitempty"`
}
