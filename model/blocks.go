package model

// Identity names a resource: its URI plus any additional identifiers
// and type URIs.
type Identity struct {
	// URI is the primary globally unique identifier.
	URI string `json:"uri,omitempty"`

	// Identifier lists additional URIs identifying the same resource.
	Identifier []string `json:"identifier,omitempty"`

	// Type lists the URIs of the resource's types.
	Type []string `json:"type,omitempty"`
}

// Provenance carries creation and publication metadata shared by every
// resource.
type Provenance struct {
	Created  Date `json:"created,omitempty"`
	Issued   Date `json:"issued,omitempty"`
	Modified Date `json:"modified,omitempty"`

	Creator     Set `json:"creator,omitempty"`
	Contributor Set `json:"contributor,omitempty"`
	Source      Set `json:"source,omitempty"`
	Publisher   Set `json:"publisher,omitempty"`
	PartOf      Set `json:"partOf,omitempty"`
}

// Qualifiable carries annotations, qualified statements, and rank.
type Qualifiable struct {
	Annotations []*Annotation `json:"annotations,omitempty"`

	// Qualified statements are keyed by the URI of the qualifying
	// property.
	QualifiedRelations map[string]*QualifiedRelation `json:"qualifiedRelations,omitempty"`
	QualifiedDates     map[string]*QualifiedDate     `json:"qualifiedDates,omitempty"`
	QualifiedLiterals  map[string]*QualifiedLiteral  `json:"qualifiedLiterals,omitempty"`

	Rank Rank `json:"rank,omitempty"`
}

// Labels carries an item's notation and label fields.
type Labels struct {
	Notation []string `json:"notation,omitempty"`

	PrefLabel LanguageMap `json:"prefLabel,omitempty"`

	AltLabel      LanguageMapList `json:"altLabel,omitempty"`
	HiddenLabel   LanguageMapList `json:"hiddenLabel,omitempty"`
	ScopeNote     LanguageMapList `json:"scopeNote,omitempty"`
	Definition    LanguageMapList `json:"definition,omitempty"`
	Example       LanguageMapList `json:"example,omitempty"`
	HistoryNote   LanguageMapList `json:"historyNote,omitempty"`
	EditorialNote LanguageMapList `json:"editorialNote,omitempty"`
	ChangeNote    LanguageMapList `json:"changeNote,omitempty"`
	Note          LanguageMapList `json:"note,omitempty"`
}

// Lifecycle carries temporal and spatial extent.
type Lifecycle struct {
	StartDate    Date   `json:"startDate,omitempty"`
	EndDate      Date   `json:"endDate,omitempty"`
	RelatedDate  Date   `json:"relatedDate,omitempty"`
	RelatedDates []Date `json:"relatedDates,omitempty"`

	StartPlace Set `json:"startPlace,omitempty"`
	EndPlace   Set `json:"endPlace,omitempty"`
	Place      Set `json:"place,omitempty"`
}

// Links carries an item's references to related items and subjects.
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

	// Depiction lists URLs of images depicting the item.
	Depiction []string `json:"depiction,omitempty"`

	Version string `json:"version,omitempty"`
}

// Bundle groups concepts into a set, an ordered list, or a choice.
type Bundle struct {
	MemberSet    ConceptSet `json:"memberSet,omitempty"`
	MemberList   ConceptSet `json:"memberList,omitempty"`
	MemberChoice ConceptSet `json:"memberChoice,omitempty"`
}
