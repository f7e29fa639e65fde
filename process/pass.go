package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
)

// pass is the per-call state of one engine invocation: the field path
// for error reporting plus identity memos that keep shared and cyclic
// nodes shared in the output. A processed node is registered in its
// memo before its fields are filled, so a cycle closing back on a node
// in progress picks up the final pointer and recursion bottoms out.
type pass struct {
	conv   *curie.Converter
	strict bool

	path []string

	concepts    map[*model.Concept]*processed.Concept
	schemes     map[*model.ConceptScheme]*processed.ConceptScheme
	items       map[*model.Item]*processed.Item
	resources   map[*model.Resource]*processed.Resource
	mappings    map[*model.Mapping]*processed.Mapping
	occurrences map[*model.Occurrence]*processed.Occurrence
	annotations map[*model.Annotation]*processed.Annotation
}

func newPass(conv *curie.Converter, strict bool) *pass {
	return &pass{
		conv:        conv,
		strict:      strict,
		concepts:    make(map[*model.Concept]*processed.Concept),
		schemes:     make(map[*model.ConceptScheme]*processed.ConceptScheme),
		items:       make(map[*model.Item]*processed.Item),
		resources:   make(map[*model.Resource]*processed.Resource),
		mappings:    make(map[*model.Mapping]*processed.Mapping),
		occurrences: make(map[*model.Occurrence]*processed.Occurrence),
		annotations: make(map[*model.Annotation]*processed.Annotation),
	}
}

// enter pushes a path segment and returns the matching pop. The empty
// segment marks a call entry point and pushes nothing.
func (p *pass) enter(segment string) func() {
	if segment == "" {
		return func() {}
	}
	p.path = append(p.path, segment)
	return func() { p.path = p.path[:len(p.path)-1] }
}

// at renders the current path extended by one more field.
func (p *pass) at(field string) string {
	if len(p.path) == 0 {
		return field
	}
	if field == "" {
		return strings.Join(p.path, ".")
	}
	return strings.Join(p.path, ".") + "." + field
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}

func keyed(field, key string) string {
	return fmt.Sprintf("%s[%q]", field, key)
}

// resolve compacts one URI, wrapping failures with the field path.
func (p *pass) resolve(field, uri string) (curie.Reference, error) {
	ref, err := p.conv.Resolve(uri, p.strict)
	if err != nil {
		return curie.Reference{}, &FieldError{Path: p.at(field), Value: uri, Err: err}
	}
	return ref, nil
}

// resolveOptional compacts a URI that may be absent, mapping "" to nil.
func (p *pass) resolveOptional(field, uri string) (*curie.Reference, error) {
	if uri == "" {
		return nil, nil
	}
	ref, err := p.resolve(field, uri)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// resolveList compacts a list of URIs.
func (p *pass) resolveList(field string, uris []string) ([]curie.Reference, error) {
	if uris == nil {
		return nil, nil
	}
	out := make([]curie.Reference, len(uris))
	for i, uri := range uris {
		ref, err := p.resolve(indexed(field, i), uri)
		if err != nil {
			return nil, err
		}
		out[i] = ref
	}
	return out, nil
}

// Shared blocks.

func (p *pass) identity(in *model.Identity, out *processed.Identity) error {
	ref, err := p.resolveOptional("uri", in.URI)
	if err != nil {
		return err
	}
	out.Reference = ref
	if out.Identifier, err = p.resolveList("identifier", in.Identifier); err != nil {
		return err
	}
	if out.Type, err = p.resolveList("type", in.Type); err != nil {
		return err
	}
	return nil
}

func (p *pass) provenance(in *model.Provenance, out *processed.Provenance) error {
	out.Created = in.Created
	out.Issued = in.Issued
	out.Modified = in.Modified
	var err error
	if out.Creator, err = p.set("creator", in.Creator); err != nil {
		return err
	}
	if out.Contributor, err = p.set("contributor", in.Contributor); err != nil {
		return err
	}
	if out.Source, err = p.set("source", in.Source); err != nil {
		return err
	}
	if out.Publisher, err = p.set("publisher", in.Publisher); err != nil {
		return err
	}
	if out.PartOf, err = p.set("partOf", in.PartOf); err != nil {
		return err
	}
	return nil
}

func (p *pass) qualifiable(in *model.Qualifiable, out *processed.Qualifiable) error {
	if in.Annotations != nil {
		out.Annotations = make([]*processed.Annotation, len(in.Annotations))
		for i, a := range in.Annotations {
			if a == nil {
				continue
			}
			pa, err := p.annotation(indexed("annotations", i), a)
			if err != nil {
				return err
			}
			out.Annotations[i] = pa
		}
	}
	var err error
	if out.QualifiedRelations, err = processDict(p, "qualifiedRelations", in.QualifiedRelations, p.qualifiedRelation); err != nil {
		return err
	}
	if out.QualifiedDates, err = processDict(p, "qualifiedDates", in.QualifiedDates, p.qualifiedDate); err != nil {
		return err
	}
	if out.QualifiedLiterals, err = processDict(p, "qualifiedLiterals", in.QualifiedLiterals, p.qualifiedLiteral); err != nil {
		return err
	}
	out.Rank = in.Rank
	return nil
}

func (p *pass) labels(in *model.Labels, out *processed.Labels) {
	out.Notation = copyStrings(in.Notation)
	out.PrefLabel = copyLanguageMap(in.PrefLabel)
	out.AltLabel = copyLanguageMapList(in.AltLabel)
	out.HiddenLabel = copyLanguageMapList(in.HiddenLabel)
	out.ScopeNote = copyLanguageMapList(in.ScopeNote)
	out.Definition = copyLanguageMapList(in.Definition)
	out.Example = copyLanguageMapList(in.Example)
	out.HistoryNote = copyLanguageMapList(in.HistoryNote)
	out.EditorialNote = copyLanguageMapList(in.EditorialNote)
	out.ChangeNote = copyLanguageMapList(in.ChangeNote)
	out.Note = copyLanguageMapList(in.Note)
}

func (p *pass) lifecycle(in *model.Lifecycle, out *processed.Lifecycle) error {
	out.StartDate = in.StartDate
	out.EndDate = in.EndDate
	out.RelatedDate = in.RelatedDate
	out.RelatedDates = copyDates(in.RelatedDates)
	var err error
	if out.StartPlace, err = p.set("startPlace", in.StartPlace); err != nil {
		return err
	}
	if out.EndPlace, err = p.set("endPlace", in.EndPlace); err != nil {
		return err
	}
	if out.Place, err = p.set("place", in.Place); err != nil {
		return err
	}
	return nil
}

func (p *pass) links(in *model.Links, out *processed.Links) error {
	var err error
	if out.ReplacedBy, err = p.itemList("replacedBy", in.ReplacedBy); err != nil {
		return err
	}
	if out.BasedOn, err = p.itemList("basedOn", in.BasedOn); err != nil {
		return err
	}
	if out.Tool, err = p.itemList("tool", in.Tool); err != nil {
		return err
	}
	if out.Issue, err = p.itemList("issue", in.Issue); err != nil {
		return err
	}
	if out.IssueTracker, err = p.itemList("issueTracker", in.IssueTracker); err != nil {
		return err
	}
	if out.Guidelines, err = p.itemList("guidelines", in.Guidelines); err != nil {
		return err
	}
	if out.VersionOf, err = p.itemList("versionOf", in.VersionOf); err != nil {
		return err
	}
	if out.Subject, err = p.set("subject", in.Subject); err != nil {
		return err
	}
	if out.SubjectOf, err = p.set("subjectOf", in.SubjectOf); err != nil {
		return err
	}
	out.Depiction = copyStrings(in.Depiction)
	out.Version = in.Version
	return nil
}

func (p *pass) bundle(in *model.Bundle, out *processed.Bundle) error {
	var err error
	if out.MemberSet, err = p.conceptSet("memberSet", in.MemberSet); err != nil {
		return err
	}
	if out.MemberList, err = p.conceptSet("memberList", in.MemberList); err != nil {
		return err
	}
	if out.MemberChoice, err = p.conceptSet("memberChoice", in.MemberChoice); err != nil {
		return err
	}
	return nil
}

// Collections.

// set processes a JSKOS set. Null placeholders keep their positions.
func (p *pass) set(field string, in model.Set) (processed.Set, error) {
	if in == nil {
		return nil, nil
	}
	out := make(processed.Set, len(in))
	for i, r := range in {
		if r == nil {
			continue
		}
		pr, err := p.resource(indexed(field, i), r)
		if err != nil {
			return nil, err
		}
		out[i] = pr
	}
	return out, nil
}

func (p *pass) conceptSet(field string, in model.ConceptSet) (processed.ConceptSet, error) {
	if in == nil {
		return nil, nil
	}
	out := make(processed.ConceptSet, len(in))
	for i, c := range in {
		if c == nil {
			continue
		}
		pc, err := p.concept(indexed(field, i), c)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

func (p *pass) itemList(field string, in []*model.Item) ([]*processed.Item, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]*processed.Item, len(in))
	for i, it := range in {
		if it == nil {
			continue
		}
		pi, err := p.item(indexed(field, i), it)
		if err != nil {
			return nil, err
		}
		out[i] = pi
	}
	return out, nil
}

func (p *pass) schemeList(field string, in []*model.ConceptScheme) ([]*processed.ConceptScheme, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]*processed.ConceptScheme, len(in))
	for i, s := range in {
		if s == nil {
			continue
		}
		ps, err := p.scheme(indexed(field, i), s)
		if err != nil {
			return nil, err
		}
		out[i] = ps
	}
	return out, nil
}

// processDict resolves every key of a URI-keyed dict and processes its
// values. Raw keys are visited in sorted order so the outcome never
// depends on map iteration: with several failing keys the reported
// error is stable, and should a converter ever compact two keys to the
// same reference the later key wins.
func processDict[R, P any](p *pass, field string, in map[string]R, fn func(string, R) (P, error)) (map[curie.Reference]P, error) {
	if in == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[curie.Reference]P, len(in))
	for _, k := range keys {
		segment := keyed(field, k)
		ref, err := p.resolve(segment, k)
		if err != nil {
			return nil, err
		}
		v, err := fn(segment, in[k])
		if err != nil {
			return nil, err
		}
		out[ref] = v
	}
	return out, nil
}

// Entities.

func (p *pass) resource(segment string, in *model.Resource) (*processed.Resource, error) {
	if out, ok := p.resources[in]; ok {
		return out, nil
	}
	out := new(processed.Resource)
	p.resources[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pass) item(segment string, in *model.Item) (*processed.Item, error) {
	if out, ok := p.items[in]; ok {
		return out, nil
	}
	out := new(processed.Item)
	p.items[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	p.labels(&in.Labels, &out.Labels)
	if err := p.lifecycle(&in.Lifecycle, &out.Lifecycle); err != nil {
		return nil, err
	}
	if err := p.links(&in.Links, &out.Links); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pass) concept(segment string, in *model.Concept) (*processed.Concept, error) {
	if out, ok := p.concepts[in]; ok {
		return out, nil
	}
	out := new(processed.Concept)
	p.concepts[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	p.labels(&in.Labels, &out.Labels)
	if err := p.lifecycle(&in.Lifecycle, &out.Lifecycle); err != nil {
		return nil, err
	}
	if err := p.links(&in.Links, &out.Links); err != nil {
		return nil, err
	}
	if err := p.bundle(&in.Bundle, &out.Bundle); err != nil {
		return nil, err
	}

	var err error
	if out.Narrower, err = p.conceptSet("narrower", in.Narrower); err != nil {
		return nil, err
	}
	if out.Broader, err = p.conceptSet("broader", in.Broader); err != nil {
		return nil, err
	}
	if out.Related, err = p.conceptSet("related", in.Related); err != nil {
		return nil, err
	}
	if out.Previous, err = p.conceptSet("previous", in.Previous); err != nil {
		return nil, err
	}
	if out.Next, err = p.conceptSet("next", in.Next); err != nil {
		return nil, err
	}
	if out.Ancestors, err = p.conceptSet("ancestors", in.Ancestors); err != nil {
		return nil, err
	}
	if out.InScheme, err = p.schemeList("inScheme", in.InScheme); err != nil {
		return nil, err
	}
	if out.TopConceptOf, err = p.schemeList("topConceptOf", in.TopConceptOf); err != nil {
		return nil, err
	}

	if in.Mappings != nil {
		out.Mappings = make([]*processed.Mapping, len(in.Mappings))
		for i, m := range in.Mappings {
			if m == nil {
				continue
			}
			pm, err := p.mapping(indexed("mappings", i), m)
			if err != nil {
				return nil, err
			}
			out.Mappings[i] = pm
		}
	}
	if in.Occurrences != nil {
		out.Occurrences = make([]*processed.Occurrence, len(in.Occurrences))
		for i, o := range in.Occurrences {
			if o == nil {
				continue
			}
			po, err := p.occurrence(indexed("occurrences", i), o)
			if err != nil {
				return nil, err
			}
			out.Occurrences[i] = po
		}
	}
	out.Deprecated = copyBool(in.Deprecated)
	return out, nil
}

func (p *pass) scheme(segment string, in *model.ConceptScheme) (*processed.ConceptScheme, error) {
	if out, ok := p.schemes[in]; ok {
		return out, nil
	}
	out := new(processed.ConceptScheme)
	p.schemes[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	p.labels(&in.Labels, &out.Labels)
	if err := p.lifecycle(&in.Lifecycle, &out.Lifecycle); err != nil {
		return nil, err
	}
	if err := p.links(&in.Links, &out.Links); err != nil {
		return nil, err
	}

	if in.TopConcepts != nil {
		out.TopConcepts = make([]*processed.Concept, len(in.TopConcepts))
		for i, c := range in.TopConcepts {
			if c == nil {
				continue
			}
			pc, err := p.concept(indexed("topConcepts", i), c)
			if err != nil {
				return nil, err
			}
			out.TopConcepts[i] = pc
		}
	}
	out.Namespace = in.Namespace
	out.URIPattern = in.URIPattern
	out.NotationPattern = in.NotationPattern
	out.NotationExamples = copyStrings(in.NotationExamples)
	return out, nil
}

func (p *pass) conceptBundle(segment string, in *model.ConceptBundle) (*processed.ConceptBundle, error) {
	defer p.enter(segment)()
	out := new(processed.ConceptBundle)
	if err := p.bundle(&in.Bundle, &out.Bundle); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pass) mapping(segment string, in *model.Mapping) (*processed.Mapping, error) {
	if out, ok := p.mappings[in]; ok {
		return out, nil
	}
	out := new(processed.Mapping)
	p.mappings[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	p.labels(&in.Labels, &out.Labels)
	if err := p.lifecycle(&in.Lifecycle, &out.Lifecycle); err != nil {
		return nil, err
	}
	if err := p.links(&in.Links, &out.Links); err != nil {
		return nil, err
	}

	if in.From != nil {
		b, err := p.conceptBundle("from", in.From)
		if err != nil {
			return nil, err
		}
		out.From = b
	}
	if in.To != nil {
		b, err := p.conceptBundle("to", in.To)
		if err != nil {
			return nil, err
		}
		out.To = b
	}
	if in.FromScheme != nil {
		s, err := p.scheme("fromScheme", in.FromScheme)
		if err != nil {
			return nil, err
		}
		out.FromScheme = s
	}
	if in.ToScheme != nil {
		s, err := p.scheme("toScheme", in.ToScheme)
		if err != nil {
			return nil, err
		}
		out.ToScheme = s
	}
	out.MappingRelevance = copyFloat(in.MappingRelevance)
	var err error
	if out.Justification, err = p.resolveOptional("justification", in.Justification); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pass) occurrence(segment string, in *model.Occurrence) (*processed.Occurrence, error) {
	if out, ok := p.occurrences[in]; ok {
		return out, nil
	}
	out := new(processed.Occurrence)
	p.occurrences[in] = out
	defer p.enter(segment)()

	if err := p.identity(&in.Identity, &out.Identity); err != nil {
		return nil, err
	}
	if err := p.provenance(&in.Provenance, &out.Provenance); err != nil {
		return nil, err
	}
	if err := p.qualifiable(&in.Qualifiable, &out.Qualifiable); err != nil {
		return nil, err
	}
	if err := p.bundle(&in.Bundle, &out.Bundle); err != nil {
		return nil, err
	}

	if in.Database != nil {
		d, err := p.item("database", in.Database)
		if err != nil {
			return nil, err
		}
		out.Database = d
	}
	out.Count = copyInt(in.Count)
	out.Frequency = copyFloat(in.Frequency)
	var err error
	if out.Relation, err = p.resolveOptional("relation", in.Relation); err != nil {
		return nil, err
	}
	if out.Schemes, err = p.schemeList("schemes", in.Schemes); err != nil {
		return nil, err
	}
	out.URL = in.URL
	out.Template = in.Template
	out.Separator = in.Separator
	return out, nil
}

func (p *pass) annotation(segment string, in *model.Annotation) (*processed.Annotation, error) {
	if out, ok := p.annotations[in]; ok {
		return out, nil
	}
	out := new(processed.Annotation)
	p.annotations[in] = out
	defer p.enter(segment)()

	out.Context = in.Context
	out.Type = in.Type
	ref, err := p.resolve("id", in.ID)
	if err != nil {
		return nil, err
	}
	out.Reference = ref

	target, err := p.annotationTarget("target", in.Target)
	if err != nil {
		return nil, err
	}
	out.Target = target
	return out, nil
}

// annotationTarget dispatches on the populated target variant: nested
// annotation, embedded resource, or bare URI.
func (p *pass) annotationTarget(field string, in *model.AnnotationTarget) (*processed.AnnotationTarget, error) {
	if in == nil {
		return nil, &FieldError{Path: p.at(field), Err: &TypeMismatchError{Got: "annotation without a target"}}
	}
	out := new(processed.AnnotationTarget)
	switch {
	case in.Annotation != nil:
		pa, err := p.annotation(field, in.Annotation)
		if err != nil {
			return nil, err
		}
		out.Annotation = pa
	case in.Resource != nil:
		pr, err := p.resource(field, in.Resource)
		if err != nil {
			return nil, err
		}
		out.Resource = pr
	case in.URI != "":
		ref, err := p.resolve(field, in.URI)
		if err != nil {
			return nil, err
		}
		out.Reference = &ref
	default:
		return nil, &FieldError{Path: p.at(field), Err: &TypeMismatchError{Got: "annotation target with no populated variant"}}
	}
	return out, nil
}

// Qualified values.

func (p *pass) qualifier(in *model.Qualifier, out *processed.Qualifier) error {
	out.StartDate = in.StartDate
	out.EndDate = in.EndDate
	var err error
	if out.Source, err = p.set("source", in.Source); err != nil {
		return err
	}
	out.Rank = in.Rank
	return nil
}

func (p *pass) qualifiedRelation(segment string, in *model.QualifiedRelation) (*processed.QualifiedRelation, error) {
	defer p.enter(segment)()
	if in == nil {
		return nil, &FieldError{Path: p.at(""), Err: &TypeMismatchError{Got: "null qualified value"}}
	}
	out := new(processed.QualifiedRelation)
	if err := p.qualifier(&in.Qualifier, &out.Qualifier); err != nil {
		return nil, err
	}
	if in.Resource == nil {
		return nil, &FieldError{Path: p.at("resource"), Err: &TypeMismatchError{Got: "qualified relation without a resource"}}
	}
	r, err := p.resource("resource", in.Resource)
	if err != nil {
		return nil, err
	}
	out.Resource = r
	return out, nil
}

func (p *pass) qualifiedDate(segment string, in *model.QualifiedDate) (*processed.QualifiedDate, error) {
	defer p.enter(segment)()
	if in == nil {
		return nil, &FieldError{Path: p.at(""), Err: &TypeMismatchError{Got: "null qualified value"}}
	}
	out := new(processed.QualifiedDate)
	if err := p.qualifier(&in.Qualifier, &out.Qualifier); err != nil {
		return nil, err
	}
	out.Date = in.Date
	var err error
	if out.Place, err = p.set("place", in.Place); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *pass) qualifiedLiteral(segment string, in *model.QualifiedLiteral) (*processed.QualifiedLiteral, error) {
	defer p.enter(segment)()
	if in == nil {
		return nil, &FieldError{Path: p.at(""), Err: &TypeMismatchError{Got: "null qualified value"}}
	}
	out := new(processed.QualifiedLiteral)
	if err := p.qualifier(&in.Qualifier, &out.Qualifier); err != nil {
		return nil, err
	}
	out.Literal = copyLiteral(in.Literal)
	var err error
	if out.Reference, err = p.resolveOptional("uri", in.URI); err != nil {
		return nil, err
	}
	if out.Type, err = p.resolveList("type", in.Type); err != nil {
		return nil, err
	}
	return out, nil
}

// Document root.

func (p *pass) kos(in *model.KOS) (*processed.KOS, error) {
	out := &processed.KOS{
		ID:          in.ID,
		Type:        in.Type,
		Title:       copyLanguageMap(in.Title),
		Description: copyLanguageMap(in.Description),
		Concepts:    make([]*processed.Concept, 0, len(in.HasTopConcept)),
	}
	for i, c := range in.HasTopConcept {
		if c == nil {
			continue
		}
		pc, err := p.concept(indexed("hasTopConcept", i), c)
		if err != nil {
			return nil, err
		}
		out.Concepts = append(out.Concepts, pc)
	}
	return out, nil
}
