package model

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Validate checks the document against the structural rules the raw
// model owns: required fields, URI syntax, date syntax, rank values,
// and unit intervals. The first violation is returned as a
// *ValidationError naming the field path. Violations are reported in a
// deterministic order.
func (k *KOS) Validate() error {
	if k.ID == "" {
		return invalidf("id", "required field is missing")
	}
	if k.Type == "" {
		return invalidf("type", "required field is missing")
	}
	if k.Title == nil {
		return invalidf("title", "required field is missing")
	}
	if k.Description == nil {
		return invalidf("description", "required field is missing")
	}
	v := newValidator()
	for i, c := range k.HasTopConcept {
		p := indexed("", "hasTopConcept", i)
		if c == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.concept(p, c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the concept and everything reachable from it.
func (c *Concept) Validate() error {
	return newValidator().concept("", c)
}

// Validate checks the scheme and everything reachable from it.
func (s *ConceptScheme) Validate() error {
	return newValidator().scheme("", s)
}

// Validate checks the mapping and everything reachable from it.
func (m *Mapping) Validate() error {
	return newValidator().mapping("", m)
}

// Validate checks the resource and everything reachable from it.
func (r *Resource) Validate() error {
	return newValidator().resource("", r)
}

// Validate checks the item and everything reachable from it.
func (it *Item) Validate() error {
	return newValidator().item("", it)
}

// Validate checks the annotation and everything reachable from it.
func (a *Annotation) Validate() error {
	return newValidator().annotation("", a)
}

// Validate checks the occurrence and everything reachable from it.
func (o *Occurrence) Validate() error {
	return newValidator().occurrence("", o)
}

// validator walks an entity graph once. Visited pointers are recorded
// so shared nodes and cycles do not recurse forever.
type validator struct {
	visited map[any]struct{}
}

func newValidator() *validator {
	return &validator{visited: make(map[any]struct{})}
}

func (v *validator) enter(node any) bool {
	if _, ok := v.visited[node]; ok {
		return false
	}
	v.visited[node] = struct{}{}
	return true
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func indexed(path, field string, i int) string {
	return join(path, fmt.Sprintf("%s[%d]", field, i))
}

func keyed(path, field, key string) string {
	return join(path, field) + "[" + strconv.Quote(key) + "]"
}

func validURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func checkDate(path, field string, d Date) error {
	if d != "" && !d.Valid() {
		return invalidf(join(path, field), "invalid date %q", d)
	}
	return nil
}

func checkUnitInterval(path, field string, f *float64) error {
	if f != nil && (*f < 0 || *f > 1) {
		return invalidf(join(path, field), "must lie in the unit interval, got %v", *f)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *validator) identity(path string, id *Identity) error {
	if id.URI != "" && !validURI(id.URI) {
		return invalidf(join(path, "uri"), "not an absolute URI: %q", id.URI)
	}
	for i, u := range id.Identifier {
		if !validURI(u) {
			return invalidf(indexed(path, "identifier", i), "not an absolute URI: %q", u)
		}
	}
	for i, u := range id.Type {
		if !validURI(u) {
			return invalidf(indexed(path, "type", i), "not an absolute URI: %q", u)
		}
	}
	return nil
}

func (v *validator) provenance(path string, p *Provenance) error {
	if err := checkDate(path, "created", p.Created); err != nil {
		return err
	}
	if err := checkDate(path, "issued", p.Issued); err != nil {
		return err
	}
	if err := checkDate(path, "modified", p.Modified); err != nil {
		return err
	}
	if err := v.set(join(path, "creator"), p.Creator); err != nil {
		return err
	}
	if err := v.set(join(path, "contributor"), p.Contributor); err != nil {
		return err
	}
	if err := v.set(join(path, "source"), p.Source); err != nil {
		return err
	}
	if err := v.set(join(path, "publisher"), p.Publisher); err != nil {
		return err
	}
	return v.set(join(path, "partOf"), p.PartOf)
}

func (v *validator) qualifiable(path string, q *Qualifiable) error {
	for i, a := range q.Annotations {
		p := indexed(path, "annotations", i)
		if a == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.annotation(p, a); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(q.QualifiedRelations) {
		p := keyed(path, "qualifiedRelations", key)
		if !validURI(key) {
			return invalidf(p, "key is not an absolute URI")
		}
		qr := q.QualifiedRelations[key]
		if qr == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.qualifier(p, &qr.Qualifier); err != nil {
			return err
		}
		if qr.Resource == nil {
			return invalidf(join(p, "resource"), "required field is missing")
		}
		if err := v.resource(join(p, "resource"), qr.Resource); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(q.QualifiedDates) {
		p := keyed(path, "qualifiedDates", key)
		if !validURI(key) {
			return invalidf(p, "key is not an absolute URI")
		}
		qd := q.QualifiedDates[key]
		if qd == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.qualifier(p, &qd.Qualifier); err != nil {
			return err
		}
		if !qd.Date.Valid() {
			return invalidf(join(p, "date"), "invalid date %q", qd.Date)
		}
		if err := v.set(join(p, "place"), qd.Place); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(q.QualifiedLiterals) {
		p := keyed(path, "qualifiedLiterals", key)
		if !validURI(key) {
			return invalidf(p, "key is not an absolute URI")
		}
		ql := q.QualifiedLiterals[key]
		if ql == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.qualifier(p, &ql.Qualifier); err != nil {
			return err
		}
		if ql.Literal == nil {
			return invalidf(join(p, "literal"), "required field is missing")
		}
		if ql.URI != "" && !validURI(ql.URI) {
			return invalidf(join(p, "uri"), "not an absolute URI: %q", ql.URI)
		}
		for i, u := range ql.Type {
			if !validURI(u) {
				return invalidf(indexed(p, "type", i), "not an absolute URI: %q", u)
			}
		}
	}
	if q.Rank != "" && !q.Rank.IsValid() {
		return invalidf(join(path, "rank"), "invalid rank %q", q.Rank)
	}
	return nil
}

func (v *validator) qualifier(path string, q *Qualifier) error {
	if err := checkDate(path, "startDate", q.StartDate); err != nil {
		return err
	}
	if err := checkDate(path, "endDate", q.EndDate); err != nil {
		return err
	}
	if err := v.set(join(path, "source"), q.Source); err != nil {
		return err
	}
	if q.Rank != "" && !q.Rank.IsValid() {
		return invalidf(join(path, "rank"), "invalid rank %q", q.Rank)
	}
	return nil
}

func (v *validator) lifecycle(path string, l *Lifecycle) error {
	if err := checkDate(path, "startDate", l.StartDate); err != nil {
		return err
	}
	if err := checkDate(path, "endDate", l.EndDate); err != nil {
		return err
	}
	if err := checkDate(path, "relatedDate", l.RelatedDate); err != nil {
		return err
	}
	for i, d := range l.RelatedDates {
		if !d.Valid() {
			return invalidf(indexed(path, "relatedDates", i), "invalid date %q", d)
		}
	}
	if err := v.set(join(path, "startPlace"), l.StartPlace); err != nil {
		return err
	}
	if err := v.set(join(path, "endPlace"), l.EndPlace); err != nil {
		return err
	}
	return v.set(join(path, "place"), l.Place)
}

func (v *validator) links(path string, l *Links) error {
	lists := []struct {
		field string
		items []*Item
	}{
		{"replacedBy", l.ReplacedBy},
		{"basedOn", l.BasedOn},
		{"tool", l.Tool},
		{"issue", l.Issue},
		{"issueTracker", l.IssueTracker},
		{"guidelines", l.Guidelines},
		{"versionOf", l.VersionOf},
	}
	for _, list := range lists {
		for i, it := range list.items {
			p := indexed(path, list.field, i)
			if it == nil {
				return invalidf(p, "must not be null")
			}
			if err := v.item(p, it); err != nil {
				return err
			}
		}
	}
	if err := v.set(join(path, "subject"), l.Subject); err != nil {
		return err
	}
	return v.set(join(path, "subjectOf"), l.SubjectOf)
}

func (v *validator) bundle(path string, b *Bundle) error {
	if err := v.conceptSet(join(path, "memberSet"), b.MemberSet); err != nil {
		return err
	}
	if err := v.conceptSet(join(path, "memberList"), b.MemberList); err != nil {
		return err
	}
	return v.conceptSet(join(path, "memberChoice"), b.MemberChoice)
}

func (v *validator) set(path string, s Set) error {
	for i, r := range s {
		if r == nil {
			continue
		}
		if err := v.resource(fmt.Sprintf("%s[%d]", path, i), r); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) conceptSet(path string, s ConceptSet) error {
	for i, c := range s {
		if c == nil {
			continue
		}
		if err := v.concept(fmt.Sprintf("%s[%d]", path, i), c); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) resource(path string, r *Resource) error {
	if !v.enter(r) {
		return nil
	}
	if err := v.identity(path, &r.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &r.Provenance); err != nil {
		return err
	}
	return v.qualifiable(path, &r.Qualifiable)
}

func (v *validator) item(path string, it *Item) error {
	if !v.enter(it) {
		return nil
	}
	if err := v.identity(path, &it.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &it.Provenance); err != nil {
		return err
	}
	if err := v.qualifiable(path, &it.Qualifiable); err != nil {
		return err
	}
	if err := v.lifecycle(path, &it.Lifecycle); err != nil {
		return err
	}
	return v.links(path, &it.Links)
}

func (v *validator) concept(path string, c *Concept) error {
	if !v.enter(c) {
		return nil
	}
	if err := v.identity(path, &c.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &c.Provenance); err != nil {
		return err
	}
	if err := v.qualifiable(path, &c.Qualifiable); err != nil {
		return err
	}
	if err := v.lifecycle(path, &c.Lifecycle); err != nil {
		return err
	}
	if err := v.links(path, &c.Links); err != nil {
		return err
	}
	if err := v.bundle(path, &c.Bundle); err != nil {
		return err
	}
	edges := []struct {
		field string
		set   ConceptSet
	}{
		{"narrower", c.Narrower},
		{"broader", c.Broader},
		{"related", c.Related},
		{"previous", c.Previous},
		{"next", c.Next},
		{"ancestors", c.Ancestors},
	}
	for _, e := range edges {
		if err := v.conceptSet(join(path, e.field), e.set); err != nil {
			return err
		}
	}
	for i, s := range c.InScheme {
		p := indexed(path, "inScheme", i)
		if s == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.scheme(p, s); err != nil {
			return err
		}
	}
	for i, s := range c.TopConceptOf {
		p := indexed(path, "topConceptOf", i)
		if s == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.scheme(p, s); err != nil {
			return err
		}
	}
	for i, m := range c.Mappings {
		p := indexed(path, "mappings", i)
		if m == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.mapping(p, m); err != nil {
			return err
		}
	}
	for i, o := range c.Occurrences {
		p := indexed(path, "occurrences", i)
		if o == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.occurrence(p, o); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) scheme(path string, s *ConceptScheme) error {
	if !v.enter(s) {
		return nil
	}
	if err := v.identity(path, &s.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &s.Provenance); err != nil {
		return err
	}
	if err := v.qualifiable(path, &s.Qualifiable); err != nil {
		return err
	}
	if err := v.lifecycle(path, &s.Lifecycle); err != nil {
		return err
	}
	if err := v.links(path, &s.Links); err != nil {
		return err
	}
	for i, c := range s.TopConcepts {
		p := indexed(path, "topConcepts", i)
		if c == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.concept(p, c); err != nil {
			return err
		}
	}
	if s.Namespace != "" && !validURI(s.Namespace) {
		return invalidf(join(path, "namespace"), "not an absolute URI: %q", s.Namespace)
	}
	return nil
}

func (v *validator) mapping(path string, m *Mapping) error {
	if !v.enter(m) {
		return nil
	}
	if err := v.identity(path, &m.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &m.Provenance); err != nil {
		return err
	}
	if err := v.qualifiable(path, &m.Qualifiable); err != nil {
		return err
	}
	if err := v.lifecycle(path, &m.Lifecycle); err != nil {
		return err
	}
	if err := v.links(path, &m.Links); err != nil {
		return err
	}
	if m.From == nil {
		return invalidf(join(path, "from"), "required field is missing")
	}
	if err := v.bundle(join(path, "from"), &m.From.Bundle); err != nil {
		return err
	}
	if m.To == nil {
		return invalidf(join(path, "to"), "required field is missing")
	}
	if err := v.bundle(join(path, "to"), &m.To.Bundle); err != nil {
		return err
	}
	if m.FromScheme != nil {
		if err := v.scheme(join(path, "fromScheme"), m.FromScheme); err != nil {
			return err
		}
	}
	if m.ToScheme != nil {
		if err := v.scheme(join(path, "toScheme"), m.ToScheme); err != nil {
			return err
		}
	}
	if err := checkUnitInterval(path, "mappingRelevance", m.MappingRelevance); err != nil {
		return err
	}
	if m.Justification != "" && !validURI(m.Justification) {
		return invalidf(join(path, "justification"), "not an absolute URI: %q", m.Justification)
	}
	return nil
}

func (v *validator) occurrence(path string, o *Occurrence) error {
	if !v.enter(o) {
		return nil
	}
	if err := v.identity(path, &o.Identity); err != nil {
		return err
	}
	if err := v.provenance(path, &o.Provenance); err != nil {
		return err
	}
	if err := v.qualifiable(path, &o.Qualifiable); err != nil {
		return err
	}
	if err := v.bundle(path, &o.Bundle); err != nil {
		return err
	}
	if o.Database != nil {
		if err := v.item(join(path, "database"), o.Database); err != nil {
			return err
		}
	}
	if err := checkUnitInterval(path, "frequency", o.Frequency); err != nil {
		return err
	}
	if o.Relation != "" && !validURI(o.Relation) {
		return invalidf(join(path, "relation"), "not an absolute URI: %q", o.Relation)
	}
	if o.URL != "" && !validURI(o.URL) {
		return invalidf(join(path, "url"), "not an absolute URI: %q", o.URL)
	}
	for i, s := range o.Schemes {
		p := indexed(path, "schemes", i)
		if s == nil {
			return invalidf(p, "must not be null")
		}
		if err := v.scheme(p, s); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) annotation(path string, a *Annotation) error {
	if !v.enter(a) {
		return nil
	}
	if a.Context == "" {
		return invalidf(join(path, "@context"), "required field is missing")
	}
	if !validURI(a.Context) {
		return invalidf(join(path, "@context"), "not an absolute URI: %q", a.Context)
	}
	if a.Type == "" {
		return invalidf(join(path, "type"), "required field is missing")
	}
	if a.ID == "" {
		return invalidf(join(path, "id"), "required field is missing")
	}
	if !validURI(a.ID) {
		return invalidf(join(path, "id"), "not an absolute URI: %q", a.ID)
	}
	if a.Target == nil {
		return invalidf(join(path, "target"), "required field is missing")
	}
	switch {
	case a.Target.URI != "":
		if !validURI(a.Target.URI) {
			return invalidf(join(path, "target"), "not an absolute URI: %q", a.Target.URI)
		}
	case a.Target.Resource != nil:
		return v.resource(join(path, "target"), a.Target.Resource)
	case a.Target.Annotation != nil:
		return v.annotation(join(path, "target"), a.Target.Annotation)
	default:
		return invalidf(join(path, "target"), "matches no target shape")
	}
	return nil
}
