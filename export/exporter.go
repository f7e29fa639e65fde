package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/vocabulary/jskos"
	"github.com/c360studio/jskos/vocabulary/skos"
)

// Format selects the output serialization.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"
)

// ParseFormat maps user-facing format names onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatNTriples {
		return ".nt"
	}
	return ".ttl"
}

// Exporter accumulates processed entities and serializes them to RDF.
// Entities are deduplicated by node identity, so adding a document and
// then one of its concepts again is harmless.
type Exporter struct {
	conv    *curie.Converter
	display *curie.Converter

	stmts  []statement
	added  map[any]bool
	blanks map[any]string
	nblank int
}

// New builds an exporter expanding references through conv.
func New(conv *curie.Converter) *Exporter {
	return &Exporter{
		conv:    conv,
		display: displayConverter(conv),
		added:   make(map[any]bool),
		blanks:  make(map[any]string),
	}
}

// displayConverter layers the caller's prefixes over the built-in
// vocabulary table, so Turtle can compact both domain and W3C terms.
// The caller's binding wins when both tables cover a namespace.
func displayConverter(conv *curie.Converter) *curie.Converter {
	table := jskos.DefaultPrefixes()
	byNamespace := make(map[string]string, len(table))
	for prefix, namespace := range table {
		byNamespace[namespace] = prefix
	}
	if conv != nil {
		for prefix, namespace := range conv.Prefixes() {
			if prev, ok := byNamespace[namespace]; ok && prev != prefix {
				delete(table, prev)
			}
			byNamespace[namespace] = prefix
			table[prefix] = namespace
		}
	}
	display, err := curie.NewConverter(table)
	if err != nil {
		return conv
	}
	return display
}

// Statements returns the number of accumulated triples.
func (e *Exporter) Statements() int { return len(e.stmts) }

func (e *Exporter) emit(subject term, predicate string, object term) {
	e.stmts = append(e.stmts, statement{subject: subject, predicate: predicate, object: object})
}

func (e *Exporter) expand(ref curie.Reference) string {
	iri, err := e.conv.Expand(ref)
	if err != nil {
		// A reference minted against another table still renders in
		// CURIE syntax, which is itself IRI-shaped.
		return ref.String()
	}
	return iri
}

// subjectFor names a node: its reference IRI when it has one, otherwise
// a blank label stable for the lifetime of the exporter.
func (e *Exporter) subjectFor(node any, ref *curie.Reference) term {
	if ref != nil && !ref.IsZero() {
		return iriTerm(e.expand(*ref))
	}
	if label, ok := e.blanks[node]; ok {
		return blankTerm(label)
	}
	e.nblank++
	label := "b" + strconv.Itoa(e.nblank)
	e.blanks[node] = label
	return blankTerm(label)
}

// AddKOS adds a whole processed document: the root node, every concept,
// and everything reachable from them.
func (e *Exporter) AddKOS(doc *processed.KOS) {
	if doc == nil || e.added[doc] {
		return
	}
	e.added[doc] = true

	if isAbsoluteIRI(doc.ID) {
		root := iriTerm(doc.ID)
		if isAbsoluteIRI(doc.Type) {
			e.emit(root, skos.RDFType, iriTerm(doc.Type))
		}
		e.emitLangMap(root, skos.DCTitle, doc.Title)
		e.emitLangMap(root, skos.DCDescription, doc.Description)
		for _, c := range doc.Concepts {
			if c == nil {
				continue
			}
			e.emit(root, skos.HasTopConcept, e.subjectFor(c, c.Reference))
		}
	}
	for _, c := range doc.Concepts {
		e.AddConcept(c)
	}
}

// AddConcept adds one concept and recursively everything it links to.
func (e *Exporter) AddConcept(c *processed.Concept) {
	if c == nil || e.added[c] {
		return
	}
	e.added[c] = true
	s := e.subjectFor(c, c.Reference)

	e.emitTypes(s, c.Type, skos.ClassConcept)
	e.emitIdentity(s, c.Identifier)
	for _, n := range c.Notation {
		e.emit(s, skos.Notation, literal(n))
	}
	e.emitLabels(s, &c.Labels)
	if c.Deprecated != nil {
		e.emit(s, skos.OWLDeprecated, typedLiteral(strconv.FormatBool(*c.Deprecated), skos.XSDBoolean))
	}
	e.emitDates(s, &c.Provenance)
	e.emitAgents(s, &c.Provenance)

	var schemes []*processed.ConceptScheme
	schemes = e.emitSchemeEdges(s, skos.InScheme, c.InScheme, schemes)
	schemes = e.emitSchemeEdges(s, skos.TopConceptOf, c.TopConceptOf, schemes)

	var neighbors []*processed.Concept
	neighbors = e.emitConceptEdges(s, skos.Broader, c.Broader, neighbors)
	neighbors = e.emitConceptEdges(s, skos.Narrower, c.Narrower, neighbors)
	neighbors = e.emitConceptEdges(s, skos.Related, c.Related, neighbors)
	neighbors = e.emitConceptEdges(s, jskos.Previous, c.Previous, neighbors)
	neighbors = e.emitConceptEdges(s, jskos.Next, c.Next, neighbors)
	neighbors = e.emitConceptEdges(s, jskos.Ancestors, c.Ancestors, neighbors)
	neighbors = e.emitConceptEdges(s, skos.Member, c.MemberSet, neighbors)
	neighbors = e.emitConceptEdges(s, skos.Member, c.MemberList, neighbors)
	neighbors = e.emitConceptEdges(s, skos.Member, c.MemberChoice, neighbors)

	for _, it := range c.ReplacedBy {
		if it == nil || it.Reference == nil {
			continue
		}
		e.emit(s, skos.DCIsReplacedBy, iriTerm(e.expand(*it.Reference)))
	}

	for _, scheme := range schemes {
		e.AddScheme(scheme)
	}
	for _, n := range neighbors {
		e.AddConcept(n)
	}
	for _, m := range c.Mappings {
		e.AddMapping(m)
	}
	for _, o := range c.Occurrences {
		e.AddOccurrence(o)
	}
	for _, a := range c.Annotations {
		e.AddAnnotation(a)
	}
}

// AddScheme adds a concept scheme and its top concepts.
func (e *Exporter) AddScheme(scheme *processed.ConceptScheme) {
	if scheme == nil || e.added[scheme] {
		return
	}
	e.added[scheme] = true
	s := e.subjectFor(scheme, scheme.Reference)

	e.emitTypes(s, scheme.Type, skos.ClassConceptScheme)
	e.emitIdentity(s, scheme.Identifier)
	for _, n := range scheme.Notation {
		e.emit(s, skos.Notation, literal(n))
	}
	e.emitLabels(s, &scheme.Labels)
	e.emitDates(s, &scheme.Provenance)
	e.emitAgents(s, &scheme.Provenance)

	for _, c := range scheme.TopConcepts {
		if c == nil {
			continue
		}
		e.emit(s, skos.HasTopConcept, e.subjectFor(c, c.Reference))
	}
	for _, c := range scheme.TopConcepts {
		e.AddConcept(c)
	}
}

// AddMapping adds a mapping node plus the direct cross-scheme triples
// its justification implies: one link from every subject concept to
// every object concept.
func (e *Exporter) AddMapping(m *processed.Mapping) {
	if m == nil || e.added[m] {
		return
	}
	e.added[m] = true
	s := e.subjectFor(m, m.Reference)

	e.emitTypes(s, m.Type, jskos.ClassMapping)
	if m.MappingRelevance != nil {
		e.emit(s, jskos.MappingRelevance,
			typedLiteral(strconv.FormatFloat(*m.MappingRelevance, 'f', -1, 64), skos.XSDDecimal))
	}

	from := bundleConcepts(m.From)
	to := bundleConcepts(m.To)
	relation := skos.MappingRelation
	if m.Justification != nil {
		relation = e.expand(*m.Justification)
	}
	for _, f := range from {
		for _, t := range to {
			e.emit(e.subjectFor(f, f.Reference), relation, e.subjectFor(t, t.Reference))
		}
	}

	if m.FromScheme != nil {
		e.AddScheme(m.FromScheme)
	}
	if m.ToScheme != nil {
		e.AddScheme(m.ToScheme)
	}
	for _, c := range from {
		e.AddConcept(c)
	}
	for _, c := range to {
		e.AddConcept(c)
	}
}

// AddOccurrence adds an occurrence node with its counts.
func (e *Exporter) AddOccurrence(o *processed.Occurrence) {
	if o == nil || e.added[o] {
		return
	}
	e.added[o] = true
	s := e.subjectFor(o, o.Reference)

	e.emitTypes(s, o.Type, jskos.ClassOccurrence)
	var members []*processed.Concept
	members = e.emitConceptEdges(s, skos.Member, o.MemberSet, members)
	members = e.emitConceptEdges(s, skos.Member, o.MemberList, members)
	members = e.emitConceptEdges(s, skos.Member, o.MemberChoice, members)
	if o.Count != nil {
		e.emit(s, jskos.Count, typedLiteral(strconv.Itoa(*o.Count), skos.XSDInteger))
	}
	if o.Frequency != nil {
		e.emit(s, jskos.Frequency,
			typedLiteral(strconv.FormatFloat(*o.Frequency, 'f', -1, 64), skos.XSDDecimal))
	}
	if o.Database != nil && o.Database.Reference != nil {
		e.emit(s, skos.DCSource, iriTerm(e.expand(*o.Database.Reference)))
	}
	if o.URL != "" {
		e.emit(s, skos.RDFSSeeAlso, iriTerm(o.URL))
	}

	for _, c := range members {
		e.AddConcept(c)
	}
}

// AddAnnotation adds an annotation node and follows nested targets.
func (e *Exporter) AddAnnotation(a *processed.Annotation) {
	if a == nil || e.added[a] {
		return
	}
	e.added[a] = true
	s := e.subjectFor(a, refOrNil(a.Reference))

	e.emit(s, skos.RDFType, iriTerm(skos.ClassAnnotation))
	if a.Target == nil {
		return
	}
	switch {
	case a.Target.Reference != nil:
		e.emit(s, skos.OAHasTarget, iriTerm(e.expand(*a.Target.Reference)))
	case a.Target.Resource != nil:
		e.emit(s, skos.OAHasTarget, e.subjectFor(a.Target.Resource, a.Target.Resource.Reference))
	case a.Target.Annotation != nil:
		nested := a.Target.Annotation
		e.emit(s, skos.OAHasTarget, e.subjectFor(nested, refOrNil(nested.Reference)))
		e.AddAnnotation(nested)
	}
}

func refOrNil(ref curie.Reference) *curie.Reference {
	if ref.IsZero() {
		return nil
	}
	return &ref
}

func bundleConcepts(b *processed.ConceptBundle) []*processed.Concept {
	if b == nil {
		return nil
	}
	var out []*processed.Concept
	for _, set := range []processed.ConceptSet{b.MemberSet, b.MemberList, b.MemberChoice} {
		for _, c := range set {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// Shared emission helpers. Null placeholders in sets carry no statement
// and are skipped.

func (e *Exporter) emitTypes(s term, types []curie.Reference, fallback string) {
	if len(types) == 0 {
		e.emit(s, skos.RDFType, iriTerm(fallback))
		return
	}
	for _, ref := range types {
		e.emit(s, skos.RDFType, iriTerm(e.expand(ref)))
	}
}

func (e *Exporter) emitIdentity(s term, identifiers []curie.Reference) {
	for _, ref := range identifiers {
		e.emit(s, skos.DCIdentifier, iriTerm(e.expand(ref)))
	}
}

func (e *Exporter) emitLangMap(s term, predicate string, labels model.LanguageMap) {
	for _, lang := range sortedLangs(labels) {
		e.emit(s, predicate, langLiteral(labels[lang], lang))
	}
}

func (e *Exporter) emitLangMapList(s term, predicate string, labels model.LanguageMapList) {
	for _, lang := range sortedLangs(labels) {
		for _, value := range labels[lang] {
			e.emit(s, predicate, langLiteral(value, lang))
		}
	}
}

// sortedLangs fixes language map iteration order so output is stable.
func sortedLangs[M ~map[string]V, V any](m M) []string {
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (e *Exporter) emitLabels(s term, l *processed.Labels) {
	e.emitLangMap(s, skos.PrefLabel, l.PrefLabel)
	e.emitLangMapList(s, skos.AltLabel, l.AltLabel)
	e.emitLangMapList(s, skos.HiddenLabel, l.HiddenLabel)
	e.emitLangMapList(s, skos.Definition, l.Definition)
	e.emitLangMapList(s, skos.ScopeNote, l.ScopeNote)
	e.emitLangMapList(s, skos.Example, l.Example)
	e.emitLangMapList(s, skos.HistoryNote, l.HistoryNote)
	e.emitLangMapList(s, skos.EditorialNote, l.EditorialNote)
	e.emitLangMapList(s, skos.ChangeNote, l.ChangeNote)
	e.emitLangMapList(s, skos.Note, l.Note)
}

func (e *Exporter) emitDates(s term, p *processed.Provenance) {
	if p.Created != "" {
		e.emit(s, skos.DCCreated, typedLiteral(string(p.Created), dateDatatype(p.Created)))
	}
	if p.Issued != "" {
		e.emit(s, skos.DCIssued, typedLiteral(string(p.Issued), dateDatatype(p.Issued)))
	}
	if p.Modified != "" {
		e.emit(s, skos.DCModified, typedLiteral(string(p.Modified), dateDatatype(p.Modified)))
	}
}

func (e *Exporter) emitAgents(s term, p *processed.Provenance) {
	pairs := []struct {
		predicate string
		set       processed.Set
	}{
		{skos.DCCreator, p.Creator},
		{skos.DCContributor, p.Contributor},
		{skos.DCPublisher, p.Publisher},
		{skos.DCSource, p.Source},
		{skos.DCIsPartOf, p.PartOf},
	}
	for _, pair := range pairs {
		for _, r := range pair.set {
			if r == nil {
				continue
			}
			e.emit(s, pair.predicate, e.subjectFor(r, r.Reference))
		}
	}
}

func (e *Exporter) emitConceptEdges(s term, predicate string, set processed.ConceptSet, acc []*processed.Concept) []*processed.Concept {
	for _, c := range set {
		if c == nil {
			continue
		}
		e.emit(s, predicate, e.subjectFor(c, c.Reference))
		acc = append(acc, c)
	}
	return acc
}

func (e *Exporter) emitSchemeEdges(s term, predicate string, schemes []*processed.ConceptScheme, acc []*processed.ConceptScheme) []*processed.ConceptScheme {
	for _, scheme := range schemes {
		if scheme == nil {
			continue
		}
		e.emit(s, predicate, e.subjectFor(scheme, scheme.Reference))
		acc = append(acc, scheme)
	}
	return acc
}

func isAbsoluteIRI(s string) bool {
	i := strings.Index(s, "://")
	return i > 0 && !strings.ContainsAny(s[:i], " \t")
}

// Export serializes everything added so far.
func (e *Exporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *Exporter) toNTriples() string {
	var sb strings.Builder
	for _, st := range e.stmts {
		sb.WriteString(st.subject.ntriples())
		sb.WriteString(" <")
		sb.WriteString(st.predicate)
		sb.WriteString("> ")
		sb.WriteString(st.object.ntriples())
		sb.WriteString(" .\n")
	}
	return sb.String()
}

func (e *Exporter) toTurtle() string {
	used := make(map[string]bool)
	record := func(prefix string) { used[prefix] = true }

	// Group statements by subject, keeping first-appearance order.
	order := make([]term, 0)
	grouped := make(map[term][]statement)
	for _, st := range e.stmts {
		if _, ok := grouped[st.subject]; !ok {
			order = append(order, st.subject)
		}
		grouped[st.subject] = append(grouped[st.subject], st)
	}

	var body strings.Builder
	for _, subject := range order {
		stmts := grouped[subject]
		body.WriteString(subject.turtle(e.display, record))
		body.WriteString("\n")
		for i, st := range stmts {
			body.WriteString("    ")
			body.WriteString(turtleIRI(st.predicate, e.display, record))
			body.WriteString(" ")
			body.WriteString(st.object.turtle(e.display, record))
			if i < len(stmts)-1 {
				body.WriteString(" ;\n")
			} else {
				body.WriteString(" .\n")
			}
		}
		body.WriteString("\n")
	}

	prefixes := make([]string, 0, len(used))
	for prefix := range used {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	var sb strings.Builder
	for _, prefix := range prefixes {
		if namespace, ok := e.display.Namespace(prefix); ok {
			sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, namespace))
		}
	}
	if len(prefixes) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(body.String())
	return sb.String()
}
