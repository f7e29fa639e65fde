package export

import (
	"strings"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/vocabulary/skos"
)

// term is one RDF term: an IRI, a blank node label, or a literal with
// an optional language tag or datatype.
type term struct {
	iri   string
	blank string
	text  string
	lang  string
	dtype string
}

func iriTerm(iri string) term     { return term{iri: iri} }
func blankTerm(label string) term { return term{blank: label} }
func literal(text string) term    { return term{text: text} }

func langLiteral(text, lang string) term {
	return term{text: text, lang: lang}
}

func typedLiteral(text, dtype string) term {
	return term{text: text, dtype: dtype}
}

func (t term) isIRI() bool   { return t.iri != "" }
func (t term) isBlank() bool { return t.blank != "" }

// statement is one subject/predicate/object triple awaiting rendering.
type statement struct {
	subject   term
	predicate string
	object    term
}

// ntriples renders a term in N-Triples form, with every IRI expanded.
func (t term) ntriples() string {
	switch {
	case t.isIRI():
		return "<" + t.iri + ">"
	case t.isBlank():
		return "_:" + t.blank
	case t.lang != "":
		return quoteLiteral(t.text) + "@" + t.lang
	case t.dtype != "":
		return quoteLiteral(t.text) + "^^<" + t.dtype + ">"
	default:
		return quoteLiteral(t.text)
	}
}

// turtle renders a term in Turtle form, compacting IRIs through the
// display converter where the result is a printable prefixed name. The
// used callback records each prefix a rendered name relies on.
func (t term) turtle(display *curie.Converter, used func(prefix string)) string {
	switch {
	case t.isIRI():
		return turtleIRI(t.iri, display, used)
	case t.isBlank():
		return "_:" + t.blank
	case t.lang != "":
		return quoteLiteral(t.text) + "@" + t.lang
	case t.dtype != "":
		return quoteLiteral(t.text) + "^^" + turtleIRI(t.dtype, display, used)
	default:
		return quoteLiteral(t.text)
	}
}

func turtleIRI(iri string, display *curie.Converter, used func(prefix string)) string {
	if display != nil {
		if ref, err := display.Resolve(iri, false); err == nil && !ref.IsOpaque() && printableLocal(ref.Identifier) {
			used(ref.Prefix)
			return ref.String()
		}
	}
	return "<" + iri + ">"
}

// printableLocal reports whether a local part can appear in a prefixed
// name without escaping. The check is deliberately conservative; local
// parts with slashes, hashes, or other punctuation fall back to bracket
// form.
func printableLocal(local string) bool {
	if local == "" || local[0] == '-' {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// quoteLiteral escapes and quotes a literal for Turtle and N-Triples.
func quoteLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}

// dateDatatype picks the XSD datatype matching a date's precision.
func dateDatatype(d model.Date) string {
	s := strings.TrimPrefix(string(d), "-")
	switch len(s) {
	case 4:
		return skos.XSDGYear
	case 7:
		return skos.XSDGYearMonth
	default:
		return skos.XSDDate
	}
}
