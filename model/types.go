package model

import "regexp"

// LanguageCode is a BCP 47 language code keying a language map.
type LanguageCode = string

// LanguageMap maps language codes to one label per language.
type LanguageMap map[LanguageCode]string

// LanguageMapList maps language codes to any number of values per
// language.
type LanguageMapList map[LanguageCode][]string

// Set is a JSKOS set: an ordered list whose elements are either a
// nested resource or an explicit null. Null elements are meaningful
// placeholders and survive decoding and encoding as nil entries.
type Set []*Resource

// ConceptSet is a JSKOS set of concepts. Concept edges use this shape,
// so shared nodes and cycles in a concept graph stay representable.
type ConceptSet []*Concept

// Date is an ISO 8601 calendar date. The vocabulary allows reduced
// precision, so "2001", "2001-04", and "2001-04-09" are all valid.
type Date string

var dateSyntax = regexp.MustCompile(`^-?\d{4}(-\d{2}(-\d{2})?)?$`)

// Valid reports whether the date matches the reduced-precision syntax.
func (d Date) Valid() bool {
	return dateSyntax.MatchString(string(d))
}

// Rank qualifies a statement's standing among its siblings.
type Rank string

// Allowed rank values.
const (
	RankPreferred  Rank = "preferred"
	RankNormal     Rank = "normal"
	RankDeprecated Rank = "deprecated"
)

// IsValid reports whether the rank is one of the allowed values.
func (r Rank) IsValid() bool {
	switch r {
	case RankPreferred, RankNormal, RankDeprecated:
		return true
	}
	return false
}
