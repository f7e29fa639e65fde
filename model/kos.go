package model

// KOS is the document root wrapping a knowledge organization system.
// The four scalar fields are required.
type KOS struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       LanguageMap `json:"title"`
	Description LanguageMap `json:"description"`

	HasTopConcept []*Concept `json:"hasTopConcept,omitempty"`
}
