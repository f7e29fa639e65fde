package graph

import (
	"fmt"
	"strings"

	"github.com/c360studio/jskos/curie"
)

// ConceptEntityID generates a consistent entity ID for a concept.
// Format: jskos.local.kos.<prefix>.concept.<slug>
// Opaque references fall under the reserved "uri" prefix segment.
func ConceptEntityID(ref curie.Reference) string {
	return entityID(ref, "concept")
}

// SchemeEntityID generates a consistent entity ID for a concept scheme.
// Format: jskos.local.kos.<prefix>.scheme.<slug>
func SchemeEntityID(ref curie.Reference) string {
	return entityID(ref, "scheme")
}

// DocumentEntityID generates a consistent entity ID for an ingested
// document. Format: jskos.local.kos.doc.document.<slug>
func DocumentEntityID(documentID string) string {
	return fmt.Sprintf("jskos.local.kos.doc.document.%s", sanitizeSegment(documentID))
}

func entityID(ref curie.Reference, kind string) string {
	prefix := ref.Prefix
	if ref.IsOpaque() {
		prefix = "uri"
	}
	return fmt.Sprintf("jskos.local.kos.%s.%s.%s",
		sanitizeSegment(prefix), kind, sanitizeSegment(ref.Identifier))
}

// sanitizeSegment lowercases a value and maps anything outside
// [a-z0-9_-] to '-' so identifiers survive as dotted ID segments.
func sanitizeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
