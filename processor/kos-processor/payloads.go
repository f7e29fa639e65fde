package kosprocessor

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "kos",
		Category:    "processed",
		Version:     "v1",
		Description: "Successfully processed JSKOS document with its resolution context",
		Factory:     func() any { return &ProcessedPayload{} },
	})
	if err != nil {
		panic("failed to register ProcessedPayload: " + err.Error())
	}
}

// ProcessedType is the message type for processed document payloads.
var ProcessedType = message.Type{Domain: "kos", Category: "processed", Version: "v1"}

// ProcessedPayload records that a document was processed successfully.
// The in-memory processed form is graph-shaped and may contain cycles,
// so the wire carries the source document plus the resolution context;
// downstream stages re-derive the processed form, which is
// deterministic for a given document, prefix table, and mode.
type ProcessedPayload struct {
	// DocumentID is the document URI.
	DocumentID string `json:"document_id"`

	// Location is where the document was read from.
	Location string `json:"location,omitempty"`

	// ContentHash is the BLAKE3 hash of the document JSON.
	ContentHash string `json:"content_hash,omitempty"`

	// Document is the raw document JSON.
	Document json.RawMessage `json:"document"`

	// Prefixes is the full prefix table the document was resolved with.
	Prefixes map[string]string `json:"prefixes"`

	// Strict reports the processing mode used.
	Strict bool `json:"strict"`

	// Concepts is the number of addressable concepts in the document.
	Concepts int `json:"concepts"`
}

// Schema returns the message type for the Payload interface.
func (p *ProcessedPayload) Schema() message.Type { return ProcessedType }

// Validate validates the payload for the Payload interface.
func (p *ProcessedPayload) Validate() error {
	if p.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if len(p.Document) == 0 {
		return errors.New("document body is required")
	}
	if len(p.Prefixes) == 0 {
		return errors.New("prefix table is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *ProcessedPayload) MarshalJSON() ([]byte, error) {
	type Alias ProcessedPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProcessedPayload) UnmarshalJSON(data []byte) error {
	type Alias ProcessedPayload
	return json.Unmarshal(data, (*Alias)(p))
}
