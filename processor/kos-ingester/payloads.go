package kosingester

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "kos",
		Category:    "document",
		Version:     "v1",
		Description: "Validated raw JSKOS document entering the pipeline",
		Factory:     func() any { return &DocumentPayload{} },
	})
	if err != nil {
		panic("failed to register DocumentPayload: " + err.Error())
	}
}

// DocumentType is the message type for raw document payloads.
var DocumentType = message.Type{Domain: "kos", Category: "document", Version: "v1"}

// IngestRequest asks the ingester to read one document. Requests travel
// as plain JSON on the ingest subject.
type IngestRequest struct {
	// Location is a filesystem path or an http(s) URL.
	Location string `json:"location"`

	// RequestID correlates the request with log output. A fresh UUID is
	// assigned when empty.
	RequestID string `json:"request_id,omitempty"`
}

// DocumentPayload carries a validated raw document into the pipeline.
type DocumentPayload struct {
	// DocumentID is the document URI, taken from the document's id field.
	DocumentID string `json:"document_id"`

	// Location is where the document was read from.
	Location string `json:"location,omitempty"`

	// ContentHash is the BLAKE3 hash of the document JSON.
	ContentHash string `json:"content_hash,omitempty"`

	// Document is the raw document JSON.
	Document json.RawMessage `json:"document"`
}

// Schema returns the message type for the Payload interface.
func (p *DocumentPayload) Schema() message.Type { return DocumentType }

// Validate validates the payload for the Payload interface.
func (p *DocumentPayload) Validate() error {
	if p.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if len(p.Document) == 0 {
		return errors.New("document body is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *DocumentPayload) MarshalJSON() ([]byte, error) {
	type Alias DocumentPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *DocumentPayload) UnmarshalJSON(data []byte) error {
	type Alias DocumentPayload
	return json.Unmarshal(data, (*Alias)(p))
}
