package rdfexport

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "kos",
		Category:    "export",
		Version:     "v1",
		Description: "Serialized RDF rendition of a processed JSKOS document",
		Factory:     func() any { return &ExportPayload{} },
	})
	if err != nil {
		panic("failed to register ExportPayload: " + err.Error())
	}
}

// ExportType is the message type for RDF export payloads.
var ExportType = message.Type{Domain: "kos", Category: "export", Version: "v1"}

// ExportPayload carries the serialized RDF for one document.
type ExportPayload struct {
	// DocumentID is the document URI.
	DocumentID string `json:"document_id"`

	// Format names the serialization, turtle or ntriples.
	Format string `json:"format"`

	// Content is the serialized RDF.
	Content string `json:"content"`

	// Statements is the number of triples serialized.
	Statements int `json:"statements"`
}

// Schema returns the message type for the Payload interface.
func (p *ExportPayload) Schema() message.Type { return ExportType }

// Validate validates the payload for the Payload interface.
func (p *ExportPayload) Validate() error {
	if p.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if p.Format == "" {
		return errors.New("format is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *ExportPayload) MarshalJSON() ([]byte, error) {
	type Alias ExportPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ExportPayload) UnmarshalJSON(data []byte) error {
	type Alias ExportPayload
	return json.Unmarshal(data, (*Alias)(p))
}
