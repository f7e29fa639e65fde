package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "jskos",
		Category:    "kos_concept",
		Version:     "1.0.0",
		Description: "Concept entity payload for graph ingestion with triples",
		Factory:     func() any { return &ConceptPayload{} },
	})
	if err != nil {
		panic("failed to register ConceptPayload: " + err.Error())
	}
}

// ConceptType is the message type for concept entity payloads.
var ConceptType = message.Type{Domain: "jskos", Category: "kos_concept", Version: "1.0.0"}

// ConceptPayload implements message.Payload and graph.Graphable for
// concept entity ingestion.
type ConceptPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p *ConceptPayload) EntityID() string          { return p.EntityID_ }
func (p *ConceptPayload) Triples() []message.Triple { return p.TripleData }
func (p *ConceptPayload) Schema() message.Type      { return ConceptType }

func (p *ConceptPayload) Validate() error {
	if p.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	return nil
}

func (p *ConceptPayload) MarshalJSON() ([]byte, error) {
	type Alias ConceptPayload
	return json.Marshal((*Alias)(p))
}

func (p *ConceptPayload) UnmarshalJSON(data []byte) error {
	type Alias ConceptPayload
	return json.Unmarshal(data, (*Alias)(p))
}
