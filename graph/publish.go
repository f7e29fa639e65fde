// Package graph publishes processed concepts and documents as entities
// to the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/jskos/processed"
)

// IngestSubject is the platform subject for graph entity ingestion.
const IngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the wire format for graph ingestion. Matches
// the format consumed by the platform graph ingester.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishConcept publishes one concept entity to the knowledge graph.
// A nil client skips publishing so the pipeline degrades gracefully
// without NATS. Concepts without a reference have no entity ID and are
// skipped the same way.
func PublishConcept(ctx context.Context, nc *natsclient.Client, c *processed.Concept, documentID string) error {
	if nc == nil || c == nil || c.Reference == nil {
		return nil
	}

	msg := EntityIngestMessage{
		ID:        ConceptEntityID(*c.Reference),
		Triples:   ConceptTriples(c, documentID),
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal concept entity: %w", err)
	}
	if err := nc.PublishToStream(ctx, IngestSubject, data); err != nil {
		return fmt.Errorf("publish concept entity: %w", err)
	}
	return nil
}

// PublishKOS publishes every concept reachable from a processed
// document. Traversal follows the hierarchy edge sets and is safe on
// cyclic graphs. The first publish failure aborts.
func PublishKOS(ctx context.Context, nc *natsclient.Client, doc *processed.KOS, documentID string) error {
	if nc == nil || doc == nil {
		return nil
	}
	for _, c := range collectConcepts(doc) {
		if err := PublishConcept(ctx, nc, c, documentID); err != nil {
			return err
		}
	}
	return nil
}

// PublishDocument publishes the entity describing an ingested document.
func PublishDocument(ctx context.Context, nc *natsclient.Client, documentID, location, hash string, concepts int) error {
	if nc == nil || documentID == "" {
		return nil
	}

	msg := EntityIngestMessage{
		ID:        DocumentEntityID(documentID),
		Triples:   DocumentTriples(documentID, location, hash, concepts, time.Now()),
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal document entity: %w", err)
	}
	if err := nc.PublishToStream(ctx, IngestSubject, data); err != nil {
		return fmt.Errorf("publish document entity: %w", err)
	}
	return nil
}

// collectConcepts gathers the addressable concepts reachable from the
// document's top concepts. Anonymous concepts are traversed but carry
// no entity of their own.
func collectConcepts(doc *processed.KOS) []*processed.Concept {
	var out []*processed.Concept
	doc.EachConcept(func(c *processed.Concept) {
		if c.Reference != nil {
			out = append(out, c)
		}
	})
	return out
}
