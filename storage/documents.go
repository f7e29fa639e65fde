package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DocumentRecord is the stored form of an ingested document: pipeline
// metadata plus the raw document bytes.
type DocumentRecord struct {
	ID          string          `json:"id"`
	Location    string          `json:"location,omitempty"`
	ContentHash string          `json:"content_hash,omitempty"`
	Document    json.RawMessage `json:"document,omitempty"`
	Concepts    int             `json:"concepts"`
	IngestedAt  time.Time       `json:"ingested_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DocumentStore provides document record storage backed by NATS KV.
type DocumentStore struct {
	kv jetstream.KeyValue
}

// NewDocumentStore creates a DocumentStore with the given JetStream
// context, creating the bucket if it doesn't exist.
func NewDocumentStore(ctx context.Context, js jetstream.JetStream) (*DocumentStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketDocuments, "Ingested JSKOS documents")
	if err != nil {
		return nil, fmt.Errorf("create documents bucket: %w", err)
	}
	return &DocumentStore{kv: kv}, nil
}

// Put stores a record under its sanitized document ID.
func (s *DocumentStore) Put(ctx context.Context, rec *DocumentRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("document record needs an id")
	}
	rec.UpdatedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal document record: %w", err)
	}
	if _, err := s.kv.Put(ctx, KeyFor(rec.ID), data); err != nil {
		return fmt.Errorf("store document record: %w", err)
	}
	return nil
}

// Get retrieves the record stored for a document ID.
func (s *DocumentStore) Get(ctx context.Context, id string) (*DocumentRecord, error) {
	entry, err := s.kv.Get(ctx, KeyFor(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document record: %w", err)
	}

	var rec DocumentRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal document record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record stored for a document ID.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, KeyFor(id)); err != nil {
		return fmt.Errorf("delete document record: %w", err)
	}
	return nil
}

// Keys lists every stored document key.
func (s *DocumentStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list document keys: %w", err)
	}
	return keys, nil
}
