package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
)

// ConceptRecord is the stored form of a processed concept: scalar
// attributes plus edges flattened to neighbor CURIEs, so records stay
// acyclic no matter what shape the concept graph has.
type ConceptRecord struct {
	CURIE      string                `json:"curie"`
	URI        string                `json:"uri,omitempty"`
	Notation   []string              `json:"notation,omitempty"`
	PrefLabel  model.LanguageMap     `json:"pref_label,omitempty"`
	AltLabel   model.LanguageMapList `json:"alt_label,omitempty"`
	Deprecated *bool                 `json:"deprecated,omitempty"`

	Broader      []string `json:"broader,omitempty"`
	Narrower     []string `json:"narrower,omitempty"`
	Related      []string `json:"related,omitempty"`
	InScheme     []string `json:"in_scheme,omitempty"`
	TopConceptOf []string `json:"top_concept_of,omitempty"`

	Document  string    `json:"document,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordConcept flattens a processed concept into its stored form.
// Concepts without a reference have no key and yield nil. Anonymous
// neighbors and null placeholders produce no edge entry.
func RecordConcept(c *processed.Concept, documentID string) *ConceptRecord {
	if c == nil || c.Reference == nil {
		return nil
	}
	rec := &ConceptRecord{
		CURIE:     c.Reference.String(),
		Notation:  append([]string(nil), c.Notation...),
		PrefLabel: copyLangMap(c.PrefLabel),
		AltLabel:  copyLangMapList(c.AltLabel),
		Document:  documentID,
	}
	if c.Deprecated != nil {
		deprecated := *c.Deprecated
		rec.Deprecated = &deprecated
	}
	rec.Broader = edgeCURIEs(c.Broader)
	rec.Narrower = edgeCURIEs(c.Narrower)
	rec.Related = edgeCURIEs(c.Related)
	rec.InScheme = schemeCURIEs(c.InScheme)
	rec.TopConceptOf = schemeCURIEs(c.TopConceptOf)
	return rec
}

// RecordKOS flattens every addressable concept reachable from the
// document into stored records.
func RecordKOS(doc *processed.KOS, documentID string) []*ConceptRecord {
	if doc == nil {
		return nil
	}
	var out []*ConceptRecord
	doc.EachConcept(func(c *processed.Concept) {
		if rec := RecordConcept(c, documentID); rec != nil {
			out = append(out, rec)
		}
	})
	return out
}

func edgeCURIEs(set processed.ConceptSet) []string {
	var out []string
	for _, c := range set {
		if c == nil || c.Reference == nil {
			continue
		}
		out = append(out, c.Reference.String())
	}
	return out
}

func schemeCURIEs(schemes []*processed.ConceptScheme) []string {
	var out []string
	for _, s := range schemes {
		if s == nil || s.Reference == nil {
			continue
		}
		out = append(out, s.Reference.String())
	}
	return out
}

func copyLangMap(m model.LanguageMap) model.LanguageMap {
	if len(m) == 0 {
		return nil
	}
	out := make(model.LanguageMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyLangMapList(m model.LanguageMapList) model.LanguageMapList {
	if len(m) == 0 {
		return nil
	}
	out := make(model.LanguageMapList, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ConceptStore provides concept record storage backed by NATS KV.
type ConceptStore struct {
	kv jetstream.KeyValue
}

// NewConceptStore creates a ConceptStore with the given JetStream
// context, creating the bucket if it doesn't exist.
func NewConceptStore(ctx context.Context, js jetstream.JetStream) (*ConceptStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketConcepts, "Processed JSKOS concept records")
	if err != nil {
		return nil, fmt.Errorf("create concepts bucket: %w", err)
	}
	return &ConceptStore{kv: kv}, nil
}

// Put stores a record under its sanitized CURIE key.
func (s *ConceptStore) Put(ctx context.Context, rec *ConceptRecord) error {
	if rec == nil || rec.CURIE == "" {
		return fmt.Errorf("concept record needs a curie")
	}
	rec.UpdatedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal concept record: %w", err)
	}
	if _, err := s.kv.Put(ctx, KeyFor(rec.CURIE), data); err != nil {
		return fmt.Errorf("store concept record: %w", err)
	}
	return nil
}

// Get retrieves the record stored for a CURIE.
func (s *ConceptStore) Get(ctx context.Context, curieStr string) (*ConceptRecord, error) {
	entry, err := s.kv.Get(ctx, KeyFor(curieStr))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get concept record: %w", err)
	}

	var rec ConceptRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal concept record: %w", err)
	}
	return &rec, nil
}

// Delete removes the record stored for a CURIE.
func (s *ConceptStore) Delete(ctx context.Context, curieStr string) error {
	if err := s.kv.Delete(ctx, KeyFor(curieStr)); err != nil {
		return fmt.Errorf("delete concept record: %w", err)
	}
	return nil
}

// Keys lists every stored concept key.
func (s *ConceptStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list concept keys: %w", err)
	}
	return keys, nil
}
