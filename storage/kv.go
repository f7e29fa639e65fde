// Package storage persists processed concepts and ingested documents
// in NATS KV.
package storage

import (
	"context"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
)

// Bucket names for each record type.
const (
	BucketConcepts  = "JSKOS_CONCEPTS"
	BucketDocuments = "JSKOS_DOCUMENTS"
)

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name, description string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: description,
		History:     5, // Keep last 5 revisions
	})
}

// KeyFor maps a compact reference onto a KV-safe key. Colons become
// dots, characters outside the key alphabet become underscores, and
// empty dot-separated tokens are squeezed out.
func KeyFor(curieStr string) string {
	var b strings.Builder
	b.Grow(len(curieStr))
	for _, r := range curieStr {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '=':
			b.WriteRune(r)
		case r == ':', r == '.':
			b.WriteByte('.')
		default:
			b.WriteByte('_')
		}
	}
	key := strings.Trim(b.String(), ".")
	for strings.Contains(key, "..") {
		key = strings.ReplaceAll(key, "..", ".")
	}
	if key == "" {
		return "_"
	}
	return key
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
