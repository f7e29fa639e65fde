// Package catalog maintains a local SQLite index of processed concepts
// for offline lookup and search.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/storage"
)

// ErrNotFound is returned when no concept is indexed under a CURIE.
var ErrNotFound = errors.New("concept not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS concepts (
	curie      TEXT PRIMARY KEY,
	scheme     TEXT,
	pref_label TEXT,
	notation   TEXT,
	deprecated INTEGER NOT NULL DEFAULT 0,
	document   TEXT,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS concepts_label ON concepts(pref_label);
`

// Catalog is a SQLite-backed concept index.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Init creates the schema if it doesn't exist.
func (c *Catalog) Init(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init catalog schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Upsert indexes one concept record, replacing any previous row for the
// same CURIE.
func (c *Catalog) Upsert(ctx context.Context, rec *storage.ConceptRecord) error {
	if rec == nil || rec.CURIE == "" {
		return fmt.Errorf("concept record needs a curie")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal concept record: %w", err)
	}

	deprecated := 0
	if rec.Deprecated != nil && *rec.Deprecated {
		deprecated = 1
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO concepts (curie, scheme, pref_label, notation, deprecated, document, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(curie) DO UPDATE SET
			scheme     = excluded.scheme,
			pref_label = excluded.pref_label,
			notation   = excluded.notation,
			deprecated = excluded.deprecated,
			document   = excluded.document,
			data       = excluded.data`,
		rec.CURIE, firstOf(rec.InScheme), displayLabel(rec), firstOf(rec.Notation),
		deprecated, rec.Document, string(data))
	if err != nil {
		return fmt.Errorf("upsert concept %s: %w", rec.CURIE, err)
	}
	return nil
}

// UpsertKOS indexes every addressable concept reachable from a
// processed document and returns how many rows were written.
func (c *Catalog) UpsertKOS(ctx context.Context, doc *processed.KOS, documentID string) (int, error) {
	recs := storage.RecordKOS(doc, documentID)
	for _, rec := range recs {
		if err := c.Upsert(ctx, rec); err != nil {
			return 0, err
		}
	}
	return len(recs), nil
}

// Lookup returns the record indexed under a CURIE.
func (c *Catalog) Lookup(ctx context.Context, curieStr string) (*storage.ConceptRecord, error) {
	var data string
	err := c.db.QueryRowContext(ctx,
		"SELECT data FROM concepts WHERE curie = ?", curieStr).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup concept %s: %w", curieStr, err)
	}

	var rec storage.ConceptRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal concept %s: %w", curieStr, err)
	}
	return &rec, nil
}

// Hit is one search result row.
type Hit struct {
	CURIE     string `json:"curie"`
	PrefLabel string `json:"pref_label,omitempty"`
	Notation  string `json:"notation,omitempty"`
	Scheme    string `json:"scheme,omitempty"`
	Document  string `json:"document,omitempty"`
}

// Search finds concepts whose label, notation, or CURIE contains the
// substring, case-insensitively for ASCII. Results come back in CURIE
// order, capped at limit (default 20).
func (c *Catalog) Search(ctx context.Context, substring string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + escapeLike(substring) + "%"

	rows, err := c.db.QueryContext(ctx, `
		SELECT curie, pref_label, notation, scheme, document FROM concepts
		WHERE pref_label LIKE ? ESCAPE '\'
		   OR notation LIKE ? ESCAPE '\'
		   OR curie LIKE ? ESCAPE '\'
		ORDER BY curie LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search concepts: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.CURIE, &h.PrefLabel, &h.Notation, &h.Scheme, &h.Document); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search concepts: %w", err)
	}
	return hits, nil
}

// Stats summarizes the index contents.
type Stats struct {
	Concepts   int `json:"concepts"`
	Schemes    int `json:"schemes"`
	Documents  int `json:"documents"`
	Deprecated int `json:"deprecated"`
}

// Stats counts the indexed concepts, distinct schemes and documents,
// and deprecated concepts.
func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT NULLIF(scheme, '')),
		       COUNT(DISTINCT NULLIF(document, '')),
		       COALESCE(SUM(deprecated), 0)
		FROM concepts`).Scan(&s.Concepts, &s.Schemes, &s.Documents, &s.Deprecated)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	return &s, nil
}

// displayLabel picks the label stored in the indexed column: English
// when present, otherwise the first language in sorted order.
func displayLabel(rec *storage.ConceptRecord) string {
	if label, ok := rec.PrefLabel["en"]; ok {
		return label
	}
	langs := make([]string, 0, len(rec.PrefLabel))
	for lang := range rec.PrefLabel {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	if len(langs) == 0 {
		return ""
	}
	return rec.PrefLabel[langs[0]]
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
