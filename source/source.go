// Package source retrieves JSKOS documents from the filesystem or over
// HTTP and validates them against the raw model. Locations ending in
// .xz are decompressed transparently. Remote retrieval is guarded
// against requests to private networks unless explicitly allowed.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/c360studio/jskos/model"
)

const (
	// DefaultTimeout bounds a single HTTP retrieval.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxSize caps HTTP response bodies at 32MB. Vocabulary
	// dumps larger than this should be fetched to disk first.
	DefaultMaxSize = 32 << 20
)

// Option adjusts retrieval behavior.
type Option func(*options)

type options struct {
	timeout      time.Duration
	maxSize      int64
	allowPrivate bool
	client       *http.Client
}

func newOptions(opts []Option) options {
	o := options{
		timeout: DefaultTimeout,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTimeout overrides the HTTP retrieval timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxSize overrides the HTTP response size cap in bytes.
func WithMaxSize(n int64) Option {
	return func(o *options) { o.maxSize = n }
}

// WithHTTPClient substitutes the HTTP client used for retrieval. The
// client's own timeout applies when set.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// AllowPrivateHosts disables the private network guard. Intended for
// deployments that legitimately serve vocabularies from internal hosts.
func AllowPrivateHosts() Option {
	return func(o *options) { o.allowPrivate = true }
}

// Read retrieves the document at location, decodes it, and validates
// it. Locations starting with http:// or https:// are fetched over the
// network; anything else is treated as a filesystem path.
func Read(ctx context.Context, location string, opts ...Option) (*model.KOS, error) {
	data, err := Fetch(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return doc, nil
}

// Fetch retrieves the raw bytes at location, decompressing .xz content.
// Failures are reported as *RetrievalError.
func Fetch(ctx context.Context, location string, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	if IsURL(location) {
		return fetchURL(ctx, location, o)
	}
	return readFile(location)
}

// Parse decodes data into the raw model and validates it. Both decode
// failures and structural violations surface a *model.ValidationError.
func Parse(data []byte) (*model.KOS, error) {
	var doc model.KOS
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w",
			&model.ValidationError{Field: "document", Message: err.Error()})
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// IsURL reports whether location names a network resource rather than
// a filesystem path.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RetrievalError{Location: path, Err: err}
	}
	if strings.HasSuffix(path, ".xz") {
		return decompress(path, data)
	}
	return data, nil
}

func fetchURL(ctx context.Context, rawURL string, o options) ([]byte, error) {
	if err := ValidateURL(rawURL, o.allowPrivate); err != nil {
		return nil, &RetrievalError{Location: rawURL, Err: err}
	}

	client := o.client
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &RetrievalError{Location: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Location: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RetrievalError{Location: rawURL, StatusCode: resp.StatusCode}
	}

	// Read one byte past the cap so oversized bodies are detected
	// rather than silently truncated.
	data, err := io.ReadAll(io.LimitReader(resp.Body, o.maxSize+1))
	if err != nil {
		return nil, &RetrievalError{Location: rawURL, Err: err}
	}
	if int64(len(data)) > o.maxSize {
		return nil, &RetrievalError{
			Location: rawURL,
			Err:      fmt.Errorf("response exceeds %d byte limit", o.maxSize),
		}
	}

	if urlPathHasSuffix(rawURL, ".xz") {
		return decompress(rawURL, data)
	}
	return data, nil
}

func decompress(location string, data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &RetrievalError{Location: location, Err: fmt.Errorf("xz: %w", err)}
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &RetrievalError{Location: location, Err: fmt.Errorf("xz: %w", err)}
	}
	return out, nil
}

// urlPathHasSuffix checks the path component only, so query strings do
// not defeat extension detection.
func urlPathHasSuffix(rawURL, suffix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return strings.HasSuffix(rawURL, suffix)
	}
	return strings.HasSuffix(parsed.Path, suffix)
}
