package source

import "fmt"

// RetrievalError reports a document that could not be fetched.
// StatusCode is zero for filesystem reads and for network failures
// that produced no HTTP response.
type RetrievalError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieve %s: unexpected status %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("retrieve %s: %v", e.Location, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
