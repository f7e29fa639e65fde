package model

import "fmt"

// ValidationError reports raw JSON that does not conform to the
// vocabulary's structural rules. Field is the path of the offending
// value inside the document.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
