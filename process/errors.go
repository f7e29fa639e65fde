package process

import "fmt"

// FieldError wraps a processing failure with the path of the raw field
// that caused it. Paths use dotted segments with list indexes and
// quoted dict keys, e.g. hasTopConcept[0].qualifiedRelations["http://x/p"].
type FieldError struct {
	// Path locates the failing field relative to the entity the call
	// started from.
	Path string
	// Value is the offending raw value, when there is one.
	Value string
	// Err is the underlying cause, typically a curie.UnresolvedURIError
	// or a TypeMismatchError.
	Err error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("process %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("process %s: %v (value %q)", e.Path, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// TypeMismatchError reports a value at a union site that matches no
// declared variant, such as an annotation without a usable target.
type TypeMismatchError struct {
	// Got describes the shape that was encountered.
	Got string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value matches no declared variant: %s", e.Got)
}
