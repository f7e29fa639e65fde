package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Annotation is a Web Annotation about a resource, a plain URI, or
// another annotation.
type Annotation struct {
	// Context is the annotation's own JSON-LD context URI. Unlike the
	// document-level context it is part of the annotation data model,
	// so it is kept.
	Context string `json:"@context"`

	Type string `json:"type"`

	// ID is the annotation's URI.
	ID string `json:"id"`

	Target *AnnotationTarget `json:"target"`
}

// AnnotationTarget is the object of an annotation. Exactly one of the
// three fields is set: a bare URI string, an embedded resource, or a
// nested annotation.
type AnnotationTarget struct {
	URI        string
	Resource   *Resource
	Annotation *Annotation
}

// UnmarshalJSON discriminates the target by shape. The matchers run in
// order: a JSON string is a URI; an object carrying a "target" key is a
// nested annotation; any other object is an embedded resource.
func (t *AnnotationTarget) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("annotation target must not be null")
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &t.URI)
	case '{':
		var probe struct {
			Target json.RawMessage `json:"target"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if probe.Target != nil {
			t.Annotation = new(Annotation)
			return json.Unmarshal(trimmed, t.Annotation)
		}
		t.Resource = new(Resource)
		return json.Unmarshal(trimmed, t.Resource)
	default:
		return fmt.Errorf("annotation target must be a string or an object")
	}
}

// MarshalJSON writes back whichever variant is populated.
func (t AnnotationTarget) MarshalJSON() ([]byte, error) {
	switch {
	case t.Annotation != nil:
		return json.Marshal(t.Annotation)
	case t.Resource != nil:
		return json.Marshal(t.Resource)
	case t.URI != "":
		return json.Marshal(t.URI)
	}
	return nil, fmt.Errorf("empty annotation target")
}
