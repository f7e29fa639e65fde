package process

import (
	"fmt"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/processed"
)

// Option configures an Engine.
type Option func(*Engine)

// Lenient keeps URIs outside every registered namespace as opaque
// references instead of aborting the call.
func Lenient() Option {
	return func(e *Engine) { e.strict = false }
}

// Engine transforms raw entities into their processed form against a
// fixed converter. Engines are strict by default: the first URI that no
// registered namespace covers aborts the whole call with a FieldError
// and no partial result is returned.
//
// An Engine is immutable after New and safe for concurrent use. Every
// call runs an isolated pass with its own memo tables, so shared nodes
// inside one call come out shared while separate calls never observe
// each other.
type Engine struct {
	conv   *curie.Converter
	strict bool
}

// New builds an engine over a converter.
func New(conv *curie.Converter, opts ...Option) *Engine {
	e := &Engine{conv: conv, strict: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strict reports whether unresolved URIs abort the call.
func (e *Engine) Strict() bool { return e.strict }

// Converter returns the converter the engine resolves against.
func (e *Engine) Converter() *curie.Converter { return e.conv }

func (e *Engine) pass() *pass { return newPass(e.conv, e.strict) }

// KOS processes a whole document. The Concepts slice of the result is
// never nil.
func (e *Engine) KOS(in *model.KOS) (*processed.KOS, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil document")
	}
	return e.pass().kos(in)
}

// Concept processes a concept and everything reachable from it. Cyclic
// and shared subgraphs are handled by memoizing on node identity.
func (e *Engine) Concept(in *model.Concept) (*processed.Concept, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil concept")
	}
	return e.pass().concept("", in)
}

// ConceptScheme processes a concept scheme.
func (e *Engine) ConceptScheme(in *model.ConceptScheme) (*processed.ConceptScheme, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil concept scheme")
	}
	return e.pass().scheme("", in)
}

// Mapping processes a mapping.
func (e *Engine) Mapping(in *model.Mapping) (*processed.Mapping, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil mapping")
	}
	return e.pass().mapping("", in)
}

// ConceptBundle processes a standalone concept bundle.
func (e *Engine) ConceptBundle(in *model.ConceptBundle) (*processed.ConceptBundle, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil concept bundle")
	}
	return e.pass().conceptBundle("", in)
}

// Occurrence processes an occurrence.
func (e *Engine) Occurrence(in *model.Occurrence) (*processed.Occurrence, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil occurrence")
	}
	return e.pass().occurrence("", in)
}

// Annotation processes an annotation, following nested targets.
func (e *Engine) Annotation(in *model.Annotation) (*processed.Annotation, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil annotation")
	}
	return e.pass().annotation("", in)
}

// Resource processes a bare resource.
func (e *Engine) Resource(in *model.Resource) (*processed.Resource, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil resource")
	}
	return e.pass().resource("", in)
}

// Item processes an item.
func (e *Engine) Item(in *model.Item) (*processed.Item, error) {
	if in == nil {
		return nil, fmt.Errorf("process: nil item")
	}
	return e.pass().item("", in)
}
