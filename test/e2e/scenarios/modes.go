package scenarios

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/source"
	"github.com/c360studio/jskos/test/e2e/config"
	"github.com/c360studio/jskos/vocabulary/jskos"
)

// ResolutionModesScenario exercises both resolution modes on a document
// whose URIs fall outside every registered namespace. Strict processing
// must abort with the offending URI, lenient processing must pass the
// URIs through opaquely, and registered URIs must round-trip between
// CURIE and URI form.
type ResolutionModesScenario struct {
	name        string
	description string
	config      *config.Config

	raw *model.KOS
}

// NewResolutionModesScenario creates the resolution modes scenario.
func NewResolutionModesScenario(cfg *config.Config) *ResolutionModesScenario {
	return &ResolutionModesScenario{
		name:        "resolution-modes",
		description: "Strict abort, lenient pass-through, and CURIE round-trips",
		config:      cfg,
	}
}

// Name returns the scenario name.
func (s *ResolutionModesScenario) Name() string { return s.name }

// Description returns the scenario description.
func (s *ResolutionModesScenario) Description() string { return s.description }

// Setup is a no-op; the scenario only reads fixtures.
func (s *ResolutionModesScenario) Setup(ctx context.Context) error { return nil }

// Teardown is a no-op.
func (s *ResolutionModesScenario) Teardown(ctx context.Context) error { return nil }

// Execute runs the resolution stages in order.
func (s *ResolutionModesScenario) Execute(ctx context.Context) (*Result, error) {
	result := NewResult(s.name)
	defer result.Complete()

	stages := []Stage{
		{"read_document", s.stageRead},
		{"strict_abort", s.stageStrictAbort},
		{"lenient_pass_through", s.stageLenient},
		{"curie_round_trip", s.stageRoundTrip},
	}
	if RunStages(ctx, result, s.config.StageTimeout, stages) {
		result.Success = true
	}
	return result, nil
}

func (s *ResolutionModesScenario) stageRead(ctx context.Context, result *Result) error {
	path := filepath.Join(s.config.FixturesDir, config.OpaqueFixture)
	doc, err := source.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	s.raw = doc
	result.SetDetail("document_id", doc.ID)
	return nil
}

func (s *ResolutionModesScenario) stageStrictAbort(ctx context.Context, result *Result) error {
	conv, err := curie.NewConverter(jskos.DefaultPrefixes())
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}
	eng := process.New(conv)

	_, err = eng.KOS(s.raw)
	if err == nil {
		return fmt.Errorf("strict processing accepted an unregistered URI")
	}
	var unresolved *curie.UnresolvedURIError
	if !errors.As(err, &unresolved) {
		return fmt.Errorf("strict failure is %T, want *curie.UnresolvedURIError", err)
	}
	if !strings.Contains(unresolved.URI, "unregistered.test") {
		return fmt.Errorf("strict failure names %q, want an unregistered.test URI", unresolved.URI)
	}
	result.SetDetail("strict_error", err.Error())
	return nil
}

func (s *ResolutionModesScenario) stageLenient(ctx context.Context, result *Result) error {
	conv, err := curie.NewConverter(jskos.DefaultPrefixes())
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}
	eng := process.New(conv, process.Lenient())

	doc, err := eng.KOS(s.raw)
	if err != nil {
		return fmt.Errorf("lenient processing: %w", err)
	}
	if len(doc.Concepts) != 1 {
		return fmt.Errorf("processed %d concepts, want 1", len(doc.Concepts))
	}

	ref := doc.Concepts[0].Reference
	if ref == nil || !ref.IsOpaque() {
		return fmt.Errorf("lenient reference %v is not opaque", ref)
	}
	if ref.String() != "https://unregistered.test/thing" {
		return fmt.Errorf("opaque reference = %q, want the original URI", ref.String())
	}

	exp := export.New(eng.Converter())
	exp.AddKOS(doc)
	out, err := exp.Export(export.FormatNTriples)
	if err != nil {
		return fmt.Errorf("export ntriples: %w", err)
	}
	if !strings.Contains(out, "<https://unregistered.test/thing>") {
		return fmt.Errorf("ntriples output lacks the opaque concept URI")
	}
	result.SetMetric("statements", exp.Statements())
	return nil
}

func (s *ResolutionModesScenario) stageRoundTrip(ctx context.Context, result *Result) error {
	conv, err := curie.NewConverter(jskos.MergePrefixes(map[string]string{
		"ex": "http://example.org/",
	}))
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}

	const uri = "http://example.org/colors/red"
	ref, err := conv.Resolve(uri, true)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", uri, err)
	}
	if ref.String() != "ex:colors/red" {
		return fmt.Errorf("resolved CURIE = %q, want ex:colors/red", ref.String())
	}

	back, err := conv.Expand(ref)
	if err != nil {
		return fmt.Errorf("expand %s: %w", ref.String(), err)
	}
	if back != uri {
		return fmt.Errorf("round trip produced %q, want %q", back, uri)
	}
	result.SetDetail("round_trip_curie", ref.String())
	return nil
}
