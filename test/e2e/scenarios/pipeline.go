package scenarios

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/jskos/catalog"
	"github.com/c360studio/jskos/curie"
	"github.com/c360studio/jskos/export"
	"github.com/c360studio/jskos/model"
	"github.com/c360studio/jskos/process"
	"github.com/c360studio/jskos/processed"
	"github.com/c360studio/jskos/source"
	"github.com/c360studio/jskos/test/e2e/config"
	"github.com/c360studio/jskos/vocabulary/jskos"
)

// pipelineConceptCount is the number of addressable concepts in the
// colors fixture. The null placeholder in the narrower set counts for
// nothing.
const pipelineConceptCount = 4

// PipelineScenario drives one vocabulary through the full document
// pipeline in process: read a fixture, resolve it strictly, serialize
// both RDF formats, and index the concepts into a throwaway catalog.
type PipelineScenario struct {
	name        string
	description string
	config      *config.Config

	workDir string
	cat     *catalog.Catalog
	raw     *model.KOS
	engine  *process.Engine
	doc     *processed.KOS
}

// NewPipelineScenario creates the full pipeline scenario.
func NewPipelineScenario(cfg *config.Config) *PipelineScenario {
	return &PipelineScenario{
		name:        "pipeline",
		description: "Read, process, export, and index a fixture vocabulary",
		config:      cfg,
	}
}

// Name returns the scenario name.
func (s *PipelineScenario) Name() string { return s.name }

// Description returns the scenario description.
func (s *PipelineScenario) Description() string { return s.description }

// Setup creates the scratch directory that receives the catalog.
func (s *PipelineScenario) Setup(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "jskos-e2e-pipeline-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	s.workDir = dir
	return nil
}

// Teardown closes the catalog and removes the scratch directory.
func (s *PipelineScenario) Teardown(ctx context.Context) error {
	if s.cat != nil {
		if err := s.cat.Close(); err != nil {
			return fmt.Errorf("close catalog: %w", err)
		}
		s.cat = nil
	}
	if s.workDir != "" {
		return os.RemoveAll(s.workDir)
	}
	return nil
}

// Execute runs the pipeline stages in order.
func (s *PipelineScenario) Execute(ctx context.Context) (*Result, error) {
	result := NewResult(s.name)
	defer result.Complete()

	stages := []Stage{
		{"read_document", s.stageRead},
		{"process_strict", s.stageProcess},
		{"export_turtle", s.stageExportTurtle},
		{"export_ntriples", s.stageExportNTriples},
		{"index_catalog", s.stageIndex},
		{"lookup_concept", s.stageLookup},
	}
	if RunStages(ctx, result, s.config.StageTimeout, stages) {
		result.Success = true
	}
	return result, nil
}

func (s *PipelineScenario) stageRead(ctx context.Context, result *Result) error {
	path := filepath.Join(s.config.FixturesDir, config.ColorsFixture)
	doc, err := source.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(doc.HasTopConcept) != 2 {
		return fmt.Errorf("fixture has %d top concepts, want 2", len(doc.HasTopConcept))
	}
	s.raw = doc
	result.SetDetail("document_id", doc.ID)
	return nil
}

func (s *PipelineScenario) stageProcess(ctx context.Context, result *Result) error {
	conv, err := curie.NewConverter(jskos.MergePrefixes(map[string]string{
		"ex": "http://example.org/",
	}))
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}
	s.engine = process.New(conv)

	doc, err := s.engine.KOS(s.raw)
	if err != nil {
		return fmt.Errorf("process document: %w", err)
	}
	s.doc = doc

	count := 0
	doc.EachConcept(func(c *processed.Concept) { count++ })
	if count != pipelineConceptCount {
		return fmt.Errorf("processed %d concepts, want %d", count, pipelineConceptCount)
	}
	result.SetMetric("concepts", count)
	return nil
}

func (s *PipelineScenario) stageExportTurtle(ctx context.Context, result *Result) error {
	exp := export.New(s.engine.Converter())
	exp.AddKOS(s.doc)

	out, err := exp.Export(export.FormatTurtle)
	if err != nil {
		return fmt.Errorf("export turtle: %w", err)
	}
	if !strings.Contains(out, "@prefix skos:") {
		return fmt.Errorf("turtle output lacks the skos prefix declaration")
	}
	if !strings.Contains(out, `skos:prefLabel "red"@en`) {
		return fmt.Errorf("turtle output lacks the red label")
	}
	result.SetMetric("statements", exp.Statements())
	return nil
}

func (s *PipelineScenario) stageExportNTriples(ctx context.Context, result *Result) error {
	exp := export.New(s.engine.Converter())
	exp.AddKOS(s.doc)

	out, err := exp.Export(export.FormatNTriples)
	if err != nil {
		return fmt.Errorf("export ntriples: %w", err)
	}
	want := `<http://example.org/colors/red> <http://www.w3.org/2004/02/skos/core#prefLabel> "red"@en .`
	if !strings.Contains(out, want) {
		return fmt.Errorf("ntriples output lacks the red label triple")
	}
	if strings.Contains(out, "@prefix") {
		return fmt.Errorf("ntriples output contains prefix declarations")
	}
	result.SetMetric("lines", strings.Count(out, "\n"))
	return nil
}

func (s *PipelineScenario) stageIndex(ctx context.Context, result *Result) error {
	cat, err := catalog.Open(filepath.Join(s.workDir, "catalog.db"))
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	s.cat = cat
	if err := cat.Init(ctx); err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	n, err := cat.UpsertKOS(ctx, s.doc, config.ColorsFixture)
	if err != nil {
		return fmt.Errorf("index document: %w", err)
	}
	if n != pipelineConceptCount {
		return fmt.Errorf("indexed %d concepts, want %d", n, pipelineConceptCount)
	}

	stats, err := cat.Stats(ctx)
	if err != nil {
		return fmt.Errorf("catalog stats: %w", err)
	}
	if stats.Concepts != pipelineConceptCount {
		return fmt.Errorf("catalog holds %d concepts, want %d", stats.Concepts, pipelineConceptCount)
	}
	if stats.Schemes != 1 {
		return fmt.Errorf("catalog holds %d schemes, want 1", stats.Schemes)
	}
	result.SetMetric("indexed", n)
	return nil
}

func (s *PipelineScenario) stageLookup(ctx context.Context, result *Result) error {
	rec, err := s.cat.Lookup(ctx, "ex:colors/red")
	if err != nil {
		return fmt.Errorf("lookup red: %w", err)
	}
	if rec.PrefLabel["en"] != "red" {
		return fmt.Errorf("red label = %q, want %q", rec.PrefLabel["en"], "red")
	}
	if len(rec.Notation) != 1 || rec.Notation[0] != "R" {
		return fmt.Errorf("red notation = %v, want [R]", rec.Notation)
	}
	if len(rec.InScheme) != 1 || rec.InScheme[0] != "ex:kos/colors" {
		return fmt.Errorf("red inScheme = %v, want [ex:kos/colors]", rec.InScheme)
	}

	hits, err := s.cat.Search(ctx, "blue", 10)
	if err != nil {
		return fmt.Errorf("search blue: %w", err)
	}
	if len(hits) != 1 || hits[0].CURIE != "ex:colors/blue" {
		return fmt.Errorf("search for blue returned %v, want ex:colors/blue", hits)
	}
	result.SetDetail("lookup_curie", rec.CURIE)
	return nil
}
