// Package scenarios defines the e2e scenarios for the vocabulary
// pipeline. Each scenario drives real fixtures through reading, URI
// resolution, RDF serialization, and catalog indexing.
package scenarios

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Scenario is one self-contained end-to-end case.
type Scenario interface {
	// Name identifies the scenario for selection and reporting.
	Name() string

	// Description summarizes what the scenario covers.
	Description() string

	// Setup prepares scenario state before execution.
	Setup(ctx context.Context) error

	// Execute runs the scenario and reports the outcome.
	Execute(ctx context.Context) (*Result, error)

	// Teardown releases scenario state.
	Teardown(ctx context.Context) error
}

// Result is the outcome of one scenario run. Mutating methods are safe
// for concurrent use.
type Result struct {
	mu sync.Mutex

	ScenarioName string        `json:"scenario_name"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Duration     time.Duration `json:"duration"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Metrics holds counts and per-stage timings.
	Metrics map[string]any `json:"metrics,omitempty"`

	// Details holds scenario-specific output values.
	Details map[string]any `json:"details,omitempty"`

	// Warnings holds non-fatal issues such as teardown problems.
	Warnings []string `json:"warnings,omitempty"`

	// Stages records every executed stage in order.
	Stages []StageResult `json:"stages,omitempty"`
}

// StageResult records one executed stage.
type StageResult struct {
	Name     string        `json:"name"`
	Success  bool          `json:"success"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// NewResult starts a Result for the named scenario.
func NewResult(scenarioName string) *Result {
	return &Result{
		ScenarioName: scenarioName,
		StartTime:    time.Now(),
		Metrics:      make(map[string]any),
		Details:      make(map[string]any),
	}
}

// Complete stamps the end time and total duration.
func (r *Result) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Fail marks the result failed with a formatted error.
func (r *Result) Fail(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Success = false
	r.Error = fmt.Sprintf(format, args...)
}

// AddWarning records a non-fatal issue.
func (r *Result) AddWarning(warning string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, warning)
}

// SetMetric stores a metric value.
func (r *Result) SetMetric(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Metrics[name] = value
}

// SetDetail stores a detail value.
func (r *Result) SetDetail(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Details[name] = value
}

func (r *Result) addStage(s StageResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stages = append(r.Stages, s)
}

// Stage is one named step of a scenario.
type Stage struct {
	Name string
	Run  func(ctx context.Context, result *Result) error
}

// RunStages executes stages in order, each under its own timeout,
// recording a duration metric and a stage entry per stage. The first
// failure stops the run with the error on the result. The return value
// reports whether every stage passed.
func RunStages(ctx context.Context, result *Result, timeout time.Duration, stages []Stage) bool {
	for _, stage := range stages {
		start := time.Now()
		stageCtx, cancel := context.WithTimeout(ctx, timeout)
		err := stage.Run(stageCtx, result)
		cancel()

		duration := time.Since(start)
		result.SetMetric(stage.Name+"_duration_ms", duration.Milliseconds())

		entry := StageResult{Name: stage.Name, Success: err == nil, Duration: duration}
		if err != nil {
			entry.Error = err.Error()
			result.addStage(entry)
			result.Fail("stage %s failed: %v", stage.Name, err)
			return false
		}
		result.addStage(entry)
	}
	return true
}
