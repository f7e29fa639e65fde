// Package main provides the e2e scenario runner CLI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/jskos/test/e2e/config"
	"github.com/c360studio/jskos/test/e2e/scenarios"
)

const rule = "═══════════════════════════════════════════════════════════════"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// registry returns every scenario wired to the given configuration.
func registry(cfg *config.Config) []scenarios.Scenario {
	return []scenarios.Scenario{
		scenarios.NewPipelineScenario(cfg),
		scenarios.NewResolutionModesScenario(cfg),
	}
}

func rootCmd() *cobra.Command {
	var (
		fixturesDir   string
		outputJSON    bool
		timeout       time.Duration
		globalTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "e2e [scenario]",
		Short: "Run jskos e2e scenarios",
		Long: `Run end-to-end scenarios for the jskos vocabulary pipeline.

Scenarios run entirely in process against the fixture documents, so no
external services are required.

Examples:
  e2e                              # Run all scenarios
  e2e pipeline                     # Run a specific scenario
  e2e list                         # Show available scenarios
  e2e --json                       # Output results as JSON
  e2e --fixtures test/e2e/fixtures # Custom fixtures directory
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "all"
			if len(args) > 0 {
				name = args[0]
			}
			cfg := &config.Config{
				FixturesDir:  fixturesDir,
				StageTimeout: timeout,
			}
			return run(name, cfg, outputJSON, globalTimeout)
		},
	}

	cmd.Flags().StringVar(&fixturesDir, "fixtures", config.DefaultFixturesDir, "Fixtures directory")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output results as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultStageTimeout, "Per-stage timeout")
	cmd.Flags().DurationVar(&globalTimeout, "global-timeout", config.DefaultGlobalTimeout, "Global timeout for all scenarios")

	cmd.AddCommand(listCmd())

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available scenarios:")
			fmt.Println()
			for _, s := range registry(config.DefaultConfig()) {
				fmt.Printf("  %-17s %s\n", s.Name(), s.Description())
			}
			fmt.Println()
			fmt.Println("Use 'e2e all' to run every scenario.")
		},
	}
}

func run(name string, cfg *config.Config, outputJSON bool, globalTimeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), globalTimeout)
	defer cancel()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	toRun, err := selectScenarios(registry(cfg), name)
	if err != nil {
		return err
	}

	var results []*scenarios.Result
	allPassed := true
	for _, sc := range toRun {
		if ctx.Err() != nil {
			if !outputJSON {
				fmt.Println("\nScenario run interrupted!")
			}
			break
		}
		result := runScenario(ctx, sc, !outputJSON)
		results = append(results, result)
		if !result.Success {
			allPassed = false
		}
	}

	if outputJSON {
		printJSON(results)
	} else {
		printSummary(results)
	}

	if !allPassed {
		return fmt.Errorf("some scenarios failed")
	}
	return nil
}

func selectScenarios(all []scenarios.Scenario, name string) ([]scenarios.Scenario, error) {
	if name == "all" {
		return all, nil
	}
	for _, s := range all {
		if s.Name() == name {
			return []scenarios.Scenario{s}, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario: %s", name)
}

func runScenario(ctx context.Context, sc scenarios.Scenario, verbose bool) *scenarios.Result {
	logf := func(format string, args ...any) {
		if verbose {
			fmt.Printf(format, args...)
		}
	}

	logf("\n%s\nRunning: %s\nDescription: %s\n%s\n\n", rule, sc.Name(), sc.Description(), rule)

	logf("Setup... ")
	if err := sc.Setup(ctx); err != nil {
		logf("FAILED: %v\n", err)
		result := scenarios.NewResult(sc.Name())
		result.Fail("setup failed: %v", err)
		result.Complete()
		return result
	}
	logf("OK\n")

	logf("Execute... ")
	result, err := sc.Execute(ctx)
	switch {
	case err != nil:
		logf("ERROR: %v\n", err)
		result = scenarios.NewResult(sc.Name())
		result.Fail("execution error: %v", err)
		result.Complete()
	case result.Success:
		logf("PASSED\n")
	default:
		logf("FAILED: %s\n", result.Error)
	}

	logf("Teardown... ")
	if err := sc.Teardown(ctx); err != nil {
		result.AddWarning(fmt.Sprintf("teardown failed: %v", err))
		logf("WARNING: %v\n", err)
	} else {
		logf("OK\n")
	}

	if verbose {
		printStages(result)
	}
	return result
}

func printStages(result *scenarios.Result) {
	if len(result.Stages) == 0 {
		return
	}
	fmt.Println("\nStages:")
	for _, stage := range result.Stages {
		status := "✓"
		if !stage.Success {
			status = "✗"
		}
		fmt.Printf("  %s %s (%dms)\n", status, stage.Name, stage.Duration.Milliseconds())
		if stage.Error != "" {
			fmt.Printf("      Error: %s\n", stage.Error)
		}
	}
}

type report struct {
	Timestamp time.Time           `json:"timestamp"`
	Results   []*scenarios.Result `json:"results"`
	Summary   struct {
		Total  int `json:"total"`
		Passed int `json:"passed"`
		Failed int `json:"failed"`
	} `json:"summary"`
}

func printJSON(results []*scenarios.Result) {
	rep := report{Timestamp: time.Now(), Results: results}
	rep.Summary.Total = len(results)
	for _, r := range results {
		if r.Success {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling results: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printSummary(results []*scenarios.Result) {
	fmt.Println("\n" + rule)
	fmt.Println("                          SUMMARY")
	fmt.Println(rule)

	passed := 0
	for _, r := range results {
		status := "✓ PASSED"
		if r.Success {
			passed++
		} else {
			status = "✗ FAILED"
		}
		fmt.Printf("  %s  %s (%dms)\n", status, r.ScenarioName, r.Duration.Milliseconds())
		if !r.Success && r.Error != "" {
			fmt.Printf("           %s\n", truncate(r.Error, 80))
		}
	}

	fmt.Println(strings.Repeat("─", 65))
	fmt.Printf("  Total: %d | Passed: %d | Failed: %d\n", len(results), passed, len(results)-passed)
	fmt.Println(rule)

	if passed < len(results) {
		fmt.Println("\nSome scenarios failed. Run with --json for detailed output.")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
