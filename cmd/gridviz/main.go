package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"rlgridviz/pkg/chart"
	"rlgridviz/pkg/config"
	"rlgridviz/pkg/policy"
	"rlgridviz/pkg/render"
	"rlgridviz/pkg/report"
	"rlgridviz/pkg/scenarios"
	"rlgridviz/pkg/snapshot"
	"rlgridviz/pkg/trainer"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "train":
			handleTrain(args[1:])
			return
		case "reset":
			handleReset(args[1:])
			return
		case "watch":
			handleWatch(args[1:])
			return
		case "demo":
			handleDemo(args[1:])
			return
		}
	}

	handleState(args)
}

// parseConfig parses flags, exiting on error or after help output
func parseConfig(args []string) *config.Config {
	parser := config.NewParser()
	cfg, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Run.ShowHelp {
		os.Exit(0)
	}
	return cfg
}

func newClient(cfg *config.Config) *trainer.HTTPClient {
	client := trainer.NewHTTPClient(cfg.ServerURL)
	client.SetTimeout(cfg.Timeout)
	return client
}

func trainRequest(cfg *config.Config) trainer.TrainRequest {
	return trainer.TrainRequest{
		Episodes:  cfg.Episodes,
		Alpha:     cfg.Alpha,
		EvalEvery: cfg.EvalEvery,
		EvalRuns:  cfg.EvalRuns,
	}
}

// handleState fetches the current snapshot and reports it
func handleState(args []string) {
	cfg := parseConfig(args)
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout*2)
	defer cancel()

	snap, err := client.State(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch training state: %v\n", err)
		os.Exit(1)
	}

	show(cfg, snap)
}

// handleTrain runs one training batch and reports the result
func handleTrain(args []string) {
	cfg := parseConfig(args)
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout*2)
	defer cancel()

	fmt.Printf("Training %d episodes (alpha=%.3f)...\n", cfg.Episodes, cfg.Alpha)
	snap, err := client.Train(ctx, trainRequest(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Training request failed: %v\n", err)
		os.Exit(1)
	}

	show(cfg, snap)
}

// handleReset resets the trainer and reports the fresh state
func handleReset(args []string) {
	cfg := parseConfig(args)
	client := newClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout*2)
	defer cancel()

	snap, err := client.Reset(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reset request failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Trainer reset.")
	show(cfg, snap)
}

// handleWatch runs repeated training rounds with progress output
func handleWatch(args []string) {
	cfg := parseConfig(args)
	client := newClient(cfg)

	runner := trainer.NewRunner(client, trainer.RunnerOptions{
		Rounds:   cfg.Rounds,
		Debounce: cfg.Debounce,
		Request:  trainRequest(cfg),
	})

	// Every round may retry with backoff, so the deadline covers that.
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Rounds)*(cfg.Timeout+cfg.Debounce)*2)
	defer cancel()

	fmt.Printf("Watching: %d rounds of %d episodes each\n", cfg.Rounds, cfg.Episodes)

	var last *snapshot.Snapshot
	err := runner.Run(ctx, func(round int, snap *snapshot.Snapshot) {
		last = snap
		recent := report.Analyze(snap, policy.Walk{}, cfg.Window)
		fmt.Printf("Round %d/%d: episode %d, recent mean return %.2f, epsilon %.3f\n",
			round, cfg.Rounds, snap.Episode, recent.RecentMeanReturn, snap.Epsilon)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
		os.Exit(1)
	}

	if last != nil {
		show(cfg, last)
	}
}

// handleDemo renders a synthetic scenario without a live service
func handleDemo(args []string) {
	cfg := parseConfig(args)

	generator := scenarios.NewGenerator(cfg.Run.Seed)
	scenario, exists := generator.GetByName(cfg.Run.Scenario)
	if !exists {
		fmt.Fprintf(os.Stderr, "Unknown scenario: %s (valid: %v)\n",
			cfg.Run.Scenario, scenarios.GetValidScenarioNames())
		os.Exit(1)
	}

	fmt.Printf("=== Demo: %s ===\n", scenario.Name)
	fmt.Printf("%s\n", scenario.Description)

	show(cfg, scenario.Snapshot)
}

// chartBuilder builds the pipeline with the configured smoothing and
// downsampling parameters over the contract geometry
func chartBuilder(cfg *config.Config) *chart.Builder {
	return chart.NewBuilderWithOptions(cfg.Window, cfg.MaxPoints, chart.DefaultGeometry())
}

// show runs the derived analytics over a snapshot: greedy rollout,
// text report, policy grid, and optional chart files.
func show(cfg *config.Config, snap *snapshot.Snapshot) {
	walk := policy.Simulate(snap, policy.Options{MaxSteps: cfg.MaxPathSteps})

	result := report.Analyze(snap, walk, cfg.Window)
	report.PrintResult(result)

	fmt.Println()
	fmt.Println(report.RenderGrid(snap, walk.Path))

	if !cfg.Run.EnableCharts {
		return
	}

	builder := chartBuilder(cfg)
	generator := render.NewGeneratorWithBuilder(builder)
	generator.RenderForSnapshot(snap, cfg.Run.ChartName, cfg.Run.HTMLCharts)

	ext := ".png"
	if cfg.Run.HTMLCharts {
		ext = ".html"
	}
	fmt.Printf("Chart written to %s%s\n", cfg.Run.ChartName, ext)
}
