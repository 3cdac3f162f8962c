// Package config parses and validates the command-line configuration.
package config

import (
	"flag"
	"fmt"
	"time"
)

// Config holds the tunable parameters for the visualization pipeline
// and the training service client
type Config struct {
	ServerURL    string        // base URL of the training service
	Window       int           // rolling average window in episodes
	MaxPoints    int           // downsample cap for plotted points
	MaxPathSteps int           // step cap for the greedy rollout
	Episodes     int           // episodes per training request
	Alpha        float64       // learning rate passed to the service
	EvalEvery    int           // greedy evaluation interval in episodes
	EvalRuns     int           // rollouts averaged per evaluation
	Rounds       int           // training rounds in watch mode
	Debounce     time.Duration // delay between watch-mode rounds
	Timeout      time.Duration // per-request timeout

	Run RunConfig
}

// RunConfig holds runtime options for a single invocation
type RunConfig struct {
	Scenario     string // demo scenario name
	EnableCharts bool   // write chart files
	HTMLCharts   bool   // interactive HTML instead of PNG
	ChartName    string // base name for chart files
	Seed         int64  // seed for synthetic scenarios
	ShowHelp     bool
}

// Default returns a configuration with sensible defaults. The pipeline
// constants mirror the chart contract; the training parameters mirror
// the service's own defaults.
func Default() Config {
	return Config{
		ServerURL:    "http://localhost:8000",
		Window:       50,
		MaxPoints:    600,
		MaxPathSteps: 30,
		Episodes:     50,
		Alpha:        0.1,
		EvalEvery:    50,
		EvalRuns:     20,
		Rounds:       10,
		Debounce:     time.Millisecond * 250,
		Timeout:      time.Second * 30,
		Run: RunConfig{
			Scenario:     "converging",
			EnableCharts: false,
			HTMLCharts:   false,
			ChartName:    "learning_curve",
			Seed:         1,
			ShowHelp:     false,
		},
	}
}

// Parser handles command-line flag parsing
type Parser struct {
	config  *Config
	flagSet *flag.FlagSet
}

// NewParser creates a new configuration parser
func NewParser() *Parser {
	config := Default()
	return &Parser{
		config:  &config,
		flagSet: flag.NewFlagSet("gridviz", flag.ExitOnError),
	}
}

// RegisterFlags registers all command-line flags
func (p *Parser) RegisterFlags() {
	c := p.config

	// Service connection flags
	p.flagSet.StringVar(&c.ServerURL, "server-url", c.ServerURL, "Base URL of the training service")
	p.flagSet.DurationVar(&c.Timeout, "timeout", c.Timeout, "Per-request timeout")

	// Pipeline flags
	p.flagSet.IntVar(&c.Window, "window", c.Window, "Rolling average window in episodes")
	p.flagSet.IntVar(&c.MaxPoints, "max-points", c.MaxPoints, "Maximum plotted points after downsampling")
	p.flagSet.IntVar(&c.MaxPathSteps, "path-steps", c.MaxPathSteps, "Step cap for the greedy rollout")

	// Training flags
	p.flagSet.IntVar(&c.Episodes, "episodes", c.Episodes, "Episodes per training request (1-5000)")
	p.flagSet.Float64Var(&c.Alpha, "alpha", c.Alpha, "Learning rate passed to the service")
	p.flagSet.IntVar(&c.EvalEvery, "eval-every", c.EvalEvery, "Greedy evaluation interval in episodes")
	p.flagSet.IntVar(&c.EvalRuns, "eval-runs", c.EvalRuns, "Rollouts averaged per evaluation")
	p.flagSet.IntVar(&c.Rounds, "rounds", c.Rounds, "Training rounds in watch mode")
	p.flagSet.DurationVar(&c.Debounce, "debounce", c.Debounce, "Delay between watch-mode rounds")

	// Run flags
	p.flagSet.StringVar(&c.Run.Scenario, "scenario", c.Run.Scenario, "Demo scenario: converging, plateau, or noisy")
	p.flagSet.BoolVar(&c.Run.EnableCharts, "graph", c.Run.EnableCharts, "Generate chart files")
	p.flagSet.BoolVar(&c.Run.HTMLCharts, "html", c.Run.HTMLCharts, "Generate interactive HTML charts instead of PNG")
	p.flagSet.StringVar(&c.Run.ChartName, "chart-name", c.Run.ChartName, "Base name for chart files")
	p.flagSet.Int64Var(&c.Run.Seed, "seed", c.Run.Seed, "Seed for synthetic demo scenarios")
	p.flagSet.BoolVar(&c.Run.ShowHelp, "help", c.Run.ShowHelp, "Show detailed help")
}

// Parse parses command-line arguments and returns the configuration
func (p *Parser) Parse(args []string) (*Config, error) {
	p.RegisterFlags()

	if err := p.flagSet.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if p.config.Run.ShowHelp {
		p.ShowDetailedHelp()
		return p.config, nil
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return p.config, nil
}

// Validate validates the configuration parameters. Training parameter
// bounds mirror what the service accepts.
func (p *Parser) Validate() error {
	c := p.config

	if c.ServerURL == "" {
		return fmt.Errorf("server URL must not be empty")
	}

	if c.Window < 1 {
		return fmt.Errorf("window (%d) must be at least 1", c.Window)
	}

	if c.MaxPoints < 2 {
		return fmt.Errorf("max points (%d) must be at least 2", c.MaxPoints)
	}

	if c.MaxPathSteps < 1 {
		return fmt.Errorf("path steps (%d) must be at least 1", c.MaxPathSteps)
	}

	if c.Episodes < 1 || c.Episodes > 5000 {
		return fmt.Errorf("episodes (%d) must be between 1 and 5000", c.Episodes)
	}

	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha (%.3f) must be in (0, 1]", c.Alpha)
	}

	if c.EvalEvery < 1 {
		return fmt.Errorf("eval interval (%d) must be at least 1", c.EvalEvery)
	}

	if c.EvalRuns < 1 || c.EvalRuns > 500 {
		return fmt.Errorf("eval runs (%d) must be between 1 and 500", c.EvalRuns)
	}

	if c.Rounds < 1 {
		return fmt.Errorf("rounds (%d) must be at least 1", c.Rounds)
	}

	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative")
	}

	validScenarios := []string{"converging", "plateau", "noisy"}
	isValid := false
	for _, valid := range validScenarios {
		if c.Run.Scenario == valid {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("invalid scenario '%s', must be one of: %v", c.Run.Scenario, validScenarios)
	}

	return nil
}

// ShowDetailedHelp displays comprehensive help information
func (p *Parser) ShowDetailedHelp() {
	c := p.config

	fmt.Println("gridviz - Gridworld RL Training Visualization Client")
	fmt.Println("================================================================================")
	fmt.Println()

	fmt.Println("OVERVIEW:")
	fmt.Println("  gridviz consumes progress snapshots from a gridworld training service")
	fmt.Println("  and renders derived analytics: a smoothed learning curve and a greedy")
	fmt.Println("  policy rollout over the grid.")
	fmt.Println()

	fmt.Println("COMMANDS:")
	fmt.Println("  gridviz [flags]            # Fetch the current snapshot and report")
	fmt.Println("  gridviz train [flags]      # Run one training batch, then report")
	fmt.Println("  gridviz watch [flags]      # Run repeated training rounds")
	fmt.Println("  gridviz reset [flags]      # Reset the trainer, then report")
	fmt.Println("  gridviz demo [flags]       # Render a synthetic scenario offline")
	fmt.Println()

	fmt.Println("SERVICE CONNECTION:")
	fmt.Printf("  -server-url=%s   Training service base URL\n", c.ServerURL)
	fmt.Printf("  -timeout=%s                    Per-request timeout\n", c.Timeout)
	fmt.Println()

	fmt.Println("PIPELINE PARAMETERS:")
	fmt.Printf("  -window=%d       Rolling average window (episodes)\n", c.Window)
	fmt.Printf("  -max-points=%d  Downsample cap for plotted points\n", c.MaxPoints)
	fmt.Printf("  -path-steps=%d   Greedy rollout step cap\n", c.MaxPathSteps)
	fmt.Println()

	fmt.Println("TRAINING PARAMETERS:")
	fmt.Printf("  -episodes=%d     Episodes per training request (1-5000)\n", c.Episodes)
	fmt.Printf("  -alpha=%.1f      Learning rate\n", c.Alpha)
	fmt.Printf("  -eval-every=%d   Greedy evaluation interval\n", c.EvalEvery)
	fmt.Printf("  -eval-runs=%d    Rollouts per evaluation\n", c.EvalRuns)
	fmt.Printf("  -rounds=%d       Watch-mode training rounds\n", c.Rounds)
	fmt.Printf("  -debounce=%s  Delay between watch-mode rounds\n", c.Debounce)
	fmt.Println()

	fmt.Println("OUTPUT:")
	fmt.Println("  -graph           Generate chart files")
	fmt.Println("  -html            Interactive HTML charts instead of PNG")
	fmt.Printf("  -chart-name=%s  Base name for chart files\n", c.Run.ChartName)
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println("  gridviz train -episodes=500 -graph")
	fmt.Println("  gridviz watch -rounds=20 -episodes=100 -graph -html")
	fmt.Println("  gridviz demo -scenario=noisy -graph")
}
