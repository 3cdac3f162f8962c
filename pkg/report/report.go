// Package report summarizes a training snapshot as text: progress
// statistics, the policy grid, and the greedy rollout overlay.
package report

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"rlgridviz/pkg/policy"
	"rlgridviz/pkg/snapshot"
)

// Result contains the derived statistics for one snapshot
type Result struct {
	Episode          int
	Epsilon          float64
	TotalEpisodes    int
	RecentMeanReturn float64
	BestReturn       float64
	WorstReturn      float64
	ReturnVolatility float64
	LatestEval       snapshot.EvalPoint
	HasEval          bool
	PathLength       int
	PathOutcome      policy.Outcome
}

// Analyze computes summary statistics over a snapshot and its greedy
// rollout. The recent mean covers the trailing window of returns.
func Analyze(snap *snapshot.Snapshot, walk policy.Walk, window int) Result {
	if window < 1 {
		window = 1
	}

	history := snap.RewardHistory
	recent := history
	if len(history) > window {
		recent = history[len(history)-window:]
	}

	result := Result{
		Episode:          snap.Episode,
		Epsilon:          snap.Epsilon,
		TotalEpisodes:    len(history),
		RecentMeanReturn: mean(recent),
		BestReturn:       maxFloat64(history),
		WorstReturn:      minFloat64(history),
		ReturnVolatility: stdDev(recent),
		PathLength:       len(walk.Path),
		PathOutcome:      walk.Outcome,
	}

	if eval, ok := snap.LatestEval(); ok {
		result.LatestEval = eval
		result.HasEval = true
	}
	return result
}

// PrintResult prints a formatted summary to stdout
func PrintResult(r Result) {
	fmt.Printf("\n" + strings.Repeat("=", 60) + "\n")
	fmt.Printf("TRAINING PROGRESS\n")
	fmt.Printf(strings.Repeat("=", 60) + "\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Episodes trained\t%d\n", r.Episode)
	fmt.Fprintf(w, "Epsilon\t%.3f\n", r.Epsilon)
	fmt.Fprintf(w, "Recent mean return\t%.2f\n", r.RecentMeanReturn)
	fmt.Fprintf(w, "Return range\t%.2f to %.2f\n", r.WorstReturn, r.BestReturn)
	fmt.Fprintf(w, "Return volatility\t%.2f (std dev)\n", r.ReturnVolatility)
	if r.HasEval {
		fmt.Fprintf(w, "Latest greedy eval\t%.2f (episode %d)\n", r.LatestEval.AvgReturn, r.LatestEval.Episode)
	}
	fmt.Fprintf(w, "Greedy rollout\t%d cells, ended: %s\n", r.PathLength, r.PathOutcome)
	w.Flush()
}

// RenderGrid draws the grid as ASCII: S start, G goal, ## walls,
// policy arrows elsewhere, with the greedy path marked by *.
func RenderGrid(snap *snapshot.Snapshot, path []snapshot.Cell) string {
	onPath := make(map[snapshot.Cell]bool, len(path))
	for _, cell := range path {
		onPath[cell] = true
	}

	var b strings.Builder
	for row := 0; row < snap.Grid.H; row++ {
		for col := 0; col < snap.Grid.W; col++ {
			cell := snapshot.Cell{Row: row, Col: col}
			b.WriteString(renderCell(snap, cell, onPath[cell]))
			if col < snap.Grid.W-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(snap *snapshot.Snapshot, cell snapshot.Cell, onPath bool) string {
	grid := &snap.Grid
	switch {
	case grid.IsWall(cell):
		return "##"
	case cell == grid.Start:
		return "S "
	case cell == grid.Goal:
		return "G "
	case onPath:
		if action, ok := snap.Policy[cell]; ok {
			return "*" + action.Arrow()
		}
		return "* "
	default:
		if action, ok := snap.Policy[cell]; ok {
			return action.Arrow() + " "
		}
		return ". "
	}
}

// Statistics helpers

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	m := mean(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func minFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
