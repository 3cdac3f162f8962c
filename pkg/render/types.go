// Package render writes chart files for a snapshot's learning curve,
// driven by the geometry and ticks the chart pipeline computes.
package render

import (
	"errors"
	"fmt"
	"strings"

	"rlgridviz/pkg/chart"
	"rlgridviz/pkg/snapshot"
)

// ErrNotEnoughData is returned when a reward history is too short to
// form a line
var ErrNotEnoughData = errors.New("not enough data points to draw a chart")

// Generator defines the interface for producing chart files
type Generator interface {
	LearningCurvePNG(snap *snapshot.Snapshot, filename string) error
	LearningCurveHTML(snap *snapshot.Snapshot, filename string) error
	RenderForSnapshot(snap *snapshot.Snapshot, baseName string, html bool)
}

// generator implements Generator on top of a chart builder
type generator struct {
	builder *chart.Builder
}

// NewGenerator creates a chart file generator with default pipeline
// settings
func NewGenerator() Generator {
	return &generator{builder: chart.NewBuilder()}
}

// NewGeneratorWithBuilder creates a generator over a custom pipeline
func NewGeneratorWithBuilder(builder *chart.Builder) Generator {
	return &generator{builder: builder}
}

// RenderForSnapshot writes a chart file named after the given base,
// warning instead of failing so a render problem never aborts a run.
func (g *generator) RenderForSnapshot(snap *snapshot.Snapshot, baseName string, html bool) {
	base := strings.ToLower(strings.ReplaceAll(baseName, " ", "_"))

	if html {
		filename := base + ".html"
		if err := g.LearningCurveHTML(snap, filename); err != nil {
			fmt.Printf("Warning: failed to generate chart %s: %v\n", filename, err)
		}
		return
	}

	filename := base + ".png"
	if err := g.LearningCurvePNG(snap, filename); err != nil {
		fmt.Printf("Warning: failed to generate chart %s: %v\n", filename, err)
	}
}

// curveSeries runs the pipeline far enough to get the plottable series
// in data space plus the tick-bearing result, or ErrNotEnoughData.
func (g *generator) curveSeries(snap *snapshot.Snapshot) ([]chart.SeriesPoint, *chart.Result, error) {
	result := g.builder.Build(snap.RewardHistory)
	if result == nil {
		return nil, nil, ErrNotEnoughData
	}
	points := g.builder.Reduce(g.builder.Smooth(snap.RewardHistory))
	return points, result, nil
}
