package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"rlgridviz/pkg/snapshot"
)

// LearningCurveHTML renders the smoothed learning curve as an
// interactive HTML chart with the greedy evaluation series overlaid.
func (g *generator) LearningCurveHTML(snap *snapshot.Snapshot, filename string) error {
	// echarts lays out its own axes, so only the plottable series is
	// needed here; the pipeline result just gates degenerate input.
	points, _, err := g.curveSeries(snap)
	if err != nil {
		return err
	}

	geo := g.builder.Geometry()
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", int(geo.Width)*2),
			Height: fmt.Sprintf("%dpx", int(geo.Height)*2),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Learning Curve",
			Subtitle: fmt.Sprintf("Smoothed training returns through episode %d", len(snap.RewardHistory)),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Episode",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Return",
			Type: "value",
			Min:  geo.YMin,
			Max:  geo.YMax,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "10%",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Title: "Save as Image",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show:  opts.Bool(true),
					Title: map[string]string{"zoom": "Zoom", "back": "Back"},
				},
			},
		}),
	)

	curveData := make([]opts.LineData, len(points))
	for i, p := range points {
		curveData[i] = opts.LineData{Value: []interface{}{float64(p.Episode), geo.ClampY(p.Value)}}
	}

	line.AddSeries("Smoothed return", curveData,
		charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(true),
		}),
	)

	if evalX, evalY := evalSeries(snap); len(evalX) >= 2 {
		evalData := make([]opts.LineData, len(evalX))
		for i := range evalX {
			evalData[i] = opts.LineData{Value: []interface{}{evalX[i], geo.ClampY(evalY[i])}}
		}
		line.AddSeries("Greedy eval", evalData,
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(true),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Type: "dashed",
			}),
		)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
