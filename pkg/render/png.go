package render

import (
	"fmt"
	"os"

	gochart "github.com/wcharczuk/go-chart/v2"

	"rlgridviz/pkg/snapshot"
)

// LearningCurvePNG renders the smoothed learning curve to a PNG file,
// with the greedy evaluation series overlaid when available.
func (g *generator) LearningCurvePNG(snap *snapshot.Snapshot, filename string) error {
	points, result, err := g.curveSeries(snap)
	if err != nil {
		return err
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = float64(p.Episode)
		yValues[i] = p.Value
	}

	xTicks := make([]gochart.Tick, len(result.XTicks))
	for i, t := range result.XTicks {
		xTicks[i] = gochart.Tick{Value: t.Value, Label: t.Label}
	}
	yTicks := make([]gochart.Tick, 0, len(result.YTicks))
	// go-chart wants ticks in ascending order.
	for i := len(result.YTicks) - 1; i >= 0; i-- {
		t := result.YTicks[i]
		yTicks = append(yTicks, gochart.Tick{Value: t.Value, Label: t.Label})
	}

	geo := g.builder.Geometry()
	graph := gochart.Chart{
		Title:  fmt.Sprintf("Learning Curve (through episode %d)", len(snap.RewardHistory)),
		Width:  int(geo.Width) * 2,
		Height: int(geo.Height) * 2,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(geo.MarginTop),
				Left:   int(geo.MarginLeft),
				Right:  int(geo.MarginRight),
				Bottom: int(geo.MarginBottom),
			},
		},
		XAxis: gochart.XAxis{
			Name:  "Episode",
			Ticks: xTicks,
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(result.MaxEpisode)},
		},
		YAxis: gochart.YAxis{
			Name:  "Return",
			Ticks: yTicks,
			Range: &gochart.ContinuousRange{Min: geo.YMin, Max: geo.YMax},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Smoothed return",
				XValues: xValues,
				YValues: yValues,
				Style: gochart.Style{
					StrokeColor: gochart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	if evalX, evalY := evalSeries(snap); len(evalX) >= 2 {
		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    "Greedy eval",
			XValues: evalX,
			YValues: evalY,
			Style: gochart.Style{
				StrokeColor:     gochart.ColorGreen,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	graph.Elements = []gochart.Renderable{
		gochart.LegendThin(&graph),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(gochart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// evalSeries extracts the greedy evaluation history as x/y slices
func evalSeries(snap *snapshot.Snapshot) ([]float64, []float64) {
	if len(snap.EvalHistory) == 0 {
		return nil, nil
	}
	xs := make([]float64, len(snap.EvalHistory))
	ys := make([]float64, len(snap.EvalHistory))
	for i, e := range snap.EvalHistory {
		xs[i] = float64(e.Episode)
		ys[i] = e.AvgReturn
	}
	return xs, ys
}
