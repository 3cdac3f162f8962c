package chart

import (
	"math"
	"testing"
)

func TestBuildEmptyHistory(t *testing.T) {
	if result := NewBuilder().Build(nil); result != nil {
		t.Errorf("Expected nil result for empty history, got %+v", result)
	}
}

func TestBuildSinglePointHistory(t *testing.T) {
	// One reward cannot form a line.
	if result := NewBuilder().Build([]float64{-1}); result != nil {
		t.Errorf("Expected nil result for a single-episode history, got %+v", result)
	}
}

func TestBuildFlatLine(t *testing.T) {
	history := make([]float64, 100)

	result := NewBuilder().Build(history)
	if result == nil {
		t.Fatal("Expected a result for a 100-episode history")
	}
	if len(result.Points) != 100 {
		t.Fatalf("Expected 100 points below the downsample cap, got %d", len(result.Points))
	}

	// All-zero rewards smooth to zero everywhere, so the polyline is a
	// horizontal line at the zero position.
	zeroY := NewMapper(DefaultGeometry(), 100).MapY(0)
	for i, p := range result.Points {
		if math.Abs(p.Y-zeroY) > 1e-9 {
			t.Fatalf("Point %d: expected flat line at y=%f, got %f", i, zeroY, p.Y)
		}
		if i > 0 && p.X <= result.Points[i-1].X {
			t.Fatalf("Point %d: x coordinates not increasing", i)
		}
	}
}

func TestBuildLongHistoryDownsamples(t *testing.T) {
	history := make([]float64, 10000)
	for i := range history {
		history[i] = -50 + float64(i)*0.005
	}

	result := NewBuilder().Build(history)
	if result == nil {
		t.Fatal("Expected a result for a 10000-episode history")
	}
	if len(result.Points) != 600 {
		t.Fatalf("Expected exactly 600 downsampled points, got %d", len(result.Points))
	}
	if result.MaxEpisode != 10000 {
		t.Errorf("Expected episode span 10000, got %d", result.MaxEpisode)
	}

	lastTick := result.XTicks[len(result.XTicks)-1]
	if lastTick.Label != "10.0k" {
		t.Errorf("Expected final x tick label \"10.0k\", got %q", lastTick.Label)
	}
}

func TestBuildTicksPresent(t *testing.T) {
	history := make([]float64, 250)
	for i := range history {
		history[i] = float64(i%10) - 20
	}

	result := NewBuilder().Build(history)
	if result == nil {
		t.Fatal("Expected a result")
	}
	if len(result.YTicks) != 14 {
		t.Errorf("Expected 14 y ticks, got %d", len(result.YTicks))
	}
	if len(result.XTicks) != 6 {
		t.Errorf("Expected 6 x ticks, got %d", len(result.XTicks))
	}
}

func TestBuilderOptionsFallBackToDefaults(t *testing.T) {
	b := NewBuilderWithOptions(0, -1, DefaultGeometry())

	history := make([]float64, 1000)
	result := b.Build(history)
	if result == nil {
		t.Fatal("Expected a result")
	}
	if len(result.Points) != 600 {
		t.Errorf("Expected the default 600-point cap, got %d points", len(result.Points))
	}
}
