package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rlgridviz/pkg/snapshot"
)

func chartSnapshot(episodes int) *snapshot.Snapshot {
	history := make([]float64, episodes)
	for i := range history {
		history[i] = -45 + float64(i)*30/float64(episodes)
	}
	var evals []snapshot.EvalPoint
	for ep := 50; ep <= episodes; ep += 50 {
		evals = append(evals, snapshot.EvalPoint{
			Episode:   ep,
			AvgReturn: history[ep-1] + 2,
		})
	}
	return &snapshot.Snapshot{
		Grid: snapshot.Grid{
			H: 3, W: 5,
			Start: snapshot.Cell{Row: 2, Col: 0},
			Goal:  snapshot.Cell{Row: 2, Col: 4},
		},
		Episode:       episodes,
		RewardHistory: history,
		EvalHistory:   evals,
	}
}

func TestLearningCurvePNG(t *testing.T) {
	gen := NewGenerator()
	filename := filepath.Join(t.TempDir(), "curve.png")

	if err := gen.LearningCurvePNG(chartSnapshot(500), filename); err != nil {
		t.Fatalf("Failed to generate PNG chart: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("Chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Chart file is empty")
	}
}

func TestLearningCurvePNGLongHistory(t *testing.T) {
	// 3000 episodes exercise both smoothing and downsampling.
	gen := NewGenerator()
	filename := filepath.Join(t.TempDir(), "long.png")

	if err := gen.LearningCurvePNG(chartSnapshot(3000), filename); err != nil {
		t.Fatalf("Failed to generate PNG for a long run: %v", err)
	}
	if info, err := os.Stat(filename); err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty chart file, err=%v", err)
	}
}

func TestLearningCurveHTML(t *testing.T) {
	gen := NewGenerator()
	filename := filepath.Join(t.TempDir(), "curve.html")

	if err := gen.LearningCurveHTML(chartSnapshot(500), filename); err != nil {
		t.Fatalf("Failed to generate HTML chart: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Chart file missing: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "echarts") {
		t.Error("Expected an echarts document")
	}
	if !strings.Contains(content, "Learning Curve") {
		t.Error("Expected the chart title")
	}
}

func TestChartsNeedTwoPoints(t *testing.T) {
	gen := NewGenerator()
	dir := t.TempDir()

	short := &snapshot.Snapshot{RewardHistory: []float64{-50}}

	err := gen.LearningCurvePNG(short, filepath.Join(dir, "short.png"))
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("Expected ErrNotEnoughData for PNG, got %v", err)
	}

	err = gen.LearningCurveHTML(short, filepath.Join(dir, "short.html"))
	if !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("Expected ErrNotEnoughData for HTML, got %v", err)
	}
}

func TestRenderForSnapshotNames(t *testing.T) {
	gen := NewGenerator()
	dir := t.TempDir()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	gen.RenderForSnapshot(chartSnapshot(200), "Learning Curve", false)
	if _, err := os.Stat("learning_curve.png"); err != nil {
		t.Errorf("Expected learning_curve.png: %v", err)
	}

	gen.RenderForSnapshot(chartSnapshot(200), "Learning Curve", true)
	if _, err := os.Stat("learning_curve.html"); err != nil {
		t.Errorf("Expected learning_curve.html: %v", err)
	}
}
