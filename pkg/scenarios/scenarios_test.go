package scenarios

import (
	"testing"

	"rlgridviz/pkg/policy"
	"rlgridviz/pkg/snapshot"
)

func TestGenerateAllScenarios(t *testing.T) {
	gen := NewGenerator(1)
	all := gen.GenerateAll()

	if len(all) != 3 {
		t.Fatalf("Expected 3 scenarios, got %d", len(all))
	}
	for _, name := range GetValidScenarioNames() {
		if _, ok := all[name]; !ok {
			t.Errorf("Missing scenario %q", name)
		}
	}
}

func TestScenarioSnapshotsAreValid(t *testing.T) {
	gen := NewGenerator(42)
	for name, scenario := range gen.GenerateAll() {
		if err := scenario.Snapshot.Validate(); err != nil {
			t.Errorf("Scenario %q produced an invalid snapshot: %v", name, err)
		}
	}
}

func TestScenarioHistoryLengths(t *testing.T) {
	tests := []struct {
		name     string
		episodes int
	}{
		{"converging", 1500},
		{"plateau", 800},
		{"noisy", 3000},
	}

	gen := NewGenerator(1)
	for _, tt := range tests {
		scenario, ok := gen.GetByName(tt.name)
		if !ok {
			t.Fatalf("Scenario %q not found", tt.name)
		}
		snap := scenario.Snapshot
		if len(snap.RewardHistory) != tt.episodes {
			t.Errorf("Scenario %q: expected %d reward entries, got %d",
				tt.name, tt.episodes, len(snap.RewardHistory))
		}
		if snap.Episode != tt.episodes {
			t.Errorf("Scenario %q: expected episode %d, got %d",
				tt.name, tt.episodes, snap.Episode)
		}
		if expected := tt.episodes / 50; len(snap.EvalHistory) != expected {
			t.Errorf("Scenario %q: expected %d eval points, got %d",
				tt.name, expected, len(snap.EvalHistory))
		}
	}
}

func TestScenarioReturnsWithinBand(t *testing.T) {
	gen := NewGenerator(7)
	for name, scenario := range gen.GenerateAll() {
		for i, v := range scenario.Snapshot.RewardHistory {
			if v < -50 || v > 10 {
				t.Fatalf("Scenario %q: return %f at episode %d outside [-50, 10]", name, v, i+1)
			}
		}
	}
}

func TestScenarioDeterminism(t *testing.T) {
	first, _ := NewGenerator(99).GetByName("noisy")
	second, _ := NewGenerator(99).GetByName("noisy")

	for i := range first.Snapshot.RewardHistory {
		if first.Snapshot.RewardHistory[i] != second.Snapshot.RewardHistory[i] {
			t.Fatalf("Same seed produced different histories at episode %d", i+1)
		}
	}

	other, _ := NewGenerator(100).GetByName("noisy")
	same := true
	for i := range first.Snapshot.RewardHistory {
		if first.Snapshot.RewardHistory[i] != other.Snapshot.RewardHistory[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical histories")
	}
}

func TestScenarioPolicyReachesGoal(t *testing.T) {
	gen := NewGenerator(1)
	scenario, _ := gen.GetByName("converging")

	walk := policy.Simulate(scenario.Snapshot, policy.Options{})
	if !walk.ReachedGoal() {
		t.Fatalf("Expected the demo policy to reach the goal, got %s", walk.Outcome)
	}
	// Start (2,0) up and over the wall block to (2,4): 8 moves.
	if len(walk.Path) != 9 {
		t.Errorf("Expected a 9-cell path, got %d", len(walk.Path))
	}
	if last := walk.Path[len(walk.Path)-1]; last != (snapshot.Cell{Row: 2, Col: 4}) {
		t.Errorf("Expected the path to end at the goal, ended at %s", last.Key())
	}
}

func TestGetByNameUnknown(t *testing.T) {
	gen := NewGenerator(1)
	if _, ok := gen.GetByName("divergent"); ok {
		t.Error("Expected lookup of an unknown scenario to fail")
	}
}

func TestEpsilonSchedule(t *testing.T) {
	tests := []struct {
		episode  int
		expected float64
	}{
		{0, 1.0},
		{500, 0.5},
		{1000, 0.05},
		{1500, 0.05},
	}

	for _, tt := range tests {
		if eps := epsilonSchedule(tt.episode); eps != tt.expected {
			t.Errorf("epsilonSchedule(%d) = %f, expected %f", tt.episode, eps, tt.expected)
		}
	}
}
