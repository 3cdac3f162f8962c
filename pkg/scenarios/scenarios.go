// Package scenarios fabricates realistic training snapshots so the
// full pipeline can run offline, without a live training service.
package scenarios

import (
	"math"

	"rlgridviz/pkg/snapshot"
)

// Scenario is a named synthetic snapshot
type Scenario struct {
	Name        string
	Description string
	Snapshot    *snapshot.Snapshot
}

// Generator builds deterministic synthetic scenarios from a seed
type Generator struct {
	seed int64
}

// NewGenerator creates a scenario generator
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// GenerateAll generates all available scenarios
func (g *Generator) GenerateAll() map[string]Scenario {
	return map[string]Scenario{
		"converging": g.generateConverging(),
		"plateau":    g.generatePlateau(),
		"noisy":      g.generateNoisy(),
	}
}

// GetByName returns a specific scenario by name
func (g *Generator) GetByName(name string) (Scenario, bool) {
	all := g.GenerateAll()
	scenario, exists := all[name]
	return scenario, exists
}

// GetValidScenarioNames returns all valid scenario names
func GetValidScenarioNames() []string {
	return []string{"converging", "plateau", "noisy"}
}

// generateConverging models a run that learns the task: returns climb
// from heavily penalized wandering toward the optimal return.
func (g *Generator) generateConverging() Scenario {
	history := g.rewardCurve(1500, -48, 3, 400, 12, 1.5)
	return Scenario{
		Name:        "Converging Run",
		Description: "Returns rise from random wandering to near-optimal over 1500 episodes",
		Snapshot:    g.buildSnapshot(1500, history),
	}
}

// generatePlateau models a run stuck at a suboptimal policy
func (g *Generator) generatePlateau() Scenario {
	history := g.rewardCurve(800, -45, -20, 150, 8, 4)
	return Scenario{
		Name:        "Plateau Run",
		Description: "Returns stall around a suboptimal level after early improvement",
		Snapshot:    g.buildSnapshot(800, history),
	}
}

// generateNoisy models a long, high-variance run; its length also
// exercises downsampling, since 3000 episodes exceed the point cap.
func (g *Generator) generateNoisy() Scenario {
	history := g.rewardCurve(3000, -45, -5, 900, 15, 10)
	return Scenario{
		Name:        "Noisy Run",
		Description: "Slow, high-variance improvement over 3000 episodes",
		Snapshot:    g.buildSnapshot(3000, history),
	}
}

// rewardCurve builds an episode-return series that decays
// exponentially from `from` toward `to` with time constant tau, with
// gaussian noise shrinking from startNoise to endNoise. Returns are
// clamped to the environment's feasible band.
func (g *Generator) rewardCurve(episodes int, from, to, tau, startNoise, endNoise float64) []float64 {
	noise := NewGaussianNoise(g.seed, 1)

	history := make([]float64, episodes)
	for i := range history {
		progress := 1 - math.Exp(-float64(i)/tau)
		mean := from + (to-from)*progress
		stdDev := startNoise + (endNoise-startNoise)*progress

		v := mean + noise.Perturb(0)*stdDev
		// A 50-step episode with -1 step reward and +10 goal reward
		// cannot leave this band.
		if v < -50 {
			v = -50
		}
		if v > 10 {
			v = 10
		}
		history[i] = v
	}
	return history
}

// buildSnapshot assembles a full snapshot around a reward history: the
// service's 3x5 gridworld with a solved policy and matching Q values.
func (g *Generator) buildSnapshot(episode int, history []float64) *snapshot.Snapshot {
	grid := demoGrid()
	policy := demoPolicy()

	q := make(map[snapshot.Cell]snapshot.ActionValues, len(policy))
	for cell, action := range policy {
		if action == snapshot.ActionGoal {
			continue
		}
		q[cell] = actionValuesFor(grid, policy, cell, action)
	}

	return &snapshot.Snapshot{
		Grid:          grid,
		Episode:       episode,
		Epsilon:       epsilonSchedule(episode),
		Q:             q,
		Policy:        policy,
		RewardHistory: history,
		EvalHistory:   evalSeries(history),
	}
}

// demoGrid mirrors the training service's environment: 3x5 with two
// walls between start and goal.
func demoGrid() snapshot.Grid {
	return snapshot.Grid{
		H:     3,
		W:     5,
		Start: snapshot.Cell{Row: 2, Col: 0},
		Goal:  snapshot.Cell{Row: 2, Col: 4},
		Walls: map[snapshot.Cell]bool{
			{Row: 1, Col: 2}: true,
			{Row: 2, Col: 2}: true,
		},
	}
}

// demoPolicy routes every free cell over the wall block to the goal
func demoPolicy() map[snapshot.Cell]snapshot.Action {
	return map[snapshot.Cell]snapshot.Action{
		{Row: 0, Col: 0}: snapshot.ActionRight,
		{Row: 0, Col: 1}: snapshot.ActionRight,
		{Row: 0, Col: 2}: snapshot.ActionRight,
		{Row: 0, Col: 3}: snapshot.ActionDown,
		{Row: 0, Col: 4}: snapshot.ActionDown,
		{Row: 1, Col: 0}: snapshot.ActionUp,
		{Row: 1, Col: 1}: snapshot.ActionUp,
		{Row: 1, Col: 3}: snapshot.ActionDown,
		{Row: 1, Col: 4}: snapshot.ActionDown,
		{Row: 2, Col: 0}: snapshot.ActionUp,
		{Row: 2, Col: 1}: snapshot.ActionUp,
		{Row: 2, Col: 3}: snapshot.ActionRight,
		{Row: 2, Col: 4}: snapshot.ActionGoal,
	}
}

// actionValuesFor gives the greedy action the return achievable from
// the cell and every other action a visibly lower value
func actionValuesFor(grid snapshot.Grid, policy map[snapshot.Cell]snapshot.Action, cell snapshot.Cell, best snapshot.Action) snapshot.ActionValues {
	steps := stepsToGoal(grid, policy, cell)
	bestValue := 10.0 - float64(steps)

	values := snapshot.ActionValues{
		U: bestValue - 2,
		D: bestValue - 2,
		L: bestValue - 2,
		R: bestValue - 2,
	}
	switch best {
	case snapshot.ActionUp:
		values.U = bestValue
	case snapshot.ActionDown:
		values.D = bestValue
	case snapshot.ActionLeft:
		values.L = bestValue
	case snapshot.ActionRight:
		values.R = bestValue
	}
	return values
}

// stepsToGoal follows the policy from a cell and counts moves
func stepsToGoal(grid snapshot.Grid, policy map[snapshot.Cell]snapshot.Action, cell snapshot.Cell) int {
	steps := 0
	for cell != grid.Goal && steps < grid.H*grid.W {
		action, ok := policy[cell]
		if !ok {
			break
		}
		dr, dc, ok := action.Delta()
		if !ok {
			break
		}
		cell = snapshot.Cell{Row: cell.Row + dr, Col: cell.Col + dc}
		steps++
	}
	return steps
}

// epsilonSchedule mirrors the service's linear decay to a 0.05 floor
func epsilonSchedule(episode int) float64 {
	eps := 1.0 - float64(episode)/1000.0
	if eps < 0.05 {
		eps = 0.05
	}
	return eps
}

// evalSeries derives periodic greedy evaluation points from the
// training returns: the greedy policy tracks the trend without the
// exploration noise.
func evalSeries(history []float64) []snapshot.EvalPoint {
	const interval = 50

	var evals []snapshot.EvalPoint
	for ep := interval; ep <= len(history); ep += interval {
		window := history[ep-interval : ep]
		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(len(window))
		// Greedy rollouts do slightly better than the exploring mean.
		value := mean + 2
		if value > 3 {
			value = 3
		}
		evals = append(evals, snapshot.EvalPoint{Episode: ep, AvgReturn: value})
	}
	return evals
}
