// Package policy replays a learned greedy policy over a snapshot's
// grid, producing the rollout path a converged agent would take.
package policy

import (
	"rlgridviz/pkg/snapshot"
)

// DefaultMaxSteps caps a rollout against pathological policies. A
// converged policy reaches any reasonable goal well within this bound.
const DefaultMaxSteps = 30

// Outcome describes why a rollout stopped
type Outcome string

const (
	OutcomeGoal      Outcome = "goal"       // reached the goal cell
	OutcomeCycle     Outcome = "cycle"      // revisited a cell
	OutcomeDeadEnd   Outcome = "dead-end"   // missing or terminal policy entry
	OutcomeBlocked   Outcome = "blocked"    // move into a wall or off the grid
	OutcomeStepLimit Outcome = "step-limit" // hit the step cap
)

// Walk is the result of a greedy rollout: the visited cells in order
// and the reason the walk ended. The path always includes the start
// cell and never a cell beyond the first invalid transition.
type Walk struct {
	Path    []snapshot.Cell
	Outcome Outcome
}

// ReachedGoal reports whether the walk ended on the goal cell
func (w Walk) ReachedGoal() bool {
	return w.Outcome == OutcomeGoal
}

// Options tunes a rollout
type Options struct {
	MaxSteps int
}

// GreedyPath replays the snapshot's policy from the start cell with
// the default step cap and returns the visited cells.
func GreedyPath(snap *snapshot.Snapshot) []snapshot.Cell {
	return Simulate(snap, Options{}).Path
}

// Simulate walks the policy deterministically from the grid's start
// cell. At each step the current cell is recorded, then the walk ends
// on the first of: goal reached, cell revisited (the repeated cell is
// not recorded twice), missing or terminal policy entry, a move
// blocked by walls or bounds, or the step cap.
func Simulate(snap *snapshot.Snapshot, opts Options) Walk {
	maxSteps := opts.MaxSteps
	if maxSteps < 1 {
		maxSteps = DefaultMaxSteps
	}

	grid := &snap.Grid
	current := grid.Start
	visited := make(map[snapshot.Cell]bool, maxSteps)
	path := make([]snapshot.Cell, 0, maxSteps)

	for step := 0; step < maxSteps; step++ {
		if visited[current] {
			return Walk{Path: path, Outcome: OutcomeCycle}
		}
		path = append(path, current)
		visited[current] = true

		if current == grid.Goal {
			return Walk{Path: path, Outcome: OutcomeGoal}
		}

		action, ok := snap.Policy[current]
		if !ok || action == snapshot.ActionGoal {
			return Walk{Path: path, Outcome: OutcomeDeadEnd}
		}

		dr, dc, ok := action.Delta()
		if !ok {
			return Walk{Path: path, Outcome: OutcomeDeadEnd}
		}

		next := snapshot.Cell{Row: current.Row + dr, Col: current.Col + dc}
		if !grid.Contains(next) || grid.IsWall(next) {
			return Walk{Path: path, Outcome: OutcomeBlocked}
		}
		current = next
	}

	return Walk{Path: path, Outcome: OutcomeStepLimit}
}
