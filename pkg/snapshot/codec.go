package snapshot

import (
	"encoding/json"
	"fmt"
)

// Wire types matching the training service's JSON schema. Grid cells
// travel as [row, col] arrays and Q/policy are keyed by "<row>,<col>"
// strings; the string form exists only at this boundary.

type wireGrid struct {
	H     int      `json:"H"`
	W     int      `json:"W"`
	Start [2]int   `json:"start"`
	Goal  [2]int   `json:"goal"`
	Walls [][2]int `json:"walls"`
}

type wireSnapshot struct {
	Grid          wireGrid                `json:"grid"`
	Episode       int                     `json:"episode"`
	Epsilon       float64                 `json:"epsilon"`
	Q             map[string]ActionValues `json:"Q"`
	Policy        map[string]*Action      `json:"policy"`
	RewardHistory []float64               `json:"reward_history"`
	EvalHistory   []EvalPoint             `json:"eval_history"`
}

// Decode parses and validates a snapshot from the training service's
// wire format. Structurally invalid snapshots are rejected here so the
// transformation pipeline never sees them.
func Decode(data []byte) (*Snapshot, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	grid := Grid{
		H:     wire.Grid.H,
		W:     wire.Grid.W,
		Start: Cell{Row: wire.Grid.Start[0], Col: wire.Grid.Start[1]},
		Goal:  Cell{Row: wire.Grid.Goal[0], Col: wire.Grid.Goal[1]},
		Walls: make(map[Cell]bool, len(wire.Grid.Walls)),
	}
	for _, w := range wire.Grid.Walls {
		grid.Walls[Cell{Row: w[0], Col: w[1]}] = true
	}

	snap := &Snapshot{
		Grid:          grid,
		Episode:       wire.Episode,
		Epsilon:       wire.Epsilon,
		Q:             make(map[Cell]ActionValues, len(wire.Q)),
		Policy:        make(map[Cell]Action, len(wire.Policy)),
		RewardHistory: wire.RewardHistory,
		EvalHistory:   wire.EvalHistory,
	}

	for key, values := range wire.Q {
		cell, err := ParseCellKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid Q entry: %w", err)
		}
		snap.Q[cell] = values
	}

	for key, action := range wire.Policy {
		cell, err := ParseCellKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid policy entry: %w", err)
		}
		// Wall cells arrive as null policy entries; drop them so the
		// internal map holds actionable cells only.
		if action == nil {
			continue
		}
		snap.Policy[cell] = *action
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}

	return snap, nil
}

// Encode serializes a snapshot back into the wire format
func Encode(s *Snapshot) ([]byte, error) {
	wire := wireSnapshot{
		Grid: wireGrid{
			H:     s.Grid.H,
			W:     s.Grid.W,
			Start: [2]int{s.Grid.Start.Row, s.Grid.Start.Col},
			Goal:  [2]int{s.Grid.Goal.Row, s.Grid.Goal.Col},
			Walls: make([][2]int, 0, len(s.Grid.Walls)),
		},
		Episode:       s.Episode,
		Epsilon:       s.Epsilon,
		Q:             make(map[string]ActionValues, len(s.Q)),
		Policy:        make(map[string]*Action, len(s.Policy)),
		RewardHistory: s.RewardHistory,
		EvalHistory:   s.EvalHistory,
	}

	for cell := range s.Grid.Walls {
		wire.Grid.Walls = append(wire.Grid.Walls, [2]int{cell.Row, cell.Col})
		wire.Policy[cell.Key()] = nil
	}
	for cell, values := range s.Q {
		wire.Q[cell.Key()] = values
	}
	for cell, action := range s.Policy {
		a := action
		wire.Policy[cell.Key()] = &a
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Validate checks the structural invariants the core pipeline relies
// on: positive dimensions, in-bounds start/goal/walls, walls disjoint
// from start and goal, and policy restricted to non-wall cells.
func (s *Snapshot) Validate() error {
	g := &s.Grid

	if g.H <= 0 || g.W <= 0 {
		return fmt.Errorf("grid dimensions %dx%d must be positive", g.H, g.W)
	}
	if !g.Contains(g.Start) {
		return fmt.Errorf("start cell %s is out of bounds", g.Start.Key())
	}
	if !g.Contains(g.Goal) {
		return fmt.Errorf("goal cell %s is out of bounds", g.Goal.Key())
	}

	for cell := range g.Walls {
		if !g.Contains(cell) {
			return fmt.Errorf("wall cell %s is out of bounds", cell.Key())
		}
		if cell == g.Start || cell == g.Goal {
			return fmt.Errorf("wall cell %s overlaps start or goal", cell.Key())
		}
	}

	if s.Episode < 0 {
		return fmt.Errorf("episode count %d must not be negative", s.Episode)
	}
	if s.Epsilon < 0 || s.Epsilon > 1 {
		return fmt.Errorf("epsilon %.3f must be between 0 and 1", s.Epsilon)
	}

	for cell := range s.Q {
		if !g.Contains(cell) {
			return fmt.Errorf("Q entry %s is out of bounds", cell.Key())
		}
	}

	for cell, action := range s.Policy {
		if !g.Contains(cell) {
			return fmt.Errorf("policy entry %s is out of bounds", cell.Key())
		}
		if g.IsWall(cell) {
			return fmt.Errorf("policy entry %s refers to a wall cell", cell.Key())
		}
		switch action {
		case ActionUp, ActionDown, ActionLeft, ActionRight, ActionGoal:
		default:
			return fmt.Errorf("policy entry %s has unknown action %q", cell.Key(), action)
		}
	}

	for i := 1; i < len(s.EvalHistory); i++ {
		if s.EvalHistory[i].Episode <= s.EvalHistory[i-1].Episode {
			return fmt.Errorf("eval history episodes must be strictly increasing (index %d)", i)
		}
	}

	return nil
}
