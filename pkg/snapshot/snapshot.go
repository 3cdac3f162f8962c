package snapshot

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell identifies a grid position by row and column
type Cell struct {
	Row int
	Col int
}

// Key returns the external string form of the cell ("<row>,<col>")
func (c Cell) Key() string {
	return strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col)
}

// ParseCellKey parses the external "<row>,<col>" key form into a Cell
func ParseCellKey(key string) (Cell, error) {
	row, col, found := strings.Cut(key, ",")
	if !found {
		return Cell{}, fmt.Errorf("cell key %q is not in row,col form", key)
	}

	r, err := strconv.Atoi(row)
	if err != nil {
		return Cell{}, fmt.Errorf("invalid row in cell key %q: %w", key, err)
	}

	c, err := strconv.Atoi(col)
	if err != nil {
		return Cell{}, fmt.Errorf("invalid column in cell key %q: %w", key, err)
	}

	return Cell{Row: r, Col: c}, nil
}

// Action is a movement direction in the grid, plus the goal marker
type Action string

const (
	ActionUp    Action = "U"
	ActionDown  Action = "D"
	ActionLeft  Action = "L"
	ActionRight Action = "R"
	ActionGoal  Action = "G" // terminal marker, no movement
)

// Delta returns the row/column offset for a movement action. The goal
// marker and unknown values report ok=false.
func (a Action) Delta() (dr, dc int, ok bool) {
	switch a {
	case ActionUp:
		return -1, 0, true
	case ActionDown:
		return 1, 0, true
	case ActionLeft:
		return 0, -1, true
	case ActionRight:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}

// Arrow returns a single-character arrow for grid printouts
func (a Action) Arrow() string {
	switch a {
	case ActionUp:
		return "^"
	case ActionDown:
		return "v"
	case ActionLeft:
		return "<"
	case ActionRight:
		return ">"
	case ActionGoal:
		return "G"
	default:
		return "?"
	}
}

// ActionValues holds the learned value of each action at one cell
type ActionValues struct {
	U float64 `json:"U"`
	D float64 `json:"D"`
	L float64 `json:"L"`
	R float64 `json:"R"`
}

// Grid describes the gridworld layout
type Grid struct {
	H     int
	W     int
	Start Cell
	Goal  Cell
	Walls map[Cell]bool
}

// Contains reports whether the cell lies within the grid bounds
func (g *Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.H && c.Col >= 0 && c.Col < g.W
}

// IsWall reports whether the cell is a wall
func (g *Grid) IsWall(c Cell) bool {
	return g.Walls[c]
}

// EvalPoint is one periodic greedy-policy evaluation measurement
type EvalPoint struct {
	Episode   int     `json:"episode"`
	AvgReturn float64 `json:"avg_return"`
}

// Snapshot is one immutable view of training progress as reported by
// the training service. It is never mutated after decoding; every
// request/response cycle produces a fresh value.
type Snapshot struct {
	Grid          Grid
	Episode       int
	Epsilon       float64
	Q             map[Cell]ActionValues
	Policy        map[Cell]Action
	RewardHistory []float64
	EvalHistory   []EvalPoint
}

// LatestEval returns the most recent evaluation point, if any
func (s *Snapshot) LatestEval() (EvalPoint, bool) {
	if len(s.EvalHistory) == 0 {
		return EvalPoint{}, false
	}
	return s.EvalHistory[len(s.EvalHistory)-1], true
}
