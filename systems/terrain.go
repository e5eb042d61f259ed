package systems

import (
	"math/rand"

	"github.com/pthm-cable/meadow/components"
)

// TerrainSystem holds the obstacle layout. Obstacles are placed once at
// initialization and never change for the lifetime of a run; they block
// movement into their cell but not co-location of entities spawned there.
type TerrainSystem struct {
	blocked   map[components.Position]struct{}
	obstacles []components.Position
}

// NewTerrainSystem places count obstacles at uniformly random in-bounds
// positions. Overlapping draws are kept as a single blocked cell.
func NewTerrainSystem(grid Grid, count int, rng *rand.Rand) *TerrainSystem {
	t := &TerrainSystem{
		blocked: make(map[components.Position]struct{}, count),
	}
	for i := 0; i < count; i++ {
		p := components.Position{X: rng.Intn(grid.Width), Y: rng.Intn(grid.Height)}
		if _, ok := t.blocked[p]; ok {
			continue
		}
		t.blocked[p] = struct{}{}
		t.obstacles = append(t.obstacles, p)
	}
	return t
}

// NewTerrainFromPositions builds a terrain from explicit obstacle cells.
// Used by tests and scenario setups.
func NewTerrainFromPositions(positions []components.Position) *TerrainSystem {
	t := &TerrainSystem{
		blocked: make(map[components.Position]struct{}, len(positions)),
	}
	for _, p := range positions {
		if _, ok := t.blocked[p]; ok {
			continue
		}
		t.blocked[p] = struct{}{}
		t.obstacles = append(t.obstacles, p)
	}
	return t
}

// Blocked reports whether an obstacle occupies p.
func (t *TerrainSystem) Blocked(p components.Position) bool {
	_, ok := t.blocked[p]
	return ok
}

// Count returns the number of obstacle cells.
func (t *TerrainSystem) Count() int {
	return len(t.obstacles)
}

// Obstacles returns the obstacle cells in placement order.
// Callers must treat the slice as read-only.
func (t *TerrainSystem) Obstacles() []components.Position {
	return t.obstacles
}
