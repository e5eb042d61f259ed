// Package systems provides the stateless building blocks of the simulation:
// grid geometry, the obstacle terrain, and the plant layer.
package systems

import "github.com/pthm-cable/meadow/components"

// Grid describes the world bounds. All entity positions lie within
// [0, Width) x [0, Height).
type Grid struct {
	Width  int
	Height int
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p components.Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// neighborOffsets is the fixed scan order for adjacency. The order is not
// part of the movement contract, but keeping it stable makes moves
// reproducible under a seeded rng.
var neighborOffsets = [4]components.Position{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Neighbors returns the orthogonally adjacent cells of p that are in bounds
// and not blocked by an obstacle. The result is empty when p is boxed in.
// Pure function of the grid bounds, p, and the terrain.
func (g Grid) Neighbors(p components.Position, terrain *TerrainSystem) []components.Position {
	out := make([]components.Position, 0, 4)
	for _, d := range neighborOffsets {
		n := components.Position{X: p.X + d.X, Y: p.Y + d.Y}
		if !g.InBounds(n) {
			continue
		}
		if terrain.Blocked(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
