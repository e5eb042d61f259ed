package systems

import (
	"math/rand"

	"github.com/pthm-cable/meadow/components"
)

// FloraSystem manages the plant layer outside the ECS. Plants have no
// identity beyond their cell; several plants may stack on one cell, and
// eating removes exactly one of them.
type FloraSystem struct {
	grid   Grid
	plants []components.Position
}

// NewFloraSystem creates an empty plant layer for the given grid.
func NewFloraSystem(grid Grid) *FloraSystem {
	return &FloraSystem{grid: grid}
}

// PlantAt places a single plant on p.
func (fs *FloraSystem) PlantAt(p components.Position) {
	fs.plants = append(fs.plants, p)
}

// Seed places count plants at uniformly random in-bounds positions.
// Plant placement is never checked against obstacles.
func (fs *FloraSystem) Seed(count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		fs.PlantAt(components.Position{
			X: rng.Intn(fs.grid.Width),
			Y: rng.Intn(fs.grid.Height),
		})
	}
}

// EatAt removes at most one plant at p and reports whether one was removed.
// The oldest plant on the cell goes first; order among remaining plants is
// preserved so scans stay deterministic.
func (fs *FloraSystem) EatAt(p components.Position) bool {
	for i, plant := range fs.plants {
		if plant == p {
			fs.plants = append(fs.plants[:i], fs.plants[i+1:]...)
			return true
		}
	}
	return false
}

// Regrow spawns a fresh batch of plants, with the batch size drawn uniformly
// from [min, max]. Each plant lands on a uniformly random in-bounds cell,
// obstacles included. Returns the batch size.
// Draw order: one count draw, then an x and a y draw per plant.
func (fs *FloraSystem) Regrow(min, max int, rng *rand.Rand) int {
	n := min
	if max > min {
		n += rng.Intn(max - min + 1)
	}
	fs.Seed(n, rng)
	return n
}

// Count returns the number of live plants.
func (fs *FloraSystem) Count() int {
	return len(fs.plants)
}

// HasPlantAt reports whether at least one plant occupies p.
func (fs *FloraSystem) HasPlantAt(p components.Position) bool {
	for _, plant := range fs.plants {
		if plant == p {
			return true
		}
	}
	return false
}

// Plants returns the live plants in age order.
// Callers must treat the slice as read-only.
func (fs *FloraSystem) Plants() []components.Position {
	return fs.plants
}
