// Package components defines ECS components for the simulation.
package components

import "fmt"

// Position represents a cell on the grid.
// Positions are values; two positions are the same cell iff they are equal.
type Position struct {
	X, Y int
}

// String returns the position in the "(x, y)" form used by narrative events.
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Species identifies an animal's kind.
type Species uint8

const (
	SpeciesHerbivore Species = iota
	SpeciesCarnivore
)

// String returns the display name of the species.
func (s Species) String() string {
	switch s {
	case SpeciesHerbivore:
		return "Herbivore"
	case SpeciesCarnivore:
		return "Carnivore"
	default:
		return "Unknown"
	}
}

// Animal holds per-animal state.
//
// Energy may go non-positive during a turn; the mortality phase removes
// such animals before the turn completes. Eaten marks a herbivore consumed
// by a carnivore this turn: it no longer feeds, reproduces, or survives,
// but stays in the world until cleanup so later scans see a stable order.
type Animal struct {
	ID      uint64
	Species Species
	Energy  int
	Eaten   bool
}
