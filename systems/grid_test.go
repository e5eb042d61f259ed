package systems

import (
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func TestInBounds(t *testing.T) {
	g := Grid{Width: 4, Height: 3}

	tests := []struct {
		name string
		pos  components.Position
		want bool
	}{
		{"origin", components.Position{X: 0, Y: 0}, true},
		{"far corner", components.Position{X: 3, Y: 2}, true},
		{"x at width", components.Position{X: 4, Y: 0}, false},
		{"y at height", components.Position{X: 0, Y: 3}, false},
		{"negative x", components.Position{X: -1, Y: 1}, false},
		{"negative y", components.Position{X: 1, Y: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.InBounds(tt.pos); got != tt.want {
				t.Errorf("InBounds(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestNeighbors_OpenCell(t *testing.T) {
	g := Grid{Width: 5, Height: 5}
	terrain := NewTerrainFromPositions(nil)

	got := g.Neighbors(components.Position{X: 2, Y: 2}, terrain)
	if len(got) != 4 {
		t.Fatalf("expected 4 neighbors, got %d: %v", len(got), got)
	}

	want := map[components.Position]bool{
		{X: 2, Y: 1}: true,
		{X: 2, Y: 3}: true,
		{X: 1, Y: 2}: true,
		{X: 3, Y: 2}: true,
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected neighbor %v", n)
		}
	}
}

func TestNeighbors_Corner(t *testing.T) {
	g := Grid{Width: 5, Height: 5}
	terrain := NewTerrainFromPositions(nil)

	got := g.Neighbors(components.Position{X: 0, Y: 0}, terrain)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors at corner, got %d: %v", len(got), got)
	}
	for _, n := range got {
		if !g.InBounds(n) {
			t.Errorf("neighbor %v out of bounds", n)
		}
	}
}

func TestNeighbors_ObstaclesExcluded(t *testing.T) {
	g := Grid{Width: 5, Height: 5}
	terrain := NewTerrainFromPositions([]components.Position{
		{X: 2, Y: 1},
		{X: 1, Y: 2},
	})

	got := g.Neighbors(components.Position{X: 2, Y: 2}, terrain)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors, got %d: %v", len(got), got)
	}
	for _, n := range got {
		if terrain.Blocked(n) {
			t.Errorf("neighbor %v is an obstacle", n)
		}
	}
}

func TestNeighbors_BoxedIn(t *testing.T) {
	g := Grid{Width: 5, Height: 5}
	terrain := NewTerrainFromPositions([]components.Position{
		{X: 2, Y: 1},
		{X: 2, Y: 3},
		{X: 1, Y: 2},
		{X: 3, Y: 2},
	})

	got := g.Neighbors(components.Position{X: 2, Y: 2}, terrain)
	if len(got) != 0 {
		t.Errorf("expected no legal neighbors when boxed in, got %v", got)
	}
}

func TestNeighbors_ObstacleCellItselfAllowed(t *testing.T) {
	// An animal standing on an obstacle cell (co-location is legal at spawn)
	// still gets its normal adjacency.
	g := Grid{Width: 3, Height: 3}
	terrain := NewTerrainFromPositions([]components.Position{{X: 1, Y: 1}})

	got := g.Neighbors(components.Position{X: 1, Y: 1}, terrain)
	if len(got) != 4 {
		t.Errorf("expected 4 neighbors from obstacle cell, got %d", len(got))
	}
}
