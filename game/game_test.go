package game

import (
	"fmt"
	"testing"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
)

func init() {
	config.MustInit("")
}

// rowTerrain returns a 5x1 world where cells 0, 2, and 4 are boxed in by
// the obstacles at 1 and 3 and the grid edges.
func rowTerrain() (systems.Grid, *systems.TerrainSystem) {
	grid := systems.Grid{Width: 5, Height: 1}
	terrain := systems.NewTerrainFromPositions([]components.Position{
		{X: 1, Y: 0},
		{X: 3, Y: 0},
	})
	return grid, terrain
}

func TestNewSimulationValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{Width: 0, Height: 5}},
		{"zero height", Options{Width: 5, Height: 0}},
		{"negative width", Options{Width: -3, Height: 5}},
		{"negative herbivores", Options{Width: 5, Height: 5, Herbivores: -1}},
		{"negative carnivores", Options{Width: 5, Height: 5, Carnivores: -2}},
		{"negative plants", Options{Width: 5, Height: 5, Plants: -1}},
		{"negative obstacles", Options{Width: 5, Height: 5, Obstacles: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimulation(tt.opts); err == nil {
				t.Errorf("NewSimulation(%+v) should fail", tt.opts)
			}
		})
	}
}

func TestNewSimulationPlacement(t *testing.T) {
	opts := Options{
		Width: 8, Height: 6,
		Herbivores: 10, Carnivores: 4, Plants: 12, Obstacles: 6,
		Seed: 11,
	}
	s, err := NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	if s.Herbivores() != 10 || s.Carnivores() != 4 {
		t.Errorf("population = %d/%d, want 10/4", s.Herbivores(), s.Carnivores())
	}
	if s.PlantCount() != 12 {
		t.Errorf("plants = %d, want 12", s.PlantCount())
	}
	if got := len(s.Obstacles()); got > 6 {
		t.Errorf("obstacles = %d, want at most 6", got)
	}
	if s.Turn() != 0 {
		t.Errorf("turn = %d, want 0", s.Turn())
	}
	if s.State() != StateRunning {
		t.Errorf("state = %v, want Running", s.State())
	}

	initial := config.Cfg().Energy.InitialEnergy
	grid := s.Grid()
	ids := map[uint64]bool{}
	s.ForEachAnimal(func(pos components.Position, a components.Animal) {
		if !grid.InBounds(pos) {
			t.Errorf("animal #%d placed out of bounds at %v", a.ID, pos)
		}
		if a.Energy != initial {
			t.Errorf("animal #%d energy = %d, want %d", a.ID, a.Energy, initial)
		}
		if ids[a.ID] {
			t.Errorf("duplicate id %d", a.ID)
		}
		ids[a.ID] = true
	})
	for _, p := range s.Plants() {
		if !grid.InBounds(p) {
			t.Errorf("plant placed out of bounds at %v", p)
		}
	}
	for _, p := range s.Obstacles() {
		if !grid.InBounds(p) {
			t.Errorf("obstacle placed out of bounds at %v", p)
		}
	}
}

func TestCollapse(t *testing.T) {
	grid := systems.Grid{Width: 1, Height: 1}
	s := newSimulation(grid, 1)
	s.spawnAnimal(components.Position{X: 0, Y: 0}, components.SpeciesHerbivore, 1)

	if s.IsCollapsed() {
		t.Fatal("simulation with one animal should be Running")
	}

	// The lone herbivore pays the move cost, hits zero, and is purged.
	s.Step()
	if !s.IsCollapsed() {
		t.Fatalf("expected collapse, still %d animals", s.Herbivores()+s.Carnivores())
	}
	if s.State() != StateCollapsed {
		t.Errorf("state = %v, want Collapsed", s.State())
	}

	// A step on an empty population still regrows plants and advances the
	// turn counter.
	before := s.PlantCount()
	events := s.Step()
	if s.Turn() != 2 {
		t.Errorf("turn = %d, want 2", s.Turn())
	}
	if len(events) != 1 || events[0].Type != EventPlantsSpawned {
		t.Fatalf("expected only the regrowth event, got %v", events)
	}
	if s.PlantCount() != before+events[0].Count {
		t.Errorf("plants = %d, want %d", s.PlantCount(), before+events[0].Count)
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "Running" || StateCollapsed.String() != "Collapsed" {
		t.Errorf("unexpected state names: %q, %q", StateRunning, StateCollapsed)
	}
}

// stateFingerprint serializes everything observable about a simulation.
func stateFingerprint(s *Simulation) string {
	out := fmt.Sprintf("turn=%d herb=%d carn=%d\n", s.Turn(), s.Herbivores(), s.Carnivores())
	s.ForEachAnimal(func(pos components.Position, a components.Animal) {
		out += fmt.Sprintf("animal id=%d sp=%v pos=%v energy=%d\n", a.ID, a.Species, pos, a.Energy)
	})
	for _, p := range s.Plants() {
		out += fmt.Sprintf("plant %v\n", p)
	}
	for _, p := range s.Obstacles() {
		out += fmt.Sprintf("obstacle %v\n", p)
	}
	for _, e := range s.Events() {
		out += e.String() + "\n"
	}
	return out
}

func TestStepDeterministic(t *testing.T) {
	opts := Options{
		Width: 10, Height: 8,
		Herbivores: 8, Carnivores: 3, Plants: 10, Obstacles: 5,
		Seed: 99,
	}

	a, err := NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	b, err := NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	for turn := 1; turn <= 30; turn++ {
		a.Step()
		b.Step()
		fa, fb := stateFingerprint(a), stateFingerprint(b)
		if fa != fb {
			t.Fatalf("turn %d diverged:\n--- a ---\n%s--- b ---\n%s", turn, fa, fb)
		}
		if a.IsCollapsed() {
			break
		}
	}
}

func TestStepInvariants(t *testing.T) {
	opts := Options{
		Width: 12, Height: 9,
		Herbivores: 10, Carnivores: 4, Plants: 14, Obstacles: 8,
		Seed: 5,
	}
	s, err := NewSimulation(opts)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}

	grid := s.Grid()
	obstacles := fmt.Sprintf("%v", s.Obstacles())

	maxSeen := uint64(0)
	seen := map[uint64]bool{}
	s.ForEachAnimal(func(_ components.Position, a components.Animal) {
		seen[a.ID] = true
		if a.ID > maxSeen {
			maxSeen = a.ID
		}
	})

	for turn := 1; turn <= 100 && !s.IsCollapsed(); turn++ {
		plantsBefore := s.PlantCount()
		events := s.Step()

		eaten, regrown := 0, 0
		for _, e := range events {
			switch e.Type {
			case EventPlantEaten:
				eaten++
			case EventPlantsSpawned:
				regrown += e.Count
			}
		}
		if regrown < 1 || regrown > 7 {
			t.Fatalf("turn %d: regrowth batch %d outside [1,7]", turn, regrown)
		}
		if s.PlantCount() != plantsBefore-eaten+regrown {
			t.Fatalf("turn %d: plants %d, want %d - %d + %d", turn, s.PlantCount(), plantsBefore, eaten, regrown)
		}
		if last := events[len(events)-1]; last.Type != EventPlantsSpawned {
			t.Fatalf("turn %d: last event is %v, want the regrowth summary", turn, last)
		}

		ids := map[uint64]bool{}
		s.ForEachAnimal(func(pos components.Position, a components.Animal) {
			if !grid.InBounds(pos) {
				t.Fatalf("turn %d: animal #%d out of bounds at %v", turn, a.ID, pos)
			}
			if a.Energy <= 0 {
				t.Fatalf("turn %d: animal #%d survived with energy %d", turn, a.ID, a.Energy)
			}
			if a.Eaten {
				t.Fatalf("turn %d: eaten animal #%d survived cleanup", turn, a.ID)
			}
			if ids[a.ID] {
				t.Fatalf("turn %d: duplicate id %d", turn, a.ID)
			}
			ids[a.ID] = true
			if !seen[a.ID] {
				// Newly issued ids are strictly greater than every id
				// issued before them.
				if a.ID <= maxSeen {
					t.Fatalf("turn %d: new id %d not above previous max %d", turn, a.ID, maxSeen)
				}
				seen[a.ID] = true
			}
		})
		for id := range ids {
			if id > maxSeen {
				maxSeen = id
			}
		}

		if got := fmt.Sprintf("%v", s.Obstacles()); got != obstacles {
			t.Fatalf("turn %d: obstacle set changed:\n%s\n%s", turn, obstacles, got)
		}
	}
}
