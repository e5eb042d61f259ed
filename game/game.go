// Package game holds the simulation driver and the turn-based step engine.
package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/systems"
	"github.com/pthm-cable/meadow/telemetry"
)

// State is the driver's lifecycle state.
type State uint8

const (
	// StateRunning means the simulation still holds at least one animal.
	StateRunning State = iota
	// StateCollapsed is terminal: the animal population reached zero.
	StateCollapsed
)

// String returns the display name of the state.
func (s State) String() string {
	if s == StateCollapsed {
		return "Collapsed"
	}
	return "Running"
}

// Options holds construction parameters for a simulation run.
type Options struct {
	Width  int
	Height int

	Herbivores int
	Carnivores int
	Plants     int
	Obstacles  int

	Seed int64
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	return Options{
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		Herbivores: cfg.Population.Herbivores,
		Carnivores: cfg.Population.Carnivores,
		Plants:     cfg.Population.Plants,
		Obstacles:  cfg.Population.Obstacles,
		Seed:       seed,
	}
}

// Simulation owns the world state and advances it one turn at a time.
//
// Animals live in the ECS world as Position+Animal entities; plants and
// obstacles are managed by FloraSystem and TerrainSystem. The world is
// mutated in place, strictly in the documented phase order, and only by
// Step. All randomness comes from the run's single rng, so a fixed seed
// reproduces a run turn for turn.
type Simulation struct {
	world *ecs.World

	animals      *ecs.Map2[components.Position, components.Animal]
	animalFilter *ecs.Filter2[components.Position, components.Animal]
	animalMap    *ecs.Map1[components.Animal]

	grid    systems.Grid
	terrain *systems.TerrainSystem
	flora   *systems.FloraSystem

	rng *rand.Rand

	turn    int
	nextID  uint64
	numHerb int
	numCarn int

	// events from the most recently completed turn
	events []Event

	collector *telemetry.Collector
}

// NewSimulation initializes a run: animals, plants, and obstacles are placed
// at positions drawn uniformly at random within bounds, independently.
// Overlaps between categories are permitted and not deduplicated.
// Returns an error for non-positive dimensions or negative counts.
//
// The config package must be initialized (config.Init or config.MustInit)
// first; initial animal energy comes from the loaded configuration.
func NewSimulation(opts Options) (*Simulation, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("game: invalid argument: grid dimensions must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Herbivores < 0 || opts.Carnivores < 0 || opts.Plants < 0 || opts.Obstacles < 0 {
		return nil, fmt.Errorf("game: invalid argument: entity counts must be non-negative")
	}

	s := newSimulation(systems.Grid{Width: opts.Width, Height: opts.Height}, opts.Seed)

	// Placement draw order: herbivores, carnivores, plants, obstacles.
	initial := config.Cfg().Energy.InitialEnergy
	for i := 0; i < opts.Herbivores; i++ {
		s.spawnAnimal(s.randomPosition(), components.SpeciesHerbivore, initial)
	}
	for i := 0; i < opts.Carnivores; i++ {
		s.spawnAnimal(s.randomPosition(), components.SpeciesCarnivore, initial)
	}
	s.flora.Seed(opts.Plants, s.rng)
	s.terrain = systems.NewTerrainSystem(s.grid, opts.Obstacles, s.rng)

	return s, nil
}

// newSimulation builds an empty world with no animals, plants, or
// obstacles. Scenario setup (random in NewSimulation, explicit in tests)
// happens on top of it.
func newSimulation(grid systems.Grid, seed int64) *Simulation {
	s := &Simulation{
		world: ecs.NewWorld(),
		grid:  grid,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.animals = ecs.NewMap2[components.Position, components.Animal](s.world)
	s.animalFilter = ecs.NewFilter2[components.Position, components.Animal](s.world)
	s.animalMap = ecs.NewMap1[components.Animal](s.world)
	s.flora = systems.NewFloraSystem(grid)
	s.terrain = systems.NewTerrainFromPositions(nil)
	return s
}

// SetCollector attaches a telemetry collector. Pass nil to detach.
func (s *Simulation) SetCollector(c *telemetry.Collector) {
	s.collector = c
}

// config returns the loaded configuration.
func (s *Simulation) config() *config.Config {
	return config.Cfg()
}

// randomPosition draws a uniform in-bounds cell.
func (s *Simulation) randomPosition() components.Position {
	return components.Position{
		X: s.rng.Intn(s.grid.Width),
		Y: s.rng.Intn(s.grid.Height),
	}
}

// State returns Running while at least one animal lives, Collapsed otherwise.
func (s *Simulation) State() State {
	if s.numHerb+s.numCarn == 0 {
		return StateCollapsed
	}
	return StateRunning
}

// IsCollapsed reports whether the animal population is empty.
func (s *Simulation) IsCollapsed() bool {
	return s.State() == StateCollapsed
}

// Turn returns the number of completed turns.
func (s *Simulation) Turn() int {
	return s.turn
}

// Events returns the narrative events of the most recently completed turn.
func (s *Simulation) Events() []Event {
	return s.events
}

// Grid returns the world bounds.
func (s *Simulation) Grid() systems.Grid {
	return s.grid
}

// Herbivores returns the live herbivore count.
func (s *Simulation) Herbivores() int {
	return s.numHerb
}

// Carnivores returns the live carnivore count.
func (s *Simulation) Carnivores() int {
	return s.numCarn
}

// PlantCount returns the live plant count.
func (s *Simulation) PlantCount() int {
	return s.flora.Count()
}

// Plants returns the live plant cells. Read-only.
func (s *Simulation) Plants() []components.Position {
	return s.flora.Plants()
}

// Obstacles returns the obstacle cells. Read-only and fixed for the run.
func (s *Simulation) Obstacles() []components.Position {
	return s.terrain.Obstacles()
}

// ForEachAnimal calls fn for every live animal in population order.
// fn receives copies; mutating them does not touch the world.
func (s *Simulation) ForEachAnimal(fn func(pos components.Position, a components.Animal)) {
	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()
		fn(*pos, *animal)
	}
}

// Sample captures population counts and energy distributions for telemetry.
func (s *Simulation) Sample() telemetry.PopulationSample {
	sample := telemetry.PopulationSample{
		Herbivores: s.numHerb,
		Carnivores: s.numCarn,
		Plants:     s.flora.Count(),
	}
	query := s.animalFilter.Query()
	for query.Next() {
		_, animal := query.Get()
		if animal.Species == components.SpeciesHerbivore {
			sample.HerbivoreEnergy = append(sample.HerbivoreEnergy, float64(animal.Energy))
		} else {
			sample.CarnivoreEnergy = append(sample.CarnivoreEnergy, float64(animal.Energy))
		}
	}
	return sample
}
