// Package telemetry provides per-window counters, aggregate stats, and CSV output.
package telemetry

import "github.com/pthm-cable/meadow/components"

// PopulationSample captures the live population at a window boundary.
type PopulationSample struct {
	Herbivores int
	Carnivores int
	Plants     int

	HerbivoreEnergy []float64
	CarnivoreEnergy []float64
}

// Collector accumulates events within turn windows and produces WindowStats.
type Collector struct {
	windowTurns int
	windowStart int

	// Event counters for current window
	plantsEaten   int
	kills         int
	herbBirths    int
	carnBirths    int
	herbDeaths    int
	carnDeaths    int
	plantsRegrown int
}

// NewCollector creates a stats collector flushing every windowTurns turns.
func NewCollector(windowTurns int) *Collector {
	if windowTurns < 1 {
		windowTurns = 1
	}
	return &Collector{windowTurns: windowTurns}
}

// RecordPlantEaten records a herbivore eating a plant.
func (c *Collector) RecordPlantEaten() {
	c.plantsEaten++
}

// RecordKill records a carnivore eating a herbivore.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordBirth records a reproduction event.
func (c *Collector) RecordBirth(species components.Species) {
	if species == components.SpeciesHerbivore {
		c.herbBirths++
	} else {
		c.carnBirths++
	}
}

// RecordDeath records an animal purged in the mortality phase.
func (c *Collector) RecordDeath(species components.Species) {
	if species == components.SpeciesHerbivore {
		c.herbDeaths++
	} else {
		c.carnDeaths++
	}
}

// RecordRegrowth records the plant batch spawned at the end of a turn.
func (c *Collector) RecordRegrowth(n int) {
	c.plantsRegrown += n
}

// ShouldFlush returns true if enough turns have passed to flush the window.
func (c *Collector) ShouldFlush(turn int) bool {
	return turn-c.windowStart >= c.windowTurns
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(turn int, pop PopulationSample) WindowStats {
	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   turn,

		Herbivores: pop.Herbivores,
		Carnivores: pop.Carnivores,
		Plants:     pop.Plants,

		PlantsEaten:   c.plantsEaten,
		Kills:         c.kills,
		HerbBirths:    c.herbBirths,
		CarnBirths:    c.carnBirths,
		HerbDeaths:    c.herbDeaths,
		CarnDeaths:    c.carnDeaths,
		PlantsRegrown: c.plantsRegrown,
	}

	stats.HerbEnergyMean, stats.HerbEnergyP10, stats.HerbEnergyP50, stats.HerbEnergyP90 =
		ComputeEnergyStats(pop.HerbivoreEnergy)
	stats.CarnEnergyMean, stats.CarnEnergyP10, stats.CarnEnergyP50, stats.CarnEnergyP90 =
		ComputeEnergyStats(pop.CarnivoreEnergy)

	c.windowStart = turn
	c.plantsEaten = 0
	c.kills = 0
	c.herbBirths = 0
	c.carnBirths = 0
	c.herbDeaths = 0
	c.carnDeaths = 0
	c.plantsRegrown = 0

	return stats
}
