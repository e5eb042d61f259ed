package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Step advances the simulation by one turn and returns the turn's events.
//
// The five phases run in a fixed order with observable consequences:
// movement, herbivore feeding, carnivore feeding, reproduction, then
// mortality and plant regrowth. An animal that moves onto a plant eats it
// the same turn; a herbivore eaten in the carnivore phase neither
// reproduces nor survives. With no animals left the animal phases are
// no-ops, but regrowth and the turn counter still advance (callers should
// check IsCollapsed first).
func (s *Simulation) Step() []Event {
	turn := s.turn + 1
	events := make([]Event, 0, 16)

	s.updateMovement()
	s.updateHerbivoreFeeding(turn, &events)
	s.updateCarnivoreFeeding(turn, &events)
	s.updateReproduction(turn, &events)
	s.cleanupDead()
	s.updateRegrowth(turn, &events)

	s.turn = turn
	s.events = events
	return events
}

// updateMovement relocates every animal to a uniformly chosen legal
// neighbor, or leaves it in place when it is boxed in. Either way the
// animal pays the move cost. Legality depends only on bounds and the fixed
// obstacle set, never on other animals, so no move depends on another
// animal's move and animals co-locate freely.
func (s *Simulation) updateMovement() {
	moveCost := s.config().Energy.MoveCost

	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()

		neighbors := s.grid.Neighbors(*pos, s.terrain)
		if len(neighbors) > 0 {
			*pos = neighbors[s.rng.Intn(len(neighbors))]
		}
		animal.Energy -= moveCost
	}
}

// updateHerbivoreFeeding lets each herbivore, in population order, eat at
// most one plant on its cell. A plant consumed by an earlier herbivore is
// gone for the rest of the turn.
func (s *Simulation) updateHerbivoreFeeding(turn int, events *[]Event) {
	plantEnergy := s.config().Energy.PlantEnergy

	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()

		if animal.Species != components.SpeciesHerbivore {
			continue
		}
		if !s.flora.EatAt(*pos) {
			continue
		}

		animal.Energy += plantEnergy
		*events = append(*events, newPlantEatenEvent(turn, animal.ID, *pos))

		if s.collector != nil {
			s.collector.RecordPlantEaten()
		}
	}
}

// animalRef is a stable snapshot of one animal taken between phases.
type animalRef struct {
	entity  ecs.Entity
	pos     components.Position
	species components.Species
}

// snapshotAnimals captures the population in scan order. Positions are
// fixed between the movement phase and cleanup, so the snapshot stays
// valid through the feeding and reproduction phases.
func (s *Simulation) snapshotAnimals() []animalRef {
	refs := make([]animalRef, 0, s.numHerb+s.numCarn)
	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()
		refs = append(refs, animalRef{
			entity:  query.Entity(),
			pos:     *pos,
			species: animal.Species,
		})
	}
	return refs
}

// updateCarnivoreFeeding lets each carnivore, in population order, eat at
// most one herbivore sharing its cell. The prey is marked eaten on the
// spot: it cannot feed a later carnivore, reproduce, or survive the turn.
func (s *Simulation) updateCarnivoreFeeding(turn int, events *[]Event) {
	preyEnergy := s.config().Energy.PreyEnergy
	refs := s.snapshotAnimals()

	for _, ref := range refs {
		if ref.species != components.SpeciesCarnivore {
			continue
		}
		predator := s.animalMap.Get(ref.entity)

		for _, prey := range refs {
			if prey.species != components.SpeciesHerbivore || prey.pos != ref.pos {
				continue
			}
			target := s.animalMap.Get(prey.entity)
			if target.Eaten {
				continue
			}

			target.Eaten = true
			predator.Energy += preyEnergy
			*events = append(*events, newPreyEatenEvent(turn, predator.ID, target.ID, ref.pos))

			if s.collector != nil {
				s.collector.RecordKill()
			}
			break // one herbivore per carnivore per turn
		}
	}
}

// updateReproduction spawns one offspring for every surviving animal at or
// above its species threshold. Parents are scanned in population order and
// offspring ids are issued in that order; offspring are appended after the
// scan, so they never reproduce or get eaten within their birth turn.
func (s *Simulation) updateReproduction(turn int, events *[]Event) {
	cfg := s.config().Energy

	// Collect births to spawn after iteration
	type birthInfo struct {
		pos      components.Position
		species  components.Species
		parentID uint64
	}
	var births []birthInfo

	query := s.animalFilter.Query()
	for query.Next() {
		pos, animal := query.Get()

		if animal.Eaten {
			continue
		}

		threshold := cfg.HerbivoreThreshold
		if animal.Species == components.SpeciesCarnivore {
			threshold = cfg.CarnivoreThreshold
		}
		if animal.Energy < threshold {
			continue
		}

		animal.Energy -= cfg.ReproductionCost
		births = append(births, birthInfo{pos: *pos, species: animal.Species, parentID: animal.ID})
	}

	// Spawn children outside the query
	for _, b := range births {
		entity := s.spawnAnimal(b.pos, b.species, cfg.OffspringEnergy)
		child := s.animalMap.Get(entity)
		*events = append(*events, newReproducedEvent(turn, b.species, b.parentID, child.ID, b.pos))

		if s.collector != nil {
			s.collector.RecordBirth(b.species)
		}
	}
}

// updateRegrowth spawns the turn's plant batch and appends the summary
// event after all feed and reproduction events.
func (s *Simulation) updateRegrowth(turn int, events *[]Event) {
	flora := s.config().Flora
	n := s.flora.Regrow(flora.RegrowMin, flora.RegrowMax, s.rng)
	*events = append(*events, newPlantsSpawnedEvent(turn, n))

	if s.collector != nil {
		s.collector.RecordRegrowth(n)
	}
}
