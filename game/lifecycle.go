package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// spawnAnimal creates an animal entity with a freshly issued id.
// Ids are issued by a counter that only ever moves forward, so no id is
// reused for the lifetime of the run.
func (s *Simulation) spawnAnimal(pos components.Position, species components.Species, energy int) ecs.Entity {
	id := s.nextID
	s.nextID++

	animal := components.Animal{
		ID:      id,
		Species: species,
		Energy:  energy,
	}
	entity := s.animals.NewEntity(&pos, &animal)

	if species == components.SpeciesHerbivore {
		s.numHerb++
	} else {
		s.numCarn++
	}

	return entity
}

// cleanupDead is the mortality phase: it purges every animal that was eaten
// this turn or ended the turn with energy at or below zero. Offspring born
// this turn are scanned too.
func (s *Simulation) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	type deadInfo struct {
		entity  ecs.Entity
		species components.Species
	}
	var toRemove []deadInfo

	query := s.animalFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, animal := query.Get()

		if animal.Eaten || animal.Energy <= 0 {
			toRemove = append(toRemove, deadInfo{entity: entity, species: animal.Species})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		s.world.RemoveEntity(dead.entity)

		if dead.species == components.SpeciesHerbivore {
			s.numHerb--
		} else {
			s.numCarn--
		}

		if s.collector != nil {
			s.collector.RecordDeath(dead.species)
		}
	}
}
