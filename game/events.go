package game

import (
	"fmt"

	"github.com/pthm-cable/meadow/components"
)

// EventType identifies narrative events produced by a turn.
type EventType uint8

const (
	EventPlantEaten EventType = iota
	EventPreyEaten
	EventReproduced
	EventPlantsSpawned
)

// Event describes one transition of a turn in human-readable form.
// The step engine produces a fresh list every turn; events are never
// retained across turns.
type Event struct {
	Type EventType
	Turn int

	ID      uint64 // acting animal (eater or parent)
	PreyID  uint64 // eaten herbivore, for EventPreyEaten
	ChildID uint64 // offspring, for EventReproduced

	Species components.Species
	Pos     components.Position

	Count int // batch size, for EventPlantsSpawned
}

// newPlantEatenEvent records a herbivore eating a plant.
func newPlantEatenEvent(turn int, id uint64, pos components.Position) Event {
	return Event{
		Type:    EventPlantEaten,
		Turn:    turn,
		ID:      id,
		Species: components.SpeciesHerbivore,
		Pos:     pos,
	}
}

// newPreyEatenEvent records a carnivore eating a herbivore.
func newPreyEatenEvent(turn int, predatorID, preyID uint64, pos components.Position) Event {
	return Event{
		Type:    EventPreyEaten,
		Turn:    turn,
		ID:      predatorID,
		PreyID:  preyID,
		Species: components.SpeciesCarnivore,
		Pos:     pos,
	}
}

// newReproducedEvent records an animal spawning an offspring.
func newReproducedEvent(turn int, species components.Species, parentID, childID uint64, pos components.Position) Event {
	return Event{
		Type:    EventReproduced,
		Turn:    turn,
		ID:      parentID,
		ChildID: childID,
		Species: species,
		Pos:     pos,
	}
}

// newPlantsSpawnedEvent records the regrowth batch of a turn.
func newPlantsSpawnedEvent(turn, count int) Event {
	return Event{
		Type:  EventPlantsSpawned,
		Turn:  turn,
		Count: count,
	}
}

// String renders the narrative message for the event.
func (e Event) String() string {
	switch e.Type {
	case EventPlantEaten:
		return fmt.Sprintf("Herbivore #%d ate a plant at %s", e.ID, e.Pos)
	case EventPreyEaten:
		return fmt.Sprintf("Carnivore #%d ate Herbivore #%d at %s", e.ID, e.PreyID, e.Pos)
	case EventReproduced:
		return fmt.Sprintf("%s #%d reproduced an offspring with id (#%d) at %s", e.Species, e.ID, e.ChildID, e.Pos)
	case EventPlantsSpawned:
		return fmt.Sprintf("%d new plant(s) spawned.", e.Count)
	default:
		return fmt.Sprintf("unknown event type %d", e.Type)
	}
}
