package game

import (
	"fmt"
	"io"

	"github.com/pthm-cable/meadow/components"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogTurn logs the state after the most recent turn plus its events.
func (s *Simulation) LogTurn() {
	var herbEnergy, carnEnergy int
	s.ForEachAnimal(func(_ components.Position, a components.Animal) {
		if a.Species == components.SpeciesHerbivore {
			herbEnergy += a.Energy
		} else {
			carnEnergy += a.Energy
		}
	})

	avgHerb, avgCarn := 0.0, 0.0
	if s.numHerb > 0 {
		avgHerb = float64(herbEnergy) / float64(s.numHerb)
	}
	if s.numCarn > 0 {
		avgCarn = float64(carnEnergy) / float64(s.numCarn)
	}

	Logf("=== Turn %d ===", s.turn)
	Logf("Herbivores: %d (energy: %.1f avg), Carnivores: %d (energy: %.1f avg)",
		s.numHerb, avgHerb, s.numCarn, avgCarn)
	Logf("Plants: %d, Obstacles: %d", s.flora.Count(), s.terrain.Count())
	for _, e := range s.events {
		Logf("  %s", e)
	}
	Logf("")
}
