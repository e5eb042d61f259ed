// Package render draws the simulation state in the terminal.
//
// The renderer is a read-only consumer of the simulation: it never mutates
// state, it only paints the grid, the HUD, and the latest turn's events.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/game"
)

// Cell glyphs.
const (
	glyphObstacle  = '#'
	glyphPlant     = '*'
	glyphHerbivore = 'H'
	glyphCarnivore = 'C'
	glyphEmpty     = '.'
)

// Renderer owns the tcell screen and a key event channel.
type Renderer struct {
	screen tcell.Screen
	events chan tcell.Event
}

// New initializes the terminal screen.
func New() (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	r := &Renderer{
		screen: screen,
		events: make(chan tcell.Event, 8),
	}

	// Feed terminal events into a channel so the driver loop can select
	// between key presses and the autorun timer.
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			r.events <- ev
		}
	}()

	return r, nil
}

// Events returns the terminal event stream.
func (r *Renderer) Events() <-chan tcell.Event {
	return r.events
}

// Fini restores the terminal.
func (r *Renderer) Fini() {
	r.screen.Fini()
}

// Sync forces a full repaint, e.g. after a resize event.
func (r *Renderer) Sync() {
	r.screen.Sync()
}

// Draw paints the full frame: HUD, grid, event listing, and key help.
func (r *Renderer) Draw(sim *game.Simulation, autorun bool) {
	r.screen.Clear()

	grid := sim.Grid()

	// HUD
	mode := "paused"
	if autorun {
		mode = "autorun"
	}
	hud := fmt.Sprintf("Turn %d  Herbivores %d  Carnivores %d  Plants %d  [%s, %s]",
		sim.Turn(), sim.Herbivores(), sim.Carnivores(), sim.PlantCount(), sim.State(), mode)
	r.drawText(0, 0, hud, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Grid background
	const gridTop = 2
	emptyStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			r.screen.SetContent(x, gridTop+y, glyphEmpty, nil, emptyStyle)
		}
	}

	// Layers, lowest priority first: obstacles, plants, animals.
	obstacleStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for _, p := range sim.Obstacles() {
		r.screen.SetContent(p.X, gridTop+p.Y, glyphObstacle, nil, obstacleStyle)
	}

	plantStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	for _, p := range sim.Plants() {
		r.screen.SetContent(p.X, gridTop+p.Y, glyphPlant, nil, plantStyle)
	}

	herbStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	carnStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	sim.ForEachAnimal(func(pos components.Position, a components.Animal) {
		if a.Species == components.SpeciesCarnivore {
			r.screen.SetContent(pos.X, gridTop+pos.Y, glyphCarnivore, nil, carnStyle)
		} else if ch, _, _, _ := r.screen.GetContent(pos.X, gridTop+pos.Y); ch != glyphCarnivore {
			// Carnivores win shared cells; they are about to eat anyway.
			r.screen.SetContent(pos.X, gridTop+pos.Y, glyphHerbivore, nil, herbStyle)
		}
	})

	// Events of the last completed turn
	eventTop := gridTop + grid.Height + 1
	eventStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for i, e := range sim.Events() {
		r.drawText(0, eventTop+i, e.String(), eventStyle)
	}

	// Key help
	helpTop := eventTop + len(sim.Events()) + 1
	help := "[space] step  [a] autorun  [q] quit"
	if sim.IsCollapsed() {
		help = "Population collapsed. Press any key to exit."
	}
	r.drawText(0, helpTop, help, tcell.StyleDefault.Foreground(tcell.ColorTeal))

	r.screen.Show()
}

// drawText paints a string starting at (x, y).
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
