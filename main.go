package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/game"
	"github.com/pthm-cable/meadow/render"
	"github.com/pthm-cable/meadow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without the terminal view")
	logStats := flag.Bool("log-stats", false, "Log per-turn state and events")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in turns (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTurns := flag.Int("max-turns", 0, "Stop after N turns (0 = run until collapse)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stderr so it never fights the terminal view)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	windowTurns := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		windowTurns = *statsWindow
	}

	sim, err := game.NewSimulation(game.OptionsFromConfig(cfg, rngSeed))
	if err != nil {
		slog.Error("failed to initialize simulation", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(sim, cfg, windowTurns, *outputDir, *logStats, *maxTurns, rngSeed)
		return
	}

	if err := runInteractive(sim, cfg, *maxTurns); err != nil {
		slog.Error("terminal view failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation to collapse or the turn limit, with
// telemetry windows flushed to CSV when an output directory is set.
func runHeadless(sim *game.Simulation, cfg *config.Config, windowTurns int, outputDir string, logStats bool, maxTurns int, seed int64) {
	collector := telemetry.NewCollector(windowTurns)
	sim.SetCollector(collector)

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("starting headless run",
		"seed", seed,
		"grid", cfg.Grid,
		"stats_window", windowTurns,
		"max_turns", maxTurns,
	)

	for !sim.IsCollapsed() {
		if maxTurns > 0 && sim.Turn() >= maxTurns {
			slog.Info("max turns reached", "turn", sim.Turn())
			break
		}

		sim.Step()

		if logStats {
			sim.LogTurn()
		}

		if collector.ShouldFlush(sim.Turn()) {
			stats := collector.Flush(sim.Turn(), sim.Sample())
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
		}
	}

	slog.Info("run finished",
		"turns", sim.Turn(),
		"state", sim.State().String(),
		"herbivores", sim.Herbivores(),
		"carnivores", sim.Carnivores(),
		"plants", sim.PlantCount(),
	)
}

// runInteractive drives the simulation from the terminal: one turn per key
// press, or timed turns while autorun is on.
func runInteractive(sim *game.Simulation, cfg *config.Config, maxTurns int) error {
	r, err := render.New()
	if err != nil {
		return err
	}
	defer r.Fini()

	delay := time.Duration(cfg.Render.AutorunDelayMs) * time.Millisecond
	autorun := false

	for {
		r.Draw(sim, autorun)

		if sim.IsCollapsed() || (maxTurns > 0 && sim.Turn() >= maxTurns) {
			// Final frame stays up until a key is pressed.
			<-r.Events()
			return nil
		}

		if autorun {
			select {
			case ev := <-r.Events():
				if quit := handleKey(ev, r, &autorun); quit {
					return nil
				}
			case <-time.After(delay):
				sim.Step()
			}
			continue
		}

		ev := <-r.Events()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'a':
				autorun = true
			case ev.Key() == tcell.KeyRune && ev.Rune() == ' ', ev.Key() == tcell.KeyEnter:
				sim.Step()
			}
		case *tcell.EventResize:
			r.Sync()
		}
	}
}

// handleKey processes a key event during autorun. Returns true to quit.
func handleKey(ev tcell.Event, r *render.Renderer, autorun *bool) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'a':
			*autorun = false
		}
	case *tcell.EventResize:
		r.Sync()
	}
	return false
}
