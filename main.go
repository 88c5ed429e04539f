package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifegrid/golife/model"
	"github.com/lifegrid/golife/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "golife: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "config.json", "path to the JSON configuration file")
		boundary   = flag.String("boundary", "", "boundary policy: fixed or wrapped (overrides config)")
		seed       = flag.Int64("seed", 0, "random seed for grid seeding; 0 seeds from the clock (overrides config)")
		width      = flag.Int("width", 0, "grid width (overrides config)")
		height     = flag.Int("height", 0, "grid height (overrides config)")
		saveFile   = flag.String("save", "", "write the final grid to this pattern file on exit (overrides config)")
	)
	flag.Parse()

	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}
	applyFlagOverrides(&config, *boundary, *seed, *width, *height, *saveFile, flag.Arg(0))

	policy, err := model.ParseBoundaryPolicy(config.Boundary)
	if err != nil {
		return err
	}

	sim, rng, err := initializeSimulator(config, policy)
	if err != nil {
		return err
	}

	stats := utils.NewStats()
	renderer := model.NewTerminalRenderer(os.Stdout)

	printGameInfo(config)
	renderer.Prepare()
	loopErr := runLoop(sim, rng, renderer, config, stats)
	renderer.Restore()
	if loopErr != nil {
		return loopErr
	}

	printFinalStats(sim, stats)

	if config.SaveFile != "" {
		if err := model.SavePattern(sim.Grid(), config.SaveFile); err != nil {
			return err
		}
		fmt.Printf("Saved final grid to %s\n", config.SaveFile)
	}
	return nil
}

// runLoop drives the simulation: render the current generation, pace the
// frame, advance, repeat until an interrupt or the generation cap.
func runLoop(
	sim *model.Simulator,
	rng *rand.Rand,
	renderer *model.TerminalRenderer,
	config utils.Config,
	stats *utils.Stats,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	commands := readCommands(os.Stdin)
	history := model.NewStateHistory(config.StagnationThreshold)
	state := &controlState{}

	var (
		stagnantCount = 0
		lastFrameTime = time.Now()
		note          = ""
	)

	for {
		select {
		case <-sigChan:
			return nil
		case cmd, ok := <-commands:
			if !ok {
				// stdin closed; keep running on signals alone.
				commands = nil
				break
			}
			keepRunning, err := applyCommand(cmd, sim, rng, config, state)
			if err != nil {
				return err
			}
			if !keepRunning {
				return nil
			}
			if cmd == 'l' || cmd == 'r' {
				// The board was replaced; stale history would flag an
				// instant restart.
				history.Reset()
				stagnantCount = 0
			}
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		grid := sim.Grid()
		livingCells := grid.CountLivingCells()

		if !state.paused {
			stats.Update(sim.Generation(), livingCells, time.Since(lastFrameTime))
			lastFrameTime = frameStart

			if history.Stagnant(grid) {
				stagnantCount++
			} else {
				stagnantCount = 0
			}
			history.Observe(grid)
		}

		renderer.Display(grid, statusLine(sim, livingCells, stats, state.paused, note))
		note = ""

		if config.MaxGenerations > 0 && sim.Generation() >= config.MaxGenerations {
			return nil
		}

		if state.paused {
			time.Sleep(config.FrameRate)
			continue
		}

		if shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, config); shouldRestart && config.AutoRestart {
			if err := reseedSimulator(sim, rng, config); err != nil {
				return err
			}
			history.Reset()
			stagnantCount = 0
			note = "restarted: " + reason
		}

		sim.Advance()
		time.Sleep(config.FrameRate)
	}
}
