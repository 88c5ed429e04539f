package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/lifegrid/golife/model"
	"github.com/lifegrid/golife/utils"
)

// applyFlagOverrides layers command-line values over the config file. Zero
// values mean the flag was not set.
func applyFlagOverrides(
	config *utils.Config,
	boundary string,
	seed int64,
	width, height int,
	saveFile, patternFile string,
) {
	if boundary != "" {
		config.Boundary = boundary
	}
	if seed != 0 {
		config.Seed = seed
	}
	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	if saveFile != "" {
		config.SaveFile = saveFile
	}
	if patternFile != "" {
		config.PatternFile = patternFile
	}
}

// newRNG builds the injected random source used for all grid seeding; a
// zero seed draws from the clock.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// initializeSimulator seeds the starting grid and wires up the simulator.
// A pattern file takes precedence over random seeding; when it cannot be
// loaded the driver warns and falls back to a random grid.
func initializeSimulator(config utils.Config, policy model.BoundaryPolicy) (*model.Simulator, *rand.Rand, error) {
	rng := newRNG(config.Seed)

	var grid *model.Grid
	if config.PatternFile != "" {
		loaded, err := model.LoadPattern(config.PatternFile)
		if err != nil {
			fmt.Printf("Error while loading pattern: %v. Creating random grid.\n", err)
			time.Sleep(2 * time.Second)
		} else {
			grid = loaded
		}
	}
	if grid == nil {
		var err error
		grid, err = model.NewGrid(config.Width, config.Height, model.RandomFill(config.RandomDensity, rng))
		if err != nil {
			return nil, nil, err
		}
	}

	sim := model.NewSimulator(grid, policy)
	sim.SetParallel(config.UseParallel)
	if config.UseMemoryPool {
		sim.UsePool(model.NewGridPool())
	}
	return sim, rng, nil
}

// controlState holds the driver-side toggles the control keys act on: the
// pause flag and the in-memory grid snapshot.
type controlState struct {
	paused   bool
	snapshot *model.Grid
}

// applyCommand executes one control key against the simulator: p pauses,
// s saves a snapshot, l loads it, r restarts with a fresh random board,
// q quits. It reports whether the loop should keep running.
func applyCommand(
	cmd byte,
	sim *model.Simulator,
	rng *rand.Rand,
	config utils.Config,
	state *controlState,
) (bool, error) {
	switch cmd {
	case 'p':
		state.paused = !state.paused
	case 's':
		state.snapshot = sim.Grid().Clone()
	case 'l':
		if state.snapshot != nil {
			// Clone so a later load starts from the same saved state even
			// after this board evolves.
			sim.Reseed(state.snapshot.Clone())
		}
	case 'r':
		if err := reseedSimulator(sim, rng, config); err != nil {
			return false, err
		}
	case 'q':
		return false, nil
	}
	return true, nil
}

// readCommands forwards single-character commands typed on stdin. The
// terminal stays in its normal line-buffered mode, so each key needs a
// newline after it; the channel closes when stdin does.
func readCommands(in io.Reader) <-chan byte {
	ch := make(chan byte)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if line == "" {
				continue
			}
			ch <- line[0]
		}
	}()
	return ch
}

// printGameInfo shows the controls before the alternate screen takes over.
func printGameInfo(config utils.Config) {
	fmt.Printf("Grid: %dx%d | Boundary: %s\n", config.Width, config.Height, config.Boundary)
	fmt.Println("Keys (press Enter after each): p pause, s save state, l load state, r restart, q quit")
	fmt.Println("Press Ctrl+C to exit gracefully")
	time.Sleep(2 * time.Second)
}

// statusLine formats the per-frame status shown under the board.
func statusLine(sim *model.Simulator, livingCells int, stats *utils.Stats, paused bool, note string) string {
	grid := sim.Grid()
	density := float64(livingCells) / float64(grid.Width()*grid.Height()) * 100
	line := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Boundary: %s | %.1f gen/sec",
		sim.Generation(), livingCells, density, sim.Policy(), stats.GenerationsPerSecond)
	if paused {
		line += " | Paused"
	}
	if note != "" {
		line += " | " + note
	}
	return line
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// reseedSimulator replaces the board with a fresh random grid drawn from the
// same injected source, keeping a fixed-seed run reproducible end to end.
func reseedSimulator(sim *model.Simulator, rng *rand.Rand, config utils.Config) error {
	grid := sim.Grid()
	fresh, err := model.NewGrid(grid.Width(), grid.Height(), model.RandomFill(config.RandomDensity, rng))
	if err != nil {
		return err
	}
	sim.Reseed(fresh)
	return nil
}

// printFinalStats reports the run summary once the terminal is restored.
func printFinalStats(sim *model.Simulator, stats *utils.Stats) {
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		sim.Generation(), time.Since(stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
