package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lifegrid/golife/rules"
)

// Simulator exclusively owns generation sequencing for a grid: each advance
// evaluates the transition rule against a frozen copy of the current
// generation, writes the results into a separate buffer, and swaps the
// buffer in as one step. The generation counter starts at 0 and increases by
// exactly 1 per advance.
type Simulator struct {
	grid       *Grid
	policy     BoundaryPolicy
	rule       rules.Rule
	pool       *GridPool
	parallel   bool
	generation int
}

// NewSimulator creates a simulator running the standard Conway rule.
func NewSimulator(grid *Grid, policy BoundaryPolicy) *Simulator {
	return NewSimulatorWithRule(grid, policy, rules.Conway)
}

// NewSimulatorWithRule creates a simulator with a custom transition rule.
// The boundary policy is fixed for the simulator's lifetime; a nil rule
// falls back to Conway.
func NewSimulatorWithRule(grid *Grid, policy BoundaryPolicy, rule rules.Rule) *Simulator {
	if rule == nil {
		rule = rules.Conway
	}
	return &Simulator{grid: grid, policy: policy, rule: rule}
}

// UsePool recycles next-generation buffers through the given pool.
func (s *Simulator) UsePool(pool *GridPool) { s.pool = pool }

// SetParallel toggles row-band parallel evaluation.
func (s *Simulator) SetParallel(parallel bool) { s.parallel = parallel }

// Grid returns the current generation's grid.
func (s *Simulator) Grid() *Grid { return s.grid }

// Generation returns the number of advances applied so far.
func (s *Simulator) Generation() int { return s.generation }

// Policy returns the boundary policy chosen at construction.
func (s *Simulator) Policy() BoundaryPolicy { return s.policy }

// Advance computes the next generation and swaps it in, returning the new
// current grid. Every cell is evaluated against the current generation only;
// a partially written next generation is never visible to neighbor counting,
// so the rule applies simultaneously across the whole board.
func (s *Simulator) Advance() *Grid {
	next := s.nextBuffer()
	if s.parallel {
		s.stepParallel(next)
	} else {
		for y := 0; y < s.grid.height; y++ {
			s.stepRow(next, y)
		}
	}

	prev := s.grid
	s.grid = next
	s.generation++
	if s.pool != nil {
		s.pool.Put(prev)
	}
	return s.grid
}

// Reseed replaces the current grid, e.g. when the driver restarts a stagnant
// or extinct board. The generation counter keeps counting up.
func (s *Simulator) Reseed(grid *Grid) {
	prev := s.grid
	s.grid = grid
	if s.pool != nil && prev != grid {
		s.pool.Put(prev)
	}
}

func (s *Simulator) nextBuffer() *Grid {
	if s.pool != nil {
		return s.pool.Get(s.grid.width, s.grid.height)
	}
	return newEmptyGrid(s.grid.width, s.grid.height)
}

// stepRow writes next states for one row, reading only the current grid.
func (s *Simulator) stepRow(next *Grid, y int) {
	for x := 0; x < s.grid.width; x++ {
		var neighbors int
		if s.policy == Wrapped {
			neighbors = s.grid.countNeighborsWrapped(x, y)
		} else {
			neighbors = s.grid.countNeighborsFixed(x, y)
		}
		next.cells[y][x] = s.rule(s.grid.cells[y][x], neighbors)
	}
}

// stepParallel splits the rows into bands, one goroutine per band. Each
// worker reads only the frozen current grid and writes only its own rows;
// Wait is the barrier before the buffer swap.
func (s *Simulator) stepParallel(next *Grid) {
	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (s.grid.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, s.grid.height)
		)
		if startRow >= s.grid.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				s.stepRow(next, y)
			}
			return nil
		})
	}

	// Workers never fail; Wait only serves as the join point.
	_ = eg.Wait()
}
