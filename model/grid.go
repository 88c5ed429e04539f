package model

import (
	"math/rand"

	"github.com/pkg/errors"
)

// BoundaryPolicy controls how neighbor lookups treat coordinates beyond the
// grid edges. It is chosen when a Simulator is constructed and never changes
// afterward, since the two policies produce different populations near edges.
type BoundaryPolicy int

const (
	// Fixed treats out-of-range neighbors as permanently dead.
	Fixed BoundaryPolicy = iota
	// Wrapped maps out-of-range neighbors modulo the grid extent, so the
	// board behaves as a torus.
	Wrapped
)

// String returns the policy name as used in configuration.
func (p BoundaryPolicy) String() string {
	if p == Wrapped {
		return "wrapped"
	}
	return "fixed"
}

// ParseBoundaryPolicy maps a configuration value onto a policy. The empty
// string selects Fixed, matching the default configuration.
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	switch name {
	case "", "fixed":
		return Fixed, nil
	case "wrapped":
		return Wrapped, nil
	}
	return Fixed, errors.Errorf("[ParseBoundaryPolicy] unknown boundary policy: %q", name)
}

// Cell is a single grid coordinate, used by the Pattern seed strategy.
type Cell struct {
	X int
	Y int
}

// Seeder writes an initial configuration into a freshly allocated grid.
type Seeder func(g *Grid) error

// AllDead leaves every cell dead.
func AllDead(_ *Grid) error { return nil }

// RandomFill seeds each cell alive with probability density, drawing from
// the provided source so a run can be reproduced from its seed.
func RandomFill(density float64, rng *rand.Rand) Seeder {
	return func(g *Grid) error {
		if density < 0 || density > 1 {
			return errors.Errorf("[RandomFill] density %v outside [0,1]", density)
		}
		if rng == nil {
			return errors.New("[RandomFill] nil random source")
		}
		g.Randomize(density, rng)
		return nil
	}
}

// Pattern seeds an explicit set of live cells. A coordinate outside the grid
// is a construction error, not silently dropped.
func Pattern(cells ...Cell) Seeder {
	return func(g *Grid) error {
		for _, c := range cells {
			if err := g.Set(c.X, c.Y, true); err != nil {
				return errors.Wrap(err, "[Pattern] seed cell")
			}
		}
		return nil
	}
}

// Grid represents the game board: a dense width x height field of alive/dead
// cells. It knows nothing about rules or rendering; the Simulator owns all
// generation sequencing.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates a grid with the specified dimensions and initial seed.
// Both dimensions must be positive; they are never clamped.
func NewGrid(width, height int, seed Seeder) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("[NewGrid] invalid dimensions %dx%d: both must be positive", width, height)
	}
	g := newEmptyGrid(width, height)
	if seed == nil {
		seed = AllDead
	}
	if err := seed(g); err != nil {
		return nil, err
	}
	return g, nil
}

// newEmptyGrid allocates an all-dead grid. Callers validate dimensions.
func newEmptyGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the width of the grid
func (g *Grid) Width() int { return g.width }

// Height returns the height of the grid
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) boundsError(op string, x, y int) error {
	return errors.Errorf("[%s] coordinate (%d,%d) outside %dx%d grid", op, x, y, g.width, g.height)
}

// Get returns the state of a cell. Coordinates must lie inside the grid;
// edge-adjacent lookups go through CountLiveNeighbors, where the boundary
// policy decides what lies beyond the edges.
func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, g.boundsError("Get", x, y)
	}
	return g.cells[y][x], nil
}

// Set sets a cell to alive (true) or dead (false). Used during seeding and
// by the Simulator when constructing the next generation.
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inBounds(x, y) {
		return g.boundsError("Set", x, y)
	}
	g.cells[y][x] = alive
	return nil
}

// setClipped writes a cell if it is in range and ignores it otherwise, so
// pattern stamps can overlap a grid edge.
func (g *Grid) setClipped(x, y int, alive bool) {
	if g.inBounds(x, y) {
		g.cells[y][x] = alive
	}
}

// CountLiveNeighbors counts the live cells in the Moore neighborhood of
// (x, y). The result is always in [0,8]. Out-of-range neighbors are governed
// by the policy; an out-of-range center cell is an error.
func (g *Grid) CountLiveNeighbors(x, y int, policy BoundaryPolicy) (int, error) {
	if !g.inBounds(x, y) {
		return 0, g.boundsError("CountLiveNeighbors", x, y)
	}
	if policy == Wrapped {
		return g.countNeighborsWrapped(x, y), nil
	}
	return g.countNeighborsFixed(x, y), nil
}

// countNeighborsFixed counts living neighbors with the edges clamped, so
// cells beyond the boundary never contribute.
func (g *Grid) countNeighborsFixed(x, y int) int {
	count := 0

	// Calculate bounds once using efficient integer min/max
	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// countNeighborsWrapped counts living neighbors on a toroidal board.
func (g *Grid) countNeighborsWrapped(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + g.width) % g.width
			ny := (y + dy + g.height) % g.height
			if g.cells[ny][nx] {
				count++
			}
		}
	}
	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Randomize fills the grid with random living cells at the given density.
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[y][x] = rng.Float64() < density
		}
	}
}

// Clear clears all cells
func (g *Grid) Clear() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[y][x] = false
		}
	}
}

// Reset resets the grid to new dimensions, reusing row storage when the
// shape already matches. Used by GridPool when recycling buffers.
func (g *Grid) Reset(width, height int) {
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			for j := range g.cells[i] {
				g.cells[i][j] = false
			}
		}
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := newEmptyGrid(g.width, g.height)
	for y := 0; y < g.height; y++ {
		copy(c.cells[y], g.cells[y])
	}
	return c
}

// Equal reports whether two grids have identical dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
