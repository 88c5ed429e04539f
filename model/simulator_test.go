package model

import (
	"math/rand"
	"testing"
)

func assertCells(t *testing.T, g *Grid, want map[[2]int]bool) {
	t.Helper()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			alive, err := g.Get(x, y)
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", x, y, err)
			}
			if want[[2]int{x, y}] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, want[[2]int{x, y}])
			}
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	for _, policy := range []BoundaryPolicy{Fixed, Wrapped} {
		g := mustGrid(t, 6, 6,
			Cell{2, 2}, Cell{3, 2},
			Cell{2, 3}, Cell{3, 3},
		)
		initial := g.Clone()
		sim := NewSimulator(g, policy)
		for i := 0; i < 4; i++ {
			sim.Advance()
		}
		if !sim.Grid().Equal(initial) {
			t.Fatalf("2x2 block changed after 4 advances under %s policy", policy)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	sim := NewSimulator(mustGrid(t, 5, 5,
		Cell{1, 2}, Cell{2, 2}, Cell{3, 2},
	), Fixed)

	sim.Advance()
	assertCells(t, sim.Grid(), map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	})

	sim.Advance()
	assertCells(t, sim.Grid(), map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	})
}

func TestLoneCellDies(t *testing.T) {
	sim := NewSimulator(mustGrid(t, 5, 5, Cell{2, 2}), Fixed)
	sim.Advance()
	if got := sim.Grid().CountLivingCells(); got != 0 {
		t.Fatalf("%d living cells after advancing a lone cell, expected extinction", got)
	}
}

func TestReproduction(t *testing.T) {
	// An L-tromino completes into a 2x2 block: the empty corner has exactly
	// three live neighbors.
	sim := NewSimulator(mustGrid(t, 5, 5,
		Cell{1, 1}, Cell{2, 1},
		Cell{1, 2},
	), Fixed)
	sim.Advance()
	assertCells(t, sim.Grid(), map[[2]int]bool{
		{1, 1}: true,
		{2, 1}: true,
		{1, 2}: true,
		{2, 2}: true,
	})
}

func TestWrappedBoundaryAdvance(t *testing.T) {
	// Three live corners of a 4x4 board are mutually adjacent on a torus, so
	// the fourth corner is born there; with dead edges it stays empty.
	corners := []Cell{{0, 0}, {3, 0}, {0, 3}}

	wrapped := NewSimulator(mustGrid(t, 4, 4, corners...), Wrapped)
	wrapped.Advance()
	alive, err := wrapped.Grid().Get(3, 3)
	if err != nil {
		t.Fatalf("Get(3,3): %v", err)
	}
	if !alive {
		t.Fatal("corner (3,3) not born under wrapped policy")
	}

	fixed := NewSimulator(mustGrid(t, 4, 4, corners...), Fixed)
	fixed.Advance()
	alive, err = fixed.Grid().Get(3, 3)
	if err != nil {
		t.Fatalf("Get(3,3): %v", err)
	}
	if alive {
		t.Fatal("corner (3,3) born under fixed policy")
	}
}

func TestDeterminism(t *testing.T) {
	newSeeded := func() *Grid {
		g, err := NewGrid(20, 15, RandomFill(0.4, rand.New(rand.NewSource(7))))
		if err != nil {
			t.Fatalf("NewGrid: %v", err)
		}
		return g
	}

	a := NewSimulator(newSeeded(), Wrapped)
	b := NewSimulator(newSeeded(), Wrapped)
	for i := 0; i < 10; i++ {
		a.Advance()
		b.Advance()
		if !a.Grid().Equal(b.Grid()) {
			t.Fatalf("independently constructed simulators diverged at generation %d", a.Generation())
		}
	}
}

func TestGenerationMonotonicity(t *testing.T) {
	sim := NewSimulator(mustGrid(t, 5, 5, Cell{1, 2}, Cell{2, 2}, Cell{3, 2}), Fixed)
	if sim.Generation() != 0 {
		t.Fatalf("fresh simulator at generation %d, expected 0", sim.Generation())
	}
	for i := 1; i <= 5; i++ {
		sim.Advance()
		if sim.Generation() != i {
			t.Fatalf("generation %d after %d advances", sim.Generation(), i)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	newSeeded := func() *Grid {
		g, err := NewGrid(16, 16, RandomFill(0.5, rand.New(rand.NewSource(11))))
		if err != nil {
			t.Fatalf("NewGrid: %v", err)
		}
		return g
	}

	serial := NewSimulator(newSeeded(), Wrapped)
	parallel := NewSimulator(newSeeded(), Wrapped)
	parallel.SetParallel(true)

	for i := 0; i < 5; i++ {
		serial.Advance()
		parallel.Advance()
		if !serial.Grid().Equal(parallel.Grid()) {
			t.Fatalf("parallel advance diverged from serial at generation %d", serial.Generation())
		}
	}
}

func TestAdvanceWithPool(t *testing.T) {
	sim := NewSimulator(mustGrid(t, 5, 5, Cell{1, 2}, Cell{2, 2}, Cell{3, 2}), Fixed)
	sim.UsePool(NewGridPool())

	// Blinker has period 2, so an even number of pooled advances must land
	// back on the original orientation.
	for i := 0; i < 6; i++ {
		sim.Advance()
	}
	assertCells(t, sim.Grid(), map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	})
}

func TestCustomRule(t *testing.T) {
	extinguish := func(alive bool, neighbors int) bool { return false }
	sim := NewSimulatorWithRule(mustGrid(t, 6, 6,
		Cell{2, 2}, Cell{3, 2}, Cell{2, 3}, Cell{3, 3},
	), Fixed, extinguish)
	sim.Advance()
	if got := sim.Grid().CountLivingCells(); got != 0 {
		t.Fatalf("%d living cells after extinguishing rule, expected 0", got)
	}
}

func TestReseedKeepsGeneration(t *testing.T) {
	sim := NewSimulator(mustGrid(t, 5, 5, Cell{2, 2}), Fixed)
	for i := 0; i < 3; i++ {
		sim.Advance()
	}
	fresh := mustGrid(t, 5, 5, Cell{0, 0})
	sim.Reseed(fresh)
	if sim.Generation() != 3 {
		t.Fatalf("generation %d after reseed, expected 3", sim.Generation())
	}
	if sim.Grid() != fresh {
		t.Fatal("reseed did not install the new grid")
	}
}
