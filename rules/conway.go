package rules

// Rule decides the next state of a cell from its current state and the
// number of live neighbors. The grid and advance loop are rule-agnostic, so
// swapping in a different Rule changes the automaton without touching them.
type Rule func(alive bool, neighbors int) bool

/*
Conway applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func Conway(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
