package model

import (
	"crypto/md5"
	"fmt"
)

// Hash returns an md5 digest of the cell states, used for cheap state
// comparison in stagnation detection.
func (g *Grid) Hash() string {
	h := md5.New()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// StateHistory tracks recent grid hashes so the driver can notice when the
// board has gone static or fallen into a short cycle.
type StateHistory struct {
	hashes []string
	depth  int
}

// NewStateHistory creates a history keeping the last depth states.
func NewStateHistory(depth int) *StateHistory {
	if depth < 3 {
		depth = 3
	}
	return &StateHistory{depth: depth}
}

// Observe records the grid's current state.
func (h *StateHistory) Observe(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > h.depth {
		h.hashes = h.hashes[1:]
	}
}

// Stagnant reports whether the grid matches any of the last three observed
// states, covering static boards and period-2/3 oscillator lock-in.
func (h *StateHistory) Stagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}
	current := g.Hash()
	for i := 1; i <= 3 && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all observed states, e.g. after the board is reseeded.
func (h *StateHistory) Reset() {
	h.hashes = nil
}
