package model

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadPattern reads a grid from a pattern file: one row per line, '0' for a
// dead cell and '1' for a live one. Every row must have the same width, and
// the grid takes its dimensions from the file.
func LoadPattern(filename string) (*Grid, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] failed to read file: %+v", filename)
	}
	if len(data) == 0 {
		return nil, errors.Errorf("[LoadPattern] empty pattern file: %+v", filename)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	width := len(lines[0])

	var live []Cell
	for y, line := range lines {
		if len(line) != width {
			return nil, errors.Errorf("[LoadPattern] inconsistent row width on line %d: got %d, want %d", y+1, len(line), width)
		}
		for x, c := range line {
			switch c {
			case '0':
			case '1':
				live = append(live, Cell{X: x, Y: y})
			default:
				return nil, errors.Errorf("[LoadPattern] invalid character %q on line %d (expected 0/1)", c, y+1)
			}
		}
	}

	grid, err := NewGrid(width, len(lines), Pattern(live...))
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadPattern] bad pattern in file: %+v", filename)
	}
	return grid, nil
}

// SavePattern writes the grid to a pattern file in the same 0/1 row format
// that LoadPattern reads.
func SavePattern(g *Grid, filename string) error {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return errors.Wrapf(err, "[SavePattern] failed to write file: %+v", filename)
	}
	return nil
}

// AddGlider stamps a glider with its top-left corner at (startX, startY).
// Cells falling outside the grid are clipped.
func (g *Grid) AddGlider(startX, startY int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			g.setClipped(startX+x, startY+y, cell)
		}
	}
}

// AddBlinker stamps a horizontal blinker starting at (startX, startY).
func (g *Grid) AddBlinker(startX, startY int) {
	for i := 0; i < 3; i++ {
		g.setClipped(startX+i, startY, true)
	}
}
