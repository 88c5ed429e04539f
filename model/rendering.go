package model

import (
	"fmt"
	"io"
	"strings"
)

const (
	gridPosBlock = "█"
	gridPosEmpty = " "

	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	cursorHome     = "\x1b[H"
	clearScreen    = "\x1b[2J"
	eraseToEOL     = "\x1b[K"
)

// TerminalRenderer draws grids as text frames using ANSI escape sequences.
type TerminalRenderer struct {
	out io.Writer
}

// NewTerminalRenderer creates a renderer writing to out, normally stdout.
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// Prepare switches the terminal to the alternate screen and hides the
// cursor. Pair with Restore before the process exits.
func (r *TerminalRenderer) Prepare() {
	fmt.Fprint(r.out, enterAltScreen, hideCursor, clearScreen)
}

// Restore undoes Prepare, returning the terminal to its normal screen.
func (r *TerminalRenderer) Restore() {
	fmt.Fprint(r.out, showCursor, leaveAltScreen)
}

// Display renders one frame: live cells as filled blocks, dead cells as
// blanks, one grid row per line, with an optional status line underneath.
// The frame is assembled up front and written in a single call so the
// terminal never shows a half-drawn generation.
func (r *TerminalRenderer) Display(g *Grid, status string) {
	var b strings.Builder
	b.Grow(g.width*g.height + len(status) + 64)

	b.WriteString(cursorHome)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				b.WriteString(gridPosBlock)
			} else {
				b.WriteString(gridPosEmpty)
			}
		}
		b.WriteString(eraseToEOL)
		b.WriteString("\n")
	}
	if status != "" {
		b.WriteString(status)
		b.WriteString(eraseToEOL)
		b.WriteString("\n")
	}

	fmt.Fprint(r.out, b.String())
}
