package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/handstream/handstream/internal/mapper"
)

// Terminal cell grid the viewport is downscaled into.
const (
	gridCols = 72
	gridRows = 20
)

// TerminalRenderer redraws a view into a terminal: a block of labeled fields
// followed by a character-cell projection of the viewport with the hand
// marker(s). Rendering is synchronous and fire-and-forget; a failed write is
// repaired by the next redraw.
type TerminalRenderer struct {
	w io.Writer
}

func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

// RenderHand redraws the single-hand page.
func (r *TerminalRenderer) RenderHand(v *HandView) {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString("Hand Tracking\n\n")
	fmt.Fprintf(&b, "  X Position: %s\n", v.X)
	fmt.Fprintf(&b, "  Y Position: %s\n", v.Y)
	fmt.Fprintf(&b, "  Z Position: %s\n", v.Z)
	fmt.Fprintf(&b, "  Chirality:  %s\n", v.Chirality)
	fmt.Fprintf(&b, "  Gesture:    %s\n", v.Gesture)
	fmt.Fprintf(&b, "  Timestamp:  %s\n\n", v.Timestamp)

	r.drawGrid(&b, v.Viewport(), markerCell{v.Marker, 'o'})
	io.WriteString(r.w, b.String())
}

// RenderTracking redraws the two-hand page.
func (r *TerminalRenderer) RenderTracking(v *TrackView) {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString("Hand Tracking (two hands)\n\n")
	fmt.Fprintf(&b, "  Left  x=%s y=%s z=%s gesture=%s t=%s\n",
		v.Left.X, v.Left.Y, v.Left.Z, v.Left.Gesture, v.Left.Timestamp)
	fmt.Fprintf(&b, "  Right x=%s y=%s z=%s gesture=%s t=%s\n",
		v.Right.X, v.Right.Y, v.Right.Z, v.Right.Gesture, v.Right.Timestamp)
	fmt.Fprintf(&b, "  Complex gesture: %s (t=%s)\n\n",
		v.ComplexGesture, v.ComplexTimestamp)

	r.drawGrid(&b, v.Viewport(),
		markerCell{v.Left.Marker, 'L'},
		markerCell{v.Right.Marker, 'R'})
	io.WriteString(r.w, b.String())
}

type markerCell struct {
	m Marker
	c byte
}

// drawGrid projects pixel-space markers into the cell grid. Off-viewport
// markers simply fall outside the grid and are not drawn, matching the
// unclamped coordinate mapping.
func (r *TerminalRenderer) drawGrid(b *strings.Builder, vp mapper.Viewport, markers ...markerCell) {
	grid := make([][]byte, gridRows)
	for row := range grid {
		grid[row] = []byte(strings.Repeat(".", gridCols))
	}

	for _, mk := range markers {
		col := int(math.Floor(mk.m.X / vp.Width * gridCols))
		row := int(math.Floor(mk.m.Y / vp.Height * gridRows))
		if col < 0 || col >= gridCols || row < 0 || row >= gridRows {
			continue
		}
		grid[row][col] = mk.c
	}

	for _, row := range grid {
		b.WriteString("  ")
		b.Write(row)
		b.WriteByte('\n')
	}
}
