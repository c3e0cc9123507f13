// Package core provides fundamental types and utilities for the voiceflap
// host. It contains no external dependencies (especially no Bubble Tea) to
// keep game logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Viewport maps continuous world coordinates onto terminal cells.
// Terminal cells are roughly twice as tall as they are wide, so one
// column covers half the world distance of one row.
type Viewport struct {
	UnitsPerRow float64
	OffsetY     int // Row of world y = 0
}

// NewViewport fits worldH world units into rows terminal rows.
func NewViewport(worldH float64, rows, offsetY int) Viewport {
	if rows < 1 {
		rows = 1
	}
	return Viewport{
		UnitsPerRow: worldH / float64(rows),
		OffsetY:     offsetY,
	}
}

// Col returns the column containing world x.
func (v Viewport) Col(x float64) int {
	return int(math.Floor(x / (v.UnitsPerRow / 2)))
}

// Row returns the row containing world y.
func (v Viewport) Row(y float64) int {
	return v.OffsetY + int(math.Floor(y/v.UnitsPerRow))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
