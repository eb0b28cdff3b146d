// Package core provides fundamental types and utilities shared by the runner
// simulation and the terminal platform. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect represents an integer axis-aligned rectangle in screen cells.
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

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Box is a floating point axis-aligned bounding box in field units.
// The origin is the top-left corner of the playing field.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a bounding box. Negative sizes are clamped to zero.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: math.Max(w, 0), H: math.Max(h, 0)}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether two boxes overlap.
// Boxes that only share an edge do not overlap.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Scale maps the box from a field of fieldW x fieldH units onto a screen of
// screenW x screenH cells. Every non-empty box covers at least one cell.
func (b Box) Scale(fieldW, fieldH float64, screenW, screenH int) Rect {
	if fieldW <= 0 || fieldH <= 0 {
		return Rect{}
	}
	sx := float64(screenW) / fieldW
	sy := float64(screenH) / fieldH

	x := int(math.Floor(b.X * sx))
	y := int(math.Floor(b.Y * sy))
	w := int(math.Round(b.W * sx))
	h := int(math.Round(b.H * sy))
	if b.W > 0 && w < 1 {
		w = 1
	}
	if b.H > 0 && h < 1 {
		h = 1
	}
	return NewRect(x, y, w, h)
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

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
