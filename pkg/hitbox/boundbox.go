// Package hitbox provides 2D bounding boxes and collision polygons built from
// projected mesh positions.
package hitbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objkit/pkg/math"
)

// BoundBox2D is an axis-aligned rectangle. (X, Y) is the minimum corner.
type BoundBox2D struct {
	X, Y, W, H float32
}

// BoundsOf computes the bounding box of a flat XY buffer in one pass.
// A single point yields a zero-area box. It returns false for an empty buffer.
func BoundsOf(xy []float32) (BoundBox2D, bool) {
	if len(xy) < 2 {
		return BoundBox2D{}, false
	}

	minX, minY := xy[0], xy[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(xy); i += 2 {
		x, y := xy[i], xy[i+1]
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	return BoundBox2D{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// Min returns the minimum corner.
func (b BoundBox2D) Min() math.Vec2 {
	return math.Vec2{X: b.X, Y: b.Y}
}

// Max returns the maximum corner.
func (b BoundBox2D) Max() math.Vec2 {
	return math.Vec2{X: b.X + b.W, Y: b.Y + b.H}
}

// Center returns the centre point.
func (b BoundBox2D) Center() math.Vec2 {
	return math.Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Corners returns the four corners counter-clockwise from the minimum.
func (b BoundBox2D) Corners() [4]math.Vec2 {
	return [4]math.Vec2{
		{X: b.X, Y: b.Y},
		{X: b.X + b.W, Y: b.Y},
		{X: b.X + b.W, Y: b.Y + b.H},
		{X: b.X, Y: b.Y + b.H},
	}
}

// Collides reports whether two boxes overlap. Touching edges do not count.
func (b BoundBox2D) Collides(other BoundBox2D) bool {
	return b.X < other.X+other.W &&
		b.X+b.W > other.X &&
		b.Y < other.Y+other.H &&
		b.Y+b.H > other.Y
}

// Contains reports whether a point lies inside the box or on its edge.
func (b BoundBox2D) Contains(x, y float32) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Transform returns the bounding box of the four transformed corners.
func (b BoundBox2D) Transform(m mgl32.Mat4) BoundBox2D {
	corners := b.Corners()
	var xy [8]float32
	for i, c := range corners {
		v := m.Mul4x1(mgl32.Vec4{c.X, c.Y, 0, 1})
		xy[i*2] = v.X()
		xy[i*2+1] = v.Y()
	}
	out, _ := BoundsOf(xy[:])
	return out
}

// Outline returns line vertices for the box edges.
// Returns 8 vertices (4 edges × 2 endpoints), format: [x, y, z] per vertex, z = 0.
func (b BoundBox2D) Outline() []float32 {
	minX, minY := b.X, b.Y
	maxX, maxY := b.X+b.W, b.Y+b.H
	return []float32{
		minX, minY, 0, maxX, minY, 0,
		maxX, minY, 0, maxX, maxY, 0,
		maxX, maxY, 0, minX, maxY, 0,
		minX, maxY, 0, minX, minY, 0,
	}
}

// String returns a human-readable representation.
func (b BoundBox2D) String() string {
	return fmt.Sprintf("BoundBox2D{x=%g y=%g w=%g h=%g}", b.X, b.Y, b.W, b.H)
}
