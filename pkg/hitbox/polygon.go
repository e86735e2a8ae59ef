package hitbox

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objkit/pkg/math"
)

// Polygon is a 2D collision shape. Collision assumes the points form a
// convex polygon in order; concave input gives conservative results.
type Polygon struct {
	points      []math.Vec2 // model space
	transformed []math.Vec2 // world space, updated by Transform
}

// NewPolygon builds a polygon from a flat XY buffer.
// An odd trailing value is ignored.
func NewPolygon(xy []float32) *Polygon {
	n := len(xy) / 2
	p := &Polygon{
		points:      make([]math.Vec2, n),
		transformed: make([]math.Vec2, n),
	}
	for i := range p.points {
		p.points[i] = math.Vec2{X: xy[i*2], Y: xy[i*2+1]}
	}
	copy(p.transformed, p.points)
	return p
}

// Len returns the number of points.
func (p *Polygon) Len() int {
	return len(p.points)
}

// Points returns the transformed points. The slice is reused by Transform.
func (p *Polygon) Points() []math.Vec2 {
	return p.transformed
}

// Transform places the polygon in world space. Only the XY part of m is used.
func (p *Polygon) Transform(m mgl32.Mat4) {
	for i, v := range p.points {
		p.transformed[i] = math.Vec2{
			X: m[0]*v.X + m[4]*v.Y + m[12],
			Y: m[1]*v.X + m[5]*v.Y + m[13],
		}
	}
}

// Reset restores the untransformed points.
func (p *Polygon) Reset() {
	copy(p.transformed, p.points)
}

// Bounds returns the bounding box of the transformed points.
func (p *Polygon) Bounds() BoundBox2D {
	if len(p.transformed) == 0 {
		return BoundBox2D{}
	}
	lo, hi := p.transformed[0], p.transformed[0]
	for _, v := range p.transformed[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return BoundBox2D{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}

// Centroid returns the area centroid of the transformed points, or their
// mean if the polygon has no area.
func (p *Polygon) Centroid() math.Vec2 {
	n := len(p.transformed)
	if n == 0 {
		return math.Vec2{}
	}

	var area, cx, cy float32
	for i, a := range p.transformed {
		b := p.transformed[(i+1)%n]
		cross := a.Cross(b)
		area += cross
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	if area == 0 {
		var sum math.Vec2
		for _, v := range p.transformed {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float32(n))
	}
	area /= 2
	return math.Vec2{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Collides reports whether p and other overlap.
func (p *Polygon) Collides(other *Polygon) bool {
	_, ok := p.Collide(other)
	return ok
}

// Collide runs a separating axis test between p and other. On overlap it
// returns the minimum translation vector that moves p out of other.
// Touching shapes do not collide.
func (p *Polygon) Collide(other *Polygon) (math.Vec2, bool) {
	if len(p.transformed) == 0 || len(other.transformed) == 0 {
		return math.Vec2{}, false
	}
	if !p.Bounds().overlapsOrTouches(other.Bounds()) {
		return math.Vec2{}, false
	}

	best := float32(-1)
	var mtv math.Vec2
	for _, shape := range [2]*Polygon{p, other} {
		pts := shape.transformed
		for i, a := range pts {
			edge := pts[(i+1)%len(pts)].Sub(a)
			if edge.X == 0 && edge.Y == 0 {
				continue
			}
			axis := edge.Perp().Normalize()

			minA, maxA := project(p.transformed, axis)
			minB, maxB := project(other.transformed, axis)

			// Push p towards whichever side needs the shorter move.
			down := maxA - minB
			up := maxB - minA
			if down <= 0 || up <= 0 {
				return math.Vec2{}, false
			}
			depth, dir := up, axis
			if down < up {
				depth, dir = down, axis.Neg()
			}
			if best < 0 || depth < best {
				best = depth
				mtv = dir.Scale(depth)
			}
		}
	}
	if best < 0 {
		return math.Vec2{}, false
	}
	return mtv, true
}

// Outline returns line vertices for the closed polygon edges,
// format: [x, y, z] per vertex, z = 0.
func (p *Polygon) Outline() []float32 {
	n := len(p.transformed)
	out := make([]float32, 0, n*6)
	for i, a := range p.transformed {
		b := p.transformed[(i+1)%n]
		out = append(out, a.X, a.Y, 0, b.X, b.Y, 0)
	}
	return out
}

func project(pts []math.Vec2, axis math.Vec2) (lo, hi float32) {
	lo = pts[0].Dot(axis)
	hi = lo
	for _, v := range pts[1:] {
		d := v.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

func (b BoundBox2D) overlapsOrTouches(other BoundBox2D) bool {
	return b.X <= other.X+other.W &&
		other.X <= b.X+b.W &&
		b.Y <= other.Y+other.H &&
		other.Y <= b.Y+b.H
}
