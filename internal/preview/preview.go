// Package preview rasterizes the XY projection of a parsed object into an
// image for quick inspection.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"slices"

	"golang.org/x/image/vector"

	"github.com/Faultbox/objkit/pkg/hitbox"
	"github.com/Faultbox/objkit/pkg/math"
	"github.com/Faultbox/objkit/pkg/wavefront"
)

// ErrNothingToDraw is returned for objects without a mesh or an XY plane.
var ErrNothingToDraw = errors.New("nothing to draw")

// Options controls the output image.
type Options struct {
	Width   int
	Height  int
	Padding int

	Background color.Color
	Fill       color.Color
	Outline    color.Color // bound box frame; nil disables it
	Hitbox     color.Color // hitbox polygon outline; nil disables it
}

// DefaultOptions returns a 512x512 image with a light background.
func DefaultOptions() Options {
	return Options{
		Width:      512,
		Height:     512,
		Padding:    16,
		Background: color.White,
		Fill:       color.RGBA{R: 0x60, G: 0x70, B: 0x80, A: 0xff},
		Outline:    color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff},
		Hitbox:     color.RGBA{R: 0x20, G: 0xa0, B: 0x40, A: 0xff},
	}
}

// Render draws the mesh of md seen from +Z. Triangles are filled, lines are
// stroked and points are drawn as small squares. The drawing is scaled to
// fit the bound box inside the padded image.
func Render(md *wavefront.MeshData, opts Options) (*image.RGBA, error) {
	if md == nil || md.Mesh == nil || md.Mesh.VertexCount() == 0 {
		return nil, ErrNothingToDraw
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if 2*opts.Padding >= opts.Width || 2*opts.Padding >= opts.Height {
		return nil, fmt.Errorf("padding %d leaves no room in %dx%d", opts.Padding, opts.Width, opts.Height)
	}

	mesh := md.Mesh
	if mesh.Components.Position < 2 {
		return nil, ErrNothingToDraw
	}
	xy := make([]float32, 0, mesh.VertexCount()*2)
	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Position(i)
		xy = append(xy, p[0], p[1])
	}

	box, ok := hitbox.BoundsOf(xy)
	if !ok {
		return nil, ErrNothingToDraw
	}
	if md.BoundBox != nil {
		box = *md.BoundBox
	}
	vp := newViewport(box, opts)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	c := &canvas{
		dst: img,
		z:   vector.NewRasterizer(opts.Width, opts.Height),
	}

	pts := make([]math.Vec2, len(xy)/2)
	for i := range pts {
		pts[i] = vp.project(math.Vec2{X: xy[2*i], Y: xy[2*i+1]})
	}

	switch mesh.Primitive {
	case wavefront.PrimitiveTriangles:
		for i := 0; i+2 < len(pts); i += 3 {
			c.polygon(pts[i], pts[i+1], pts[i+2])
		}
	case wavefront.PrimitiveLines:
		for i := 0; i+1 < len(pts); i += 2 {
			c.segment(pts[i], pts[i+1], 1)
		}
	default:
		for _, p := range pts {
			c.square(p, 1.5)
		}
	}
	c.flush(opts.Fill)

	if opts.Hitbox != nil && md.Hitbox != nil && md.Hitbox.Len() > 1 {
		hp := md.Hitbox.Points()
		for i := range hp {
			c.segment(vp.project(hp[i]), vp.project(hp[(i+1)%len(hp)]), 0.75)
		}
		c.flush(opts.Hitbox)
	}

	if opts.Outline != nil {
		corners := box.Corners()
		for i := range corners {
			c.segment(vp.project(corners[i]), vp.project(corners[(i+1)%len(corners)]), 1)
		}
		c.flush(opts.Outline)
	}

	return img, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG renders md and saves it to path.
func WritePNG(path string, md *wavefront.MeshData, opts Options) error {
	img, err := Render(md, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}

// viewport maps model XY to pixel coordinates with Y pointing down.
type viewport struct {
	min    math.Vec2
	scale  float32
	offset math.Vec2
	height float32
}

func newViewport(box hitbox.BoundBox2D, opts Options) viewport {
	size := box.Max().Sub(box.Min())
	availW := float32(opts.Width - 2*opts.Padding)
	availH := float32(opts.Height - 2*opts.Padding)

	scale := float32(1)
	switch {
	case size.X > 0 && size.Y > 0:
		scale = min(availW/size.X, availH/size.Y)
	case size.X > 0:
		scale = availW / size.X
	case size.Y > 0:
		scale = availH / size.Y
	}

	// Center the drawing in the free space.
	pad := float32(opts.Padding)
	return viewport{
		min:    box.Min(),
		scale:  scale,
		offset: math.Vec2{X: pad + (availW-size.X*scale)/2, Y: pad + (availH-size.Y*scale)/2},
		height: float32(opts.Height),
	}
}

func (v viewport) project(p math.Vec2) math.Vec2 {
	q := p.Sub(v.min).Scale(v.scale).Add(v.offset)
	q.Y = v.height - q.Y
	return q
}

// canvas batches shapes of one colour into a rasterizer. Every shape is
// added with the same winding so overlaps never cancel out.
type canvas struct {
	dst *image.RGBA
	z   *vector.Rasterizer
	n   int
}

// segment adds a quad of the given half width around a-b.
func (c *canvas) segment(a, b math.Vec2, half float32) {
	dir := b.Sub(a)
	if dir.Length() == 0 {
		c.square(a, half)
		return
	}
	n := dir.Normalize().Perp().Scale(half)
	c.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (c *canvas) square(p math.Vec2, half float32) {
	c.polygon(
		math.Vec2{X: p.X - half, Y: p.Y - half},
		math.Vec2{X: p.X + half, Y: p.Y - half},
		math.Vec2{X: p.X + half, Y: p.Y + half},
		math.Vec2{X: p.X - half, Y: p.Y + half},
	)
}

// polygon adds a convex polygon, reversing it if its signed area is negative.
func (c *canvas) polygon(pts ...math.Vec2) {
	var area float32
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area < 0 {
		slices.Reverse(pts)
	}

	c.z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.z.LineTo(p.X, p.Y)
	}
	c.z.ClosePath()
	c.n++
}

// flush paints everything added since the last flush in col.
func (c *canvas) flush(col color.Color) {
	if c.n > 0 && col != nil {
		c.z.DrawOp = draw.Over
		c.z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{})
	}
	b := c.dst.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.n = 0
}
