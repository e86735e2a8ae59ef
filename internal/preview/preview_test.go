package preview

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/objkit/pkg/hitbox"
	"github.com/Faultbox/objkit/pkg/wavefront"
)

var (
	bg      = color.RGBA{A: 0xff}
	fill    = color.RGBA{R: 0xff, A: 0xff}
	outline = color.RGBA{G: 0xff, A: 0xff}
)

func testOptions() Options {
	return Options{
		Width:      100,
		Height:     100,
		Padding:    10,
		Background: bg,
		Fill:       fill,
		Outline:    outline,
	}
}

func triangle() *wavefront.MeshData {
	return &wavefront.MeshData{
		Name: "Tri",
		Mesh: &wavefront.Mesh{
			Vertices:   []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Components: wavefront.Components{Position: 3},
			Primitive:  wavefront.PrimitiveTriangles,
		},
	}
}

func rgbaAt(t *testing.T, img interface{ At(x, y int) color.Color }, x, y int) color.RGBA {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// near allows for rounding in anti-aliased coverage.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff >= -2 && diff <= 2
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRenderTriangle(t *testing.T) {
	img, err := Render(triangle(), testOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("size = %v", img.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"inside triangle", 30, 70, fill},
		{"outside triangle", 82, 18, bg},
		{"top edge of frame", 50, 10, outline},
		{"padding", 2, 2, bg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgbaAt(t, img, tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderWindingIndependent(t *testing.T) {
	md := triangle()
	// Same triangle listed clockwise.
	md.Mesh.Vertices = []float32{0, 0, 0, 0, 1, 0, 1, 0, 0}

	img, err := Render(md, testOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := rgbaAt(t, img, 30, 70); !near(got, fill) {
		t.Errorf("clockwise triangle not filled: %v", got)
	}
}

func TestRenderUsesBoundBox(t *testing.T) {
	md := triangle()
	// A box twice as large shrinks the triangle into the lower-left quarter.
	md.BoundBox = &hitbox.BoundBox2D{X: 0, Y: 0, W: 2, H: 2}
	opts := testOptions()
	opts.Outline = nil

	img, err := Render(md, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := rgbaAt(t, img, 20, 80); !near(got, fill) {
		t.Errorf("pixel near origin = %v, want fill", got)
	}
	if got := rgbaAt(t, img, 60, 60); got != bg {
		t.Errorf("pixel beyond the triangle = %v, want background", got)
	}
}

func TestRenderLines(t *testing.T) {
	md := &wavefront.MeshData{
		Mesh: &wavefront.Mesh{
			Vertices:   []float32{0, 0, 1, 1},
			Components: wavefront.Components{Position: 2},
			Primitive:  wavefront.PrimitiveLines,
		},
	}
	opts := testOptions()
	opts.Outline = nil

	img, err := Render(md, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// The diagonal runs from (10,90) to (90,10).
	if got := rgbaAt(t, img, 50, 49); got == bg {
		t.Error("diagonal not drawn")
	}
	if got := rgbaAt(t, img, 20, 20); got != bg {
		t.Errorf("pixel off the line = %v", got)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		md   *wavefront.MeshData
		opts Options
		is   error
	}{
		{"nil data", nil, testOptions(), ErrNothingToDraw},
		{"no mesh", &wavefront.MeshData{}, testOptions(), ErrNothingToDraw},
		{"one component", &wavefront.MeshData{Mesh: &wavefront.Mesh{
			Vertices: []float32{1, 2, 3}, Components: wavefront.Components{Position: 1},
		}}, testOptions(), ErrNothingToDraw},
		{"zero size", triangle(), Options{}, nil},
		{"padding too large", triangle(), Options{Width: 20, Height: 20, Padding: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.md, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.png")
	if err := WritePNG(path, triangle(), DefaultOptions()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 512 {
		t.Errorf("width = %d, want 512", img.Bounds().Dx())
	}
}
