package shadow

import (
	"testing"
)

func TestVertices2DSize(t *testing.T) {
	tests := []struct {
		name string
		xy   []float32
		want int
	}{
		{"triangle", []float32{0, 0, 1, 0, 0, 1}, 6 * FloatsPerInput},
		{"square", []float32{0, 0, 1, 0, 1, 1, 0, 1}, 8 * FloatsPerInput},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vertices2D(tt.xy)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if Edges(got) != len(tt.xy)/2 {
				t.Errorf("Edges() = %d, want %d", Edges(got), len(tt.xy)/2)
			}
		})
	}
}

func TestVertices2DLayout(t *testing.T) {
	xy := []float32{0, 0, 2, 0, 2, 3}
	got := Vertices2D(xy)

	// First edge A=(0,0) to B=(2,0).
	want := []float32{
		0, 0, 0,
		0, 0, 1,
		2, 0, 0,
		2, 0, 0,
		0, 0, 1,
		2, 0, 1,
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("vertex float %d = %v, want %v", i, got[i], v)
		}
	}

	// Last edge wraps from (2,3) back to (0,0).
	last := got[len(got)-18:]
	if last[0] != 2 || last[1] != 3 || last[6] != 0 || last[7] != 0 {
		t.Errorf("closing edge = %v", last[:9])
	}
}

func TestVertices2DDepthFlags(t *testing.T) {
	got := Vertices2D([]float32{0, 0, 1, 0, 1, 1, 0, 1})
	near, far := 0, 0
	for i := 2; i < len(got); i += 3 {
		switch got[i] {
		case 0:
			near++
		case 1:
			far++
		default:
			t.Fatalf("z = %v at %d, want 0 or 1", got[i], i)
		}
	}
	if near != far {
		t.Errorf("near = %d, far = %d, want equal", near, far)
	}
}
