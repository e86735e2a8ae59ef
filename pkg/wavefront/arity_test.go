package wavefront

import (
	"errors"
	"testing"
)

func TestInferLayout(t *testing.T) {
	tests := []struct {
		elements, separators int
		want                 FaceLayout
		wantErr              bool
	}{
		{1, 0, LayoutPositionOnly, false},
		{2, 1, LayoutPositionTexel, false},
		{2, 2, LayoutPositionNormal, false},
		{3, 2, LayoutPositionTexelNormal, false},
		{1, 1, 0, true},
		{3, 3, 0, true},
		{0, 0, 0, true},
	}

	for _, tt := range tests {
		got, err := InferLayout(tt.elements, tt.separators)
		if (err != nil) != tt.wantErr {
			t.Errorf("InferLayout(%d, %d) error = %v, wantErr %v", tt.elements, tt.separators, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrUnknownFaceLayout) {
				t.Errorf("InferLayout(%d, %d) error = %v, want ErrUnknownFaceLayout", tt.elements, tt.separators, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("InferLayout(%d, %d) = %v, want %v", tt.elements, tt.separators, got, tt.want)
		}
		if got.Elements() != tt.elements {
			t.Errorf("%v.Elements() = %d, want %d", got, got.Elements(), tt.elements)
		}
	}
}

func TestInferPrimitive(t *testing.T) {
	tests := []struct {
		vertices int
		want     Primitive
		wantErr  error
	}{
		{1, PrimitivePoints, nil},
		{2, PrimitiveLines, nil},
		{3, PrimitiveTriangles, nil},
		{4, 0, ErrQuadFace},
		{5, 0, ErrUnsupportedPrimitive},
	}

	for _, tt := range tests {
		got, err := InferPrimitive(tt.vertices)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InferPrimitive(%d) error = %v, want %v", tt.vertices, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("InferPrimitive(%d) unexpected error: %v", tt.vertices, err)
			continue
		}
		if got != tt.want {
			t.Errorf("InferPrimitive(%d) = %v, want %v", tt.vertices, got, tt.want)
		}
		if got.VerticesPerFace() != tt.vertices {
			t.Errorf("%v.VerticesPerFace() = %d, want %d", got, got.VerticesPerFace(), tt.vertices)
		}
	}
}

func TestFaceLayout_Components(t *testing.T) {
	tests := []struct {
		layout    FaceLayout
		hasTexel  bool
		hasNormal bool
		name      string
	}{
		{LayoutPositionOnly, false, false, "Position"},
		{LayoutPositionTexel, true, false, "Position+Texel"},
		{LayoutPositionNormal, false, true, "Position+Normal"},
		{LayoutPositionTexelNormal, true, true, "Position+Texel+Normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.layout.HasTexel() != tt.hasTexel {
				t.Errorf("HasTexel() = %v", tt.layout.HasTexel())
			}
			if tt.layout.HasNormal() != tt.hasNormal {
				t.Errorf("HasNormal() = %v", tt.layout.HasNormal())
			}
			if tt.layout.String() != tt.name {
				t.Errorf("String() = %q", tt.layout.String())
			}
		})
	}
}

func TestFaceShape_Frozen(t *testing.T) {
	var s faceShape
	if err := s.observeVertex(3, 2, false); err != nil {
		t.Fatalf("first vertex: %v", err)
	}
	// A differently shaped vertex is accepted and ignored when not strict.
	if err := s.observeVertex(1, 0, false); err != nil {
		t.Fatalf("non-strict mismatch: %v", err)
	}
	if s.layout != LayoutPositionTexelNormal {
		t.Errorf("layout = %v, want frozen Position+Texel+Normal", s.layout)
	}
	if err := s.observeVertex(1, 0, true); !errors.Is(err, ErrNonUniformFace) {
		t.Errorf("strict mismatch error = %v, want ErrNonUniformFace", err)
	}

	if err := s.observeLine(3, false); err != nil {
		t.Fatalf("first line: %v", err)
	}
	if err := s.observeLine(2, false); err != nil {
		t.Fatalf("non-strict line mismatch: %v", err)
	}
	if err := s.observeLine(2, true); !errors.Is(err, ErrNonUniformFace) {
		t.Errorf("strict line mismatch error = %v, want ErrNonUniformFace", err)
	}
	if err := s.observeLine(0, true); err != nil {
		t.Errorf("empty line error = %v, want nil", err)
	}
	if s.primitive != PrimitiveTriangles {
		t.Errorf("primitive = %v, want Triangles", s.primitive)
	}
}
