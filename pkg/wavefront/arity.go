package wavefront

import "fmt"

// FaceLayout describes which index components each face vertex carries.
type FaceLayout int

// Face layouts, selected from the first face vertex of a file.
const (
	LayoutPositionOnly        FaceLayout = iota // "f 1 2 3"
	LayoutPositionNormal                        // "f 1//1 2//2 3//3"
	LayoutPositionTexel                         // "f 1/1 2/2 3/3"
	LayoutPositionTexelNormal                   // "f 1/1/1 2/2/2 3/3/3"
)

// String returns a human-readable layout name.
func (l FaceLayout) String() string {
	switch l {
	case LayoutPositionOnly:
		return "Position"
	case LayoutPositionNormal:
		return "Position+Normal"
	case LayoutPositionTexel:
		return "Position+Texel"
	case LayoutPositionTexelNormal:
		return "Position+Texel+Normal"
	default:
		return fmt.Sprintf("Unknown(%d)", l)
	}
}

// HasTexel reports whether face vertices reference texels.
func (l FaceLayout) HasTexel() bool {
	return l == LayoutPositionTexel || l == LayoutPositionTexelNormal
}

// HasNormal reports whether face vertices reference normals.
func (l FaceLayout) HasNormal() bool {
	return l == LayoutPositionNormal || l == LayoutPositionTexelNormal
}

// Elements returns the number of indices per face vertex.
func (l FaceLayout) Elements() int {
	switch l {
	case LayoutPositionOnly:
		return 1
	case LayoutPositionTexelNormal:
		return 3
	default:
		return 2
	}
}

// InferLayout selects a face layout from the number of index elements and
// "/" separators found in one face vertex. Element count alone is
// ambiguous ("1/1" and "1//1" both carry two), so both counts are used.
func InferLayout(elements, separators int) (FaceLayout, error) {
	switch {
	case elements == 3 && separators == 2:
		return LayoutPositionTexelNormal, nil
	case elements == 2 && separators == 2:
		return LayoutPositionNormal, nil
	case elements == 2 && separators == 1:
		return LayoutPositionTexel, nil
	case elements == 1 && separators == 0:
		return LayoutPositionOnly, nil
	default:
		return 0, fmt.Errorf("%w: %d elements, %d separators", ErrUnknownFaceLayout, elements, separators)
	}
}

// Primitive is the render primitive implied by the vertices per face.
type Primitive int

// Supported primitives.
const (
	PrimitivePoints Primitive = iota
	PrimitiveLines
	PrimitiveTriangles
)

// String returns a human-readable primitive name.
func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "Points"
	case PrimitiveLines:
		return "Lines"
	case PrimitiveTriangles:
		return "Triangles"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// VerticesPerFace returns how many vertices make up one primitive.
func (p Primitive) VerticesPerFace() int {
	return int(p) + 1
}

// InferPrimitive maps a vertices-per-face count to a primitive.
// Quads are rejected rather than split into a triangle fan.
func InferPrimitive(verticesPerFace int) (Primitive, error) {
	switch verticesPerFace {
	case 1:
		return PrimitivePoints, nil
	case 2:
		return PrimitiveLines, nil
	case 3:
		return PrimitiveTriangles, nil
	case 4:
		return 0, ErrQuadFace
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedPrimitive, verticesPerFace)
	}
}

// Components holds the scalar width of each vertex attribute.
// A zero width means the attribute is absent.
type Components struct {
	Position int
	Texel    int
	Normal   int
}

// Stride returns the number of floats per interleaved vertex.
func (c Components) Stride() int {
	return c.Position + c.Texel + c.Normal
}

// faceShape tracks the frozen per-file layout decisions.
type faceShape struct {
	layout          FaceLayout
	layoutKnown     bool
	verticesPerFace int
	primitive       Primitive
}

// observeVertex freezes the layout on the first face vertex. In strict mode
// later vertices must match it.
func (f *faceShape) observeVertex(elements, separators int, strict bool) error {
	if !f.layoutKnown {
		layout, err := InferLayout(elements, separators)
		if err != nil {
			return err
		}
		f.layout = layout
		f.layoutKnown = true
		return nil
	}
	if strict {
		layout, err := InferLayout(elements, separators)
		if err != nil || layout != f.layout {
			return fmt.Errorf("%w: vertex has %d elements and %d separators, expected %s",
				ErrNonUniformFace, elements, separators, f.layout)
		}
	}
	return nil
}

// observeLine freezes the primitive on the first face line. In strict mode
// later lines must carry the same vertex count.
func (f *faceShape) observeLine(vertices int, strict bool) error {
	if vertices == 0 {
		return nil
	}
	if f.verticesPerFace == 0 {
		primitive, err := InferPrimitive(vertices)
		if err != nil {
			return err
		}
		f.verticesPerFace = vertices
		f.primitive = primitive
		return nil
	}
	if strict && vertices != f.verticesPerFace {
		return fmt.Errorf("%w: %d vertices, expected %d", ErrNonUniformFace, vertices, f.verticesPerFace)
	}
	return nil
}
