package wavefront

import "fmt"

// vertexStore holds the raw v/vt/vn data of one parse, in file order.
// Widths are learned from the first line of each kind.
type vertexStore struct {
	positions []float32
	texels    []float32
	normals   []float32

	widths Components
}

// attribute names used in error messages
const (
	attrPosition = "position"
	attrTexel    = "texel"
	attrNormal   = "normal"
)

func (s *vertexStore) position(index int) ([]float32, error) {
	return lookup(s.positions, s.widths.Position, index, attrPosition)
}

func (s *vertexStore) texel(index int) ([]float32, error) {
	return lookup(s.texels, s.widths.Texel, index, attrTexel)
}

func (s *vertexStore) normal(index int) ([]float32, error) {
	return lookup(s.normals, s.widths.Normal, index, attrNormal)
}

// lookup resolves a 1-based index into a tuple of the flat buffer.
func lookup(data []float32, width, index int, attr string) ([]float32, error) {
	count := 0
	if width > 0 {
		count = len(data) / width
	}
	if index < 1 || index > count {
		return nil, fmt.Errorf("%w: %s %d (have %d)", ErrIndexOutOfRange, attr, index, count)
	}
	start := (index - 1) * width
	return data[start : start+width], nil
}

// Stats summarizes the raw vertex data of a parse.
type Stats struct {
	Positions int
	Texels    int
	Normals   int
	Faces     int
	Objects   int
	Widths    Components
}

func (s *vertexStore) stats() Stats {
	st := Stats{Widths: s.widths}
	if s.widths.Position > 0 {
		st.Positions = len(s.positions) / s.widths.Position
	}
	if s.widths.Texel > 0 {
		st.Texels = len(s.texels) / s.widths.Texel
	}
	if s.widths.Normal > 0 {
		st.Normals = len(s.normals) / s.widths.Normal
	}
	return st
}
