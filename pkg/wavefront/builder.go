package wavefront

// buildMesh expands faces into a non-indexed interleaved vertex buffer.
// It also returns the positions alone, in the same vertex order, for the
// derived geometry step.
func buildMesh(store *vertexStore, shape faceShape, faces []face) (*Mesh, []float32, error) {
	comps := Components{Position: store.widths.Position}
	if shape.layout.HasTexel() {
		comps.Texel = store.widths.Texel
	}
	if shape.layout.HasNormal() {
		comps.Normal = store.widths.Normal
	}

	count := len(faces) * shape.verticesPerFace
	vertices := make([]float32, 0, count*comps.Stride())
	positions := make([]float32, 0, count*comps.Position)

	for _, f := range faces {
		for _, v := range f {
			pos, err := store.position(v.position)
			if err != nil {
				return nil, nil, err
			}
			vertices = append(vertices, pos...)
			positions = append(positions, pos...)

			if shape.layout.HasTexel() {
				tex, err := store.texel(v.texel)
				if err != nil {
					return nil, nil, err
				}
				vertices = append(vertices, tex...)
			}
			if shape.layout.HasNormal() {
				norm, err := store.normal(v.normal)
				if err != nil {
					return nil, nil, err
				}
				vertices = append(vertices, norm...)
			}
		}
	}

	return &Mesh{
		Vertices:   vertices,
		Components: comps,
		Primitive:  shape.primitive,
	}, positions, nil
}
