// Package shadow builds 2D shadow-volume geometry from polygon outlines.
package shadow

// FloatsPerInput is the number of output floats produced per input float.
// Each XY point starts one edge: 2 triangles × 3 vertices × 3 components.
const FloatsPerInput = 9

// Vertices2D extrudes every edge of a closed XY polygon into two triangles.
// Returns vertices in format: [x, y, z] where z = 0 marks the near side and
// z = 1 the far side, which a vertex shader pushes away from the light.
// The last point connects back to the first. An odd trailing value is ignored.
func Vertices2D(xy []float32) []float32 {
	n := len(xy) / 2
	out := make([]float32, 0, n*2*FloatsPerInput)
	for i := 0; i < n; i++ {
		ax, ay := xy[i*2], xy[i*2+1]
		j := (i + 1) % n
		bx, by := xy[j*2], xy[j*2+1]

		out = append(out,
			// Triangle 1
			ax, ay, 0,
			ax, ay, 1,
			bx, by, 0,
			// Triangle 2
			bx, by, 0,
			ax, ay, 1,
			bx, by, 1,
		)
	}
	return out
}

// Edges returns the number of extruded edges in a buffer built by Vertices2D.
func Edges(vertices []float32) int {
	return len(vertices) / (2 * FloatsPerInput)
}
