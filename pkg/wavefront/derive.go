package wavefront

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/hitbox"
	"github.com/Faultbox/objkit/pkg/shadow"
)

// ProjectXY drops every component past x and y from a flat position buffer.
// It returns nil if positions have fewer than two components.
func ProjectXY(positions []float32, width int) []float32 {
	if width < 2 {
		return nil
	}
	n := len(positions) / width
	xy := make([]float32, 0, n*2)
	for i := 0; i < n; i++ {
		off := i * width
		xy = append(xy, positions[off], positions[off+1])
	}
	return xy
}

// derive fills the artifacts requested by prop.
func derive(md *MeshData, mesh *Mesh, positions []float32, prop MeshLoadProperty, log *zap.Logger) {
	if prop.LoadMesh {
		md.Mesh = mesh
	}
	if !prop.wantsXY() {
		return
	}

	xy := ProjectXY(positions, mesh.Components.Position)
	if xy == nil {
		log.Warn("positions have no XY plane, skipping 2D geometry",
			zap.String("object", md.Name),
			zap.Int("width", mesh.Components.Position))
		return
	}

	if prop.LoadShadowMesh {
		md.ShadowMesh = &Mesh{
			Vertices:   shadow.Vertices2D(xy),
			Components: Components{Position: 3},
			Primitive:  PrimitiveTriangles,
		}
	}
	if prop.CreateHitbox {
		md.Hitbox = hitbox.NewPolygon(xy)
	}
	if prop.CreateBoundBox {
		if box, ok := hitbox.BoundsOf(xy); ok {
			md.BoundBox = &box
		}
	}
}
