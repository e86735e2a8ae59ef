package wavefront

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/hitbox"
)

// Mesh is a flat, non-indexed vertex buffer ready for GPU upload.
// Each vertex stores its position, texel and normal components back to back,
// in that order, for the attributes that are present.
type Mesh struct {
	Vertices   []float32
	Components Components
	Primitive  Primitive
}

// Stride returns the number of floats per vertex.
func (m *Mesh) Stride() int {
	return m.Components.Stride()
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	stride := m.Stride()
	if stride == 0 {
		return 0
	}
	return len(m.Vertices) / stride
}

// Position returns the position block of vertex i.
func (m *Mesh) Position(i int) []float32 {
	off := i * m.Stride()
	return m.Vertices[off : off+m.Components.Position]
}

// Texel returns the texel block of vertex i, or nil if the mesh has none.
func (m *Mesh) Texel(i int) []float32 {
	if m.Components.Texel == 0 {
		return nil
	}
	off := i*m.Stride() + m.Components.Position
	return m.Vertices[off : off+m.Components.Texel]
}

// Normal returns the normal block of vertex i, or nil if the mesh has none.
func (m *Mesh) Normal(i int) []float32 {
	if m.Components.Normal == 0 {
		return nil
	}
	off := i*m.Stride() + m.Components.Position + m.Components.Texel
	return m.Vertices[off : off+m.Components.Normal]
}

// MeshData is the parsed result for one OBJ object.
// Material references are left unresolved; see Model.Material.
type MeshData struct {
	Name              string   // empty for an anonymous object
	MaterialLibrary   string   // first of MaterialLibraries
	MaterialLibraries []string // files of the mtllib line active at usemtl
	MaterialName      string
	Layout            FaceLayout

	Mesh       *Mesh              // renderer vertex buffer (LoadMesh)
	ShadowMesh *Mesh              // 2D shadow silhouette (LoadShadowMesh)
	Hitbox     *hitbox.Polygon    // collision polygon (CreateHitbox)
	BoundBox   *hitbox.BoundBox2D // XY bounding box (CreateBoundBox)
}

func (md *MeshData) setLibraries(libs []string) {
	md.MaterialLibraries = libs
	if len(libs) > 0 {
		md.MaterialLibrary = libs[0]
	}
}

// MeshLoadProperty selects which artifacts are produced for one object.
type MeshLoadProperty struct {
	LoadMesh       bool `yaml:"load_mesh"`
	LoadShadowMesh bool `yaml:"load_shadow_mesh"`
	CreateHitbox   bool `yaml:"create_hitbox"`
	CreateBoundBox bool `yaml:"create_bound_box"`
}

func (p MeshLoadProperty) wantsAnything() bool {
	return p.LoadMesh || p.LoadShadowMesh || p.CreateHitbox || p.CreateBoundBox
}

func (p MeshLoadProperty) wantsXY() bool {
	return p.LoadShadowMesh || p.CreateHitbox || p.CreateBoundBox
}

// LoadProperties configures ParseObjects per object name.
// The anonymous object is keyed by the empty string.
type LoadProperties struct {
	Objects map[string]MeshLoadProperty `yaml:"objects"`

	// LoadAll loads objects missing from Objects as mesh-only.
	LoadAll bool `yaml:"load_all"`

	// CreateBoundBox adds a bound box to every loaded object.
	CreateBoundBox bool `yaml:"create_bound_box"`
}

// Resolve returns the load property for an object and whether the object
// should be processed at all. Nil properties load every object mesh-only.
func (lp *LoadProperties) Resolve(name string) (MeshLoadProperty, bool) {
	if lp == nil {
		return MeshLoadProperty{LoadMesh: true}, true
	}

	prop, ok := lp.Objects[name]
	if !ok {
		if !lp.LoadAll {
			return MeshLoadProperty{}, false
		}
		prop = MeshLoadProperty{LoadMesh: true}
	}
	if lp.CreateBoundBox {
		prop.CreateBoundBox = true
	}
	return prop, prop.wantsAnything()
}

// Model is the result of reading an object map.
type Model struct {
	Meshes    map[string]*MeshData
	Order     []string // object names in file order
	Materials map[string]MaterialLibrary // keyed by library file name
	Libraries []string                   // distinct mtllib names in file order
	Stats     Stats
}

// Get returns the mesh data for a named object.
func (m *Model) Get(name string) (*MeshData, bool) {
	md, ok := m.Meshes[name]
	return md, ok
}

// Material resolves the (library, name) pair a mesh was stamped with by
// usemtl. The libraries of the active mtllib line are searched in order.
func (m *Model) Material(md *MeshData) (*Material, bool) {
	if md == nil || md.MaterialName == "" {
		return nil, false
	}
	libs := md.MaterialLibraries
	if len(libs) == 0 {
		libs = []string{md.MaterialLibrary}
	}
	for _, lib := range libs {
		if mat, ok := m.Materials[lib][md.MaterialName]; ok {
			return mat, true
		}
	}
	return nil, false
}

// MaterialCount returns the number of materials across all libraries.
func (m *Model) MaterialCount() int {
	n := 0
	for _, lib := range m.Materials {
		n += len(lib)
	}
	return n
}

// Options controls parsing.
type Options struct {
	// Logger receives recoverable diagnostics. Nil discards them.
	Logger *zap.Logger

	// Strict rejects face records whose layout or vertex count differs
	// from the first face. Without it later faces are read with the first
	// face's rules.
	Strict bool

	// Charset decodes object, material and file names (e.g. "euc-kr").
	// Empty means the names are used as-is.
	Charset string
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
