// Package wavefront parses Wavefront OBJ geometry and MTL material libraries
// into flat vertex buffers and optional 2D collision geometry.
package wavefront

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// ParseMesh reads the whole file as a single render object. Object names
// are ignored and every face is collected into one mesh.
func ParseMesh(data []byte, opts Options) (*MeshData, error) {
	start := time.Now()
	p, err := newParser(opts, true)
	if err != nil {
		return nil, err
	}
	if err := p.run(data); err != nil {
		return nil, err
	}

	if len(p.objects) == 0 || len(p.objects[0].faces) == 0 {
		return nil, ErrNoFaces
	}
	obj := p.objects[0]

	mesh, _, err := buildMesh(&p.store, p.shape, obj.faces)
	if err != nil {
		return nil, err
	}

	p.log.Debug("model loaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Stringer("layout", p.shape.layout),
		zap.Stringer("primitive", mesh.Primitive),
		zap.Duration("elapsed", time.Since(start)))

	md := &MeshData{
		MaterialName: obj.material,
		Layout:       p.shape.layout,
		Mesh:         mesh,
	}
	md.setLibraries(obj.libraries)
	return md, nil
}

// ParseObjects reads every object of a file, keyed by name.
// props selects which objects are loaded and which artifacts each gets;
// nil loads every object mesh-only.
func ParseObjects(data []byte, props *LoadProperties, opts Options) (*Model, error) {
	return ParseModel(data, nil, props, opts)
}

// ParseModel reads an object map and, if mtl is non-nil, its material library.
// mtl is stored under the first library named by an mtllib line, or under
// the empty name if the file has none.
func ParseModel(obj, mtl []byte, props *LoadProperties, opts Options) (*Model, error) {
	start := time.Now()
	p, err := newParser(opts, false)
	if err != nil {
		return nil, err
	}
	if err := p.run(obj); err != nil {
		return nil, err
	}

	model := &Model{
		Meshes:    make(map[string]*MeshData),
		Materials: make(map[string]MaterialLibrary),
		Libraries: p.libraries,
		Stats:     p.stats(),
	}

	for _, rec := range p.objects {
		if len(rec.faces) == 0 {
			p.log.Debug("dropping object without faces", zap.String("object", rec.name))
			continue
		}
		prop, ok := props.Resolve(rec.name)
		if !ok {
			continue
		}

		mesh, positions, err := buildMesh(&p.store, p.shape, rec.faces)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", rec.name, err)
		}

		md := &MeshData{
			Name:         rec.name,
			MaterialName: rec.material,
			Layout:       p.shape.layout,
		}
		md.setLibraries(rec.libraries)
		derive(md, mesh, positions, prop, p.log)

		if _, dup := model.Meshes[rec.name]; dup {
			p.log.Warn("duplicate object name, keeping the last one", zap.String("object", rec.name))
		} else {
			model.Order = append(model.Order, rec.name)
		}
		model.Meshes[rec.name] = md
	}

	if mtl != nil {
		lib, err := ParseMTL(mtl, opts)
		if err != nil {
			return nil, fmt.Errorf("material library: %w", err)
		}
		name := ""
		if len(model.Libraries) > 0 {
			name = model.Libraries[0]
		}
		model.Materials[name] = lib
	}

	p.log.Debug("model loaded",
		zap.Int("objects", len(model.Order)),
		zap.Int("materials", model.MaterialCount()),
		zap.Duration("elapsed", time.Since(start)))
	return model, nil
}

// ParseOBJFile reads and parses an OBJ file from disk.
// Material libraries it references are not loaded.
func ParseOBJFile(path string, props *LoadProperties, opts Options) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read obj file: %w", err)
	}
	return ParseObjects(data, props, opts)
}
