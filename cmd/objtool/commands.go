package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objkit/internal/loader"
	"github.com/Faultbox/objkit/internal/logger"
	"github.com/Faultbox/objkit/internal/preview"
	"github.com/Faultbox/objkit/pkg/wavefront"
)

func (a *app) parseOptions() wavefront.Options {
	return a.cfg.ParseOptions(logger.Named("wavefront"))
}

// loadOne parses a single model with the given properties.
func (a *app) loadOne(path string, props *wavefront.LoadProperties) (*wavefront.Model, error) {
	return a.assets.LoadModel(path, props, a.parseOptions())
}

// only returns load properties selecting a single object. With an empty
// name every object is loaded mesh-only, plus bound boxes if prop asks.
func only(name string, prop wavefront.MeshLoadProperty) *wavefront.LoadProperties {
	if name == "" {
		return &wavefront.LoadProperties{
			LoadAll:        true,
			CreateBoundBox: prop.CreateBoundBox,
		}
	}
	return &wavefront.LoadProperties{
		Objects: map[string]wavefront.MeshLoadProperty{name: prop},
	}
}

// pick returns the named object, or the first one if name is empty.
func pick(m *wavefront.Model, name, path string) (*wavefront.MeshData, error) {
	if name == "" && len(m.Order) > 0 {
		name = m.Order[0]
	}
	md, ok := m.Get(name)
	if !ok {
		return nil, fmt.Errorf("object %q not found in %s", name, path)
	}
	return md, nil
}

func (a *app) cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool info <file.obj>...")
	}

	l := loader.New(a.assets, a.parseOptions(), loader.Config{
		Workers:     a.cfg.Workers.Count,
		QueueSize:   a.cfg.Workers.QueueSize,
		IdleTimeout: a.cfg.Workers.IdleTimeout,
	})

	props := a.cfg.Load.Properties()
	futures := make([]*loader.Future, len(args))
	for i, path := range args {
		futures[i] = l.LoadAsync(path, props)
	}

	failed := 0
	for i, f := range futures {
		if i > 0 {
			fmt.Println()
		}
		res := f.Wait()
		if res.Err != nil {
			fmt.Printf("File:      %s\nError:     %v\n", res.Path, res.Err)
			failed++
			continue
		}
		printInfo(res.Path, res.Model)
	}

	hits, misses := a.assets.CacheStats()
	fmt.Printf("\nCache:     %d hits, %d misses\n", hits, misses)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to load", failed, len(args))
	}
	return nil
}

func printInfo(path string, m *wavefront.Model) {
	st := m.Stats
	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Positions: %d (%d components)\n", st.Positions, st.Widths.Position)
	fmt.Printf("Texels:    %d (%d components)\n", st.Texels, st.Widths.Texel)
	fmt.Printf("Normals:   %d (%d components)\n", st.Normals, st.Widths.Normal)
	fmt.Printf("Faces:     %d\n", st.Faces)
	fmt.Printf("Objects:   %d (%d loaded)\n", st.Objects, len(m.Order))
	if len(m.Libraries) > 0 {
		fmt.Printf("Libraries: %s\n", strings.Join(m.Libraries, ", "))
	}
	fmt.Printf("Materials: %d\n", m.MaterialCount())

	if len(m.Order) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-24s %-12s %-10s %8s  %s\n", "OBJECT", "LAYOUT", "PRIMITIVE", "VERTICES", "MATERIAL")
	for _, name := range m.Order {
		md := m.Meshes[name]
		display := name
		if display == "" {
			display = "(anonymous)"
		}
		prim, verts := "-", 0
		if md.Mesh != nil {
			prim = md.Mesh.Primitive.String()
			verts = md.Mesh.VertexCount()
		}
		material := md.MaterialName
		if _, ok := m.Material(md); !ok && material != "" {
			material += " (missing)"
		}
		fmt.Printf("  %-24s %-12s %-10s %8d  %s\n", display, md.Layout, prim, verts, material)
	}
}

func (a *app) cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: objtool dump [-n N] <file.obj> [object]")
	}
	name := fs.Arg(1)

	m, err := a.loadOne(fs.Arg(0), only(name, wavefront.MeshLoadProperty{LoadMesh: true}))
	if err != nil {
		return err
	}
	md, err := pick(m, name, fs.Arg(0))
	if err != nil {
		return err
	}

	mesh := md.Mesh
	fmt.Printf("# %s layout=%s primitive=%s stride=%d vertices=%d\n",
		md.Name, md.Layout, mesh.Primitive, mesh.Stride(), mesh.VertexCount())
	for i := 0; i < mesh.VertexCount(); i++ {
		if *limit > 0 && i >= *limit {
			fmt.Printf("# ... %d more\n", mesh.VertexCount()-i)
			break
		}
		fmt.Printf("%6d  p=%s", i, formatFloats(mesh.Position(i)))
		if t := mesh.Texel(i); t != nil {
			fmt.Printf("  t=%s", formatFloats(t))
		}
		if n := mesh.Normal(i); n != nil {
			fmt.Printf("  n=%s", formatFloats(n))
		}
		fmt.Println()
	}
	return nil
}

func formatFloats(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *app) cmdMTL(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool mtl <file.mtl>")
	}

	data, err := a.assets.Load(args[0])
	if err != nil {
		return err
	}
	lib, err := wavefront.ParseMTL(data, a.parseOptions())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(lib))
	for name := range lib {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Library:   %s\n", args[0])
	fmt.Printf("Materials: %d\n", len(names))
	for _, name := range names {
		mat := lib[name]
		fmt.Printf("  %s\n", mat)
		for _, tex := range []struct{ tag, file string }{
			{"map_Ka", mat.AmbientMap},
			{"map_Ks", mat.SpecularMap},
			{"map_Ns", mat.ShininessMap},
			{"norm", mat.NormalMap},
		} {
			if tex.file != "" {
				fmt.Printf("    %-7s %s\n", tex.tag, tex.file)
			}
		}
	}
	return nil
}

func (a *app) cmdBBox(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool bbox <file.obj>")
	}

	m, err := a.loadOne(args[0], only("", wavefront.MeshLoadProperty{CreateBoundBox: true}))
	if err != nil {
		return err
	}
	for _, name := range m.Order {
		md := m.Meshes[name]
		if md.BoundBox == nil {
			fmt.Printf("%-24s (no XY plane)\n", name)
			continue
		}
		fmt.Printf("%-24s %s\n", name, md.BoundBox)
	}
	return nil
}

func (a *app) cmdCollide(args []string) error {
	fs := flag.NewFlagSet("collide", flag.ExitOnError)
	dx := fs.Float64("dx", 0, "Move the second object along X")
	dy := fs.Float64("dy", 0, "Move the second object along Y")
	rot := fs.Float64("rot", 0, "Rotate the second object by degrees")
	fs.Parse(args)

	if fs.NArg() < 3 {
		return errors.New("usage: objtool collide [-dx X] [-dy Y] [-rot DEG] <file.obj> <object> <object>")
	}
	nameA, nameB := fs.Arg(1), fs.Arg(2)
	prop := wavefront.MeshLoadProperty{CreateHitbox: true}

	m, err := a.loadOne(fs.Arg(0), &wavefront.LoadProperties{
		Objects: map[string]wavefront.MeshLoadProperty{nameA: prop, nameB: prop},
	})
	if err != nil {
		return err
	}
	mdA, okA := m.Get(nameA)
	mdB, okB := m.Get(nameB)
	if !okA || !okB || mdA.Hitbox == nil || mdB.Hitbox == nil {
		return errors.New("both objects need a hitbox with an XY plane")
	}

	world := mgl32.Translate3D(float32(*dx), float32(*dy), 0).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(*rot))))
	mdB.Hitbox.Transform(world)

	mtv, hit := mdA.Hitbox.Collide(mdB.Hitbox)
	a.log.Debug("collision test",
		zap.String("a", nameA),
		zap.String("b", nameB),
		zap.Bool("hit", hit))
	if !hit {
		fmt.Println("no collision")
		return nil
	}
	fmt.Printf("collision: move %s by (%g, %g)\n", nameA, mtv.X, mtv.Y)
	return nil
}

func (a *app) cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fs.String("o", "", "Output PNG (default: <object>.png)")
	hitbox := fs.Bool("hitbox", false, "Draw the hitbox outline")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: objtool preview [-o out.png] [-hitbox] <file.obj> [object]")
	}
	name := fs.Arg(1)

	m, err := a.loadOne(fs.Arg(0), only(name, wavefront.MeshLoadProperty{
		LoadMesh:       true,
		CreateBoundBox: true,
		CreateHitbox:   *hitbox,
	}))
	if err != nil {
		return err
	}
	md, err := pick(m, name, fs.Arg(0))
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Width = a.cfg.Preview.Width
	opts.Height = a.cfg.Preview.Height
	opts.Padding = a.cfg.Preview.Padding
	if !*hitbox {
		opts.Hitbox = nil
	}
	if mat, ok := m.Material(md); ok {
		kd := mat.Diffuse.Clamp(0, 1).Scale(255)
		opts.Fill = color.RGBA{R: uint8(kd.X), G: uint8(kd.Y), B: uint8(kd.Z), A: 0xff}
	}

	path := *out
	if path == "" {
		base := md.Name
		if base == "" {
			base = strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0)))
		}
		path = base + ".png"
	}
	if err := preview.WritePNG(path, md, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
