package wavefront

import (
	"bytes"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/encoding"
)

// faceVertex holds the 1-based indices of one face vertex. Zero means the
// component is absent from the layout.
type faceVertex struct {
	position int
	texel    int
	normal   int
}

type face []faceVertex

// vertexOf splits one vertex worth of indices according to the layout.
func (l FaceLayout) vertexOf(ix []int) faceVertex {
	switch l {
	case LayoutPositionTexel:
		return faceVertex{position: ix[0], texel: ix[1]}
	case LayoutPositionNormal:
		return faceVertex{position: ix[0], normal: ix[1]}
	case LayoutPositionTexelNormal:
		return faceVertex{position: ix[0], texel: ix[1], normal: ix[2]}
	default:
		return faceVertex{position: ix[0]}
	}
}

// objectRecord collects the faces of one "o" block.
type objectRecord struct {
	name      string
	libraries []string // mtllib files active at usemtl time
	material  string

	indices []int // flat index stream until the shape is known
	faces   []face
}

// parser consumes scanner tokens and groups faces into objects.
type parser struct {
	opts   Options
	log    *zap.Logger
	names  *encoding.NameDecoder
	legacy bool

	store   vertexStore
	shape   faceShape
	objects []*objectRecord
	current *objectRecord
	active  []string // files of the last mtllib line

	libraries []string
	faceLines int

	// line-scoped state
	lineKind   TokenKind
	lineCount  int
	lineVerts  int
	elements   int
	separators int
}

// newParser creates a parser. In legacy mode "o" lines are ignored and all
// faces land in a single implicit object.
func newParser(opts Options, legacy bool) (*parser, error) {
	names, err := encoding.NewNameDecoder(opts.Charset)
	if err != nil {
		return nil, err
	}
	return &parser{
		opts:   opts,
		log:    opts.logger(),
		names:  names,
		legacy: legacy,
	}, nil
}

func (p *parser) run(data []byte) error {
	sc := NewScanner(data)
	sc.Strict = p.opts.Strict
	for sc.Next() {
		if err := p.consume(sc.Token()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	p.chunkFaces()
	return nil
}

func (p *parser) consume(t Token) error {
	switch t.Kind {
	case TokenPosition:
		p.store.positions = append(p.store.positions, t.Value)
		p.lineKind = TokenPosition
		p.lineCount++
	case TokenTexel:
		p.store.texels = append(p.store.texels, t.Value)
		p.lineKind = TokenTexel
		p.lineCount++
	case TokenNormal:
		p.store.normals = append(p.store.normals, t.Value)
		p.lineKind = TokenNormal
		p.lineCount++

	case TokenIndex:
		obj := p.object()
		obj.indices = append(obj.indices, t.Index)
		p.lineKind = TokenIndex
		p.elements++
	case TokenSeparator:
		p.lineKind = TokenIndex
		p.separators++
	case TokenVertexEnd:
		if err := p.shape.observeVertex(p.elements, p.separators, p.opts.Strict); err != nil {
			return lineError(t.Line, err)
		}
		p.lineVerts++
		p.elements, p.separators = 0, 0
	case TokenLineEnd:
		if err := p.endLine(); err != nil {
			return lineError(t.Line, err)
		}

	case TokenObject:
		if p.legacy {
			return nil
		}
		p.current = &objectRecord{name: p.names.Decode(t.Text)}
		p.objects = append(p.objects, p.current)
	case TokenMaterialLib:
		// One mtllib line may name several files.
		p.active = nil
		for _, f := range bytes.Fields(t.Text) {
			lib := p.names.Decode(f)
			p.active = append(p.active, lib)
			if !slices.Contains(p.libraries, lib) {
				p.libraries = append(p.libraries, lib)
			}
		}
	case TokenUseMaterial:
		obj := p.object()
		obj.libraries = p.active
		obj.material = p.names.Decode(t.Text)
	}
	return nil
}

// object returns the current object, creating the anonymous one on demand.
func (p *parser) object() *objectRecord {
	if p.current == nil {
		p.current = &objectRecord{}
		p.objects = append(p.objects, p.current)
	}
	return p.current
}

func (p *parser) endLine() error {
	var err error
	switch p.lineKind {
	case TokenPosition:
		if p.store.widths.Position == 0 {
			p.store.widths.Position = p.lineCount
		}
	case TokenTexel:
		if p.store.widths.Texel == 0 {
			p.store.widths.Texel = p.lineCount
		}
	case TokenNormal:
		if p.store.widths.Normal == 0 {
			p.store.widths.Normal = p.lineCount
		}
	case TokenIndex:
		if p.lineVerts > 0 {
			p.faceLines++
		}
		err = p.shape.observeLine(p.lineVerts, p.opts.Strict)
	}

	p.lineKind = 0
	p.lineCount = 0
	p.lineVerts = 0
	p.elements, p.separators = 0, 0
	return err
}

// chunkFaces splits each object's index stream into faces using the frozen
// layout and vertices-per-face.
func (p *parser) chunkFaces() {
	if !p.shape.layoutKnown || p.shape.verticesPerFace == 0 {
		return
	}

	elements := p.shape.layout.Elements()
	vpf := p.shape.verticesPerFace
	perFace := elements * vpf

	for _, obj := range p.objects {
		n := len(obj.indices) / perFace
		if rem := len(obj.indices) % perFace; rem != 0 {
			p.log.Warn("dropping incomplete trailing face",
				zap.String("object", obj.name),
				zap.Int("indices", rem),
				zap.Int("expected", perFace))
		}

		verts := make([]faceVertex, n*vpf)
		obj.faces = make([]face, n)
		for f := 0; f < n; f++ {
			chunk := obj.indices[f*perFace : (f+1)*perFace]
			fc := verts[f*vpf : (f+1)*vpf]
			for v := range fc {
				fc[v] = p.shape.layout.vertexOf(chunk[v*elements : (v+1)*elements])
			}
			obj.faces[f] = fc
		}
		obj.indices = nil
	}
}

func (p *parser) stats() Stats {
	st := p.store.stats()
	st.Faces = p.faceLines
	st.Objects = len(p.objects)
	return st
}
