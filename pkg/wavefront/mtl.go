package wavefront

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/pkg/encoding"
	"github.com/Faultbox/objkit/pkg/math"
)

// MTL tags.
const (
	tagNewMaterial  = "newmtl"
	tagAmbient      = "Ka"
	tagDiffuse      = "Kd"
	tagSpecular     = "Ks"
	tagShininess    = "Ns"
	tagDissolve     = "d"
	tagTransparency = "Tr"
	tagIllum        = "illum"
	tagAmbientMap   = "map_Ka"
	tagDiffuseMap   = "map_Kd"
	tagSpecularMap  = "map_Ks"
	tagShininessMap = "map_Ns"
	tagNormalMap    = "norm"
	tagBumpMap      = "map_Bump"
	tagBump         = "bump"
)

// Material is one "newmtl" block. Texture maps are file names relative to
// the library and are not resolved here.
type Material struct {
	Name      string
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
	Dissolve  float32 // 1 is opaque
	Illum     int

	AmbientMap   string
	DiffuseMap   string
	SpecularMap  string
	ShininessMap string
	NormalMap    string
}

// NewMaterial returns a material with white colours and full opacity.
func NewMaterial(name string) *Material {
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	return &Material{
		Name:     name,
		Ambient:  white,
		Diffuse:  white,
		Specular: white,
		Dissolve: 1,
	}
}

// String returns a one-line summary.
func (m *Material) String() string {
	return fmt.Sprintf("Material{%s Kd=(%.3g %.3g %.3g) Ns=%.3g map_Kd=%q}",
		m.Name, m.Diffuse.X, m.Diffuse.Y, m.Diffuse.Z, m.Shininess, m.DiffuseMap)
}

// MaterialLibrary maps material names to materials.
type MaterialLibrary map[string]*Material

// ParseMTL parses a material template library.
// Malformed colours and tags outside a material are logged and skipped;
// only an unparsable number aborts.
func ParseMTL(data []byte, opts Options) (MaterialLibrary, error) {
	start := time.Now()
	log := opts.logger()
	names, err := encoding.NewNameDecoder(opts.Charset)
	if err != nil {
		return nil, err
	}

	lib := make(MaterialLibrary)
	var current *Material

	sc := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		fields := bytes.Fields(sc.Bytes())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		tag := string(fields[0])
		args := fields[1:]

		if tag == tagNewMaterial {
			if len(args) == 0 {
				log.Error("newmtl without a name", zap.Int("line", line))
				current = nil
				continue
			}
			current = NewMaterial(names.Decode(bytes.Join(args, []byte(" "))))
			lib[current.Name] = current
			continue
		}
		if !isMaterialTag(tag) {
			continue
		}
		if current == nil {
			log.Error("material tag before newmtl", zap.String("tag", tag), zap.Int("line", line))
			continue
		}

		if err := current.apply(tag, args, names, log, line); err != nil {
			return nil, lineError(line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mtl: %w", err)
	}

	log.Debug("material library loaded",
		zap.Int("materials", len(lib)),
		zap.Duration("elapsed", time.Since(start)))
	return lib, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string, opts Options) (MaterialLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mtl file: %w", err)
	}
	return ParseMTL(data, opts)
}

func isMaterialTag(tag string) bool {
	switch tag {
	case tagAmbient, tagDiffuse, tagSpecular, tagShininess, tagDissolve, tagTransparency, tagIllum,
		tagAmbientMap, tagDiffuseMap, tagSpecularMap, tagShininessMap,
		tagNormalMap, tagBumpMap, tagBump:
		return true
	}
	return false
}

func (m *Material) apply(tag string, args [][]byte, names *encoding.NameDecoder, log *zap.Logger, line int) error {
	switch tag {
	case tagAmbient:
		return parseColour(&m.Ambient, tag, args, log, line)
	case tagDiffuse:
		return parseColour(&m.Diffuse, tag, args, log, line)
	case tagSpecular:
		return parseColour(&m.Specular, tag, args, log, line)

	case tagShininess, tagDissolve, tagTransparency:
		if len(args) == 0 {
			log.Error("missing value", zap.String("tag", tag), zap.Int("line", line))
			return nil
		}
		v, err := parseFloat(args[0])
		if err != nil {
			return err
		}
		switch tag {
		case tagShininess:
			m.Shininess = v
		case tagDissolve:
			m.Dissolve = v
		default:
			m.Dissolve = 1 - v
		}

	case tagIllum:
		if len(args) == 0 {
			log.Error("missing value", zap.String("tag", tag), zap.Int("line", line))
			return nil
		}
		v, err := strconv.Atoi(string(args[0]))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadNumber, args[0])
		}
		m.Illum = v

	default:
		if len(args) == 0 {
			log.Error("missing texture file name", zap.String("tag", tag), zap.Int("line", line))
			return nil
		}
		// Map options such as "-s 1 1 1" come first; the file name is last.
		file := names.Decode(args[len(args)-1])
		switch tag {
		case tagAmbientMap:
			m.AmbientMap = file
		case tagDiffuseMap:
			m.DiffuseMap = file
		case tagSpecularMap:
			m.SpecularMap = file
		case tagShininessMap:
			m.ShininessMap = file
		default:
			m.NormalMap = file
		}
	}
	return nil
}

// parseColour reads an RGB triple into dst. Fewer than three values leave
// dst unchanged; extra values are ignored.
func parseColour(dst *math.Vec3, tag string, args [][]byte, log *zap.Logger, line int) error {
	if len(args) < 3 {
		log.Error("expected 3 colour components",
			zap.String("tag", tag), zap.Int("got", len(args)), zap.Int("line", line))
		return nil
	}
	if len(args) > 3 {
		log.Warn("extra colour components ignored",
			zap.String("tag", tag), zap.Int("got", len(args)), zap.Int("line", line))
	}

	var rgb [3]float32
	for i := range rgb {
		v, err := parseFloat(args[i])
		if err != nil {
			return err
		}
		rgb[i] = v
	}
	*dst = math.Vec3{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	return nil
}

func parseFloat(b []byte) (float32, error) {
	v, err := strconv.ParseFloat(string(b), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, b)
	}
	return float32(v), nil
}
