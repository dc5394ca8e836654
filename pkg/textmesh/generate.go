package textmesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/textmesh/pkg/math"
)

// Layout constants, as fractions of the font size.
const (
	spaceWidth        = 0.2
	horizontalSpacing = 0.08
	verticalSpacing   = 0.1
)

// placeholderUV is assigned to every vertex; texturing is not implemented.
var placeholderUV = [2]float32{0, 1}

// GlyphProvider tessellates single characters into extruded meshes.
type GlyphProvider interface {
	GlyphToMesh3D(char rune, quality Quality, depth float32) (GlyphMesh, error)
}

// applyCasing transforms the whole string once before layout.
func applyCasing(text string, casing Casing) string {
	switch {
	case casing.Contains(CasingUppercase):
		return cases.Upper(language.Und).String(text)
	case casing.Contains(CasingLowercase):
		return cases.Lower(language.Und).String(text)
	default:
		return text
	}
}

// Generate lays out req.Text with glyphs from font and returns the combined
// mesh. Glyph meshes are looked up in cache and produced on a miss; a nil
// cache means a fresh cache that is dropped when Generate returns.
//
// A glyph the font cannot tessellate is replaced by FallbackChar once; if
// that fails too, a *GlyphError is returned. Configurations that need
// automatic sizing or flat glyphs fail with an error wrapping
// ErrUnimplemented. No partial mesh is returned on error.
func Generate(req *Request, font GlyphProvider, cache *MeshCache) (*MeshData, error) {
	log := Logger()
	log.Debug("generate text mesh", zap.String("text", req.Text))

	if cache == nil {
		cache = NewMeshCache()
	}

	scalar, ok := req.Style.FontSize.Resolve()
	if !ok {
		return nil, fmt.Errorf("%w: font size %s", ErrAutoSize, req.Style.FontSize)
	}

	var wrapWidth float32
	if req.Size.Wrapping {
		if wrapWidth, ok = req.Size.Width.Resolve(); !ok {
			return nil, fmt.Errorf("%w: width %s", ErrAutoSize, req.Size.Width)
		}
	}

	// Only glyphs with geometry need a depth, so the error is held back
	// until one shows up.
	depth, depthErr := req.depth()

	text := applyCasing(req.Text, req.Style.Casing)
	spacing := math.Vec2{X: horizontalSpacing, Y: verticalSpacing}.Scale(scalar)

	var (
		vertices [][3]float32
		normals  [][3]float32
		indices  []uint32

		scaledOffset   math.Vec2
		rowMaxHeight   float32
		verticesOffset uint32
	)
	quality := req.Style.Quality

	newLine := func() {
		scaledOffset.X = 0
		scaledOffset.Y -= rowMaxHeight + spacing.Y
	}

	for _, char := range text {
		switch char {
		case ' ':
			scaledOffset.X += spaceWidth*scalar + spacing.X
			continue
		case '\n':
			newLine()
			continue
		}

		if depthErr != nil {
			return nil, depthErr
		}

		mesh, err := cache.GetOrInsert(NewCacheKey(char, depth, quality), func() (GlyphMesh, error) {
			return produceGlyph(font, req, char, depth)
		})
		if err != nil {
			return nil, err
		}

		xmin, xmax, ymin, ymax := mesh.Bounds2D()

		if h := (ymax - ymin) * scalar; rowMaxHeight < h {
			rowMaxHeight = h
		}

		for _, v := range mesh.Vertices {
			vertices = append(vertices, [3]float32{
				v[0]*scalar + scaledOffset.X - xmin*scalar,
				v[1]*scalar + scaledOffset.Y,
				v[2] * scalar,
			})
		}
		normals = append(normals, mesh.Normals...)

		for _, f := range mesh.Faces {
			indices = append(indices,
				f[0]+verticesOffset,
				f[1]+verticesOffset,
				f[2]+verticesOffset,
			)
		}
		verticesOffset += uint32(mesh.VertexCount())

		scaledOffset.X += (xmax-xmin)*scalar + spacing.X

		// One-glyph lookahead using the font size as the next glyph's width.
		if req.Size.Wrapping && scaledOffset.X+scalar+spacing.X > wrapWidth {
			newLine()
		}
	}

	uvs := make([][2]float32, len(vertices))
	for i := range uvs {
		uvs[i] = placeholderUV
	}

	return &MeshData{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
		UVs:      uvs,
	}, nil
}

// produceGlyph tessellates char, falling back to FallbackChar once.
func produceGlyph(font GlyphProvider, req *Request, char rune, depth float32) (GlyphMesh, error) {
	quality := req.Style.Quality
	mesh, err := font.GlyphToMesh3D(char, quality, depth)
	if err == nil {
		return mesh, nil
	}

	Logger().Warn("failed to convert glyph to 3d mesh, falling back",
		zap.String("char", string(char)),
		zap.String("font", req.Style.Font),
		zap.Stringer("quality", quality),
		zap.Float32("depth", depth),
		zap.String("fallback", string(FallbackChar)),
		zap.Error(err))

	mesh, fallbackErr := font.GlyphToMesh3D(FallbackChar, quality, depth)
	if fallbackErr != nil {
		return GlyphMesh{}, &GlyphError{
			Char:        char,
			Font:        req.Style.Font,
			Quality:     quality,
			Depth:       depth,
			Err:         err,
			FallbackErr: fallbackErr,
		}
	}
	return mesh, nil
}

// IsUnimplemented reports whether err stems from a configuration that needs
// an unimplemented feature.
func IsUnimplemented(err error) bool {
	return errors.Is(err, ErrUnimplemented)
}
