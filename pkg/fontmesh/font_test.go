package fontmesh

import (
	"errors"
	gomath "math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/Faultbox/textmesh/pkg/math"
	"github.com/Faultbox/textmesh/pkg/textmesh"
)

func loadGoRegular(t *testing.T) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to parse Go Regular: %v", err)
	}
	return f
}

func TestParse(t *testing.T) {
	f := loadGoRegular(t)

	if f.Name() == "" {
		t.Error("expected a font name")
	}
	if f.NumGlyphs() == 0 {
		t.Error("expected glyphs in font")
	}
	if f.UnitsPerEm() <= 0 {
		t.Errorf("expected positive units per em, got %d", f.UnitsPerEm())
	}
	if !f.HasGlyph('a') {
		t.Error("expected glyph for 'a'")
	}
	if f.HasGlyph(0x1F600) {
		t.Error("did not expect an emoji glyph")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("definitely not a font")); err == nil {
		t.Error("expected error parsing garbage, got nil")
	}
}

func TestGlyphToMesh3DPrintableASCII(t *testing.T) {
	f := loadGoRegular(t)
	const depth = 0.08

	for r := '!'; r <= '~'; r++ {
		mesh, err := f.GlyphToMesh3D(r, textmesh.QualityMedium, depth)
		if err != nil {
			t.Errorf("glyph %q: unexpected error: %v", r, err)
			continue
		}
		if len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
			t.Errorf("glyph %q: empty mesh", r)
			continue
		}
		if len(mesh.Normals) != len(mesh.Vertices) {
			t.Errorf("glyph %q: %d normals for %d vertices", r, len(mesh.Normals), len(mesh.Vertices))
		}
		for _, face := range mesh.Faces {
			for _, idx := range face {
				if int(idx) >= len(mesh.Vertices) {
					t.Fatalf("glyph %q: face index %d out of range", r, idx)
				}
			}
		}
		for i, n := range mesh.Normals {
			l := math.Vec3From(n).Length()
			if l < 0.999 || l > 1.001 {
				t.Fatalf("glyph %q: normal %d has length %v", r, i, l)
			}
		}
	}
}

// The front cap must cover exactly the glyph area: outers minus holes.
func TestFrontCapArea(t *testing.T) {
	f := loadGoRegular(t)

	for _, r := range "aBgO%&@8i" {
		idx, err := f.sf.GlyphIndex(&f.buf, r)
		if err != nil || idx == 0 {
			t.Fatalf("glyph %q not found", r)
		}
		segments, err := f.sf.LoadGlyph(&f.buf, idx, 2048<<6, nil)
		if err != nil {
			t.Fatalf("glyph %q: %v", r, err)
		}
		o := newOutline(flatten(segments, textmesh.QualityHigh.Subdivisions()))

		var want float64
		for _, ring := range o.rings {
			if ring.hole {
				want -= float64(ring.area)
			} else {
				want += float64(ring.area)
			}
		}

		faces, err := o.triangulate()
		if err != nil {
			t.Fatalf("glyph %q: %v", r, err)
		}
		var got float64
		for _, face := range faces {
			got += orient(o.pts[face[0]], o.pts[face[1]], o.pts[face[2]]) / 2
		}

		if gomath.Abs(got-want) > want*1e-3 {
			t.Errorf("glyph %q: cap area %v, want %v", r, got, want)
		}
	}
}

func TestGlyphHoles(t *testing.T) {
	f := loadGoRegular(t)

	tests := []struct {
		char   rune
		outers int
		holes  int
	}{
		{'l', 1, 0},
		{'O', 1, 1},
		{'B', 1, 2},
		{'i', 2, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			idx, _ := f.sf.GlyphIndex(&f.buf, tt.char)
			segments, err := f.sf.LoadGlyph(&f.buf, idx, 2048<<6, nil)
			if err != nil {
				t.Fatalf("failed to load glyph: %v", err)
			}
			o := newOutline(flatten(segments, 3))

			var outers, holes int
			for i, r := range o.rings {
				area := math.PolygonArea(o.ringPoints(i))
				if r.hole {
					holes++
					if area >= 0 {
						t.Errorf("hole should run clockwise, area %v", area)
					}
				} else {
					outers++
					if area <= 0 {
						t.Errorf("outer should run counter-clockwise, area %v", area)
					}
				}
			}
			if outers != tt.outers || holes != tt.holes {
				t.Errorf("got %d outers and %d holes, want %d and %d", outers, holes, tt.outers, tt.holes)
			}
		})
	}
}

func TestGlyphNotFound(t *testing.T) {
	f := loadGoRegular(t)

	_, err := f.GlyphToMesh3D(0x1F600, textmesh.QualityLow, 0.1)
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("expected ErrGlyphNotFound, got %v", err)
	}
}

func TestSpaceGlyphIsEmpty(t *testing.T) {
	f := loadGoRegular(t)

	mesh, err := f.GlyphToMesh3D(' ', textmesh.QualityLow, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Vertices) != 0 || len(mesh.Faces) != 0 {
		t.Errorf("expected empty mesh, got %d vertices", len(mesh.Vertices))
	}
}

func TestQualityAddsDetail(t *testing.T) {
	f := loadGoRegular(t)

	low, err := f.GlyphToMesh3D('o', textmesh.QualityLow, 0.1)
	if err != nil {
		t.Fatalf("low quality: %v", err)
	}
	high, err := f.GlyphToMesh3D('o', textmesh.QualityHigh, 0.1)
	if err != nil {
		t.Fatalf("high quality: %v", err)
	}
	if len(high.Vertices) <= len(low.Vertices) {
		t.Errorf("expected more vertices at high quality: low=%d high=%d", len(low.Vertices), len(high.Vertices))
	}
}

func TestDepthExtent(t *testing.T) {
	f := loadGoRegular(t)

	for _, depth := range []float32{0.05, 0.3} {
		mesh, err := f.GlyphToMesh3D('H', textmesh.QualityMedium, depth)
		if err != nil {
			t.Fatalf("depth %v: %v", depth, err)
		}
		zmin, zmax := float32(gomath.MaxFloat32), float32(-gomath.MaxFloat32)
		for _, v := range mesh.Vertices {
			zmin = min(zmin, v[2])
			zmax = max(zmax, v[2])
		}
		if zmin != -depth/2 || zmax != depth/2 {
			t.Errorf("depth %v: z range [%v, %v], want [%v, %v]", depth, zmin, zmax, -depth/2, depth/2)
		}
	}
}

func TestGlyphInEmUnits(t *testing.T) {
	f := loadGoRegular(t)

	mesh, err := f.GlyphToMesh3D('H', textmesh.QualityLow, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, ymin, ymax := mesh.Bounds2D()
	// Capital letters sit on the baseline and reach well below one em.
	if ymin < -0.01 || ymax > 1 || ymax < 0.5 {
		t.Errorf("unexpected vertical extent [%v, %v]", ymin, ymax)
	}
}
