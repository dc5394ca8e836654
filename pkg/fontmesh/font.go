// Package fontmesh tessellates TrueType/OpenType glyph outlines into
// extruded 3D meshes.
package fontmesh

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/textmesh/pkg/textmesh"
)

var (
	ErrGlyphNotFound = errors.New("fontmesh: glyph not found")
	ErrTessellation  = errors.New("fontmesh: tessellation failed")
)

// Font is a parsed font that produces glyph meshes. Coordinates of produced
// meshes are in em units: a glyph as tall as the em square is one unit tall.
//
// A Font is not safe for concurrent use.
type Font struct {
	sf   *sfnt.Font
	name string
	upem sfnt.Units
	buf  sfnt.Buffer
}

// Parse parses TrueType or OpenType font data. The data must not be
// modified while the Font is in use.
func Parse(data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontmesh: parsing font: %w", err)
	}

	f := &Font{
		sf:   sf,
		upem: sf.UnitsPerEm(),
	}
	if name, err := sf.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.name = name
	} else if name, err := sf.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// Name returns the full font name, or the family name if the font has no
// full name.
func (f *Font) Name() string {
	return f.name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.sf.NumGlyphs()
}

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() int {
	return int(f.upem)
}

// HasGlyph reports whether the font maps char to a glyph.
func (f *Font) HasGlyph(char rune) bool {
	idx, err := f.sf.GlyphIndex(&f.buf, char)
	return err == nil && idx != 0
}

// GlyphToMesh3D tessellates char at the given quality and extrudes it by
// depth along Z, centered on z=0. Glyphs without an outline, like spaces,
// produce an empty mesh.
func (f *Font) GlyphToMesh3D(char rune, quality textmesh.Quality, depth float32) (textmesh.GlyphMesh, error) {
	idx, err := f.sf.GlyphIndex(&f.buf, char)
	if err != nil {
		return textmesh.GlyphMesh{}, fmt.Errorf("fontmesh: glyph index for %q: %w", char, err)
	}
	if idx == 0 {
		return textmesh.GlyphMesh{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, char)
	}

	// Loading at ppem == unitsPerEm keeps coordinates in design units.
	segments, err := f.sf.LoadGlyph(&f.buf, idx, fixed.Int26_6(f.upem)<<6, nil)
	if err != nil {
		return textmesh.GlyphMesh{}, fmt.Errorf("%w: glyph %q: %w", ErrTessellation, char, err)
	}

	contours := flatten(segments, quality.Subdivisions())
	if len(contours) == 0 {
		return textmesh.GlyphMesh{}, nil
	}

	outline := newOutline(contours)
	faces, err := outline.triangulate()
	if err != nil {
		return textmesh.GlyphMesh{}, fmt.Errorf("glyph %q: %w", char, err)
	}

	return outline.extrude(faces, depth, 1/float32(f.upem)), nil
}
