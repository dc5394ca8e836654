package textmesh

import (
	"errors"
	"fmt"
)

var (
	// ErrUnimplemented marks configurations that need a feature this package
	// does not provide. Fix the configuration rather than retrying.
	ErrUnimplemented = errors.New("textmesh: not implemented")

	// ErrAutoSize is returned when a size unit cannot resolve to a scalar.
	ErrAutoSize = fmt.Errorf("%w: automatic sizing", ErrUnimplemented)

	// ErrFlatGlyph is returned when no extrusion depth is configured.
	ErrFlatGlyph = fmt.Errorf("%w: 2d glyphs, define a depth", ErrUnimplemented)

	// ErrGlyphUnavailable is matched by a GlyphError.
	ErrGlyphUnavailable = errors.New("textmesh: glyph and fallback both untessellatable")

	ErrInvalidSizeUnit = errors.New("textmesh: invalid size unit")
	ErrInvalidCasing   = errors.New("textmesh: invalid casing")
	ErrInvalidQuality  = errors.New("textmesh: invalid quality")
	ErrInvalidMesh     = errors.New("textmesh: invalid mesh data")
)

// FallbackChar is tessellated in place of a glyph the font cannot produce.
const FallbackChar = '?'

// GlyphError reports a character for which neither the glyph itself nor the
// fallback could be tessellated.
type GlyphError struct {
	Char        rune
	Font        string
	Quality     Quality
	Depth       float32
	Err         error // primary failure
	FallbackErr error // failure of FallbackChar
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("textmesh: glyph %q (font %q, quality %s, depth %g): %v; fallback %q: %v",
		e.Char, e.Font, e.Quality, e.Depth, e.Err, FallbackChar, e.FallbackErr)
}

// Unwrap exposes ErrGlyphUnavailable and both underlying errors.
func (e *GlyphError) Unwrap() []error {
	return []error{ErrGlyphUnavailable, e.Err, e.FallbackErr}
}
