// Package textmesh lays out strings of text as extruded 3D triangle meshes.
//
// Glyph geometry comes from a GlyphProvider and is memoized in a MeshCache.
// Generate positions the glyphs, applies casing, spacing, newline and wrap
// rules, and concatenates everything into one MeshData.
package textmesh

import (
	"fmt"
	"strconv"
	"strings"
)

// unitKind tags the value stored in a SizeUnit.
type unitKind uint8

const (
	unitUnset unitKind = iota
	unitAbsolute
	unitAuto
)

// SizeUnit is either an absolute scalar or an automatic size that the
// caller expects to be derived from context. The zero value is unset.
type SizeUnit struct {
	kind  unitKind
	value float32
}

// Absolute returns a size unit holding a concrete scalar.
func Absolute(v float32) SizeUnit {
	return SizeUnit{kind: unitAbsolute, value: v}
}

// Auto returns a size unit that has to be derived automatically.
func Auto() SizeUnit {
	return SizeUnit{kind: unitAuto}
}

// Resolve returns the concrete scalar. It reports false for unset and
// automatic units.
func (u SizeUnit) Resolve() (float32, bool) {
	if u.kind != unitAbsolute {
		return 0, false
	}
	return u.value, true
}

// IsSet reports whether the unit carries any value (absolute or auto).
func (u SizeUnit) IsSet() bool {
	return u.kind != unitUnset
}

// IsAuto reports whether the unit is an automatic size.
func (u SizeUnit) IsAuto() bool {
	return u.kind == unitAuto
}

// String returns the textual form accepted by ParseSizeUnit.
func (u SizeUnit) String() string {
	switch u.kind {
	case unitAbsolute:
		return strconv.FormatFloat(float64(u.value), 'g', -1, 32)
	case unitAuto:
		return "auto"
	default:
		return ""
	}
}

// ParseSizeUnit parses "" (unset), "auto" or a decimal number.
func ParseSizeUnit(s string) (SizeUnit, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return SizeUnit{}, nil
	case "auto":
		return Auto(), nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return SizeUnit{}, fmt.Errorf("%w: %q", ErrInvalidSizeUnit, s)
	}
	return Absolute(float32(v)), nil
}

// Casing selects a case transform applied to the whole string before layout.
type Casing uint8

const (
	// CasingUppercase forces upper case.
	CasingUppercase Casing = 1 << iota
	// CasingLowercase forces lower case.
	CasingLowercase
)

// CasingNone preserves the original case.
const CasingNone Casing = 0

// Contains reports whether all bits of flag are set.
func (c Casing) Contains(flag Casing) bool {
	return c&flag == flag && flag != 0
}

// String returns a human-readable casing name.
func (c Casing) String() string {
	switch {
	case c.Contains(CasingUppercase):
		return "upper"
	case c.Contains(CasingLowercase):
		return "lower"
	default:
		return "none"
	}
}

// ParseCasing parses a casing name.
func ParseCasing(s string) (Casing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CasingNone, nil
	case "upper", "uppercase":
		return CasingUppercase, nil
	case "lower", "lowercase":
		return CasingLowercase, nil
	default:
		return CasingNone, fmt.Errorf("%w: %q", ErrInvalidCasing, s)
	}
}

// Quality controls how finely glyph curves are subdivided during
// tessellation. It never affects layout math.
type Quality uint8

const (
	QualityLow Quality = iota + 1
	QualityMedium
	QualityHigh
)

// Subdivisions returns the number of line segments each outline curve is
// flattened into.
func (q Quality) Subdivisions() int {
	switch q {
	case QualityLow:
		return 3
	case QualityHigh:
		return 12
	default:
		return 6
	}
}

// String returns a human-readable quality name.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return fmt.Sprintf("Unknown(%d)", q)
	}
}

// ParseQuality parses a quality name. An empty string selects medium.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return QualityLow, nil
	case "", "medium":
		return QualityMedium, nil
	case "high":
		return QualityHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
	}
}

// Style describes how glyphs look.
type Style struct {
	Font     string   // Font reference, used for lookup and diagnostics
	FontSize SizeUnit // Uniform scale for glyph geometry and spacing
	Casing   Casing
	Quality  Quality
	Depth    SizeUnit // Default extrusion depth
}

// Size describes the box the text is laid out in.
type Size struct {
	Width    SizeUnit // Only used for wrap decisions
	Height   SizeUnit // Accepted but unused by layout
	Depth    SizeUnit // Overrides Style.Depth when set
	Wrapping bool
}

// Request is one meshing job. It is not retained by Generate.
type Request struct {
	Text  string
	Style Style
	Size  Size
}

// NewRequest returns a request for text with default style and size.
func NewRequest(text string) *Request {
	return &Request{
		Text: text,
		Style: Style{
			FontSize: Absolute(18),
			Quality:  QualityMedium,
			Depth:    Absolute(0.08),
		},
		Size: Size{
			Width:    Absolute(72),
			Height:   Absolute(180),
			Wrapping: true,
		},
	}
}

// depth returns the effective extrusion depth.
func (r *Request) depth() (float32, error) {
	unit := r.Style.Depth
	if r.Size.Depth.IsSet() {
		unit = r.Size.Depth
	}
	if !unit.IsSet() {
		return 0, ErrFlatGlyph
	}
	d, ok := unit.Resolve()
	if !ok {
		return 0, fmt.Errorf("%w: depth %s", ErrAutoSize, unit)
	}
	return d, nil
}
