package fontmesh

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/textmesh/pkg/math"
)

// contour is one closed loop of an outline, without a repeated end point.
type contour []math.Vec2

// toVec converts a 26.6 point to design units, flipping sfnt's y-down
// coordinates to y-up.
func toVec(p fixed.Point26_6) math.Vec2 {
	return math.Vec2{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
}

// flatten converts outline segments into polygons, splitting every curve
// into the given number of line segments.
func flatten(segments sfnt.Segments, subdivisions int) []contour {
	if subdivisions < 1 {
		subdivisions = 1
	}
	step := 1 / float32(subdivisions)

	var (
		contours []contour
		cur      contour
		pen      math.Vec2
	)
	flush := func() {
		if c := cleanContour(cur); c != nil {
			contours = append(contours, c)
		}
		cur = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			pen = toVec(seg.Args[0])
			cur = append(cur, pen)

		case sfnt.SegmentOpLineTo:
			pen = toVec(seg.Args[0])
			cur = append(cur, pen)

		case sfnt.SegmentOpQuadTo:
			ctrl, end := toVec(seg.Args[0]), toVec(seg.Args[1])
			for i := 1; i < subdivisions; i++ {
				cur = append(cur, math.QuadBezier(pen, ctrl, end, float32(i)*step))
			}
			cur = append(cur, end)
			pen = end

		case sfnt.SegmentOpCubeTo:
			c1, c2, end := toVec(seg.Args[0]), toVec(seg.Args[1]), toVec(seg.Args[2])
			for i := 1; i < subdivisions; i++ {
				cur = append(cur, math.CubicBezier(pen, c1, c2, end, float32(i)*step))
			}
			cur = append(cur, end)
			pen = end
		}
	}
	flush()

	return contours
}

// cleanContour drops repeated points and the closing point. It returns nil
// for loops that enclose no area.
func cleanContour(c contour) contour {
	out := make(contour, 0, len(c))
	for _, p := range c {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	if len(out) < 3 || math.PolygonArea(out) == 0 {
		return nil
	}
	return out
}
