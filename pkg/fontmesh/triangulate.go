package fontmesh

import (
	gomath "math"
	"slices"
	"sort"

	"github.com/Faultbox/textmesh/pkg/math"
)

// ring is an oriented contour: outers run counter-clockwise, holes clockwise.
type ring struct {
	idx  []uint32 // indices into outline.pts
	hole bool
	area float32 // absolute area
}

// outline holds the flattened contours of one glyph.
type outline struct {
	pts   []math.Vec2
	rings []ring
}

// newOutline classifies contours by containment parity and normalizes their
// winding, so fonts with either winding convention tessellate the same way.
func newOutline(contours []contour) *outline {
	o := &outline{}
	for i, c := range contours {
		depth := 0
		for j, other := range contours {
			if i != j && math.PointInPolygon(c[0], other) {
				depth++
			}
		}
		hole := depth%2 == 1

		area := math.PolygonArea(c)
		pts := slices.Clone(c)
		if (area > 0) == hole {
			slices.Reverse(pts)
		}

		start := uint32(len(o.pts))
		r := ring{hole: hole, area: float32(gomath.Abs(float64(area)))}
		for k := range pts {
			r.idx = append(r.idx, start+uint32(k))
		}
		o.pts = append(o.pts, pts...)
		o.rings = append(o.rings, r)
	}
	return o
}

func (o *outline) ringPoints(i int) []math.Vec2 {
	r := o.rings[i]
	return o.pts[r.idx[0] : r.idx[0]+uint32(len(r.idx))]
}

// triangulate returns the front cap triangles, counter-clockwise.
func (o *outline) triangulate() ([][3]uint32, error) {
	// Each hole belongs to the smallest outer ring that contains it.
	holesOf := make(map[int][]int)
	for i, r := range o.rings {
		if !r.hole {
			continue
		}
		sample := o.pts[r.idx[0]]
		parent := -1
		for j, outer := range o.rings {
			if outer.hole || !math.PointInPolygon(sample, o.ringPoints(j)) {
				continue
			}
			if parent < 0 || outer.area < o.rings[parent].area {
				parent = j
			}
		}
		if parent >= 0 {
			holesOf[parent] = append(holesOf[parent], i)
		}
	}

	var faces [][3]uint32
	for i, r := range o.rings {
		if r.hole {
			continue
		}
		poly := o.bridgeHoles(r.idx, holesOf[i])
		faces = o.earClip(poly, faces)
	}
	if len(faces) == 0 {
		return nil, ErrTessellation
	}
	return faces, nil
}

// bridgeHoles splices every hole into the outer polygon through a pair of
// coincident edges, turning the shape into one weakly simple polygon.
// Holes are processed right to left.
func (o *outline) bridgeHoles(outer []uint32, holes []int) []uint32 {
	poly := slices.Clone(outer)

	type holeRef struct {
		idx   []uint32
		right int // position of the rightmost vertex
	}
	refs := make([]holeRef, 0, len(holes))
	for _, h := range holes {
		idx := o.rings[h].idx
		right := 0
		for k, v := range idx {
			if o.pts[v].X > o.pts[idx[right]].X {
				right = k
			}
		}
		refs = append(refs, holeRef{idx: idx, right: right})
	}
	sort.SliceStable(refs, func(a, b int) bool {
		return o.pts[refs[a].idx[refs[a].right]].X > o.pts[refs[b].idx[refs[b].right]].X
	})

	for _, h := range refs {
		m := o.pts[h.idx[h.right]]
		pi, ok := o.bridgeVertex(poly, m)
		if !ok {
			continue
		}

		merged := make([]uint32, 0, len(poly)+len(h.idx)+2)
		merged = append(merged, poly[:pi+1]...)
		merged = append(merged, h.idx[h.right:]...)
		merged = append(merged, h.idx[:h.right+1]...)
		merged = append(merged, poly[pi:]...)
		poly = merged
	}
	return poly
}

// bridgeVertex finds a polygon vertex visible from m, the rightmost point
// of a hole, by casting a ray towards +X.
func (o *outline) bridgeVertex(poly []uint32, m math.Vec2) (int, bool) {
	n := len(poly)
	best, bestX := -1, float32(gomath.MaxFloat32)
	for i := range poly {
		a, b := o.pts[poly[i]], o.pts[poly[(i+1)%n]]
		// The ray leaves the solid through an upward edge.
		if a.Y > m.Y || b.Y < m.Y || a.Y == b.Y {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < m.X || x >= bestX {
			continue
		}
		best, bestX = i, x
	}
	if best < 0 {
		return 0, false
	}

	ia, ib := best, (best+1)%n
	pa, pb := o.pts[poly[ia]], o.pts[poly[ib]]
	if pa.Y == m.Y {
		return ia, true
	}
	if pb.Y == m.Y {
		return ib, true
	}

	pi := ia
	if pb.X > pa.X {
		pi = ib
	}
	hit := math.Vec2{X: bestX, Y: m.Y}
	p := o.pts[poly[pi]]

	// A vertex inside the triangle (m, hit, p) would block the bridge; the
	// one closest in angle to the ray is visible.
	bestAngle, bestDist := bridgeAngle(m, p), p.Sub(m).Dot(p.Sub(m))
	for j := range poly {
		r := o.pts[poly[j]]
		if j == pi || r == p || r == m || !inTriangle(r, m, hit, p, true) {
			continue
		}
		angle, dist := bridgeAngle(m, r), r.Sub(m).Dot(r.Sub(m))
		if angle < bestAngle || (angle == bestAngle && dist < bestDist) {
			pi, bestAngle, bestDist = j, angle, dist
		}
	}
	return pi, true
}

func bridgeAngle(m, r math.Vec2) float64 {
	return gomath.Atan2(gomath.Abs(float64(r.Y-m.Y)), float64(r.X-m.X))
}

// earClip triangulates a counter-clockwise polygon and appends the
// triangles to faces.
func (o *outline) earClip(poly []uint32, faces [][3]uint32) [][3]uint32 {
	idx := slices.Clone(poly)
	start := 0
	for len(idx) > 3 {
		n := len(idx)
		i, emit := o.nextEar(idx, start)
		if emit {
			faces = append(faces, [3]uint32{idx[(i+n-1)%n], idx[i], idx[(i+1)%n]})
		}
		idx = slices.Delete(idx, i, i+1)
		start = i
	}
	if len(idx) == 3 && orient(o.pts[idx[0]], o.pts[idx[1]], o.pts[idx[2]]) > 0 {
		faces = append(faces, [3]uint32{idx[0], idx[1], idx[2]})
	}
	return faces
}

// nextEar picks the next vertex to cut off and reports whether its triangle
// has area. Flat vertices are dropped first. Points on the boundary of a
// candidate ear block it in the first pass only.
func (o *outline) nextEar(idx []uint32, start int) (int, bool) {
	n := len(idx)
	corners := func(i int) (a, b, c math.Vec2) {
		return o.pts[idx[(i+n-1)%n]], o.pts[idx[i]], o.pts[idx[(i+1)%n]]
	}

	for _, inclusive := range []bool{true, false} {
		for k := 0; k < n; k++ {
			i := (start + k) % n
			a, b, c := corners(i)
			area := orient(a, b, c)
			if area == 0 {
				return i, false
			}
			if area > 0 && o.isEar(idx, i, inclusive) {
				return i, true
			}
		}
	}

	// Numerically stuck: cut the most convex vertex.
	best, bestArea := 0, 0.0
	for i := 0; i < n; i++ {
		a, b, c := corners(i)
		if area := orient(a, b, c); area > bestArea {
			best, bestArea = i, area
		}
	}
	return best, bestArea > 0
}

func (o *outline) isEar(idx []uint32, i int, inclusive bool) bool {
	n := len(idx)
	ip, in := (i+n-1)%n, (i+1)%n
	a, b, c := o.pts[idx[ip]], o.pts[idx[i]], o.pts[idx[in]]
	for j := 0; j < n; j++ {
		if j == ip || j == i || j == in {
			continue
		}
		p := o.pts[idx[j]]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c, inclusive) {
			return false
		}
	}
	return true
}

// orient returns twice the signed area of abc. Computed in float64 so
// collinear design-unit points give exactly zero.
func orient(a, b, c math.Vec2) float64 {
	abx, aby := float64(b.X)-float64(a.X), float64(b.Y)-float64(a.Y)
	acx, acy := float64(c.X)-float64(a.X), float64(c.Y)-float64(a.Y)
	return abx*acy - aby*acx
}

func inTriangle(p, a, b, c math.Vec2, inclusive bool) bool {
	d1, d2, d3 := orient(a, b, p), orient(b, c, p), orient(c, a, p)
	if inclusive {
		hasNeg := d1 < 0 || d2 < 0 || d3 < 0
		hasPos := d1 > 0 || d2 > 0 || d3 > 0
		return !(hasNeg && hasPos)
	}
	return (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0)
}
