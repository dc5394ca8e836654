package fontmesh

import (
	"github.com/Faultbox/textmesh/pkg/math"
	"github.com/Faultbox/textmesh/pkg/textmesh"
)

var (
	frontNormal = math.Vec3{Z: 1}.Array()
	backNormal  = math.Vec3{Z: -1}.Array()
)

// extrude builds the solid: front cap at z=+depth/2, back cap at z=-depth/2
// with reversed winding, and one flat-shaded quad per contour edge.
// Positions are multiplied by scale.
func (o *outline) extrude(faces [][3]uint32, depth, scale float32) textmesh.GlyphMesh {
	half := depth / 2
	n := uint32(len(o.pts))

	var sideVerts int
	for _, r := range o.rings {
		sideVerts += 4 * len(r.idx)
	}
	mesh := textmesh.GlyphMesh{
		Vertices: make([][3]float32, 0, 2*len(o.pts)+sideVerts),
		Normals:  make([][3]float32, 0, 2*len(o.pts)+sideVerts),
		Faces:    make([][3]uint32, 0, 2*len(faces)+sideVerts/2),
	}

	for side, z := range []float32{half, -half} {
		normal := frontNormal
		if side == 1 {
			normal = backNormal
		}
		for _, p := range o.pts {
			mesh.Vertices = append(mesh.Vertices, [3]float32{p.X * scale, p.Y * scale, z})
			mesh.Normals = append(mesh.Normals, normal)
		}
	}
	for _, f := range faces {
		mesh.Faces = append(mesh.Faces, f, [3]uint32{f[2] + n, f[1] + n, f[0] + n})
	}

	for _, r := range o.rings {
		for k := range r.idx {
			p0, p1 := o.pts[r.idx[k]], o.pts[r.idx[(k+1)%len(r.idx)]]
			edge := p1.Sub(p0)
			if edge == (math.Vec2{}) {
				continue
			}
			out := edge.Perp()
			normal := math.Vec3{X: out.X, Y: out.Y}.Normalize().Array()

			a, b := p0.Scale(scale), p1.Scale(scale)
			base := uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices,
				[3]float32{a.X, a.Y, half},
				[3]float32{a.X, a.Y, -half},
				[3]float32{b.X, b.Y, -half},
				[3]float32{b.X, b.Y, half},
			)
			mesh.Normals = append(mesh.Normals, normal, normal, normal, normal)
			mesh.Faces = append(mesh.Faces,
				[3]uint32{base, base + 1, base + 2},
				[3]uint32{base, base + 2, base + 3},
			)
		}
	}

	return mesh
}
