package mimesis

import (
	"math"
	"sort"
)

// Extrude turns a flat triangulated polygon into a solid mesh: one copy
// of the silhouette at z=0, a second at z=depth, and a ring of sidewall
// quads connecting them along the triangulation's outer silhouette and
// every hole boundary (which copy each face group uses is described
// below). imgW/imgH are the source image dimensions the 2D coordinates
// are expressed in, used to normalize front/back UVs to U in [0, 1]
// and V in [-1, 0].
//
// Front and back vertices carry the standard top-left-origin-to-OBJ
// flip (x, y) -> (x, -y, z); UVs follow the same flip, (x/w, -y/h), so
// the emitted texture sits right-side-up when the material's image is
// read in its native row order.
func Extrude(mesh Mesh2D, depth, imgW, imgH float64) Mesh3D {
	n := len(mesh.Vertices)

	out := Mesh3D{
		Vertices: make([]Vec3, 0, n*2),
		UVs:      make([]Vec2, 0, n*2),
	}

	for _, v := range mesh.Vertices {
		out.Vertices = append(out.Vertices, Vec3{X: v.X, Y: -v.Y, Z: 0})
		out.UVs = append(out.UVs, Vec2{U: v.X / imgW, V: -v.Y / imgH})
	}
	for _, v := range mesh.Vertices {
		out.Vertices = append(out.Vertices, Vec3{X: v.X, Y: -v.Y, Z: depth})
		out.UVs = append(out.UVs, Vec2{U: v.X / imgW, V: -v.Y / imgH})
	}

	// The vertex set at z=0 is the "front" duplication and the set at
	// z=depth is the "back" duplication, but the face *groups* cross
	// them: the front-textured face group is built from the z=depth
	// vertices with winding reversed, so that after the y-flip its
	// outward normal points toward -z, which is the face the front
	// texture paints. The back face group keeps the z=0 vertices in
	// their original winding.
	front := FaceGroup{Name: "front"}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+n, mesh.Indices[i+1]+n, mesh.Indices[i+2]+n
		front.Triangles = append(front.Triangles, Triangle{
			{V: c, VT: c}, {V: b, VT: b}, {V: a, VT: a},
		})
	}

	back := FaceGroup{Name: "back"}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		back.Triangles = append(back.Triangles, Triangle{
			{V: a, VT: a}, {V: b, VT: b}, {V: c, VT: c},
		})
	}

	side := buildSidewalls(mesh, depth, &out)

	out.Faces = []FaceGroup{front, back, side}
	return out
}

// boundaryEdge is a triangle edge with exactly one owning triangle,
// retained in the directed order it was first encountered.
type boundaryEdge struct {
	a, b int
}

// buildSidewalls detects the triangulation's boundary edges (an edge
// shared by exactly one triangle), orders them by min(i0,i1) for
// deterministic UV assignment, and emits one UV-unique quad per
// boundary edge with U parameterized by arc length around the total
// boundary perimeter and V spanning front (0) to back (-1).
func buildSidewalls(mesh Mesh2D, depth float64, out *Mesh3D) FaceGroup {
	type edgeKey [2]int
	key := func(a, b int) edgeKey {
		if a < b {
			return edgeKey{a, b}
		}
		return edgeKey{b, a}
	}

	count := make(map[edgeKey]int)
	var directed []boundaryEdge

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		edges := [3][2]int{{a, b}, {b, c}, {c, a}}
		for _, e := range edges {
			count[key(e[0], e[1])]++
		}
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		edges := [3][2]int{{a, b}, {b, c}, {c, a}}
		for _, e := range edges {
			if count[key(e[0], e[1])] == 1 {
				directed = append(directed, boundaryEdge{a: e[0], b: e[1]})
			}
		}
	}

	sort.Slice(directed, func(i, j int) bool {
		ki, kj := key(directed[i].a, directed[i].b), key(directed[j].a, directed[j].b)
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})

	perimeter := 0.0
	for _, e := range directed {
		perimeter += dist(mesh.Vertices[e.a], mesh.Vertices[e.b])
	}

	side := FaceGroup{Name: "side"}
	if perimeter == 0 {
		return side
	}

	u := 0.0
	for _, e := range directed {
		p0, p1 := mesh.Vertices[e.a], mesh.Vertices[e.b]
		length := dist(p0, p1)
		u0 := u / perimeter
		u1 := (u + length) / perimeter
		u += length

		frontP0 := Vec3{X: p0.X, Y: -p0.Y, Z: 0}
		frontP1 := Vec3{X: p1.X, Y: -p1.Y, Z: 0}
		backP1 := Vec3{X: p1.X, Y: -p1.Y, Z: depth}
		backP0 := Vec3{X: p0.X, Y: -p0.Y, Z: depth}

		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, frontP0, frontP1, backP1, backP0)
		out.UVs = append(out.UVs,
			Vec2{U: u0, V: 0},
			Vec2{U: u1, V: 0},
			Vec2{U: u1, V: -1},
			Vec2{U: u0, V: -1},
		)

		b, bp1, bp2, bp3 := base, base+1, base+2, base+3
		side.Triangles = append(side.Triangles,
			Triangle{{V: b, VT: b}, {V: bp1, VT: bp1}, {V: bp2, VT: bp2}},
			Triangle{{V: b, VT: b}, {V: bp2, VT: bp2}, {V: bp3, VT: bp3}},
		)
	}

	return side
}

// arcLength returns the length of the closed polyline through pts,
// including the segment from the last point back to the first.
func arcLength(pts []Point2) float64 {
	total := 0.0
	for i := 0; i < len(pts); i++ {
		total += dist(pts[i], pts[(i+1)%len(pts)])
	}
	return math.Abs(total)
}
