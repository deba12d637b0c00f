package mimesis

import (
	"errors"
	"sort"
)

// Mesh2D is a flat triangle soup over a polygon: Vertices holds every
// point the triangulation touched (including the duplicated points a
// hole bridge introduces), Indices is the triangle list, three entries
// per triangle, indexing into Vertices.
type Mesh2D struct {
	Vertices []Point2
	Indices  []int
}

// Triangulate ear-clips polygon p into a Mesh2D. Holes are first
// stitched into the exterior ring with zero-width bridge edges (the
// classic hole-elimination technique), producing one simple polygon
// that a plain ear-clip can then consume; TriangulationFailed is
// returned if no ear can be found, which happens when smoothing has
// introduced a self-intersection.
func Triangulate(p Polygon) (Mesh2D, error) {
	verts, err := mergeHoles(p)
	if err != nil {
		return Mesh2D{}, wrapError(TriangulationFailed, "could not merge holes into exterior", err)
	}

	indices, err := earClip(verts)
	if err != nil {
		return Mesh2D{}, wrapError(TriangulationFailed, "ear clipping failed", err)
	}

	return Mesh2D{Vertices: verts, Indices: indices}, nil
}

// mergeHoles returns a single simple polygon's vertex list by bridging
// each interior ring into the exterior in turn, each bridge a
// degenerate zero-area channel from the hole's rightmost vertex to the
// nearest exterior (or already-merged) vertex with clear line of sight.
func mergeHoles(p Polygon) ([]Point2, error) {
	outer := append([]Point2{}, p.Exterior.open()...)
	if signedAreaOf(outer) < 0 {
		reverse(outer)
	}
	if len(outer) < 3 {
		return nil, errors.New("exterior ring has fewer than 3 vertices")
	}

	holes := make([]LinearRing, len(p.Interiors))
	copy(holes, p.Interiors)
	sort.Slice(holes, func(i, j int) bool {
		_, _, maxXi, _ := holes[i].boundingBox()
		_, _, maxXj, _ := holes[j].boundingBox()
		return maxXi > maxXj
	})

	for _, hole := range holes {
		holePts := append([]Point2{}, hole.open()...)
		if signedAreaOf(holePts) > 0 {
			reverse(holePts)
		}
		if len(holePts) < 3 {
			continue
		}

		holeIdx := 0
		for i, p := range holePts {
			if p.X > holePts[holeIdx].X {
				holeIdx = i
			}
		}

		outerIdx, ok := findBridge(outer, holePts[holeIdx], outer)
		if !ok {
			return nil, errors.New("no visible bridge vertex found for hole")
		}

		merged := make([]Point2, 0, len(outer)+len(holePts)+2)
		merged = append(merged, outer[:outerIdx+1]...)
		for i := 0; i <= len(holePts); i++ {
			merged = append(merged, holePts[(holeIdx+i)%len(holePts)])
		}
		merged = append(merged, outer[outerIdx:]...)
		outer = merged
	}

	return outer, nil
}

// findBridge returns the index into outer of the vertex nearest to
// target that can see it without crossing any edge of outer.
func findBridge(outer []Point2, target Point2, against []Point2) (int, bool) {
	type candidate struct {
		idx  int
		dist float64
	}
	var candidates []candidate
	for i, v := range outer {
		candidates = append(candidates, candidate{i, dist(v, target)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	for _, cand := range candidates {
		if segmentClear(outer[cand.idx], target, against, outer[cand.idx], target) {
			return cand.idx, true
		}
	}
	return 0, false
}

// segmentClear reports whether segment (a, b) crosses no edge of ring
// other than at its own endpoints.
func segmentClear(a, b Point2, ring []Point2, skipA, skipB Point2) bool {
	n := len(ring)
	for i := 0; i < n; i++ {
		c := ring[i]
		d := ring[(i+1)%n]
		if c == skipA || c == skipB || d == skipA || d == skipB {
			continue
		}
		if segmentsIntersect(a, b, c, d) {
			return false
		}
	}
	return true
}

func signedAreaOf(pts []Point2) float64 {
	n := len(pts)
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum
}

func reverse(pts []Point2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func orient(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func segmentsIntersect(a, b, c, d Point2) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}

// earClip triangulates a simple (possibly bridged) polygon by
// repeatedly clipping convex vertices that contain no other polygon
// vertex, the textbook O(n^2) ear-clipping algorithm.
func earClip(verts []Point2) ([]int, error) {
	n := len(verts)
	if n < 3 {
		return nil, errors.New("polygon has fewer than 3 vertices")
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var triangles []int
	guard, maxGuard := 0, n*n+16

	for len(idx) > 3 {
		m := len(idx)
		earFound := false
		for i := 0; i < m; i++ {
			ia := idx[(i-1+m)%m]
			ib := idx[i]
			ic := idx[(i+1)%m]
			a, b, c := verts[ia], verts[ib], verts[ic]

			if orient(a, b, c) <= 0 {
				continue
			}

			clipped := true
			for _, j := range idx {
				if j == ia || j == ib || j == ic {
					continue
				}
				if pointInTriangle(verts[j], a, b, c) {
					clipped = false
					break
				}
			}
			if !clipped {
				continue
			}

			triangles = append(triangles, ia, ib, ic)
			idx = append(append([]int{}, idx[:i]...), idx[i+1:]...)
			earFound = true
			break
		}

		if !earFound {
			return triangles, errors.New("no ear found, polygon is likely self-intersecting")
		}
		guard++
		if guard > maxGuard {
			return triangles, errors.New("ear clipping did not converge")
		}
	}

	triangles = append(triangles, idx[0], idx[1], idx[2])
	return triangles, nil
}

func pointInTriangle(p, a, b, c Point2) bool {
	d1 := orient(a, b, p)
	d2 := orient(b, c, p)
	d3 := orient(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
