package mimesis

// Point2 is a point in image pixel coordinates: origin top-left, +x
// right, +y down.
type Point2 struct {
	X, Y float64
}

// LinearRing is a closed polyline: ring[0] == ring[len(ring)-1]. Every
// ring handled by this package is stored closed; the duplicate closing
// vertex is only dropped right before triangulation's ear-cut buffer.
type LinearRing []Point2

// Polygon is an exterior ring plus zero or more interior (hole) rings.
// Exterior rings are oriented counter-clockwise in image coordinates;
// interior rings are clockwise. Every interior ring lies strictly
// inside the exterior and interiors do not mutually overlap.
type Polygon struct {
	Exterior  LinearRing
	Interiors []LinearRing
}

// closed reports whether the ring's first and last points coincide.
func (r LinearRing) closed() bool {
	if len(r) < 2 {
		return false
	}
	return r[0] == r[len(r)-1]
}

// open returns the ring without its closing duplicate vertex, for
// stages (triangulation) that want each vertex exactly once. Panics if
// the ring isn't closed, since that invariant is enforced at every
// stage boundary.
func (r LinearRing) open() []Point2 {
	if !r.closed() {
		panic("mimesis: ring is not closed")
	}
	return r[:len(r)-1]
}

// signedArea computes twice the shoelace area of a ring (sign encodes
// winding: positive for counter-clockwise in image coordinates,
// negative for clockwise). Callers that need the true area should
// halve and abs the result.
func (r LinearRing) signedArea() float64 {
	pts := r
	if pts.closed() {
		pts = pts.open()
	}
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum
}

// area returns the ring's unsigned area.
func (r LinearRing) area() float64 {
	a := r.signedArea() / 2
	if a < 0 {
		return -a
	}
	return a
}

// boundingBox returns the ring's axis-aligned bounding box.
func (r LinearRing) boundingBox() (minX, minY, maxX, maxY float64) {
	pts := r
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

// containsPoint is a standard ray-casting point-in-polygon test over
// the ring's edges (ring may be open or closed; duplicated closing
// vertex doesn't change the result).
func (r LinearRing) containsPoint(p Point2) bool {
	pts := r
	if pts.closed() {
		pts = pts.open()
	}
	n := len(pts)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
