package mimesis

// Pavlidis-style boundary tracer. The algorithm walks a signed-integer
// labelling buffer with a one-pixel zero border, launching a trace
// whenever the raster scan crosses into an unvisited exterior or
// interior boundary, and accumulates a signed marker into each visited
// cell so a later pass can track nesting depth (ol/hl below) without
// revisiting already-traced boundaries.

// moore is the 8-neighbour offset table, indexed clockwise starting
// north: (dx, dy) to step from a boundary cell to its next neighbour
// in the walk direction selected by the current orientation.
var moore = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// oVertex gives the corner offset (relative to the padded-buffer cell
// coordinate, which already carries the +1 border shift) to emit as a
// ring vertex for an exterior trace, indexed by the current
// orientation's o[0]. Offsets of -1 vs 0 select which corner of the
// pixel square the boundary is currently hugging.
var oVertex = [7][2]int{
	{-1, 0}, {0, 0}, {-1, -1}, {0, 0}, {0, -1}, {0, 0}, {0, 0},
}

// hVertex is oVertex's counterpart for interior (hole) traces.
var hVertex = [7][2]int{
	{0, 0}, {0, 0}, {-1, 0}, {0, 0}, {-1, -1}, {0, 0}, {0, -1},
}

// oValue is the signed marker added to a visited cell during an
// exterior trace; its magnitude (1/2/4/8) records which of the four
// boundary-crossing directions was taken, and its accumulation across
// both an exterior and interior visit to the same cell (values 2, 4,
// 10, 12, 5, 7, 13, 15) is what the ol/hl bookkeeping below decodes.
var oValue = [7]int{1, 0, 2, 0, 4, 0, 8}

// hValue is oValue's counterpart for interior traces.
var hValue = [7]int{-4, 0, -8, 0, -1, 0, -2}

// rotateLeft returns o with its first n elements moved to the end.
func rotateLeft(o [8]int, n int) [8]int {
	var out [8]int
	for i := 0; i < 8; i++ {
		out[i] = o[(i+n)%8]
	}
	return out
}

// rotateRight returns o with its last n elements moved to the front.
func rotateRight(o [8]int, n int) [8]int {
	var out [8]int
	for i := 0; i < 8; i++ {
		out[i] = o[((i-n)%8+8)%8]
	}
	return out
}

// TracePolygons walks mask and returns one Polygon per maximal
// 4-connected foreground component whose bounding box meets minDim in
// both dimensions. Holes are attached to the polygon whose exterior
// contains them, breaking ties (nested components) by minimal
// exterior area. This stage never fails; a mask with no foreground
// yields an empty slice.
func TracePolygons(mask *BinaryMask, minDim int) []Polygon {
	width, height := mask.Width(), mask.Height()

	// c is the padded labelling buffer: c[y+1][x+1] corresponds to
	// mask pixel (x, y); the surrounding border stays zero so a
	// foreground pixel on the image edge is handled the same as an
	// interior one.
	c := make([][]int, height+2)
	for y := range c {
		c[y] = make([]int, width+2)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Get(x, y) {
				c[y+1][x+1] = 1
			} else {
				c[y+1][x+1] = -1
			}
		}
	}

	var exteriors []LinearRing
	var holes []LinearRing

	for y := 1; y <= height; y++ {
		ol, hl := 0, 0
		for x := 1; x <= width; x++ {
			switch {
			case ol == hl && c[y][x] == 1:
				ring := tracePolygon(c, true, x, y,
					[8]int{2, 3, 4, 5, 6, 7, 0, 1}, 2, [3]int{7, 1, 0}, oVertex, oValue)
				exteriors = append(exteriors, ring)
			case ol > hl && c[y][x] == -1:
				ring := tracePolygon(c, false, x, y,
					[8]int{4, 5, 6, 7, 0, 1, 2, 3}, -2, [3]int{1, 7, 6}, hVertex, hValue)
				holes = append(holes, ring)
			}

			switch abs(c[y][x]) {
			case 2, 4, 10, 12:
				if c[y][x] > 0 {
					ol++
				} else {
					hl++
				}
			case 5, 7, 13, 15:
				if c[y][x] > 0 {
					ol--
				} else {
					hl--
				}
			}
		}
	}

	polygons := make([]Polygon, len(exteriors))
	for i, ext := range exteriors {
		polygons[i] = Polygon{Exterior: ext}
	}

	for _, hole := range holes {
		best := -1
		bestArea := 0.0
		rep := representativePoint(hole)
		for i, p := range polygons {
			if p.Exterior.containsPoint(rep) {
				a := p.Exterior.area()
				if best == -1 || a < bestArea {
					best = i
					bestArea = a
				}
			}
		}
		if best >= 0 {
			polygons[best].Interiors = append(polygons[best].Interiors, hole)
		}
	}

	return filterByMinDim(polygons, minDim)
}

// representativePoint returns the average of the ring's vertices, used
// only to test which exterior ring a hole belongs to. The average lies
// inside convex rings; for a non-convex ring it can fall outside.
func representativePoint(r LinearRing) Point2 {
	pts := r.open()
	var x, y float64
	for _, p := range pts {
		x += p.X
		y += p.Y
	}
	n := float64(len(pts))
	return Point2{X: x / n, Y: y / n}
}

// filterByMinDim drops polygons (and holes) whose bounding box fails
// the min_dim criterion in either dimension. Run as a post-trace pass
// rather than inline during the scan, per spec's preference for the
// more testable placement.
func filterByMinDim(polygons []Polygon, minDim int) []Polygon {
	min := float64(minDim)
	out := polygons[:0]
	for _, p := range polygons {
		minX, minY, maxX, maxY := p.Exterior.boundingBox()
		if maxX-minX < min || maxY-minY < min {
			continue
		}
		var interiors []LinearRing
		for _, h := range p.Interiors {
			hMinX, hMinY, hMaxX, hMaxY := h.boundingBox()
			if hMaxX-hMinX < min || hMaxY-hMinY < min {
				continue
			}
			interiors = append(interiors, h)
		}
		p.Interiors = interiors
		out = append(out, p)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tracePolygon walks a single boundary starting at (cursorX, cursorY)
// in the padded buffer c, mutating c as it goes, and returns the
// resulting closed ring. o is the initial orientation permutation, rot
// the rotation step (2 for exterior/counter-clockwise, -2 for
// interior/clockwise), viv three indices into o used for the special
// corner-turn moves, and vertex/value the per-orientation lookup
// tables for the emitted corner offset and the boundary-state delta.
func tracePolygon(
	c [][]int,
	outline bool,
	cursorX, cursorY int,
	o [8]int,
	rot int,
	viv [3]int,
	vertex [7][2]int,
	value [7]int,
) LinearRing {
	n := ((rot % 8) + 8) % 8

	tracerX, tracerY := cursorX, cursorY
	verticesNbr := 1

	ring := make([]Point2, 0, 8)
	ring = append(ring, Point2{
		X: float64(tracerX + vertex[o[0]][0]),
		Y: float64(tracerY + vertex[o[0]][1]),
	})

	for {
		neighbors := [8]int{
			c[tracerY-1][tracerX],
			c[tracerY-1][tracerX+1],
			c[tracerY][tracerX+1],
			c[tracerY+1][tracerX+1],
			c[tracerY+1][tracerX],
			c[tracerY+1][tracerX-1],
			c[tracerY][tracerX-1],
			c[tracerY-1][tracerX-1],
		}

		var rn int
		if outline {
			switch {
			case neighbors[o[7]] > 0 && neighbors[o[0]] > 0:
				rn = 1
			case neighbors[o[0]] > 0:
				rn = 2
			case neighbors[o[1]] > 0 && neighbors[o[2]] > 0:
				rn = 3
			default:
				rn = 0
			}
		} else {
			switch {
			case neighbors[o[1]] < 0 && neighbors[o[0]] < 0:
				rn = 1
			case neighbors[o[0]] < 0:
				rn = 2
			case neighbors[o[7]] < 0 && neighbors[o[6]] < 0:
				rn = 3
			default:
				rn = 0
			}
		}

		switch rn {
		case 1:
			c[tracerY][tracerX] += value[o[0]]
			tracerX += moore[o[viv[0]]][0]
			tracerY += moore[o[viv[0]]][1]
			o = rotateRight(o, n)
			verticesNbr++
		case 2:
			c[tracerY][tracerX] += value[o[0]]
			tracerX += moore[o[0]][0]
			tracerY += moore[o[0]][1]
		case 3:
			c[tracerY][tracerX] += value[o[0]]
			o = rotateLeft(o, n)
			c[tracerY][tracerX] += value[o[0]]
			verticesNbr++
			ring = append(ring, Point2{
				X: float64(tracerX + vertex[o[0]][0]),
				Y: float64(tracerY + vertex[o[0]][1]),
			})
			o = rotateRight(o, n)
			tracerX += moore[o[viv[1]]][0]
			tracerY += moore[o[viv[1]]][1]
			verticesNbr++
		default:
			c[tracerY][tracerX] += value[o[0]]
			o = rotateLeft(o, n)
			verticesNbr++
		}

		if tracerX == cursorX && tracerY == cursorY && verticesNbr > 2 {
			break
		}

		if rn != 2 {
			ring = append(ring, Point2{
				X: float64(tracerX + vertex[o[0]][0]),
				Y: float64(tracerY + vertex[o[0]][1]),
			})
		}
	}

	for {
		c[tracerY][tracerX] += value[o[0]]
		if o[0] == viv[2] {
			break
		}
		o = rotateLeft(o, n)
		verticesNbr++
		ring = append(ring, Point2{
			X: float64(tracerX + vertex[o[0]][0]),
			Y: float64(tracerY + vertex[o[0]][1]),
		})
	}

	// The walk emits the starting corner once; repeat it to close the ring.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return LinearRing(ring)
}
