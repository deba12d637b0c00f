package mimesis

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/meshgen/mimesis/imop"
)

var (
	exteriorColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	interiorColor = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// drawPolygons rasterises every polygon's ring outlines onto a
// transparent canvas the size of bounds: red for exterior rings, blue
// for interiors, the same convention original_source/src/draw.rs uses.
// It is the Go stand-in for imageproc's draw_polygon_mut, which has no
// counterpart anywhere in the dependency pack.
func drawPolygons(bounds image.Rectangle, polygons []Polygon) *image.NRGBA {
	canvas := image.NewNRGBA(bounds)
	for _, p := range polygons {
		drawRing(canvas, p.Exterior, exteriorColor)
		for _, hole := range p.Interiors {
			drawRing(canvas, hole, interiorColor)
		}
	}
	return canvas
}

// drawRing draws a closed polyline by connecting consecutive vertices
// with Bresenham line segments.
func drawRing(canvas *image.NRGBA, ring LinearRing, c color.NRGBA) {
	pts := ring
	if pts.closed() {
		pts = pts.open()
	}
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		drawLine(canvas, a, b, c)
	}
}

// drawLine rasterises the segment a-b using Bresenham's algorithm.
func drawLine(canvas *image.NRGBA, a, b Point2, c color.NRGBA) {
	x0, y0 := int(a.X), int(a.Y)
	x1, y1 := int(b.X), int(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	bounds := canvas.Bounds()
	for {
		if (image.Point{X: x0, Y: y0}).In(bounds) {
			canvas.SetNRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// overlayPolygons composites the polygon outline drawing over src using
// Porter-Duff source-over, producing a debug image that shows the
// traced silhouette against the original texture.
func overlayPolygons(src image.Image, polygons []Polygon) *image.NRGBA {
	bounds := src.Bounds()
	overlay := drawPolygons(bounds, polygons)

	base := image.NewNRGBA(bounds)
	draw.Draw(base, bounds, src, bounds.Min, draw.Src)

	op := imop.InitOp()
	op.Set(imop.SrcOver)

	bmp := imop.NewBitmap(bounds)
	op.Draw(bmp, overlay, base, nil)

	return bmp.Img
}
