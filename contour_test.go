package mimesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func squareMask(size, width, height int) *BinaryMask {
	m := NewBinaryMask(width, height)
	offX, offY := (width-size)/2, (height-size)/2
	for y := offY; y < offY+size; y++ {
		for x := offX; x < offX+size; x++ {
			m.set(y*width + x)
		}
	}
	return m
}

func TestTracePolygons_EmptyMask(t *testing.T) {
	m := NewBinaryMask(10, 10)
	assert.Empty(t, TracePolygons(m, 0), "empty mask should produce no polygons")
}

func TestTracePolygons_FullyForegroundMask(t *testing.T) {
	assert := assert.New(t)

	m := NewBinaryMask(6, 4)
	for i := range make([]struct{}, 6*4) {
		m.set(i)
	}
	polys := TracePolygons(m, 0)
	if !assert.Len(polys, 1, "fully foreground mask should trace 1 polygon") {
		return
	}
	assert.Empty(polys[0].Interiors, "fully foreground mask should have no holes")

	minX, minY, maxX, maxY := polys[0].Exterior.boundingBox()
	assert.Equal(0.0, minX)
	assert.Equal(0.0, minY)
	assert.Equal(6.0, maxX)
	assert.Equal(4.0, maxY)
}

func TestTracePolygons_SingleSquare(t *testing.T) {
	assert := assert.New(t)

	m := squareMask(10, 20, 20)
	polys := TracePolygons(m, 0)
	if !assert.Len(polys, 1) {
		return
	}

	minX, minY, maxX, maxY := polys[0].Exterior.boundingBox()
	assert.Equal(10.0, maxX-minX)
	assert.Equal(10.0, maxY-minY)
	assert.True(polys[0].Exterior.closed(), "exterior ring should be closed")
}

func TestTracePolygons_SquareWithHole(t *testing.T) {
	assert := assert.New(t)

	m := squareMask(20, 30, 30)
	// Punch a smaller background hole in the center of the foreground square.
	width := m.Width()
	for y := 10; y < 15; y++ {
		for x := 10; x < 15; x++ {
			idx := y*width + x
			m.bits[idx/8] &^= 1 << uint(idx%8)
		}
	}

	polys := TracePolygons(m, 0)
	if !assert.Len(polys, 1, "expected 1 exterior polygon") {
		return
	}
	assert.Len(polys[0].Interiors, 1, "expected 1 hole attached")
}

func TestTracePolygons_MinDimFiltersSmallComponents(t *testing.T) {
	assert := assert.New(t)

	m := squareMask(3, 20, 20)
	assert.Empty(TracePolygons(m, 5), "a 3px square should be filtered out by min_dim=5")
	assert.Len(TracePolygons(m, 2), 1, "a 3px square should survive min_dim=2")
}
