package mimesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify_NoOpWhenEpsilonNonPositive(t *testing.T) {
	p := Polygon{Exterior: unitSquare()}
	out := Simplify(p, 0)
	assert.Len(t, out.Exterior, len(p.Exterior))
}

func TestSimplify_DropsRedundantColinearPoint(t *testing.T) {
	assert := assert.New(t)

	// A square edge with one extra point sitting exactly on the line.
	ring := LinearRing{
		{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0},
		{X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	out := Simplify(Polygon{Exterior: ring}, 0.5)

	assert.True(out.Exterior.closed(), "simplified ring should remain closed")
	assert.Less(len(out.Exterior.open()), len(ring.open()), "expected simplification to drop the colinear point")
}

func TestSimplify_PreservesClosureOnHoles(t *testing.T) {
	p := Polygon{
		Exterior:  unitSquare(),
		Interiors: []LinearRing{{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 2}}},
	}
	out := Simplify(p, 1.0)
	for i, hole := range out.Interiors {
		assert.True(t, hole.closed(), "hole %d lost closure after Simplify", i)
	}
}

func TestSmooth_NoOpWhenIterationsZero(t *testing.T) {
	p := Polygon{Exterior: unitSquare()}
	out := Smooth(p, 0)
	assert.Len(t, out.Exterior, len(p.Exterior))
}

func TestSmooth_DoublesVertexCountPerIterationAndPreservesClosure(t *testing.T) {
	assert := assert.New(t)

	p := Polygon{Exterior: unitSquare()}
	out := Smooth(p, 1)

	assert.True(out.Exterior.closed(), "smoothed ring should remain closed")
	assert.Len(out.Exterior.open(), len(p.Exterior.open())*2)
}

func TestSmooth_CutsCorners(t *testing.T) {
	p := Polygon{Exterior: unitSquare()}
	out := Smooth(p, 1)
	for _, v := range out.Exterior {
		assert.NotEqual(t, Point2{X: 0, Y: 0}, v, "corner-cutting should remove the original sharp corner vertex")
	}
}
