package mimesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangulate_Square(t *testing.T) {
	assert := assert.New(t)

	p := Polygon{Exterior: unitSquare()}
	mesh, err := Triangulate(p)
	assert.NoError(err)
	assert.Len(mesh.Vertices, 4)
	assert.Len(mesh.Indices, 6, "expected 2 triangles")

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Vertices[mesh.Indices[i]], mesh.Vertices[mesh.Indices[i+1]], mesh.Vertices[mesh.Indices[i+2]]
		assert.Greater(orient(a, b, c), 0.0, "triangle %d should be counter-clockwise", i/3)
	}
}

func TestTriangulate_SquareWithHole(t *testing.T) {
	assert := assert.New(t)

	outer := LinearRing{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 20}, {X: 0, Y: 20}, {X: 0, Y: 0},
	}
	hole := LinearRing{
		{X: 5, Y: 5}, {X: 5, Y: 15}, {X: 15, Y: 15}, {X: 15, Y: 5}, {X: 5, Y: 5},
	}
	p := Polygon{Exterior: outer, Interiors: []LinearRing{hole}}

	mesh, err := Triangulate(p)
	assert.NoError(err)
	assert.Equal(0, len(mesh.Indices)%3, "index count should be a multiple of 3")
	assert.NotEmpty(mesh.Indices, "expected at least one triangle around the hole")

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Vertices[mesh.Indices[i]], mesh.Vertices[mesh.Indices[i+1]], mesh.Vertices[mesh.Indices[i+2]]
		assert.NotEqual(0.0, orient(a, b, c), "triangle %d should not be degenerate", i/3)
	}
}

func TestTriangulate_DegenerateExteriorFails(t *testing.T) {
	p := Polygon{Exterior: LinearRing{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}
	_, err := Triangulate(p)
	assert.Error(t, err)
}
