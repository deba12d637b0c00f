package mimesis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func simpleMesh3D() Mesh3D {
	return Mesh3D{
		Vertices: []Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		UVs:      []Vec2{{U: 0, V: 0}, {U: 1, V: 0}, {U: 1, V: 1}},
		Faces: []FaceGroup{
			{Name: "front", Triangles: []Triangle{{{V: 0, VT: 0}, {V: 1, VT: 1}, {V: 2, VT: 2}}}},
			{Name: "back"},
			{Name: "side"},
		},
	}
}

func TestWriteOBJ_EmitsObjAndMtl(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	objPath := filepath.Join(dir, "mesh.obj")

	err := WriteOBJ(simpleMesh3D(), objPath, Textures{Front: "front.png"})
	assert.NoError(err)

	objBytes, err := os.ReadFile(objPath)
	assert.NoError(err)
	obj := string(objBytes)

	assert.Contains(obj, "mtllib mesh.mtl", "obj should reference the sibling mtl by mtllib")
	assert.Contains(obj, "o Mesh3D", "obj should name the object between mtllib and the vertex list")
	assert.Less(strings.Index(obj, "mtllib mesh.mtl"), strings.Index(obj, "o Mesh3D"), "mtllib should precede the object name line")
	assert.Less(strings.Index(obj, "o Mesh3D"), strings.Index(obj, "v 0"), "object name line should precede the vertex list")

	assert.Contains(obj, "usemtl front", "expected usemtl for the front group")
	assert.Contains(obj, "g front", "expected g for the front group")
	assert.Less(strings.Index(obj, "usemtl front"), strings.Index(obj, "g front"), "usemtl should precede g for the same face group")
	assert.NotContains(obj, "usemtl back", "empty face groups should be omitted entirely")
	assert.NotContains(obj, "usemtl side", "empty face groups should be omitted entirely")
	assert.Contains(obj, "f 1/1 2/2 3/3", "expected 1-based face indices")

	mtlBytes, err := os.ReadFile(filepath.Join(dir, "mesh.mtl"))
	assert.NoError(err)
	mtl := string(mtlBytes)

	assert.Contains(mtl, "newmtl front")
	assert.Contains(mtl, "map_Kd textures/front.png", "expected map_Kd referencing the textures/ subdirectory")
	assert.Contains(mtl, "Ns 10.0")
	assert.Contains(mtl, "illum 2")
	assert.NotContains(mtl, "newmtl back", "empty face groups should not get a material entry")
	assert.NotContains(mtl, "newmtl side", "empty face groups should not get a material entry")
}

func TestWriteOBJ_UntexturedGroupOmitsMapKd(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	objPath := filepath.Join(dir, "mesh.obj")

	assert.NoError(WriteOBJ(simpleMesh3D(), objPath, Textures{}))

	mtlBytes, err := os.ReadFile(filepath.Join(dir, "mesh.mtl"))
	assert.NoError(err)
	assert.NotContains(string(mtlBytes), "map_Kd", "no map_Kd should be emitted when no texture name is supplied")
}
