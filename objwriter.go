package mimesis

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Textures names the image files each face group's material should
// reference; an empty field leaves that group untextured.
type Textures struct {
	Front string
	Back  string
	Side  string
}

// WriteOBJ writes mesh as a Wavefront OBJ file at objPath plus a
// sibling MTL file, one material per face group, named after objPath's
// base name the way the OBJ/MTL pairing convention expects (mtllib
// naming the sibling file, each usemtl referencing a newmtl the MTL
// file defines).
func WriteOBJ(mesh Mesh3D, objPath string, tex Textures) error {
	base := strings.TrimSuffix(filepath.Base(objPath), filepath.Ext(objPath))
	mtlName := base + ".mtl"
	mtlPath := filepath.Join(filepath.Dir(objPath), mtlName)

	if err := writeMTL(mtlPath, mesh, tex); err != nil {
		return wrapError(IoError, "writing material library", err)
	}

	f, err := os.Create(objPath)
	if err != nil {
		return wrapError(IoError, "creating obj file", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "mtllib %s\n", mtlName)
	fmt.Fprintln(w, "o Mesh3D")

	for _, v := range mesh.Vertices {
		fmt.Fprintf(w, "v %f %f %f\n", v.X, v.Y, v.Z)
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(w, "vt %f %f\n", uv.U, uv.V)
	}

	for _, group := range mesh.Faces {
		if len(group.Triangles) == 0 {
			continue
		}
		fmt.Fprintf(w, "usemtl %s\n", group.Name)
		fmt.Fprintf(w, "g %s\n", group.Name)
		for _, tri := range group.Triangles {
			fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n",
				tri[0].V+1, tri[0].VT+1,
				tri[1].V+1, tri[1].VT+1,
				tri[2].V+1, tri[2].VT+1,
			)
		}
	}

	if err := w.Flush(); err != nil {
		return wrapError(IoError, "flushing obj file", err)
	}
	return nil
}

func writeMTL(mtlPath string, mesh Mesh3D, tex Textures) error {
	f, err := os.Create(mtlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	names := map[string]string{
		"front": tex.Front,
		"back":  tex.Back,
		"side":  tex.Side,
	}

	for _, group := range mesh.Faces {
		if len(group.Triangles) == 0 {
			continue
		}
		fmt.Fprintf(f, "newmtl %s\n", group.Name)
		fmt.Fprintln(f, "Ka 1.000 1.000 1.000")
		fmt.Fprintln(f, "Kd 1.000 1.000 1.000")
		fmt.Fprintln(f, "Ks 0.000 0.000 0.000")
		fmt.Fprintln(f, "d 1.0")
		fmt.Fprintln(f, "Ns 10.0")
		fmt.Fprintln(f, "illum 2")
		if name := names[group.Name]; name != "" {
			fmt.Fprintf(f, "map_Kd textures/%s\n", name)
		}
		fmt.Fprintln(f)
	}
	return nil
}
