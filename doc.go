/*
Package mimesis converts a raster image, plus an optional binary mask,
into one or more textured, extruded 3D meshes. Each connected
foreground region of the mask becomes an independent slab: a front
face matching the silhouette, a mirrored back face, and sidewalls
connecting them, emitted as a Wavefront OBJ file with an accompanying
material file.

The package exposes the four-stage geometric pipeline as a set of
plain functions operating on value types - DeriveMask, TracePolygons,
Simplify, Smooth, Triangulate, Extrude and WriteOBJ - so callers can
drive the pipeline stage by stage, inspect intermediates, or swap a
stage's output (for instance, supplying a hand-painted mask instead of
DeriveMask's output). Processor wires the whole pipeline together for
the common case of "one image file in, one or more OBJ files out".

	package main

	import (
		"fmt"
		"github.com/meshgen/mimesis"
	)

	func main() {
		p := &mimesis.Processor{
			Config: mimesis.DefaultConfig(),
		}

		if _, err := p.Process("texture.png", ""); err != nil {
			fmt.Printf("Error processing image: %s", err.Error())
		}
	}
*/
package mimesis
