package mimesis

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// BackgroundRemover is an optional external mask source: given the
// decoded texture, it returns a foreground/background mask without
// the pipeline knowing how that decision was made. Treated as a black
// box, exactly as original_source/src/background_remover.rs's
// ONNX-backed remover is from the pipeline's point of view - no
// implementation ships here, only the seam a caller can plug one into.
type BackgroundRemover interface {
	RemoveBackground(texture image.Image) (*BinaryMask, error)
}

// Processor wires the whole pipeline together for the common case of
// "one image file in, one or more OBJ files out", grounded on
// original_source/bin/src/processing.rs's Processor. BackgroundRemover
// is consulted before Config.Processing.MaskMethod when both an
// explicit maskPath is absent and a remover is set.
type Processor struct {
	Config            Config
	BackgroundRemover BackgroundRemover
}

// Process runs the full pipeline against a single texture file,
// writing its outputs under Config.Output.OutputFolder, and returns
// how many polygons (and therefore meshes) it produced. maskPath may
// be empty, in which case the mask is derived from the texture itself
// using Config.Processing.MaskMethod.
func (p *Processor) Process(inputPath, maskPath string) (int, error) {
	result, err := p.process(inputPath, maskPath)
	if err != nil {
		return 0, err
	}
	return result.PolygonCount, nil
}

// ProcessWithStats is Process plus the benchmark/geometry counters a
// batch summary needs.
func (p *Processor) ProcessWithStats(inputPath, maskPath string) (ProcessingResult, error) {
	return p.process(inputPath, maskPath)
}

func (p *Processor) process(inputPath, maskPath string) (ProcessingResult, error) {
	cfg := p.Config
	bench := NewBenchmark()
	verbose := cfg.Processing.Verbose

	assetName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	texture, err := openImage(inputPath)
	if err != nil {
		return ProcessingResult{}, err
	}
	bench.Step("decode_texture")

	bounds := texture.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if verbose {
		fmt.Printf("Processing: %s (%dx%d pixels)\n", inputPath, width, height)
	}

	mask, err := p.loadOrDeriveMask(texture, maskPath, verbose)
	if err != nil {
		return ProcessingResult{}, err
	}
	bench.Step("derive_mask")

	outputDir := cfg.Output.OutputFolder
	texturesDir := filepath.Join(outputDir, "textures")

	frontTextureFilename := assetName + ".png"
	if err := savePNG(filepath.Join(texturesDir, frontTextureFilename), texture); err != nil {
		return ProcessingResult{}, err
	}

	sideTextureFilename := frontTextureFilename
	if cfg.Output.SideTexture != "" {
		sideTextureFilename = "side.png"
		if err := copyFile(filepath.Join(texturesDir, sideTextureFilename), cfg.Output.SideTexture); err != nil {
			return ProcessingResult{}, err
		}
	}

	backTextureFilename := frontTextureFilename
	if cfg.Output.BackTexture != "" {
		backTextureFilename = "back.png"
		if err := copyFile(filepath.Join(texturesDir, backTextureFilename), cfg.Output.BackTexture); err != nil {
			return ProcessingResult{}, err
		}
	}
	bench.Step("save_textures")

	if !cfg.Output.SkipIntermediates {
		maskPath := filepath.Join(outputDir, assetName+"_mask.png")
		if err := savePNG(maskPath, maskVisualization(mask)); err != nil {
			return ProcessingResult{}, err
		}
	}

	polygons := TracePolygons(mask, cfg.Processing.MinPolygonDimension)
	if verbose {
		fmt.Printf("Found %d polygons for %s\n", len(polygons), assetName)
	}
	bench.Step("trace_polygons")

	if !cfg.Output.SkipIntermediates {
		for i, poly := range polygons {
			overlay := overlayPolygons(texture, []Polygon{poly})
			path := filepath.Join(outputDir, fmt.Sprintf("%s_polygon_%d.png", assetName, i))
			if err := savePNG(path, overlay); err != nil {
				return ProcessingResult{}, err
			}
		}
	}

	simplified := make([]Polygon, len(polygons))
	for i, poly := range polygons {
		simplified[i] = Simplify(poly, cfg.Processing.SimplifyTolerance)
	}
	bench.Step("simplify_polygons")

	smoothed := make([]Polygon, len(simplified))
	for i, poly := range simplified {
		smoothed[i] = Smooth(poly, cfg.Processing.SmoothIterations)
	}
	bench.Step("smooth_polygons")

	var meshStats []MeshStats
	for i, poly := range smoothed {
		mesh2d, err := Triangulate(poly)
		if err != nil {
			return ProcessingResult{}, wrapError(TriangulationFailed,
				fmt.Sprintf("polygon %d of %s", i, assetName), err)
		}

		if !cfg.Output.SkipIntermediates {
			mesh2dPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d.2d.obj", assetName, i))
			if err := writeMesh2DObj(mesh2d, mesh2dPath); err != nil {
				return ProcessingResult{}, err
			}
		}

		mesh3d := Extrude(mesh2d, cfg.Processing.ExtrudeHeight, float64(width), float64(height))

		objPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d.obj", assetName, i))
		tex := Textures{
			Front: frontTextureFilename,
			Back:  backTextureFilename,
			Side:  sideTextureFilename,
		}
		if err := WriteOBJ(mesh3d, objPath, tex); err != nil {
			return ProcessingResult{}, err
		}

		meshStats = append(meshStats, MeshStats{
			VertexCount2D:   len(mesh2d.Vertices),
			TriangleCount2D: len(mesh2d.Indices) / 3,
			VertexCount3D:   len(mesh3d.Vertices),
			TriangleCount3D: countTriangles(mesh3d),
		})
	}
	bench.Step("triangulate_extrude_export")

	return ProcessingResult{
		PolygonCount:  len(smoothed),
		MeshStats:     meshStats,
		Benchmark:     bench,
		TotalDuration: bench.TotalDuration(),
	}, nil
}

// loadOrDeriveMask reads an explicit mask image if maskPath is
// non-empty, otherwise derives one from the texture using the
// configured mask method.
func (p *Processor) loadOrDeriveMask(texture image.Image, maskPath string, verbose bool) (*BinaryMask, error) {
	cfg := p.Config
	if maskPath != "" {
		if verbose {
			fmt.Printf("Loading mask from: %s\n", maskPath)
		}
		maskImg, err := openImage(maskPath)
		if err != nil {
			return nil, err
		}
		return maskFromImage(maskImg)
	}

	if p.BackgroundRemover != nil {
		if verbose {
			fmt.Println("Deriving mask via configured background remover")
		}
		mask, err := p.BackgroundRemover.RemoveBackground(texture)
		if err != nil {
			return nil, wrapError(BackgroundRemoverError, "background remover failed", err)
		}
		return mask, nil
	}

	if verbose {
		fmt.Printf("Generating mask using %s method\n", cfg.Processing.MaskMethod)
	}
	return DeriveMask(texture, cfg.Processing.MaskMethod, cfg.Processing.Threshold, cfg.Processing.BlurRadius), nil
}

// countTriangles sums the triangle count across every face group in a
// mesh.
func countTriangles(mesh Mesh3D) int {
	n := 0
	for _, g := range mesh.Faces {
		n += len(g.Triangles)
	}
	return n
}

// writeMesh2DObj exports a flat Mesh2D (no UVs, no materials) as a
// bare Wavefront OBJ, used for the optional per-polygon 2D debug mesh.
func writeMesh2DObj(mesh Mesh2D, path string) error {
	mesh3d := Mesh3D{
		Vertices: make([]Vec3, len(mesh.Vertices)),
		Faces:    []FaceGroup{{Name: "polygon"}},
	}
	for i, v := range mesh.Vertices {
		mesh3d.Vertices[i] = Vec3{X: v.X, Y: -v.Y, Z: 0}
	}
	mesh3d.UVs = []Vec2{{U: 0, V: 0}}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		mesh3d.Faces[0].Triangles = append(mesh3d.Faces[0].Triangles, Triangle{
			{V: a, VT: 0}, {V: b, VT: 0}, {V: c, VT: 0},
		})
	}
	return WriteOBJ(mesh3d, path, Textures{})
}
