package mimesis

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// writeSquareTexture writes a size x size RGBA PNG with an opaque
// square of sidePx centered in an otherwise transparent canvas.
func writeSquareTexture(t *testing.T, path string, size, sidePx int) {
	t.Helper()
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	offset := (size - sidePx) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x >= offset && x < offset+sidePx && y >= offset && y < offset+sidePx {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
			}
		}
	}
	f, err := os.Create(path)
	assert.NoError(err, "creating texture fixture")
	defer f.Close()
	assert.NoError(png.Encode(f, img), "encoding texture fixture")
}

func TestProcessor_ProcessSingleFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	texturePath := filepath.Join(dir, "square.png")
	writeSquareTexture(t, texturePath, 32, 20)

	cfg := DefaultConfig()
	cfg.Output.OutputFolder = filepath.Join(dir, "out")
	cfg.Processing.SimplifyTolerance = 0
	cfg.Processing.SmoothIterations = 0

	proc := &Processor{Config: cfg}
	n, err := proc.Process(texturePath, "")
	assert.NoError(err)
	assert.Equal(1, n, "polygon count for a single opaque square")

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "square_0.obj"))
	assert.NoError(err, "expected OBJ output")

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "square_0.mtl"))
	assert.NoError(err, "expected MTL output")

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "textures", "square.png"))
	assert.NoError(err, "expected copied texture")

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "square_mask.png"))
	assert.NoError(err, "expected mask visualization")
}

func TestProcessor_SkipIntermediates(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	texturePath := filepath.Join(dir, "square.png")
	writeSquareTexture(t, texturePath, 32, 20)

	cfg := DefaultConfig()
	cfg.Output.OutputFolder = filepath.Join(dir, "out")
	cfg.Output.SkipIntermediates = true

	proc := &Processor{Config: cfg}
	_, err := proc.Process(texturePath, "")
	assert.NoError(err)

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "square_mask.png"))
	assert.Error(err, "mask visualization should have been skipped")

	_, err = os.Stat(filepath.Join(cfg.Output.OutputFolder, "square_0.2d.obj"))
	assert.Error(err, "2D mesh intermediate should have been skipped")
}

func TestProcessor_ExplicitMask(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	texturePath := filepath.Join(dir, "square.png")
	writeSquareTexture(t, texturePath, 16, 16)

	maskPath := filepath.Join(dir, "mask.png")
	mask := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			mask.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	f, err := os.Create(maskPath)
	assert.NoError(err, "creating mask fixture")
	assert.NoError(png.Encode(f, mask), "encoding mask fixture")
	f.Close()

	cfg := DefaultConfig()
	cfg.Output.OutputFolder = filepath.Join(dir, "out")

	proc := &Processor{Config: cfg}
	n, err := proc.Process(texturePath, maskPath)
	assert.NoError(err)
	assert.Equal(1, n)
}
