package mimesis

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// openImage decodes any supported raster format from path. Format
// sniffing is left to the standard image package's registered
// decoders (png/jpeg/gif imported for side effect); imaging.Open is
// tried as a fallback, and the imaging package adds bmp and tiff, the
// wider format set caire's loader also relies on. No TGA decoder is
// registered, so a .tga input fails with DecodeError.
func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapError(IoError, "opening image "+path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err == nil {
		return img, nil
	}

	img, err = imaging.Open(path)
	if err != nil {
		return nil, wrapError(DecodeError, "decoding image "+path, err)
	}
	return img, nil
}

// savePNG encodes img as a PNG at path using png.BestCompression. It
// stands in for original_source/bin/src/processing.rs's
// save_uncompressed_png, but its output is compressed.
func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return wrapError(IoError, "creating output directory for "+path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return wrapError(IoError, "creating "+path, err)
	}
	defer f.Close()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		return wrapError(IoError, "encoding "+path, err)
	}
	return nil
}

// copyFile copies src to dst, creating dst's directory as needed. Used
// to stage an explicit side/back texture alongside the generated front
// texture.
func copyFile(dst, src string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return wrapError(IoError, "creating output directory for "+dst, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return wrapError(IoError, "opening "+src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return wrapError(IoError, "creating "+dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return wrapError(IoError, "copying "+src+" to "+dst, err)
	}
	return nil
}

// maskFromImage converts an already-decoded mask image (typically a
// black-and-white PNG produced by some external tool) into a
// BinaryMask, foreground iff the pixel's luma is exactly 255.
func maskFromImage(img image.Image) (*BinaryMask, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if r8 == g8 && g8 == b8 {
				// Already gray: use the channel value directly rather
				// than round-tripping through luma8's float32 weighted
				// sum, which can round an exact 255 down to 254.
				buf[y*width+x] = r8
			} else {
				buf[y*width+x] = luma8(r8, g8, b8)
			}
		}
	}
	return BinaryMaskFromGrayscale(width, height, buf)
}

// maskVisualization renders a BinaryMask as a black-and-white PNG
// image, foreground pixels white.
func maskVisualization(m *BinaryMask) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Get(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
