package mimesis

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// MaskMethod selects which channel of the decoded image feeds the
// foreground/background threshold.
type MaskMethod int

const (
	// Luminance derives the mask from the standard luma-8 conversion.
	Luminance MaskMethod = iota
	// Alpha derives the mask from the alpha channel. This is the
	// default, matching original_source's MaskMethod::default().
	Alpha
	// Red derives the mask from the red channel.
	Red
	// Green derives the mask from the green channel.
	Green
	// Blue derives the mask from the blue channel.
	Blue
)

// String renders the method the way config files and CLI flags spell it.
func (m MaskMethod) String() string {
	switch m {
	case Luminance:
		return "luminance"
	case Alpha:
		return "alpha"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// MarshalText lets MaskMethod round-trip through TOML/JSON as its
// lowercase spelling instead of a bare integer.
func (m MaskMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText is MarshalText's counterpart.
func (m *MaskMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseMaskMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMaskMethod parses the config/flag spelling of a MaskMethod.
func ParseMaskMethod(s string) (MaskMethod, error) {
	switch s {
	case "luminance":
		return Luminance, nil
	case "alpha":
		return Alpha, nil
	case "red":
		return Red, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	default:
		return 0, newError(InvalidInput, "unknown mask method "+s)
	}
}

// DeriveMask produces a BinaryMask from a decoded image by thresholding
// one channel. A pixel is foreground iff the selected channel's 8-bit
// value is strictly greater than threshold. When blurRadius > 0 the
// image is first softened with a Gaussian blur, the direct descendant
// of caire's BlurRadius knob, here denoising antialiased silhouette
// edges before they're thresholded into a hard mask.
func DeriveMask(img image.Image, method MaskMethod, threshold uint8, blurRadius float64) *BinaryMask {
	if blurRadius > 0 {
		img = blur.Gaussian(img, blurRadius)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	m := NewBinaryMask(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

			var channel uint8
			switch method {
			case Luminance:
				channel = luma8(r8, g8, b8)
			case Alpha:
				channel = a8
			case Red:
				channel = r8
			case Green:
				channel = g8
			case Blue:
				channel = b8
			}

			if channel > threshold {
				m.set(y*width + x)
			}
		}
	}

	return m
}

// luma8 converts an RGB triple to standard 8-bit luma, the same
// formula caire's Grayscale uses to turn a resize source into a
// dithering candidate.
func luma8(r, g, b uint8) uint8 {
	lum := float32(r)*0.299 + float32(g)*0.587 + float32(b)*0.114
	return uint8(lum)
}
