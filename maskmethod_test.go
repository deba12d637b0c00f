package mimesis

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMaskMethod(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]MaskMethod{
		"luminance": Luminance,
		"alpha":     Alpha,
		"red":       Red,
		"green":     Green,
		"blue":      Blue,
	}
	for s, want := range cases {
		got, err := ParseMaskMethod(s)
		assert.NoError(err)
		assert.Equal(want, got)
	}

	_, err := ParseMaskMethod("chartreuse")
	assert.Error(err, "expected an error for an unknown mask method")
}

func TestDeriveMask_ThresholdsSelectedChannel(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 50, G: 10, B: 10, A: 255})

	mask := DeriveMask(img, Red, 128, 0)
	assert.True(mask.Get(0, 0), "red=200 should be foreground at threshold 128")
	assert.False(mask.Get(1, 0), "red=50 should be background at threshold 128")
}

func TestDeriveMask_AlphaChannel(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0})

	mask := DeriveMask(img, Alpha, 128, 0)
	assert.True(mask.Get(0, 0), "opaque pixel should be foreground under Alpha method")
	assert.False(mask.Get(1, 0), "transparent pixel should be background under Alpha method")
}

func TestMaskMethod_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("luminance", Luminance.String())
	assert.Equal("unknown", MaskMethod(99).String())
}
