package mimesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_MatchesOriginalDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	assert.Equal(Alpha, cfg.Processing.MaskMethod)
	assert.EqualValues(128, cfg.Processing.Threshold)
	assert.Equal(20.0, cfg.Processing.ExtrudeHeight)
	assert.Equal(1, cfg.Batch.Workers)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "mimesis.toml")

	toml := `
[processing]
simplify_tolerance = 5.0
mask_method = "luminance"
threshold = 200

[batch]
workers = 4
continue_on_error = true
`
	assert.NoError(os.WriteFile(path, []byte(toml), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(err)

	assert.Equal(5.0, cfg.Processing.SimplifyTolerance)
	assert.Equal(Luminance, cfg.Processing.MaskMethod)
	assert.EqualValues(200, cfg.Processing.Threshold)
	assert.Equal(4, cfg.Batch.Workers)
	assert.True(cfg.Batch.ContinueOnError)
	// Fields not present in the fixture should keep their defaults.
	assert.Equal(20.0, cfg.Processing.ExtrudeHeight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "expected an error loading a nonexistent config file")
}

func TestMaskMethod_TOMLRoundTrip(t *testing.T) {
	assert := assert.New(t)

	text, err := Blue.MarshalText()
	assert.NoError(err)
	assert.Equal("blue", string(text))

	var m MaskMethod
	assert.NoError(m.UnmarshalText(text))
	assert.Equal(Blue, m)
}
