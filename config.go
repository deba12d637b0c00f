package mimesis

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config groups every per-invocation parameter the pipeline and the
// orchestrator need, split the way original_source/bin/src/config.rs
// groups them: input sourcing, geometry processing, batch behaviour
// and output destinations. Loaded from a TOML file and then overlaid
// with command-line flags, flags always winning.
type Config struct {
	Input      InputConfig      `toml:"input"`
	Processing ProcessingConfig `toml:"processing"`
	Batch      BatchConfig      `toml:"batch"`
	Output     OutputConfig     `toml:"output"`
}

// InputConfig names the texture and optional precomputed mask.
type InputConfig struct {
	Input string `toml:"input"`
	Mask  string `toml:"mask"`
}

// ProcessingConfig carries every knob spec.md §6 lists as the core's
// configuration surface.
type ProcessingConfig struct {
	SimplifyTolerance   float64    `toml:"simplify_tolerance"`
	SmoothIterations    int        `toml:"smooth_iterations"`
	ExtrudeHeight       float64    `toml:"extrude_height"`
	MinPolygonDimension int        `toml:"min_polygon_dimension"`
	Threshold           uint8      `toml:"threshold"`
	MaskMethod          MaskMethod `toml:"mask_method"`
	BlurRadius          float64    `toml:"blur_radius"`
	Verbose             bool       `toml:"verbose"`
}

// BatchConfig controls the orchestrator's directory walk, grounded on
// original_source's include_patterns/exclude_patterns/workers/
// continue_on_error group.
type BatchConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Workers         int      `toml:"workers"`
	ContinueOnError bool     `toml:"continue_on_error"`
}

// OutputConfig names where results and optional side/back textures go.
type OutputConfig struct {
	OutputFolder      string `toml:"output_folder"`
	SideTexture       string `toml:"side_texture"`
	BackTexture       string `toml:"back_texture"`
	SkipIntermediates bool   `toml:"skip_intermediates"`
}

// DefaultConfig mirrors original_source/bin/src/config.rs's
// Default impl: alpha-channel masking at threshold 128, a 10px RDP
// tolerance, one Chaikin pass, and a 20-unit extrusion depth.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Input: "texture.png",
		},
		Processing: ProcessingConfig{
			SimplifyTolerance:   10.0,
			SmoothIterations:    1,
			ExtrudeHeight:       20.0,
			MinPolygonDimension: 0,
			Threshold:           128,
			MaskMethod:          Alpha,
		},
		Batch: BatchConfig{
			IncludePatterns: []string{"*.png", "*.jpg", "*.jpeg", "*.bmp", "*.tiff", "*.tga"},
			Workers:         1,
		},
		Output: OutputConfig{
			OutputFolder: "output",
		},
	}
}

// LoadConfig reads a TOML config file, starting from DefaultConfig and
// overlaying whatever the file specifies.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, wrapError(IoError, "reading config file", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, wrapError(InvalidInput, "parsing config file", err)
	}
	return cfg, nil
}
