package pixelator

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/CBibop12/pixelator/pixel"
	"github.com/CBibop12/pixelator/project"
)

// PipelineConfig holds the conversion parameters applied to every image.
type PipelineConfig struct {
	SizeMode  string  `toml:"size_mode"` // "dimensions", "width" or "height"
	SizeValue int     `toml:"size_value"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Contrast  float64 `toml:"contrast"`
	Colors    int     `toml:"colors"`
}

// ExportConfig controls how finished buffers are rendered to disk.
type ExportConfig struct {
	Scale int `toml:"scale"` // nearest-neighbor upscale factor
}

type Config struct {
	Pipeline PipelineConfig    `toml:"pipeline"`
	Export   ExportConfig      `toml:"export"`
	Mapping  map[string]string `toml:"mapping"`
}

func defaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			SizeMode:  project.SizeModeWidth,
			SizeValue: 64,
			Contrast:  1.0,
			Colors:    16,
		},
		Export: ExportConfig{
			Scale: 8,
		},
	}
}

// LoadConfig reads a TOML config from path. A missing file yields the
// defaults rather than an error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("pixelator: parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Parameters converts the config into the pipeline's parameter snapshot.
func (c *Config) Parameters() pixel.Parameters {
	return pixel.Parameters{
		Contrast:   c.Pipeline.Contrast,
		ColorCount: c.Pipeline.Colors,
		Mapping:    pixel.Mapping(c.Mapping),
	}
}

// SnapshotParameters captures the config as the parameter block stored in a
// project snapshot. dims are the resolved target dimensions and maxColors
// the distinct-color count of the base buffer.
func (c *Config) SnapshotParameters(dims project.Dimensions, maxColors int) project.Parameters {
	return project.Parameters{
		SizeMode:     c.Pipeline.SizeMode,
		SizeValue:    c.Pipeline.SizeValue,
		ColorCount:   c.Pipeline.Colors,
		MaxColors:    maxColors,
		Contrast:     c.Pipeline.Contrast,
		Dimensions:   dims,
		ColorMapping: c.Mapping,
	}
}
