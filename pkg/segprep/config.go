package segprep

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// StepConfig describes one pipeline step. Kind selects the transform and the
// remaining fields are read according to it.
type StepConfig struct {
	Kind      string  `toml:"kind"`
	Size      int     `toml:"size"`
	Fill      float32 `toml:"fill"`
	AuxFill   float32 `toml:"aux_fill"`
	MinLong   int     `toml:"min_long"`
	MaxLong   int     `toml:"max_long"`
	AuxInterp string  `toml:"aux_interp"`
	Scale     float64 `toml:"scale"`
}

// Config is the TOML form of an augmentation pipeline.
//
//	seed = 7
//
//	[[step]]
//	kind = "resize_long"
//	min_long = 448
//	max_long = 768
//	aux_interp = "nearest"
//
//	[[step]]
//	kind = "flip"
//
//	[[step]]
//	kind = "crop"
//	size = 448
//	aux_fill = 255
type Config struct {
	Seed  uint64       `toml:"seed"`
	Steps []StepConfig `toml:"step"`
}

// LoadConfig decodes a pipeline configuration file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := checkUndecoded(md, path); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseConfig decodes a pipeline configuration from TOML text.
func ParseConfig(text string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := checkUndecoded(md, "config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkUndecoded rejects keys that match no config field.
func checkUndecoded(md toml.MetaData, where string) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode %s: unknown keys %v", where, undecoded)
	}
	return nil
}

// Build validates every step and assembles the pipeline.
func (c *Config) Build(logger *log.Logger) (*Pipeline, error) {
	steps := make([]Transform, 0, len(c.Steps))
	for i, sc := range c.Steps {
		t, err := sc.transform()
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, sc.Kind, err)
		}
		steps = append(steps, t)
	}
	return NewPipeline(logger, steps...), nil
}

func (sc StepConfig) transform() (Transform, error) {
	switch sc.Kind {
	case "resize_long":
		if sc.MinLong <= 0 || sc.MinLong > sc.MaxLong {
			return nil, fmt.Errorf("%w: long side range [%d, %d]", ErrInvalidDimension, sc.MinLong, sc.MaxLong)
		}
		interp, err := ParseInterpolation(sc.AuxInterp)
		if err != nil {
			return nil, err
		}
		return RandomResizeLong{MinLong: sc.MinLong, MaxLong: sc.MaxLong, AuxInterp: interp}, nil
	case "flip":
		return RandomHorizontalFlip{}, nil
	case "crop":
		if sc.Size <= 0 {
			return nil, fmt.Errorf("%w: crop size %d", ErrInvalidDimension, sc.Size)
		}
		return RandomCrop{Size: sc.Size, Fill: sc.Fill, AuxFill: sc.AuxFill}, nil
	case "center_crop":
		if sc.Size <= 0 {
			return nil, fmt.Errorf("%w: crop size %d", ErrInvalidDimension, sc.Size)
		}
		return CenterCrop{Size: sc.Size, Fill: sc.Fill}, nil
	case "rescale_nearest":
		if !(sc.Scale > 0) {
			return nil, fmt.Errorf("%w: scale %g", ErrInvalidDimension, sc.Scale)
		}
		return RescaleNearest{Scale: sc.Scale}, nil
	default:
		return nil, fmt.Errorf("segprep: unknown step kind %q", sc.Kind)
	}
}
