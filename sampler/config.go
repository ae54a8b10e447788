package sampler

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config selects and parameterizes a sampler. Strategy parameters are
// pointers so a missing required value can be told apart from zero.
//
// Example (YAML):
//
//	name: ring
//	inner_radius: 10
//	outer_radius: 12
type Config struct {
	Name string `json:"name" yaml:"name"`

	// ImageWidth and ImageHeight default to 640x480 when zero.
	ImageWidth  int `json:"image_width,omitempty" yaml:"image_width,omitempty"`
	ImageHeight int `json:"image_height,omitempty" yaml:"image_height,omitempty"`

	// Seed for the sampler's generator when Dispatch is given a nil one.
	// Zero means time-seeded.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// ring
	InnerRadius *int `json:"inner_radius,omitempty" yaml:"inner_radius,omitempty"`
	OuterRadius *int `json:"outer_radius,omitempty" yaml:"outer_radius,omitempty"`
	// LegacyOuterRadius is the misspelled key older configuration files use.
	LegacyOuterRadius *int `json:"outter_radius,omitempty" yaml:"outter_radius,omitempty"`

	// don
	MaskWeight       *float64 `json:"mask_weight,omitempty" yaml:"mask_weight,omitempty"`
	BackgroundWeight *float64 `json:"background_weight,omitempty" yaml:"background_weight,omitempty"`
}

// ConfigFromMap decodes a configuration mapping such as the "sampler" section
// of a training config.
func ConfigFromMap(m map[string]any) (Config, error) {
	var cfg Config
	data, err := json.Marshal(m)
	if err != nil {
		return cfg, errors.Wrapf(ErrConfig, "encode config map: %v", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrConfig, "decode config map: %v", err)
	}
	return cfg, nil
}

// LoadConfig reads a sampler configuration from a .json, .yaml or .yml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read sampler config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension %q (want .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse sampler config %s: %w", path, err)
	}
	return cfg, nil
}

// outerRadius resolves outer_radius, falling back to outter_radius.
func (c Config) outerRadius() *int {
	if c.OuterRadius != nil {
		return c.OuterRadius
	}
	return c.LegacyOuterRadius
}

// Dispatch builds the sampler named by cfg.Name. If rng is nil a generator is
// seeded from cfg.Seed.
func Dispatch(cfg Config, rng *rand.Rand) (Sampler, error) {
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	var (
		s   Sampler
		err error
	)
	switch Strategy(cfg.Name) {
	case StrategyRandom:
		s, err = NewRandomSampler(cfg.ImageWidth, cfg.ImageHeight, rng)
	case StrategyRing:
		outer := cfg.outerRadius()
		if cfg.InnerRadius == nil || outer == nil {
			return nil, errors.Wrap(ErrConfig, "ring sampler requires inner_radius and outer_radius")
		}
		s, err = NewRingSampler(cfg.ImageWidth, cfg.ImageHeight, *cfg.InnerRadius, *outer, rng)
	case StrategyDON:
		if cfg.MaskWeight == nil || cfg.BackgroundWeight == nil {
			return nil, errors.Wrap(ErrConfig, "don sampler requires mask_weight and background_weight")
		}
		s, err = NewDONSampler(cfg.ImageWidth, cfg.ImageHeight, *cfg.MaskWeight, *cfg.BackgroundWeight, rng)
	default:
		names := make([]string, 0, len(Strategies()))
		for _, st := range Strategies() {
			names = append(names, string(st))
		}
		return nil, errors.Wrapf(ErrUnknownSampler, "sampler %q not recognized, supported sampling strategies are: [%s]",
			cfg.Name, strings.Join(names, ", "))
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
