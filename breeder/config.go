package breeder

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/validation"
)

// Config holds the run-level breeding settings.
type Config struct {
	Threads      int            `param:"breed.threads" validate:"gte=1"`
	Seed         uint64         `param:"seed"`
	Generations  int            `param:"generations" validate:"gte=0"`
	TrackLineage bool           `param:"breed.track-lineage"`
	Subpops      []SubpopConfig `param:"pop.subpop" validate:"min=1,dive"`
}

// SubpopConfig describes one subpopulation.
type SubpopConfig struct {
	Size int `param:"size" validate:"gte=1"`
	// Species is the species parameter base; its pipe child is the tree root.
	Species config.Path `param:"species" validate:"required"`
}

// Pipe is the parameter base of the subpopulation's breeding tree.
func (s SubpopConfig) Pipe() config.Path { return s.Species.Push("pipe") }

// LoadConfig reads the run-level keys from params.
func LoadConfig(params *config.Parameters) (*Config, error) {
	var cfg Config
	var err error
	if cfg.Threads, err = params.Int("breed.threads", "", 1); err != nil {
		return nil, err
	}
	if cfg.Seed, err = params.Uint64("seed", "", 0); err != nil {
		return nil, err
	}
	if cfg.Generations, err = params.Int("generations", "", 1); err != nil {
		return nil, err
	}
	if cfg.TrackLineage, err = params.Bool("breed.track-lineage", "", false); err != nil {
		return nil, err
	}
	subpops, err := params.Int("pop.subpops", "", 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < subpops; i++ {
		base := config.Path("pop.subpop").PushIndex(i)
		size, err := params.RequireInt(base.Push("size"), "")
		if err != nil {
			return nil, err
		}
		cfg.Subpops = append(cfg.Subpops, SubpopConfig{Size: size, Species: base.Push("species")})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config.
func (c *Config) Validate() error {
	return validation.Params("", c)
}
