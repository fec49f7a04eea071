package config

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/ivlev/segplay/internal/registry"
)

// Config holds segplay command configuration. Environment variables are
// read first and command-line flags override them.
type Config struct {
	AnimationsDir string `env:"SEGPLAY_ANIMATIONS_DIR" envDefault:"animations"`
	Dir           string `env:"SEGPLAY_DIR"`
	Prefix        string `env:"SEGPLAY_PREFIX"`
	Total         int    `env:"SEGPLAY_TOTAL"   envDefault:"-1"`
	Actor         string `env:"SEGPLAY_ACTOR"   envDefault:"biped"`
	Workers       int    `env:"SEGPLAY_WORKERS"`
	Repeat        int    `env:"SEGPLAY_REPEAT"  envDefault:"1"`
	Strict        bool   `env:"SEGPLAY_STRICT"`
	Detached      bool   `env:"SEGPLAY_DETACHED"`
	TracePath     string `env:"SEGPLAY_TRACE"`
	ShowStats     bool   `env:"SEGPLAY_STATS"`
	BuildVersion  string
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse reads the environment and then args into a Config.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	fs.StringVar(&cfg.AnimationsDir, "animations", cfg.AnimationsDir, "Folder searched for the latest animation when -dir is empty")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "Animation folder with manifest.yaml and segment definitions")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Segment file prefix when the animation has no manifest; must match the manifest prefix otherwise")
	fs.IntVar(&cfg.Total, "total", cfg.Total, "Number of segments to compose (-1: from manifest)")
	fs.StringVar(&cfg.Actor, "actor", cfg.Actor, "Name of the actor to animate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines used to parse segment definitions")
	fs.IntVar(&cfg.Repeat, "repeat", cfg.Repeat, "How many times to play the animation")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Exit with an error when any segment is missing")
	fs.BoolVar(&cfg.Detached, "detached", cfg.Detached, "Build segments without a scene")
	fs.StringVar(&cfg.TracePath, "trace", cfg.TracePath, "Write the call trace to this YAML file")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print process statistics after playback")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values flags and environment cannot enforce.
func (c *Config) Validate() error {
	if c.Total < -1 {
		return fmt.Errorf("total must be -1 or at least 0, got %d", c.Total)
	}
	if c.Total > registry.MaxSegments {
		return fmt.Errorf("total must not exceed %d, got %d", registry.MaxSegments, c.Total)
	}
	if c.Repeat < 0 {
		return fmt.Errorf("repeat must not be negative, got %d", c.Repeat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Actor == "" {
		return fmt.Errorf("actor name is required")
	}
	return nil
}
