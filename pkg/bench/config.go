package bench

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/oisee/concise/pkg/generator"
)

// Config holds the benchmark matrix.
type Config struct {
	Sets struct {
		Universe      int       `toml:"universe"`
		Densities     []float64 `toml:"densities"`
		Distributions []string  `toml:"distributions"`
		Seed          uint64    `toml:"seed"`
	} `toml:"sets"`

	Run struct {
		Operators   []string `toml:"operators"`
		Repetitions int      `toml:"repetitions"`
		Workers     int      `toml:"workers"` // 0 = NumCPU
		Checkpoint  string   `toml:"checkpoint"`
		Verbose     bool     `toml:"verbose"`
	} `toml:"run"`
}

// DefaultConfig returns a configuration covering every operator over a small
// matrix of shapes.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Sets.Universe = 1 << 20
	cfg.Sets.Densities = []float64{0.001, 0.01, 0.1, 0.5}
	cfg.Sets.Distributions = []string{"uniform", "clustered"}
	cfg.Sets.Seed = 1
	cfg.Run.Operators = []string{"and", "or", "xor", "andnot"}
	cfg.Run.Repetitions = 5
	return cfg
}

// LoadConfig reads a toml file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("bench: parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.Sets.Universe < 1 {
		return fmt.Errorf("bench: universe must be positive, got %d", cfg.Sets.Universe)
	}
	for _, d := range cfg.Sets.Densities {
		if d <= 0 || d > 1 {
			return fmt.Errorf("bench: density %v outside (0, 1]", d)
		}
	}
	for _, dist := range cfg.Sets.Distributions {
		ok := false
		for _, known := range generator.Distributions {
			if generator.Distribution(dist) == known {
				ok = true
			}
		}
		if !ok {
			return fmt.Errorf("bench: unknown distribution %q", dist)
		}
	}
	for _, op := range cfg.Run.Operators {
		if _, err := opByName(op); err != nil {
			return err
		}
	}
	if cfg.Run.Repetitions < 1 {
		return fmt.Errorf("bench: repetitions must be at least 1, got %d", cfg.Run.Repetitions)
	}
	return nil
}
