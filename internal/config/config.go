package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reiter-ca/internal/sims/reiter"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds everything a headless run or sweep needs.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

// LatticeConfig holds the model rates and lattice radius.
type LatticeConfig struct {
	Size  int         `yaml:"size"`
	Alpha float64     `yaml:"alpha"`
	Beta  float64     `yaml:"beta"`
	Gamma float64     `yaml:"gamma"`
	Noise NoiseConfig `yaml:"noise"`
	Seed  int64       `yaml:"seed"`
}

// NoiseConfig perturbs the background vapor.
type NoiseConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Scale     float64 `yaml:"scale"`
}

// RunConfig bounds the stepping loop.
type RunConfig struct {
	MaxSteps int `yaml:"max_steps"` // 0 = until convergence
	Workers  int `yaml:"workers"`   // goroutines per phase, 0 = GOMAXPROCS
	LogEvery int `yaml:"log_every"` // progress log interval in steps
}

// OutputConfig selects the artefacts written by the export collaborator.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	PNG        bool   `yaml:"png"`
	CellPx     int    `yaml:"cell_px"` // hexagon corner radius in pixels
	Caption    bool   `yaml:"caption"`
	Telemetry  bool   `yaml:"telemetry"`
	Chart      bool   `yaml:"chart"`
	Video      bool   `yaml:"video"`
	VideoEvery int    `yaml:"video_every"`
	VideoFPS   int    `yaml:"video_fps"`
}

// SweepConfig describes a beta x gamma grid.
type SweepConfig struct {
	Betas    []float64 `yaml:"betas"`
	Gammas   []float64 `yaml:"gammas"`
	Parallel int       `yaml:"parallel"` // concurrent runs, 0 = GOMAXPROCS
}

// Load reads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "images"
	}
	if c.Output.CellPx <= 0 {
		c.Output.CellPx = 4
	}
	if c.Output.VideoEvery <= 0 {
		c.Output.VideoEvery = 25
	}
	if c.Output.VideoFPS <= 0 {
		c.Output.VideoFPS = 24
	}
	if c.Run.LogEvery < 0 {
		c.Run.LogEvery = 0
	}
}

// Reiter converts the lattice section into a simulation config.
func (c *Config) Reiter() reiter.Config {
	return reiter.Config{
		Size:    c.Lattice.Size,
		Alpha:   c.Lattice.Alpha,
		Beta:    c.Lattice.Beta,
		Gamma:   c.Lattice.Gamma,
		Noise:   reiter.NoiseConfig{Amplitude: c.Lattice.Noise.Amplitude, Scale: c.Lattice.Noise.Scale},
		Seed:    c.Lattice.Seed,
		Workers: c.Run.Workers,
	}
}

// SetReiter copies a simulation config back into the lattice section, so
// the written config.yaml records the rates that actually ran.
func (c *Config) SetReiter(rc reiter.Config) {
	c.Lattice = LatticeConfig{
		Size:  rc.Size,
		Alpha: rc.Alpha,
		Beta:  rc.Beta,
		Gamma: rc.Gamma,
		Noise: NoiseConfig{Amplitude: rc.Noise.Amplitude, Scale: rc.Noise.Scale},
		Seed:  rc.Seed,
	}
	c.Run.Workers = rc.Workers
}

// Validate checks the lattice section and the run bounds.
func (c *Config) Validate() error {
	if err := c.Reiter().Validate(); err != nil {
		return err
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("%w: run.max_steps must be non-negative", reiter.ErrInvalidConfiguration)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
