package reiter

import (
	"fmt"
	"strconv"
)

// NoiseConfig perturbs the background vapor with Perlin noise. Amplitude
// zero keeps the background uniform.
type NoiseConfig struct {
	Amplitude float64
	Scale     float64
}

// Config controls the lattice radius, the model rates and the runtime.
type Config struct {
	Size  int
	Alpha float64
	Beta  float64
	Gamma float64

	Noise NoiseConfig
	Seed  int64

	// Workers bounds the goroutines used per phase; 0 selects GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:  100,
		Alpha: 1.0,
		Beta:  0.4,
		Gamma: 0.001,
		Noise: NoiseConfig{Amplitude: 0, Scale: 0.05},
		Seed:  1,
	}
}

// Params returns the model rates.
func (c Config) Params() Params {
	return Params{Alpha: c.Alpha, Beta: c.Beta, Gamma: c.Gamma}
}

// Validate reports configurations the model cannot run.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalidConfiguration, c.Size)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Noise.Amplitude < 0 || c.Noise.Scale < 0 {
		return fmt.Errorf("%w: noise amplitude and scale must be non-negative", ErrInvalidConfiguration)
	}
	return nil
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply overlays the recognised keys of cfg onto c. Unparsable values are
// ignored so a single typo does not discard the rest of the overrides.
func (c Config) Apply(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["alpha"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Alpha = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Beta = parsed
		}
	}
	if v, ok := cfg["gamma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Gamma = parsed
		}
	}
	if v, ok := cfg["noise_amp"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Noise.Amplitude = parsed
		}
	}
	if v, ok := cfg["noise_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Noise.Scale = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	return c
}

// Values renders c as the key/value map understood by Apply.
func (c Config) Values() map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		"size":        strconv.Itoa(c.Size),
		"alpha":       f(c.Alpha),
		"beta":        f(c.Beta),
		"gamma":       f(c.Gamma),
		"noise_amp":   f(c.Noise.Amplitude),
		"noise_scale": f(c.Noise.Scale),
		"seed":        strconv.FormatInt(c.Seed, 10),
		"workers":     strconv.Itoa(c.Workers),
	}
}
