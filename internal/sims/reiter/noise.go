package reiter

import (
	"math"

	"github.com/aquilax/go-perlin"

	"reiter-ca/internal/hex"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// noisyBackground perturbs beta with Perlin noise sampled at each cell's
// pixel centre. Densities are clamped to [0, 1) so no background cell
// starts negative or frozen.
func noisyBackground(cfg Config, seed int64) Background {
	if cfg.Noise.Amplitude == 0 {
		return nil
	}
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)
	amp := cfg.Noise.Amplitude
	scale := cfg.Noise.Scale
	beta := cfg.Beta
	ceil := math.Nextafter(FreezeThreshold, 0)
	return func(c hex.Axial) float64 {
		x, y := c.ToPixel(1)
		v := beta + amp*p.Noise2D(x*scale, y*scale)
		return math.Min(math.Max(v, 0), ceil)
	}
}
