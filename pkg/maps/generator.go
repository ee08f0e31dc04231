package maps

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseOptions controls the simplex-noise flooding.
type NoiseOptions struct {
	Seed      int64   // 0 = random
	Scale     float64 // Sampling step per cell; larger means choppier water
	Threshold float64 // Normalized noise above this floods the cell (0.0-1.0)
}

// DefaultNoiseOptions floods roughly a fifth of the board in pools.
func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{
		Scale:     0.35,
		Threshold: 0.68,
	}
}

// NoiseGenerator floods cells where a simplex field rises above a threshold,
// giving pools that span neighboring tunnels.
type NoiseGenerator struct {
	options NoiseOptions
	noise   opensimplex.Noise
}

// NewNoiseGenerator creates a generator. The same seed always yields the
// same layout.
func NewNoiseGenerator(opts NoiseOptions) *NoiseGenerator {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultNoiseOptions().Scale
	}
	return &NoiseGenerator{
		options: opts,
		noise:   opensimplex.NewNormalized(seed),
	}
}

// Generate implements Generator.
func (g *NoiseGenerator) Generate(tunnels, length int) *Layout {
	l := newLayout("noise", tunnels, length)
	s := g.options.Scale
	for t := 0; t < tunnels; t++ {
		for p := 0; p < length; p++ {
			v := g.noise.Eval2(float64(p)*s, float64(t)*s)
			l.Water[t][p] = v > g.options.Threshold
		}
	}
	return l
}
