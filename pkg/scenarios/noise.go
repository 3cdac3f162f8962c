package scenarios

import (
	"math/rand"
)

// Noise perturbs a synthetic per-episode return
type Noise interface {
	Perturb(value float64) float64
}

// GaussianNoise adds seeded gaussian noise to a return value
type GaussianNoise struct {
	rng    *rand.Rand
	stdDev float64
}

// NewGaussianNoise creates a gaussian noise source with the given seed
// and standard deviation
func NewGaussianNoise(seed int64, stdDev float64) *GaussianNoise {
	return &GaussianNoise{
		rng:    rand.New(rand.NewSource(seed)),
		stdDev: stdDev,
	}
}

// Perturb adds noise with mean 0 and the configured deviation
func (g *GaussianNoise) Perturb(value float64) float64 {
	if g.stdDev == 0 {
		return value
	}
	return value + g.rng.NormFloat64()*g.stdDev
}

// CompoundNoise applies several noise sources in sequence
type CompoundNoise struct {
	sources []Noise
}

// NewCompoundNoise combines noise sources
func NewCompoundNoise(sources ...Noise) *CompoundNoise {
	return &CompoundNoise{sources: sources}
}

// Perturb runs the value through every source in order
func (c *CompoundNoise) Perturb(value float64) float64 {
	for _, source := range c.sources {
		value = source.Perturb(value)
	}
	return value
}
