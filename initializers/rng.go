package initializers

import (
	"math"
	"math/rand"
)

// RNG draws values from a distribution. It never keeps a source of its own: every draw is taken
// from the source of the tree that declares the parameter, passed to Gen.
type RNG interface {
	Gen(src *rand.Rand) float64
}

type bounded struct {
	lower, upper float64
}

// UniformRNG returns an RNG spread evenly over [lower, upper), set by Bounds. Until then, the range
// is given by the defaults "uniform-lower" and "uniform-upper".
func UniformRNG() *bounded {
	return &bounded{defaultValue["uniform-lower"], defaultValue["uniform-upper"]}
}

// Bounds sets the range of the RNG, returning it
func (b *bounded) Bounds(lower, upper float64) *bounded {
	b.lower, b.upper = lower, upper
	return b
}

// Gen is the implementation of RNG
func (b *bounded) Gen(src *rand.Rand) float64 {
	return b.lower + src.Float64()*(b.upper-b.lower)
}

type gaussian struct {
	mean, sd float64

	// number of standard deviations to cut off at; zero for none
	cut float64
}

const defaultTrunc float64 = 2.0

// Normal returns an RNG with a normal distribution, centered at "normal-mean" with a standard
// deviation of "normal-sd" unless Mean and SD say otherwise.
func Normal() *gaussian {
	return &gaussian{mean: defaultValue["normal-mean"], sd: defaultValue["normal-sd"]}
}

// TruncNormal is Normal, with values redrawn if they are more than 2 standard deviations from the
// mean. The cutoff can be changed with Trunc.
func TruncNormal() *gaussian {
	return Normal().Trunc(defaultTrunc)
}

// Mean moves the center of the distribution
func (g *gaussian) Mean(mean float64) *gaussian {
	g.mean = mean
	return g
}

// SD sets the standard deviation of the distribution
func (g *gaussian) SD(sd float64) *gaussian {
	g.sd = sd
	return g
}

// Trunc sets how many standard deviations from the mean values may be. Values of sds that aren't
// positive remove the cutoff.
func (g *gaussian) Trunc(sds float64) *gaussian {
	g.cut = math.Max(sds, 0)
	return g
}

// Gen is the implementation of RNG
func (g *gaussian) Gen(src *rand.Rand) float64 {
	v := src.NormFloat64()
	for g.cut != 0 && math.Abs(v) > g.cut {
		v = src.NormFloat64()
	}

	return g.mean + v*g.sd
}
