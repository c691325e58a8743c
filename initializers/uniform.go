package initializers

import (
	"math/rand"

	ns "github.com/sharnoff/netscope"
)

type uniform struct {
	lower, upper float64
}

// Uniform returns an Initializer that draws from a uniform random sample within a range, which
// can be set by Range. The defaults ("uniform-lower" and "uniform-upper") can be set by
// SetDefault.
//
// Zero is never drawn, so that no two units of a layer start out disconnected.
func Uniform() *uniform {
	return &uniform{defaultValue["uniform-lower"], defaultValue["uniform-upper"]}
}

// Range sets the Range of a Uniform Initializer, returning the same Initializer
func (u *uniform) Range(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// TypeString is the implementation of netscope.Initializer
func (u *uniform) TypeString() string {
	return "uniform"
}

// Set is the implementation of netscope.Initializer
func (u *uniform) Set(src *rand.Rand, shape ns.Shape, ws []float64) {
	if u.lower == u.upper {
		for i := range ws {
			ws[i] = u.lower
		}
		return
	}

	for i := 0; i < len(ws); i++ {
		w := src.Float64()*(u.upper-u.lower) + u.lower
		if w == 0 {
			// discard and try again
			i--
			continue
		}
		ws[i] = w
	}
}
