package initializers

import (
	"math/rand"

	ns "github.com/sharnoff/netscope"
)

type random struct {
	RNG
	name string
}

// Random returns an Initializer that fills parameters with values from the RNG, unscaled.
func Random(g RNG) random {
	return random{g, "random"}
}

// TypeString is the implementation of netscope.Initializer
func (r random) TypeString() string {
	return r.name
}

// Set is the implementation of netscope.Initializer
func (r random) Set(src *rand.Rand, shape ns.Shape, ws []float64) {
	for i := range ws {
		ws[i] = r.Gen(src)
	}
}
