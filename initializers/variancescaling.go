package initializers

import (
	"math"
	"math/rand"

	ns "github.com/sharnoff/netscope"
)

type varianceScaling struct {
	// either: "in", "out", "avg"
	mode string

	// either: "normal", "uniform"
	distribution string

	factor float64
}

const defaultVarianceMode string = "avg"

// VarianceScaling returns the variance scaling initializer, which has 3 modes and a user-defined
// scaling factor. The three modes can be set by In, Out, and Avg. It defaults to Avg, drawing from
// a truncated normal distribution.
//
// The number of inputs (fan-in) of a parameter is taken to be the product of all but its last
// dimension, and the number of outputs (fan-out) its last dimension. A vector has the same fan-in
// and fan-out.
func VarianceScaling() *varianceScaling {
	return &varianceScaling{defaultVarianceMode, "normal", defaultValue["varscl-factor"]}
}

// Factor sets the scaling factor to be used for the Initializer. The default factor can be set by
// SetDefault("varscl-factor")
func (v *varianceScaling) Factor(f float64) *varianceScaling {
	v.factor = f
	return v
}

// In sets the scaling to be based on the number of inputs of the parameter.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = "in"
	return v
}

// Out sets the scaling to be based on the number of outputs of the parameter.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = "out"
	return v
}

// Avg sets the scaling to be based on the average of the numbers of inputs and outputs.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = "avg"
	return v
}

// WithUniform makes the Initializer draw from a uniform distribution with the same variance
// instead of a truncated normal distribution.
func (v *varianceScaling) WithUniform() *varianceScaling {
	v.distribution = "uniform"
	return v
}

// TypeString is the implementation of netscope.Initializer
func (v *varianceScaling) TypeString() string {
	return "variance_scaling"
}

// fans returns the fan-in and fan-out of a parameter with the given shape
func fans(shape ns.Shape) (float64, float64) {
	switch len(shape) {
	case 0:
		return 1, 1
	case 1:
		return float64(shape[0]), float64(shape[0])
	}

	in := 1
	for _, d := range shape[:len(shape)-1] {
		in *= d
	}

	return float64(in), float64(shape[len(shape)-1])
}

// Set is the implementation of netscope.Initializer
func (v *varianceScaling) Set(src *rand.Rand, shape ns.Shape, ws []float64) {
	in, out := fans(shape)

	var scale float64
	if v.mode == "in" {
		scale = in
	} else if v.mode == "out" {
		scale = out
	} else { // must be "avg"
		scale = (in + out) / 2
	}

	var gen RNG
	if v.distribution == "uniform" {
		limit := math.Sqrt(3 * v.factor / scale)
		gen = UniformRNG().Bounds(-limit, limit)
	} else {
		gen = TruncNormal().SD(math.Sqrt(v.factor / scale))
	}

	for i := range ws {
		ws[i] = gen.Gen(src)
	}
}
