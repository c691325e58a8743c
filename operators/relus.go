// relus.go contains all activation functions that are derivative of relu:
// * ReLU
// * Leaky ReLU
// * ELU
// * Softplus (because it's similar)
package operators

import (
	"math"

	ns "github.com/sharnoff/netscope"
)

// ****************************************
// ReLU
// ****************************************

type relu struct{ elementwise }

// ReLU returns the standard rectified linear unit, which implements netscope.Operator.
func ReLU() relu {
	return relu{}
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return math.Max(x, 0)
	})
}

// ****************************************
// Leaky ReLU
// ****************************************

type lrelu struct {
	elementwise
	alpha float64
}

// LeakyReLU returns a standard 'leaky ReLU', where the leaky factor is given by alpha.
func LeakyReLU(alpha float64) lrelu {
	return lrelu{alpha: alpha}
}

func (t lrelu) TypeString() string {
	return "lrelu"
}

func (t lrelu) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		if x < 0 {
			return t.alpha * x
		}
		return x
	})
}

// ****************************************
// ELU
// ****************************************

type elu struct {
	elementwise
	alpha float64
}

// ELU returns an exponential linear unit: alpha*(e^x - 1) for negative x, x otherwise.
func ELU(alpha float64) elu {
	return elu{alpha: alpha}
}

func (t elu) TypeString() string {
	return "elu"
}

func (t elu) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		if x < 0 {
			return t.alpha * (math.Exp(x) - 1)
		}
		return x
	})
}

// ****************************************
// Softplus
// ****************************************

type softplus struct{ elementwise }

// Softplus returns the smooth approximation of ReLU, ln(1 + e^x).
func Softplus() softplus {
	return softplus{}
}

func (t softplus) TypeString() string {
	return "softplus"
}

func (t softplus) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		// avoids overflow of e^x for large x
		if x > 30 {
			return x
		}
		return math.Log1p(math.Exp(x))
	})
}
