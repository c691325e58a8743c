package operators

import (
	"math"

	ns "github.com/sharnoff/netscope"
)

// ****************************************
// Sigmoid
// ****************************************

type sigmoid struct{ elementwise }

// Sigmoid returns an elementwise application of the logistic (or sigmoid) function, 1/(1+e^-x).
func Sigmoid() sigmoid {
	return sigmoid{}
}

// Logistic is another name for Sigmoid
func Logistic() sigmoid {
	return Sigmoid()
}

func (t sigmoid) TypeString() string {
	return "sigmoid"
}

func (t sigmoid) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return 1 / (1 + math.Exp(-x))
	})
}

// ****************************************
// Tanh
// ****************************************

type tanh struct{ elementwise }

// Tanh returns an elementwise application of the hyperbolic tangent.
func Tanh() tanh {
	return tanh{}
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), math.Tanh)
}

// ****************************************
// Softsign
// ****************************************

type softsign struct{ elementwise }

// Softsign returns an elementwise application of x/(1+|x|).
func Softsign() softsign {
	return softsign{}
}

func (t softsign) TypeString() string {
	return "softsign"
}

func (t softsign) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return x / (1 + math.Abs(x))
	})
}
