package operators

import (
	ns "github.com/sharnoff/netscope"
)

type mult float64

// Mult returns an Operator that multiplies every value of its input by c
func Mult(c float64) mult {
	return mult(c)
}

func (t mult) TypeString() string {
	return "mult"
}

func (t mult) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	c := float64(t)
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return x * c
	})
}
