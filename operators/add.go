package operators

import (
	ns "github.com/sharnoff/netscope"
)

type add float64

// Add returns an Operator that adds c to every value of its input
func Add(c float64) add {
	return add(c)
}

func (t add) TypeString() string {
	return "add"
}

func (t add) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	c := float64(t)
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return x + c
	})
}
