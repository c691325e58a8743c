package operators

import (
	ns "github.com/sharnoff/netscope"
)

type rescale struct {
	fromLo, fromHi float64
	toLo, toHi     float64
}

// Rescale returns an Operator that maps its input linearly from the range [fromLo, fromHi] to
// [toLo, toHi], e.g. pixel values from [0, 255] to [-1, 1].
func Rescale(fromLo, fromHi, toLo, toHi float64) rescale {
	return rescale{fromLo, fromHi, toLo, toHi}
}

func (t rescale) TypeString() string {
	return "rescale"
}

func (t rescale) Validate() error {
	if t.fromHi == t.fromLo {
		return ns.ConstructionError{Name: t.TypeString(), Reason: "source range is empty"}
	}

	return nil
}

func (t rescale) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	k := (t.toHi - t.toLo) / (t.fromHi - t.fromLo)
	return mapInput(s, in, t.TypeString(), func(x float64) float64 {
		return (x-t.fromLo)*k + t.toLo
	})
}
