package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

// elementwise is embedded by the Operators that apply a function to every value of their input
type elementwise struct{}

func (elementwise) IsActivation() bool {
	return true
}

func mapInput(s *ns.Scope, in ns.Value, name string, f func(float64) float64) (ns.Value, error) {
	out, err := s.Backend().Map(in, f)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't apply %s", name)
	}

	return out, nil
}
