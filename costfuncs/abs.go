package costfuncs

import (
	"math"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type abs struct{}

// Abs returns the mean absolute error cost function
func Abs() abs {
	return abs{}
}

func (a abs) TypeString() string {
	return "abs"
}

func (a abs) Cost(b ns.Backend, outs, targets ns.Value) (ns.Value, error) {
	d, n, err := diff(b, a.TypeString(), outs, targets)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get abs")
	}

	return mean(b, d, n, math.Abs)
}
