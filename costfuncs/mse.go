package costfuncs

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type mse struct{}

// MSE returns the mean squared error cost function, halved so that its derivative is simply the
// difference.
func MSE() mse {
	return mse{}
}

func (m mse) TypeString() string {
	return "mse"
}

func (m mse) Cost(b ns.Backend, outs, targets ns.Value) (ns.Value, error) {
	d, n, err := diff(b, m.TypeString(), outs, targets)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get mse")
	}

	return mean(b, d, n, func(x float64) float64 {
		return 0.5 * x * x
	})
}
