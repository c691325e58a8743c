package costfuncs

import (
	"math"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type huber float64

// Huber returns the Huber loss function. δ controls the bounds of the transition between squared
// and absolute error.
func Huber(δ float64) huber {
	return huber(δ)
}

func (h huber) TypeString() string {
	return "huber"
}

func (h huber) Cost(b ns.Backend, outs, targets ns.Value) (ns.Value, error) {
	d, n, err := diff(b, h.TypeString(), outs, targets)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get huber")
	}

	δ := float64(h)
	return mean(b, d, n, func(x float64) float64 {
		x = math.Abs(x)
		if x <= δ {
			return 0.5 * x * x
		}
		return δ*x - 0.5*δ*δ
	})
}
