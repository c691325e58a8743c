package costfuncs

import (
	"math"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

// the smallest probability that is given to log
const minProb float64 = 1e-12

type crossEntropy struct{}

// CrossEntropy returns the softmax cross-entropy cost function. Its outputs are logits, which are
// normalized with softmax over the last axis; the targets are probabilities (usually one-hot). The
// cost is averaged over every axis but the last.
func CrossEntropy() crossEntropy {
	return crossEntropy{}
}

func (c crossEntropy) TypeString() string {
	return "crossentropy"
}

func (c crossEntropy) Cost(b ns.Backend, logits, targets ns.Value) (ns.Value, error) {
	if b == nil {
		return nil, errors.Wrapf(ns.ErrNoBackend, "Can't get crossentropy")
	} else if logits == nil || targets == nil {
		return nil, errors.Wrapf(ns.ErrNoInput, "Can't get crossentropy")
	}

	shape := logits.Shape()
	if len(shape) == 0 || !shape.IsKnown() || !shape.Equal(targets.Shape()) {
		return nil, ns.ShapeMismatchError{Name: c.TypeString(), Expected: shape, Actual: targets.Shape()}
	}
	rows := shape.Size() / shape[len(shape)-1]

	p, err := b.Softmax(logits)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get crossentropy")
	}

	logp, err := b.Map(p, func(x float64) float64 {
		return math.Log(math.Max(x, minProb))
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get crossentropy")
	}

	prod, err := b.Mul(targets, logp)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't get crossentropy")
	}

	return mean(b, prod, rows, func(x float64) float64 { return -x })
}
