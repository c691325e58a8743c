// Package costfuncs provides cost functions that compare the output of a tree with its targets,
// computed through the tree's Backend. Each returns the mean cost as a scalar Value.
package costfuncs

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/argparse"
)

// CostFunction is the measure of how far the outputs of a tree are from their targets
type CostFunction interface {
	// TypeString returns the name of the CostFunction, e.g. "mse"
	TypeString() string

	// Cost returns the mean cost over all values of outs. targets must have the same shape.
	Cost(b ns.Backend, outs, targets ns.Value) (ns.Value, error)
}

// Get returns the CostFunction given by the identifier: "mse", "abs", "huber" (optionally
// "huber:δ") or "crossentropy".
func Get(identifier string) (CostFunction, error) {
	p, err := argparse.Parse(identifier)
	if err != nil {
		return nil, err
	}

	var cf CostFunction
	switch p.Name {
	case "mse", "l2":
		cf, err = MSE(), p.Check(false)
	case "abs", "l1":
		cf, err = Abs(), p.Check(false)
	case "huber":
		if err = p.Check(true); err == nil {
			var δ float64
			if δ, err = p.FloatArg(1); err == nil && δ <= 0 {
				err = errors.Errorf("δ of huber must be positive, got %v", δ)
			}
			cf = Huber(δ)
		}
	case "crossentropy", "softmax_crossentropy":
		cf, err = CrossEntropy(), p.Check(false)
	default:
		return nil, errors.Errorf("Unknown cost function %q", p.Name)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't build cost function %q", identifier)
	}

	return cf, nil
}

// ContextLoss returns a hook for netscope.WithCustomLoss that adds the cost of the tree's context
// logits against the targets. Nothing is added before the logits are set.
func ContextLoss(cf CostFunction, targets ns.Value) func(*ns.Group) []ns.Value {
	return func(g *ns.Group) []ns.Value {
		logits := g.ContextLogits()
		if logits == nil {
			return nil
		}

		v, err := cf.Cost(g.Backend(), logits, targets)
		if err != nil {
			return nil
		}

		return []ns.Value{v}
	}
}

// diff returns outs - targets, checking that both have the same known shape
func diff(b ns.Backend, name string, outs, targets ns.Value) (ns.Value, int, error) {
	if b == nil {
		return nil, 0, errors.Wrapf(ns.ErrNoBackend, "Can't get %s cost", name)
	} else if outs == nil || targets == nil {
		return nil, 0, errors.Wrapf(ns.ErrNoInput, "Can't get %s cost", name)
	}

	shape := outs.Shape()
	if !shape.IsKnown() || !shape.Equal(targets.Shape()) {
		return nil, 0, ns.ShapeMismatchError{Name: name, Expected: shape, Actual: targets.Shape()}
	} else if shape.Size() == 0 {
		return nil, 0, errors.Errorf("Can't get %s cost of empty outputs", name)
	}

	neg, err := b.Map(targets, func(x float64) float64 { return -x })
	if err != nil {
		return nil, 0, err
	}

	d, err := b.Add(outs, neg)
	if err != nil {
		return nil, 0, err
	}

	return d, shape.Size(), nil
}

// mean applies f to every value, sums them and divides by n
func mean(b ns.Backend, v ns.Value, n int, f func(float64) float64) (ns.Value, error) {
	v, err := b.Map(v, f)
	if err != nil {
		return nil, err
	}

	if v, err = b.Sum(v); err != nil {
		return nil, err
	}

	return b.Map(v, func(x float64) float64 { return x / float64(n) })
}
