package penalties

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/argparse"
)

func init() {
	list := map[string]interface{}{
		"l1": ns.RegularizerFunc(func(p *argparse.Parser) (ns.Regularizer, error) {
			λ, err := lambda(p)
			return L1(λ), err
		}),
		"l2": ns.RegularizerFunc(func(p *argparse.Parser) (ns.Regularizer, error) {
			λ, err := lambda(p)
			return L2(λ), err
		}),
		"elastic_net": ns.RegularizerFunc(func(p *argparse.Parser) (ns.Regularizer, error) {
			if err := p.Check(true, "alpha"); err != nil {
				return nil, err
			}

			λ, err := p.FloatArg(0)
			if err != nil {
				return nil, err
			}
			α, err := p.Float("alpha", 0.5)
			if err != nil {
				return nil, err
			} else if α < 0 || α > 1 {
				return nil, errors.Errorf("Alpha of elastic net must be in [0, 1], got %v", α)
			}

			return ElasticNet(α, λ), nil
		}),
	}

	if err := ns.RegisterAll(list); err != nil {
		panic(err)
	}
}

// lambda returns the strength given as the positional argument. It is required.
func lambda(p *argparse.Parser) (float64, error) {
	if err := p.Check(true); err != nil {
		return 0, err
	} else if !p.HasArg() {
		return 0, errors.Errorf("%q needs a strength, e.g. %s:0.001", p.Name, p.Name)
	}

	λ, err := p.FloatArg(0)
	if err != nil {
		return 0, err
	} else if λ < 0 {
		return 0, errors.Errorf("Strength of %q is negative (%v)", p.Name, λ)
	}

	return λ, nil
}
