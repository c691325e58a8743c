package operators

import (
	"math"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/argparse"
)

// default values, because 'default' is a keyword
var defaultValue map[string]float64

func init() {
	defaultValue = map[string]float64{
		"lrelu-alpha":  0.2,
		"elu-alpha":    1,
		"dropout-keep": 0.5,
		"rescale-from": 255,
	}

	// operators that take no arguments
	plain := func(op ns.Operator) ns.OperatorFunc {
		return func(p *argparse.Parser) (ns.Operator, error) {
			return op, p.Check(false)
		}
	}

	list := map[string]interface{}{
		"relu":     plain(ReLU()),
		"softplus": plain(Softplus()),
		"sigmoid":  plain(Sigmoid()),
		"logistic": plain(Logistic()),
		"tanh":     plain(Tanh()),
		"softsign": plain(Softsign()),
		"id":       plain(Identity()),
		"identity": plain(Identity()),
		"flatten":  plain(Flatten()),
		"lrelu": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			a, err := p.FloatArg(defaultValue["lrelu-alpha"])
			return LeakyReLU(a), firstErr(err, p.Check(true))
		}),
		"elu": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			a, err := p.FloatArg(defaultValue["elu-alpha"])
			return ELU(a), firstErr(err, p.Check(true))
		}),
		"softmax": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			if err := p.Check(false, "logits"); err != nil {
				return nil, err
			}

			logits, err := p.Bool("logits", false)
			return Softmax(logits), err
		}),
		"fc":    ns.OperatorFunc(denseFunc),
		"dense": ns.OperatorFunc(denseFunc),
		"add": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			c, err := requireFloat(p)
			return Add(c), err
		}),
		"mult": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			c, err := requireFloat(p)
			return Mult(c), err
		}),
		"dropout": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			if err := p.Check(true); err != nil {
				return nil, err
			}

			keep, err := p.FloatArg(defaultValue["dropout-keep"])
			if err != nil {
				return nil, err
			} else if keep <= 0 || keep > 1 {
				return nil, errors.Errorf("Keep probability of dropout must be in (0, 1], got %v", keep)
			}

			return Dropout(keep), nil
		}),
		"onehot": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			if err := p.Check(true); err != nil {
				return nil, err
			}

			depth, err := requireSize(p)
			return OneHot(depth), err
		}),
		"embedding": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			if err := p.Check(false, "vocab", "dim"); err != nil {
				return nil, err
			}

			vocab, err := p.Int("vocab", 0)
			if err != nil {
				return nil, err
			}
			dim, err := p.Int("dim", 0)
			if err != nil {
				return nil, err
			} else if vocab < 1 || dim < 1 {
				return nil, errors.Errorf("Embedding needs positive vocab and dim, e.g. embedding:vocab=1000,dim=32")
			}

			return Embedding(vocab, dim), nil
		}),
		"rescale": ns.OperatorFunc(func(p *argparse.Parser) (ns.Operator, error) {
			if err := p.Check(false, "from_lower", "from_upper", "lower", "upper"); err != nil {
				return nil, err
			}

			var bounds [4]float64
			for i, k := range []string{"from_lower", "from_upper", "lower", "upper"} {
				def := []float64{0, defaultValue["rescale-from"], -1, 1}[i]

				var err error
				if bounds[i], err = p.Float(k, def); err != nil {
					return nil, err
				}
			}

			if bounds[0] == bounds[1] {
				return nil, errors.Errorf("Source range of rescale is empty")
			}

			return Rescale(bounds[0], bounds[1], bounds[2], bounds[3]), nil
		}),
	}

	if err := ns.RegisterAll(list); err != nil {
		panic(err)
	}
}

// denseFunc parses "fc:units" or "fc:units,bias=false"
func denseFunc(p *argparse.Parser) (ns.Operator, error) {
	if err := p.Check(true, "bias"); err != nil {
		return nil, err
	}

	units, err := requireSize(p)
	if err != nil {
		return nil, err
	}

	d := Dense(units)

	bias, err := p.Bool("bias", true)
	if err != nil {
		return nil, err
	} else if !bias {
		d.NoBias()
	}

	return d, nil
}

func requireFloat(p *argparse.Parser) (float64, error) {
	if err := p.Check(true); err != nil {
		return 0, err
	} else if !p.HasArg() {
		return 0, errors.Errorf("%q needs a value, e.g. %s:1", p.Name, p.Name)
	}

	return p.FloatArg(0)
}

func requireSize(p *argparse.Parser) (int, error) {
	if !p.HasArg() {
		return 0, errors.Errorf("%q needs a size, e.g. %s:10", p.Name, p.Name)
	}

	n, err := p.IntArg(0)
	if err != nil {
		return 0, err
	} else if n < 1 {
		return 0, errors.Errorf("Size of %q must be positive, got %d", p.Name, n)
	}

	return n, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// SetDefault sets the default values for certain Operators. The values that can be set are:
// "lrelu-alpha", "elu-alpha", "dropout-keep", and "rescale-from" (the upper bound of the source
// range of "rescale").
func SetDefault(name string, value float64) error {
	if _, ok := defaultValue[name]; !ok {
		return errors.Errorf("Value with name %q does not exist", name)
	} else if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("Value is invalid (%v)", value)
	}

	defaultValue[name] = value
	return nil
}

// SetDefault_Lazy simply calls SetDefault, but panics instead of returning an error
func SetDefault_Lazy(name string, value float64) {
	if err := SetDefault(name, value); err != nil {
		panic(err)
	}
}
