package initializers

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
		"uniform-lower": -1,
		"uniform-upper": 1,
		"normal-mean":   0,
		"normal-sd":     1,
		"varscl-factor": 1,
	}

	list := map[string]interface{}{
		"zeros": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return Zeros(), p.Check(false)
		}),
		"ones": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return Constant(1), p.Check(false)
		}),
		"constant": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			c, err := p.FloatArg(0)
			if err != nil {
				return nil, err
			}
			return Constant(c), p.Check(true)
		}),
		"uniform": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			if err := p.Check(false, "lower", "upper"); err != nil {
				return nil, err
			}

			lower, err := p.Float("lower", defaultValue["uniform-lower"])
			if err != nil {
				return nil, err
			}
			upper, err := p.Float("upper", defaultValue["uniform-upper"])
			if err != nil {
				return nil, err
			}

			return Uniform().Range(lower, upper), nil
		}),
		"normal": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			n, err := normalArgs(p)
			if err != nil {
				return nil, err
			}
			return random{n, "normal"}, nil
		}),
		"trunc_normal": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			n, err := normalArgs(p)
			if err != nil {
				return nil, err
			}
			return random{n.Trunc(defaultTrunc), "trunc_normal"}, nil
		}),
		"xavier_normal": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return Xavier(), p.Check(false)
		}),
		"glorot_normal": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return Glorot(), p.Check(false)
		}),
		"xavier_uniform": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return XavierUniform(), p.Check(false)
		}),
		"glorot_uniform": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return XavierUniform(), p.Check(false)
		}),
		"he": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return He(), p.Check(false)
		}),
		"lecun": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			return LeCun(), p.Check(false)
		}),
		"variance_scaling": ns.InitializerFunc(func(p *argparse.Parser) (ns.Initializer, error) {
			if err := p.Check(true, "mode", "distribution"); err != nil {
				return nil, err
			}

			f, err := p.FloatArg(defaultValue["varscl-factor"])
			if err != nil {
				return nil, err
			}

			v := VarianceScaling().Factor(f)
			switch m := p.Get("mode", defaultVarianceMode); m {
			case "in":
				v.In()
			case "out":
				v.Out()
			case "avg":
				v.Avg()
			default:
				return nil, errors.Errorf("Unknown variance scaling mode %q", m)
			}

			switch d := p.Get("distribution", "normal"); d {
			case "normal":
			case "uniform":
				v.WithUniform()
			default:
				return nil, errors.Errorf("Unknown variance scaling distribution %q", d)
			}

			return v, nil
		}),
	}

	if err := ns.RegisterAll(list); err != nil {
		panic(err)
	}
}

func normalArgs(p *argparse.Parser) (*gaussian, error) {
	if err := p.Check(false, "mean", "sd"); err != nil {
		return nil, err
	}

	mean, err := p.Float("mean", defaultValue["normal-mean"])
	if err != nil {
		return nil, err
	}
	sd, err := p.Float("sd", defaultValue["normal-sd"])
	if err != nil {
		return nil, err
	}

	return Normal().Mean(mean).SD(sd), nil
}

// SetDefault sets one of the default values used by the Initializers of this package. The values
// that can be set are: "uniform-lower", "uniform-upper", "normal-mean", "normal-sd", and
// "varscl-factor". Defaults are read when an Initializer is made, so they should be set first.
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
