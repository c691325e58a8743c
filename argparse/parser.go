// Package argparse parses the short identifier strings used to select Operators, Initializers and
// Regularizers by name, such as "lrelu:0.2", "uniform:lower=-0.1,upper=0.1" or "l2:0.001".
//
// An identifier is a name, optionally followed by a colon and a comma-separated list of
// arguments. At most one argument may be positional; the others must be of the form key=value.
package argparse

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser holds the parts of a parsed identifier
type Parser struct {
	Name string

	arg    *string
	kwargs map[string]string

	// keys in the order they were given
	keys []string
}

// Parse splits the identifier into its name and arguments
func Parse(s string) (*Parser, error) {
	if s == "" {
		return nil, errors.Errorf("Can't parse identifier, it is empty")
	}

	p := &Parser{kwargs: make(map[string]string)}

	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return nil, errors.Errorf("Can't parse %q, too many ':' found", s)
	}

	p.Name = parts[0]
	if p.Name == "" {
		return nil, errors.Errorf("Can't parse %q, name is empty", s)
	}

	if len(parts) == 1 {
		return p, nil
	}

	for _, a := range strings.Split(parts[1], ",") {
		kv := strings.Split(a, "=")
		switch len(kv) {
		case 1:
			if p.arg != nil {
				return nil, errors.Errorf("Can't parse %q, too many positional arguments", s)
			}

			v := kv[0]
			p.arg = &v
		case 2:
			if kv[0] == "" {
				return nil, errors.Errorf("Can't parse %q, argument %q has no key", s, a)
			} else if _, ok := p.kwargs[kv[0]]; ok {
				return nil, errors.Errorf("Can't parse %q, key %q given twice", s, kv[0])
			}

			p.kwargs[kv[0]] = kv[1]
			p.keys = append(p.keys, kv[0])
		default:
			return nil, errors.Errorf("Can't resolve argument %q of %q", a, s)
		}
	}

	return p, nil
}

// HasArg returns whether or not a positional argument was given
func (p *Parser) HasArg() bool {
	return p.arg != nil
}

// Keys returns the keys of all keyword arguments, in the order they were given
func (p *Parser) Keys() []string {
	ks := make([]string, len(p.keys))
	copy(ks, p.keys)
	return ks
}

// Arg returns the positional argument, or def if there is none
func (p *Parser) Arg(def string) string {
	if p.arg == nil {
		return def
	}

	return *p.arg
}

// FloatArg returns the positional argument as a float, or def if there is none
func (p *Parser) FloatArg(def float64) (float64, error) {
	if p.arg == nil {
		return def, nil
	}

	f, err := strconv.ParseFloat(*p.arg, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Argument of %q is not a number", p.Name)
	}

	return f, nil
}

// IntArg returns the positional argument as an integer, or def if there is none
func (p *Parser) IntArg(def int) (int, error) {
	if p.arg == nil {
		return def, nil
	}

	i, err := strconv.Atoi(*p.arg)
	if err != nil {
		return 0, errors.Wrapf(err, "Argument of %q is not an integer", p.Name)
	}

	return i, nil
}

// Get returns the keyword argument with the given key, or def if it wasn't given
func (p *Parser) Get(key, def string) string {
	if v, ok := p.kwargs[key]; ok {
		return v
	}

	return def
}

// Float returns the keyword argument with the given key as a float, or def if it wasn't given
func (p *Parser) Float(key string, def float64) (float64, error) {
	v, ok := p.kwargs[key]
	if !ok {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Argument %q of %q is not a number", key, p.Name)
	}

	return f, nil
}

// Int returns the keyword argument with the given key as an integer, or def if it wasn't given
func (p *Parser) Int(key string, def int) (int, error) {
	v, ok := p.kwargs[key]
	if !ok {
		return def, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "Argument %q of %q is not an integer", key, p.Name)
	}

	return i, nil
}

// Bool returns the keyword argument with the given key as a bool, or def if it wasn't given
func (p *Parser) Bool(key string, def bool) (bool, error) {
	v, ok := p.kwargs[key]
	if !ok {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "Argument %q of %q is not a bool", key, p.Name)
	}

	return b, nil
}

// Check returns an error if any keyword argument was given that is not one of the allowed keys,
// or if there is a positional argument and allowArg is false.
func (p *Parser) Check(allowArg bool, allowed ...string) error {
	if p.arg != nil && !allowArg {
		return errors.Errorf("%q doesn't take a positional argument (got %q)", p.Name, *p.arg)
	}

outer:
	for _, k := range p.keys {
		for _, a := range allowed {
			if k == a {
				continue outer
			}
		}

		return errors.Errorf("Unknown argument %q for %q", k, p.Name)
	}

	return nil
}
