package operators

import (
	"fmt"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/initializers"
)

type dense struct {
	units   int
	useBias bool

	weightInit ns.Initializer
	biasInit   ns.Initializer
	weightReg  ns.Regularizer
	biasReg    ns.Regularizer
}

// Dense returns a fully-connected layer with the given number of output units, which multiplies
// the last axis of its input by a matrix of weights and adds a vector of biases. It is a nucleus,
// so adding it to the root opens a new sub-group.
//
// The weights start out with Xavier initialization and the biases with zeros; both can be changed
// with the methods of the returned value.
func Dense(units int) *dense {
	return &dense{
		units:      units,
		useBias:    true,
		weightInit: initializers.Xavier(),
		biasInit:   initializers.Zeros(),
	}
}

// WeightInit sets the Initializer of the weights, returning the same layer
func (d *dense) WeightInit(init ns.Initializer) *dense {
	d.weightInit = init
	return d
}

// BiasInit sets the Initializer of the biases, returning the same layer
func (d *dense) BiasInit(init ns.Initializer) *dense {
	d.biasInit = init
	return d
}

// WeightReg attaches a Regularizer to the weights, returning the same layer
func (d *dense) WeightReg(reg ns.Regularizer) *dense {
	d.weightReg = reg
	return d
}

// BiasReg attaches a Regularizer to the biases, returning the same layer
func (d *dense) BiasReg(reg ns.Regularizer) *dense {
	d.biasReg = reg
	return d
}

// NoBias removes the biases, returning the same layer
func (d *dense) NoBias() *dense {
	d.useBias = false
	return d
}

func (d *dense) TypeString() string {
	return "fc"
}

func (d *dense) IsNucleus() bool {
	return true
}

func (d *dense) NeuronScale() ns.Shape {
	return ns.Shape{d.units}
}

func (d *dense) Validate() error {
	if d.units < 1 {
		return ns.ConstructionError{Name: d.TypeString(), Reason: fmt.Sprintf("number of units is not positive (%d)", d.units)}
	}

	return nil
}

func (d *dense) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	shape := in.Shape()
	if len(shape) == 0 || shape[len(shape)-1] < 0 {
		return nil, errors.Errorf("Can't apply dense layer %q, last dimension of input %v is not known", s.Path(), shape)
	}

	w, err := s.Param("weights", ns.Shape{shape[len(shape)-1], d.units}, d.weightInit, d.weightReg)
	if err != nil {
		return nil, err
	}

	b := s.Backend()
	out, err := b.MatMul(in, w)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't multiply by weights")
	}

	if !d.useBias {
		return out, nil
	}

	bias, err := s.Param("biases", ns.Shape{d.units}, d.biasInit, d.biasReg)
	if err != nil {
		return nil, err
	}

	if out, err = b.Add(out, bias); err != nil {
		return nil, errors.Wrapf(err, "Couldn't add biases")
	}

	return out, nil
}
