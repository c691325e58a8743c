package netscope

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/sharnoff/netscope/argparse"
)

// OperatorFunc builds an Operator from the arguments of an identifier, such as "lrelu:0.2"
type OperatorFunc func(p *argparse.Parser) (Operator, error)

// InitializerFunc builds an Initializer from the arguments of an identifier, such as "uniform:-1"
type InitializerFunc func(p *argparse.Parser) (Initializer, error)

// RegularizerFunc builds a Regularizer from the arguments of an identifier, such as "l2:0.001"
type RegularizerFunc func(p *argparse.Parser) (Regularizer, error)

// The registries are filled by the init functions of the packages providing each kind, and are
// read-only afterwards.
var (
	operatorsByName    = make(map[string]OperatorFunc)
	initializersByName = make(map[string]InitializerFunc)
	regularizersByName = make(map[string]RegularizerFunc)
)

// RegisterOperator makes the Operator available to GetOperator under the given name
func RegisterOperator(name string, f OperatorFunc) error {
	if f == nil {
		return NilArgError{"OperatorFunc"}
	} else if _, ok := operatorsByName[name]; ok {
		return errors.Wrapf(ErrRegisterDuplicate, "Can't register operator %q", name)
	}

	operatorsByName[name] = f
	return nil
}

// RegisterInitializer makes the Initializer available to GetInitializer under the given name
func RegisterInitializer(name string, f InitializerFunc) error {
	if f == nil {
		return NilArgError{"InitializerFunc"}
	} else if _, ok := initializersByName[name]; ok {
		return errors.Wrapf(ErrRegisterDuplicate, "Can't register initializer %q", name)
	}

	initializersByName[name] = f
	return nil
}

// RegisterRegularizer makes the Regularizer available to GetRegularizer under the given name
func RegisterRegularizer(name string, f RegularizerFunc) error {
	if f == nil {
		return NilArgError{"RegularizerFunc"}
	} else if _, ok := regularizersByName[name]; ok {
		return errors.Wrapf(ErrRegisterDuplicate, "Can't register regularizer %q", name)
	}

	regularizersByName[name] = f
	return nil
}

// RegisterAll registers every function in the map under its key, by calling RegisterOperator,
// RegisterInitializer or RegisterRegularizer as appropriate for its type. It stops at the first
// error.
func RegisterAll(fs map[string]interface{}) error {
	for name, f := range fs {
		var err error
		switch f := f.(type) {
		case OperatorFunc:
			err = RegisterOperator(name, f)
		case func(*argparse.Parser) (Operator, error):
			err = RegisterOperator(name, f)
		case InitializerFunc:
			err = RegisterInitializer(name, f)
		case func(*argparse.Parser) (Initializer, error):
			err = RegisterInitializer(name, f)
		case RegularizerFunc:
			err = RegisterRegularizer(name, f)
		case func(*argparse.Parser) (Regularizer, error):
			err = RegisterRegularizer(name, f)
		default:
			err = errors.Errorf("Can't register %q, type %T is not a known constructor", name, f)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// GetOperator builds the Operator given by the identifier, e.g. "relu" or "lrelu:0.2"
func GetOperator(identifier string) (Operator, error) {
	p, err := argparse.Parse(identifier)
	if err != nil {
		return nil, err
	}

	f, ok := operatorsByName[p.Name]
	if !ok {
		return nil, errors.Errorf("Unknown operator %q", p.Name)
	}

	op, err := f(p)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't build operator %q", identifier)
	} else if op == nil {
		return nil, errors.Wrapf(ErrRegisterNilReturn, "Couldn't build operator %q", identifier)
	}

	return op, nil
}

// GetInitializer builds the Initializer given by the identifier, e.g. "zeros" or
// "uniform:lower=-0.1,upper=0.1"
func GetInitializer(identifier string) (Initializer, error) {
	p, err := argparse.Parse(identifier)
	if err != nil {
		return nil, err
	}

	f, ok := initializersByName[p.Name]
	if !ok {
		return nil, errors.Errorf("Unknown initializer %q", p.Name)
	}

	ini, err := f(p)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't build initializer %q", identifier)
	} else if ini == nil {
		return nil, errors.Wrapf(ErrRegisterNilReturn, "Couldn't build initializer %q", identifier)
	}

	return ini, nil
}

// GetRegularizer builds the Regularizer given by the identifier, e.g. "l2:0.001"
func GetRegularizer(identifier string) (Regularizer, error) {
	p, err := argparse.Parse(identifier)
	if err != nil {
		return nil, err
	}

	f, ok := regularizersByName[p.Name]
	if !ok {
		return nil, errors.Errorf("Unknown regularizer %q", p.Name)
	}

	reg, err := f(p)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't build regularizer %q", identifier)
	} else if reg == nil {
		return nil, errors.Wrapf(ErrRegisterNilReturn, "Couldn't build regularizer %q", identifier)
	}

	return reg, nil
}

// Registered returns the names of everything that has been registered, by kind: "operator",
// "initializer" and "regularizer". Names are sorted.
func Registered() map[string][]string {
	m := map[string][]string{}
	for n := range operatorsByName {
		m["operator"] = append(m["operator"], n)
	}
	for n := range initializersByName {
		m["initializer"] = append(m["initializer"], n)
	}
	for n := range regularizersByName {
		m["regularizer"] = append(m["regularizer"], n)
	}

	for _, ns := range m {
		sort.Strings(ns)
	}

	return m
}
