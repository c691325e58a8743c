package operators

import (
	ns "github.com/sharnoff/netscope"
)

type withLogits struct {
	ns.Operator
}

// WithLogits wraps the Operator so that its input is recorded as the logits of the tree before it
// runs; see Group.ContextLogits. The result is always an activation.
func WithLogits(op ns.Operator) ns.Operator {
	return withLogits{op}
}

func (w withLogits) IsActivation() bool {
	return true
}

func (w withLogits) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	s.SetLogits(in)
	return w.Operator.Apply(s, in)
}

// Activation returns the activation given by the identifier, e.g. "relu" or "lrelu:0.1", as
// registered with netscope.GetOperator. If setLogits is true, the result records its input as
// the logits of the tree.
func Activation(identifier string, setLogits bool) (ns.Operator, error) {
	op, err := ns.GetOperator(identifier)
	if err != nil {
		return nil, err
	}

	if setLogits {
		op = WithLogits(op)
	}

	return op, nil
}
