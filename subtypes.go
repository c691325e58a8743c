package netscope

// Nucleus is implemented by Operators that open a new named sub-group when added to a sequential
// root, like a dense layer. Non-nucleus Operators added right after them join the same
// sub-group, so that a layer and its activation are reported as one block.
type Nucleus interface {
	IsNucleus() bool
}

// Activation is implemented by activation-like Operators. Before one of them runs, its parent
// Group remembers its input as the Group's logits.
type Activation interface {
	IsActivation() bool
}

// Scaler is implemented by Operators that have a meaningful number of output neurons, used for
// reporting (e.g. "fc_128"). NeuronScale may return nil if the scale is not known yet.
type Scaler interface {
	NeuronScale() Shape
}

// Validator is implemented by Operators whose arguments can be malformed, e.g. a dense layer with
// no units. Validate is called when the Operator is added to a Group; an error is stored as the
// tree's error and the Operator isn't added.
type Validator interface {
	Validate() error
}

func validate(op Operator) error {
	if v, ok := op.(Validator); ok {
		return v.Validate()
	}

	return nil
}

func isNucleus(op Operator) bool {
	n, ok := op.(Nucleus)
	return ok && n.IsNucleus()
}

func isActivation(op Operator) bool {
	a, ok := op.(Activation)
	return ok && a.IsActivation()
}

func neuronScale(op Operator) Shape {
	if s, ok := op.(Scaler); ok {
		return s.NeuronScale()
	}

	return nil
}
