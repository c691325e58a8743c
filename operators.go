package netscope

// Operator is an interface for defining layers and activation functions: the atomic leaves of a
// tree. Operators are wrapped in a Layer when they are added to a Group.
//
// Operators can also implement any of the interfaces in subtypes.go to change how they are
// placed in the tree (Nucleus), how their parent treats them (Activation), how they are
// reported (Scaler), or to reject bad arguments as soon as they are added (Validator).
type Operator interface {
	// TypeString returns the abbreviated name of the Operator, which is also the base for the
	// name of its Layer. For example: a fully connected layer returns "fc", so that three of them
	// at the same level are named "fc", "fc2" and "fc3".
	TypeString() string

	// Apply produces the output of the Operator for the given input. Any parameters must be
	// declared through the Scope, so that repeated invocations of the same Layer reuse them
	// instead of allocating new ones.
	//
	// Apply will only be given inputs whose shape is compatible with the one seen by the first
	// call.
	Apply(*Scope, Value) (Value, error)
}
