package operators

import (
	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
)

type softmax struct {
	elementwise
	setLogits bool
}

// Softmax returns the softmax function over the last axis of its input. If setLogits is true,
// its input is also recorded as the logits of the tree; see Group.ContextLogits.
func Softmax(setLogits bool) softmax {
	return softmax{setLogits: setLogits}
}

func (t softmax) TypeString() string {
	return "softmax"
}

func (t softmax) Apply(s *ns.Scope, in ns.Value) (ns.Value, error) {
	if t.setLogits {
		s.SetLogits(in)
	}

	out, err := s.Backend().Softmax(in)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't apply softmax")
	}

	return out, nil
}
