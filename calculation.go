package netscope

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Invoke runs the Group on the given input and returns its output. At most one input may be
// given; with none (or a nil one), the Group's own Input is realized and used instead.
//
// Children are invoked in the order they were added. In a Sequential Group each child is given
// the output of the one before it, and the Group's output is the output of its last child. In all
// other Modes, every child is given the Group's input, and their outputs are combined: Sum adds
// them, Product multiplies them, Concat joins them along the last axis, and Fork returns all of
// them as Values.
//
// Branches are given the value that would go to the next child, but their outputs are only
// recorded in BranchOutputs().
//
// Once invoked, a Group is frozen and children can no longer be added to it. If there was an
// error while building the tree, Invoke returns it without doing anything.
func (g *Group) Invoke(inputs ...Value) (Value, error) {
	if g.tree.err != nil {
		return nil, g.tree.err
	} else if len(inputs) > 1 {
		return nil, errors.Wrapf(ErrTooManyInputs, "Can't invoke %q with %d inputs", g.Path(), len(inputs))
	}

	var in Value
	if len(inputs) == 1 {
		in = inputs[0]
	}

	if err := g.check(); err != nil {
		return nil, err
	}

	return g.link(in)
}

// check walks the Group and its descendants for problems that would stop them from being invoked,
// so that nothing is run (and no Input is realized) for a tree that can't be.
func (g *Group) check() error {
	if len(g.children) == 0 {
		return errors.Wrapf(ErrEmptyGroup, "Can't invoke %q", g.Path())
	} else if !g.mode.valid() {
		return errors.Wrapf(UnknownInterconnectError{g.mode}, "Can't invoke %q", g.Path())
	}

	onlyBranches := true
	for _, c := range g.children {
		var err error
		switch c := c.(type) {
		case *Group:
			onlyBranches = onlyBranches && c.isBranch
			err = c.check()
		case *Recurrent:
			onlyBranches = false
			err = c.cell.check()
		default:
			onlyBranches = false
		}

		if err != nil {
			return err
		}
	}

	if onlyBranches && g.mode != Sequential && g.mode != Fork {
		return errors.Errorf("Can't combine outputs of %q, all of its children are branches", g.Path())
	}

	return nil
}

// link is the body of Invoke, used directly by parent Groups and Recurrents once the tree has been
// checked. The Group's state (frozen, branch outputs, logits) only changes once every child has
// succeeded.
func (g *Group) link(in Value) (Value, error) {
	if in == nil && g.input != nil {
		var err error
		if in, err = g.input.Realize(g.tree.backend); err != nil {
			return nil, errors.Wrapf(err, "Couldn't realize input of %q", g.Path())
		}
	}

	g.tree.log.WithFields(logrus.Fields{
		"group":    g.Path(),
		"mode":     g.mode.String(),
		"children": len(g.children),
	}).Debug("Invoking group")

	pioneer := in
	logits := g.logits
	var out Value
	var outs, branchOuts []Value

	for _, c := range g.children {
		if sub, ok := c.(*Group); ok && sub.isBranch {
			o, err := sub.link(pioneer)
			if err != nil {
				return nil, errors.Wrapf(err, "Branch %q failed", sub.Path())
			}

			branchOuts = append(branchOuts, o)
			continue
		}

		if l, ok := c.(*Layer); ok && isActivation(l.op) {
			logits = pioneer
		}

		o, err := invokeChild(c, pioneer)
		if err != nil {
			return nil, err
		}

		out = o
		if g.mode == Sequential {
			pioneer = o
		} else {
			outs = append(outs, o)
		}
	}

	switch g.mode {
	case Sequential:
		g.finish(logits, branchOuts)
		return out, nil
	case Fork:
		vs := make(Values, len(outs))
		copy(vs, outs)
		g.finish(logits, nil)
		g.branchOutputs = outs
		return vs, nil
	}

	b := g.tree.backend
	if b == nil {
		return nil, errors.Wrapf(ErrNoBackend, "Can't combine outputs of %q", g.Path())
	}

	var err error
	switch g.mode {
	case Sum:
		out, err = b.AddN(outs)
	case Product:
		// the last output is the starting value; the rest are multiplied in order
		out = outs[len(outs)-1]
		for _, o := range outs[:len(outs)-1] {
			if out, err = b.Mul(out, o); err != nil {
				break
			}
		}
	case Concat:
		out, err = b.Concat(outs, -1)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't combine outputs of %q (%s)", g.Path(), g.mode)
	}

	g.finish(logits, branchOuts)
	return out, nil
}

func (g *Group) finish(logits Value, branchOuts []Value) {
	g.invoked = true
	g.logits = logits
	g.branchOutputs = append(g.branchOutputs, branchOuts...)
}

func invokeChild(c Child, in Value) (Value, error) {
	switch c := c.(type) {
	case *Layer:
		return c.call(in)
	case *Group:
		return c.link(in)
	case *Recurrent:
		return c.invoke(in)
	default:
		panic(fmt.Sprintf("netscope: unknown child type %T", c))
	}
}
