package netscope

import (
	"fmt"

	"github.com/pkg/errors"
)

// Add adds v to the Group and returns the Group that further children should be added to.
// v may be:
//	nil          opens a new empty Sequential sub-group and returns it,
//	*Input       becomes the input of the Group, returning the Group itself,
//	*Group       is appended (renamed if its name is taken) and returned,
//	*Recurrent   is appended, returning its cell so that the cell can be filled,
//	Operator     is wrapped in a Layer and placed as described below.
//
// Operators are appended directly to any Group that is not the root, and to a root that isn't
// Sequential. On a Sequential root, a Nucleus Operator (or the very first Operator) opens a new
// sub-group named after it; any other Operator joins the most recent sub-group. The sub-group is
// returned.
//
// Errors are not returned but stored in the tree; see Err(). After the first error, Add does
// nothing.
func (g *Group) Add(v interface{}) *Group {
	if g.tree.err != nil {
		return g
	} else if g.invoked {
		g.setError(errors.Wrapf(ErrGroupFrozen, "Can't add to group %q", g.Path()))
		return g
	}

	switch f := v.(type) {
	case nil:
		return g.AddGroup(Sequential)
	case *Input:
		if f == nil {
			g.setError(NilArgError{"Input"})
			return g
		}

		if f.dtype == 0 {
			f.dtype = g.tree.dtype
		}
		g.input = f
		return g
	case *Group:
		if f == nil {
			g.setError(NilArgError{"Group"})
			return g
		}

		return g.saveAdd(f)
	case *Recurrent:
		if f == nil {
			g.setError(NilArgError{"Recurrent"})
			return g
		}

		g.saveAdd(f)
		return f.cell
	case Operator:
		if err := validate(f); err != nil {
			g.setError(errors.Wrapf(err, "Can't add %s to %q", f.TypeString(), g.Path()))
			return g
		}

		l := &Layer{op: f}
		if !g.IsRoot() || g.mode != Sequential {
			return g.saveAdd(l)
		}

		if isNucleus(f) || len(g.children) == 0 {
			g.addNewSubgroup(f)
		}

		return g.addToLastGroup(l, true)
	default:
		g.setError(ConstructionError{g.Path(), fmt.Sprintf("can't add value of type %T; must be an Operator, *Input, *Group or *Recurrent", v)})
		return g
	}
}

// AddGroup opens a new, empty sub-group with the given Mode and returns it. The sub-group is named
// after its Mode ("cascade", "sum", "prod", "concat" or "fork").
func (g *Group) AddGroup(mode Mode) *Group {
	if g.tree.err != nil {
		return g
	} else if g.invoked {
		g.setError(errors.Wrapf(ErrGroupFrozen, "Can't add to group %q", g.Path()))
		return g
	}

	return g.saveAdd(newGroup(mode.String(), mode))
}

// AddBranch attaches a new branch to the root and returns it. Branches receive the same value as
// the child that follows them, but their outputs are only kept in BranchOutputs().
//
// If the Group is not the root, ErrInvalidBranch is stored as the tree's error.
func (g *Group) AddBranch() *Group {
	if g.tree.err != nil {
		return g
	} else if !g.IsRoot() {
		g.setError(errors.Wrapf(ErrInvalidBranch, "Can't add branch to %q (level %d)", g.Path(), g.level))
		return g
	} else if g.invoked {
		g.setError(errors.Wrapf(ErrGroupFrozen, "Can't add to group %q", g.Path()))
		return g
	}

	b := newGroup("branch", Sequential)
	b.isBranch = true
	return g.saveAdd(b)
}

// saveAdd appends the Child to the Group under a name unique among its siblings. It returns the
// added Group, or g for other kinds of Children.
func (g *Group) saveAdd(c Child) *Group {
	switch c := c.(type) {
	case *Layer:
		c.name = g.newName(c.op.TypeString(), true)
		c.host = g
		g.children = append(g.children, c)
		return g
	case *Group:
		if c.host != nil || c.rec != nil {
			g.setError(ConstructionError{c.Path(), "group already belongs to another group"})
			return g
		} else if c == g || c.contains(g) {
			g.setError(ConstructionError{c.Path(), "group can't be added to itself"})
			return g
		}

		c.name = g.newName(c.name, false)
		c.host = g
		c.adopt(g.tree, g.level+1)
		g.children = append(g.children, c)
		return c
	case *Recurrent:
		if c.host != nil {
			g.setError(ConstructionError{c.name, "recurrent group already belongs to another group"})
			return g
		}

		c.name = g.newName(c.name, false)
		c.host = g
		c.adopt(g.tree, g.level+1)
		g.children = append(g.children, c)
		return g
	default:
		panic(fmt.Sprintf("netscope: unknown child type %T", c))
	}
}

// addNewSubgroup wraps a new Sequential sub-group around where the Operator is about to go. The
// sub-group is named after the Operator, except for a leading non-nucleus Operator, which opens
// "Preprocess".
//
// "Preprocess" is only for Operators that come before the first nucleus. A root that starts with
// a nucleus (e.g. a dense layer) gets "fc" as its first sub-group, not "Preprocess", so that the
// sub-groups of [fc, relu, fc] are "fc" and "fc2".
func (g *Group) addNewSubgroup(op Operator) *Group {
	name := op.TypeString()
	if len(g.children) == 0 && !isNucleus(op) {
		name = "Preprocess"
	}

	return g.saveAdd(newGroup(name, Sequential))
}

// addToLastGroup adds the Layer to the most recent sub-group, opening a new one if the most recent
// child can't take it: a Layer, a Recurrent, a branch, or (with onlyCascade) a non-Sequential
// Group.
func (g *Group) addToLastGroup(l *Layer, onlyCascade bool) *Group {
	if len(g.children) == 0 {
		g.setError(errors.Errorf("Can't add %s to last group of %q, it has no children", l.op.TypeString(), g.Path()))
		return g
	}

	last, ok := g.children[len(g.children)-1].(*Group)
	if !ok || last.isBranch || (onlyCascade && last.mode != Sequential) {
		last = g.addNewSubgroup(l.op)
		if g.tree.err != nil {
			return g
		}
	}

	return last.saveAdd(l)
}

// adopt moves the Group and all of its descendants into the tree, at the given level. Errors and
// losses already stored in the Group's previous tree carry over.
func (g *Group) adopt(t *tree, level int) {
	mergeTree(g.tree, t)
	g.retree(t, level)
}

func (g *Group) retree(t *tree, level int) {
	g.tree = t
	g.level = level
	if g.input != nil && g.input.dtype == 0 {
		g.input.dtype = t.dtype
	}

	for _, c := range g.children {
		switch c := c.(type) {
		case *Group:
			c.retree(t, level+1)
		case *Recurrent:
			c.retree(t, level+1)
		}
	}
}

func mergeTree(from, into *tree) {
	if from == nil || from == into {
		return
	}

	if from.err != nil && into.err == nil {
		into.err = from.err
	}
	into.losses = append(into.losses, from.losses...)
}

// contains returns whether or not other is a descendant of the Group
func (g *Group) contains(other *Group) bool {
	for _, c := range g.children {
		switch c := c.(type) {
		case *Group:
			if c == other || c.contains(other) {
				return true
			}
		case *Recurrent:
			if c.cell == other || c.cell.contains(other) {
				return true
			}
		}
	}

	return false
}
