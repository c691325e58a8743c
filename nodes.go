package netscope

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "cascade"
	case Sum:
		return "sum"
	case Product:
		return "prod"
	case Concat:
		return "concat"
	case Fork:
		return "fork"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

func (m Mode) valid() bool {
	return m >= Sequential && m <= Fork
}

// ParseMode returns the Mode given by its name, as returned by Mode.String(). "sequential" is also
// accepted for Sequential.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cascade", "sequential":
		return Sequential, nil
	case "sum":
		return Sum, nil
	case "prod":
		return Product, nil
	case "concat":
		return Concat, nil
	case "fork":
		return Fork, nil
	default:
		return 0, errors.Errorf("Unknown mode %q", s)
	}
}

// String returns the path of the Group, in quotes. A nil Group returns "<nil>".
func (g *Group) String() string {
	if g == nil {
		return "<nil>"
	}

	return strconv.Quote(g.Path())
}

// Name returns the name of the Group, unique among the Groups that share its parent
func (g *Group) Name() string {
	return g.name
}

// Path returns the names of the Group and all of its ancestors, separated by '/', starting at
// the root.
func (g *Group) Path() string {
	switch {
	case g.host != nil:
		return g.host.Path() + "/" + g.name
	case g.rec != nil:
		return g.rec.Path() + "/" + g.name
	default:
		return g.name
	}
}

// Level returns the depth of the Group in the tree. The root has level 0.
func (g *Group) Level() int {
	return g.level
}

// IsRoot returns whether or not the Group is the root of its tree
func (g *Group) IsRoot() bool {
	return g.level == 0
}

// Mode returns the way the Group combines the outputs of its children
func (g *Group) Mode() Mode {
	return g.mode
}

// IsBranch returns whether or not the Group is a branch of the root
func (g *Group) IsBranch() bool {
	return g.isBranch
}

// Invoked returns whether or not the Group has been invoked. Invoked Groups can't be changed.
func (g *Group) Invoked() bool {
	return g.invoked
}

// Children returns a copy of the list of children of the Group, in insertion order
func (g *Group) Children() []Child {
	cs := make([]Child, len(g.children))
	copy(cs, g.children)
	return cs
}

// Input returns the Input owned by the Group, which may be nil
func (g *Group) Input() *Input {
	return g.input
}

// InputValue returns the realized handle of the Group's Input. If the Group has no Input or it
// hasn't been realized yet, InputValue returns an error.
func (g *Group) InputValue() (Value, error) {
	if g.input == nil {
		return nil, errors.Errorf("Group %q has no input", g.Path())
	} else if g.input.handle == nil {
		return nil, errors.Errorf("Input of group %q has not been realized", g.Path())
	}

	return g.input.handle, nil
}

// BranchOutputs returns the outputs of the Group's branches from every invocation, in order. For
// a Fork Group, it is instead the list of outputs of its most recent invocation.
func (g *Group) BranchOutputs() []Value {
	vs := make([]Value, len(g.branchOutputs))
	copy(vs, g.branchOutputs)
	return vs
}

// Logits returns the input of the most recent activation-like Layer in the Group. If the Group has
// none, the logits of its last sub-group that has any are returned instead. Logits returns nil if
// there are none at all.
func (g *Group) Logits() Value {
	if g.logits != nil {
		return g.logits
	}

	for i := len(g.children) - 1; i >= 0; i-- {
		if sub, ok := g.children[i].(*Group); ok {
			if l := sub.Logits(); l != nil {
				return l
			}
		}
	}

	return nil
}

// ContextLogits returns the logits most recently set by an Operator through Scope.SetLogits,
// anywhere in the tree.
func (g *Group) ContextLogits() Value {
	return g.tree.logits
}

// LastLayer returns the Layer that produces the Group's output: the last Layer of the last child,
// following nested Groups. It returns nil for Sum and Product Groups, whose output isn't the
// output of a single Layer, and for empty Groups.
func (g *Group) LastLayer() *Layer {
	if len(g.children) == 0 || g.mode == Sum || g.mode == Product {
		return nil
	}

	switch c := g.children[len(g.children)-1].(type) {
	case *Layer:
		return c
	case *Group:
		return c.LastLayer()
	case *Recurrent:
		return c.cell.LastLayer()
	default:
		panic(fmt.Sprintf("netscope: unknown child type %T", c))
	}
}

// Params returns all of the parameters declared in the Group and its descendants, in tree order.
func (g *Group) Params() []Param {
	var ps []Param
	for _, p := range g.params {
		ps = append(ps, Param{p.path, p.value})
	}

	for _, c := range g.children {
		switch c := c.(type) {
		case *Group:
			ps = append(ps, c.Params()...)
		case *Recurrent:
			ps = append(ps, c.cell.Params()...)
		}
	}

	return ps
}

// WeightList returns the parameters of the Group and its descendants that are named "weights"
func (g *Group) WeightList() []Param {
	var ws []Param
	for _, p := range g.Params() {
		if base(p.Path) == "weights" {
			ws = append(ws, p)
		}
	}

	return ws
}

// NumParams returns the total number of values in all parameters of the Group and its
// descendants.
func (g *Group) NumParams() int {
	var total int
	for _, p := range g.Params() {
		total += p.Value.Shape().Size()
	}

	return total
}

func base(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}

	return path
}

// String returns the Layer's path in quotes. A nil Layer returns "<nil>".
func (l *Layer) String() string {
	if l == nil {
		return "<nil>"
	}

	return strconv.Quote(l.Path())
}

// Name returns the name of the Layer, unique among the Layers of its Group
func (l *Layer) Name() string {
	return l.name
}

// Path returns the path of the Layer's Group, followed by the Layer's name
func (l *Layer) Path() string {
	if l.host == nil {
		return l.name
	}

	return l.host.Path() + "/" + l.name
}

// Operator returns the Operator wrapped by the Layer
func (l *Layer) Operator() Operator {
	return l.op
}

// Abbreviation returns the type string of the Layer's Operator
func (l *Layer) Abbreviation() string {
	return l.op.TypeString()
}

// IsNucleus returns whether or not the Layer's Operator is a Nucleus
func (l *Layer) IsNucleus() bool {
	return isNucleus(l.op)
}

// InputShape returns the shape of the input that the Layer was first invoked with, with an Unknown
// batch dimension. It is nil until then.
func (l *Layer) InputShape() Shape {
	return l.inShape.Copy()
}

// OutputShape returns the shape of the Layer's output from its first invocation, with an Unknown
// batch dimension. It is nil until then.
func (l *Layer) OutputShape() Shape {
	return l.outShape.Copy()
}

// Scale returns the neuron scale of the Layer, if its Operator declares one
func (l *Layer) Scale() Shape {
	return neuronScale(l.op)
}

// NumParams returns the number of values in the parameters declared by the Layer
func (l *Layer) NumParams() int {
	if l.host == nil {
		return 0
	}

	var total int
	for _, p := range l.host.params {
		if p.owner == l.name {
			total += p.value.Shape().Size()
		}
	}

	return total
}
