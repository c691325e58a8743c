package netscope

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Mode is the way that a Group combines the outputs of its children
type Mode int8

const (
	// Sequential feeds the output of each child into the next; the Group's output is the last one
	Sequential Mode = iota
	// Sum adds the outputs of all children elementwise
	Sum
	// Product multiplies the outputs of all children elementwise
	Product
	// Concat joins the outputs of all children along the last axis
	Concat
	// Fork gives every child the same input and returns all of their outputs as Values
	Fork
)

// Child is one of the three kinds of members of a Group: *Layer, *Group or *Recurrent. The set is
// closed; the unexported method keeps other types from satisfying it.
type Child interface {
	// Name returns the name of the Child, unique among its siblings of the same kind
	Name() string

	child()
}

// tree holds everything shared by all Groups of a single tree. Nothing in it is global, so
// independent trees can be built and invoked from separate goroutines.
type tree struct {
	backend  Backend
	dtype    DType
	training bool

	// the Mode of the root
	mode Mode

	// the source of every random value drawn while invoking the tree
	rng *rand.Rand

	showExtraLossInfo   bool
	showStructureDetail bool

	log        logrus.FieldLogger
	customLoss func(*Group) []Value

	// the first error encountered while building the tree
	err error

	// whether or not construction errors should be panicked
	panicErrors bool

	// auxiliary losses registered while invoking, in order of registration
	losses []lossTerm

	// the most recent logits set by an Operator through its Scope
	logits Value
}

type lossTerm struct {
	name string
	eval func() (Value, error)
}

// Group is a named container of children, combined under one of the Modes. The Group at level 0
// is the root of the tree; it is created by New. All other Groups are created through the root
// (or through each other) with Add, AddGroup and AddBranch.
//
// A Group starts out Building: children can be added freely. After it has been invoked once it is
// frozen, and adding to it gives ErrGroupFrozen.
type Group struct {
	name  string
	level int
	mode  Mode

	// branches are only attached to the root. They are given the current pioneer value, but
	// their outputs do not feed back into the main chain
	isBranch bool

	// exactly one of these is non-nil for all but the root
	host *Group
	rec  *Recurrent

	tree *tree

	children []Child

	// only used if set. The root will typically own one
	input *Input

	invoked bool

	// parameters declared by the Layers of this Group, in order of declaration
	params     []*param
	paramIndex map[string]*param

	branchOutputs []Value

	// the input of the most recent activation-like Layer in this Group
	logits Value

	extraLoss     Value
	extraLossDone bool
}

type param struct {
	// the name of the Layer that declared the parameter
	owner string
	name  string
	path  string
	value Value
}

// Param is a learnable parameter of a tree, identified by its full path (e.g.
// "net/fc/fc/weights").
type Param struct {
	Path  string
	Value Value
}

// Layer is the tree node wrapping an Operator. Its name is assigned when it is added to a Group.
type Layer struct {
	name string
	op   Operator
	host *Group

	// the shapes seen by the first invocation. nil until then.
	inShape  Shape
	outShape Shape
}

// Input is the entry point of a tree. It has a fixed per-example (sample) shape and optional
// leading group dimensions, and can only be realized once.
type Input struct {
	name        string
	sampleShape Shape
	groupShape  Shape
	dtype       DType

	// nil until realized
	handle     Value
	singleStep Value
}

// Recurrent runs a cell Group once per step of its input, feeding each step the concatenation of
// that step's values and the cell's previous output. The parameters of the cell are shared
// between all steps.
type Recurrent struct {
	name      string
	level     int
	stateSize int

	host *Group
	tree *tree
	cell *Group

	invoked bool
}

func (l *Layer) child()     {}
func (g *Group) child()     {}
func (r *Recurrent) child() {}
