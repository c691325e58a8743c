package netscope

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sharnoff/netscope/config"
)

// Option configures the tree of a root Group. Options are given to New.
type Option func(*tree)

// WithBackend sets the execution engine that the tree delegates to
func WithBackend(b Backend) Option {
	return func(t *tree) {
		t.backend = b
	}
}

// WithDType sets the element type used for Inputs and parameters that don't set their own
func WithDType(d DType) Option {
	return func(t *tree) {
		t.dtype = d
	}
}

// WithMode sets the Mode of the root. The default is Sequential. A root with any other Mode takes
// Operators directly, without partitioning them into sub-groups.
func WithMode(m Mode) Option {
	return func(t *tree) {
		t.mode = m
	}
}

// WithRand sets the random source that Initializers and Operators draw from. The default is seeded
// with the current time. The source is not safe for concurrent use, so it shouldn't be shared with
// another tree that is invoked at the same time.
func WithRand(src *rand.Rand) Option {
	return func(t *tree) {
		t.rng = src
	}
}

// WithLogger sets the logger used for reporting extra losses. The default is the standard
// logrus logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *tree) {
		t.log = log
	}
}

// WithCustomLoss adds a hook whose results are summed into ExtraLoss, after the losses registered
// by Regularizers.
func WithCustomLoss(f func(*Group) []Value) Option {
	return func(t *tree) {
		t.customLoss = f
	}
}

// Training sets whether the tree is being invoked for training, which changes the behavior of
// some Operators (e.g. dropout).
func Training(on bool) Option {
	return func(t *tree) {
		t.training = on
	}
}

// WithConfig takes the dtype, training and reporting options from the given Config. The Config is
// only read once; later changes to it have no effect on the tree.
func WithConfig(c *config.Config) Option {
	return func(t *tree) {
		if d, err := ParseDType(c.DType); err == nil {
			t.dtype = d
		}

		t.training = c.Train
		t.showExtraLossInfo = c.ShowExtraLossInfo
		t.showStructureDetail = c.ShowStructureDetail
	}
}

// New returns the root Group of a new tree, with the given name and options. Unless WithMode is
// given, the root is Sequential and its children are partitioned into named sub-groups as they are
// added. A Mode that isn't one of the five is stored as the tree's error.
func New(name string, opts ...Option) *Group {
	t := newTree()
	for _, o := range opts {
		o(t)
	}

	if t.rng == nil {
		t.rng = newTree().rng
	}

	if !t.mode.valid() {
		t.err = errors.Wrapf(UnknownInterconnectError{t.mode}, "Can't make root %q", name)
		t.mode = Sequential
	}

	g := newGroup(name, t.mode)
	g.tree = t
	return g
}

func newTree() *tree {
	return &tree{
		dtype: DefaultDType,
		log:   logrus.StandardLogger(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func newGroup(name string, mode Mode) *Group {
	return &Group{
		name:       name,
		mode:       mode,
		paramIndex: make(map[string]*param),
	}
}

// setError records the error as the tree's construction error, if there isn't one already. If
// PanicErrors() has been called, setError will additionally panic the error it is given.
func (g *Group) setError(e error) {
	if g.tree.err == nil {
		g.tree.err = e
	}

	if g.tree.panicErrors {
		panic(e)
	}
}

// PanicErrors makes every subsequent construction error in the tree panic instead of being
// stored. It returns the Group it was called on.
func (g *Group) PanicErrors() *Group {
	g.tree.panicErrors = true
	return g
}

// Err returns the first error encountered while building the tree. Once there has been an error,
// further calls to Add are ignored, and Invoke returns the error.
func (g *Group) Err() error {
	return g.tree.err
}

// Backend returns the execution engine of the tree, which may be nil
func (g *Group) Backend() Backend {
	return g.tree.backend
}
