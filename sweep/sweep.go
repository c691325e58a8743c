// Package sweep runs a training program once for every combination of a set of hyperparameter
// values, passing each combination as "--name=value" arguments.
package sweep

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExecFunc runs a single command. args[0] is the program.
type ExecFunc func(ctx context.Context, args []string) error

// Helper collects the arguments shared by every run and the hyperparameters to sweep over
type Helper struct {
	program string
	public  []string

	// hyperparameters in the order they were registered. The first varies slowest.
	names  []string
	values map[string][]string

	// Known reports whether a flag name is recognized by the program. Unrecognized flags are still
	// passed on, with a warning. If nil, every name is accepted.
	Known func(name string) bool

	// Exec runs each command. The default runs it as a subprocess with the standard output and
	// error of the current process.
	Exec ExecFunc

	Log logrus.FieldLogger
}

// New returns a Helper that runs the given program, which must exist. If launcher is given, it
// is put before the program in every command, e.g. New("train.py", "python").
func New(program string, launcher ...string) (*Helper, error) {
	if _, err := os.Stat(program); err != nil {
		return nil, errors.Wrapf(err, "Program %q does not exist", program)
	}

	args := append(append([]string{}, launcher...), program)
	return &Helper{
		program: program,
		public:  args,
		values:  make(map[string][]string),
		Exec:    runCommand,
		Log:     logrus.StandardLogger(),
	}, nil
}

// ConfigString returns the argument that sets the flag to the value: "--name=value"
func ConfigString(name string, value interface{}) string {
	return fmt.Sprintf("--%s=%v", name, value)
}

func (h *Helper) check(name string) {
	if h.Known != nil && !h.Known(name) {
		h.Log.WithField("flag", name).Warn("Flag may be invalid")
	}
}

// RegisterPublicFlag adds a flag that is given to every run
func (h *Helper) RegisterPublicFlag(name string, value interface{}) {
	h.check(name)
	h.public = append(h.public, ConfigString(name, value))
}

// RegisterHyperParameters sets the values that the flag is swept over. Registering the same name
// again replaces its values but keeps its position.
func (h *Helper) RegisterHyperParameters(name string, values ...interface{}) error {
	if len(values) == 0 {
		return errors.Errorf("Can't register hyperparameter %q with no values", name)
	}

	h.check(name)

	vs := make([]string, len(values))
	for i, v := range values {
		vs[i] = ConfigString(name, v)
	}

	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = vs
	return nil
}

// Combinations returns the hyperparameter arguments of every run, in order. With no
// hyperparameters, there is a single run with no extra arguments.
func (h *Helper) Combinations() [][]string {
	combos := [][]string{{}}
	for i := len(h.names) - 1; i >= 0; i-- {
		vs := h.values[h.names[i]]

		next := make([][]string, 0, len(vs)*len(combos))
		for _, v := range vs {
			for _, c := range combos {
				next = append(next, append([]string{v}, c...))
			}
		}
		combos = next
	}

	return combos
}

// Commands returns the full command of every run, in order
func (h *Helper) Commands() [][]string {
	var cmds [][]string
	for _, c := range h.Combinations() {
		cmd := append(append([]string{}, h.public...), c...)
		cmds = append(cmds, cmd)
	}

	return cmds
}

// Run runs every combination the given number of times. It stops at the first failed run, or
// when the context is cancelled.
func (h *Helper) Run(ctx context.Context, times int) error {
	cmds := h.Commands()

	for t := 0; t < times; t++ {
		for i, cmd := range cmds {
			if err := ctx.Err(); err != nil {
				return err
			}

			log := h.Log.WithFields(logrus.Fields{
				"run":   t*len(cmds) + i + 1,
				"total": times * len(cmds),
			})
			log.Info(strings.Join(cmd, " "))

			if err := h.Exec(ctx, cmd); err != nil {
				return errors.Wrapf(err, "Run %q failed", strings.Join(cmd, " "))
			}
		}
	}

	return nil
}

func runCommand(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
