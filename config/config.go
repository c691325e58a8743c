// Package config holds the named, typed settings of a run. Every setting is a field of Config,
// described by a Flag, and can be overridden with "--name=value" arguments.
//
// Settings may be frozen, after which they reject any change to their value, and may be marked as
// key options, which identify a run (e.g. in the name of its record directory).
package config

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// KeyMode determines whether a setting is one of the key options of a run
type KeyMode int8

const (
	// NotKey settings are never key options
	NotKey KeyMode = iota
	// Key settings are always key options
	Key
	// KeyWhenSet settings become key options once they have been set explicitly
	KeyWhenSet
)

// Flag describes a single setting
type Flag struct {
	Name string
	Desc string
	Key  KeyMode

	// if not nil, the only values the setting may take
	Enum []string

	// if not nil, called with every new value before it is set
	Validate func(string) error
}

// Config is the full set of settings of a run. Fields can be read directly; they should only be
// changed through Set or Parse, so that freezing, validation and key marking apply.
type Config struct {
	RecordDir string
	JobDir    string
	DataDir   string

	// the default element type of tensors, "float32" or "float64"
	DType string

	Train               bool
	ShowStructureDetail bool
	ShowExtraLossInfo   bool
	ProgressBar         bool
	TBPort              int

	LearningRate float64
	BatchSize    int
	Epoch        int

	// general-purpose values for passing parameters from the command line
	IntPara1  int
	BoolPara1 bool
	Alpha     float64
	Beta      float64
	Gamma     float64
	Epsilon   float64
	Delta     float64

	fs      *pflag.FlagSet
	entries map[string]*entry

	// names of the settings, in the order they were declared
	order []string
}

type entry struct {
	flag   Flag
	frozen bool
	isKey  bool
}

// New returns a Config with every setting at its default value
func New() *Config {
	c := &Config{
		fs:      pflag.NewFlagSet("netscope", pflag.ContinueOnError),
		entries: make(map[string]*entry),
	}

	tmp := pflag.NewFlagSet("defaults", pflag.ContinueOnError)

	tmp.StringVar(&c.RecordDir, "record_dir", "records", "Root path for records")
	c.declare(tmp, Flag{Name: "record_dir", Desc: "Root path for records"})
	tmp.StringVar(&c.JobDir, "job-dir", "./records", "The root directory where the records should be put")
	c.declare(tmp, Flag{Name: "job-dir", Desc: "The root directory where the records should be put"})
	tmp.StringVar(&c.DataDir, "data_dir", "", "The data directory")
	c.declare(tmp, Flag{Name: "data_dir", Desc: "The data directory"})

	tmp.StringVar(&c.DType, "dtype", "float32", "Default dtype for tensors")
	c.declare(tmp, Flag{Name: "dtype", Desc: "Default dtype for tensors", Key: KeyWhenSet, Enum: []string{"float32", "float64"}})

	tmp.BoolVar(&c.Train, "train", true, "Whether or not to train")
	c.declare(tmp, Flag{Name: "train", Desc: "Whether or not to train"})
	tmp.BoolVar(&c.ShowStructureDetail, "show_structure_detail", false, "Whether to show the table of layers and parameters")
	c.declare(tmp, Flag{Name: "show_structure_detail", Desc: "Whether to show the table of layers and parameters"})
	tmp.BoolVar(&c.ShowExtraLossInfo, "show_extra_loss_info", false, "Whether to log every extra loss")
	c.declare(tmp, Flag{Name: "show_extra_loss_info", Desc: "Whether to log every extra loss"})
	tmp.BoolVar(&c.ProgressBar, "progress_bar", true, "Whether to show progress bar")
	c.declare(tmp, Flag{Name: "progress_bar", Desc: "Whether to show progress bar"})
	tmp.IntVar(&c.TBPort, "tb_port", 6006, "Tensorboard port number")
	c.declare(tmp, Flag{Name: "tb_port", Desc: "Tensorboard port number", Validate: intRange(1, 65535)})

	tmp.Float64Var(&c.LearningRate, "lr", 0.001, "Learning rate")
	c.declare(tmp, Flag{Name: "lr", Desc: "Learning rate", Key: KeyWhenSet, Validate: floatMin(0)})
	tmp.IntVar(&c.BatchSize, "batch_size", 100, "Batch size")
	c.declare(tmp, Flag{Name: "batch_size", Desc: "Batch size", Key: KeyWhenSet, Validate: intRange(1, -1)})
	tmp.IntVar(&c.Epoch, "epoch", 1, "Maximum number of epochs")
	c.declare(tmp, Flag{Name: "epoch", Desc: "Maximum number of epochs", Validate: intRange(1, -1)})

	tmp.IntVar(&c.IntPara1, "int_para_1", 0, "Used to pass an integer parameter using command line")
	c.declare(tmp, Flag{Name: "int_para_1", Desc: "Used to pass an integer parameter using command line"})
	tmp.BoolVar(&c.BoolPara1, "bool_para_1", false, "Used to pass a boolean parameter using command line")
	c.declare(tmp, Flag{Name: "bool_para_1", Desc: "Used to pass a boolean parameter using command line"})

	for _, f := range []struct {
		p    *float64
		name string
		desc string
	}{
		{&c.Alpha, "alpha", "Alpha"},
		{&c.Beta, "beta", "Beta"},
		{&c.Gamma, "gamma", "Gamma"},
		{&c.Epsilon, "epsilon", "Epsilon"},
		{&c.Delta, "delta", "Delta"},
	} {
		tmp.Float64Var(f.p, f.name, 0, f.desc)
		c.declare(tmp, Flag{Name: f.name, Desc: f.desc, Key: KeyWhenSet})
	}

	return c
}

// declare moves the setting from the FlagSet holding its typed value to the Config's own FlagSet,
// wrapping it so that every change goes through the Config.
func (c *Config) declare(tmp *pflag.FlagSet, f Flag) {
	inner := tmp.Lookup(f.Name)
	e := &entry{flag: f, isKey: f.Key == Key}

	c.fs.Var(&guardedValue{inner: inner.Value, e: e}, f.Name, f.Desc)
	c.fs.Lookup(f.Name).NoOptDefVal = inner.NoOptDefVal
	c.fs.Lookup(f.Name).DefValue = inner.DefValue

	c.entries[f.Name] = e
	c.order = append(c.order, f.Name)
}

// Parse sets the values given by "--name=value" arguments. Arguments that aren't flags are left
// in Args().
func (c *Config) Parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return errors.Wrapf(err, "Couldn't parse config arguments")
	}

	return nil
}

// Args returns the arguments left over from Parse that were not flags
func (c *Config) Args() []string {
	return c.fs.Args()
}

// Set sets the setting with the given name from its string form
func (c *Config) Set(name, value string) error {
	if _, ok := c.entries[name]; !ok {
		return errors.Errorf("Unknown config %q", name)
	}

	if err := c.fs.Set(name, value); err != nil {
		return errors.Wrapf(err, "Can't set config %q", name)
	}

	return nil
}

// Get returns the current value of the setting with the given name, in string form
func (c *Config) Get(name string) (string, error) {
	f := c.fs.Lookup(name)
	if f == nil {
		return "", errors.Errorf("Unknown config %q", name)
	}

	return f.Value.String(), nil
}

// Known returns whether or not there is a setting with the given name
func (c *Config) Known(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Freeze fixes the setting at its current value. Setting it to a different value afterwards
// gives an error; setting it to the same value is allowed.
func (c *Config) Freeze(name string) error {
	e, ok := c.entries[name]
	if !ok {
		return errors.Errorf("Can't freeze unknown config %q", name)
	}

	e.frozen = true
	return nil
}

// IsKey returns whether or not the setting is currently a key option
func (c *Config) IsKey(name string) bool {
	e, ok := c.entries[name]
	return ok && e.isKey
}

// Names returns the names of all settings, in the order they were declared
func (c *Config) Names() []string {
	ns := make([]string, len(c.order))
	copy(ns, c.order)
	return ns
}

// Flags returns the descriptions of all settings, in the order they were declared
func (c *Config) Flags() []Flag {
	fs := make([]Flag, len(c.order))
	for i, n := range c.order {
		fs[i] = c.entries[n].flag
	}

	return fs
}

// KeyOptions returns the current values of all settings that are key options
func (c *Config) KeyOptions() map[string]string {
	ko := make(map[string]string)
	for _, n := range c.order {
		if c.entries[n].isKey {
			ko[n] = c.fs.Lookup(n).Value.String()
		}
	}

	return ko
}

// ConfigStrings returns the key options as sorted "name: value" strings
func (c *Config) ConfigStrings() []string {
	var ss []string
	for k, v := range c.KeyOptions() {
		ss = append(ss, k+": "+v)
	}

	sort.Strings(ss)
	return ss
}

// FlagSet returns the FlagSet that the settings are parsed with, for use in a program's own
// usage output.
func (c *Config) FlagSet() *pflag.FlagSet {
	return c.fs
}

func intRange(min, max int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(s)
		if err != nil {
			return errors.Errorf("%q is not an integer", s)
		} else if i < min || (max >= min && i > max) {
			if max < min {
				return errors.Errorf("%d is less than %d", i, min)
			}
			return errors.Errorf("%d is not in the range [%d, %d]", i, min, max)
		}

		return nil
	}
}

func floatMin(min float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Errorf("%q is not a number", s)
		} else if f < min {
			return errors.Errorf("%v is less than %v", f, min)
		}

		return nil
	}
}
