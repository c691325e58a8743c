// summary builds a network from operator identifiers, invokes it once on a random batch with the
// reference cpu backend, and prints its structure. For example:
//
//	summary --input=784 --layer=fc:128 --layer=relu --layer=fc:10 --layer=softmax --show_structure_detail
//
// All of the settings of config.Config are accepted as well.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/config"
	"github.com/sharnoff/netscope/costfuncs"
	"github.com/sharnoff/netscope/cpu"
	_ "github.com/sharnoff/netscope/initializers"
	_ "github.com/sharnoff/netscope/operators"
	_ "github.com/sharnoff/netscope/penalties"
)

var defaultLayers = []string{"fc:128", "relu", "fc:10", "softmax:logits=true"}

type options struct {
	name    string
	mode    string
	input   []int
	layers  []string
	cost    string
	seed    int64
	list    bool
	verbose bool
}

func main() {
	log := logrus.StandardLogger()

	if err := run(os.Args[1:], log); err != nil {
		log.WithError(err).Fatal("summary failed")
	}
}

func run(args []string, log *logrus.Logger) error {
	conf := config.New()

	var opts options
	fs := pflag.NewFlagSet("summary", pflag.ContinueOnError)
	fs.StringVar(&opts.name, "name", "net", "Name of the root group")
	fs.StringVar(&opts.mode, "mode", "cascade", "Mode of the root group: cascade, sum, prod, concat or fork")
	fs.IntSliceVar(&opts.input, "input", []int{784}, "Sample shape of the input")
	fs.StringArrayVar(&opts.layers, "layer", defaultLayers, "Operator identifier of a layer, repeated in order")
	fs.StringVar(&opts.cost, "cost", "crossentropy", "Cost function measured against random one-hot targets")
	fs.Int64Var(&opts.seed, "seed", 0, "Seed for the random batch and initial values (default: current time)")
	fs.BoolVar(&opts.list, "list", false, "List the registered identifiers and exit")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every group as it is invoked")
	fs.AddFlagSet(conf.FlagSet())

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if opts.list {
		for kind, names := range ns.Registered() {
			fmt.Printf("%s: %s\n", kind, strings.Join(names, ", "))
		}
		return nil
	}

	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}
	src := rand.New(rand.NewSource(opts.seed))

	mode, err := ns.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	if key := conf.KeyOptions(); len(key) != 0 {
		log.WithField("options", key).Info("Key options")
	}

	cf, err := costfuncs.Get(opts.cost)
	if err != nil {
		return err
	}

	b := cpu.New()
	net := ns.New(opts.name,
		ns.WithBackend(b),
		ns.WithConfig(conf),
		ns.WithLogger(log),
		ns.WithMode(mode),
		ns.WithRand(src),
	)

	in, err := ns.NewInput(ns.Shape(opts.input))
	if err != nil {
		return err
	}
	net.Add(in)

	for _, id := range opts.layers {
		op, err := ns.GetOperator(id)
		if err != nil {
			return err
		}
		net.Add(op)
	}

	if err := net.Err(); err != nil {
		return errors.Wrapf(err, "Couldn't build %q", opts.name)
	}

	x, err := randomBatch(src, conf.BatchSize, opts.input)
	if err != nil {
		return err
	}
	b.Feed(in.Name(), x)

	out, err := net.Invoke()
	if err != nil {
		return errors.Wrapf(err, "Couldn't invoke %q", opts.name)
	}

	report, err := net.Report()
	if err != nil {
		return err
	}
	fmt.Println(report)

	log.WithFields(logrus.Fields{
		"input":  x.Shape().String(),
		"output": out.Shape().String(),
		"params": net.NumParams(),
	}).Info("Invoked")

	if err := logCost(log, src, b, cf, net, out); err != nil {
		return err
	}

	loss, err := net.ExtraLoss()
	if err != nil {
		return err
	} else if loss != nil {
		if f, err := loss.(*cpu.Tensor).Item(); err == nil {
			log.WithField("loss", f).Info("Extra loss")
		}
	}

	return nil
}

// randomBatch returns values in [0, 1) with the shape [batch]+sample
func randomBatch(src *rand.Rand, batch int, sample []int) (*cpu.Tensor, error) {
	shape := append(ns.Shape{batch}, sample...)
	if !shape.IsKnown() {
		return nil, errors.Errorf("Can't make a batch with shape %v", shape)
	}

	data := make([]float64, shape.Size())
	for i := range data {
		data[i] = src.Float64()
	}

	return cpu.NewTensor(shape, data)
}

// logCost measures the output of the tree against random one-hot targets. Cross-entropy is taken
// from the logits, if an Operator recorded them.
func logCost(log logrus.FieldLogger, src *rand.Rand, b *cpu.Backend, cf costfuncs.CostFunction, net *ns.Group, out ns.Value) error {
	if cf.TypeString() == "crossentropy" {
		if logits := net.ContextLogits(); logits != nil {
			out = logits
		}
	}

	shape := out.Shape()
	if len(shape) == 0 || !shape.IsKnown() {
		log.WithField("shape", shape.String()).Warn("Can't measure cost of output")
		return nil
	}

	depth := shape[len(shape)-1]
	ids := make([]float64, shape.Size()/depth)
	for i := range ids {
		ids[i] = float64(src.Intn(depth))
	}

	targets, err := b.OneHot(cpu.Vector(ids...), depth)
	if err != nil {
		return err
	} else if targets, err = b.Reshape(targets, shape); err != nil {
		return err
	}

	c, err := cf.Cost(b, out, targets)
	if err != nil {
		return errors.Wrapf(err, "Couldn't measure %s", cf.TypeString())
	}

	f, err := c.(*cpu.Tensor).Item()
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"cost": cf.TypeString(), "value": f}).Info("Cost against random targets")
	return nil
}
