// sweep runs a training program once for every combination of hyperparameters. For example:
//
//	sweep --hp=lr=0.1,0.01 --hp=batch_size=32,64 --public=epoch=5 --times=2 ./train
//
// runs ./train eight times, with "--epoch=5" and every combination of "--lr" and "--batch_size".
// Flags that are not settings of config.Config are passed on with a warning.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/sharnoff/netscope/config"
	"github.com/sharnoff/netscope/sweep"
)

func main() {
	log := logrus.StandardLogger()

	if err := run(os.Args[1:], log); err != nil {
		log.WithError(err).Fatal("sweep failed")
	}
}

func run(args []string, log *logrus.Logger) error {
	var (
		hps      []string
		public   []string
		launcher []string
		times    int
		dryRun   bool
	)

	fs := pflag.NewFlagSet("sweep", pflag.ContinueOnError)
	fs.StringArrayVar(&hps, "hp", nil, "Hyperparameter to sweep over, as name=v1,v2,...")
	fs.StringArrayVar(&public, "public", nil, "Flag given to every run, as name=value")
	fs.StringSliceVar(&launcher, "launcher", nil, "Command to run the program with, e.g. python")
	fs.IntVar(&times, "times", 1, "Number of times to run every combination")
	fs.BoolVar(&dryRun, "dry-run", false, "Print the commands instead of running them")

	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() != 1 {
		return errors.Errorf("Expected exactly one program, got %d arguments", fs.NArg())
	} else if times < 1 {
		return errors.Errorf("Number of times must be positive, got %d", times)
	}

	h, err := sweep.New(fs.Arg(0), launcher...)
	if err != nil {
		return err
	}
	h.Known = config.New().Known
	h.Log = log

	for _, p := range public {
		name, value, err := split(p)
		if err != nil {
			return err
		}
		h.RegisterPublicFlag(name, value)
	}

	for _, hp := range hps {
		name, values, err := split(hp)
		if err != nil {
			return err
		}

		vs := make([]interface{}, 0)
		for _, v := range strings.Split(values, ",") {
			vs = append(vs, v)
		}
		if err := h.RegisterHyperParameters(name, vs...); err != nil {
			return err
		}
	}

	if dryRun {
		for _, cmd := range h.Commands() {
			fmt.Println(strings.Join(cmd, " "))
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return h.Run(ctx, times)
}

func split(s string) (string, string, error) {
	i := strings.IndexByte(s, '=')
	if i <= 0 || i == len(s)-1 {
		return "", "", errors.Errorf("Expected name=value, got %q", s)
	}

	return s[:i], s[i+1:], nil
}
