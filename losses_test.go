package netscope_test

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/config"
	"github.com/sharnoff/netscope/cpu"
	"github.com/sharnoff/netscope/initializers"
	"github.com/sharnoff/netscope/operators"
	"github.com/sharnoff/netscope/penalties"
)

func TestExtraLossEmpty(t *testing.T) {
	net, _ := newNet()
	net.Add(operators.Add(1))

	v, err := net.ExtraLoss()
	if v != nil || err != nil {
		t.Errorf("ExtraLoss() = %v, %v; want nil, nil", v, err)
	}
}

func TestExtraLoss(t *testing.T) {
	c := config.New()
	if err := c.Parse([]string{"--show_extra_loss_info"}); err != nil {
		t.Fatal(err)
	}

	log, hook := test.NewNullLogger()

	var calls int
	custom := func(g *ns.Group) []ns.Value {
		calls++
		return []ns.Value{cpu.Scalar(0.5), nil}
	}

	net := ns.New("net",
		ns.WithBackend(cpu.New()),
		ns.WithConfig(c),
		ns.WithLogger(log),
		ns.WithCustomLoss(custom),
	)
	net.Add(operators.Dense(2).WeightInit(initializers.Constant(1)).WeightReg(penalties.L1(0.5)))

	if _, err := net.Invoke(cpu.Vector(1, 1, 1)); err != nil {
		t.Fatal(err)
	}

	v, err := net.ExtraLoss()
	if err != nil {
		t.Fatal(err)
	}

	// 0.5 * (3*2 weights of 1), plus the custom 0.5
	if f, _ := v.(*cpu.Tensor).Item(); f != 3.5 {
		t.Errorf("extra loss = %v, want 3.5", f)
	}

	again, err := net.ExtraLoss()
	if err != nil || again != v || calls != 1 {
		t.Errorf("extra loss was not cached: %v, %v (%d calls)", again, err, calls)
	}

	// a summary line plus one per loss
	if n := len(hook.AllEntries()); n != 3 {
		t.Errorf("%d log entries, want 3", n)
	}
}
