package netscope_test

import (
	"testing"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/cpu"
	"github.com/sharnoff/netscope/initializers"
	"github.com/sharnoff/netscope/operators"
)

func TestRecurrent(t *testing.T) {
	if _, err := ns.NewRecurrent(0); err == nil {
		t.Error("expected error for state size 0")
	}

	net, b := newNet()
	r, err := ns.NewRecurrent(2)
	if err != nil {
		t.Fatal(err)
	}

	// each state is the previous one plus the step's value, in both units
	cell := net.Add(r)
	cell.Add(operators.Dense(2).
		WeightInit(initializers.Constant(1)).
		BiasInit(initializers.Zeros()))

	if cell != r.Cell() || cell.Level() != 2 {
		t.Fatalf("Add returned %v at level %d", cell, cell.Level())
	}

	x, _ := cpu.NewTensor(ns.Shape{1, 3, 1}, []float64{1, 2, 3})
	out, err := net.Invoke(x)
	if err != nil {
		t.Fatal(err)
	}

	if !out.Shape().Equal(ns.Shape{1, 3, 2}) {
		t.Fatalf("output shape = %v", out.Shape())
	}

	// s1 = 1, s2 = 2 + 2*1 = 4, s3 = 3 + 2*4 = 11
	want, _ := cpu.NewTensor(ns.Shape{1, 3, 2}, []float64{1, 1, 4, 4, 11, 11})
	if !out.(*cpu.Tensor).AlmostEqual(want, 1e-9) {
		t.Errorf("output = %v, want %v", out.(*cpu.Tensor).Data(), want.Data())
	}

	// the cell's parameters are declared once and shared by every step
	if got := b.VarNames(); len(got) != 2 || got[1] != "net/recurrent/cell/fc/weights" {
		t.Errorf("VarNames() = %v", got)
	}
	if r.NumParams() != 3*2+2 || net.NumParams() != r.NumParams() {
		t.Errorf("NumParams() = %d, %d", r.NumParams(), net.NumParams())
	}
	if !r.Invoked() {
		t.Error("recurrent should be invoked")
	}
}

func TestRecurrentShape(t *testing.T) {
	net, _ := newNet()
	r, _ := ns.NewRecurrent(2)
	net.Add(r).Add(operators.Dense(3))

	x, _ := cpu.NewTensor(ns.Shape{1, 2, 1}, []float64{1, 2})
	_, err := net.Invoke(x)
	if _, ok := errors.Cause(err).(ns.ShapeMismatchError); !ok {
		t.Errorf("cell with the wrong output size: got %v", err)
	}

	net, _ = newNet()
	r, _ = ns.NewRecurrent(2)
	net.Add(r).Add(operators.Dense(2))

	_, err = net.Invoke(cpu.Vector(1, 2))
	if _, ok := errors.Cause(err).(ns.ShapeMismatchError); !ok {
		t.Errorf("input without steps: got %v", err)
	}
}
