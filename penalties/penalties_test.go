package penalties

import (
	"math"
	"testing"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/cpu"
)

func TestPenalties(t *testing.T) {
	b := cpu.New()
	w, err := cpu.NewTensor(ns.Shape{2, 2}, []float64{1, -2, 3, -4})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		id   string
		want float64
	}{
		{"l1:0.5", 0.5 * 10},
		{"l2:0.1", 0.1 * 30},
		{"elastic_net:2,alpha=0.25", 2 * (0.25*10 + 0.75*30)},
		{"elastic_net:1,alpha=1", 10},
	}

	for _, c := range cases {
		reg, err := ns.GetRegularizer(c.id)
		if err != nil {
			t.Errorf("GetRegularizer(%q): %v", c.id, err)
			continue
		}

		v, err := reg.Penalty(b, w)
		if err != nil {
			t.Errorf("%q: %v", c.id, err)
			continue
		}

		got, err := v.(*cpu.Tensor).Item()
		if err != nil || math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%q: penalty = %v (%v), want %v", c.id, got, err, c.want)
		}
	}
}

func TestBadIdentifiers(t *testing.T) {
	for _, id := range []string{"l1", "l2:-1", "l2:x", "l1:0.1,scope=fc", "elastic_net:1,alpha=2"} {
		if _, err := ns.GetRegularizer(id); err == nil {
			t.Errorf("GetRegularizer(%q): expected error", id)
		}
	}
}
