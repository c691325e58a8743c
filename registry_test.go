package netscope_test

import (
	"sort"
	"testing"

	"github.com/pkg/errors"

	ns "github.com/sharnoff/netscope"
	"github.com/sharnoff/netscope/argparse"
	_ "github.com/sharnoff/netscope/initializers"
	_ "github.com/sharnoff/netscope/operators"
	_ "github.com/sharnoff/netscope/penalties"
)

func TestRegister(t *testing.T) {
	f := func(p *argparse.Parser) (ns.Operator, error) { return nil, nil }

	if err := ns.RegisterOperator("relu", f); errors.Cause(err) != ns.ErrRegisterDuplicate {
		t.Errorf("duplicate: got %v", err)
	}
	if _, ok := ns.RegisterOperator("test_nil_func", nil).(ns.NilArgError); !ok {
		t.Error("expected NilArgError for nil function")
	}

	if err := ns.RegisterAll(map[string]interface{}{"test_bad_type": 42}); err == nil {
		t.Error("expected error for a value that is not a constructor")
	}

	if err := ns.RegisterAll(map[string]interface{}{"test_nil_return": f}); err != nil {
		t.Fatal(err)
	}
	if _, err := ns.GetOperator("test_nil_return"); errors.Cause(err) != ns.ErrRegisterNilReturn {
		t.Errorf("nil return: got %v", err)
	}
}

func TestGet(t *testing.T) {
	if op, err := ns.GetOperator("lrelu:0.1"); err != nil || op.TypeString() != "lrelu" {
		t.Errorf("GetOperator = %v, %v", op, err)
	}
	if ini, err := ns.GetInitializer("uniform:lower=-0.1,upper=0.1"); err != nil || ini.TypeString() != "uniform" {
		t.Errorf("GetInitializer = %v, %v", ini, err)
	}
	if reg, err := ns.GetRegularizer("l2:0.001"); err != nil || reg.TypeString() != "l2" {
		t.Errorf("GetRegularizer = %v, %v", reg, err)
	}

	for _, id := range []string{"", ":1", "unknown", "relu:a:b"} {
		if _, err := ns.GetOperator(id); err == nil {
			t.Errorf("%q: expected error", id)
		}
	}

	reg := ns.Registered()
	for _, kind := range []string{"operator", "initializer", "regularizer"} {
		if len(reg[kind]) == 0 || !sort.StringsAreSorted(reg[kind]) {
			t.Errorf("Registered()[%q] = %v", kind, reg[kind])
		}
	}
}
