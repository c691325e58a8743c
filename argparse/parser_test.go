package argparse

import (
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		name    string
		arg     string
		hasArg  bool
		kwargs  map[string]string
		wantErr bool
	}{
		{in: "relu", name: "relu"},
		{in: "lrelu:0.2", name: "lrelu", arg: "0.2", hasArg: true},
		{in: "uniform:lower=-0.1,upper=0.1", name: "uniform", kwargs: map[string]string{"lower": "-0.1", "upper": "0.1"}},
		{in: "l2:0.001,scope=fc", name: "l2", arg: "0.001", hasArg: true, kwargs: map[string]string{"scope": "fc"}},
		{in: "", wantErr: true},
		{in: ":1", wantErr: true},
		{in: "a:b:c", wantErr: true},
		{in: "x:1,2", wantErr: true},
		{in: "x:a=b=c", wantErr: true},
		{in: "x:a=1,a=2", wantErr: true},
		{in: "x:=1", wantErr: true},
	}

	for _, c := range cases {
		p, err := Parse(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", c.in)
			}
			continue
		} else if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", c.in, err)
			continue
		}

		if p.Name != c.name {
			t.Errorf("Parse(%q): name = %q, want %q", c.in, p.Name, c.name)
		}
		if p.HasArg() != c.hasArg || p.Arg("") != c.arg {
			t.Errorf("Parse(%q): arg = %q (%v), want %q (%v)", c.in, p.Arg(""), p.HasArg(), c.arg, c.hasArg)
		}
		for k, v := range c.kwargs {
			if got := p.Get(k, ""); got != v {
				t.Errorf("Parse(%q): %s = %q, want %q", c.in, k, got, v)
			}
		}
		if len(p.Keys()) != len(c.kwargs) {
			t.Errorf("Parse(%q): %d keys, want %d", c.in, len(p.Keys()), len(c.kwargs))
		}
	}
}

func TestTypedGetters(t *testing.T) {
	p, err := Parse("x:3,rate=0.5,n=4,on=true,bad=q")
	if err != nil {
		t.Fatal(err)
	}

	if i, err := p.IntArg(0); err != nil || i != 3 {
		t.Errorf("IntArg = %d, %v", i, err)
	}
	if f, err := p.Float("rate", 0); err != nil || f != 0.5 {
		t.Errorf("Float(rate) = %v, %v", f, err)
	}
	if f, err := p.Float("missing", 7); err != nil || f != 7 {
		t.Errorf("Float(missing) = %v, %v", f, err)
	}
	if i, err := p.Int("n", 0); err != nil || i != 4 {
		t.Errorf("Int(n) = %d, %v", i, err)
	}
	if b, err := p.Bool("on", false); err != nil || !b {
		t.Errorf("Bool(on) = %v, %v", b, err)
	}
	if _, err := p.Float("bad", 0); err == nil {
		t.Error("Float(bad): expected error")
	}
}

func TestCheck(t *testing.T) {
	p, err := Parse("x:1,a=2")
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Check(true, "a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Check(false, "a"); err == nil {
		t.Error("expected error for positional argument")
	}
	if err := p.Check(true, "b"); err == nil {
		t.Error("expected error for unknown key")
	}
}
