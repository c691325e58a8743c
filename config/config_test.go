package config

import (
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := New()

	if c.DType != "float32" || !c.Train || c.TBPort != 6006 || c.JobDir != "./records" {
		t.Errorf("unexpected defaults: %+v", c)
	}

	if len(c.KeyOptions()) != 0 {
		t.Errorf("expected no key options by default, got %v", c.KeyOptions())
	}
}

func TestParse(t *testing.T) {
	c := New()

	err := c.Parse([]string{"--dtype=float64", "--lr=0.01", "--show_structure_detail", "--job-dir=/tmp/x", "rest"})
	if err != nil {
		t.Fatal(err)
	}

	if c.DType != "float64" || c.LearningRate != 0.01 || !c.ShowStructureDetail || c.JobDir != "/tmp/x" {
		t.Errorf("flags not applied: %+v", c)
	}

	if !reflect.DeepEqual(c.Args(), []string{"rest"}) {
		t.Errorf("Args() = %v", c.Args())
	}

	want := []string{"dtype: float64", "lr: 0.01"}
	if got := c.ConfigStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("ConfigStrings() = %v, want %v", got, want)
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name, value string
		ok          bool
	}{
		{"dtype", "float64", true},
		{"dtype", "int8", false},
		{"tb_port", "8080", true},
		{"tb_port", "0", false},
		{"tb_port", "abc", false},
		{"batch_size", "32", true},
		{"batch_size", "0", false},
		{"lr", "-1", false},
		{"train", "false", true},
		{"nope", "1", false},
	}

	for _, tc := range cases {
		c := New()
		err := c.Set(tc.name, tc.value)
		if (err == nil) != tc.ok {
			t.Errorf("Set(%q, %q): err = %v, want ok = %v", tc.name, tc.value, err, tc.ok)
		}
	}
}

func TestFreeze(t *testing.T) {
	c := New()

	if err := c.Set("alpha", "0.5"); err != nil {
		t.Fatal(err)
	}
	if err := c.Freeze("alpha"); err != nil {
		t.Fatal(err)
	}

	if err := c.Set("alpha", "0.50"); err != nil {
		t.Errorf("setting a frozen config to the same value: %v", err)
	}
	if err := c.Set("alpha", "0.7"); err == nil {
		t.Error("expected error when changing frozen config")
	}
	if c.Alpha != 0.5 {
		t.Errorf("Alpha = %v after rejected change, want 0.5", c.Alpha)
	}

	if err := c.Freeze("nope"); err == nil {
		t.Error("expected error freezing unknown config")
	}
}

func TestKeyWhenSet(t *testing.T) {
	c := New()

	if c.IsKey("gamma") {
		t.Fatal("gamma should not be a key before being set")
	}
	if err := c.Set("gamma", "2"); err != nil {
		t.Fatal(err)
	}
	if !c.IsKey("gamma") {
		t.Error("gamma should be a key after being set")
	}

	if err := c.Set("tb_port", "7000"); err != nil {
		t.Fatal(err)
	}
	if c.IsKey("tb_port") {
		t.Error("tb_port should never be a key")
	}

	if v, _ := c.Get("gamma"); v != "2" {
		t.Errorf("Get(gamma) = %q", v)
	}
}
