package initializers

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	ns "github.com/sharnoff/netscope"
)

func TestRegistered(t *testing.T) {
	cases := []struct {
		id       string
		typeName string
	}{
		{"zeros", "zeros"},
		{"ones", "constant"},
		{"constant:0.5", "constant"},
		{"uniform:lower=-0.1,upper=0.1", "uniform"},
		{"normal:sd=0.01", "normal"},
		{"trunc_normal", "trunc_normal"},
		{"xavier_normal", "xavier_normal"},
		{"glorot_uniform", "xavier_uniform"},
		{"he", "he"},
		{"lecun", "lecun"},
		{"variance_scaling:2,mode=in,distribution=uniform", "variance_scaling"},
	}

	for _, c := range cases {
		ini, err := ns.GetInitializer(c.id)
		if err != nil {
			t.Errorf("GetInitializer(%q): %v", c.id, err)
			continue
		}

		if ini.TypeString() != c.typeName {
			t.Errorf("GetInitializer(%q).TypeString() = %q, want %q", c.id, ini.TypeString(), c.typeName)
		}

		ws := make([]float64, 12)
		ini.Set(rand.New(rand.NewSource(1)), ns.Shape{3, 4}, ws)
		for _, w := range ws {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				t.Errorf("%q gave invalid value %v", c.id, w)
				break
			}
		}
	}

	for _, id := range []string{"nope", "zeros:1", "uniform:bogus=1", "variance_scaling:mode=sideways"} {
		if _, err := ns.GetInitializer(id); err == nil {
			t.Errorf("GetInitializer(%q): expected error", id)
		}
	}
}

func TestConstant(t *testing.T) {
	ws := make([]float64, 4)
	Constant(0.25).Set(nil, ns.Shape{4}, ws)
	for _, w := range ws {
		if w != 0.25 {
			t.Fatalf("Constant(0.25) set %v", ws)
		}
	}
}

func TestUniformRange(t *testing.T) {
	ws := make([]float64, 1000)
	Uniform().Range(0.5, -0.5).Set(rand.New(rand.NewSource(1)), ns.Shape{1000}, ws)

	for _, w := range ws {
		if w < -0.5 || w >= 0.5 || w == 0 {
			t.Fatalf("value %v out of range", w)
		}
	}
}

func TestVarianceScalingBounds(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	ws := make([]float64, 200*50)
	Xavier().Set(src, ns.Shape{200, 50}, ws)

	// truncated at 2 standard deviations of sqrt(1/125)
	limit := 2 * math.Sqrt(1.0/125)
	for _, w := range ws {
		if math.Abs(w) > limit {
			t.Fatalf("value %v outside truncation limit %v", w, limit)
		}
	}

	XavierUniform().Set(src, ns.Shape{200, 50}, ws)
	limit = math.Sqrt(3.0 / 125)
	for _, w := range ws {
		if math.Abs(w) > limit {
			t.Fatalf("value %v outside uniform limit %v", w, limit)
		}
	}
}

func TestSameSource(t *testing.T) {
	draw := func(seed int64) []float64 {
		ws := make([]float64, 16)
		Random(TruncNormal().SD(0.5)).Set(rand.New(rand.NewSource(seed)), ns.Shape{4, 4}, ws)
		return ws
	}

	if a, b := draw(11), draw(11); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different values:\n%v\n%v", a, b)
	}
	if a, b := draw(11), draw(12); reflect.DeepEqual(a, b) {
		t.Error("different seeds gave the same values")
	}

	for _, w := range draw(5) {
		if math.Abs(w) > 1 {
			t.Fatalf("value %v outside truncation at 2 standard deviations of 0.5", w)
		}
	}
}

func TestNoTrunc(t *testing.T) {
	if g := TruncNormal().Trunc(-1); g.cut != 0 {
		t.Errorf("negative cutoff gave %v, want none", g.cut)
	}
}

func TestFans(t *testing.T) {
	cases := []struct {
		shape   ns.Shape
		in, out float64
	}{
		{ns.Shape{}, 1, 1},
		{ns.Shape{7}, 7, 7},
		{ns.Shape{3, 4}, 3, 4},
		{ns.Shape{2, 3, 4}, 6, 4},
	}

	for _, c := range cases {
		if in, out := fans(c.shape); in != c.in || out != c.out {
			t.Errorf("fans(%v) = %v, %v; want %v, %v", c.shape, in, out, c.in, c.out)
		}
	}
}

func TestSetDefault(t *testing.T) {
	old := defaultValue["uniform-upper"]
	defer func() { defaultValue["uniform-upper"] = old }()

	if err := SetDefault("uniform-upper", 3); err != nil {
		t.Fatal(err)
	}
	if u := Uniform(); u.upper != 3 {
		t.Errorf("default not applied: upper = %v", u.upper)
	}

	if err := SetDefault("nope", 1); err == nil {
		t.Error("expected error for unknown default")
	}
	if err := SetDefault("normal-sd", math.NaN()); err == nil {
		t.Error("expected error for NaN default")
	}
}
