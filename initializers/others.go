package initializers

import (
	"math/rand"

	ns "github.com/sharnoff/netscope"
)

type leCun struct {
	*varianceScaling
}

// LeCun scales by the number of inputs
func LeCun() leCun {
	return leCun{VarianceScaling().In()}
}

func (l leCun) TypeString() string {
	return "lecun"
}

type he struct {
	*varianceScaling
}

// He scales by the number of inputs, with a factor of 2
func He() he {
	return he{VarianceScaling().In().Factor(2)}
}

func (h he) TypeString() string {
	return "he"
}

type xavier struct {
	*varianceScaling
	name string
}

// Xavier scales by the average of the number of inputs and outputs, drawing from a truncated
// normal distribution
func Xavier() xavier {
	return xavier{VarianceScaling().Avg(), "xavier_normal"}
}

// XavierUniform is Xavier, but draws from a uniform distribution
func XavierUniform() xavier {
	return xavier{VarianceScaling().Avg().WithUniform(), "xavier_uniform"}
}

// Glorot is another name for Xavier
func Glorot() xavier {
	return Xavier()
}

func (x xavier) TypeString() string {
	return x.name
}

type constant float64

// Constant sets every value to c
func Constant(c float64) constant {
	return constant(c)
}

// Zeros sets every value to zero. It is the usual Initializer for biases.
func Zeros() constant {
	return constant(0)
}

func (c constant) TypeString() string {
	if c == 0 {
		return "zeros"
	}

	return "constant"
}

func (c constant) Set(_ *rand.Rand, shape ns.Shape, ws []float64) {
	for i := range ws {
		ws[i] = float64(c)
	}
}
