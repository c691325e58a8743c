package penalties

import (
	"math"

	ns "github.com/sharnoff/netscope"
)

// **********************************************
// L1 (Lasso)
// **********************************************

type l1 float64

// λ is a small value close to 0 where λ > 0
func L1(λ float64) *l1 {
	p := l1(λ)
	return &p
}

// λ is a small value close to 0 where λ > 0
func Lasso(λ float64) *l1 {
	return L1(λ)
}

func (p *l1) TypeString() string {
	return "l1"
}

// Penalty is λ times the sum of the absolute values of the parameter
func (p *l1) Penalty(b ns.Backend, w ns.Value) (ns.Value, error) {
	λ := float64(*p)
	return mapSum(b, w, func(x float64) float64 {
		return λ * math.Abs(x)
	})
}

// **********************************************
// L2 (Ridge)
// **********************************************

type l2 float64

// λ is a small value close to 0 where λ > 0
func L2(λ float64) *l2 {
	p := l2(λ)
	return &p
}

// λ is a small value close to 0 where λ > 0
func Ridge(λ float64) *l2 {
	return L2(λ)
}

func (p *l2) TypeString() string {
	return "l2"
}

// Penalty is λ times the sum of the squares of the parameter
func (p *l2) Penalty(b ns.Backend, w ns.Value) (ns.Value, error) {
	λ := float64(*p)
	return mapSum(b, w, func(x float64) float64 {
		return λ * x * x
	})
}

func mapSum(b ns.Backend, w ns.Value, f func(float64) float64) (ns.Value, error) {
	v, err := b.Map(w, f)
	if err != nil {
		return nil, err
	}

	return b.Sum(v)
}
