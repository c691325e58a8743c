package penalties

import (
	"math"

	ns "github.com/sharnoff/netscope"
)

type elasticNet struct {
	α float64
	λ float64
}

// λ is a small value close to 0 where λ > 0,
// α is a value that controls the ratio between L1 and L2
// Regularization, where 0 ≤ α ≤ 1. α = 1 is functionally identical to L1 and α = 0 is equivalent to
// L2.
func ElasticNet(α, λ float64) *elasticNet {
	return &elasticNet{α, λ}
}

func (p *elasticNet) TypeString() string {
	return "elastic_net"
}

// Penalty is λ times the mix of the L1 and L2 penalties given by α
func (p *elasticNet) Penalty(b ns.Backend, w ns.Value) (ns.Value, error) {
	return mapSum(b, w, func(x float64) float64 {
		return p.λ * (p.α*math.Abs(x) + (1-p.α)*x*x)
	})
}
