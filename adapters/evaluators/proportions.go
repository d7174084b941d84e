package evaluators

import (
	"math"

	"hypocalc/domain/hypotest"
	"hypocalc/ports"
)

// oneProportion evaluates Z = (p-hat - p0) / sqrt(p0 (1-p0) / n).
type oneProportion struct {
	dist ports.DistributionProvider
}

func (oneProportion) Kind() hypotest.TestKind { return hypotest.OneProportion }
func (oneProportion) Description() string {
	return hypotest.OneProportion.Description()
}

func (e oneProportion) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	n := float64(p.Prop1.Size)
	se := math.Sqrt(p.P0 * (1 - p.P0) / n)
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistNormal}
	return standardizedResult(p, p.Prop1.Proportion-p.P0, se, e.dist.Normal(), ref)
}

// twoProportion evaluates the pooled two-proportion Z test:
//
//	p-pool = (x1 + x2) / (n1 + n2)
//	Z      = (p-hat1 - p-hat2) / sqrt(p-pool (1-p-pool) (1/n1 + 1/n2))
//
// When proportions were entered directly, the pooled estimate uses
// p-hat_i * n_i in place of the success counts.
type twoProportion struct {
	dist ports.DistributionProvider
}

func (twoProportion) Kind() hypotest.TestKind { return hypotest.TwoProportion }
func (twoProportion) Description() string {
	return hypotest.TwoProportion.Description()
}

func (e twoProportion) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	n1 := float64(p.Prop1.Size)
	n2 := float64(p.Prop2.Size)

	pooled := (successes(p.Prop1) + successes(p.Prop2)) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistNormal}
	return standardizedResult(p, p.Prop1.Proportion-p.Prop2.Proportion, se, e.dist.Normal(), ref)
}

func successes(obs hypotest.ProportionObservation) float64 {
	if obs.FromCounts {
		return float64(obs.Successes)
	}
	return obs.Proportion * float64(obs.Size)
}
