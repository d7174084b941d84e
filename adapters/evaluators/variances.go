package evaluators

import (
	"math"

	"hypocalc/domain/hypotest"
	"hypocalc/internal/errors"
	"hypocalc/ports"
)

// oneVariance evaluates chi2 = (n-1) s^2 / sigma0^2 against the Chi-squared
// distribution with n-1 degrees of freedom. The statistic is the ratio
// itself, so there is no standard-error term; both tail critical values are
// reported because the distribution is asymmetric.
type oneVariance struct {
	dist ports.DistributionProvider
}

func (oneVariance) Kind() hypotest.TestKind { return hypotest.OneVariance }
func (oneVariance) Description() string {
	return hypotest.OneVariance.Description()
}

func (e oneVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	if p.SigmaSq0 <= 0 || math.IsNaN(p.SigmaSq0) || math.IsInf(p.SigmaSq0, 0) {
		return hypotest.TestResult{}, errors.DegenerateStandardError("hypothesized variance is not positive and finite")
	}

	df := float64(p.Sample1.Size - 1)
	d, err := e.dist.ChiSquared(df)
	if err != nil {
		return hypotest.TestResult{}, err
	}

	stat := df * p.Sample1.Variance() / p.SigmaSq0
	return hypotest.TestResult{
		Kind:         p.Kind,
		Statistic:    stat,
		Distribution: hypotest.ReferenceDistribution{Family: hypotest.DistChiSquared, DF1: df},
		Critical:     asymmetricCritical(d, p.Alpha, p.Tail),
		PValue:       asymmetricPValue(d, stat, p.Tail),
		Alpha:        p.Alpha,
		Tail:         p.Tail,
	}, nil
}

// twoVariance evaluates F = s1^2 / s2^2 against the F distribution with
// (n1-1, n2-1) degrees of freedom. Both tail critical values are reported.
type twoVariance struct {
	dist ports.DistributionProvider
}

func (twoVariance) Kind() hypotest.TestKind { return hypotest.TwoVariance }
func (twoVariance) Description() string {
	return hypotest.TwoVariance.Description()
}

func (e twoVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	denom := p.Sample2.Variance()
	if denom <= 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return hypotest.TestResult{}, errors.DegenerateStandardError("second sample variance is not positive and finite")
	}

	df1 := float64(p.Sample1.Size - 1)
	df2 := float64(p.Sample2.Size - 1)
	d, err := e.dist.F(df1, df2)
	if err != nil {
		return hypotest.TestResult{}, err
	}

	stat := p.Sample1.Variance() / denom
	return hypotest.TestResult{
		Kind:         p.Kind,
		Statistic:    stat,
		Distribution: hypotest.ReferenceDistribution{Family: hypotest.DistF, DF1: df1, DF2: df2},
		Critical:     asymmetricCritical(d, p.Alpha, p.Tail),
		PValue:       asymmetricPValue(d, stat, p.Tail),
		Alpha:        p.Alpha,
		Tail:         p.Tail,
	}, nil
}
