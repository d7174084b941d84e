package evaluators

import (
	"math"

	"hypocalc/domain/hypotest"
	"hypocalc/ports"
)

// meanKnownVariance evaluates Z = (x-bar - mu0) / (sigma0 / sqrt(n)).
type meanKnownVariance struct {
	dist ports.DistributionProvider
}

func (meanKnownVariance) Kind() hypotest.TestKind { return hypotest.MeanKnownVariance }
func (meanKnownVariance) Description() string {
	return hypotest.MeanKnownVariance.Description()
}

func (e meanKnownVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	se := math.Sqrt(p.PopulationVariance1 / float64(p.Sample1.Size))
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistNormal}
	return standardizedResult(p, p.Sample1.Mean-p.Mu0, se, e.dist.Normal(), ref)
}

// meanUnknownVariance evaluates T = (x-bar - mu0) / (s / sqrt(n)),
// t-distributed with n-1 degrees of freedom.
type meanUnknownVariance struct {
	dist ports.DistributionProvider
}

func (meanUnknownVariance) Kind() hypotest.TestKind { return hypotest.MeanUnknownVariance }
func (meanUnknownVariance) Description() string {
	return hypotest.MeanUnknownVariance.Description()
}

func (e meanUnknownVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	df := float64(p.Sample1.Size - 1)
	d, err := e.dist.StudentsT(df)
	if err != nil {
		return hypotest.TestResult{}, err
	}
	se := p.Sample1.StdDev / math.Sqrt(float64(p.Sample1.Size))
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistStudentsT, DF1: df}
	return standardizedResult(p, p.Sample1.Mean-p.Mu0, se, d, ref)
}

// pairedMeans evaluates T = (d-bar - delta) / (s_d / sqrt(n)) over the
// summary of paired differences, t-distributed with n-1 degrees of freedom.
type pairedMeans struct {
	dist ports.DistributionProvider
}

func (pairedMeans) Kind() hypotest.TestKind { return hypotest.PairedMeans }
func (pairedMeans) Description() string {
	return hypotest.PairedMeans.Description()
}

func (e pairedMeans) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	df := float64(p.Sample1.Size - 1)
	d, err := e.dist.StudentsT(df)
	if err != nil {
		return hypotest.TestResult{}, err
	}
	se := p.Sample1.StdDev / math.Sqrt(float64(p.Sample1.Size))
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistStudentsT, DF1: df}
	return standardizedResult(p, p.Sample1.Mean-p.Delta, se, d, ref)
}

// twoMeanEqualVariance evaluates the pooled-variance two-sample t test:
//
//	s_p^2 = ((n1-1)s1^2 + (n2-1)s2^2) / (n1+n2-2)
//	T     = (x-bar1 - x-bar2) / (s_p * sqrt(1/n1 + 1/n2))
type twoMeanEqualVariance struct {
	dist ports.DistributionProvider
}

func (twoMeanEqualVariance) Kind() hypotest.TestKind { return hypotest.TwoMeanEqualVariance }
func (twoMeanEqualVariance) Description() string {
	return hypotest.TwoMeanEqualVariance.Description()
}

func (e twoMeanEqualVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	n1 := float64(p.Sample1.Size)
	n2 := float64(p.Sample2.Size)
	df := n1 + n2 - 2
	d, err := e.dist.StudentsT(df)
	if err != nil {
		return hypotest.TestResult{}, err
	}

	pooledVar := ((n1-1)*p.Sample1.Variance() + (n2-1)*p.Sample2.Variance()) / df
	se := math.Sqrt(pooledVar) * math.Sqrt(1/n1+1/n2)
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistStudentsT, DF1: df}
	return standardizedResult(p, p.Sample1.Mean-p.Sample2.Mean, se, d, ref)
}

// twoMeanUnequalVariance evaluates Welch's t test with Welch-Satterthwaite
// degrees of freedom:
//
//	w_i = s_i^2 / n_i
//	T   = (x-bar1 - x-bar2) / sqrt(w1 + w2)
//	df  = (w1+w2)^2 / (w1^2/(n1-1) + w2^2/(n2-1))
type twoMeanUnequalVariance struct {
	dist ports.DistributionProvider
}

func (twoMeanUnequalVariance) Kind() hypotest.TestKind { return hypotest.TwoMeanUnequalVariance }
func (twoMeanUnequalVariance) Description() string {
	return hypotest.TwoMeanUnequalVariance.Description()
}

func (e twoMeanUnequalVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	n1 := float64(p.Sample1.Size)
	n2 := float64(p.Sample2.Size)
	w1 := p.Sample1.Variance() / n1
	w2 := p.Sample2.Variance() / n2

	df := welchSatterthwaite(w1, w2, n1, n2)
	d, err := e.dist.StudentsT(df)
	if err != nil {
		return hypotest.TestResult{}, err
	}

	se := math.Sqrt(w1 + w2)
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistStudentsT, DF1: df}
	return standardizedResult(p, p.Sample1.Mean-p.Sample2.Mean, se, d, ref)
}

func welchSatterthwaite(w1, w2, n1, n2 float64) float64 {
	num := (w1 + w2) * (w1 + w2)
	den := w1*w1/(n1-1) + w2*w2/(n2-1)
	if den == 0 {
		return 0
	}
	return num / den
}

// twoMeanKnownVariance evaluates
// Z = (x-bar1 - x-bar2) / sqrt(sigma1^2/n1 + sigma2^2/n2).
type twoMeanKnownVariance struct {
	dist ports.DistributionProvider
}

func (twoMeanKnownVariance) Kind() hypotest.TestKind { return hypotest.TwoMeanKnownVariance }
func (twoMeanKnownVariance) Description() string {
	return hypotest.TwoMeanKnownVariance.Description()
}

func (e twoMeanKnownVariance) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	n1 := float64(p.Sample1.Size)
	n2 := float64(p.Sample2.Size)
	se := math.Sqrt(p.PopulationVariance1/n1 + p.PopulationVariance2/n2)
	ref := hypotest.ReferenceDistribution{Family: hypotest.DistNormal}
	return standardizedResult(p, p.Sample1.Mean-p.Sample2.Mean, se, e.dist.Normal(), ref)
}
