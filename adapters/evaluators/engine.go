package evaluators

import (
	"math"

	"hypocalc/domain/hypotest"
	"hypocalc/internal/errors"
	"hypocalc/ports"
)

// Engine dispatches validated parameters to the evaluator registered for the
// requested test kind. All evaluators share the same distribution provider
// and the standardized-statistic helpers below; they differ only in the
// standard-error term and reference distribution.
type Engine struct {
	evaluators map[hypotest.TestKind]ports.TestEvaluator
}

// NewEngine creates an engine with all ten test evaluators registered.
func NewEngine(dist ports.DistributionProvider) *Engine {
	e := &Engine{evaluators: make(map[hypotest.TestKind]ports.TestEvaluator)}
	e.register(
		meanKnownVariance{dist},
		meanUnknownVariance{dist},
		pairedMeans{dist},
		twoMeanEqualVariance{dist},
		twoMeanUnequalVariance{dist},
		twoMeanKnownVariance{dist},
		oneProportion{dist},
		twoProportion{dist},
		oneVariance{dist},
		twoVariance{dist},
	)
	return e
}

func (e *Engine) register(evs ...ports.TestEvaluator) {
	for _, ev := range evs {
		e.evaluators[ev.Kind()] = ev
	}
}

// Evaluate validates the parameters and runs the matching evaluator.
// Either a complete result is returned or an error; never both.
func (e *Engine) Evaluate(p hypotest.TestParameters) (hypotest.TestResult, error) {
	if p.Tail == "" {
		p.Tail = hypotest.TailTwoSided
	}
	if err := hypotest.Validate(p); err != nil {
		return hypotest.TestResult{}, err
	}
	ev, ok := e.evaluators[p.Kind]
	if !ok {
		return hypotest.TestResult{}, errors.UnknownTest(string(p.Kind))
	}
	return ev.Evaluate(p)
}

// Evaluators returns the registered evaluators in menu order.
func (e *Engine) Evaluators() []ports.TestEvaluator {
	out := make([]ports.TestEvaluator, 0, len(e.evaluators))
	for _, kind := range hypotest.AllKinds() {
		if ev, ok := e.evaluators[kind]; ok {
			out = append(out, ev)
		}
	}
	return out
}

// ============================================================================
// SHARED STATISTIC HELPERS
// ============================================================================

// standardizedResult computes statistic = effect / se and attaches critical
// values and the p-value from a symmetric reference distribution (Normal or
// Student-t). The denominator is re-checked defensively: a zero or non-finite
// standard error fails instead of propagating a non-finite statistic.
func standardizedResult(p hypotest.TestParameters, effect, se float64,
	dist ports.Distribution, ref hypotest.ReferenceDistribution) (hypotest.TestResult, error) {

	if se <= 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		return hypotest.TestResult{}, errors.DegenerateStandardError(ref.String())
	}
	stat := effect / se

	return hypotest.TestResult{
		Kind:          p.Kind,
		Statistic:     stat,
		Distribution:  ref,
		Critical:      symmetricCritical(dist, p.Alpha, p.Tail),
		PValue:        symmetricPValue(dist, stat, p.Tail),
		Alpha:         p.Alpha,
		Tail:          p.Tail,
		StandardError: se,
	}, nil
}

// symmetricCritical returns the rejection bounds for a distribution that is
// symmetric about zero.
func symmetricCritical(d ports.Distribution, alpha float64, tail hypotest.Tail) hypotest.CriticalRegion {
	switch tail {
	case hypotest.TailLeft:
		lower := d.Quantile(alpha)
		return hypotest.CriticalRegion{Lower: &lower}
	case hypotest.TailRight:
		upper := d.Quantile(1 - alpha)
		return hypotest.CriticalRegion{Upper: &upper}
	default:
		c := d.Quantile(1 - alpha/2)
		lower := -c
		return hypotest.CriticalRegion{Lower: &lower, Upper: &c}
	}
}

func symmetricPValue(d ports.Distribution, stat float64, tail hypotest.Tail) float64 {
	switch tail {
	case hypotest.TailLeft:
		return clampProbability(d.CDF(stat))
	case hypotest.TailRight:
		return clampProbability(1 - d.CDF(stat))
	default:
		return clampProbability(2 * (1 - d.CDF(math.Abs(stat))))
	}
}

// asymmetricCritical returns the rejection bounds for a strictly positive,
// asymmetric distribution (Chi-squared, F). Two-sided tests report both tail
// quantiles since the distribution has no sign symmetry to exploit.
func asymmetricCritical(d ports.Distribution, alpha float64, tail hypotest.Tail) hypotest.CriticalRegion {
	switch tail {
	case hypotest.TailLeft:
		lower := d.Quantile(alpha)
		return hypotest.CriticalRegion{Lower: &lower}
	case hypotest.TailRight:
		upper := d.Quantile(1 - alpha)
		return hypotest.CriticalRegion{Upper: &upper}
	default:
		lower := d.Quantile(alpha / 2)
		upper := d.Quantile(1 - alpha/2)
		return hypotest.CriticalRegion{Lower: &lower, Upper: &upper}
	}
}

func asymmetricPValue(d ports.Distribution, stat float64, tail hypotest.Tail) float64 {
	cdf := d.CDF(stat)
	switch tail {
	case hypotest.TailLeft:
		return clampProbability(cdf)
	case hypotest.TailRight:
		return clampProbability(1 - cdf)
	default:
		return clampProbability(2 * math.Min(cdf, 1-cdf))
	}
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
