package hypotest

import "fmt"

// ============================================================================
// TEST KINDS
// ============================================================================

// TestKind identifies one of the supported hypothesis tests.
// Chosen once per invocation and never mutated.
type TestKind string

const (
	MeanKnownVariance      TestKind = "mean_known_variance"      // Z
	MeanUnknownVariance    TestKind = "mean_unknown_variance"    // Student-t
	PairedMeans            TestKind = "paired_means"             // paired t
	TwoMeanEqualVariance   TestKind = "two_mean_equal_variance"  // pooled t
	TwoMeanUnequalVariance TestKind = "two_mean_unequal_variance" // Welch t
	TwoMeanKnownVariance   TestKind = "two_mean_known_variance"  // Z
	OneProportion          TestKind = "one_proportion"           // Z
	TwoProportion          TestKind = "two_proportion"           // Z
	OneVariance            TestKind = "one_variance"             // Chi-squared
	TwoVariance            TestKind = "two_variance"             // F
)

// AllKinds returns the supported test kinds in menu order.
func AllKinds() []TestKind {
	return []TestKind{
		MeanKnownVariance,
		MeanUnknownVariance,
		PairedMeans,
		TwoMeanEqualVariance,
		TwoMeanUnequalVariance,
		TwoMeanKnownVariance,
		OneProportion,
		TwoProportion,
		OneVariance,
		TwoVariance,
	}
}

// Valid reports whether k is a supported test kind.
func (k TestKind) Valid() bool {
	switch k {
	case MeanKnownVariance, MeanUnknownVariance, PairedMeans,
		TwoMeanEqualVariance, TwoMeanUnequalVariance, TwoMeanKnownVariance,
		OneProportion, TwoProportion, OneVariance, TwoVariance:
		return true
	}
	return false
}

// TwoSample reports whether the test compares two independent samples.
func (k TestKind) TwoSample() bool {
	switch k {
	case TwoMeanEqualVariance, TwoMeanUnequalVariance, TwoMeanKnownVariance,
		TwoProportion, TwoVariance:
		return true
	}
	return false
}

// ProportionTest reports whether the test operates on success counts
// rather than sample summaries.
func (k TestKind) ProportionTest() bool {
	return k == OneProportion || k == TwoProportion
}

// UsesSampleStdDev reports whether the test's statistic consumes a sample
// (n-1 divisor) standard deviation, which requires size >= 2.
func (k TestKind) UsesSampleStdDev() bool {
	switch k {
	case MeanUnknownVariance, PairedMeans, TwoMeanEqualVariance,
		TwoMeanUnequalVariance, OneVariance, TwoVariance:
		return true
	}
	return false
}

// Description returns a human-readable menu label.
func (k TestKind) Description() string {
	switch k {
	case MeanKnownVariance:
		return "Mean, known population variance (Z test)"
	case MeanUnknownVariance:
		return "Mean, unknown variance (t test)"
	case PairedMeans:
		return "Paired samples (paired t test)"
	case TwoMeanEqualVariance:
		return "Difference of means, equal unknown variances (pooled t test)"
	case TwoMeanUnequalVariance:
		return "Difference of means, unequal unknown variances (Welch t test)"
	case TwoMeanKnownVariance:
		return "Difference of means, known population variances (Z test)"
	case OneProportion:
		return "Proportion (Z test)"
	case TwoProportion:
		return "Difference of proportions (Z test)"
	case OneVariance:
		return "Variance (Chi-squared test)"
	case TwoVariance:
		return "Ratio of variances (F test)"
	default:
		return string(k)
	}
}

// ============================================================================
// TAIL CONFIGURATION
// ============================================================================

// Tail selects the rejection-region layout for critical values and p-values.
type Tail string

const (
	TailTwoSided Tail = "two_sided"
	TailLeft     Tail = "left"
	TailRight    Tail = "right"
)

// Valid reports whether t is a supported tail configuration.
func (t Tail) Valid() bool {
	return t == TailTwoSided || t == TailLeft || t == TailRight
}

// ============================================================================
// CANONICAL PARAMETERS
// ============================================================================

// SampleSummary is the canonical per-sample parameter set: mean, sample
// standard deviation (n-1 divisor) and size. For tests that never touch the
// sample standard deviation, StdDev may be zero.
type SampleSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Size   int     `json:"size"`
}

// Variance returns the sample variance implied by the summary.
func (s SampleSummary) Variance() float64 {
	return s.StdDev * s.StdDev
}

// ProportionObservation carries an observed proportion together with the
// trial count it came from. FromCounts marks observations entered as raw
// success counts, which enables the count-vs-size consistency check.
type ProportionObservation struct {
	Proportion float64 `json:"proportion"`
	Successes  int     `json:"successes"`
	Size       int     `json:"size"`
	FromCounts bool    `json:"from_counts"`
}

// NewProportionFromCounts builds an observation from a success count.
func NewProportionFromCounts(successes, size int) ProportionObservation {
	p := 0.0
	if size > 0 {
		p = float64(successes) / float64(size)
	}
	return ProportionObservation{Proportion: p, Successes: successes, Size: size, FromCounts: true}
}

// NewProportionDirect builds an observation from a directly entered p-hat.
func NewProportionDirect(proportion float64, size int) ProportionObservation {
	return ProportionObservation{Proportion: proportion, Size: size}
}

// TestParameters is the validated, per-kind aggregate an evaluator consumes.
// Only the fields relevant to Kind are meaningful; the validator decides
// which ones those are.
type TestParameters struct {
	Kind  TestKind `json:"kind"`
	Alpha float64  `json:"alpha"`
	Tail  Tail     `json:"tail"`

	Sample1 SampleSummary `json:"sample1"`
	Sample2 SampleSummary `json:"sample2"`

	// Location tests
	Mu0   float64 `json:"mu0"`   // hypothesized mean
	Delta float64 `json:"delta"` // hypothesized paired-difference mean

	// Known-variance Z tests
	PopulationVariance1 float64 `json:"population_variance1"`
	PopulationVariance2 float64 `json:"population_variance2"`

	// Proportion tests
	P0    float64               `json:"p0"`
	Prop1 ProportionObservation `json:"prop1"`
	Prop2 ProportionObservation `json:"prop2"`

	// One-variance test
	SigmaSq0 float64 `json:"sigma_sq0"` // hypothesized population variance
}

// ============================================================================
// RESULTS
// ============================================================================

// DistributionFamily tags the reference distribution of a test statistic.
type DistributionFamily string

const (
	DistNormal     DistributionFamily = "normal"
	DistStudentsT  DistributionFamily = "students_t"
	DistChiSquared DistributionFamily = "chi_squared"
	DistF          DistributionFamily = "f"
)

// ReferenceDistribution is a distribution family plus its shape parameters.
// DF1 holds the single degrees-of-freedom value for t and Chi-squared
// (possibly non-integer for Welch); F uses both DF1 and DF2.
type ReferenceDistribution struct {
	Family DistributionFamily `json:"family"`
	DF1    float64            `json:"df1,omitempty"`
	DF2    float64            `json:"df2,omitempty"`
}

func (d ReferenceDistribution) String() string {
	switch d.Family {
	case DistNormal:
		return "N(0,1)"
	case DistStudentsT:
		return fmt.Sprintf("t(df=%g)", d.DF1)
	case DistChiSquared:
		return fmt.Sprintf("chi2(df=%g)", d.DF1)
	case DistF:
		return fmt.Sprintf("F(df1=%g, df2=%g)", d.DF1, d.DF2)
	default:
		return string(d.Family)
	}
}

// CriticalRegion holds the critical value(s) at the supplied alpha.
// Two-sided tests set both bounds (asymmetric for Chi-squared/F); one-sided
// tests set only the bound on the rejection side.
type CriticalRegion struct {
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
}

// TestResult is the immutable outcome of one evaluation. No accept/reject
// verdict is ever attached; interpretation is left to the reader.
type TestResult struct {
	Kind          TestKind              `json:"kind"`
	Statistic     float64               `json:"statistic"`
	Distribution  ReferenceDistribution `json:"distribution"`
	Critical      CriticalRegion        `json:"critical"`
	PValue        float64               `json:"p_value"`
	Alpha         float64               `json:"alpha"`
	Tail          Tail                  `json:"tail"`
	StandardError float64               `json:"standard_error,omitempty"`
}
