package hypotest

import (
	"fmt"
	"math"

	"hypocalc/internal/errors"
)

// Validate checks the parameters against the mathematical preconditions of
// p.Kind. It is purely functional: nothing is corrected or reformatted, and
// the first violated precondition wins. Checks run in a fixed order:
//
//	sample sizes -> variance/stddev positivity -> significance level range
//	-> tail configuration -> proportion/probability range
//	-> count-vs-size consistency
func Validate(p TestParameters) error {
	if !p.Kind.Valid() {
		return errors.UnknownTest(string(p.Kind))
	}

	if err := validateSizes(p); err != nil {
		return err
	}
	if err := validateSpread(p); err != nil {
		return err
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return errors.InvalidSignificanceLevel(p.Alpha)
	}
	if p.Tail != "" && !p.Tail.Valid() {
		return errors.InvalidInput("unknown tail configuration " + string(p.Tail))
	}
	if err := validateProportions(p); err != nil {
		return err
	}
	return validateCounts(p)
}

func validateSizes(p TestParameters) error {
	minSize := 1
	if p.Kind.UsesSampleStdDev() {
		minSize = 2
	}

	if p.Kind.ProportionTest() {
		if p.Prop1.Size < 1 {
			return errors.InsufficientSample("sample 1", p.Prop1.Size, 1)
		}
		if p.Kind.TwoSample() && p.Prop2.Size < 1 {
			return errors.InsufficientSample("sample 2", p.Prop2.Size, 1)
		}
		return nil
	}

	if p.Sample1.Size < minSize {
		return errors.InsufficientSample("sample 1", p.Sample1.Size, minSize)
	}
	if p.Kind.TwoSample() && p.Sample2.Size < minSize {
		return errors.InsufficientSample("sample 2", p.Sample2.Size, minSize)
	}
	return nil
}

func validateSpread(p TestParameters) error {
	if p.Kind.UsesSampleStdDev() {
		if !positiveFinite(p.Sample1.StdDev) {
			return errors.InvalidVariance("sample 1 stddev", p.Sample1.StdDev)
		}
		if p.Kind.TwoSample() && !positiveFinite(p.Sample2.StdDev) {
			return errors.InvalidVariance("sample 2 stddev", p.Sample2.StdDev)
		}
	}

	switch p.Kind {
	case MeanKnownVariance:
		if !positiveFinite(p.PopulationVariance1) {
			return errors.InvalidVariance("population variance", p.PopulationVariance1)
		}
	case TwoMeanKnownVariance:
		if !positiveFinite(p.PopulationVariance1) {
			return errors.InvalidVariance("population variance 1", p.PopulationVariance1)
		}
		if !positiveFinite(p.PopulationVariance2) {
			return errors.InvalidVariance("population variance 2", p.PopulationVariance2)
		}
	case OneVariance:
		if !positiveFinite(p.SigmaSq0) {
			return errors.InvalidVariance("hypothesized variance", p.SigmaSq0)
		}
	}
	return nil
}

// positiveFinite reports whether v is a usable spread value. NaN fails every
// comparison, so v > 0 alone would let it through.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func validateProportions(p TestParameters) error {
	if !p.Kind.ProportionTest() {
		return nil
	}

	if p.Kind == OneProportion {
		if p.P0 <= 0 || p.P0 > 1 {
			return errors.InvalidProportion("hypothesized proportion",
				fmt.Sprintf("must satisfy 0 < p0 <= 1, got %g", p.P0))
		}
	}

	if p.Prop1.Proportion < 0 || p.Prop1.Proportion > 1 {
		return errors.InvalidProportion("sample 1 proportion",
			fmt.Sprintf("must lie in [0, 1], got %g", p.Prop1.Proportion))
	}
	if p.Kind.TwoSample() {
		if p.Prop2.Proportion < 0 || p.Prop2.Proportion > 1 {
			return errors.InvalidProportion("sample 2 proportion",
				fmt.Sprintf("must lie in [0, 1], got %g", p.Prop2.Proportion))
		}
	}
	return nil
}

func validateCounts(p TestParameters) error {
	if !p.Kind.ProportionTest() {
		return nil
	}
	if err := validateCountObservation("sample 1", p.Prop1); err != nil {
		return err
	}
	if p.Kind.TwoSample() {
		return validateCountObservation("sample 2", p.Prop2)
	}
	return nil
}

func validateCountObservation(field string, obs ProportionObservation) error {
	if !obs.FromCounts {
		return nil
	}
	if obs.Successes < 0 {
		return errors.InvalidProportion(field,
			fmt.Sprintf("success count must be non-negative, got %d", obs.Successes))
	}
	if obs.Successes > obs.Size {
		return errors.InvalidProportion(field,
			fmt.Sprintf("success count %d exceeds sample size %d", obs.Successes, obs.Size))
	}
	return nil
}
