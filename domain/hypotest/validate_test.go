package hypotest

import (
	"math"
	"testing"

	"hypocalc/internal/errors"
)

// validParams returns a parameter set that passes Validate for the given kind.
func validParams(kind TestKind) TestParameters {
	p := TestParameters{Kind: kind, Alpha: 0.05, Tail: TailTwoSided}

	switch kind {
	case MeanKnownVariance:
		p.Sample1 = SampleSummary{Mean: 10, Size: 30}
		p.PopulationVariance1 = 4
		p.Mu0 = 9.5
	case MeanUnknownVariance:
		p.Sample1 = SampleSummary{Mean: 15.2, StdDev: 2.3, Size: 25}
		p.Mu0 = 14.5
	case PairedMeans:
		p.Sample1 = SampleSummary{Mean: 1.2, StdDev: 0.8, Size: 12}
	case TwoMeanEqualVariance:
		p.Sample1 = SampleSummary{Mean: 20, StdDev: 3, Size: 18}
		p.Sample2 = SampleSummary{Mean: 18.5, StdDev: 2.8, Size: 22}
	case TwoMeanUnequalVariance:
		p.Sample1 = SampleSummary{Mean: 20, StdDev: 2, Size: 18}
		p.Sample2 = SampleSummary{Mean: 18.5, StdDev: 3.4, Size: 16}
	case TwoMeanKnownVariance:
		p.Sample1 = SampleSummary{Mean: 20, Size: 30}
		p.Sample2 = SampleSummary{Mean: 19, Size: 35}
		p.PopulationVariance1 = 4
		p.PopulationVariance2 = 5
	case OneProportion:
		p.Prop1 = NewProportionFromCounts(40, 100)
		p.P0 = 0.35
	case TwoProportion:
		p.Prop1 = NewProportionFromCounts(40, 100)
		p.Prop2 = NewProportionFromCounts(30, 120)
	case OneVariance:
		p.Sample1 = SampleSummary{Mean: 5, StdDev: 2.5, Size: 20}
		p.SigmaSq0 = 4
	case TwoVariance:
		p.Sample1 = SampleSummary{StdDev: 3, Size: 16}
		p.Sample2 = SampleSummary{StdDev: 2, Size: 21}
	}
	return p
}

func TestValidateAcceptsCanonicalParameters(t *testing.T) {
	for _, kind := range AllKinds() {
		if err := Validate(validParams(kind)); err != nil {
			t.Errorf("%s: unexpected error: %v", kind, err)
		}
	}
}

func TestValidateRejectsAlphaBoundaries(t *testing.T) {
	for _, kind := range AllKinds() {
		for _, alpha := range []float64{0, 1, -0.01, 1.5} {
			p := validParams(kind)
			p.Alpha = alpha
			err := Validate(p)
			if !errors.IsCode(err, errors.CodeInvalidSignificanceLevel) {
				t.Errorf("%s alpha=%g: expected INVALID_SIGNIFICANCE_LEVEL, got %v", kind, alpha, err)
			}
		}
	}
}

func TestValidateUnknownKind(t *testing.T) {
	err := Validate(TestParameters{Kind: "coin_flip", Alpha: 0.05})
	if !errors.IsCode(err, errors.CodeUnknownTest) {
		t.Fatalf("expected UNKNOWN_TEST, got %v", err)
	}
}

// Size violations must be reported before any later check, so a parameter set
// with several problems still names the sample size first.
func TestValidateOrderSizeBeforeAlpha(t *testing.T) {
	p := validParams(MeanUnknownVariance)
	p.Sample1.Size = 1
	p.Alpha = 0
	err := Validate(p)
	if !errors.IsCode(err, errors.CodeInsufficientSample) {
		t.Fatalf("expected INSUFFICIENT_SAMPLE, got %v", err)
	}
}

func TestValidateOrderSpreadBeforeAlpha(t *testing.T) {
	p := validParams(MeanUnknownVariance)
	p.Sample1.StdDev = 0
	p.Alpha = 0
	err := Validate(p)
	if !errors.IsCode(err, errors.CodeInvalidVariance) {
		t.Fatalf("expected INVALID_VARIANCE, got %v", err)
	}
}

func TestValidateSampleSizes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TestParameters)
		kind   TestKind
	}{
		{"single observation where stddev needed", func(p *TestParameters) { p.Sample1.Size = 1 }, MeanUnknownVariance},
		{"zero sized sample", func(p *TestParameters) { p.Sample1.Size = 0 }, MeanKnownVariance},
		{"second sample too small", func(p *TestParameters) { p.Sample2.Size = 1 }, TwoVariance},
		{"zero trials in proportion test", func(p *TestParameters) { p.Prop1.Size = 0 }, OneProportion},
		{"zero trials in second proportion", func(p *TestParameters) { p.Prop2.Size = 0 }, TwoProportion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams(tt.kind)
			tt.mutate(&p)
			if err := Validate(p); !errors.IsCode(err, errors.CodeInsufficientSample) {
				t.Fatalf("expected INSUFFICIENT_SAMPLE, got %v", err)
			}
		})
	}
}

func TestValidateSpread(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TestParameters)
		kind   TestKind
	}{
		{"zero sample stddev", func(p *TestParameters) { p.Sample1.StdDev = 0 }, OneVariance},
		{"negative sample stddev", func(p *TestParameters) { p.Sample2.StdDev = -1 }, TwoVariance},
		{"zero population variance", func(p *TestParameters) { p.PopulationVariance1 = 0 }, MeanKnownVariance},
		{"zero second population variance", func(p *TestParameters) { p.PopulationVariance2 = 0 }, TwoMeanKnownVariance},
		{"zero hypothesized variance", func(p *TestParameters) { p.SigmaSq0 = 0 }, OneVariance},
		{"NaN stddev from sqrt of negative variance", func(p *TestParameters) { p.Sample1.StdDev = math.Sqrt(-4) }, OneVariance},
		{"NaN second stddev", func(p *TestParameters) { p.Sample2.StdDev = math.NaN() }, TwoVariance},
		{"infinite stddev", func(p *TestParameters) { p.Sample1.StdDev = math.Inf(1) }, MeanUnknownVariance},
		{"NaN population variance", func(p *TestParameters) { p.PopulationVariance1 = math.NaN() }, MeanKnownVariance},
		{"infinite hypothesized variance", func(p *TestParameters) { p.SigmaSq0 = math.Inf(1) }, OneVariance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams(tt.kind)
			tt.mutate(&p)
			if err := Validate(p); !errors.IsCode(err, errors.CodeInvalidVariance) {
				t.Fatalf("expected INVALID_VARIANCE, got %v", err)
			}
		})
	}
}

func TestValidateProportionRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TestParameters)
		kind   TestKind
	}{
		{"p0 zero", func(p *TestParameters) { p.P0 = 0 }, OneProportion},
		{"p0 above one", func(p *TestParameters) { p.P0 = 1.2 }, OneProportion},
		{"observed proportion above one", func(p *TestParameters) { p.Prop1 = NewProportionDirect(1.3, 50) }, OneProportion},
		{"negative observed proportion", func(p *TestParameters) { p.Prop2 = NewProportionDirect(-0.1, 50) }, TwoProportion},
		{"successes exceed size", func(p *TestParameters) { p.Prop1 = NewProportionFromCounts(120, 100) }, OneProportion},
		{"negative successes", func(p *TestParameters) { p.Prop1 = ProportionObservation{Successes: -3, Size: 100, FromCounts: true} }, OneProportion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams(tt.kind)
			tt.mutate(&p)
			if err := Validate(p); !errors.IsCode(err, errors.CodeInvalidProportion) {
				t.Fatalf("expected INVALID_PROPORTION, got %v", err)
			}
		})
	}
}

// p0 = 1 is admissible here; the evaluator reports the degenerate standard
// error it produces.
func TestValidateAllowsBoundaryP0(t *testing.T) {
	p := validParams(OneProportion)
	p.P0 = 1
	if err := Validate(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTail(t *testing.T) {
	p := validParams(MeanUnknownVariance)
	p.Tail = "both_ways"
	if err := Validate(p); !errors.IsCode(err, errors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}

	// An unset tail is fine; the engine defaults it.
	p.Tail = ""
	if err := Validate(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
