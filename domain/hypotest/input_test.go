package hypotest

import (
	"math"
	"testing"

	"hypocalc/internal/errors"
)

func TestNormalizeRawSample(t *testing.T) {
	obs := []float64{10, 12, 9, 11, 13}
	in := RawSampleInput(obs)

	summary, err := in.Normalize("sample 1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Direct formula computation: mean and Bessel-corrected stddev.
	wantMean := 11.0
	sumSq := 0.0
	for _, v := range obs {
		d := v - wantMean
		sumSq += d * d
	}
	wantSD := math.Sqrt(sumSq / float64(len(obs)-1))

	if rel := math.Abs(summary.Mean-wantMean) / wantMean; rel > 1e-9 {
		t.Errorf("mean = %v, want %v", summary.Mean, wantMean)
	}
	if rel := math.Abs(summary.StdDev-wantSD) / wantSD; rel > 1e-9 {
		t.Errorf("stddev = %v, want %v", summary.StdDev, wantSD)
	}
	if summary.Size != len(obs) {
		t.Errorf("size = %d, want %d", summary.Size, len(obs))
	}
}

func TestNormalizeEmptySample(t *testing.T) {
	in := RawSampleInput(nil)
	_, err := in.Normalize("sample 1", false)
	if !errors.IsCode(err, errors.CodeEmptySample) {
		t.Fatalf("expected EMPTY_SAMPLE, got %v", err)
	}
}

func TestNormalizeSingleObservation(t *testing.T) {
	in := RawSampleInput([]float64{42})

	// A single observation cannot yield a sample standard deviation.
	if _, err := in.Normalize("sample 1", true); !errors.IsCode(err, errors.CodeInsufficientSample) {
		t.Fatalf("expected INSUFFICIENT_SAMPLE, got %v", err)
	}

	// But it is a perfectly fine mean for tests that never touch stddev.
	summary, err := in.Normalize("sample 1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Mean != 42 || summary.Size != 1 {
		t.Errorf("summary = %+v, want mean 42 size 1", summary)
	}
}

func TestNormalizeSummaryPassThrough(t *testing.T) {
	in := SummaryInput(15.2, 2.3, 25)
	summary, err := in.Normalize("sample 1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Mean != 15.2 || summary.StdDev != 2.3 || summary.Size != 25 {
		t.Errorf("summary mode must not recompute values, got %+v", summary)
	}
}

func TestNormalizeDoesNotMutateObservations(t *testing.T) {
	obs := []float64{3, 1, 2}
	in := RawSampleInput(obs)
	if _, err := in.Normalize("sample 1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs[0] != 3 || obs[1] != 1 || obs[2] != 2 {
		t.Errorf("observation order changed: %v", obs)
	}
}

func TestNormalizeUnknownMode(t *testing.T) {
	in := SampleInput{Mode: "guess"}
	if _, err := in.Normalize("sample 1", false); !errors.IsCode(err, errors.CodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
