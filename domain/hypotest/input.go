package hypotest

import (
	"github.com/montanaflynn/stats"

	"hypocalc/internal/errors"
)

// InputMode distinguishes the two accepted input shapes.
type InputMode string

const (
	InputSummary   InputMode = "summary"
	InputRawSample InputMode = "raw_sample"
)

// SampleInput is the two-variant input type resolved once at the normalizer
// boundary: either user-entered summary values or a raw observation sequence.
// Downstream code only ever sees SampleSummary.
type SampleInput struct {
	Mode         InputMode     `json:"mode"`
	Summary      SampleSummary `json:"summary,omitempty"`
	Observations []float64     `json:"observations,omitempty"`
}

// SummaryInput builds a summary-mode input from directly supplied values.
func SummaryInput(mean, stddev float64, size int) SampleInput {
	return SampleInput{
		Mode:    InputSummary,
		Summary: SampleSummary{Mean: mean, StdDev: stddev, Size: size},
	}
}

// RawSampleInput builds a raw-mode input from an observation sequence.
func RawSampleInput(observations []float64) SampleInput {
	return SampleInput{Mode: InputRawSample, Observations: observations}
}

// Normalize converts the input into a canonical SampleSummary. Summary mode
// is a pass-through; raw mode computes the arithmetic mean and, when
// needStdDev is set, the Bessel-corrected (n-1) sample standard deviation.
// The observation slice is never mutated.
//
// The field argument names the sample in error messages ("sample 1" etc.).
func (in SampleInput) Normalize(field string, needStdDev bool) (SampleSummary, error) {
	switch in.Mode {
	case InputSummary:
		return in.Summary, nil
	case InputRawSample:
		return normalizeRaw(field, in.Observations, needStdDev)
	default:
		return SampleSummary{}, errors.InvalidInput("unknown input mode " + string(in.Mode))
	}
}

func normalizeRaw(field string, obs []float64, needStdDev bool) (SampleSummary, error) {
	n := len(obs)
	if n == 0 {
		return SampleSummary{}, errors.EmptySample(field)
	}
	if needStdDev && n < 2 {
		return SampleSummary{}, errors.InsufficientSample(field, n, 2)
	}

	mean, err := stats.Mean(obs)
	if err != nil {
		return SampleSummary{}, errors.Wrapf(err, "%s: mean computation failed", field)
	}

	summary := SampleSummary{Mean: mean, Size: n}
	if n >= 2 {
		sd, err := stats.StandardDeviationSample(obs)
		if err != nil {
			return SampleSummary{}, errors.Wrapf(err, "%s: stddev computation failed", field)
		}
		summary.StdDev = sd
	}
	return summary, nil
}
