package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"hypocalc/app"
	"hypocalc/domain/hypotest"
	"hypocalc/internal/config"
)

// runInteractive drives the console menu loop: pick a test, enter inputs,
// read the computed statistics, repeat. All state is per-iteration; the
// engine underneath stays stateless.
func runInteractive(calc *app.CalcService, cfg *config.Config) error {
	p := &prompter{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	kinds := calc.Kinds()

	fmt.Fprintln(p.out, "hypocalc — hypothesis test statistics calculator")
	fmt.Fprintln(p.out, "Computed metrics only; no accept/reject interpretation.")

	for {
		fmt.Fprintln(p.out, "\nAvailable tests:")
		for i, info := range kinds {
			fmt.Fprintf(p.out, "  [%d] %s\n", i+1, info.Description)
		}

		choice, err := p.line(fmt.Sprintf("\nSelect a test [1-%d, q to quit]: ", len(kinds)))
		if err != nil {
			return nil // EOF ends the session
		}
		if strings.EqualFold(choice, "q") {
			return nil
		}
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(kinds) {
			fmt.Fprintln(p.out, "Invalid selection.")
			continue
		}

		req, err := p.buildRequest(kinds[idx-1].Kind, cfg)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintf(p.out, "Input error: %v\n", err)
			continue
		}

		result, err := calc.Evaluate(req)
		if err != nil {
			fmt.Fprintf(p.out, "Error: %v\n", err)
			continue
		}
		printResult(p.out, result)

		again, err := p.line("\nAnother calculation? [y/N]: ")
		if err != nil || !strings.EqualFold(again, "y") {
			return nil
		}
	}
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) float(label string) (float64, error) {
	s, err := p.line(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return v, nil
}

func (p *prompter) floatDefault(label string, def float64) (float64, error) {
	s, err := p.line(fmt.Sprintf("%s [default %g]: ", label, def))
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	return v, nil
}

func (p *prompter) int(label string) (int, error) {
	s, err := p.line(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", s)
	}
	return v, nil
}

// observations accepts inline values or an @file reference.
func (p *prompter) observations(label string) ([]float64, error) {
	s, err := p.line(label)
	if err != nil {
		return nil, err
	}
	return parseObservationSpec(s)
}

// sampleInput asks for one sample as either summary values or a full raw
// sample. askStdDev controls whether summary mode prompts for a standard
// deviation (tests with known population variance take it separately).
func (p *prompter) sampleInput(name string, askStdDev bool) (*hypotest.SampleInput, error) {
	mode, err := p.line(fmt.Sprintf("%s — [1] summary values, [2] full sample: ", name))
	if err != nil {
		return nil, err
	}

	if mode == "2" {
		obs, err := p.observations(fmt.Sprintf("%s values (space separated, or @file[:sheet[:column]]): ", name))
		if err != nil {
			return nil, err
		}
		in := hypotest.RawSampleInput(obs)
		return &in, nil
	}

	mean, err := p.float(fmt.Sprintf("%s mean: ", name))
	if err != nil {
		return nil, err
	}
	stddev := 0.0
	if askStdDev {
		if stddev, err = p.float(fmt.Sprintf("%s standard deviation: ", name)); err != nil {
			return nil, err
		}
	}
	size, err := p.int(fmt.Sprintf("%s size: ", name))
	if err != nil {
		return nil, err
	}
	in := hypotest.SummaryInput(mean, stddev, size)
	return &in, nil
}

// varianceSampleInput asks for a sample whose summary form is (variance, n);
// the mean is irrelevant for dispersion tests.
func (p *prompter) varianceSampleInput(name string) (*hypotest.SampleInput, error) {
	mode, err := p.line(fmt.Sprintf("%s — [1] summary values, [2] full sample: ", name))
	if err != nil {
		return nil, err
	}

	if mode == "2" {
		obs, err := p.observations(fmt.Sprintf("%s values (space separated, or @file[:sheet[:column]]): ", name))
		if err != nil {
			return nil, err
		}
		in := hypotest.RawSampleInput(obs)
		return &in, nil
	}

	variance, err := p.float(fmt.Sprintf("%s variance (s²): ", name))
	if err != nil {
		return nil, err
	}
	if variance <= 0 {
		return nil, fmt.Errorf("variance must be strictly positive, got %g", variance)
	}
	size, err := p.int(fmt.Sprintf("%s size: ", name))
	if err != nil {
		return nil, err
	}
	in := hypotest.SummaryInput(0, math.Sqrt(variance), size)
	return &in, nil
}

func (p *prompter) proportionInput(name string) (*hypotest.ProportionObservation, error) {
	mode, err := p.line(fmt.Sprintf("%s — [1] observed proportion, [2] success count: ", name))
	if err != nil {
		return nil, err
	}

	if mode == "2" {
		successes, err := p.int(fmt.Sprintf("%s success count: ", name))
		if err != nil {
			return nil, err
		}
		size, err := p.int(fmt.Sprintf("%s size: ", name))
		if err != nil {
			return nil, err
		}
		obs := hypotest.NewProportionFromCounts(successes, size)
		return &obs, nil
	}

	phat, err := p.float(fmt.Sprintf("%s observed proportion: ", name))
	if err != nil {
		return nil, err
	}
	size, err := p.int(fmt.Sprintf("%s size: ", name))
	if err != nil {
		return nil, err
	}
	obs := hypotest.NewProportionDirect(phat, size)
	return &obs, nil
}

func (p *prompter) tail(cfg *config.Config) (hypotest.Tail, error) {
	if !cfg.Calc.OneSidedEnabled {
		return hypotest.TailTwoSided, nil
	}
	s, err := p.line("Tails — [1] two-sided, [2] right, [3] left [default 1]: ")
	if err != nil {
		return "", err
	}
	switch s {
	case "2":
		return hypotest.TailRight, nil
	case "3":
		return hypotest.TailLeft, nil
	default:
		return hypotest.TailTwoSided, nil
	}
}

func (p *prompter) buildRequest(kind hypotest.TestKind, cfg *config.Config) (app.CalcRequest, error) {
	req := app.CalcRequest{Kind: kind}
	var err error

	switch kind {
	case hypotest.MeanKnownVariance:
		if req.Input1, err = p.sampleInput("Sample", false); err != nil {
			return req, err
		}
		if req.SigmaSq1, err = p.float("Known population variance (σ²): "); err != nil {
			return req, err
		}
		if req.Mu0, err = p.float("Hypothesized mean (μ₀): "); err != nil {
			return req, err
		}

	case hypotest.MeanUnknownVariance:
		if req.Input1, err = p.sampleInput("Sample", true); err != nil {
			return req, err
		}
		if req.Mu0, err = p.float("Hypothesized mean (μ₀): "); err != nil {
			return req, err
		}

	case hypotest.PairedMeans:
		if req.Input1, err = p.sampleInput("Differences", true); err != nil {
			return req, err
		}
		if req.Delta, err = p.floatDefault("Hypothesized difference (Δ)", 0); err != nil {
			return req, err
		}

	case hypotest.TwoMeanEqualVariance, hypotest.TwoMeanUnequalVariance:
		if req.Input1, err = p.sampleInput("Sample 1", true); err != nil {
			return req, err
		}
		if req.Input2, err = p.sampleInput("Sample 2", true); err != nil {
			return req, err
		}

	case hypotest.TwoMeanKnownVariance:
		if req.Input1, err = p.sampleInput("Sample 1", false); err != nil {
			return req, err
		}
		if req.SigmaSq1, err = p.float("Known population variance 1 (σ₁²): "); err != nil {
			return req, err
		}
		if req.Input2, err = p.sampleInput("Sample 2", false); err != nil {
			return req, err
		}
		if req.SigmaSq2, err = p.float("Known population variance 2 (σ₂²): "); err != nil {
			return req, err
		}

	case hypotest.OneProportion:
		if req.Prop1, err = p.proportionInput("Sample"); err != nil {
			return req, err
		}
		if req.P0, err = p.float("Hypothesized proportion (p₀): "); err != nil {
			return req, err
		}

	case hypotest.TwoProportion:
		if req.Prop1, err = p.proportionInput("Sample 1"); err != nil {
			return req, err
		}
		if req.Prop2, err = p.proportionInput("Sample 2"); err != nil {
			return req, err
		}

	case hypotest.OneVariance:
		if req.Input1, err = p.varianceSampleInput("Sample"); err != nil {
			return req, err
		}
		if req.SigmaSq0, err = p.float("Hypothesized variance (σ₀²): "); err != nil {
			return req, err
		}

	case hypotest.TwoVariance:
		if req.Input1, err = p.varianceSampleInput("Sample 1"); err != nil {
			return req, err
		}
		if req.Input2, err = p.varianceSampleInput("Sample 2"); err != nil {
			return req, err
		}
	}

	if req.Alpha, err = p.floatDefault("Significance level (α)", cfg.Calc.DefaultAlpha); err != nil {
		return req, err
	}
	if req.Tail, err = p.tail(cfg); err != nil {
		return req, err
	}
	return req, nil
}

func printResult(out io.Writer, r hypotest.TestResult) {
	fmt.Fprintln(out, "\n--- RESULT ---")
	fmt.Fprintf(out, "Test:                   %s\n", r.Kind.Description())
	fmt.Fprintf(out, "Statistic:              %.6f\n", r.Statistic)
	fmt.Fprintf(out, "Reference distribution: %s\n", r.Distribution)
	if r.StandardError > 0 {
		fmt.Fprintf(out, "Standard error:         %.6f\n", r.StandardError)
	}
	switch {
	case r.Critical.Lower != nil && r.Critical.Upper != nil:
		fmt.Fprintf(out, "Critical values:        %.6f, %.6f\n", *r.Critical.Lower, *r.Critical.Upper)
	case r.Critical.Upper != nil:
		fmt.Fprintf(out, "Critical value:         %.6f\n", *r.Critical.Upper)
	case r.Critical.Lower != nil:
		fmt.Fprintf(out, "Critical value:         %.6f\n", *r.Critical.Lower)
	}
	fmt.Fprintf(out, "P-value:                %.6f\n", r.PValue)
	fmt.Fprintf(out, "Alpha:                  %g (%s)\n", r.Alpha, r.Tail)
}
