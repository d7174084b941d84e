package app

import (
	"hypocalc/adapters/evaluators"
	"hypocalc/domain/hypotest"
	"hypocalc/internal"
	"hypocalc/internal/errors"
)

// CalcRequest is the transient, per-invocation input to the calculator.
// Only the fields relevant to Kind need to be populated; missing required
// fields fail with INVALID_INPUT before validation runs.
type CalcRequest struct {
	Kind  hypotest.TestKind
	Alpha float64
	Tail  hypotest.Tail

	// Mean and variance tests
	Input1 *hypotest.SampleInput
	Input2 *hypotest.SampleInput

	Mu0      float64 // hypothesized mean
	Delta    float64 // hypothesized paired-difference mean
	SigmaSq1 float64 // known population variance, sample 1
	SigmaSq2 float64 // known population variance, sample 2
	SigmaSq0 float64 // hypothesized variance (one-variance test)

	// Proportion tests
	P0    float64
	Prop1 *hypotest.ProportionObservation
	Prop2 *hypotest.ProportionObservation
}

// KindInfo describes one menu entry of the calculator.
type KindInfo struct {
	Kind        hypotest.TestKind `json:"kind"`
	Description string            `json:"description"`
	TwoSample   bool              `json:"two_sample"`
}

// CalcService wires the input normalizer, validator and evaluator engine
// into the single entry point the console and HTTP surfaces call. It holds
// no per-request state.
type CalcService struct {
	engine *evaluators.Engine
	log    *internal.Logger
}

// NewCalcService creates a new calculator service
func NewCalcService(engine *evaluators.Engine, logger *internal.Logger) *CalcService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &CalcService{engine: engine, log: logger}
}

// Kinds returns the test catalogue in menu order.
func (s *CalcService) Kinds() []KindInfo {
	evs := s.engine.Evaluators()
	out := make([]KindInfo, 0, len(evs))
	for _, ev := range evs {
		out = append(out, KindInfo{
			Kind:        ev.Kind(),
			Description: ev.Description(),
			TwoSample:   ev.Kind().TwoSample(),
		})
	}
	return out
}

// Evaluate normalizes the request into canonical parameters and runs the
// matching evaluator. Either a complete result or an error is returned.
func (s *CalcService) Evaluate(req CalcRequest) (hypotest.TestResult, error) {
	params, err := s.buildParameters(req)
	if err != nil {
		s.log.Debug("request rejected during normalization: %v", err)
		return hypotest.TestResult{}, err
	}

	result, err := s.engine.Evaluate(params)
	if err != nil {
		s.log.Debug("evaluation failed for %s: %v", req.Kind, err)
		return hypotest.TestResult{}, err
	}

	s.log.Info("evaluated %s: statistic=%.6f dist=%s p=%.6f",
		result.Kind, result.Statistic, result.Distribution, result.PValue)
	return result, nil
}

func (s *CalcService) buildParameters(req CalcRequest) (hypotest.TestParameters, error) {
	params := hypotest.TestParameters{
		Kind:     req.Kind,
		Alpha:    req.Alpha,
		Tail:     req.Tail,
		Mu0:      req.Mu0,
		Delta:    req.Delta,
		SigmaSq0: req.SigmaSq0,
		P0:       req.P0,

		PopulationVariance1: req.SigmaSq1,
		PopulationVariance2: req.SigmaSq2,
	}
	if !req.Kind.Valid() {
		return params, errors.UnknownTest(string(req.Kind))
	}

	if req.Kind.ProportionTest() {
		if req.Prop1 == nil {
			return params, errors.InvalidInput("sample 1 proportion observation is required")
		}
		params.Prop1 = *req.Prop1
		if req.Kind.TwoSample() {
			if req.Prop2 == nil {
				return params, errors.InvalidInput("sample 2 proportion observation is required")
			}
			params.Prop2 = *req.Prop2
		}
		return params, nil
	}

	needStdDev := req.Kind.UsesSampleStdDev()
	if req.Input1 == nil {
		return params, errors.InvalidInput("sample 1 input is required")
	}
	summary1, err := req.Input1.Normalize("sample 1", needStdDev)
	if err != nil {
		return params, err
	}
	params.Sample1 = summary1

	if req.Kind.TwoSample() {
		if req.Input2 == nil {
			return params, errors.InvalidInput("sample 2 input is required")
		}
		summary2, err := req.Input2.Normalize("sample 2", needStdDev)
		if err != nil {
			return params, err
		}
		params.Sample2 = summary2
	}
	return params, nil
}
