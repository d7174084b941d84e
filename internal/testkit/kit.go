package testkit

import (
	"hypocalc/adapters/evaluators"
	"hypocalc/adapters/gonumdist"
	"hypocalc/app"
	"hypocalc/domain/hypotest"
	"hypocalc/internal"
)

// Kit bundles a fully wired engine and calculator service for tests, plus
// canonical textbook requests for every test kind.
type Kit struct {
	Engine *evaluators.Engine
	Calc   *app.CalcService
}

// New creates a test kit with the gonum distribution provider and a quiet logger.
func New() *Kit {
	engine := evaluators.NewEngine(gonumdist.NewProvider())
	return &Kit{
		Engine: engine,
		Calc:   app.NewCalcService(engine, internal.NewLogger(internal.LogLevelError)),
	}
}

func summary(mean, stddev float64, size int) *hypotest.SampleInput {
	in := hypotest.SummaryInput(mean, stddev, size)
	return &in
}

// ValidRequest returns a well-formed request for the given kind, built from
// small textbook examples. Tests mutate a copy to probe single violations.
func ValidRequest(kind hypotest.TestKind) app.CalcRequest {
	req := app.CalcRequest{Kind: kind, Alpha: 0.05}
	switch kind {
	case hypotest.MeanKnownVariance:
		req.Input1 = summary(15.2, 0, 25)
		req.Mu0 = 14.5
		req.SigmaSq1 = 5.29
	case hypotest.MeanUnknownVariance:
		req.Input1 = summary(15.2, 2.3, 25)
		req.Mu0 = 14.5
	case hypotest.PairedMeans:
		req.Input1 = summary(1.8, 2.1, 12)
	case hypotest.TwoMeanEqualVariance:
		req.Input1 = summary(12.4, 2.0, 18)
		req.Input2 = summary(11.1, 2.2, 16)
	case hypotest.TwoMeanUnequalVariance:
		req.Input1 = summary(12.4, 2.0, 18)
		req.Input2 = summary(11.1, 3.4, 16)
	case hypotest.TwoMeanKnownVariance:
		req.Input1 = summary(12.4, 0, 18)
		req.Input2 = summary(11.1, 0, 16)
		req.SigmaSq1 = 4.0
		req.SigmaSq2 = 9.0
	case hypotest.OneProportion:
		obs := hypotest.NewProportionFromCounts(40, 100)
		req.Prop1 = &obs
		req.P0 = 0.35
	case hypotest.TwoProportion:
		obs1 := hypotest.NewProportionFromCounts(40, 100)
		obs2 := hypotest.NewProportionFromCounts(30, 120)
		req.Prop1 = &obs1
		req.Prop2 = &obs2
	case hypotest.OneVariance:
		req.Input1 = summary(0, 2.5, 20)
		req.SigmaSq0 = 4.0
	case hypotest.TwoVariance:
		req.Input1 = summary(0, 3.0, 16)
		req.Input2 = summary(0, 2.0, 21)
	}
	return req
}
