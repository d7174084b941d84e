package ports

import "hypocalc/domain/hypotest"

// TestEvaluator maps validated parameters for one test kind to a result
// record. Evaluators are pure functions: no state, no side effects.
type TestEvaluator interface {
	Kind() hypotest.TestKind
	Description() string
	Evaluate(params hypotest.TestParameters) (hypotest.TestResult, error)
}
