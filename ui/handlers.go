package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hypocalc/app"
	"hypocalc/domain/hypotest"
	"hypocalc/internal/errors"
)

// sampleJSON is the wire shape of one sample: either summary fields or a raw
// observation list. Observations win when both are present.
type sampleJSON struct {
	Mean         *float64  `json:"mean,omitempty"`
	StdDev       *float64  `json:"stddev,omitempty"`
	Size         int       `json:"size,omitempty"`
	Observations []float64 `json:"observations,omitempty"`
}

type proportionJSON struct {
	Successes  *int     `json:"successes,omitempty"`
	Proportion *float64 `json:"proportion,omitempty"`
	Size       int      `json:"size"`
}

type testRequestJSON struct {
	Alpha    float64         `json:"alpha"`
	Tail     string          `json:"tail,omitempty"`
	Sample1  *sampleJSON     `json:"sample1,omitempty"`
	Sample2  *sampleJSON     `json:"sample2,omitempty"`
	Mu0      float64         `json:"mu0,omitempty"`
	Delta    float64         `json:"delta,omitempty"`
	SigmaSq1 float64         `json:"sigma_sq1,omitempty"`
	SigmaSq2 float64         `json:"sigma_sq2,omitempty"`
	SigmaSq0 float64         `json:"sigma_sq0,omitempty"`
	P0       float64         `json:"p0,omitempty"`
	Prop1    *proportionJSON `json:"prop1,omitempty"`
	Prop2    *proportionJSON `json:"prop2,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	kind := hypotest.TestKind(chi.URLParam(r, "kind"))

	var body testRequestJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed JSON request body"))
		return
	}

	result, err := s.calc.Evaluate(body.toCalcRequest(kind))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (b testRequestJSON) toCalcRequest(kind hypotest.TestKind) app.CalcRequest {
	req := app.CalcRequest{
		Kind:     kind,
		Alpha:    b.Alpha,
		Tail:     hypotest.Tail(b.Tail),
		Mu0:      b.Mu0,
		Delta:    b.Delta,
		SigmaSq1: b.SigmaSq1,
		SigmaSq2: b.SigmaSq2,
		SigmaSq0: b.SigmaSq0,
		P0:       b.P0,
	}
	req.Input1 = b.Sample1.toInput()
	req.Input2 = b.Sample2.toInput()
	req.Prop1 = b.Prop1.toObservation()
	req.Prop2 = b.Prop2.toObservation()
	return req
}

func (sj *sampleJSON) toInput() *hypotest.SampleInput {
	if sj == nil {
		return nil
	}
	if len(sj.Observations) > 0 {
		in := hypotest.RawSampleInput(sj.Observations)
		return &in
	}
	mean, stddev := 0.0, 0.0
	if sj.Mean != nil {
		mean = *sj.Mean
	}
	if sj.StdDev != nil {
		stddev = *sj.StdDev
	}
	in := hypotest.SummaryInput(mean, stddev, sj.Size)
	return &in
}

func (pj *proportionJSON) toObservation() *hypotest.ProportionObservation {
	if pj == nil {
		return nil
	}
	var obs hypotest.ProportionObservation
	if pj.Successes != nil {
		obs = hypotest.NewProportionFromCounts(*pj.Successes, pj.Size)
	} else {
		p := 0.0
		if pj.Proportion != nil {
			p = *pj.Proportion
		}
		obs = hypotest.NewProportionDirect(p, pj.Size)
	}
	return &obs
}

// statusForError maps engine error codes onto HTTP statuses: precondition
// violations are 422, malformed or unknown requests are 400, the rest 500.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeEmptySample, errors.CodeInsufficientSample,
		errors.CodeInvalidVariance, errors.CodeInvalidSignificanceLevel,
		errors.CodeInvalidProportion, errors.CodeDegenerateStandardError:
		return http.StatusUnprocessableEntity
	case errors.CodeInvalidInput, errors.CodeUnknownTest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorJSON struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorJSON{Code: errors.GetCode(err), Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
