package ui_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypocalc/domain/hypotest"
	"hypocalc/internal"
	"hypocalc/internal/testkit"
	"hypocalc/ui"
)

func newTestHandler() http.Handler {
	kit := testkit.New()
	return ui.NewServer(kit.Calc, internal.NewLogger(internal.LogLevelError)).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestHandler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestListTests(t *testing.T) {
	rec := doJSON(t, newTestHandler(), http.MethodGet, "/api/tests", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var kinds []struct {
		Kind        string `json:"kind"`
		Description string `json:"description"`
		TwoSample   bool   `json:"two_sample"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&kinds))
	require.Len(t, kinds, len(hypotest.AllKinds()))
	assert.Equal(t, string(hypotest.MeanKnownVariance), kinds[0].Kind)
	assert.NotEmpty(t, kinds[0].Description)
}

func TestEvaluateEndpoint(t *testing.T) {
	mean, stddev := 15.2, 2.3
	body := map[string]any{
		"alpha":   0.05,
		"sample1": map[string]any{"mean": mean, "stddev": stddev, "size": 25},
		"mu0":     14.5,
	}
	rec := doJSON(t, newTestHandler(), http.MethodPost, "/api/tests/mean_unknown_variance", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result hypotest.TestResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, hypotest.MeanUnknownVariance, result.Kind)
	assert.InDelta(t, 1.5217391304, result.Statistic, 1e-9)
	assert.Equal(t, hypotest.DistStudentsT, result.Distribution.Family)
	assert.InDelta(t, 24, result.Distribution.DF1, 1e-12)
	require.NotNil(t, result.Critical.Upper)
	assert.InDelta(t, 2.0638985616, *result.Critical.Upper, 1e-6)
	assert.Equal(t, hypotest.TailTwoSided, result.Tail)
}

func TestEvaluateRawObservations(t *testing.T) {
	body := map[string]any{
		"alpha":   0.05,
		"sample1": map[string]any{"observations": []float64{10, 12, 9, 11, 13}},
		"mu0":     10,
	}
	rec := doJSON(t, newTestHandler(), http.MethodPost, "/api/tests/mean_unknown_variance", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result hypotest.TestResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.InDelta(t, 4, result.Distribution.DF1, 1e-12)
}

func TestEvaluateProportions(t *testing.T) {
	successes := 40
	body := map[string]any{
		"alpha": 0.05,
		"prop1": map[string]any{"successes": successes, "size": 100},
		"p0":    0.35,
	}
	rec := doJSON(t, newTestHandler(), http.MethodPost, "/api/tests/one_proportion", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result hypotest.TestResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, hypotest.DistNormal, result.Distribution.Family)
	assert.InDelta(t, 1.04828, result.Statistic, 1e-4)
}

func TestEvaluateErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid significance level",
			path:       "/api/tests/mean_unknown_variance",
			body:       map[string]any{"alpha": 0, "sample1": map[string]any{"mean": 1.0, "stddev": 1.0, "size": 10}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_SIGNIFICANCE_LEVEL",
		},
		{
			name:       "unknown test kind",
			path:       "/api/tests/tea_leaves",
			body:       map[string]any{"alpha": 0.05},
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_TEST",
		},
		{
			name:       "missing sample",
			path:       "/api/tests/mean_unknown_variance",
			body:       map[string]any{"alpha": 0.05},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "zero stddev",
			path:       "/api/tests/one_variance",
			body:       map[string]any{"alpha": 0.05, "sigma_sq0": 4, "sample1": map[string]any{"stddev": 0.0, "size": 20}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_VARIANCE",
		},
	}

	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var e struct {
				Code string `json:"code"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
			assert.Equal(t, tt.wantCode, e.Code)
		})
	}
}

func TestEvaluateMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tests/mean_unknown_variance",
		strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReferencePage(t *testing.T) {
	rec := doJSON(t, newTestHandler(), http.MethodGet, "/reference", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Welch")
}

func TestRequestIDPassThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
