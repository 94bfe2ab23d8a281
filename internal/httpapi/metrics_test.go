package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	metricsIncRequest("POST /api/generate", http.StatusOK)
	metricsIncRequest("POST /api/generate", http.StatusOK)
	metricsIncRequest("", 0) // normalized to (unknown)/200
	metricsIncAppError("parse_sub", "SUB_PARSE_ERROR")
	metricsIncAppError("", "")
	metricsIncGenerate(1024)

	total, genTotal, genBytes, reqs, errs := metricsSnapshot()
	if total < 3 {
		t.Fatalf("total=%d, want >= 3", total)
	}
	if genTotal < 1 || genBytes < 1024 {
		t.Fatalf("generate counters=%d/%d", genTotal, genBytes)
	}

	foundReq := false
	for _, m := range reqs {
		if m.Pattern == "POST /api/generate" && m.Status == http.StatusOK && m.N >= 2 {
			foundReq = true
		}
		if m.Pattern == "" || m.Status == 0 {
			t.Fatalf("unnormalized request key: %+v", m)
		}
	}
	if !foundReq {
		t.Fatalf("request counter missing: %+v", reqs)
	}

	foundErr := false
	for _, m := range errs {
		if m.Stage == "parse_sub" && m.Code == "SUB_PARSE_ERROR" && m.N >= 1 {
			foundErr = true
		}
	}
	if !foundErr {
		t.Fatalf("error counter missing: %+v", errs)
	}
}

func TestHandleMetrics_Exposition(t *testing.T) {
	metricsIncRequest("GET /healthz", http.StatusOK)
	metricsIncAppError("validate_request", "PAYLOAD_TOO_LARGE")

	rec := httptest.NewRecorder()
	handleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"# TYPE policygen_http_requests_total counter",
		"# TYPE policygen_generate_total counter",
		"policygen_http_requests_by_pattern_total{pattern=\"GET /healthz\",status=\"200\"}",
		"policygen_app_errors_total{stage=\"validate_request\",code=\"PAYLOAD_TOO_LARGE\"}",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition misses %q:\n%s", want, body)
		}
	}
}

func TestPromLabelEscape(t *testing.T) {
	if got := promLabelEscape(`a"b\c` + "\n"); got != `a\"b\\c\n` {
		t.Fatalf("escaped=%q", got)
	}
}
