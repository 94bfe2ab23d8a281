package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouter_Healthz(t *testing.T) {
	mux := NewMux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if rec.Body.String() != "ok\n" {
		t.Fatalf("body=%q", rec.Body.String())
	}
}

func TestRouter_Index(t *testing.T) {
	mux := NewMux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("index is not html")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	mux := NewMux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/generate", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d, want 405", rec.Code)
	}
}

type staticLookup map[string]string

func (l staticLookup) CountryCode(host string) string { return l[host] }

func TestRouter_MMDBPathUnreadable(t *testing.T) {
	// A bad database path disables the fallback but must not break serving.
	mux := NewMuxWithOptions(Options{MMDBPath: "/nonexistent/country.mmdb"}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader("ss://m:p@1.2.3.4:8388#node-x\n"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status=%d body=%s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "日本节点") {
		t.Fatalf("country group emitted without a working resolver")
	}
}

func TestRouter_ExplicitLookupWins(t *testing.T) {
	// An explicit lookup takes precedence over MMDBPath.
	lookup := staticLookup{"1.2.3.4": "JP"}
	mux := NewMuxWithOptions(Options{MMDBPath: "/nonexistent/country.mmdb"}, lookup)

	req := httptest.NewRequest(http.MethodPost, "/api/generate",
		strings.NewReader("ss://m:p@1.2.3.4:8388#node-x\n"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "日本节点") {
		t.Fatalf("lookup-classified node missing from output:\n%s", rec.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	mux := NewMux()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "policygen_http_requests_total") {
		t.Fatalf("metrics body misses the total counter:\n%s", rec.Body.String())
	}
}
