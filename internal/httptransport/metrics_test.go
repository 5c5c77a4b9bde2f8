package httptransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nativebpm/connectors/content/internal/httptransport"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	reg := prometheus.NewRegistry()
	mw := httptransport.MetricsMiddleware(reg)
	c := http.Client{Transport: mw(http.DefaultTransport)}

	resp, err := c.Get(ts.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var counted bool
	for _, mf := range families {
		if mf.GetName() != "content_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["method"] == "GET" && labels["status"] == "200" {
				if got := m.GetCounter().GetValue(); got != 1 {
					t.Errorf("requests_total = %v, want 1", got)
				}
				counted = true
			}
		}
	}
	if !counted {
		t.Error("content_client_requests_total{method=GET,status=200} not found")
	}
}

func TestMetricsMiddleware_ErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	mw := httptransport.MetricsMiddleware(reg)
	c := http.Client{Transport: mw(http.DefaultTransport)}

	// unreachable address, round trip fails
	_, err := c.Get("http://127.0.0.1:0")
	if err == nil {
		t.Fatal("expected error")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var found bool
	for _, mf := range families {
		if mf.GetName() != "content_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" && lp.GetValue() == "error" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("requests_total with status=error not found")
	}
}
