package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetric は指定名のメトリクスファミリーからラベルが一致する系列を探す。
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					matched = false
				}
			}
			if matched {
				return m
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return nil
}

func TestObserveHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveHTTPRequest(http.MethodGet, "/api/tasks", http.StatusOK, 20*time.Millisecond)
	c.ObserveHTTPRequest(http.MethodGet, "/api/tasks", http.StatusOK, 30*time.Millisecond)
	c.ObserveHTTPRequest(http.MethodGet, "/api/reminders", http.StatusUnauthorized, time.Millisecond)

	ok := findMetric(t, reg, "taskman_http_requests_total", map[string]string{"route": "/api/tasks", "status": "200"})
	if got := ok.GetCounter().GetValue(); got != 2 {
		t.Errorf("requests_total{/api/tasks,200} = %v, want 2", got)
	}

	unauthorized := findMetric(t, reg, "taskman_http_requests_total", map[string]string{"route": "/api/reminders", "status": "401"})
	if got := unauthorized.GetCounter().GetValue(); got != 1 {
		t.Errorf("requests_total{/api/reminders,401} = %v, want 1", got)
	}

	duration := findMetric(t, reg, "taskman_http_request_duration_seconds", map[string]string{"route": "/api/tasks"})
	if got := duration.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("duration sample count = %d, want 2", got)
	}
}

func TestRecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(LoginSuccess)
	c.RecordLogin(LoginFailure)
	c.RecordLogin(LoginFailure)

	failure := findMetric(t, reg, "taskman_logins_total", map[string]string{"result": LoginFailure})
	if got := failure.GetCounter().GetValue(); got != 2 {
		t.Errorf("logins_total{failure} = %v, want 2", got)
	}
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg).RecordLogin(LoginSuccess)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), `taskman_logins_total{result="success"} 1`) {
		t.Errorf("body does not contain login counter:\n%s", body)
	}
}
