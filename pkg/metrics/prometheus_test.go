package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorderExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordLogin("success")
	r.RecordError("fetch")
	r.RecordRecommendation("Buy")
	r.RecordLastPrice("AAPL", 179.66)
	r.RecordLatency("forecast", 0.02)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"stockpulse_logins_total",
		"stockpulse_pipeline_errors_total",
		"stockpulse_recommendations_total",
		"stockpulse_last_price",
		"stockpulse_operation_duration_seconds",
	} {
		if !names[want] {
			t.Fatalf("metric %s not exported", want)
		}
	}
}
