package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsWithRegistersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg, "messenger")

	m.RequestsTotal.WithLabelValues("me/messages", "POST", "success").Inc()
	m.ReuseLookups.WithLabelValues("hit").Add(2)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("me/messages", "POST", "success")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ReuseLookups.WithLabelValues("hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}

	n, err := testutil.GatherAndCount(reg, "messenger_graph_requests_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}
