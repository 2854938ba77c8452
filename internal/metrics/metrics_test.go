package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsRecord(t *testing.T) {
	before := testutil.ToFloat64(Requests.WithLabelValues("/api/calculate", "200"))
	Requests.WithLabelValues("/api/calculate", "200").Inc()
	if got := testutil.ToFloat64(Requests.WithLabelValues("/api/calculate", "200")); got != before+1 {
		t.Errorf("Requests = %v, want %v", got, before+1)
	}

	CacheLookups.WithLabelValues("hit").Inc()
	if got := testutil.ToFloat64(CacheLookups.WithLabelValues("hit")); got < 1 {
		t.Errorf("CacheLookups hit = %v, want >= 1", got)
	}

	Calculations.WithLabelValues("evaluateCustomPrice").Observe(0.001)
	if n := testutil.CollectAndCount(Calculations); n < 1 {
		t.Errorf("Calculations collected %d series, want >= 1", n)
	}
}
