package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.ObserveRelay("created")
	m.ObserveRelay("created")
	m.ObserveSubmission("ebook", "success")
	m.ObserveEvent("cta_click", false)

	require.Equal(t, 2.0, testutil.ToFloat64(m.relayOutcomes.WithLabelValues("created")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.leadSubmissions.WithLabelValues("ebook", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.trackedEvents.WithLabelValues("cta_click", "false")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "# TYPE leadrelay_relay_outcomes_total counter")
	require.Contains(t, string(body), `leadrelay_lead_submissions_total{origin="ebook",result="success"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRelay("failed")
	m.ObserveSubmission("ebook", "failure")
	m.ObserveEvent("x", true)
}
