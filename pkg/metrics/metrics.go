package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leadrelay"

// Metrics holds the business counters exposed on /metrics. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	relayOutcomes   *prometheus.CounterVec
	leadSubmissions *prometheus.CounterVec
	trackedEvents   *prometheus.CounterVec
}

// New registers the counters plus process and Go runtime collectors on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		relayOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_outcomes_total",
			Help:      "Contact relay requests by outcome.",
		}, []string{"outcome"}),
		leadSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lead_submissions_total",
			Help:      "Lead form submissions by origin and result.",
		}, []string{"origin", "result"}),
		trackedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracked_events_total",
			Help:      "Analytics events by name and whether they were dispatched.",
		}, []string{"event", "dispatched"}),
	}

	register(reg, collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	register(reg, collectors.NewGoCollector())
	register(reg, m.relayOutcomes)
	register(reg, m.leadSubmissions)
	register(reg, m.trackedEvents)

	return m
}

func register(reg prometheus.Registerer, c prometheus.Collector) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return
		}
		panic(err)
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRelay(outcome string) {
	if m == nil {
		return
	}
	m.relayOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSubmission(origin, result string) {
	if m == nil {
		return
	}
	m.leadSubmissions.WithLabelValues(origin, result).Inc()
}

func (m *Metrics) ObserveEvent(name string, dispatched bool) {
	if m == nil {
		return
	}
	m.trackedEvents.WithLabelValues(name, strconv.FormatBool(dispatched)).Inc()
}
