package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// Fetch outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors for provider fetches, searches,
// and summary requests. Collectors are registered on the registry passed
// to NewMetrics so tests can use a private registry.
type Metrics struct {
	// ProviderFetches counts provider calls, labeled by repository and outcome.
	ProviderFetches *prometheus.CounterVec

	// ProviderDuration observes provider call duration in seconds, labeled by repository.
	ProviderDuration *prometheus.HistogramVec

	// ProviderRecords observes the number of records a provider returned, labeled by repository.
	ProviderRecords *prometheus.HistogramVec

	// Searches counts aggregated searches started.
	Searches prometheus.Counter

	// StaleResults counts search results discarded because a newer search superseded them.
	StaleResults prometheus.Counter

	// SummaryRequests counts summary service calls, labeled by outcome.
	SummaryRequests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidvaan",
			Subsystem: "provider",
			Name:      "fetches_total",
			Help:      "Provider fetches by repository and outcome.",
		}, []string{"repository", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vidvaan",
			Subsystem: "provider",
			Name:      "fetch_duration_seconds",
			Help:      "Provider fetch duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"repository"}),
		ProviderRecords: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vidvaan",
			Subsystem: "provider",
			Name:      "records",
			Help:      "Records returned per provider fetch.",
			Buckets:   []float64{0, 1, 10, 25, 50, 100, 200},
		}, []string{"repository"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidvaan",
			Name:      "searches_total",
			Help:      "Aggregated searches started.",
		}),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidvaan",
			Name:      "stale_results_total",
			Help:      "Search results discarded because a newer search superseded them.",
		}),
		SummaryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidvaan",
			Subsystem: "summary",
			Name:      "requests_total",
			Help:      "Summary service requests by outcome.",
		}, []string{"outcome"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ProviderFetches,
			m.ProviderDuration,
			m.ProviderRecords,
			m.Searches,
			m.StaleResults,
			m.SummaryRequests,
		)
	}
	return m
}

// ObserveFetch records one provider call.
func (m *Metrics) ObserveFetch(repo types.Repository, records int, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.ProviderFetches.WithLabelValues(string(repo), outcome).Inc()
	m.ProviderDuration.WithLabelValues(string(repo)).Observe(d.Seconds())
	m.ProviderRecords.WithLabelValues(string(repo)).Observe(float64(records))
}

// ObserveSummary records one summary service call.
func (m *Metrics) ObserveSummary(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.SummaryRequests.WithLabelValues(outcome).Inc()
}
