package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager holds the catalog metrics on a private registry. A nil *Manager is
// valid and records nothing.
type Manager struct {
	Registry *prometheus.Registry

	listingOperations *prometheus.CounterVec
	operationLatency  *prometheus.HistogramVec
	assetUploads      *prometheus.CounterVec
	importRows        *prometheus.CounterVec
}

func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	m := &Manager{
		Registry: registry,
		listingOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_operations_total",
			Help:      "Catalog operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_operation_duration_seconds",
			Help:      "Latency of catalog operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		assetUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_uploads_total",
			Help:      "Image uploads by outcome.",
		}, []string{"outcome"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Imported rows by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.listingOperations,
		m.operationLatency,
		m.assetUploads,
		m.importRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// ObserveOperation records one catalog operation started at start.
func (m *Manager) ObserveOperation(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.listingOperations.WithLabelValues(operation, outcome(err)).Inc()
	m.operationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Manager) ObserveUpload(err error) {
	if m == nil {
		return
	}
	m.assetUploads.WithLabelValues(outcome(err)).Inc()
}

func (m *Manager) ObserveImportRow(err error) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(outcome(err)).Inc()
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
