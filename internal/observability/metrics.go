package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "impact_etl"

// Metrics holds the Prometheus collectors for the pipeline, the estimator,
// the NeoWs catalog and the HTTP API.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	LoadRetries      prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Estimator metrics.
	EstimatesTotal    *prometheus.CounterVec // labels: surface={land,water}
	InvalidParameters *prometheus.CounterVec // labels: field
	EnergyMegatons    prometheus.Histogram

	// Catalog metrics.
	CatalogRequests    *prometheus.CounterVec   // labels: method={lookup,feed}, outcome={success,error,empty}
	CatalogCache       *prometheus.CounterVec   // labels: method={lookup,feed}, result={hit,miss}
	CatalogAPIDuration *prometheus.HistogramVec // labels: method={lookup,feed}
	CatalogEnabled     prometheus.Gauge

	// HTTP API metrics.
	HTTPRequests        *prometheus.CounterVec   // labels: route, code
	HTTPRequestDuration *prometheus.HistogramVec // labels: route
}

// NewMetrics creates all metrics and registers them with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total scenario requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total impact reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total scenario requests that could not be turned into a report.",
		}),
		LoadRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_retries_total",
			Help:      "Failed attempts to write a batch of reports to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		EstimatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Impact estimates computed, by target surface.",
		}, []string{"surface"}),
		InvalidParameters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_parameters_total",
			Help:      "Rejected impact parameters, by field.",
		}, []string{"field"}),
		EnergyMegatons: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "impact_energy_megatons",
			Help:      "Kinetic energy of estimated impacts in megatons of TNT.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 10, 10),
		}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "NeoWs API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by method and result.",
		}, []string{"method", "result"}),
		CatalogAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_api_duration_seconds",
			Help:      "NeoWs API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		CatalogEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_enabled",
			Help:      "1 when NeoWs catalog enrichment is enabled, 0 otherwise.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code.",
		}, []string{"route", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.LoadRetries,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.EstimatesTotal,
		m.InvalidParameters,
		m.EnergyMegatons,
		m.CatalogRequests,
		m.CatalogCache,
		m.CatalogAPIDuration,
		m.CatalogEnabled,
		m.HTTPRequests,
		m.HTTPRequestDuration,
	}
}
