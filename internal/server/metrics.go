package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the dashboard server.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DatasetsLoaded prometheus.Gauge
	DatasetRows    *prometheus.GaugeVec
	ReloadsTotal   prometheus.Counter
	RenderFailures prometheus.Counter
}

// NewMetrics registers the dashboard collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cryptometric",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cryptometric",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		DatasetsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "cryptometric",
			Name:      "datasets_loaded",
			Help:      "Number of datasets currently loaded",
		}),
		DatasetRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "cryptometric",
			Name:      "dataset_rows",
			Help:      "Rows per loaded dataset",
		}, []string{"dataset"}),
		ReloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cryptometric",
			Name:      "reloads_total",
			Help:      "Total dataset reloads",
		}),
		RenderFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cryptometric",
			Name:      "render_failures_total",
			Help:      "Total view renders that failed",
		}),
	}
}

// ObserveStore updates the dataset gauges from the current snapshot.
func (m *Metrics) ObserveStore(s datasetSource) {
	list := s.List()
	m.DatasetsLoaded.Set(float64(len(list)))
	for _, ds := range list {
		m.DatasetRows.WithLabelValues(ds.Name).Set(float64(ds.NumRows()))
	}
}
