// Package metrics records fetch outcomes and cache sizes as Prometheus
// metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/store"
)

const namespace = "vuet_client"

// Recorder receives fetch outcomes from the loader and record counts from
// the store.
type Recorder interface {
	store.Observer
	ObserveFetch(kind models.Kind, success bool, duration time.Duration)
}

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	storeRecords  *prometheus.GaugeVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the collectors and registers them with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "API fetches by record kind and outcome.",
		}, []string{"kind", "status"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of API fetches including retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		storeRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Records currently cached per kind.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{r.fetchTotal, r.fetchDuration, r.storeRecords} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics collector: %w", err)
		}
	}
	return r, nil
}

// ObserveFetch records one completed fetch.
func (r *PrometheusRecorder) ObserveFetch(kind models.Kind, success bool, duration time.Duration) {
	status := "error"
	if success {
		status = "success"
	}
	r.fetchTotal.WithLabelValues(string(kind), status).Inc()
	r.fetchDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
}

// ObserveRecords sets the cached record count for kind.
func (r *PrometheusRecorder) ObserveRecords(kind models.Kind, count int) {
	r.storeRecords.WithLabelValues(string(kind)).Set(float64(count))
}

type nopRecorder struct{}

// Nop returns a Recorder that discards everything.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) ObserveFetch(models.Kind, bool, time.Duration) {}
func (nopRecorder) ObserveRecords(models.Kind, int)               {}
