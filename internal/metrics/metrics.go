// Package metrics records billing run metrics on a private Prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/theirongolddev/fleetbill/internal/model"
)

// Recorder collects the metrics of one billing run.
type Recorder struct {
	reg *prometheus.Registry

	fetchDuration  *prometheus.HistogramVec
	failures       *prometheus.CounterVec
	vehiclesBilled prometheus.Gauge
	distanceMeters prometheus.Gauge
	invoiceTotal   prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// NewRecorder registers the run metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		fetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetbill_fetch_duration_seconds",
			Help:    "Duration of upstream fetches by operation and outcome",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetbill_run_failures_total",
			Help: "Billing runs aborted, by stage",
		}, []string{"stage"}),
		vehiclesBilled: f.NewGauge(prometheus.GaugeOpts{
			Name: "fleetbill_vehicles_billed",
			Help: "Number of vehicles on the last invoice",
		}),
		distanceMeters: f.NewGauge(prometheus.GaugeOpts{
			Name: "fleetbill_distance_meters",
			Help: "Total distance billed on the last invoice, in metres",
		}),
		invoiceTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "fleetbill_invoice_total",
			Help: "Total due on the last invoice, in billing currency",
		}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "fleetbill_last_success_timestamp_seconds",
			Help: "Unix time of the last successful billing run",
		}),
	}
}

// ObserveFetch records one upstream fetch. Its signature matches pipeline.FetchObserver.
func (r *Recorder) ObserveFetch(op string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.fetchDuration.WithLabelValues(op, status).Observe(elapsed.Seconds())
}

// RecordFailure counts an aborted run at the given stage (acquire, reconcile, render).
func (r *Recorder) RecordFailure(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

// RecordInvoice sets the gauges describing a successfully assembled invoice.
func (r *Recorder) RecordInvoice(inv model.Invoice) {
	var distance float64
	for _, it := range inv.Items {
		distance += it.DistanceMeters
	}
	total, _ := inv.Total.Float64()

	r.vehiclesBilled.Set(float64(len(inv.Items)))
	r.distanceMeters.Set(distance)
	r.invoiceTotal.Set(total)
	r.lastSuccess.Set(float64(inv.GeneratedAt.Unix()))
}

// WriteFile writes all metrics to path in the text exposition format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", path, err)
	}
	return nil
}
