package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg              *prometheus.Registry
	GenerationRuns   prometheus.Counter
	GenerationSec    prometheus.Histogram
	Uploads          *prometheus.CounterVec
	DatasetCustomers prometheus.Gauge
	DatasetOrders    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "salespulse_generation_runs_total"})
	genSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "salespulse_generation_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "salespulse_uploads_total"}, []string{"status"})
	customers := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salespulse_dataset_customers"})
	orders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "salespulse_dataset_orders"})

	r.MustRegister(runs, genSec, uploads, customers, orders)
	return &Registry{
		reg:              r,
		GenerationRuns:   runs,
		GenerationSec:    genSec,
		Uploads:          uploads,
		DatasetCustomers: customers,
		DatasetOrders:    orders,
	}
}

// SetDatasetSize records the size of the active dataset after a load,
// regeneration or upload.
func (r *Registry) SetDatasetSize(customers, orders int) {
	r.DatasetCustomers.Set(float64(customers))
	r.DatasetOrders.Set(float64(orders))
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
