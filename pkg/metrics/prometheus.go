package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Runs         *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	APIPages     prometheus.Counter
	RowsInserted *prometheus.CounterVec
	UsersCharged prometheus.Counter
	ErrorsCount  *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The total number of fetch runs by result",
		}, []string{"result"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time taken by one fetch run",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),
		APIPages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_pages_total",
			Help:      "The total number of search pages requested from the remote API",
		}),
		RowsInserted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_inserted_total",
			Help:      "The total number of rows inserted by table",
		}, []string{"table"}),
		UsersCharged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_charged_total",
			Help:      "The total number of fetch tax debits",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"kind"}),
	}
}
