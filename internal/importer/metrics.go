package importer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = []prometheus.Collector{
	recordCount,
	jobCount,
}

var recordCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "import_records_total",
		Help: "How many records have been processed by imports, partitioned by outcome.",
	},
	[]string{"outcome"},
)

var jobCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "import_jobs_total",
		Help: "How many import jobs have finished, partitioned by terminal status.",
	},
	[]string{"status"},
)

// RegisterMetrics registers all import metrics with the default Prometheus
// registry. Registering twice is not an error so that tests can set up
// multiple routers.
func RegisterMetrics() error {
	for _, collector := range metrics {
		err := prometheus.Register(collector)

		are := prometheus.AlreadyRegisteredError{}
		if err != nil && !errors.As(err, &are) {
			return err
		}
	}

	return nil
}

func countRecords(result Result) {
	recordCount.WithLabelValues("synced").Add(float64(result.SyncedItems))
	recordCount.WithLabelValues("skipped").Add(float64(result.SkippedItems))
	recordCount.WithLabelValues("error").Add(float64(result.ErrorItems))
}
