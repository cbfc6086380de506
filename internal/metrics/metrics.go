package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"insecticide/internal/report"
)

// Collector captures metrics for a test run
type Collector struct {
	registry     *prometheus.Registry
	casesTotal   *prometheus.CounterVec
	caseDuration *prometheus.HistogramVec
	suitesTotal  prometheus.Counter
	passRate     prometheus.Gauge
	duplicateIDs prometheus.Counter
}

// NewCollector initializes a new metrics registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		casesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "insecticide_test_cases_total", Help: "Total number of test cases by status"},
			[]string{"suite", "status"},
		),
		caseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insecticide_test_case_duration_seconds",
				Help:    "Test case duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		suitesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "insecticide_suites_total", Help: "Total number of suites in the run"},
		),
		passRate: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "insecticide_pass_rate", Help: "Share of passed test cases in the last run"},
		),
		duplicateIDs: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "insecticide_duplicate_suite_ids_total", Help: "Suite ids reported more than once"},
		),
	}

	registry.MustRegister(c.casesTotal, c.caseDuration, c.suitesTotal, c.passRate, c.duplicateIDs)
	return c
}

// Observe records every outcome of a run
func (c *Collector) Observe(result *report.RunResult) {
	for _, id := range result.SuiteIDs() {
		c.suitesTotal.Inc()
		outcomes, _ := result.Suite(id)
		for _, o := range outcomes {
			status := o.Status.String()
			c.casesTotal.WithLabelValues(id, status).Inc()
			c.caseDuration.WithLabelValues(status).Observe(o.Duration.Seconds())
		}
	}
	c.duplicateIDs.Add(float64(len(result.Duplicates())))

	if rate, err := result.PassRate(); err == nil {
		c.passRate.Set(rate)
	}
}

// Write writes all metrics to a Prometheus text file
func (c *Collector) Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
