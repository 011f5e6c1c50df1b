// Package observability collects Prometheus metrics and OpenTelemetry spans
// of calculation jobs.
package observability

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/prometheus/client_golang/prometheus"
)

// JobCollector bundles the metrics of job runs. A nil collector records
// nothing.
type JobCollector struct {
	Jobs         *prometheus.CounterVec
	JobDurations *prometheus.HistogramVec
	GainQueries  *prometheus.CounterVec
	Exports      *prometheus.CounterVec
}

// NewJobCollector registers the job metrics against reg, defaulting to the
// global Prometheus registry when nil.
func NewJobCollector(reg prometheus.Registerer) (*JobCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	jobs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "antcalc_jobs_total",
		Help: "Total number of calculation jobs, labeled by model and result.",
	}, []string{"model", "result"}), "antcalc_jobs_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "antcalc_job_duration_seconds",
		Help:    "Calculation job duration in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"model"}), "antcalc_job_duration_seconds")
	if err != nil {
		return nil, err
	}
	queries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "antcalc_gain_queries_total",
		Help: "Total number of answered gain queries, labeled by model.",
	}, []string{"model"}), "antcalc_gain_queries_total")
	if err != nil {
		return nil, err
	}
	exports, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "antcalc_exports_total",
		Help: "Total number of exported files, labeled by format and result.",
	}, []string{"format", "result"}), "antcalc_exports_total")
	if err != nil {
		return nil, err
	}
	return &JobCollector{
		Jobs:         jobs,
		JobDurations: durations,
		GainQueries:  queries,
		Exports:      exports,
	}, nil
}

func (c *JobCollector) ObserveJob(model string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.Jobs.WithLabelValues(model, result(err)).Inc()
	c.JobDurations.WithLabelValues(model).Observe(time.Since(start).Seconds())
}

func (c *JobCollector) ObserveGainQuery(model string) {
	if c == nil {
		return
	}
	c.GainQueries.WithLabelValues(model).Inc()
}

func (c *JobCollector) ObserveExport(filename string, err error) {
	if c == nil {
		return
	}
	c.Exports.WithLabelValues(Format(filename), result(err)).Inc()
}

// Format is the lower case file extension without the dot, "none" when
// there is no extension.
func Format(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "zst" {
		if inner := filepath.Ext(strings.TrimSuffix(filename, filepath.Ext(filename))); inner != "" {
			ext = strings.ToLower(strings.TrimPrefix(inner, ".")) + ".zst"
		}
	}
	if ext == "" {
		return "none"
	}
	return ext
}

// WriteTextfile writes the gathered metrics in the text format of the
// node exporter textfile collector.
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(filename, g)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, merry.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, merry.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
