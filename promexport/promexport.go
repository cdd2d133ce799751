// Package promexport exposes the activity profiles of a threadinstrument
// Instrument as Prometheus metrics.
//
// Values are read from the Instrument on each scrape, via
// [threadinstrument.Instrument.AllActivity], so they are summed across
// goroutines, and are best-effort snapshots.
package promexport

import (
	"errors"
	"strconv"

	threadinstrument "github.com/joeycumines/go-threadinstrument"
	"github.com/prometheus/client_golang/prometheus"
)

// Source is the subset of [*threadinstrument.Instrument] read by Collector.
type Source interface {
	AllActivity() threadinstrument.Activity
	EventName(code int) (string, bool)
	NThreadsWithActivity() int
}

var _ Source = (*threadinstrument.Instrument)(nil)

// Collector implements prometheus.Collector.
type Collector struct {
	src         Source
	seconds     *prometheus.Desc
	invocations *prometheus.Desc
	running     *prometheus.Desc
	threads     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

type collectorOptions struct {
	constLabels prometheus.Labels
	namespace   string
}

// Option configures a Collector.
type Option interface {
	applyCollector(*collectorOptions) error
}

type optionImpl struct {
	applyCollectorFunc func(*collectorOptions) error
}

func (o *optionImpl) applyCollector(opts *collectorOptions) error {
	return o.applyCollectorFunc(opts)
}

// WithNamespace sets the metric name prefix. Defaults to "threadinstrument".
func WithNamespace(namespace string) Option {
	return &optionImpl{func(opts *collectorOptions) error {
		if namespace == `` {
			return errors.New(`promexport: empty namespace`)
		}
		opts.namespace = namespace
		return nil
	}}
}

// WithConstLabels adds labels to every metric, e.g. to distinguish multiple
// instruments registered with the same registry.
func WithConstLabels(labels prometheus.Labels) Option {
	return &optionImpl{func(opts *collectorOptions) error {
		opts.constLabels = labels
		return nil
	}}
}

// NewCollector returns a Collector reading from src.
func NewCollector(src Source, opts ...Option) (*Collector, error) {
	if src == nil {
		return nil, errors.New(`promexport: nil source`)
	}

	cfg := collectorOptions{namespace: `threadinstrument`}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyCollector(&cfg); err != nil {
			return nil, err
		}
	}

	// event is empty for codes without a name
	labels := []string{`code`, `event`}

	return &Collector{
		src: src,
		seconds: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, `activity`, `seconds_total`),
			`Time spent running each activity, summed across goroutines.`,
			labels,
			cfg.constLabels,
		),
		invocations: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, `activity`, `invocations_total`),
			`Number of times each activity began, summed across goroutines.`,
			labels,
			cfg.constLabels,
		),
		running: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, `activity`, `running`),
			`Whether any goroutine is running each activity.`,
			labels,
			cfg.constLabels,
		),
		threads: prometheus.NewDesc(
			prometheus.BuildFQName(cfg.namespace, ``, `threads`),
			`Number of goroutines that have used the instrument.`,
			nil,
			cfg.constLabels,
		),
	}, nil
}

// Describe implements prometheus.Collector.
func (x *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- x.seconds
	ch <- x.invocations
	ch <- x.running
	ch <- x.threads
}

// Collect implements prometheus.Collector, reading a fresh snapshot from the
// source.
func (x *Collector) Collect(ch chan<- prometheus.Metric) {
	activity := x.src.AllActivity()
	for _, code := range activity.Codes() {
		data := activity[code]
		name, _ := x.src.EventName(code)
		labels := []string{strconv.Itoa(code), name}

		var running float64
		if data.CurrentlyRunning {
			running = 1
		}

		ch <- prometheus.MustNewConstMetric(x.seconds, prometheus.CounterValue, data.Time, labels...)
		ch <- prometheus.MustNewConstMetric(x.invocations, prometheus.CounterValue, float64(data.Invocations), labels...)
		ch <- prometheus.MustNewConstMetric(x.running, prometheus.GaugeValue, running, labels...)
	}
	ch <- prometheus.MustNewConstMetric(x.threads, prometheus.GaugeValue, float64(x.src.NThreadsWithActivity()))
}
