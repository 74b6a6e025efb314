// Package metrics exposes Prometheus instrumentation for the keyed store and
// the engine. All recording methods are safe on a nil *Metrics so components
// can run uninstrumented.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus metrics for cogniload.
type Metrics struct {
	// Store metrics
	StoreReads     *prometheus.CounterVec
	StoreWrites    *prometheus.CounterVec
	StoreFallbacks *prometheus.CounterVec
	Broadcasts     prometheus.Counter

	// Engine metrics
	Visits      *prometheus.CounterVec
	Rollovers   *prometheus.CounterVec
	TotalLoad   prometheus.Gauge
	TaskCount   prometheus.Gauge
	Completions prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates a Metrics instance with every metric registered on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		StoreReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogniload_store_reads_total",
				Help: "Total number of keyed store reads by result (hit, miss, error)",
			},
			[]string{"result"},
		),
		StoreWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogniload_store_writes_total",
				Help: "Total number of keyed store writes by result (ok, error)",
			},
			[]string{"result"},
		),
		StoreFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogniload_store_fallbacks_total",
				Help: "Reads that returned the caller default, by reason (decode, unavailable)",
			},
			[]string{"reason"},
		),
		Broadcasts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cogniload_store_broadcasts_total",
				Help: "Total number of key change notifications published",
			},
		),
		Visits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogniload_visits_total",
				Help: "Session starts by kind (first, same_day, new_day)",
			},
			[]string{"kind"},
		),
		Rollovers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cogniload_day_rollovers_total",
				Help: "Day-boundary resets by fact",
			},
			[]string{"fact"},
		),
		TotalLoad: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cogniload_total_load",
				Help: "Most recently computed aggregate cognitive load",
			},
		),
		TaskCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cogniload_tasks",
				Help: "Number of tasks in the most recently scored collection",
			},
		),
		Completions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cogniload_task_completions_total",
				Help: "Total number of tasks marked complete",
			},
		),
		gatherer: registry,
	}
}

// NewRegistry creates a fresh registry with cogniload metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, NewMetrics(reg)
}

// RecordRead counts a store read. result is "hit", "miss" or "error".
func (m *Metrics) RecordRead(result string) {
	if m == nil {
		return
	}
	m.StoreReads.WithLabelValues(result).Inc()
}

// RecordWrite counts a store write.
func (m *Metrics) RecordWrite(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.StoreWrites.WithLabelValues(result).Inc()
}

// RecordFallback counts a read that degraded to the caller default.
func (m *Metrics) RecordFallback(reason string) {
	if m == nil {
		return
	}
	m.StoreFallbacks.WithLabelValues(reason).Inc()
}

// RecordBroadcast counts a key change notification.
func (m *Metrics) RecordBroadcast() {
	if m == nil {
		return
	}
	m.Broadcasts.Inc()
}

// RecordVisit counts a session start.
func (m *Metrics) RecordVisit(kind string) {
	if m == nil {
		return
	}
	m.Visits.WithLabelValues(kind).Inc()
}

// RecordRollover counts a day-boundary reset of fact.
func (m *Metrics) RecordRollover(fact string) {
	if m == nil {
		return
	}
	m.Rollovers.WithLabelValues(fact).Inc()
}

// RecordScore stores the latest aggregate load and task count.
func (m *Metrics) RecordScore(total float64, tasks int) {
	if m == nil {
		return
	}
	m.TotalLoad.Set(total)
	m.TaskCount.Set(float64(tasks))
}

// RecordCompletion counts a completed task.
func (m *Metrics) RecordCompletion() {
	if m == nil {
		return
	}
	m.Completions.Inc()
}

// WriteText writes the registry in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
