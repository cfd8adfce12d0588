// Package metrics provides Prometheus metrics for the PLC simulator.
package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every series is named plcsim_controller_*.
const (
	namespace = "plcsim"
	subsystem = "controller"
)

// Manager manages all Prometheus metrics for the controller.
type Manager struct {
	scanBuckets []float64
	registry    prometheus.Registerer

	// Scan metrics
	scanCycles       prometheus.Counter
	scanDuration     prometheus.Histogram
	scanLastDuration prometheus.Gauge
	scanOverruns     prometheus.Counter
	ruleFaults       *prometheus.CounterVec

	// Engine lifecycle
	engineRunning prometheus.Gauge
	engineStarts  prometheus.Counter

	// Point I/O
	pointWrites        *prometheus.CounterVec
	pointWriteRejected *prometheus.CounterVec
	snapshotsTaken     prometheus.Counter

	// Process image, mirrored from snapshots
	digitalPoints *prometheus.GaugeVec
	analogPoints  *prometheus.GaugeVec
	timerElapsed  *prometheus.GaugeVec
	counterValues *prometheus.GaugeVec

	// HTTP ops surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

type state struct {
	manager  *Manager
	registry *prometheus.Registry
}

// current holds the manager the package-level helpers record into.
var current atomic.Pointer[state] //nolint:gochecknoglobals // process-wide metrics

func init() { //nolint:gochecknoinits // global metrics setup
	Init()
}

// Init replaces the process-wide manager with one on a fresh registry.
// It is meant to run once at startup, before the engine records anything.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithRegistry(registry))...)
	current.Store(&state{manager: m, registry: registry})
}

func global() *Manager { return current.Load().manager }

// defaultScanBuckets are sized for sub-millisecond to tens-of-milliseconds cycles.
var defaultScanBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100} //nolint:gochecknoglobals // bucket layout

// periodFractions place scan buckets relative to the target period.
var periodFractions = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1, 1.5, 2, 5} //nolint:gochecknoglobals // bucket layout

// PeriodBuckets returns scan duration buckets in milliseconds, spread around
// period so that the bucket at 1x separates overruns from on-time cycles.
func PeriodBuckets(period time.Duration) []float64 {
	if period <= 0 {
		return defaultScanBuckets
	}
	ms := float64(period) / float64(time.Millisecond)
	out := make([]float64, len(periodFractions))
	for i, f := range periodFractions {
		out[i] = f * ms
	}
	return out
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		scanBuckets: defaultScanBuckets,
		registry:    prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.scanCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scan_cycles_total",
		Help:      "Total number of completed scan cycles",
	})

	m.scanDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scan_duration_milliseconds",
		Help:      "Histogram of scan cycle duration in milliseconds",
		Buckets:   m.scanBuckets,
	})

	m.scanLastDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scan_last_duration_milliseconds",
		Help:      "Duration of the most recent scan cycle in milliseconds",
	})

	m.scanOverruns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scan_overruns_total",
		Help:      "Scan cycles that took longer than the configured period",
	})

	m.ruleFaults = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rule_faults_total",
			Help:      "Rule evaluations that panicked and were skipped",
		},
		[]string{"rule"},
	)

	m.engineRunning = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "engine_running",
		Help:      "1 while the scan loop is running, 0 otherwise",
	})

	m.engineStarts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "engine_starts_total",
		Help:      "Number of times the scan loop was started",
	})

	m.pointWrites = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "point_writes_total",
			Help:      "Accepted external input writes by signal type",
		},
		[]string{"signal"},
	)

	m.pointWriteRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "point_writes_rejected_total",
			Help:      "Ignored external writes by signal type and reason",
		},
		[]string{"signal", "reason"},
	)

	m.snapshotsTaken = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "snapshots_total",
		Help:      "Total number of status snapshots produced",
	})

	m.digitalPoints = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "digital_point_value",
			Help:      "Digital point value (0/1) from the last published snapshot",
		},
		[]string{"point", "kind"},
	)

	m.analogPoints = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "analog_point_value",
			Help:      "Analog point value from the last published snapshot",
		},
		[]string{"point", "kind"},
	)

	m.timerElapsed = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "timer_elapsed_seconds",
			Help:      "Timer elapsed time from the last published snapshot",
		},
		[]string{"timer"},
	)

	m.counterValues = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "counter_value",
			Help:      "Counter value from the last published snapshot",
		},
		[]string{"counter"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// Scan Metrics Functions.

// RecordScanCycle records one completed scan cycle and its duration.
func RecordScanCycle(durationMs float64) {
	global().scanCycles.Inc()
	global().scanDuration.Observe(durationMs)
	global().scanLastDuration.Set(durationMs)
}

// RecordScanOverrun increments the overrun counter.
func RecordScanOverrun() {
	global().scanOverruns.Inc()
}

// RecordRuleFault increments the fault counter for a rule.
func RecordRuleFault(rule string) {
	global().ruleFaults.WithLabelValues(rule).Inc()
}

// Engine Metrics Functions.

// UpdateEngineRunning sets the running gauge.
func UpdateEngineRunning(running bool) {
	global().engineRunning.Set(boolToFloat(running))
}

// RecordEngineStart increments the start counter.
func RecordEngineStart() {
	global().engineStarts.Inc()
}

// Point Metrics Functions.

// RecordPointWrite counts an accepted input write. signal is "digital" or "analog".
func RecordPointWrite(signal string) {
	global().pointWrites.WithLabelValues(signal).Inc()
}

// RecordPointWriteRejected counts an ignored input write.
func RecordPointWriteRejected(signal, reason string) {
	global().pointWriteRejected.WithLabelValues(signal, reason).Inc()
}

// RecordSnapshot increments the snapshot counter.
func RecordSnapshot() {
	global().snapshotsTaken.Inc()
}

// UpdateDigitalPoint publishes a digital point value.
func UpdateDigitalPoint(name, kind string, value bool) {
	global().digitalPoints.WithLabelValues(name, kind).Set(boolToFloat(value))
}

// UpdateAnalogPoint publishes an analog point value.
func UpdateAnalogPoint(name, kind string, value float64) {
	global().analogPoints.WithLabelValues(name, kind).Set(value)
}

// UpdateTimerElapsed publishes a timer's elapsed seconds.
func UpdateTimerElapsed(name string, seconds float64) {
	global().timerElapsed.WithLabelValues(name).Set(seconds)
}

// UpdateCounterValue publishes a counter value.
func UpdateCounterValue(name string, value uint64) {
	global().counterValues.WithLabelValues(name).Set(float64(value))
}

// HTTP Metrics Functions.

// ObserveHTTPRequest counts one ops request and records its duration.
func ObserveHTTPRequest(endpoint, method string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	global().httpRequests.WithLabelValues(endpoint, method, code).Inc()
	global().httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(float64(d) / float64(time.Millisecond))
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	global().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	global().systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry behind the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
