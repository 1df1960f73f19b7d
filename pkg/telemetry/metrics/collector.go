package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"turtlescript/console/pkg/config"
	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/eval"
)

// maxFunctionLabels bounds the number of distinct function names tracked.
const maxFunctionLabels = 1000

// Collector owns every interpreter metric. It is safe for concurrent use.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	runMetrics         *RunMetrics
	interpreterMetrics *InterpreterMetrics

	cardinalityLimiter *CardinalityLimiter
}

var _ eval.Observer = (*Collector)(nil)

// NewCollector creates a collector with the specified configuration and
// Prometheus registry. If registry is nil, a fresh registry is created so
// tests and multiple sessions never collide on registration.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Path == "" {
		cfg.Path = config.DefaultMetricsPath
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		runMetrics:         NewRunMetrics(cfg, registry),
		interpreterMetrics: NewInterpreterMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(maxFunctionLabels),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordRun records one executed input.
//
// Parameters:
//   - source: where the input came from ("file", "interactive", "watch", ...)
//   - status: outcome, one of the Status constants
//   - duration: parse and execution time
//   - nodes: size of the parsed tree, 0 when parsing failed
func (c *Collector) RecordRun(source string, status Status, duration time.Duration, nodes int) {
	if !c.config.Enabled {
		return
	}
	c.runMetrics.RecordRun(source, status, duration, nodes)
}

// ObserveStatement counts an executed statement.
func (c *Collector) ObserveStatement(kind ast.Kind) {
	if !c.config.Enabled {
		return
	}
	c.interpreterMetrics.statementsTotal.WithLabelValues(string(kind)).Inc()
}

// ObserveTurtle counts a device call.
func (c *Collector) ObserveTurtle(action ast.Action) {
	if !c.config.Enabled {
		return
	}
	c.interpreterMetrics.actionsTotal.WithLabelValues(string(action)).Inc()
}

// ObserveDiagnostic counts a recoverable script error.
func (c *Collector) ObserveDiagnostic(kind eval.DiagnosticKind) {
	if !c.config.Enabled {
		return
	}
	c.interpreterMetrics.diagnosticsTotal.WithLabelValues(string(kind)).Inc()
}

// ObserveCall counts a function call and the depth it ran at.
func (c *Collector) ObserveCall(name string, depth int) {
	if !c.config.Enabled {
		return
	}
	if !c.cardinalityLimiter.Allow(name) {
		name = "other"
	}
	c.interpreterMetrics.RecordCall(name, depth)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if the limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
