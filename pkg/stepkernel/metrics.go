package stepkernel

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds optional instrumentation counters for a Module: how
// many unifications were attempted during method dispatch, how many
// succeeded, and how many times the dispatch loop had to backtrack to
// the next method. None of this affects control flow — it exists
// purely so a host embedding the engine can plug a
// prometheus.Registerer in and watch backtracking behavior in
// production.
type Metrics struct {
	unifyAttempts  prometheus.Counter
	unifySuccesses prometheus.Counter
	backtracks     prometheus.Counter
}

// NewMetrics builds a Metrics instance. If reg is non-nil the counters
// are registered against it; if registration fails because the same
// collectors were already registered (a common occurrence when a host
// builds several Modules against one shared registry), the existing
// collectors are reused instead of erroring, matching the
// already-registered-is-fine idiom used throughout the Prometheus Go
// client's own examples.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		unifyAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepkanren_unify_attempts_total",
			Help: "Total unification attempts made while dispatching method candidates.",
		}),
		unifySuccesses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepkanren_unify_successes_total",
			Help: "Total unification attempts that succeeded during method dispatch.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepkanren_backtracks_total",
			Help: "Total times the method-try loop backtracked to the next candidate method.",
		}),
	}
	if reg == nil {
		return m
	}
	register(reg, &m.unifyAttempts)
	register(reg, &m.unifySuccesses)
	register(reg, &m.backtracks)
	return m
}

func register(reg prometheus.Registerer, c *prometheus.Counter) {
	if err := reg.Register(*c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = are.ExistingCollector.(prometheus.Counter)
		}
	}
}

func (m *Metrics) observeUnify(success bool) {
	if m == nil {
		return
	}
	m.unifyAttempts.Inc()
	if success {
		m.unifySuccesses.Inc()
	}
}

func (m *Metrics) observeBacktrack() {
	if m == nil {
		return
	}
	m.backtracks.Inc()
}
