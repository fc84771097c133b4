package fecsched

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments a Scheduler with Prometheus counters/gauges for
// decision outcomes and an HDR histogram of the latency between a round's
// open and its first emitted repair symbol. It is an optional observer:
// nothing in the scheduler's own decision logic depends on it.
type Metrics struct {
	mu sync.Mutex

	roundOpenToEmit *hdrhistogram.Histogram
	pendingOpens    map[Algorithm]time.Time

	decisions   *prometheus.CounterVec
	repairState *prometheus.GaugeVec
	roundOpens  prometheus.Counter
}

// NewMetrics constructs Metrics and registers its collectors against reg.
// Passing prometheus.DefaultRegisterer registers them process-wide; a nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		// 1us to 10s, 3 significant digits.
		roundOpenToEmit: hdrhistogram.New(1, 10000000, 3),
		pendingOpens:    make(map[Algorithm]time.Time),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fecsched_decisions_total",
			Help: "FEC scheduler decisions by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		repairState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fecsched_repair_in_flight",
			Help: "Repair symbols emitted but not yet acked or lost.",
		}, []string{"algorithm"}),
		roundOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fecsched_rounds_opened_total",
			Help: "Burst-protection rounds opened (Bursts/BurstsOnFECOnly/CooldownOnFECOnly).",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.decisions, m.repairState, m.roundOpens)
	}
	return m
}

// ObserveDecision records a should_send_repair outcome.
func (m *Metrics) ObserveDecision(algo Algorithm, sent bool) {
	outcome := "decline"
	if sent {
		outcome = "send"
	}
	m.decisions.WithLabelValues(algo.String(), outcome).Inc()
}

// SetRepairInFlight records the current in-flight repair gauge.
func (m *Metrics) SetRepairInFlight(algo Algorithm, n uint64) {
	m.repairState.WithLabelValues(algo.String()).Set(float64(n))
}

// RoundOpened marks the start of a burst-protection round for latency
// measurement.
func (m *Metrics) RoundOpened(algo Algorithm, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingOpens[algo] = at
	m.roundOpens.Inc()
}

// RoundEmitted records the open-to-first-emit latency for a round, if one
// was open.
func (m *Metrics) RoundEmitted(algo Algorithm, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	opened, ok := m.pendingOpens[algo]
	if !ok {
		return
	}
	delete(m.pendingOpens, algo)
	latency := at.Sub(opened)
	if us := latency.Microseconds(); us > 0 {
		_ = m.roundOpenToEmit.RecordValue(us)
	}
}

// RoundOpenToEmitP99 returns the p99 open-to-emit latency recorded so far.
func (m *Metrics) RoundOpenToEmitP99() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roundOpenToEmit.TotalCount() == 0 {
		return 0
	}
	return time.Duration(m.roundOpenToEmit.ValueAtQuantile(99.0)) * time.Microsecond
}
