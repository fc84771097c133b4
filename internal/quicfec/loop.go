package quicfec

import (
	"context"
	"fmt"
	"time"

	"github.com/francoismichel/quirl/internal/fecsched"
	"go.uber.org/zap"
)

// Loop is the packet-emission collaborator: at every sending opportunity
// the transport asks it whether to emit repair instead of source data,
// and reports back send/ack/loss events so the scheduler's state stays
// current. It holds no decision logic itself -- every call is a straight
// forward to the wrapped fecsched.Scheduler.
type Loop struct {
	scheduler *fecsched.Scheduler
	conn      *ConnectionView
	metrics   *fecsched.Metrics
	clock     fecsched.Clock
	log       *zap.Logger
}

// NewLoop constructs a Loop. metrics and log may be nil.
func NewLoop(scheduler *fecsched.Scheduler, conn *ConnectionView, metrics *fecsched.Metrics, clock fecsched.Clock, log *zap.Logger) *Loop {
	if clock == nil {
		clock = fecsched.RealClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{scheduler: scheduler, conn: conn, metrics: metrics, clock: clock, log: log}
}

// Decide asks the scheduler whether the next packet on pathID should
// carry a repair symbol. It returns an error if pathID is not registered
// on the connection view.
func (l *Loop) Decide(ctx context.Context, pathID string, symbolSize uint64) (bool, error) {
	path, ok := l.conn.Paths()[pathID]
	if !ok {
		return false, fmt.Errorf("quicfec: unknown path %q", pathID)
	}

	shouldSend := l.scheduler.ShouldSendRepair(l.conn, path, symbolSize)

	traceDecision(ctx, pathID, l.scheduler.Algorithm().String(), shouldSend)
	if l.metrics != nil {
		l.metrics.ObserveDecision(l.scheduler.Algorithm(), shouldSend)
	}

	return shouldSend, nil
}

// SentRepairSymbol reports that a repair symbol was just sent.
func (l *Loop) SentRepairSymbol() {
	l.scheduler.SentRepairSymbol(l.conn.FECEncoder())
}

// AckedRepairSymbol reports that a repair symbol was just acknowledged.
func (l *Loop) AckedRepairSymbol() {
	l.scheduler.AckedRepairSymbol(l.conn.FECEncoder())
}

// LostRepairSymbol reports that a repair symbol was just declared lost.
func (l *Loop) LostRepairSymbol() {
	l.scheduler.LostRepairSymbol(l.conn.FECEncoder())
}

// SentSourceSymbol reports that a source symbol was just sent.
func (l *Loop) SentSourceSymbol() {
	l.scheduler.SentSourceSymbol(l.conn.FECEncoder())
}

// NextTimeout reports how long the transport should wait before calling
// Decide again on its own, absent any other sending opportunity. ok is
// false when the scheduler has nothing pending.
func (l *Loop) NextTimeout() (d time.Duration, ok bool) {
	when, ok := l.scheduler.Timeout()
	if !ok {
		return 0, false
	}
	d = when.Sub(l.clock.Now())
	if d < 0 {
		d = 0
	}
	return d, true
}
