// Package quicfec wires the fecsched scheduler to a live connection: it
// adapts congestion/loss state into fecsched's read-only views and drives
// the scheduler's event callbacks from the connection's actual send/ack/
// loss events. It performs no packet I/O of its own -- encoding, wire
// format and retransmission stay the responsibility of the transport and
// the fec package.
package quicfec

import (
	"sync"
	"time"

	"github.com/francoismichel/quirl/internal/congestion"
	"github.com/francoismichel/quirl/internal/fecsched"
)

// PathView adapts one network path's congestion and loss state to
// fecsched.Path. It is safe for concurrent use: callers update it from
// the connection's send/ack/loss callbacks while the scheduler reads it
// from the same goroutine at a sending opportunity, but nothing in this
// package assumes single-threaded access the way fecsched itself does.
type PathView struct {
	mu sync.RWMutex

	cc      *congestion.SendController
	loss    *congestion.LossStats
	rtt     time.Duration
	limited bool
	fecOnly bool

	bytesInFlight uint64
}

// NewPathView constructs a PathView over an already-configured send
// controller. fecOnly marks a path as dedicated to repair traffic,
// excluding it from total_bif aggregation (fecsched's totalBytesInFlight).
func NewPathView(cc *congestion.SendController, fecOnly bool) *PathView {
	return &PathView{
		cc:      cc,
		loss:    congestion.NewLossStats(),
		fecOnly: fecOnly,
	}
}

// OnPacketSent records bytes leaving on this path.
func (p *PathView) OnPacketSent(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bytesInFlight += uint64(size)
}

// OnPacketAcked records bytes leaving flight on this path and folds the
// round trip's RTT sample into the path's smoothed estimate (the first
// sample is taken as-is, later ones weighted 1/8 against 7/8 of the
// previous estimate).
func (p *PathView) OnPacketAcked(size int, rtt time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bytesInFlight = saturatingSub(p.bytesInFlight, uint64(size))
	if p.rtt == 0 {
		p.rtt = rtt
	} else {
		p.rtt = (7*p.rtt + rtt) / 8
	}
}

// OnPacketLost records bytes leaving flight on this path.
func (p *PathView) OnPacketLost(size int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bytesInFlight = saturatingSub(p.bytesInFlight, uint64(size))
}

// OnRoundTripLossObserved folds one round trip's lost-packet count into
// the path's loss statistics.
func (p *PathView) OnRoundTripLossObserved(lost int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loss.RecordRoundTrip(lost)
}

// SetAppLimited records whether the path is currently sending less than
// cwnd allows because the application has nothing more to send.
func (p *PathView) SetAppLimited(limited bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.limited = limited
}

// CWND implements fecsched.Path.
func (p *PathView) CWND() uint64 {
	return uint64(p.cc.GetCWND())
}

// CWNDAvailable implements fecsched.Path.
func (p *PathView) CWNDAvailable() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return saturatingSub(uint64(p.cc.GetCWND()), p.bytesInFlight)
}

// RTT implements fecsched.Path.
func (p *PathView) RTT() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rtt
}

// AppLimited implements fecsched.Path.
func (p *PathView) AppLimited() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.limited
}

// PacketsLostPerRoundTrip implements fecsched.Path.
func (p *PathView) PacketsLostPerRoundTrip() (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loss.Mean()
}

// VarPacketsLostPerRoundTrip implements fecsched.Path.
func (p *PathView) VarPacketsLostPerRoundTrip() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loss.Variance()
}

// FECOnly implements fecsched.Path.
func (p *PathView) FECOnly() bool {
	return p.fecOnly
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

var _ fecsched.Path = (*PathView)(nil)
