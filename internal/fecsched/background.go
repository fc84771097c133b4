package fecsched

import (
	"time"

	"go.uber.org/zap"
)

// Background fills idle air-time with repair, up to a cwnd-derived budget
// (spec.md §4.3). It is the scheduler used when the host has no particular
// traffic-pattern assumptions to exploit: whenever there is nothing left to
// send and the connection hasn't already authorized enough repair, it waits
// a short, fixed delaying duration before emitting -- a brief burst-loss event can
// subside within that window so a single repair round covers the whole
// loss pattern instead of racing it.
type Background struct {
	clock Clock
	log   *zap.Logger

	nRepairInFlight    uint64
	rsTriggeringTime   *time.Time
	rsSentForThisRound bool
}

// NewBackground constructs a Background scheduler. A nil logger is
// replaced with a no-op logger; a nil clock defaults to RealClock.
func NewBackground(log *zap.Logger, clock Clock) *Background {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Background{clock: clock, log: log}
}

func (b *Background) resetDelaying() {
	b.rsTriggeringTime = nil
	b.rsSentForThisRound = false
}

// ShouldSendRepair implements spec.md §4.3.
func (b *Background) ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool {
	now := b.clock.Now()
	tn := readTunables()

	nothing := nothingToSend(conn)
	maxRepairData := b.maxRepairData(conn, path, symbolSize)

	b.log.Debug("fecsched background decision",
		zap.Bool("nothing_to_send", nothing),
		zap.Uint64("n_repair_in_flight", b.nRepairInFlight),
		zap.Uint64("max_repair_data", maxRepairData),
	)

	repairRequired := nothing && gatingConditionHolds(b.nRepairInFlight, symbolSize, maxRepairData)
	if !repairRequired {
		b.resetDelaying()
		return false
	}

	if b.rsTriggeringTime == nil {
		t := now
		b.rsTriggeringTime = &t
		b.rsSentForThisRound = false
	}

	waitedEnough := now.Sub(*b.rsTriggeringTime) >= tn.backgroundDelayingDuration
	return repairRequired && waitedEnough
}

// maxRepairData computes the protection budget. When the path carries loss
// statistics the budget tracks the observed loss rate (mean + 2*ceil(var))
// capped at a third of the aggregate in-flight bytes; without loss info it
// falls back to covering up to five losses per RTT, capped at a quarter of
// the aggregate in-flight bytes (spec.md §4.3).
func (b *Background) maxRepairData(conn Connection, path Path, symbolSize uint64) uint64 {
	totalBif := totalBytesInFlight(conn)
	bound := min64(uint64(conn.FECEncoder().NProtectedSymbols())*symbolSize, totalBif)

	if bound < symbolSize {
		return 0
	}
	if bound < 15000 {
		return bound * 3 / 5
	}

	if mean, ok := path.PacketsLostPerRoundTrip(); ok {
		variance := path.VarPacketsLostPerRoundTrip()
		lossBased := uint64(mean+2*ceilVariance(variance)) * symbolSize
		return min64(lossBased, totalBif/3)
	}

	noLossInfo := repairToSendWithNoLossInfo * symbolSize
	return min64(noLossInfo, totalBif/4)
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// SentRepairSymbol implements spec.md §4.3.
func (b *Background) SentRepairSymbol(Encoder) {
	b.nRepairInFlight++
	b.rsSentForThisRound = true
}

// AckedRepairSymbol implements spec.md §3 invariant 1: ack and loss have
// identical effect on the in-flight count.
func (b *Background) AckedRepairSymbol(Encoder) {
	b.nRepairInFlight--
}

// LostRepairSymbol has the same effect as AckedRepairSymbol.
func (b *Background) LostRepairSymbol(e Encoder) {
	b.AckedRepairSymbol(e)
}

// SentSourceSymbol closes the current round: new data has started, so the
// previous delaying decision no longer applies.
func (b *Background) SentSourceSymbol(Encoder) {
	b.resetDelaying()
}

// Timeout returns the instant at which a pending-but-not-yet-emitted round
// may fire, or ok=false when no round is pending or it already emitted.
func (b *Background) Timeout() (time.Time, bool) {
	if b.rsSentForThisRound || b.rsTriggeringTime == nil {
		return time.Time{}, false
	}
	tn := readTunables()
	return b.rsTriggeringTime.Add(tn.backgroundDelayingDuration), true
}
