package fecsched

import (
	"time"

	"go.uber.org/zap"
)

// burstSendingState is the record of an in-progress burst-protection round
// (spec.md §3, "SendingState").
type burstSendingState struct {
	startTime         time.Time // for 1-RTT expiry
	when              time.Time // earliest instant this round may emit
	burstStartOffset  uint64    // tx_data at the moment the round opened
	burstSize         uint64    // bytes in the burst that triggered the round
	repairBytesToSend uint64    // ceiling, may grow monotonically within the round
	repairSymbolsSent uint64
}

// Bursts treats application traffic as a sequence of bursts separated by
// idle points, and protects each finished burst with one sending round of
// repair, sized to the burst and shaped by loss statistics, optionally
// delayed by a bounded jitter to absorb reordering/loss-detection latency
// (spec.md §4.4). It is the most refined and most heavily used variant.
//
// Open Question (a) from spec.md §9: this implementation does not gate
// round-open on enough_room_in_cwin -- only nothing_to_send and the
// burst-size/jitter conditions gate it, matching the most-refined original
// (burst_protecting_fec_scheduler.rs). minimum_room_in_cwin is kept as a
// tunable but is only consulted by CooldownOnFECOnly.
type Bursts struct {
	clock Clock
	log   *zap.Logger

	nRepairInFlight                         uint64
	nSentStreamBytesWhenNothingToSend       uint64
	nSentStreamBytesWhenLastRepair          uint64
	currentBurstSize                        uint64
	earliestUnprotectedSourceSymbolSentTime *time.Time
	nSourceSymbolsSentSinceLastRepair       uint64
	stateSendingRepair                      *burstSendingState
	nextTimeout                             *time.Time
}

// NewBursts constructs a Bursts scheduler.
func NewBursts(log *zap.Logger, clock Clock) *Bursts {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Bursts{clock: clock, log: log}
}

// ShouldSendRepair implements the per-call transitions of spec.md §4.4.
func (s *Bursts) ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool {
	bif := bytesInFlight(path)
	return s.shouldSendRepairCore(conn, path, symbolSize, bif)
}

// shouldSendRepairCore is the shared §4.4 state machine. bif is the
// protection budget's base quantity: BurstsOnFECOnly (spec.md §4.5) passes
// total_bif across non-fec_only paths instead of the calling path's own
// bytes in flight, because repair flowing on the FEC-only path protects
// data in flight elsewhere.
func (s *Bursts) shouldSendRepairCore(conn Connection, path Path, symbolSize, bif uint64) bool {
	now := s.clock.Now()
	tn := readTunables()

	dgramsToEmit := conn.HasWritableDatagram()
	streamToEmit := conn.HasFlushableStream()
	nothing := !dgramsToEmit && !streamToEmit

	currentSentStreamBytes := conn.TxData()
	// Step 1: burst size since the last idle point.
	s.currentBurstSize = saturatingSub(currentSentStreamBytes, s.nSentStreamBytesWhenNothingToSend)
	sentEnoughProtectedData := s.currentBurstSize > tn.thresholdBurstSize

	// Step 2: close a round whose ceiling has been fully spent.
	if st := s.stateSendingRepair; st != nil {
		if st.repairSymbolsSent*symbolSize >= st.repairBytesToSend {
			s.stateSendingRepair = nil
		}
	}

	s.log.Debug("fecsched bursts decision",
		zap.Bool("nothing_to_send", nothing),
		zap.Uint64("n_repair_in_flight", s.nRepairInFlight),
		zap.Uint64("current_burst_size", s.currentBurstSize),
		zap.Bool("sent_enough_protected_data", sentEnoughProtectedData),
	)

	// Step 3: open a new round, or step 4: expire the current one.
	switch {
	case s.stateSendingRepair == nil && nothing && sentEnoughProtectedData && s.jitterGateOpen(now, tn):
		s.stateSendingRepair = &burstSendingState{
			startTime:         now,
			when:              now.Add(tn.maxJitter),
			burstStartOffset:  currentSentStreamBytes,
			burstSize:         s.currentBurstSize,
			repairBytesToSend: 0,
			repairSymbolsSent: 0,
		}
	case s.stateSendingRepair != nil:
		if now.Sub(s.stateSendingRepair.startTime) >= path.RTT() {
			s.stateSendingRepair = nil
		}
	}

	// Step 5: size the round, monotonically. This mirrors the original
	// scheduler's sizing branch exactly: no <symbol_size short-circuit
	// here (that belongs to the common envelope's protection budget, not
	// this per-round ceiling).
	if st := s.stateSendingRepair; st != nil {
		bytesToProtect := min64(bif, s.nSourceSymbolsSentSinceLastRepair*symbolSize)
		var candidate uint64
		if bytesToProtect < 15000 {
			candidate = bytesToProtect * 3 / 5
		} else {
			fracDenominator := tn.fracDenominatorToProtect
			if fracDenominator == 0 {
				fracDenominator = defaultFracDenominatorToProtect
			}
			amountWithNoLossInfo := bytesToProtect / fracDenominator
			candidate = amountWithNoLossInfo
			if mean, ok := path.PacketsLostPerRoundTrip(); ok {
				variance := path.VarPacketsLostPerRoundTrip()
				lossBased := uint64(mean+2*ceilVariance(variance)) * symbolSize
				candidate = min64(lossBased, amountWithNoLossInfo)
			}
		}
		if candidate > st.repairBytesToSend {
			st.repairBytesToSend = candidate
		}
	}

	// Step 6: idle-point bookkeeping.
	if nothing {
		s.nSentStreamBytesWhenNothingToSend = currentSentStreamBytes
		s.currentBurstSize = 0
	}

	// Step 7: emit decision.
	var shouldSend bool
	if st := s.stateSendingRepair; st != nil {
		shouldSend = !now.Before(st.when) && st.repairSymbolsSent*symbolSize < st.repairBytesToSend
	}
	if shouldSend {
		s.nSentStreamBytesWhenLastRepair = currentSentStreamBytes
	}

	// Step 8: timeout projection.
	if !shouldSend && s.stateSendingRepair != nil && now.Before(s.stateSendingRepair.when) {
		when := s.stateSendingRepair.when
		s.nextTimeout = &when
	} else {
		s.nextTimeout = nil
	}

	return shouldSend
}

// jitterGateOpen reports whether the jitter gate for opening a new round is
// open: either no unprotected source symbol is currently recorded, or the
// recorded one is already older than max_jitter.
func (s *Bursts) jitterGateOpen(now time.Time, tn tunables) bool {
	if s.earliestUnprotectedSourceSymbolSentTime == nil {
		return true
	}
	return now.After(s.earliestUnprotectedSourceSymbolSentTime.Add(tn.maxJitter))
}

// SentSourceSymbol implements spec.md §4.4.
func (s *Bursts) SentSourceSymbol(encoder Encoder) {
	now := s.clock.Now()
	tn := readTunables()

	if s.earliestUnprotectedSourceSymbolSentTime == nil {
		// Only bursts large enough to matter arm the jitter gate.
		if s.currentBurstSize > tn.thresholdBurstSize {
			t := now
			s.earliestUnprotectedSourceSymbolSentTime = &t
		}
	} else {
		stored := *s.earliestUnprotectedSourceSymbolSentTime
		if now.After(stored.Add(tn.maxJitter)) && s.currentBurstSize > tn.thresholdBurstSize {
			// A fresh burst has begun within the jitter window.
			t := now
			s.earliestUnprotectedSourceSymbolSentTime = &t
		} else if md, ok := encoder.FirstMetadata(); ok {
			if windowSentTime, ok := encoder.GetSentTime(md); ok && windowSentTime.After(stored) {
				// The protection window slid forward without any repair
				// being emitted; catch the "earliest unprotected" stamp up
				// to it.
				t := windowSentTime
				s.earliestUnprotectedSourceSymbolSentTime = &t
			}
		}
	}

	s.nSourceSymbolsSentSinceLastRepair++
}

// SentRepairSymbol implements spec.md §4.4.
func (s *Bursts) SentRepairSymbol(Encoder) {
	s.nRepairInFlight++
	s.earliestUnprotectedSourceSymbolSentTime = nil
	s.nSourceSymbolsSentSinceLastRepair = 0
	if s.stateSendingRepair != nil {
		s.stateSendingRepair.repairSymbolsSent++
	}
}

// AckedRepairSymbol implements spec.md §4.4.
func (s *Bursts) AckedRepairSymbol(Encoder) {
	s.nRepairInFlight--
}

// LostRepairSymbol has the same effect as AckedRepairSymbol (spec.md
// invariant 1: ack and loss both release the in-flight slot).
func (s *Bursts) LostRepairSymbol(e Encoder) {
	s.AckedRepairSymbol(e)
}

// Timeout returns the next wall-clock instant at which the decision could
// change.
func (s *Bursts) Timeout() (time.Time, bool) {
	if s.nextTimeout == nil {
		return time.Time{}, false
	}
	return *s.nextTimeout, true
}
