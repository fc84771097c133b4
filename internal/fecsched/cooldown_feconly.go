package fecsched

import (
	"time"

	"go.uber.org/zap"
)

// cooldownSendingState identifies the coding epoch a round was opened for
// (spec.md §3): a change in the encoder's first protected metadata
// invalidates the state, since it means a new epoch has begun.
type cooldownSendingState struct {
	firstProtectedMetadataForEpoch SymbolID
	hasMetadata                    bool
}

// CooldownOnFECOnly is an epoch-driven protector for a dedicated FEC-only
// path (spec.md §4.6). It records a round for the current coding epoch once
// there is nothing to send, enough protected data, room in the congestion
// window and the cooldown since the first unprotected source symbol has
// elapsed; a new epoch drops that record. The emission decision itself is
// should_probe || (enough room in cwnd && repair in flight below the
// total_bif budget): neither the epoch record nor the cooldown gates it.
// Repair doubles as a bandwidth probe when the path is app-limited and
// under its configured goodput target.
type CooldownOnFECOnly struct {
	clock Clock
	log   *zap.Logger

	nRepairInFlight                  uint64
	nPacketsSentWhenNothingToSend    uint64
	nBytesSentWhenNothingToSend      uint64
	firstSourceSymbolInBurstSentTime *time.Time
	stateSendingRepair               *cooldownSendingState
}

// NewCooldownOnFECOnly constructs a CooldownOnFECOnly scheduler.
func NewCooldownOnFECOnly(log *zap.Logger, clock Clock) *CooldownOnFECOnly {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &CooldownOnFECOnly{clock: clock, log: log}
}

// ShouldSendRepair implements spec.md §4.6.
func (c *CooldownOnFECOnly) ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool {
	now := c.clock.Now()
	if !path.FECOnly() {
		return false
	}
	tn := readTunables()

	// A change of coding epoch invalidates any in-progress round.
	if c.stateSendingRepair != nil {
		md, ok := conn.FECEncoder().FirstMetadata()
		same := ok == c.stateSendingRepair.hasMetadata && (!ok || md == c.stateSendingRepair.firstProtectedMetadataForEpoch)
		if !same {
			c.stateSendingRepair = nil
		}
	}

	dgramsToEmit := conn.HasWritableDatagram()
	streamToEmit := conn.HasFlushableStream()
	nothing := !dgramsToEmit && !streamToEmit

	totalBif := totalBytesInFlight(conn)
	cwinAvailable := path.CWNDAvailable()
	enoughRoomInCwin := cwinAvailable > tn.minimumRoomInCwin
	sentEnoughProtectedData := uint64(conn.FECEncoder().NProtectedSymbols())*symbolSize > tn.thresholdBurstSize

	// should_probe: repair doubles as a bandwidth probe under app-limited
	// conditions, regardless of burst/cooldown state. Float division by a
	// zero RTT yields +Inf (or NaN when total_bif is also zero), and both
	// compare false against a finite target -- matching "don't probe"
	// without a special case.
	goodput := 8 * float64(totalBif) / path.RTT().Seconds()
	shouldProbe := path.AppLimited() && goodput < float64(tn.bandwidthProbingBPS)

	// The cooldown gate is parenthesized to short-circuit on is_none():
	// spec.md §9 Open Question (b) flags a historical revision that didn't,
	// and would have panicked dereferencing a None timestamp.
	cooldownOK := c.firstSourceSymbolInBurstSentTime == nil ||
		now.After(c.firstSourceSymbolInBurstSentTime.Add(tn.cooldown))

	c.log.Debug("fecsched cooldown_feconly decision",
		zap.Bool("nothing_to_send", nothing),
		zap.Bool("should_probe", shouldProbe),
		zap.Bool("enough_room_in_cwin", enoughRoomInCwin),
		zap.Bool("sent_enough_protected_data", sentEnoughProtectedData),
		zap.Bool("cooldown_ok", cooldownOK),
	)

	if c.stateSendingRepair == nil && nothing && sentEnoughProtectedData && enoughRoomInCwin && cooldownOK {
		md, ok := conn.FECEncoder().FirstMetadata()
		c.stateSendingRepair = &cooldownSendingState{firstProtectedMetadataForEpoch: md, hasMetadata: ok}
	}

	if nothing {
		c.nPacketsSentWhenNothingToSend = conn.SentCount()
		c.nBytesSentWhenNothingToSend = conn.SentBytes()
	}

	bytesToProtect := totalBif
	budget := cooldownBudget(bytesToProtect, tn.fracDenominatorToProtect)

	return shouldProbe || (enoughRoomInCwin && c.nRepairInFlight*symbolSize < budget)
}

// cooldownBudget computes spec.md §4.6's final gate budget:
// total_bif·3/5 if <15000, else total_bif/D.
func cooldownBudget(totalBif, fracDenominator uint64) uint64 {
	if fracDenominator == 0 {
		fracDenominator = defaultFracDenominatorToProtect
	}
	if totalBif < 15000 {
		return totalBif * 3 / 5
	}
	return totalBif / fracDenominator
}

// SentRepairSymbol implements spec.md §4.6.
func (c *CooldownOnFECOnly) SentRepairSymbol(Encoder) {
	c.nRepairInFlight++
	c.firstSourceSymbolInBurstSentTime = nil
}

// AckedRepairSymbol implements spec.md §4.6.
func (c *CooldownOnFECOnly) AckedRepairSymbol(Encoder) {
	c.nRepairInFlight--
}

// LostRepairSymbol has the same effect as AckedRepairSymbol.
func (c *CooldownOnFECOnly) LostRepairSymbol(e Encoder) {
	c.AckedRepairSymbol(e)
}

// SentSourceSymbol implements spec.md §4.6.
func (c *CooldownOnFECOnly) SentSourceSymbol(Encoder) {
	if c.firstSourceSymbolInBurstSentTime == nil {
		t := c.clock.Now()
		c.firstSourceSymbolInBurstSentTime = &t
	}
}

// Timeout is advisory only; CooldownOnFECOnly has no jitter window to
// project, so it reports no scheduled wakeup.
func (c *CooldownOnFECOnly) Timeout() (time.Time, bool) {
	return time.Time{}, false
}
