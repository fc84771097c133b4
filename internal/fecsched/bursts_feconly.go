package fecsched

import (
	"time"

	"go.uber.org/zap"
)

// BurstsOnFECOnly is the Bursts state machine (spec.md §4.4) restricted to
// a dedicated FEC-only path, sizing its rounds from the aggregate bytes in
// flight across the data paths rather than the FEC-only path's own
// (typically near-zero) bytes in flight (spec.md §4.5).
type BurstsOnFECOnly struct {
	engine *Bursts
}

// NewBurstsOnFECOnly constructs a BurstsOnFECOnly scheduler.
func NewBurstsOnFECOnly(log *zap.Logger, clock Clock) *BurstsOnFECOnly {
	return &BurstsOnFECOnly{engine: NewBursts(log, clock)}
}

// ShouldSendRepair implements spec.md §4.5: returns false immediately on
// any path other than the FEC-only one.
func (s *BurstsOnFECOnly) ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool {
	if !path.FECOnly() {
		return false
	}
	totalBif := totalBytesInFlight(conn)
	return s.engine.shouldSendRepairCore(conn, path, symbolSize, totalBif)
}

func (s *BurstsOnFECOnly) SentRepairSymbol(e Encoder)  { s.engine.SentRepairSymbol(e) }
func (s *BurstsOnFECOnly) AckedRepairSymbol(e Encoder) { s.engine.AckedRepairSymbol(e) }
func (s *BurstsOnFECOnly) LostRepairSymbol(e Encoder)  { s.engine.LostRepairSymbol(e) }
func (s *BurstsOnFECOnly) SentSourceSymbol(e Encoder)  { s.engine.SentSourceSymbol(e) }
func (s *BurstsOnFECOnly) Timeout() (time.Time, bool)  { return s.engine.Timeout() }
