package fecsched

import "time"

// NoRedundancy is the degenerate scheduler variant: FEC is disabled, it
// always declines to send repair, and every notification is a no-op
// (spec.md §4.2).
type NoRedundancy struct{}

// NewNoRedundancy returns a disabled scheduler.
func NewNoRedundancy() *NoRedundancy { return &NoRedundancy{} }

func (*NoRedundancy) ShouldSendRepair(Connection, Path, uint64) bool { return false }
func (*NoRedundancy) SentRepairSymbol(Encoder)                       {}
func (*NoRedundancy) AckedRepairSymbol(Encoder)                      {}
func (*NoRedundancy) LostRepairSymbol(Encoder)                       {}
func (*NoRedundancy) SentSourceSymbol(Encoder)                       {}
func (*NoRedundancy) Timeout() (time.Time, bool)                     { return time.Time{}, false }
