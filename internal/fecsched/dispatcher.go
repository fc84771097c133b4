package fecsched

import (
	"time"

	"go.uber.org/zap"
)

// Algorithm identifies a scheduler variant by its stable ABI value
// (spec.md §6, "Algorithm selection").
type Algorithm int

const (
	AlgorithmNoRedundancy Algorithm = iota
	AlgorithmBackground
	AlgorithmBursts
	AlgorithmBurstsOnFECOnly
	AlgorithmCooldownOnFECOnly
)

// String returns the canonical name of the algorithm, as accepted by
// ParseAlgorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmNoRedundancy:
		return "noredundancy"
	case AlgorithmBackground:
		return "background"
	case AlgorithmBursts:
		return "bursts"
	case AlgorithmBurstsOnFECOnly:
		return "bursts_feconly"
	case AlgorithmCooldownOnFECOnly:
		return "cooldown_feconly"
	default:
		return "unknown"
	}
}

// ParseAlgorithm converts a name into its Algorithm value (spec.md §6).
// Unknown names fail with ErrUnknownAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "noredundancy":
		return AlgorithmNoRedundancy, nil
	case "background":
		return AlgorithmBackground, nil
	case "bursts":
		return AlgorithmBursts, nil
	case "bursts_feconly":
		return AlgorithmBurstsOnFECOnly, nil
	case "cooldown_feconly":
		return AlgorithmCooldownOnFECOnly, nil
	default:
		return 0, &ErrUnknownAlgorithm{Name: name}
	}
}

// variant is implemented by every scheduler state machine; Scheduler
// dispatches to whichever one it holds.
type variant interface {
	ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool
	SentRepairSymbol(encoder Encoder)
	AckedRepairSymbol(encoder Encoder)
	LostRepairSymbol(encoder Encoder)
	SentSourceSymbol(encoder Encoder)
	Timeout() (time.Time, bool)
}

// Scheduler is the dispatcher: it holds exactly one variant's state and
// forwards every call to it (spec.md §4.7). It is the type the packet-
// emission loop is expected to hold one of, per connection.
type Scheduler struct {
	algorithm Algorithm
	impl      variant
}

// NewScheduler constructs a dispatcher holding the named algorithm's state
// machine. log and clock are forwarded to the concrete variant; both may be
// nil to take their zero-value defaults (a no-op logger and the real
// wall clock).
func NewScheduler(algo Algorithm, log *zap.Logger, clock Clock) *Scheduler {
	var impl variant
	switch algo {
	case AlgorithmBackground:
		impl = NewBackground(log, clock)
	case AlgorithmBursts:
		impl = NewBursts(log, clock)
	case AlgorithmBurstsOnFECOnly:
		impl = NewBurstsOnFECOnly(log, clock)
	case AlgorithmCooldownOnFECOnly:
		impl = NewCooldownOnFECOnly(log, clock)
	default:
		impl = NewNoRedundancy()
	}
	return &Scheduler{algorithm: algo, impl: impl}
}

// NewSchedulerByName resolves the named algorithm via ParseAlgorithm before
// constructing its dispatcher.
func NewSchedulerByName(name string, log *zap.Logger, clock Clock) (*Scheduler, error) {
	algo, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return NewScheduler(algo, log, clock), nil
}

// Algorithm returns the variant this dispatcher was constructed with.
func (s *Scheduler) Algorithm() Algorithm { return s.algorithm }

// ShouldSendRepair forwards to the active variant (spec.md §6).
func (s *Scheduler) ShouldSendRepair(conn Connection, path Path, symbolSize uint64) bool {
	return s.impl.ShouldSendRepair(conn, path, symbolSize)
}

// SentRepairSymbol forwards to the active variant.
func (s *Scheduler) SentRepairSymbol(encoder Encoder) { s.impl.SentRepairSymbol(encoder) }

// AckedRepairSymbol forwards to the active variant.
func (s *Scheduler) AckedRepairSymbol(encoder Encoder) { s.impl.AckedRepairSymbol(encoder) }

// LostRepairSymbol forwards to the active variant.
func (s *Scheduler) LostRepairSymbol(encoder Encoder) { s.impl.LostRepairSymbol(encoder) }

// SentSourceSymbol forwards to the active variant.
func (s *Scheduler) SentSourceSymbol(encoder Encoder) { s.impl.SentSourceSymbol(encoder) }

// Timeout forwards to the active variant.
func (s *Scheduler) Timeout() (time.Time, bool) { return s.impl.Timeout() }
