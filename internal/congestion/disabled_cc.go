package congestion

import "time"

// disabledCWND pins the congestion window at int's maximum minus one,
// mirroring usize::MAX-1: large enough that no sender ever finds itself
// cwnd-limited, while leaving room for saturating arithmetic elsewhere to
// add one more byte without wrapping.
const disabledCWND = int(^uint(0)>>1) - 1

// DisabledController is a congestion controller that never throttles:
// every ack and every congestion event pins the window back to
// disabledCWND. It is a strict plug-in of CongestionController and
// contains no decision logic of its own -- it exists for measurement
// setups (e.g. isolating the FEC scheduler's own behavior) where cwnd
// must not become a confound.
type DisabledController struct {
	pacingBps int64
}

// NewDisabledController constructs a DisabledController with an
// effectively unbounded pacing rate as well, so the pacer never
// throttles either.
func NewDisabledController() *DisabledController {
	return &DisabledController{pacingBps: int64(disabledCWND)}
}

// OnAck implements CongestionController: cwnd is pinned on every ack.
func (d *DisabledController) OnAck(Sample) (cwnd int, pacing int64) {
	return disabledCWND, d.pacingBps
}

// OnLoss implements CongestionController: cwnd is pinned on every
// congestion event too.
func (d *DisabledController) OnLoss() (cwnd int, pacing int64) {
	return disabledCWND, d.pacingBps
}

// GetCWND implements CongestionController.
func (d *DisabledController) GetCWND() int { return disabledCWND }

// GetPacingRate implements CongestionController.
func (d *DisabledController) GetPacingRate() int64 { return d.pacingBps }

// GetBandwidth implements CongestionController. A disabled controller
// makes no bandwidth estimate.
func (d *DisabledController) GetBandwidth() float64 { return 0 }

// GetMinRTT implements CongestionController. A disabled controller keeps
// no RTT history.
func (d *DisabledController) GetMinRTT() time.Duration { return 0 }

// SetQlogCallback implements CongestionController. DisabledController
// emits no qlog events since it never changes state.
func (d *DisabledController) SetQlogCallback(func(eventType string, data map[string]interface{})) {
}
