package fecsched

import (
	"testing"
	"time"
)

func TestBackgroundIdleLinkDeclinesWithNoProtectedData(t *testing.T) {
	clock := newFakeClock()
	b := NewBackground(nil, clock)

	path := &fakePath{cwnd: 50000, cwndAvailable: 10000} // bif 40000
	enc := newFakeEncoder()                              // NProtectedSymbols() == 0
	conn := newFakeConnection(path, enc)
	// nothing to send: no stream, no datagram.

	if b.ShouldSendRepair(conn, path, 1000) {
		t.Fatal("with zero protected symbols the budget is zero, so repair must be declined")
	}
}

func TestBackgroundModerateBifWaitsOutDelayThenSends(t *testing.T) {
	clock := newFakeClock()
	b := NewBackground(nil, clock)

	symbolSize := uint64(1000)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000} // bif 40000
	enc := newFakeEncoder()
	enc.nProtected = 20 // 20*1000 = 20000, min(20000, 40000) = 20000 >= 15000
	conn := newFakeConnection(path, enc)

	// First call: nothing to send, budget positive -> arms the delaying
	// timer but must not fire before backgroundDelayingDuration elapses.
	if b.ShouldSendRepair(conn, path, symbolSize) {
		t.Fatal("must not send before the delaying duration elapses")
	}
	if _, ok := b.Timeout(); !ok {
		t.Fatal("expected a pending timeout once the delaying timer is armed")
	}

	clock.Advance(3 * time.Millisecond) // past defaultBackgroundDelayingDuration (2ms)

	if !b.ShouldSendRepair(conn, path, symbolSize) {
		t.Fatal("must send once the delaying duration has elapsed")
	}
}

func TestBackgroundResetsOnSourceData(t *testing.T) {
	clock := newFakeClock()
	b := NewBackground(nil, clock)

	symbolSize := uint64(1000)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000}
	enc := newFakeEncoder()
	enc.nProtected = 20
	conn := newFakeConnection(path, enc)

	b.ShouldSendRepair(conn, path, symbolSize)
	b.SentSourceSymbol(enc)

	if _, ok := b.Timeout(); ok {
		t.Fatal("sending source data must cancel the pending delaying round")
	}
}
