package fecsched

import (
	"testing"
	"time"
)

func TestBurstsOpensRoundAndEmitsAfterThreshold(t *testing.T) {
	clock := newFakeClock()
	s := NewBursts(nil, clock)

	symbolSize := uint64(1000)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000, rtt: 50 * time.Millisecond} // bif 40000
	enc := newFakeEncoder()
	conn := newFakeConnection(path, enc)

	// Still sending: establishes a burst above threshold (15000B default)
	// without opening a round.
	conn.hasStream = true
	conn.txData = 20000
	if s.ShouldSendRepair(conn, path, symbolSize) {
		t.Fatal("must not open a round while data is still flowing")
	}

	for i := 0; i < 20; i++ {
		s.SentSourceSymbol(enc)
	}

	clock.Advance(time.Microsecond) // past the (zero) jitter window

	conn.hasStream = false
	conn.hasDatagram = false
	if !s.ShouldSendRepair(conn, path, symbolSize) {
		t.Fatal("expected a round to open and emit once the burst goes idle")
	}

	s.SentRepairSymbol(enc)

	// The round stays open and keeps emitting until its ceiling is spent.
	if !s.ShouldSendRepair(conn, path, symbolSize) {
		t.Fatal("expected the round to keep emitting below its ceiling")
	}
}

func TestBurstsRTTExpiresStaleRound(t *testing.T) {
	clock := newFakeClock()
	s := NewBursts(nil, clock)

	symbolSize := uint64(1000)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000, rtt: 10 * time.Millisecond}
	enc := newFakeEncoder()
	conn := newFakeConnection(path, enc)

	conn.hasStream = true
	conn.txData = 20000
	s.ShouldSendRepair(conn, path, symbolSize)
	for i := 0; i < 20; i++ {
		s.SentSourceSymbol(enc)
	}

	clock.Advance(time.Microsecond)
	conn.hasStream = false
	s.ShouldSendRepair(conn, path, symbolSize)

	if s.stateSendingRepair == nil {
		t.Fatal("expected a round to be open before the RTT expiry test")
	}

	clock.Advance(20 * time.Millisecond) // exceeds path.RTT()
	s.ShouldSendRepair(conn, path, symbolSize)

	if s.stateSendingRepair != nil {
		t.Fatal("round should have expired after one RTT with no new burst")
	}
}

func TestBurstsJitterGateDelaysRoundOpen(t *testing.T) {
	clock := newFakeClock()
	s := NewBursts(nil, clock)

	symbolSize := uint64(1000)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000, rtt: 50 * time.Millisecond}
	enc := newFakeEncoder()
	conn := newFakeConnection(path, enc)

	conn.hasStream = true
	conn.txData = 20000
	s.ShouldSendRepair(conn, path, symbolSize)
	s.SentSourceSymbol(enc) // arms the jitter gate at clock.now

	conn.hasStream = false
	// Same instant: jitter gate must still be closed (not yet After the
	// armed timestamp), so no round opens on this call.
	s.ShouldSendRepair(conn, path, symbolSize)
	if s.stateSendingRepair != nil {
		t.Fatal("round must not open at the exact jitter-arming instant")
	}
}
