package quicfec

import (
	"testing"
	"time"

	"github.com/francoismichel/quirl/internal/congestion"
)

func TestPathViewCWNDAvailableTracksInFlight(t *testing.T) {
	cc := congestion.NewSendController(1200, 50000, "disabled")
	p := NewPathView(cc, false)

	before := p.CWNDAvailable()
	p.OnPacketSent(1000)
	if got := p.CWNDAvailable(); got != before-1000 {
		t.Fatalf("CWNDAvailable() after send = %d, want %d", got, before-1000)
	}

	p.OnPacketAcked(1000, 20*time.Millisecond)
	if got := p.CWNDAvailable(); got != before {
		t.Fatalf("CWNDAvailable() after ack = %d, want %d", got, before)
	}
	if got := p.RTT(); got != 20*time.Millisecond {
		t.Fatalf("RTT() = %v, want 20ms", got)
	}
}

func TestPathViewLossStatsAndFECOnly(t *testing.T) {
	cc := congestion.NewSendController(1200, 50000, "disabled")
	p := NewPathView(cc, true)

	if !p.FECOnly() {
		t.Fatal("expected fec_only path to report FECOnly() == true")
	}
	if _, ok := p.PacketsLostPerRoundTrip(); ok {
		t.Fatal("expected no loss estimate before any round trip")
	}

	p.OnRoundTripLossObserved(2)
	p.OnRoundTripLossObserved(4)
	if mean, ok := p.PacketsLostPerRoundTrip(); !ok || mean != 3 {
		t.Fatalf("mean = %v (ok=%v), want 3", mean, ok)
	}
}
