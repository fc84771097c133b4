package quicfec

import (
	"context"
	"testing"

	"github.com/francoismichel/quirl/internal/congestion"
	"github.com/francoismichel/quirl/internal/fec"
	"github.com/francoismichel/quirl/internal/fecsched"
)

func TestLoopDecideUnknownPath(t *testing.T) {
	encoder := fec.NewFECEncoder(0.1)
	conn := NewConnectionView(encoder)
	scheduler := fecsched.NewScheduler(fecsched.AlgorithmNoRedundancy, nil, nil)
	loop := NewLoop(scheduler, conn, nil, nil, nil)

	if _, err := loop.Decide(context.Background(), "missing", 1000); err == nil {
		t.Fatal("expected an error for an unregistered path")
	}
}

func TestLoopDecideNoRedundancyNeverSends(t *testing.T) {
	encoder := fec.NewFECEncoder(0.1)
	conn := NewConnectionView(encoder)
	cc := congestion.NewSendController(1200, 50000, "disabled")
	path := NewPathView(cc, false)
	conn.AddPath("primary", path)
	conn.SetFlushableStream(true)

	scheduler := fecsched.NewScheduler(fecsched.AlgorithmNoRedundancy, nil, nil)
	loop := NewLoop(scheduler, conn, nil, nil, nil)

	send, err := loop.Decide(context.Background(), "primary", 1000)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if send {
		t.Fatal("NoRedundancy must never ask for repair")
	}
}

func TestLoopNextTimeoutReflectsScheduler(t *testing.T) {
	encoder := fec.NewFECEncoder(0.1)
	conn := NewConnectionView(encoder)
	cc := congestion.NewSendController(1200, 50000, "disabled")
	path := NewPathView(cc, false)
	conn.AddPath("primary", path)

	scheduler := fecsched.NewScheduler(fecsched.AlgorithmBackground, nil, nil)
	loop := NewLoop(scheduler, conn, nil, nil, nil)

	// Background only arms its delaying timer inside a decision, so before
	// any Decide call no timeout is pending and NextTimeout must report
	// ok=false.
	if _, ok := loop.NextTimeout(); ok {
		t.Fatal("expected no pending timeout before any decision was made")
	}
}
