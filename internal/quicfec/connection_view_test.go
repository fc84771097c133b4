package quicfec

import (
	"testing"

	"github.com/francoismichel/quirl/internal/congestion"
	"github.com/francoismichel/quirl/internal/fec"
)

func TestConnectionViewCounters(t *testing.T) {
	encoder := fec.NewFECEncoder(0.1)
	conn := NewConnectionView(encoder)

	conn.SetFlushableStream(true)
	if !conn.HasFlushableStream() {
		t.Fatal("expected HasFlushableStream() to reflect SetFlushableStream(true)")
	}

	conn.RecordSourceDataSent(1200, 1000)
	conn.RecordRepairSent(1200)

	if conn.SentCount() != 2 {
		t.Fatalf("SentCount() = %d, want 2", conn.SentCount())
	}
	if conn.SentBytes() != 2400 {
		t.Fatalf("SentBytes() = %d, want 2400", conn.SentBytes())
	}
	if conn.TxData() != 1000 {
		t.Fatalf("TxData() = %d, want 1000 (repair must not advance tx_data)", conn.TxData())
	}
}

func TestConnectionViewPaths(t *testing.T) {
	encoder := fec.NewFECEncoder(0.1)
	conn := NewConnectionView(encoder)
	cc := congestion.NewSendController(1200, 50000, "disabled")
	path := NewPathView(cc, false)

	conn.AddPath("primary", path)
	if _, ok := conn.Paths()["primary"]; !ok {
		t.Fatal("expected AddPath to register the path")
	}

	conn.RemovePath("primary")
	if _, ok := conn.Paths()["primary"]; ok {
		t.Fatal("expected RemovePath to unregister the path")
	}
}
