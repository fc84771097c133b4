package fecsched

import "testing"

func TestNoRedundancyNeverSendsRepair(t *testing.T) {
	s := NewNoRedundancy()
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000}
	conn := newFakeConnection(path, newFakeEncoder())
	conn.hasStream = true

	if s.ShouldSendRepair(conn, path, 1000) {
		t.Fatal("NoRedundancy must never send repair")
	}

	// Event callbacks are no-ops; calling them must not panic.
	s.SentRepairSymbol(nil)
	s.AckedRepairSymbol(nil)
	s.LostRepairSymbol(nil)
	s.SentSourceSymbol(nil)

	if _, ok := s.Timeout(); ok {
		t.Fatal("NoRedundancy must never schedule a timeout")
	}
}
