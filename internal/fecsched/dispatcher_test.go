package fecsched

import "testing"

func TestParseAlgorithmRoundTrip(t *testing.T) {
	names := []string{"noredundancy", "background", "bursts", "bursts_feconly", "cooldown_feconly"}
	for _, name := range names {
		algo, err := ParseAlgorithm(name)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q) returned error: %v", name, err)
		}
		if algo.String() != name {
			t.Fatalf("algorithm %v round-tripped to %q, want %q", algo, algo.String(), name)
		}
	}
}

func TestParseAlgorithmUnknownName(t *testing.T) {
	_, err := ParseAlgorithm("made-up")
	if err == nil {
		t.Fatal("expected an error for an unknown algorithm name")
	}
	if _, ok := err.(*ErrUnknownAlgorithm); !ok {
		t.Fatalf("expected *ErrUnknownAlgorithm, got %T", err)
	}
}

func TestNewSchedulerByNameUnknown(t *testing.T) {
	if _, err := NewSchedulerByName("nope", nil, nil); err == nil {
		t.Fatal("expected an error constructing a scheduler from an unknown name")
	}
}

func TestNewSchedulerDispatchesToNoRedundancyByDefault(t *testing.T) {
	s := NewScheduler(AlgorithmNoRedundancy, nil, nil)
	path := &fakePath{cwnd: 50000, cwndAvailable: 10000}
	conn := newFakeConnection(path, newFakeEncoder())
	conn.hasStream = true

	if s.ShouldSendRepair(conn, path, 1000) {
		t.Fatal("AlgorithmNoRedundancy must never send repair")
	}
	if s.Algorithm() != AlgorithmNoRedundancy {
		t.Fatalf("Algorithm() = %v, want AlgorithmNoRedundancy", s.Algorithm())
	}
}
