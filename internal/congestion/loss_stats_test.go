package congestion

import "testing"

func TestLossStatsMeanBeforeAnySample(t *testing.T) {
	l := NewLossStats()
	if _, ok := l.Mean(); ok {
		t.Fatal("expected no mean before any round trip is recorded")
	}
	if v := l.Variance(); v != 0 {
		t.Fatalf("expected zero variance before any samples, got %v", v)
	}
}

func TestLossStatsMeanAndVariance(t *testing.T) {
	l := NewLossStats()
	for _, lost := range []int{2, 4, 4, 4, 5, 5, 7, 9} {
		l.RecordRoundTrip(lost)
	}

	mean, ok := l.Mean()
	if !ok {
		t.Fatal("expected a mean after recording round trips")
	}
	if mean != 5 {
		t.Fatalf("mean = %v, want 5", mean)
	}

	if v := l.Variance(); v <= 0 {
		t.Fatalf("expected a positive variance for a non-constant sample, got %v", v)
	}
}

func TestLossStatsReset(t *testing.T) {
	l := NewLossStats()
	l.RecordRoundTrip(3)
	l.Reset()
	if _, ok := l.Mean(); ok {
		t.Fatal("expected Reset to clear the recorded mean")
	}
}
