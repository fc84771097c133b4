package congestion

// LossStats tracks the mean and variance of packets lost per round trip,
// updated one round trip at a time via Welford's online algorithm. It
// backs the FEC scheduler's loss-aware protection budget (Background and
// Bursts consult it to size repair against the observed loss rate), which
// is why both the mean and the variance must stay available without
// buffering every sample.
type LossStats struct {
	count    int
	mean     float64
	m2       float64 // sum of squared deviations from the mean
}

// NewLossStats constructs an empty tracker. The zero value is also ready
// to use.
func NewLossStats() *LossStats {
	return &LossStats{}
}

// RecordRoundTrip folds one round trip's lost-packet count into the
// running mean/variance.
func (l *LossStats) RecordRoundTrip(lost int) {
	l.count++
	delta := float64(lost) - l.mean
	l.mean += delta / float64(l.count)
	delta2 := float64(lost) - l.mean
	l.m2 += delta * delta2
}

// Mean returns the mean packets lost per round trip, or ok=false before
// the first round trip has been recorded.
func (l *LossStats) Mean() (mean float64, ok bool) {
	if l.count == 0 {
		return 0, false
	}
	return l.mean, true
}

// Variance returns the sample variance of packets lost per round trip.
// It is zero (not meaningful) until at least two round trips have been
// recorded.
func (l *LossStats) Variance() float64 {
	if l.count < 2 {
		return 0
	}
	return l.m2 / float64(l.count-1)
}

// Reset clears all accumulated history, e.g. after a path migration.
func (l *LossStats) Reset() {
	*l = LossStats{}
}
