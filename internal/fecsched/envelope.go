package fecsched

import "math"

// saturatingSub returns a-b, clamped to zero instead of wrapping (spec.md
// §4.1, "bif := cwnd - cwnd_available, saturating at zero").
func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// bytesInFlight returns a path's bytes currently in flight.
func bytesInFlight(p Path) uint64 {
	return saturatingSub(p.CWND(), p.CWNDAvailable())
}

// totalBytesInFlight sums bytes in flight over every path that is not
// dedicated to FEC-only traffic (spec.md §4.1).
func totalBytesInFlight(conn Connection) uint64 {
	var total uint64
	for _, p := range conn.Paths() {
		if p.FECOnly() {
			continue
		}
		total += bytesInFlight(p)
	}
	return total
}

// nothingToSend reports whether the connection currently has no source
// data or datagram ready to send (spec.md §4.1).
func nothingToSend(conn Connection) bool {
	return !conn.HasWritableDatagram() && !conn.HasFlushableStream()
}

// ceilVariance rounds a loss-variance estimate up, as every original
// scheduler variant does before folding it into a repair budget.
func ceilVariance(v float64) float64 {
	return math.Ceil(v)
}

// maxRepairDataFromBase computes the protection budget (spec.md §4.1) from
// a base byte quantity B, using D as frac_denominator_to_protect and the
// refined 3/5 small-burst fraction (the legacy 4/5 fraction exists only in
// historical variants not implemented here; see legacyBurstFraction).
func maxRepairDataFromBase(base, symbolSize, fracDenominator uint64) uint64 {
	if fracDenominator == 0 {
		fracDenominator = defaultFracDenominatorToProtect
	}
	if base < symbolSize {
		return 0
	}
	if base < 15000 {
		return base * 3 / 5
	}
	return base / fracDenominator
}

// gatingConditionHolds reports whether cumulative unacknowledged repair is
// still below the given budget (spec.md §4.1).
func gatingConditionHolds(nRepairInFlight uint64, symbolSize, maxRepairData uint64) bool {
	return nRepairInFlight*symbolSize < maxRepairData
}
