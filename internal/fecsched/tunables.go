package fecsched

import (
	"os"
	"strconv"
	"time"
)

// Tunable names, read from the environment on every decision (spec.md §6).
// Malformed or absent values fall back to the documented default -- this
// "hot-reload" behavior is intentional for experiment harnessing, not a
// bug: a running connection can have its FEC aggressiveness adjusted by an
// operator without a restart.
const (
	envBackgroundDelayingDurationUS = "DEBUG_QUICHE_FEC_BACKGROUND_DELAYING_DURATION_US"
	envBurstSizeBytes               = "DEBUG_QUICHE_FEC_BURST_SIZE_BYTES"
	envMaxJitterUS                  = "DEBUG_QUICHE_FEC_MAX_JITTER_US"
	envCooldownUS                   = "DEBUG_QUICHE_FEC_COOLDOWN_US"
	envFracDenominatorToProtect      = "DEBUG_QUICHE_DEFAULT_FRAC_DENOMINATOR_TO_PROTECT"
	envMinimumRoomInCwin             = "DEBUG_QUICHE_MINIMUM_ROOM_IN_CWIN"
	envBandwidthProbingBPS           = "DEBUG_QUICHE_BANDWIDTH_PROBING_BPS"
	envSendingDelayUS                = "DEBUG_QUICHE_SENDING_DELAY_US"
)

const (
	defaultBackgroundDelayingDuration = 2 * time.Millisecond
	defaultBurstSizeBytes              = 15000
	defaultMaxJitter                   = 0 * time.Microsecond
	defaultCooldown                    = 0 * time.Microsecond
	defaultFracDenominatorToProtect     = 2
	defaultMinimumRoomInCwin            = 5000
	defaultBandwidthProbingBPS          = 0
	defaultSendingDelay                 = 0 * time.Microsecond

	// repairToSendWithNoLossInfo bounds the Background large-burst budget
	// when no loss estimate is available: enough to cover this many lost
	// packets per round trip by default.
	repairToSendWithNoLossInfo = 5

	// legacyBurstFraction is the smaller-burst overhead fraction some
	// historical variants use (4/5) instead of the refined 3/5; kept named
	// for documentation even though no active variant here uses it.
	legacyBurstFraction = 4
)

func getDurationUS(name string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	us, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return time.Duration(us) * time.Microsecond
}

func getUint(name string, def uint64) uint64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getInt(name string, def int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// tunables is a per-decision snapshot of every named configuration entry.
// It is cheap enough to recompute on every should_send_repair call, but
// callers that want to avoid repeated getenv/parse overhead in hot loops
// may cache it externally and refresh it on a timer instead.
type tunables struct {
	backgroundDelayingDuration time.Duration
	thresholdBurstSize          uint64
	maxJitter                   time.Duration
	cooldown                    time.Duration
	fracDenominatorToProtect     uint64
	minimumRoomInCwin            uint64
	bandwidthProbingBPS          uint64
	sendingDelay                 time.Duration
}

func readTunables() tunables {
	return tunables{
		backgroundDelayingDuration: getDurationUS(envBackgroundDelayingDurationUS, defaultBackgroundDelayingDuration),
		thresholdBurstSize:          getUint(envBurstSizeBytes, defaultBurstSizeBytes),
		maxJitter:                   getDurationUS(envMaxJitterUS, defaultMaxJitter),
		cooldown:                    getDurationUS(envCooldownUS, defaultCooldown),
		fracDenominatorToProtect:     getUint(envFracDenominatorToProtect, defaultFracDenominatorToProtect),
		minimumRoomInCwin:            getUint(envMinimumRoomInCwin, defaultMinimumRoomInCwin),
		bandwidthProbingBPS:          getUint(envBandwidthProbingBPS, defaultBandwidthProbingBPS),
		sendingDelay:                 getDurationUS(envSendingDelayUS, defaultSendingDelay),
	}
}
