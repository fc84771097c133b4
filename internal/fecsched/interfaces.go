// Package fecsched implements the FEC redundancy scheduler: a pure policy
// engine that decides, on every opportunity a QUIC connection has to emit a
// packet on a given path, whether that packet should carry a repair symbol
// instead of new source data.
//
// The scheduler never touches the wire, never encodes or decodes FEC
// symbols, and never performs I/O. It observes the connection, path and
// encoder through the read-only views below and reacts to a handful of
// event callbacks the packet-emission loop is expected to call exactly
// once per wire event.
package fecsched

import "time"

// SymbolID identifies a source or repair symbol produced by the FEC
// encoder. It is opaque to the scheduler; only equality matters.
type SymbolID uint64

// Clock abstracts wall-clock access so the scheduler's state machines can
// be driven deterministically in tests. Production code uses RealClock.
type Clock interface {
	Now() time.Time
}

// RealClock is the Clock backed by the monotonic wall clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// Encoder is the read-only view the scheduler needs from the FEC encoder.
// It never asks the encoder to produce or consume symbols.
type Encoder interface {
	// NProtectedSymbols returns the number of source symbols currently
	// protected by the encoder's sliding window.
	NProtectedSymbols() int
	// FirstMetadata returns the identifier of the earliest source symbol
	// still protected, or ok=false if the window is empty.
	FirstMetadata() (id SymbolID, ok bool)
	// GetSentTime returns the wall-clock time a symbol was sent on the
	// wire, or ok=false if the encoder has no record of it.
	GetSentTime(id SymbolID) (t time.Time, ok bool)
}

// Path is the read-only view of a network path's congestion/recovery
// state the scheduler needs (spec.md §3, "Path view").
type Path interface {
	// CWND returns the path's current congestion window in bytes.
	CWND() uint64
	// CWNDAvailable returns bytes of congestion window not currently in
	// flight.
	CWNDAvailable() uint64
	// RTT returns the path's smoothed round-trip time.
	RTT() time.Duration
	// AppLimited reports whether the path is currently sending less than
	// the congestion window allows because the application has nothing
	// more to send.
	AppLimited() bool
	// PacketsLostPerRoundTrip returns the mean observed packet loss per
	// round trip, or ok=false when no estimate is available yet.
	PacketsLostPerRoundTrip() (mean float64, ok bool)
	// VarPacketsLostPerRoundTrip returns the variance of the same
	// quantity. Only meaningful when PacketsLostPerRoundTrip is ok.
	VarPacketsLostPerRoundTrip() float64
	// FECOnly reports whether this path is dedicated to repair traffic
	// and excluded from ordinary source-data scheduling.
	FECOnly() bool
}

// Connection is the read-only view of the QUIC connection the scheduler
// needs (spec.md §3, "Connection view").
type Connection interface {
	// HasWritableDatagram reports whether the connection has a pending
	// unreliable datagram ready to be written.
	HasWritableDatagram() bool
	// HasFlushableStream reports whether any stream has data ready to be
	// flushed onto the wire.
	HasFlushableStream() bool
	// SentCount returns the number of packets sent so far on the
	// connection.
	SentCount() uint64
	// SentBytes returns the number of bytes sent so far on the
	// connection.
	SentBytes() uint64
	// TxData returns the number of stream bytes sent so far on the
	// connection (monotonic).
	TxData() uint64
	// Paths returns every path currently associated with the connection,
	// keyed by an opaque path identifier.
	Paths() map[string]Path
	// FECEncoder returns the connection's FEC encoder view.
	FECEncoder() Encoder
}
