package quicfec

import (
	"sync"

	"github.com/francoismichel/quirl/internal/fecsched"
)

// ConnectionView adapts one connection's sending opportunity and path set
// to fecsched.Connection. The transport loop updates its counters and
// flags as real events happen; the scheduler only ever reads it.
type ConnectionView struct {
	mu sync.RWMutex

	writableDatagram bool
	flushableStream  bool
	sentCount        uint64
	sentBytes        uint64
	txData           uint64

	paths   map[string]fecsched.Path
	encoder fecsched.Encoder
}

// NewConnectionView constructs an empty ConnectionView for the given FEC
// encoder. Paths are registered with AddPath as the transport discovers
// or creates them.
func NewConnectionView(encoder fecsched.Encoder) *ConnectionView {
	return &ConnectionView{
		paths:   make(map[string]fecsched.Path),
		encoder: encoder,
	}
}

// AddPath registers a path view under the given identifier.
func (c *ConnectionView) AddPath(id string, path fecsched.Path) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[id] = path
}

// RemovePath drops a path, e.g. after a migration or path abandon.
func (c *ConnectionView) RemovePath(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, id)
}

// SetWritableDatagram records whether a datagram is currently pending.
func (c *ConnectionView) SetWritableDatagram(writable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writableDatagram = writable
}

// SetFlushableStream records whether any stream has data ready to flush.
func (c *ConnectionView) SetFlushableStream(flushable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushableStream = flushable
}

// RecordSourceDataSent updates the connection-wide send counters after a
// source packet carrying streamBytes of stream data hits the wire.
func (c *ConnectionView) RecordSourceDataSent(packetBytes, streamBytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sentCount++
	c.sentBytes += uint64(packetBytes)
	c.txData += uint64(streamBytes)
}

// RecordRepairSent updates the connection-wide send counters after a
// repair packet hits the wire. Repair traffic does not advance tx_data:
// it carries no new stream bytes.
func (c *ConnectionView) RecordRepairSent(packetBytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sentCount++
	c.sentBytes += uint64(packetBytes)
}

// HasWritableDatagram implements fecsched.Connection.
func (c *ConnectionView) HasWritableDatagram() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.writableDatagram
}

// HasFlushableStream implements fecsched.Connection.
func (c *ConnectionView) HasFlushableStream() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flushableStream
}

// SentCount implements fecsched.Connection.
func (c *ConnectionView) SentCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sentCount
}

// SentBytes implements fecsched.Connection.
func (c *ConnectionView) SentBytes() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sentBytes
}

// TxData implements fecsched.Connection.
func (c *ConnectionView) TxData() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.txData
}

// Paths implements fecsched.Connection. The returned map is a snapshot;
// mutating it does not affect the ConnectionView.
func (c *ConnectionView) Paths() map[string]fecsched.Path {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[string]fecsched.Path, len(c.paths))
	for id, p := range c.paths {
		snapshot[id] = p
	}
	return snapshot
}

// FECEncoder implements fecsched.Connection.
func (c *ConnectionView) FECEncoder() fecsched.Encoder {
	return c.encoder
}

var _ fecsched.Connection = (*ConnectionView)(nil)
