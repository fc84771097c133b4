package fecsched

import "time"

// fakeClock is a manually-advanced Clock for deterministic scheduler tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakePath is a test double for Path.
type fakePath struct {
	cwnd          uint64
	cwndAvailable uint64
	rtt           time.Duration
	appLimited    bool
	lossMean      float64
	lossOK        bool
	lossVariance  float64
	fecOnly       bool
}

func (p *fakePath) CWND() uint64          { return p.cwnd }
func (p *fakePath) CWNDAvailable() uint64 { return p.cwndAvailable }
func (p *fakePath) RTT() time.Duration    { return p.rtt }
func (p *fakePath) AppLimited() bool      { return p.appLimited }
func (p *fakePath) PacketsLostPerRoundTrip() (float64, bool) {
	return p.lossMean, p.lossOK
}
func (p *fakePath) VarPacketsLostPerRoundTrip() float64 { return p.lossVariance }
func (p *fakePath) FECOnly() bool                       { return p.fecOnly }

// fakeEncoder is a test double for Encoder.
type fakeEncoder struct {
	nProtected int
	firstMeta  SymbolID
	hasMeta    bool
	sentTimes  map[SymbolID]time.Time
}

func newFakeEncoder() *fakeEncoder {
	return &fakeEncoder{sentTimes: make(map[SymbolID]time.Time)}
}

func (e *fakeEncoder) NProtectedSymbols() int { return e.nProtected }
func (e *fakeEncoder) FirstMetadata() (SymbolID, bool) {
	return e.firstMeta, e.hasMeta
}
func (e *fakeEncoder) GetSentTime(id SymbolID) (time.Time, bool) {
	t, ok := e.sentTimes[id]
	return t, ok
}

// fakeConnection is a test double for Connection.
type fakeConnection struct {
	hasDatagram bool
	hasStream   bool
	sentCount   uint64
	sentBytes   uint64
	txData      uint64
	paths       map[string]Path
	encoder     Encoder
}

func newFakeConnection(path Path, encoder Encoder) *fakeConnection {
	return &fakeConnection{
		paths:   map[string]Path{"default": path},
		encoder: encoder,
	}
}

func (c *fakeConnection) HasWritableDatagram() bool { return c.hasDatagram }
func (c *fakeConnection) HasFlushableStream() bool  { return c.hasStream }
func (c *fakeConnection) SentCount() uint64         { return c.sentCount }
func (c *fakeConnection) SentBytes() uint64         { return c.sentBytes }
func (c *fakeConnection) TxData() uint64            { return c.txData }
func (c *fakeConnection) Paths() map[string]Path    { return c.paths }
func (c *fakeConnection) FECEncoder() Encoder       { return c.encoder }
