// internal/i2cslave/wire.go
package i2cslave

// Wire is an in-memory Port: a software stand-in for the shift register
// and bit counter of the bus peripheral. It lets a Master clock whole
// transactions against an Engine without hardware.
type Wire struct {
	shift  byte
	output bool
	armed  uint8
}

// NewWire returns a released wire.
func NewWire() *Wire {
	return &Wire{}
}

func (w *Wire) SetShift(b byte) {
	w.shift = b
}

func (w *Wire) Shift() byte {
	return w.shift
}

func (w *Wire) SetOutputEnabled(on bool) {
	w.output = on
}

func (w *Wire) ArmBits(n uint8) {
	w.armed = n
}

func (w *Wire) ClearStart() {}

func (w *Wire) ClearPending() {
	w.armed = 0
}

// Armed returns the currently armed bit count. Zero means nothing is
// expected from the master.
func (w *Wire) Armed() uint8 {
	return w.armed
}

// Driving reports whether the slave currently drives the data line.
func (w *Wire) Driving() bool {
	return w.output
}

// Master plays the bus master role against a single slave engine. Byte
// and bit transfers follow the hardware ordering exactly: bits are
// clocked (the listening side's shift register fills), then the
// transfer-done event fires.
//
// A Master must not be shared between goroutines without external
// locking; a physical bus has one master talking at a time.
type Master struct {
	wire *Wire
	eng  *Engine
}

// NewMaster returns a master wired to eng through wire.
func NewMaster(wire *Wire, eng *Engine) *Master {
	return &Master{wire: wire, eng: eng}
}

// clock shuttles one armed transfer. If the slave is listening the
// master's drive value lands in the shift register; if the slave is
// driving, the master samples it and its own drive value is ignored.
func (m *Master) clock(drive byte) byte {
	sampled := drive
	if m.wire.output {
		sampled = m.wire.shift
	} else {
		m.wire.shift = drive
	}
	m.eng.Handle(EventTransferDone)
	return sampled
}

// Start issues a start condition.
func (m *Master) Start() {
	m.eng.Handle(EventStart)
}

// addrPhase sends the address+direction byte and samples the slave's
// ACK. Reports whether the slave acknowledged.
func (m *Master) addrPhase(addrRW byte) bool {
	m.Start()
	m.clock(addrRW)
	return m.clock(0x00)&0x80 == 0
}

// Write performs a complete write transaction: start, address, then
// data bytes until done or the slave NACKs. Returns the count of acked
// data bytes and whether the address was acknowledged.
func (m *Master) Write(addr byte, data ...byte) (acked int, addrOK bool) {
	if !m.addrPhase(addr << 1) {
		return 0, false
	}
	for _, b := range data {
		m.clock(b)
		if m.clock(0x00)&0x80 != 0 {
			return acked, true
		}
		acked++
	}
	return acked, true
}

// Read performs a complete read transaction of n bytes, acking each
// byte except the last, which is NACKed to end the transfer. Returns
// nil and false if the address was not acknowledged.
func (m *Master) Read(addr byte, n int) ([]byte, bool) {
	if !m.addrPhase(addr<<1 | 0x01) {
		return nil, false
	}
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, m.clock(0xFF))
		if i == n-1 {
			m.clock(0x01)
		} else {
			m.clock(0x00)
		}
	}
	return out, true
}
