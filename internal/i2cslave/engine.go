// internal/i2cslave/engine.go

// Package i2cslave implements the bus slave role as an explicit state
// machine. The engine is driven by exactly two hardware conditions — a
// start condition and a completed bit transfer — and runs entirely in
// the caller's interrupt context: every transition executes to
// completion without blocking.
package i2cslave

// Port is the shift-register surface of the bus peripheral. The engine
// is the only writer; a Port implementation owns no protocol logic.
type Port interface {
	// SetShift loads the shift register with the value to drive out.
	// ACK and NACK are driven as 0x00 and 0xFF with a single bit armed.
	SetShift(b byte)
	// Shift returns the shift register contents after a completed
	// transfer (the received byte, or the master's ACK bit in the LSB).
	Shift() byte
	// SetOutputEnabled switches the data line between drive and listen.
	SetOutputEnabled(on bool)
	// ArmBits arms the bit counter; the next TransferDone event fires
	// after n bits have been clocked.
	ArmBits(n uint8)
	// ClearStart acknowledges the start condition flag.
	ClearStart()
	// ClearPending clears the transfer-complete flag without arming.
	ClearPending()
}

// Handler bridges bus bytes to the device. Both callbacks run inside
// the engine's interrupt context and must not block.
type Handler interface {
	// TxNext returns the next byte to transmit, advancing the device's
	// read cursor.
	TxNext() byte
	// Rx delivers a received byte. Returning false rejects it; the
	// engine answers NACK and aborts the transaction.
	Rx(b byte) bool
	// ResetTransaction is called at every start condition.
	ResetTransaction()
}

// State is the engine's position within one bus transaction.
type State uint8

const (
	// StateIdle: no transaction in progress.
	StateIdle State = iota
	// StateAddrWait: start seen, about to arm the address byte.
	StateAddrWait
	// StateAddrCheck: address byte received, match and pick direction.
	StateAddrCheck
	// StateRelease: abort, release the bus and return to idle.
	StateRelease
	// StateRxByte: arm reception of one data byte.
	StateRxByte
	// StateRxCheck: data byte received, deliver and answer ACK/NACK.
	StateRxCheck
	// StateTxByte: load and drive one data byte.
	StateTxByte
	// StateTxWaitAck: byte sent, arm the master's ACK bit.
	StateTxWaitAck
	// StateTxCheck: inspect the master's ACK bit.
	StateTxCheck
)

// Event is one of the two hardware conditions that drive the engine.
type Event uint8

const (
	// EventStart: start condition observed. Resets from any state.
	EventStart Event = iota
	// EventTransferDone: the armed bit count completed.
	EventTransferDone
)

// Shift register levels for acknowledgment.
const (
	ackLevel  = 0x00
	nackLevel = 0xFF
)

// Engine is one bus slave endpoint. It owns the transaction state
// exclusively; no other code may touch the Port while a transaction is
// in flight.
type Engine struct {
	port    Port
	handler Handler
	ownAddr byte
	state   State
}

// New returns an idle engine answering to the 7-bit address ownAddr.
func New(port Port, handler Handler, ownAddr byte) *Engine {
	return &Engine{port: port, handler: handler, ownAddr: ownAddr}
}

// State returns the current transaction state.
func (e *Engine) State() State {
	return e.state
}

// OwnAddr returns the configured 7-bit slave address.
func (e *Engine) OwnAddr() byte {
	return e.ownAddr
}

// Handle is the single transition function. A start condition takes
// priority over whatever state the engine is parked in, which is the
// only recovery path from a stalled or malformed transaction; there is
// no timeout. After the start reset the current state's actions run in
// the same invocation, exactly like the hardware interrupt handler.
func (e *Engine) Handle(ev Event) {
	if ev == EventStart {
		e.port.SetShift(0x00)
		e.port.ClearPending()
		e.handler.ResetTransaction()
		e.state = StateAddrWait
	}

	switch e.state {
	case StateIdle:
		// parked; nothing armed

	case StateAddrWait:
		e.port.SetOutputEnabled(false)
		e.port.ArmBits(8)
		e.port.ClearStart()
		e.state = StateAddrCheck

	case StateAddrCheck:
		recv := e.port.Shift()
		if recv>>1 != e.ownAddr {
			e.port.SetShift(nackLevel)
			e.state = StateRelease
		} else {
			if recv&0x01 == 0 {
				e.state = StateRxByte
			} else {
				e.state = StateTxByte
			}
			e.port.SetShift(ackLevel)
		}
		e.port.SetOutputEnabled(true)
		e.port.ArmBits(1)

	case StateRelease:
		e.port.SetOutputEnabled(false)
		e.port.ClearPending()
		e.state = StateIdle

	case StateRxByte:
		e.port.SetOutputEnabled(false)
		e.port.ArmBits(8)
		e.state = StateRxCheck

	case StateRxCheck:
		if e.handler.Rx(e.port.Shift()) {
			e.port.SetShift(ackLevel)
			e.state = StateRxByte
		} else {
			e.port.SetShift(nackLevel)
			e.state = StateRelease
		}
		e.port.SetOutputEnabled(true)
		e.port.ArmBits(1)

	case StateTxByte:
		e.port.SetShift(e.handler.TxNext())
		e.port.SetOutputEnabled(true)
		e.port.ArmBits(8)
		e.state = StateTxWaitAck

	case StateTxWaitAck:
		e.port.SetOutputEnabled(false)
		e.port.ArmBits(1)
		e.state = StateTxCheck

	case StateTxCheck:
		if e.port.Shift()&0x01 != 0 {
			// master NACK: end of read transaction
			e.port.SetOutputEnabled(false)
			e.port.ClearPending()
			e.state = StateIdle
		} else {
			e.port.SetShift(e.handler.TxNext())
			e.port.SetOutputEnabled(true)
			e.port.ArmBits(8)
			e.state = StateTxWaitAck
		}
	}
}
