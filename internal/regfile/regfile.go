// internal/regfile/regfile.go
package regfile

import "sync"

// Store is the shared register file. The bus engine and the time/alarm
// engines access it from different goroutines; every access holds the
// mutex only for a single byte operation, matching the original's
// interrupt-disable window. No access ever blocks beyond that.
type Store struct {
	mu    sync.Mutex
	cells [Size]byte
}

// Read returns the register at off. Out-of-range offsets wrap; offset
// arithmetic is the bus bridge's job, this is a safety net only.
func (s *Store) Read(off uint8) byte {
	s.mu.Lock()
	v := s.cells[off%Size]
	s.mu.Unlock()
	return v
}

// Write applies a bus write to off. Bus semantics:
//   - registers 26 and 27 are immutable, the write is a no-op
//   - register 30 is only-clear: an incoming 1 over a stored 0 is
//     forced back to 0 before storing
//
// Every other register stores the byte verbatim. Write never fails.
func (s *Store) Write(off uint8, v byte) {
	off %= Size

	s.mu.Lock()
	switch off {
	case RegReserved26, RegReserved27:
		// immutable via the bus
	case RegAlarmFlags:
		v &^= ^s.cells[RegAlarmFlags] & AlarmFlagsMask
		s.cells[RegAlarmFlags] = v
	default:
		s.cells[off] = v
	}
	s.mu.Unlock()
}

// Put stores v at off on the engine-internal path, bypassing bus write
// rules. Only the time and alarm engines use it.
func (s *Store) Put(off uint8, v byte) {
	s.mu.Lock()
	s.cells[off%Size] = v
	s.mu.Unlock()
}

// SetBits ORs mask into the register at off as one indivisible update.
func (s *Store) SetBits(off uint8, mask byte) {
	s.mu.Lock()
	s.cells[off%Size] |= mask
	s.mu.Unlock()
}

// Snapshot copies the whole file. Diagnostic use only; the copy is not
// guaranteed to be consistent across a concurrent carry chain.
func (s *Store) Snapshot() [Size]byte {
	s.mu.Lock()
	out := s.cells
	s.mu.Unlock()
	return out
}

// AlarmReg returns the absolute register index of field off within
// alarm slot n (0-based).
func AlarmReg(n int, off uint8) uint8 {
	return uint8(RegAlarmBase+n*AlarmStride) + off
}
