// internal/device/bridge.go
package device

import "github.com/tamzrod/rtc-slave/internal/regfile"

// busBridge implements the bus engine's Handler contract over the
// register file. The first byte of every write transaction is the
// target offset; it seeds the auto-increment cursor and is not written.
// The cursor persists across transactions, so a write that only sends
// an offset positions a following read (write-then-read pattern).
//
// All methods run in the bus engine's interrupt context.
type busBridge struct {
	regs        *regfile.Store
	cursor      uint8
	awaitOffset bool
}

func (b *busBridge) ResetTransaction() {
	b.awaitOffset = true
}

func (b *busBridge) TxNext() byte {
	v := b.regs.Read(b.cursor)
	b.cursor = (b.cursor + 1) % regfile.Size
	return v
}

func (b *busBridge) Rx(v byte) bool {
	if b.awaitOffset {
		// out-of-range offsets wrap rather than fault
		b.cursor = v % regfile.Size
		b.awaitOffset = false
		return true
	}
	b.regs.Write(b.cursor, v)
	b.cursor = (b.cursor + 1) % regfile.Size
	return true
}
