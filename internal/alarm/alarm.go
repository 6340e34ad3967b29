// internal/alarm/alarm.go

// Package alarm evaluates the six alarm slots and sequences the
// interrupt output lines. All three phases run in run-loop context,
// each triggered by its own posted action.
package alarm

import "github.com/tamzrod/rtc-slave/internal/regfile"

// Outputs is the interrupt line surface the engine drives. Both calls
// are assert/deassert requests; the physical pins live outside the core.
type Outputs interface {
	SetUnison(high bool)
	SetDedicated(n int, high bool)
}

// Engine walks the alarm slots in the register file.
type Engine struct {
	regs *regfile.Store
	out  Outputs
}

// New returns an engine over regs driving out.
func New(regs *regfile.Store, out Outputs) *Engine {
	return &Engine{regs: regs, out: out}
}

// Match latches the flag bit of every alarm matching the current time.
// A slot matches when its minute equals the current minute, its hour
// byte equals the current hour with the match sentinel set, and its day
// mask either ignores days or covers today. Flags are sticky; this
// phase never clears one.
func (e *Engine) Match() {
	minute := e.regs.Read(regfile.RegMinute)
	hour := e.regs.Read(regfile.RegHour) | regfile.AlarmHourMatch
	today := dayMaskBit(e.regs.Read(regfile.RegDay))

	for n := 0; n < regfile.AlarmCount; n++ {
		if e.regs.Read(regfile.AlarmReg(n, regfile.AlarmMinuteOff)) != minute {
			continue
		}
		if e.regs.Read(regfile.AlarmReg(n, regfile.AlarmHourOff)) != hour {
			continue
		}
		days := e.regs.Read(regfile.AlarmReg(n, regfile.AlarmDayOff))
		if days&regfile.AlarmAnyDay == 0 && days&today == 0 {
			continue
		}
		e.regs.SetBits(regfile.RegAlarmFlags, 1<<n)
	}
}

// Assert raises the unison line if any flagged alarm is enabled, and
// the per-alarm dedicated lines when the config register routes them.
func (e *Engine) Assert() {
	flags := e.regs.Read(regfile.RegAlarmFlags)
	enable := e.regs.Read(regfile.RegAlarmEnable)
	dedicated := e.regs.Read(regfile.RegConfig)&regfile.ConfigDedicatedOutputs != 0

	unison := false
	for n := 0; n < regfile.AlarmCount; n++ {
		bit := byte(1) << n
		if flags&bit == 0 || enable&bit == 0 {
			continue
		}
		unison = true
		if dedicated {
			e.out.SetDedicated(n, true)
		}
	}
	if unison {
		e.out.SetUnison(true)
	}
}

// Reset drops the unison line and all six dedicated lines regardless of
// flag state. The assert/reset pair produces a bounded-width pulse once
// per second while an alarm is active; flags themselves are cleared
// only by a bus write.
func (e *Engine) Reset() {
	e.out.SetUnison(false)
	for n := 0; n < regfile.AlarmCount; n++ {
		e.out.SetDedicated(n, false)
	}
}

// dayMaskBit converts a BCD day of week (1=Monday .. 7=Sunday) to its
// one-hot mask bit. Out-of-range days match nothing.
func dayMaskBit(day byte) byte {
	if day < 1 || day > 7 {
		return 0
	}
	return 1 << (day - 1)
}
