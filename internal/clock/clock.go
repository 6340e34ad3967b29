// internal/clock/clock.go

// Package clock advances the register file's BCD calendar. One
// Increment call corresponds to one elapsed second; everything runs in
// run-loop context, never in an interrupt handler.
package clock

import (
	"github.com/tamzrod/rtc-slave/internal/bcd"
	"github.com/tamzrod/rtc-slave/internal/regfile"
	"github.com/tamzrod/rtc-slave/internal/sched"
)

// Engine owns the carry chain and the cached leap-year indicator.
type Engine struct {
	regs    *regfile.Store
	actions *sched.Actions
	leap    bool
}

// New returns an engine over regs. CheckLeapYear must be called once
// after the boot date is written.
func New(regs *regfile.Store, actions *sched.Actions) *Engine {
	return &Engine{regs: regs, actions: actions}
}

// CheckLeapYear recomputes the leap indicator from the two-digit year.
// A year is leap iff it is divisible by 4. The century register is
// never consulted, so the divisible-by-100 exception does not exist on
// this device; 2100 will be treated as leap.
func (e *Engine) CheckLeapYear() {
	e.leap = bcd.Decode(e.regs.Read(regfile.RegYear))%4 == 0
}

// LeapYear reports the cached leap indicator.
func (e *Engine) LeapYear() bool {
	return e.leap
}

// Increment adds one second, propagating carries in fixed order:
// second, minute, hour, day-of-week plus date together, month, year,
// century. Rolling into a new minute requests an alarm check; rolling
// into a new year re-evaluates the leap indicator before any later
// February decision.
func (e *Engine) Increment() {
	sec := bcd.Decode(e.regs.Read(regfile.RegSecond)) + 1
	if sec < 60 {
		e.regs.Put(regfile.RegSecond, bcd.Encode(sec))
		return
	}
	e.regs.Put(regfile.RegSecond, 0x00)
	e.actions.Post(sched.ActionAlarmCheck)

	min := bcd.Decode(e.regs.Read(regfile.RegMinute)) + 1
	if min < 60 {
		e.regs.Put(regfile.RegMinute, bcd.Encode(min))
		return
	}
	e.regs.Put(regfile.RegMinute, 0x00)

	hour := bcd.Decode(e.regs.Read(regfile.RegHour)) + 1
	if hour < 24 {
		e.regs.Put(regfile.RegHour, bcd.Encode(hour))
		return
	}
	e.regs.Put(regfile.RegHour, 0x00)

	// day of week and date advance together at midnight
	day := bcd.Decode(e.regs.Read(regfile.RegDay)) + 1
	if day == 8 {
		day = 1
	}
	e.regs.Put(regfile.RegDay, bcd.Encode(day))

	e.advanceDate()
}

func (e *Engine) advanceDate() {
	month := bcd.Decode(e.regs.Read(regfile.RegMonth))
	date := bcd.Decode(e.regs.Read(regfile.RegDate)) + 1
	if date <= e.daysInMonth(month) {
		e.regs.Put(regfile.RegDate, bcd.Encode(date))
		return
	}
	e.regs.Put(regfile.RegDate, 0x01)

	month++
	if month < 13 {
		e.regs.Put(regfile.RegMonth, bcd.Encode(month))
		return
	}
	e.regs.Put(regfile.RegMonth, 0x01)

	e.advanceYear()
}

func (e *Engine) advanceYear() {
	year := bcd.Decode(e.regs.Read(regfile.RegYear)) + 1
	if year == 100 {
		year = 0
		century := bcd.Decode(e.regs.Read(regfile.RegCentury)) + 1
		if century == 100 {
			century = 0
		}
		e.regs.Put(regfile.RegCentury, bcd.Encode(century))
	}
	e.regs.Put(regfile.RegYear, bcd.Encode(year))

	e.CheckLeapYear()
}

// daysInMonth returns the month length under the cached leap indicator.
func (e *Engine) daysInMonth(month int) int {
	switch month {
	case 2:
		if e.leap {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
