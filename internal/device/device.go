// internal/device/device.go

// Package device assembles the register file, the bus slave engine and
// the time/alarm machinery into one peripheral. The split mirrors the
// firmware's contexts: Tick and the bus engine run in "interrupt"
// goroutines, Run drains their posted work cooperatively.
package device

import (
	"context"

	"github.com/tamzrod/rtc-slave/internal/alarm"
	"github.com/tamzrod/rtc-slave/internal/clock"
	"github.com/tamzrod/rtc-slave/internal/i2cslave"
	"github.com/tamzrod/rtc-slave/internal/regfile"
	"github.com/tamzrod/rtc-slave/internal/sched"
)

// The two candidate bus addresses, chosen by the address-select pin
// sampled once at boot.
const (
	AddrDefault   = 0x41
	AddrAlternate = 0x43
)

// Pins is every digital output the device drives, expressed as
// assert/deassert requests only.
type Pins interface {
	alarm.Outputs
	sched.WaveOutput
}

// Config is the boot-time device configuration.
type Config struct {
	// AddressPinHigh selects AddrDefault when true, AddrAlternate
	// when the pin is strapped low.
	AddressPinHigh bool
}

// Device is one RTC peripheral instance.
type Device struct {
	regs    *regfile.Store
	actions *sched.Actions
	clock   *clock.Engine
	alarms  *alarm.Engine
	ticker  *sched.Ticker
	bus     *i2cslave.Engine
	addr    byte
}

// New builds a device on port, driving pins. The register file boots
// to 2000-01-01 00:00:00, Saturday.
func New(cfg Config, port i2cslave.Port, pins Pins) *Device {
	regs := &regfile.Store{}
	actions := sched.NewActions()

	d := &Device{
		regs:    regs,
		actions: actions,
		clock:   clock.New(regs, actions),
		alarms:  alarm.New(regs, pins),
		ticker:  sched.NewTicker(actions, pins),
	}

	d.addr = AddrAlternate
	if cfg.AddressPinHigh {
		d.addr = AddrDefault
	}
	d.bus = i2cslave.New(port, &busBridge{regs: regs}, d.addr)

	d.bootstrap()
	return d
}

// bootstrap writes the default date and evaluates the initial leap
// indicator. Seconds, minutes, hours and year stay zero.
func (d *Device) bootstrap() {
	d.regs.Put(regfile.RegDay, 0x06) // Saturday
	d.regs.Put(regfile.RegDate, 0x01)
	d.regs.Put(regfile.RegMonth, 0x01)
	d.regs.Put(regfile.RegCentury, 0x20)
	d.clock.CheckLeapYear()
}

// Bus returns the slave protocol engine, for the bus wire to drive.
func (d *Device) Bus() *i2cslave.Engine {
	return d.bus
}

// Addr returns the selected 7-bit bus address.
func (d *Device) Addr() byte {
	return d.addr
}

// Tick advances the scheduler by one sub-second phase. Call it from
// the host timer at PhasesPerSecond ticks per second.
func (d *Device) Tick() {
	d.ticker.Tick()
}

// Snapshot copies the register file for diagnostics.
func (d *Device) Snapshot() [regfile.Size]byte {
	return d.regs.Snapshot()
}

// Service drains pending actions once, in fixed priority order:
// increment, alarm check, interrupt assert, interrupt reset. Draining
// is idempotent; an action re-posted before being taken stays a single
// request.
func (d *Device) Service() {
	if d.actions.Take(sched.ActionIncrement) {
		d.clock.Increment()
	}
	if d.actions.Take(sched.ActionAlarmCheck) {
		d.alarms.Match()
	}
	if d.actions.Take(sched.ActionAlarmAssert) {
		d.alarms.Assert()
	}
	if d.actions.Take(sched.ActionAlarmReset) {
		d.alarms.Reset()
	}
}

// Run is the cooperative loop. It blocks on the action wakeup channel
// instead of spinning, then drains until nothing is pending.
func (d *Device) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.actions.Wakeup():
			for d.actions.Pending() {
				d.Service()
			}
		}
	}
}
