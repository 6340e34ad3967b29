// internal/sched/ticker.go
package sched

// PhasesPerSecond is the number of ticker phases in one second. The
// hardware timer fires 16 times per second; the phase offsets below
// place the interrupt pulse shortly after the second boundary, hold it
// for four phases, and finish the time increment before the next one.
const PhasesPerSecond = 16

// Ticker phase offsets.
const (
	phaseAssert    = 2  // raise alarm interrupt outputs
	phaseReset     = 6  // drop alarm interrupt outputs
	phaseWaveHigh  = 8  // first half-period edge of the 1 Hz wave
	phaseIncrement = 12 // advance the clock
	phaseWaveLow   = 16 // second edge, and phase wrap
)

// WaveOutput is the 1 Hz square-wave line, expressed as a toggle request.
type WaveOutput interface {
	ToggleWave()
}

// Ticker is driven from tick (interrupt) context, once per phase. It
// only posts action bits and toggles the wave line; all real work runs
// in the drain loop.
type Ticker struct {
	phase   uint8
	actions *Actions
	wave    WaveOutput
}

// NewTicker returns a ticker posting into actions and toggling wave.
func NewTicker(actions *Actions, wave WaveOutput) *Ticker {
	return &Ticker{actions: actions, wave: wave}
}

// Tick advances one phase. Runs to completion, never blocks.
func (t *Ticker) Tick() {
	t.phase++
	switch t.phase {
	case phaseAssert:
		t.actions.Post(ActionAlarmAssert)
	case phaseReset:
		t.actions.Post(ActionAlarmReset)
	case phaseWaveHigh:
		t.wave.ToggleWave()
	case phaseIncrement:
		t.actions.Post(ActionIncrement)
	case phaseWaveLow:
		t.wave.ToggleWave()
		t.phase = 0
	}
}
