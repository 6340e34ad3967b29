// internal/regfile/layout.go
package regfile

// Register file layout constants.
// These values define the wire contract and MUST NOT be configurable.

// ---- GEOMETRY ----

// Size is the fixed number of byte registers in the file.
const Size = 31

// ---- TIME / DATE ----

// RegSecond holds the current second, BCD 00-59.
const RegSecond = 0

// RegMinute holds the current minute, BCD 00-59.
const RegMinute = 1

// RegHour holds the current hour, BCD 00-23, 24-hour form.
const RegHour = 2

// RegDay holds the day of week, BCD 1-7 (1=Monday .. 7=Sunday).
const RegDay = 3

// RegDate holds the day of month, BCD 1-31.
const RegDate = 4

// RegMonth holds the month, BCD 1-12.
const RegMonth = 5

// RegYear holds the two-digit year, BCD 00-99.
const RegYear = 6

// RegCentury holds the century, BCD (0x20 for 20xx).
const RegCentury = 7

// ---- ALARMS ----

// AlarmCount is the number of independent alarm slots.
const AlarmCount = 6

// RegAlarmBase is the first register of alarm slot 0.
// Each slot occupies AlarmStride registers: minute, hour, day mask.
const RegAlarmBase = 8

// AlarmStride is the register distance between consecutive alarm slots.
const AlarmStride = 3

// AlarmMinuteOff, AlarmHourOff and AlarmDayOff are the register offsets
// of the three alarm fields within a slot.
const (
	AlarmMinuteOff = 0
	AlarmHourOff   = 1
	AlarmDayOff    = 2
)

// ---- RESERVED ----

// RegReserved26 and RegReserved27 are unused. Bus writes to them are ignored.
const (
	RegReserved26 = 26
	RegReserved27 = 27
)

// ---- CONTROL ----

// RegConfig is the general configuration register.
const RegConfig = 28

// RegAlarmEnable holds per-alarm interrupt enable bits (bit N = alarm N).
const RegAlarmEnable = 29

// RegAlarmFlags holds per-alarm interrupt flag bits (bit N = alarm N).
// Flags are latched by the alarm engine. A bus write can only clear a set
// bit, never set a clear one.
const RegAlarmFlags = 30

// ---- BIT MASKS ----

// ConfigDedicatedOutputs routes the six per-alarm dedicated interrupt
// lines in addition to the unison line.
const ConfigDedicatedOutputs = 0x80

// AlarmHourMatch is the sentinel bit a configured alarm hour carries on
// top of the BCD hour value.
const AlarmHourMatch = 0x80

// AlarmAnyDay makes an alarm ignore its day mask entirely.
const AlarmAnyDay = 0x80

// AlarmFlagsMask covers the six valid flag/enable bits.
const AlarmFlagsMask = 0x3F
