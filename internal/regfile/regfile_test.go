// internal/regfile/regfile_test.go
package regfile

import "testing"

func TestBusWriteStoresVerbatim(t *testing.T) {
	s := &Store{}

	s.Write(5, 0x42)
	if got := s.Read(5); got != 0x42 {
		t.Fatalf("Read(5) = 0x%02X, want 0x42", got)
	}
}

func TestReservedRegistersImmutable(t *testing.T) {
	s := &Store{}

	s.Write(RegReserved26, 0xAA)
	s.Write(RegReserved27, 0xBB)

	if got := s.Read(RegReserved26); got != 0 {
		t.Fatalf("register 26 changed to 0x%02X by bus write", got)
	}
	if got := s.Read(RegReserved27); got != 0 {
		t.Fatalf("register 27 changed to 0x%02X by bus write", got)
	}

	// the engine path is not restricted
	s.Put(RegReserved26, 0x11)
	if got := s.Read(RegReserved26); got != 0x11 {
		t.Fatalf("engine Put to register 26 not stored, got 0x%02X", got)
	}
}

func TestAlarmFlagsOnlyClear(t *testing.T) {
	tests := []struct {
		name   string
		stored byte
		write  byte
		want   byte
	}{
		{name: "set over clear is suppressed", stored: 0x00, write: 0x01, want: 0x00},
		{name: "clear over set clears", stored: 0x01, write: 0x00, want: 0x00},
		{name: "keep set bit", stored: 0x03, write: 0x02, want: 0x02},
		{name: "mixed", stored: 0x05, write: 0x0F, want: 0x05},
		{name: "upper bits pass through", stored: 0x00, write: 0xC0, want: 0xC0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Store{}
			s.Put(RegAlarmFlags, tc.stored)
			s.Write(RegAlarmFlags, tc.write)
			if got := s.Read(RegAlarmFlags); got != tc.want {
				t.Fatalf("flags = 0x%02X, want 0x%02X", got, tc.want)
			}
		})
	}
}

func TestFlagsSetViaEngine(t *testing.T) {
	s := &Store{}

	s.SetBits(RegAlarmFlags, 0x04)
	s.SetBits(RegAlarmFlags, 0x01)
	if got := s.Read(RegAlarmFlags); got != 0x05 {
		t.Fatalf("flags = 0x%02X, want 0x05", got)
	}
}

func TestOffsetWrap(t *testing.T) {
	s := &Store{}

	s.Put(0, 0x77)
	if got := s.Read(Size); got != 0x77 {
		t.Fatalf("Read(%d) = 0x%02X, want wrap to register 0", Size, got)
	}
}

func TestAlarmRegMapping(t *testing.T) {
	if got := AlarmReg(0, AlarmMinuteOff); got != 8 {
		t.Fatalf("alarm 0 minute register = %d, want 8", got)
	}
	if got := AlarmReg(1, AlarmHourOff); got != 12 {
		t.Fatalf("alarm 1 hour register = %d, want 12", got)
	}
	if got := AlarmReg(5, AlarmDayOff); got != 25 {
		t.Fatalf("alarm 5 day register = %d, want 25", got)
	}
}
