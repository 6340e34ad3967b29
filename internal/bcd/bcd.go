// internal/bcd/bcd.go

// Package bcd converts between binary-coded-decimal bytes and integers
// 0-99. The register file stores every time and date field in BCD; the
// clock engine does its carry arithmetic through these helpers so each
// rollover is an explicit, named operation.
package bcd

// Encode returns the BCD byte for v. v must be in 0-99.
func Encode(v int) byte {
	return byte(v/10<<4 | v%10)
}

// Decode returns the integer value of a BCD byte.
func Decode(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// Valid reports whether both nibbles of b are decimal digits.
func Valid(b byte) bool {
	return b>>4 <= 9 && b&0x0F <= 9
}

// Inc adds one to a BCD byte, carrying the lower nibble into the upper
// one. Wraps from 99 to 0.
func Inc(b byte) byte {
	v := Decode(b) + 1
	if v == 100 {
		v = 0
	}
	return Encode(v)
}
