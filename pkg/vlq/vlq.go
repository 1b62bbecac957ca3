// Package vlq implements the variable-length quantity format used by
// Standard MIDI Files for delta times and meta event lengths.
//
// A quantity is written 7 bits per byte, most significant group first.
// Every byte except the last has its high bit set.
package vlq

import (
	"errors"
	"fmt"
)

// MaxValue is the largest quantity a 4-byte VLQ can hold (0x0FFFFFFF).
const MaxValue = 1<<28 - 1

// MaxLength is the maximum number of bytes in an encoded quantity.
const MaxLength = 4

// ErrEncodingRange is returned when a value does not fit in MaxLength bytes.
var ErrEncodingRange = errors.New("value outside variable-length quantity range")

// ErrMalformed is returned when decoding input has no terminating byte
// within MaxLength bytes.
var ErrMalformed = errors.New("malformed variable-length quantity")

// Len returns the number of bytes needed to encode value.
// It returns 0 for values above MaxValue.
func Len(value uint64) int {
	switch {
	case value > MaxValue:
		return 0
	case value < 1<<7:
		return 1
	case value < 1<<14:
		return 2
	case value < 1<<21:
		return 3
	default:
		return 4
	}
}

// Encode returns the VLQ encoding of value.
func Encode(value uint64) ([]byte, error) {
	return AppendEncoded(make([]byte, 0, MaxLength), value)
}

// AppendEncoded appends the VLQ encoding of value to dst.
// On error dst is returned unchanged.
func AppendEncoded(dst []byte, value uint64) ([]byte, error) {
	n := Len(value)
	if n == 0 {
		return dst, fmt.Errorf("%w: %d exceeds %d", ErrEncodingRange, value, MaxValue)
	}

	for i := n - 1; i >= 0; i-- {
		b := byte(value>>(7*uint(i))) & 0x7F
		if i > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst, nil
}

// Decode reads one quantity from the start of data.
// It returns the value and the number of bytes consumed.
func Decode(data []byte) (uint32, int, error) {
	var value uint32
	for i := 0; i < MaxLength; i++ {
		if i >= len(data) {
			return 0, 0, fmt.Errorf("%w: input ends after %d bytes", ErrMalformed, i)
		}
		value = value<<7 | uint32(data[i]&0x7F)
		if data[i]&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: no terminating byte within %d bytes", ErrMalformed, MaxLength)
}
