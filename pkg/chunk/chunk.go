// Package chunk frames Standard MIDI File chunks: the MThd header chunk
// and MTrk track chunks. All fields are big-endian.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Chunk type magics.
const (
	HeaderType = "MThd"
	TrackType  = "MTrk"
)

// HeaderLength is the length field of every header chunk.
const HeaderLength = 6

// FormatMultiTrack is the only file format written: Type 1, simultaneous
// tracks sharing one tempo map.
const FormatMultiTrack uint16 = 1

var (
	// ErrUnsupportedFormat is returned for any format other than 1.
	ErrUnsupportedFormat = errors.New("unsupported MIDI file format")

	// ErrInvalidDivision is returned for a zero division or one with the
	// SMPTE bit (0x8000) set.
	ErrInvalidDivision = errors.New("invalid ticks-per-quarter division")

	// ErrChunkTooLarge is returned when a chunk body does not fit the
	// 32-bit length field.
	ErrChunkTooLarge = errors.New("chunk too large")
)

// Header describes the MThd chunk.
type Header struct {
	Format   uint16
	Tracks   uint16
	Division uint16
}

// Validate checks the header fields.
func (h Header) Validate() error {
	if h.Format != FormatMultiTrack {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, h.Format)
	}
	if h.Division == 0 || h.Division&0x8000 != 0 {
		return fmt.Errorf("%w: %#04x", ErrInvalidDivision, h.Division)
	}
	return nil
}

// AppendTo appends the 14-byte header chunk to dst.
func (h Header) AppendTo(dst []byte) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return dst, err
	}
	dst = append(dst, HeaderType...)
	dst = binary.BigEndian.AppendUint32(dst, HeaderLength)
	dst = binary.BigEndian.AppendUint16(dst, h.Format)
	dst = binary.BigEndian.AppendUint16(dst, h.Tracks)
	dst = binary.BigEndian.AppendUint16(dst, h.Division)
	return dst, nil
}

// Bytes returns the header chunk.
func (h Header) Bytes() ([]byte, error) {
	return h.AppendTo(make([]byte, 0, 8+HeaderLength))
}

// AppendTrack appends an MTrk chunk wrapping events to dst.
func AppendTrack(dst, events []byte) ([]byte, error) {
	if uint64(len(events)) > math.MaxUint32 {
		return dst, fmt.Errorf("%w: track of %d bytes", ErrChunkTooLarge, len(events))
	}
	dst = append(dst, TrackType...)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(events)))
	dst = append(dst, events...)
	return dst, nil
}

// Track returns an MTrk chunk wrapping events.
func Track(events []byte) ([]byte, error) {
	return AppendTrack(make([]byte, 0, 8+len(events)), events)
}

// TrackSize returns the size of the chunk AppendTrack would write.
func TrackSize(events []byte) int {
	return 8 + len(events)
}
