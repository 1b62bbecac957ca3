// Package event defines the events a Standard MIDI File track can carry
// and their wire encoding.
//
// Events are positioned by absolute tick. Each event expands into one or
// more Messages; a NoteEvent becomes a Note-On and a Note-Off. Delta times
// are only computed when a track is serialized.
package event

import (
	"fmt"

	"github.com/zurustar/smfwriter/pkg/vlq"
)

// Channel voice status bytes. The low nibble carries the channel.
const (
	StatusNoteOff       byte = 0x80
	StatusNoteOn        byte = 0x90
	StatusProgramChange byte = 0xC0
)

// Meta event prefix and type bytes.
const (
	StatusMeta byte = 0xFF

	MetaTrackName     byte = 0x03
	MetaEndOfTrack    byte = 0x2F
	MetaTempo         byte = 0x51
	MetaTimeSignature byte = 0x58
)

// Value limits.
const (
	MaxChannel   = 15
	MaxDataValue = 127
	// MaxTempo is the largest microseconds-per-quarter value a tempo
	// meta event can hold (3 bytes).
	MaxTempo = 1<<24 - 1
)

// Kind identifies the wire-level message type.
type Kind int

const (
	KindTrackName Kind = iota
	KindTempo
	KindTimeSignature
	KindNoteOff
	KindNoteOn
	KindProgramChange
	KindEndOfTrack
)

func (k Kind) String() string {
	switch k {
	case KindTrackName:
		return "TrackName"
	case KindTempo:
		return "Tempo"
	case KindTimeSignature:
		return "TimeSignature"
	case KindNoteOff:
		return "NoteOff"
	case KindNoteOn:
		return "NoteOn"
	case KindProgramChange:
		return "ProgramChange"
	case KindEndOfTrack:
		return "EndOfTrack"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsMeta reports whether k is a meta event.
func (k Kind) IsMeta() bool {
	switch k {
	case KindTrackName, KindTempo, KindTimeSignature, KindEndOfTrack:
		return true
	}
	return false
}

// Priority orders messages that share a tick. Lower goes first.
//
// Meta events come before Note-Off so tempo and meter changes apply from
// their own tick. Note-Off comes before Note-On so a re-struck pitch is
// released before it sounds again. End-of-Track is always last.
func (k Kind) Priority() int {
	switch {
	case k == KindEndOfTrack:
		return 4
	case k.IsMeta():
		return 0
	}
	switch k {
	case KindNoteOff:
		return 1
	case KindNoteOn:
		return 2
	case KindProgramChange:
		return 3
	default:
		return 4
	}
}

// Message is a single wire-level event at an absolute tick.
// Data holds the status byte and its data bytes, or the whole meta event
// (FF, type, VLQ length, payload).
type Message struct {
	Tick int
	Kind Kind
	Data []byte
}

// WireBytes returns the VLQ delta from previousTick and the message bytes.
func (m Message) WireBytes(previousTick int) ([]byte, []byte, error) {
	if m.Tick < previousTick {
		return nil, nil, fmt.Errorf("%s at tick %d precedes previous tick %d", m.Kind, m.Tick, previousTick)
	}
	delta, err := vlq.Encode(uint64(m.Tick - previousTick))
	if err != nil {
		return nil, nil, fmt.Errorf("%s at tick %d: %w", m.Kind, m.Tick, err)
	}
	return delta, m.Data, nil
}

// EndOfTrack returns the mandatory End-of-Track meta message.
func EndOfTrack(tick int) Message {
	return Message{
		Tick: tick,
		Kind: KindEndOfTrack,
		Data: []byte{StatusMeta, MetaEndOfTrack, 0x00},
	}
}

// Event is anything that can be placed on a track.
type Event interface {
	// AbsoluteTick is the position of the event from the start of the file.
	AbsoluteTick() int
	// Validate reports every out-of-range field.
	Validate() error
	// Messages expands the event into its wire-level messages.
	Messages() ([]Message, error)
}

// metaMessage builds FF <type> <vlq length> <payload>.
func metaMessage(tick int, kind Kind, metaType byte, payload []byte) (Message, error) {
	data := make([]byte, 0, 2+vlq.MaxLength+len(payload))
	data = append(data, StatusMeta, metaType)
	data, err := vlq.AppendEncoded(data, uint64(len(payload)))
	if err != nil {
		return Message{}, fmt.Errorf("%s payload length: %w", kind, err)
	}
	data = append(data, payload...)
	return Message{Tick: tick, Kind: kind, Data: data}, nil
}
