package writer

import (
	"golang.org/x/text/encoding"

	"github.com/zurustar/smfwriter/pkg/event"
)

// NoteOptions describes one note. Start and Duration are in ticks.
// Use DefaultNoteOptions for the documented defaults; a zero Duration is
// rejected rather than defaulted.
type NoteOptions struct {
	Track       int // default 0
	Channel     int // default 0
	Start       int // default 0
	Duration    int // default TicksPerQuarterNote
	Pitch       int // default 60 (middle C)
	Velocity    int // default 120
	OffVelocity int // default 0
}

// DefaultNoteOptions returns a quarter-note middle C on track 0, channel 0.
func DefaultNoteOptions() NoteOptions {
	return NoteOptions{
		Track:       0,
		Channel:     0,
		Start:       0,
		Duration:    TicksPerQuarterNote,
		Pitch:       60,
		Velocity:    120,
		OffVelocity: 0,
	}
}

// TempoOptions describes a tempo change.
type TempoOptions struct {
	Track int     // default 0
	Start int     // default 0
	BPM   float64 // default 120
}

// DefaultTempoOptions returns 120 BPM at tick 0 on track 0.
func DefaultTempoOptions() TempoOptions {
	return TempoOptions{Track: 0, Start: 0, BPM: 120}
}

// TimeSignatureOptions describes a time signature change.
// Denominator must be a power of two.
type TimeSignatureOptions struct {
	Track                   int // default 0
	Start                   int // default 0
	Numerator               int // default 4
	Denominator             int // default 4
	ClocksPerClick          int // default 24
	ThirtySecondsPerQuarter int // default 8
}

// DefaultTimeSignatureOptions returns 4/4 at tick 0 on track 0.
func DefaultTimeSignatureOptions() TimeSignatureOptions {
	return TimeSignatureOptions{
		Track:                   0,
		Start:                   0,
		Numerator:               4,
		Denominator:             4,
		ClocksPerClick:          event.DefaultClocksPerClick,
		ThirtySecondsPerQuarter: event.DefaultThirtySecondsPerQuarter,
	}
}

// TrackNameOptions describes a track name.
type TrackNameOptions struct {
	Track int    // default 0
	Start int    // default 0
	Name  string // default "Track"
	// Encoding transcodes Name. nil folds it to ASCII.
	Encoding encoding.Encoding
}

// DefaultTrackNameOptions returns the name "Track" for track 0.
func DefaultTrackNameOptions() TrackNameOptions {
	return TrackNameOptions{Track: 0, Start: 0, Name: "Track"}
}

// ChannelOptions assigns a program (instrument) to a channel.
type ChannelOptions struct {
	Channel int // default 0
	Program int // default 0 (Acoustic Grand Piano)
}

// DefaultChannelOptions returns program 0 on channel 0.
func DefaultChannelOptions() ChannelOptions {
	return ChannelOptions{Channel: 0, Program: 0}
}

// ProgramChangeOptions places a program change at an arbitrary tick.
type ProgramChangeOptions struct {
	Track   int // default 0
	Channel int // default 0
	Start   int // default 0
	Program int // default 0
}

// DefaultProgramChangeOptions returns program 0 on channel 0 at tick 0.
func DefaultProgramChangeOptions() ProgramChangeOptions {
	return ProgramChangeOptions{}
}
