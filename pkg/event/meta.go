package event

import (
	"fmt"
	"math"
	"math/bits"

	"golang.org/x/text/encoding"

	"github.com/zurustar/smfwriter/pkg/vlq"
)

// MicrosecondsPerMinute is used to convert beats per minute to the
// microseconds-per-quarter value stored in a tempo event.
const MicrosecondsPerMinute = 60_000_000

// Time signature defaults written by almost every sequencer.
const (
	DefaultClocksPerClick          = 24
	DefaultThirtySecondsPerQuarter = 8
)

// TempoEvent is a Set-Tempo meta event.
type TempoEvent struct {
	Tick                   int
	MicrosecondsPerQuarter int
}

// TempoFromBPM converts beats per minute to a TempoEvent, rounding to the
// nearest microsecond.
func TempoFromBPM(tick int, bpm float64) (TempoEvent, error) {
	var errs fieldErrors
	errs.checkTick("start", tick)

	var mpq int
	switch {
	case math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0:
		errs.add("bpm", bpm, "must be a positive number")
	default:
		q := math.Round(MicrosecondsPerMinute / bpm)
		switch {
		case q < 1:
			errs.add("bpm", bpm, "too fast to represent")
		case q > MaxTempo:
			errs.add("bpm", bpm, "too slow to represent")
		default:
			mpq = int(q)
		}
	}
	if err := errs.err(); err != nil {
		return TempoEvent{}, err
	}
	return TempoEvent{Tick: tick, MicrosecondsPerQuarter: mpq}, nil
}

// BPM returns the tempo in beats per minute.
func (e TempoEvent) BPM() float64 {
	if e.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return MicrosecondsPerMinute / float64(e.MicrosecondsPerQuarter)
}

// AbsoluteTick implements Event.
func (e TempoEvent) AbsoluteTick() int { return e.Tick }

// Validate implements Event.
func (e TempoEvent) Validate() error {
	var errs fieldErrors
	errs.checkTick("start", e.Tick)
	errs.checkRange("microseconds_per_quarter", e.MicrosecondsPerQuarter, 1, MaxTempo)
	return errs.err()
}

// Messages implements Event.
func (e TempoEvent) Messages() ([]Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	t := e.MicrosecondsPerQuarter
	msg, err := metaMessage(e.Tick, KindTempo, MetaTempo, []byte{byte(t >> 16), byte(t >> 8), byte(t)})
	if err != nil {
		return nil, err
	}
	return []Message{msg}, nil
}

// TimeSignatureEvent is a Time-Signature meta event. The denominator is
// stored as a power of two: 3/8 has Numerator 3 and DenominatorExponent 3.
type TimeSignatureEvent struct {
	Tick                    int
	Numerator               int
	DenominatorExponent     int
	ClocksPerClick          int
	ThirtySecondsPerQuarter int
}

// TimeSignatureFromFraction builds a TimeSignatureEvent for
// numerator/denominator with the default metronome settings.
func TimeSignatureFromFraction(tick, numerator, denominator int) (TimeSignatureEvent, error) {
	if denominator <= 0 || denominator&(denominator-1) != 0 {
		var errs fieldErrors
		errs.checkTick("start", tick)
		errs.checkRange("numerator", numerator, 1, math.MaxUint8)
		errs.add("denominator", denominator, "must be a positive power of two")
		return TimeSignatureEvent{}, errs.err()
	}

	ts := TimeSignatureEvent{
		Tick:                    tick,
		Numerator:               numerator,
		DenominatorExponent:     bits.TrailingZeros(uint(denominator)),
		ClocksPerClick:          DefaultClocksPerClick,
		ThirtySecondsPerQuarter: DefaultThirtySecondsPerQuarter,
	}
	if err := ts.Validate(); err != nil {
		return TimeSignatureEvent{}, err
	}
	return ts, nil
}

// Denominator returns the denominator as a plain number.
func (e TimeSignatureEvent) Denominator() int {
	return 1 << e.DenominatorExponent
}

// AbsoluteTick implements Event.
func (e TimeSignatureEvent) AbsoluteTick() int { return e.Tick }

// Validate implements Event.
func (e TimeSignatureEvent) Validate() error {
	var errs fieldErrors
	errs.checkTick("start", e.Tick)
	errs.checkRange("numerator", e.Numerator, 1, math.MaxUint8)
	// 2^62 is the largest power of two an int denominator can express.
	errs.checkRange("denominator_exponent", e.DenominatorExponent, 0, 62)
	errs.checkRange("clocks_per_click", e.ClocksPerClick, 1, math.MaxUint8)
	errs.checkRange("thirty_seconds_per_quarter", e.ThirtySecondsPerQuarter, 1, math.MaxUint8)
	return errs.err()
}

// Messages implements Event.
func (e TimeSignatureEvent) Messages() ([]Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	payload := []byte{
		byte(e.Numerator),
		byte(e.DenominatorExponent),
		byte(e.ClocksPerClick),
		byte(e.ThirtySecondsPerQuarter),
	}
	msg, err := metaMessage(e.Tick, KindTimeSignature, MetaTimeSignature, payload)
	if err != nil {
		return nil, err
	}
	return []Message{msg}, nil
}

// TrackNameEvent is a Track-Name meta event. Text is the encoded payload;
// when it is nil, Name is folded to ASCII.
type TrackNameEvent struct {
	Tick int
	Name string
	Text []byte
}

// NewTrackName encodes name with enc (nil means ASCII) into a TrackNameEvent.
func NewTrackName(tick int, name string, enc encoding.Encoding) (TrackNameEvent, error) {
	var errs fieldErrors
	errs.checkTick("start", tick)
	if err := errs.err(); err != nil {
		return TrackNameEvent{}, err
	}

	text, err := EncodeText(name, enc)
	if err != nil {
		errs.add("name", name, err.Error())
		return TrackNameEvent{}, errs.err()
	}
	ev := TrackNameEvent{Tick: tick, Name: name, Text: text}
	if err := ev.Validate(); err != nil {
		return TrackNameEvent{}, err
	}
	return ev, nil
}

// AbsoluteTick implements Event.
func (e TrackNameEvent) AbsoluteTick() int { return e.Tick }

// Validate implements Event.
func (e TrackNameEvent) Validate() error {
	var errs fieldErrors
	errs.checkTick("start", e.Tick)
	if len(e.Text) > vlq.MaxValue {
		errs.add("name", len(e.Text), fmt.Sprintf("encoded length exceeds %d bytes", vlq.MaxValue))
	}
	return errs.err()
}

// Messages implements Event.
func (e TrackNameEvent) Messages() ([]Message, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	text := e.Text
	if text == nil {
		var err error
		if text, err = EncodeText(e.Name, nil); err != nil {
			return nil, err
		}
	}
	msg, err := metaMessage(e.Tick, KindTrackName, MetaTrackName, text)
	if err != nil {
		return nil, err
	}
	return []Message{msg}, nil
}
