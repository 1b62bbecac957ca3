package event

import "math"

// NoteEvent is a sounding note. It expands into a Note-On at Tick and a
// Note-Off at Tick+Duration.
type NoteEvent struct {
	Tick        int
	Duration    int
	Channel     int
	Pitch       int
	Velocity    int
	OffVelocity int
}

// AbsoluteTick implements Event.
func (n NoteEvent) AbsoluteTick() int { return n.Tick }

// EndTick is the tick of the Note-Off.
func (n NoteEvent) EndTick() int { return n.Tick + n.Duration }

// Validate implements Event.
func (n NoteEvent) Validate() error {
	var errs fieldErrors
	errs.checkTick("start", n.Tick)
	if n.Duration <= 0 {
		errs.add("duration", n.Duration, "must be positive")
	} else if n.Tick > math.MaxInt-n.Duration {
		errs.add("duration", n.Duration, "end tick overflows")
	}
	errs.checkRange("channel", n.Channel, 0, MaxChannel)
	errs.checkRange("pitch", n.Pitch, 0, MaxDataValue)
	errs.checkRange("velocity", n.Velocity, 0, MaxDataValue)
	errs.checkRange("off_velocity", n.OffVelocity, 0, MaxDataValue)
	return errs.err()
}

// Messages implements Event.
func (n NoteEvent) Messages() ([]Message, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	ch := byte(n.Channel)
	return []Message{
		{
			Tick: n.Tick,
			Kind: KindNoteOn,
			Data: []byte{StatusNoteOn | ch, byte(n.Pitch), byte(n.Velocity)},
		},
		{
			Tick: n.EndTick(),
			Kind: KindNoteOff,
			Data: []byte{StatusNoteOff | ch, byte(n.Pitch), byte(n.OffVelocity)},
		},
	}, nil
}

// ProgramChangeEvent selects an instrument on a channel.
type ProgramChangeEvent struct {
	Tick    int
	Channel int
	Program int
}

// AbsoluteTick implements Event.
func (p ProgramChangeEvent) AbsoluteTick() int { return p.Tick }

// Validate implements Event.
func (p ProgramChangeEvent) Validate() error {
	var errs fieldErrors
	errs.checkTick("start", p.Tick)
	errs.checkRange("channel", p.Channel, 0, MaxChannel)
	errs.checkRange("program", p.Program, 0, MaxDataValue)
	return errs.err()
}

// Messages implements Event.
func (p ProgramChangeEvent) Messages() ([]Message, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []Message{{
		Tick: p.Tick,
		Kind: KindProgramChange,
		Data: []byte{StatusProgramChange | byte(p.Channel), byte(p.Program)},
	}}, nil
}
