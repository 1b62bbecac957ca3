// Package track accumulates the events of one MIDI track and serializes
// them into a delta-time event stream.
package track

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zurustar/smfwriter/pkg/event"
)

// Track is an append-only collection of events. The zero value is an
// empty track ready to use.
type Track struct {
	events []event.Event
}

// New creates an empty track.
func New() *Track {
	return &Track{}
}

// Add validates e and appends it. A rejected event leaves the track
// unchanged.
func (t *Track) Add(e event.Event) error {
	if e == nil {
		return fmt.Errorf("track: nil event")
	}
	if err := e.Validate(); err != nil {
		return err
	}
	t.events = append(t.events, e)
	return nil
}

// Len returns the number of events added so far.
func (t *Track) Len() int {
	return len(t.events)
}

// Events returns a copy of the events in insertion order.
func (t *Track) Events() []event.Event {
	return slices.Clone(t.events)
}

// Clone returns an independent copy of the track.
func (t *Track) Clone() *Track {
	return &Track{events: slices.Clone(t.events)}
}

// Messages expands every event and returns the wire messages in emission
// order: by tick, then by kind priority, then by insertion order.
// End-of-Track is not included.
func (t *Track) Messages() ([]event.Message, error) {
	msgs := make([]event.Message, 0, len(t.events)*2)
	for i, e := range t.events {
		m, err := e.Messages()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		msgs = append(msgs, m...)
	}

	slices.SortStableFunc(msgs, func(a, b event.Message) int {
		if c := cmp.Compare(a.Tick, b.Tick); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind.Priority(), b.Kind.Priority())
	})
	return msgs, nil
}

// Encode returns the track's event stream: each message preceded by its
// VLQ delta from the previous message (the first from tick 0), followed
// by End-of-Track with delta 0. The chunk header is not included.
func (t *Track) Encode() ([]byte, error) {
	msgs, err := t.Messages()
	if err != nil {
		return nil, err
	}

	var out []byte
	previous := 0
	for _, m := range msgs {
		delta, data, err := m.WireBytes(previous)
		if err != nil {
			return nil, err
		}
		out = append(out, delta...)
		out = append(out, data...)
		previous = m.Tick
	}

	delta, data, err := event.EndOfTrack(previous).WireBytes(previous)
	if err != nil {
		return nil, err
	}
	out = append(out, delta...)
	out = append(out, data...)
	return out, nil
}
