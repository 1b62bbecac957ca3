package track

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/smfwriter/pkg/event"
)

// noteSpec is a compact note description produced by the generators.
type noteSpec struct {
	Start    int
	Duration int
	Pitch    int
}

func genNote() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 4*480),
		gen.IntRange(1, 960),
		gen.IntRange(0, 127),
	).Map(func(values []interface{}) noteSpec {
		return noteSpec{
			Start:    values[0].(int),
			Duration: values[1].(int),
			Pitch:    values[2].(int),
		}
	})
}

func buildTrack(notes []noteSpec) (*Track, error) {
	tr := New()
	for _, n := range notes {
		err := tr.Add(event.NoteEvent{
			Tick:     n.Start,
			Duration: n.Duration,
			Pitch:    n.Pitch,
			Velocity: 100,
		})
		if err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func TestTrackStreamProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("stream ticks never decrease and end with one End-of-Track", prop.ForAll(
		func(notes []noteSpec) bool {
			tr, err := buildTrack(notes)
			if err != nil {
				return false
			}
			stream, err := tr.Encode()
			if err != nil {
				return false
			}

			events := decodeStream(t, stream)
			if len(events) != 2*len(notes)+1 {
				return false
			}
			eot := []byte{0xFF, 0x2F, 0x00}
			for i, ev := range events {
				if i > 0 && ev.Tick < events[i-1].Tick {
					return false
				}
				isEOT := bytes.Equal(ev.Data, eot)
				if isEOT != (i == len(events)-1) {
					return false
				}
			}
			return bytes.HasSuffix(stream, []byte{0x00, 0xFF, 0x2F, 0x00})
		},
		gen.SliceOf(genNote()),
	))

	properties.Property("note off precedes note on at the same tick", prop.ForAll(
		func(notes []noteSpec) bool {
			tr, err := buildTrack(notes)
			if err != nil {
				return false
			}
			msgs, err := tr.Messages()
			if err != nil {
				return false
			}
			for i := 1; i < len(msgs); i++ {
				prev, cur := msgs[i-1], msgs[i]
				if prev.Tick == cur.Tick && prev.Kind == event.KindNoteOn && cur.Kind == event.KindNoteOff {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genNote()),
	))

	properties.Property("encoding is deterministic", prop.ForAll(
		func(notes []noteSpec) bool {
			a, err := buildTrack(notes)
			if err != nil {
				return false
			}
			b, err := buildTrack(notes)
			if err != nil {
				return false
			}
			sa, errA := a.Encode()
			sb, errB := b.Encode()
			return errA == nil && errB == nil && bytes.Equal(sa, sb)
		},
		gen.SliceOf(genNote()),
	))

	properties.TestingRun(t)
}
