// Package writer is the entry point for building Standard MIDI Files.
//
// A Writer collects tracks and events and produces the finished file bytes
// with Finalize. Tracks must be created with AddTrack before events are
// added to them; addressing any other index fails with ErrUnknownTrack.
//
//	w := writer.New()
//	w.AddTrack()
//	w.AddBPM(writer.DefaultTempoOptions())
//	note := writer.DefaultNoteOptions()
//	note.Pitch = 64
//	w.AddNote(note)
//	data, err := w.Finalize()
//
// The Writer performs no I/O. Persisting the bytes is up to the caller.
package writer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/zurustar/smfwriter/pkg/event"
	"github.com/zurustar/smfwriter/pkg/logger"
	"github.com/zurustar/smfwriter/pkg/midifile"
	"github.com/zurustar/smfwriter/pkg/track"
	"github.com/zurustar/smfwriter/pkg/vlq"
)

// TicksPerQuarterNote is the fixed time division of every file.
const TicksPerQuarterNote = midifile.TicksPerQuarterNote

// NumChannels is the number of MIDI channels.
const NumChannels = event.MaxChannel + 1

var (
	// ErrValidation is matched by every rejected argument.
	ErrValidation = event.ErrValidation

	// ErrEncodingRange is returned by Finalize when a delta time cannot be
	// written as a variable-length quantity.
	ErrEncodingRange = vlq.ErrEncodingRange

	// ErrUnknownTrack is returned when a track index was never created
	// with AddTrack.
	ErrUnknownTrack = errors.New("unknown track")

	// ErrUnknownChannel is returned when looking up a channel that has no
	// program assigned.
	ErrUnknownChannel = errors.New("unknown channel")
)

// ValidationError describes one rejected argument.
type ValidationError = event.ValidationError

// Writer accumulates tracks and events for one MIDI file.
//
// All methods are safe for concurrent use. Finalize only reads state, so
// several Finalize calls may run at once.
type Writer struct {
	tracks []*track.Track

	// Channel to program table. Last write wins.
	programs [NumChannels]int
	assigned [NumChannels]bool

	log *slog.Logger
	mu  sync.RWMutex
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used for rejected calls and finalize
// summaries.
func WithLogger(log *slog.Logger) Option {
	return func(w *Writer) {
		if log != nil {
			w.log = log
		}
	}
}

// New creates an empty Writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		log: logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddTrack creates a new empty track and returns its index. Indices start
// at 0 and follow creation order, which is also the order of the tracks in
// the file.
func (w *Writer) AddTrack() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tracks = append(w.tracks, track.New())
	index := len(w.tracks) - 1
	w.log.Debug("track added", "track", index)
	return index
}

// TrackCount returns the number of tracks created so far.
func (w *Writer) TrackCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.tracks)
}

// AddNote adds a note (a Note-On and its Note-Off).
func (w *Writer) AddNote(opts NoteOptions) error {
	return w.appendEvent("AddNote", opts.Track, func() (event.Event, error) {
		return event.NoteEvent{
			Tick:        opts.Start,
			Duration:    opts.Duration,
			Channel:     opts.Channel,
			Pitch:       opts.Pitch,
			Velocity:    opts.Velocity,
			OffVelocity: opts.OffVelocity,
		}, nil
	})
}

// AddBPM adds a tempo change.
func (w *Writer) AddBPM(opts TempoOptions) error {
	return w.appendEvent("AddBPM", opts.Track, func() (event.Event, error) {
		return event.TempoFromBPM(opts.Start, opts.BPM)
	})
}

// AddTimeSignature adds a time signature change.
func (w *Writer) AddTimeSignature(opts TimeSignatureOptions) error {
	return w.appendEvent("AddTimeSignature", opts.Track, func() (event.Event, error) {
		ts, err := event.TimeSignatureFromFraction(opts.Start, opts.Numerator, opts.Denominator)
		if err != nil {
			return nil, err
		}
		ts.ClocksPerClick = opts.ClocksPerClick
		ts.ThirtySecondsPerQuarter = opts.ThirtySecondsPerQuarter
		return ts, nil
	})
}

// AddTrackName adds a track name meta event.
func (w *Writer) AddTrackName(opts TrackNameOptions) error {
	return w.appendEvent("AddTrackName", opts.Track, func() (event.Event, error) {
		return event.NewTrackName(opts.Start, opts.Name, opts.Encoding)
	})
}

// AddProgramChange adds a program change at any tick on any track.
func (w *Writer) AddProgramChange(opts ProgramChangeOptions) error {
	return w.appendEvent("AddProgramChange", opts.Track, func() (event.Event, error) {
		return event.ProgramChangeEvent{
			Tick:    opts.Start,
			Channel: opts.Channel,
			Program: opts.Program,
		}, nil
	})
}

// SetChannel assigns a program to a channel. Each assigned channel gets a
// Program-Change at tick 0 on track 0 in the finished file, so track 0
// must exist. Assigning the same channel again replaces the program.
func (w *Writer) SetChannel(opts ChannelOptions) error {
	const op = "SetChannel"

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.trackLocked(0); err != nil {
		return w.reject(op, err)
	}
	pc := event.ProgramChangeEvent{Tick: 0, Channel: opts.Channel, Program: opts.Program}
	if err := pc.Validate(); err != nil {
		return w.reject(op, err)
	}

	w.programs[opts.Channel] = opts.Program
	w.assigned[opts.Channel] = true
	return nil
}

// ChannelProgram returns the program assigned to channel by SetChannel.
func (w *Writer) ChannelProgram(channel int) (int, error) {
	if channel < 0 || channel > event.MaxChannel {
		return 0, &ValidationError{
			Field:  "channel",
			Value:  channel,
			Reason: fmt.Sprintf("must be between 0 and %d", event.MaxChannel),
		}
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.assigned[channel] {
		return 0, fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}
	return w.programs[channel], nil
}

// Finalize encodes every track and returns the complete file. It does not
// change the Writer and returns identical bytes for identical state.
func (w *Writer) Finalize() ([]byte, error) {
	tracks, err := w.snapshot()
	if err != nil {
		return nil, w.reject("Finalize", err)
	}

	data, err := midifile.Build(tracks)
	if err != nil {
		return nil, w.reject("Finalize", err)
	}

	w.log.Debug("file finalized", "tracks", len(tracks), "bytes", len(data))
	return data, nil
}

// WriteTo finalizes the file and writes it to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	data, err := w.Finalize()
	if err != nil {
		return 0, err
	}
	n, err := dst.Write(data)
	return int64(n), err
}

// snapshot copies the tracks for encoding outside the lock and adds the
// channel program assignments to the copy of track 0.
func (w *Writer) snapshot() ([]midifile.Encoder, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	tracks := make([]midifile.Encoder, len(w.tracks))
	for i, t := range w.tracks {
		c := t.Clone()
		if i == 0 {
			for ch := range NumChannels {
				if !w.assigned[ch] {
					continue
				}
				pc := event.ProgramChangeEvent{Tick: 0, Channel: ch, Program: w.programs[ch]}
				if err := c.Add(pc); err != nil {
					return nil, err
				}
			}
		}
		tracks[i] = c
	}
	return tracks, nil
}

// appendEvent resolves the track, builds the event and appends it.
// Nothing is stored if either step fails.
func (w *Writer) appendEvent(op string, index int, build func() (event.Event, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := w.trackLocked(index)
	if err != nil {
		return w.reject(op, err)
	}
	e, err := build()
	if err != nil {
		return w.reject(op, err)
	}
	if err := t.Add(e); err != nil {
		return w.reject(op, err)
	}
	return nil
}

// trackLocked returns the track at index. Must be called with w.mu held.
func (w *Writer) trackLocked(index int) (*track.Track, error) {
	if index < 0 || index >= len(w.tracks) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrUnknownTrack, index, len(w.tracks))
	}
	return w.tracks[index], nil
}

func (w *Writer) reject(op string, err error) error {
	w.log.Warn("call rejected", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
