// Package midifile assembles encoded tracks into a complete Type 1
// Standard MIDI File.
package midifile

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zurustar/smfwriter/pkg/chunk"
)

// TicksPerQuarterNote is the time division of every file this package
// writes.
const TicksPerQuarterNote = 480

// ErrTooManyTracks is returned when the track count does not fit the
// 16-bit header field.
var ErrTooManyTracks = errors.New("too many tracks")

// Encoder produces a track event stream (without the MTrk chunk header).
type Encoder interface {
	Encode() ([]byte, error)
}

// Header returns the header chunk description for a file with n tracks.
func Header(n int) (chunk.Header, error) {
	if n > math.MaxUint16 {
		return chunk.Header{}, fmt.Errorf("%w: %d", ErrTooManyTracks, n)
	}
	return chunk.Header{
		Format:   chunk.FormatMultiTrack,
		Tracks:   uint16(n),
		Division: TicksPerQuarterNote,
	}, nil
}

// Assemble writes the header chunk followed by one track chunk per stream,
// in order. It does not modify streams.
func Assemble(streams [][]byte) ([]byte, error) {
	h, err := Header(len(streams))
	if err != nil {
		return nil, err
	}

	size := 8 + chunk.HeaderLength
	for _, s := range streams {
		size += chunk.TrackSize(s)
	}

	out, err := h.AppendTo(make([]byte, 0, size))
	if err != nil {
		return nil, err
	}
	for i, s := range streams {
		if out, err = chunk.AppendTrack(out, s); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
	}
	return out, nil
}

// EncodeTracks encodes every track concurrently. Results keep the input
// order. The first failure is returned.
func EncodeTracks(tracks []Encoder) ([][]byte, error) {
	streams := make([][]byte, len(tracks))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range tracks {
		g.Go(func() error {
			s, err := t.Encode()
			if err != nil {
				return fmt.Errorf("track %d: %w", i, err)
			}
			streams[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return streams, nil
}

// Build encodes tracks and assembles the file.
func Build(tracks []Encoder) ([]byte, error) {
	streams, err := EncodeTracks(tracks)
	if err != nil {
		return nil, err
	}
	return Assemble(streams)
}
