package event

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

func TestEncodeTextASCIIFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "C Major Scale", "C Major Scale"},
		{"accents removed", "Café Crème", "Cafe Creme"},
		{"non-latin dropped", "ピアノ Piano", " Piano"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeText(tt.in, nil)
			if err != nil {
				t.Fatalf("EncodeText(%q) failed: %v", tt.in, err)
			}
			if string(got) != tt.want {
				t.Errorf("EncodeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeTextShiftJIS(t *testing.T) {
	got, err := EncodeText("ピアノ", japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	want := []byte{0x83, 0x73, 0x83, 0x41, 0x83, 0x6D}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeText = % X, want % X", got, want)
	}
}

func TestEncodeTextLatin1(t *testing.T) {
	got, err := EncodeText("Café", charmap.ISO8859_1)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	want := []byte{'C', 'a', 'f', 0xE9}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeText = % X, want % X", got, want)
	}
}

func TestEncodeTextUnmappable(t *testing.T) {
	if _, err := EncodeText("ピアノ", charmap.ISO8859_1); err == nil {
		t.Error("expected error for text the encoding cannot represent")
	}
}

func TestNewTrackNameShiftJIS(t *testing.T) {
	ev, err := NewTrackName(0, "ピアノ", japanese.ShiftJIS)
	if err != nil {
		t.Fatalf("NewTrackName failed: %v", err)
	}
	msgs, err := ev.Messages()
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	want := []byte{0xFF, 0x03, 0x06, 0x83, 0x73, 0x83, 0x41, 0x83, 0x6D}
	if !bytes.Equal(msgs[0].Data, want) {
		t.Errorf("track name bytes = % X, want % X", msgs[0].Data, want)
	}
	if ev.Name != "ピアノ" {
		t.Errorf("Name = %q", ev.Name)
	}
}

func TestNewTrackNameUnencodable(t *testing.T) {
	_, err := NewTrackName(0, "🎹", japanese.ShiftJIS)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
