package vlq

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"largest single byte", 127, []byte{0x7F}},
		{"smallest two bytes", 128, []byte{0x81, 0x00}},
		{"quarter note at 480 ppq", 480, []byte{0x83, 0x60}},
		{"largest two bytes", 16383, []byte{0xFF, 0x7F}},
		{"smallest three bytes", 16384, []byte{0x81, 0x80, 0x00}},
		{"largest three bytes", 2097151, []byte{0xFF, 0xFF, 0x7F}},
		{"smallest four bytes", 2097152, []byte{0x81, 0x80, 0x80, 0x00}},
		{"max value", MaxValue, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode(%d) returned error: %v", tt.value, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%d) = % X, want % X", tt.value, got, tt.want)
			}
			if Len(tt.value) != len(tt.want) {
				t.Errorf("Len(%d) = %d, want %d", tt.value, Len(tt.value), len(tt.want))
			}
		})
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	for _, v := range []uint64{MaxValue + 1, 1 << 32, ^uint64(0)} {
		_, err := Encode(v)
		if !errors.Is(err, ErrEncodingRange) {
			t.Errorf("Encode(%d) error = %v, want ErrEncodingRange", v, err)
		}
		if Len(v) != 0 {
			t.Errorf("Len(%d) = %d, want 0", v, Len(v))
		}
	}
}

func TestAppendEncodedKeepsPrefix(t *testing.T) {
	prefix := []byte{0xFF, 0x03}
	got, err := AppendEncoded(prefix, 200)
	if err != nil {
		t.Fatalf("AppendEncoded failed: %v", err)
	}
	want := []byte{0xFF, 0x03, 0x81, 0x48}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendEncoded = % X, want % X", got, want)
	}

	got, err = AppendEncoded(prefix, MaxValue+1)
	if err == nil {
		t.Fatal("expected error for out-of-range value")
	}
	if !bytes.Equal(got, prefix) {
		t.Errorf("AppendEncoded modified dst on error: % X", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		want     uint32
		consumed int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"single byte with trailing data", []byte{0x7F, 0x90, 0x3C}, 127, 1},
		{"two bytes", []byte{0x81, 0x00}, 128, 2},
		{"three bytes", []byte{0x81, 0x80, 0x00}, 16384, 3},
		{"four bytes", []byte{0xFF, 0xFF, 0xFF, 0x7F}, MaxValue, 4},
		{"non-canonical leading zero group", []byte{0x80, 0x05}, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode(% X) returned error: %v", tt.data, err)
			}
			if got != tt.want || n != tt.consumed {
				t.Errorf("Decode(% X) = (%d, %d), want (%d, %d)", tt.data, got, n, tt.want, tt.consumed)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0x81}},
		{"truncated three bytes", []byte{0x81, 0x80, 0x80}},
		{"five byte quantity", []byte{0x81, 0x80, 0x80, 0x80, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.data)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(% X) error = %v, want ErrMalformed", tt.data, err)
			}
		})
	}
}
