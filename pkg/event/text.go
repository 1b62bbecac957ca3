package event

import (
	"fmt"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EncodeText converts meta event text to bytes.
//
// With a nil enc the text is folded to ASCII: accented letters lose their
// marks ("Café" becomes "Cafe") and anything else outside ASCII is dropped.
// Otherwise the text is transcoded with enc, for example
// japanese.ShiftJIS for files meant for Japanese sequencers.
func EncodeText(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return foldASCII(text)
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode text %q: %w", text, err)
	}
	return out, nil
}

func foldASCII(text string) ([]byte, error) {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.Bytes(t, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("fold text %q to ASCII: %w", text, err)
	}
	return out, nil
}
