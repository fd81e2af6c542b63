package hexarray

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnencodable is returned when a character does not fit in a single byte.
var ErrUnencodable = errors.New("character does not fit in a single byte")

// EncodeError reports the first character that could not be encoded.
type EncodeError struct {
	Char   rune
	Offset int // character offset in the text after filtering
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: %U %q at offset %d", ErrUnencodable, e.Char, e.Char, e.Offset)
}

func (e *EncodeError) Unwrap() error { return ErrUnencodable }

// Config controls how text becomes bytes and how the C source is emitted.
type Config struct {
	// FilterCharacter drops every character with a code point >= 0x80.
	FilterCharacter bool
	// NullTerminate appends a single zero byte after filtering.
	NullTerminate bool
	// UTF8 encodes the text as UTF-8 instead of one byte per code point.
	UTF8 bool
	// Header is the file named in the #include directive. Defaults to DefaultHeader.
	Header string
	// Name overrides the array identifier derived from the input file name.
	Name string
}

// DecodeText converts raw file content to text the way a text-mode read does:
// "\r\n" and lone "\r" become "\n". Every invalid UTF-8 byte becomes U+FFFD.
func DecodeText(raw []byte) string {
	s := string(raw)
	if !utf8.ValidString(s) {
		s = string([]rune(s))
	}
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Encode applies filtering and termination to text and returns its bytes.
func Encode(text string, cfg Config) ([]byte, error) {
	if cfg.FilterCharacter {
		text = stripNonASCII(text)
	}
	if cfg.NullTerminate {
		text += "\x00"
	}

	if cfg.UTF8 {
		return []byte(text), nil
	}

	out := make([]byte, 0, len(text))
	offset := 0
	for _, r := range text {
		if r > 0xFF {
			return nil, &EncodeError{Char: r, Offset: offset}
		}
		out = append(out, byte(r))
		offset++
	}
	return out, nil
}

func stripNonASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		// Invalid bytes decode to RuneError, which is dropped too.
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}
