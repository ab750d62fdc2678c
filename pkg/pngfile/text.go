// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// EncodingUTF8 reads and writes payloads as UTF-8. It is the default.
	EncodingUTF8 TextEncoding = "utf-8"
	// EncodingLatin1 reads and writes payloads as ISO 8859-1, the character
	// set of the standard tEXt and zTXt chunks.
	EncodingLatin1 TextEncoding = "latin-1"
)

// ErrUnknownTextEncoding is the sentinel error wrapped by UnknownTextEncodingError.
var ErrUnknownTextEncoding = errors.New("unknown text encoding")

type (
	// TextEncoding names the character encoding used to convert between
	// payload bytes and text. The zero value means EncodingUTF8.
	TextEncoding string

	// UnknownTextEncodingError is returned when a TextEncoding is not one of
	// the supported values.
	UnknownTextEncodingError struct {
		Value TextEncoding
	}
)

// String returns the encoding name.
func (e TextEncoding) String() string {
	if e == "" {
		return string(EncodingUTF8)
	}
	return string(e)
}

// Validate returns an error if the encoding is not supported.
func (e TextEncoding) Validate() error {
	switch e {
	case "", EncodingUTF8, EncodingLatin1:
		return nil
	default:
		return &UnknownTextEncodingError{Value: e}
	}
}

// Error implements the error interface.
func (e *UnknownTextEncodingError) Error() string {
	return fmt.Sprintf("unknown text encoding %q (valid: %s, %s)", e.Value, EncodingUTF8, EncodingLatin1)
}

// Unwrap returns ErrUnknownTextEncoding for errors.Is() compatibility.
func (e *UnknownTextEncodingError) Unwrap() error { return ErrUnknownTextEncoding }

// EncodeText converts a message to payload bytes in the given encoding.
// Latin-1 cannot represent every rune; the first unrepresentable rune
// (counted in runes) is reported as an InvalidPayloadEncodingError.
func EncodeText(enc TextEncoding, s string) ([]byte, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(s) {
		return nil, &InvalidPayloadEncodingError{Encoding: EncodingUTF8, Offset: firstInvalidUTF8(s)}
	}
	if enc != EncodingLatin1 {
		return []byte(s), nil
	}

	i := 0
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok {
			return nil, &InvalidPayloadEncodingError{Encoding: enc, Offset: i}
		}
		i++
	}
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return nil, &InvalidPayloadEncodingError{Encoding: enc, Offset: 0}
	}
	return []byte(out), nil
}

// decodeText interprets payload bytes in the given encoding. UTF-8 payloads
// are validated, never repaired.
func decodeText(enc TextEncoding, data []byte) (string, error) {
	if err := enc.Validate(); err != nil {
		return "", err
	}
	if enc == EncodingLatin1 {
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", &InvalidPayloadEncodingError{Encoding: enc, Offset: 0}
		}
		return string(out), nil
	}
	if !utf8.Valid(data) {
		return "", &InvalidPayloadEncodingError{Encoding: EncodingUTF8, Offset: firstInvalidUTF8(string(data))}
	}
	return string(data), nil
}

// firstInvalidUTF8 returns the byte offset of the first invalid UTF-8
// sequence in s, or len(s) if there is none.
func firstInvalidUTF8(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}
