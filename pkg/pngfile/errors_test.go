// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"foreign", errors.New("boom"), KindUnknown},
		{"invalid length", &InvalidLengthError{Text: "ab", Got: 2}, KindInvalidLength},
		{"invalid type code", &InvalidTypeCodeError{Bytes: [4]byte{'a', '1', 'b', 'c'}, Index: 1}, KindInvalidTypeCode},
		{"eof", &UnexpectedEOFError{Need: 12}, KindUnexpectedEOF},
		{"signature", &InvalidSignatureError{}, KindInvalidSignature},
		{"checksum", &ChecksumMismatchError{}, KindChecksumMismatch},
		{"not found", &ChunkNotFoundError{Type: "ruSt"}, KindChunkNotFound},
		{"encoding", &InvalidPayloadEncodingError{Encoding: EncodingUTF8}, KindInvalidPayloadEncoding},
		{"wrapped", fmt.Errorf("reading file: %w", &ChunkNotFoundError{Type: "ruSt"}), KindChunkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&InvalidLengthError{Text: "abcde", Got: 5}, "5 bytes, want 4"},
		{&InvalidTypeCodeError{Bytes: [4]byte{'R', 'u', '1', 't'}, Index: 2}, "byte 2 (0x31)"},
		{&UnexpectedEOFError{Offset: 8, Need: 54, Available: 20}, "offset 8: need 54 bytes, have 20"},
		{&InvalidSignatureError{Got: []byte{0xff, 0xd8}}, "got ff d8"},
		{&ChecksumMismatchError{Type: MustParseTypeCode("RuSt"), Stored: 1, Computed: 2}, "RuSt chunk"},
		{&ChunkNotFoundError{Type: "ruSt"}, `"ruSt"`},
		{&InvalidPayloadEncodingError{Encoding: EncodingLatin1, Offset: 3}, "latin-1 at offset 3"},
	}

	for _, tt := range tests {
		if msg := tt.err.Error(); !strings.Contains(msg, tt.want) {
			t.Errorf("%T.Error() = %q, want it to contain %q", tt.err, msg, tt.want)
		}
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	if KindUnexpectedEOF.String() != "UnexpectedEof" {
		t.Errorf("KindUnexpectedEOF.String() = %q", KindUnexpectedEOF.String())
	}
	if ErrorKind(99).String() != "Unknown" {
		t.Errorf("ErrorKind(99).String() = %q", ErrorKind(99).String())
	}
}
