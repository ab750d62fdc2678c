// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"errors"
	"fmt"
)

const (
	// KindUnknown is returned by Kind for errors that did not originate in this package.
	KindUnknown ErrorKind = iota
	// KindInvalidLength means a textual type code was not exactly 4 bytes long.
	KindInvalidLength
	// KindInvalidTypeCode means a type code contained a non-alphabetic byte.
	KindInvalidTypeCode
	// KindUnexpectedEOF means a declared length ran past the end of the buffer.
	KindUnexpectedEOF
	// KindInvalidSignature means the leading 8 bytes were not the PNG signature.
	KindInvalidSignature
	// KindChecksumMismatch means a stored CRC disagreed with the recomputed one.
	KindChecksumMismatch
	// KindChunkNotFound means no chunk matched the requested type code.
	KindChunkNotFound
	// KindInvalidPayloadEncoding means a payload is not valid text in the requested encoding.
	KindInvalidPayloadEncoding
)

var (
	// ErrInvalidLength is the sentinel error wrapped by InvalidLengthError.
	ErrInvalidLength = errors.New("invalid type code length")
	// ErrInvalidTypeCode is the sentinel error wrapped by InvalidTypeCodeError.
	ErrInvalidTypeCode = errors.New("invalid type code")
	// ErrUnexpectedEOF is the sentinel error wrapped by UnexpectedEOFError.
	ErrUnexpectedEOF = errors.New("unexpected end of data")
	// ErrInvalidSignature is the sentinel error wrapped by InvalidSignatureError.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrChecksumMismatch is the sentinel error wrapped by ChecksumMismatchError.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrChunkNotFound is the sentinel error wrapped by ChunkNotFoundError.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrInvalidPayloadEncoding is the sentinel error wrapped by InvalidPayloadEncodingError.
	ErrInvalidPayloadEncoding = errors.New("invalid payload encoding")
)

type (
	// ErrorKind classifies the errors produced by this package so callers can
	// branch on the failure without inspecting message text.
	ErrorKind int

	// InvalidLengthError is returned when a textual type code is not exactly
	// 4 bytes. Length is measured in bytes, not runes.
	InvalidLengthError struct {
		Text string
		Got  int
	}

	// InvalidTypeCodeError is returned when one of the 4 type code bytes is
	// not an ASCII letter. Index is the position of the first offending byte.
	InvalidTypeCodeError struct {
		Bytes [4]byte
		Index int
	}

	// UnexpectedEOFError is returned when the buffer ends before a frame does.
	// Offset is where the incomplete frame starts, relative to the parsed buffer.
	UnexpectedEOFError struct {
		Offset    int
		Need      int
		Available int
	}

	// InvalidSignatureError is returned when a buffer does not start with the
	// PNG signature. Got holds at most the first 8 bytes of the buffer.
	InvalidSignatureError struct {
		Got []byte
	}

	// ChecksumMismatchError is returned when a parsed chunk's stored CRC does
	// not match the CRC computed over its type and payload.
	ChecksumMismatchError struct {
		Type     TypeCode
		Stored   uint32
		Computed uint32
	}

	// ChunkNotFoundError is returned when a removal or lookup names a type
	// code no chunk in the container carries.
	ChunkNotFoundError struct {
		Type string
	}

	// InvalidPayloadEncodingError is returned when payload bytes cannot be
	// read as, or text cannot be written in, the requested encoding.
	// Offset is the byte (or rune, when encoding) position of the first failure.
	InvalidPayloadEncodingError struct {
		Encoding TextEncoding
		Offset   int
	}
)

var kindSentinels = []struct {
	kind     ErrorKind
	sentinel error
}{
	{KindInvalidLength, ErrInvalidLength},
	{KindInvalidTypeCode, ErrInvalidTypeCode},
	{KindUnexpectedEOF, ErrUnexpectedEOF},
	{KindInvalidSignature, ErrInvalidSignature},
	{KindChecksumMismatch, ErrChecksumMismatch},
	{KindChunkNotFound, ErrChunkNotFound},
	{KindInvalidPayloadEncoding, ErrInvalidPayloadEncoding},
}

// Kind reports which kind of pngfile error is present in err's chain.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.sentinel) {
			return ks.kind
		}
	}
	return KindUnknown
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidLength:
		return "InvalidLength"
	case KindInvalidTypeCode:
		return "InvalidTypeCode"
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindInvalidSignature:
		return "InvalidSignature"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindChunkNotFound:
		return "ChunkNotFound"
	case KindInvalidPayloadEncoding:
		return "InvalidPayloadEncoding"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid type code length: %q is %d bytes, want 4", e.Text, e.Got)
}

// Unwrap returns ErrInvalidLength for errors.Is() compatibility.
func (e *InvalidLengthError) Unwrap() error { return ErrInvalidLength }

// Error implements the error interface.
func (e *InvalidTypeCodeError) Error() string {
	return fmt.Sprintf("invalid type code %q: byte %d (0x%02x) is not an ASCII letter",
		e.Bytes[:], e.Index, e.Bytes[e.Index])
}

// Unwrap returns ErrInvalidTypeCode for errors.Is() compatibility.
func (e *InvalidTypeCodeError) Unwrap() error { return ErrInvalidTypeCode }

// Error implements the error interface.
func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of data at offset %d: need %d bytes, have %d",
		e.Offset, e.Need, e.Available)
}

// Unwrap returns ErrUnexpectedEOF for errors.Is() compatibility.
func (e *UnexpectedEOFError) Unwrap() error { return ErrUnexpectedEOF }

// Error implements the error interface.
func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature: got % x, want % x", e.Got, Signature[:])
}

// Unwrap returns ErrInvalidSignature for errors.Is() compatibility.
func (e *InvalidSignatureError) Unwrap() error { return ErrInvalidSignature }

// Error implements the error interface.
func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch in %s chunk: stored 0x%08x, computed 0x%08x",
		e.Type, e.Stored, e.Computed)
}

// Unwrap returns ErrChecksumMismatch for errors.Is() compatibility.
func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }

// Error implements the error interface.
func (e *ChunkNotFoundError) Error() string {
	return fmt.Sprintf("chunk not found: no chunk of type %q", e.Type)
}

// Unwrap returns ErrChunkNotFound for errors.Is() compatibility.
func (e *ChunkNotFoundError) Unwrap() error { return ErrChunkNotFound }

// Error implements the error interface.
func (e *InvalidPayloadEncodingError) Error() string {
	return fmt.Sprintf("invalid payload encoding: not valid %s at offset %d", e.Encoding, e.Offset)
}

// Unwrap returns ErrInvalidPayloadEncoding for errors.Is() compatibility.
func (e *InvalidPayloadEncodingError) Unwrap() error { return ErrInvalidPayloadEncoding }
