// SPDX-License-Identifier: MPL-2.0

// Package pngfile parses, mutates and re-serializes PNG-style chunk containers.
//
// A container is an 8-byte signature followed by a sequence of chunks. Each
// chunk is framed as a big-endian length, a 4-byte type code, the payload and
// a CRC-32 over type and payload. Parsing is strict: a corrupt frame anywhere
// invalidates the whole buffer. Serializing an unmodified container yields the
// bytes it was parsed from.
//
// The package performs no I/O. Callers hand it a complete byte buffer and get
// back either a container or one of the typed errors declared in errors.go.
package pngfile
