// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
)

const (
	// lengthSize, typeSize and crcSize are the widths of the chunk frame fields.
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// FrameOverhead is the number of bytes a chunk occupies on the wire in
	// addition to its payload.
	FrameOverhead = lengthSize + typeSize + crcSize

	// previewLen caps the payload preview rendered by Chunk.String.
	previewLen = 32
)

// Chunk is one length-prefixed, typed, checksummed unit of a container.
// A Chunk owns its payload; Data returns a view that callers must not modify.
type Chunk struct {
	typ  TypeCode
	data []byte
	crc  uint32
}

// NewChunk builds a chunk and computes its CRC. It never fails and does not
// check TypeCode.IsValid; callers that need that guarantee check it first.
func NewChunk(typ TypeCode, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		typ:  typ,
		data: owned,
		crc:  checksum(typ, owned),
	}
}

// ParseChunk decodes the chunk at the start of b. Bytes following the chunk
// are ignored; use WireLen to find where the next frame begins.
func ParseChunk(b []byte) (*Chunk, error) {
	return parseChunkAt(b, 0)
}

// parseChunkAt decodes the chunk starting at b[0]. base is the offset of b
// within the enclosing buffer and is only used for error reporting.
func parseChunkAt(b []byte, base int) (*Chunk, error) {
	// The length and type are read first, so a bad type code is reported
	// even when the frame is also truncated.
	if len(b) < lengthSize+typeSize {
		return nil, &UnexpectedEOFError{Offset: base, Need: FrameOverhead, Available: len(b)}
	}

	length := binary.BigEndian.Uint32(b[:lengthSize])

	var raw [typeSize]byte
	copy(raw[:], b[lengthSize:lengthSize+typeSize])
	typ, err := NewTypeCode(raw)
	if err != nil {
		return nil, err
	}

	need := uint64(FrameOverhead) + uint64(length)
	if uint64(len(b)) < need {
		return nil, &UnexpectedEOFError{Offset: base, Need: int(need), Available: len(b)}
	}

	dataStart := lengthSize + typeSize
	dataEnd := dataStart + int(length)
	data := make([]byte, length)
	copy(data, b[dataStart:dataEnd])

	stored := binary.BigEndian.Uint32(b[dataEnd : dataEnd+crcSize])
	if computed := checksum(typ, data); computed != stored {
		return nil, &ChecksumMismatchError{Type: typ, Stored: stored, Computed: computed}
	}

	return &Chunk{typ: typ, data: data, crc: stored}, nil
}

// Length returns the payload size in bytes, the value of the wire length field.
func (c *Chunk) Length() uint32 { return uint32(len(c.data)) }

// Type returns the chunk's type code.
func (c *Chunk) Type() TypeCode { return c.typ }

// Data returns the payload.
func (c *Chunk) Data() []byte { return c.data }

// CRC returns the stored checksum.
func (c *Chunk) CRC() uint32 { return c.crc }

// WireLen returns the number of bytes the chunk occupies when serialized.
func (c *Chunk) WireLen() int { return FrameOverhead + len(c.data) }

// DataAsString returns the payload as UTF-8 text.
func (c *Chunk) DataAsString() (string, error) {
	return decodeText(EncodingUTF8, c.data)
}

// DataAsText returns the payload decoded with the given encoding.
func (c *Chunk) DataAsText(enc TextEncoding) (string, error) {
	return decodeText(enc, c.data)
}

// Bytes serializes the chunk: length, type, payload, CRC.
func (c *Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.WireLen()))
}

func (c *Chunk) appendTo(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, c.typ[:]...)
	buf = append(buf, c.data...)
	return binary.BigEndian.AppendUint32(buf, c.crc)
}

// String renders a one-line summary with a printable preview of the payload.
func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk{type: %s, length: %d, crc: 0x%08x, data: %q}",
		c.typ, c.Length(), c.crc, Preview(c.data, previewLen))
}

// Preview returns up to limit bytes of data with non-printable ASCII replaced
// by '.', followed by "..." when data was truncated.
func Preview(data []byte, limit int) string {
	var sb strings.Builder
	n := min(len(data), max(limit, 0))
	for _, b := range data[:n] {
		if b >= 0x20 && b < 0x7f {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	if len(data) > n {
		sb.WriteString("...")
	}
	return sb.String()
}

// checksum computes the IEEE CRC-32 over the type code followed by the payload.
func checksum(typ TypeCode, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}
