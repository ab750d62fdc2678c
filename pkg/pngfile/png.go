// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Signature is the fixed 8-byte header every container starts with.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is a parsed container: the signature plus an ordered chunk sequence.
// Order is preserved across parse, mutation and serialization. A Png owns its
// chunks and is not safe for concurrent mutation; separate Png values share
// no state.
type Png struct {
	chunks []*Chunk
}

// FromChunks builds a container from an explicit chunk sequence.
func FromChunks(chunks []*Chunk) *Png {
	return &Png{chunks: slices.Clone(chunks)}
}

// Parse decodes a complete container. It fails fast: the first malformed
// frame aborts the parse, since later chunk boundaries cannot be trusted.
func Parse(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		got := b[:min(len(b), len(Signature))]
		return nil, &InvalidSignatureError{Got: slices.Clone(got)}
	}

	p := &Png{}
	for off := len(Signature); off < len(b); {
		c, err := parseChunkAt(b[off:], off)
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
		off += c.WireLen()
	}
	return p, nil
}

// Bytes serializes the container. For a container produced by Parse and not
// mutated since, the result equals the parsed input.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.WireLen()
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

// AppendChunk adds c to the end of the sequence. Type codes need not be unique.
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// Chunks returns the chunk sequence in order. The returned slice is a copy;
// reordering it does not affect the container.
func (p *Png) Chunks() []*Chunk {
	return slices.Clone(p.chunks)
}

// ChunkByType returns the first chunk whose type code text equals typ.
// A miss is reported through the boolean, not as an error.
func (p *Png) ChunkByType(typ string) (*Chunk, bool) {
	i := p.indexOf(typ)
	if i < 0 {
		return nil, false
	}
	return p.chunks[i], true
}

// RemoveChunk removes the first chunk whose type code text equals typ and
// returns it. The order of the remaining chunks is preserved.
func (p *Png) RemoveChunk(typ string) (*Chunk, error) {
	i := p.indexOf(typ)
	if i < 0 {
		return nil, &ChunkNotFoundError{Type: typ}
	}
	removed := p.chunks[i]
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return removed, nil
}

// String lists the chunks one per line.
func (p *Png) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Png{%d chunks}", len(p.chunks))
	for _, c := range p.chunks {
		sb.WriteString("\n  ")
		sb.WriteString(c.String())
	}
	return sb.String()
}

func (p *Png) indexOf(typ string) int {
	return slices.IndexFunc(p.chunks, func(c *Chunk) bool {
		return c.typ.String() == typ
	})
}
