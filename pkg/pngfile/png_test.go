// SPDX-License-Identifier: MPL-2.0

package pngfile

import (
	"bytes"
	"errors"
	"testing"
)

func testChunks() []*Chunk {
	return []*Chunk{
		NewChunk(MustParseTypeCode("FrSt"), []byte("I am the first chunk")),
		NewChunk(MustParseTypeCode("miDl"), []byte("I am another chunk")),
		NewChunk(MustParseTypeCode("LASt"), []byte("I am the last chunk")),
	}
}

func testPngBytes() []byte {
	buf := append([]byte{}, Signature[:]...)
	for _, c := range testChunks() {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

func chunkTypes(p *Png) []string {
	var out []string
	for _, c := range p.Chunks() {
		out = append(out, c.Type().String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{"signature only", Signature[:]},
		{"three chunks", testPngBytes()},
		{"duplicate types", FromChunks(append(testChunks(), testChunks()...)).Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := p.Bytes(); !bytes.Equal(got, tt.input) {
				t.Errorf("Bytes() = % x\nwant % x", got, tt.input)
			}
		})
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	t.Parallel()

	p, err := Parse(testPngBytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := chunkTypes(p), []string{"FrSt", "miDl", "LASt"}; !equalStrings(got, want) {
		t.Errorf("chunk order = %v, want %v", got, want)
	}
}

func TestParse_InvalidSignature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short", Signature[:4]},
		{"first byte", append([]byte{0x88}, testPngBytes()[1:]...)},
		{"last byte", append(append(append([]byte{}, Signature[:7]...), 0x0B), testPngBytes()[8:]...)},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.input)
			if !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("Parse() error = %v, want ErrInvalidSignature", err)
			}
			var sigErr *InvalidSignatureError
			if !errors.As(err, &sigErr) {
				t.Fatalf("error should be *InvalidSignatureError, got %T", err)
			}
			if len(sigErr.Got) > len(Signature) {
				t.Errorf("InvalidSignatureError.Got has %d bytes, want at most 8", len(sigErr.Got))
			}
		})
	}
}

func TestParse_Truncation(t *testing.T) {
	t.Parallel()

	full := testPngBytes()
	for _, cut := range []int{1, 4, 12, 20} {
		_, err := Parse(full[:len(full)-cut])
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("Parse(truncated by %d) error = %v, want ErrUnexpectedEOF", cut, err)
		}
	}

	_, err := Parse(append(full, 0, 0, 0))
	var eofErr *UnexpectedEOFError
	if !errors.As(err, &eofErr) {
		t.Fatalf("Parse(trailing garbage) error = %v, want *UnexpectedEOFError", err)
	}
	if eofErr.Offset != len(full) {
		t.Errorf("UnexpectedEOFError.Offset = %d, want %d", eofErr.Offset, len(full))
	}
}

func TestParse_CorruptionDetected(t *testing.T) {
	t.Parallel()

	full := testPngBytes()
	first := testChunks()[0]
	// Flip every bit of the first chunk's type and payload bytes in turn.
	start := len(Signature) + lengthSize
	end := start + typeSize + int(first.Length())
	for i := start; i < end; i++ {
		for bit := range 8 {
			corrupt := bytes.Clone(full)
			corrupt[i] ^= 1 << bit
			_, err := Parse(corrupt)
			if err == nil {
				t.Fatalf("Parse() accepted corrupt byte %d bit %d", i, bit)
			}
			// Flipping the case bit of a type byte keeps it alphabetic, and the
			// CRC catches it; other flips in the type may yield a non-letter.
			if i < start+typeSize && errors.Is(err, ErrInvalidTypeCode) {
				continue
			}
			if !errors.Is(err, ErrChecksumMismatch) {
				t.Errorf("byte %d bit %d: error = %v, want ErrChecksumMismatch", i, bit, err)
			}
		}
	}
}

func TestParse_CaseBitFlipIsChecksumMismatch(t *testing.T) {
	t.Parallel()

	corrupt := testPngBytes()
	corrupt[len(Signature)+lengthSize] ^= propertyBit
	if _, err := Parse(corrupt); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Parse() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestPng_AppendAndReparse(t *testing.T) {
	t.Parallel()

	p, err := Parse(testPngBytes())
	if err != nil {
		t.Fatal(err)
	}
	const msg = "this is where your secret message will be!"
	p.AppendChunk(NewChunk(MustParseTypeCode("ruSt"), []byte(msg)))

	reparsed, err := Parse(p.Bytes())
	if err != nil {
		t.Fatalf("Parse(appended) error = %v", err)
	}

	matches := 0
	for _, c := range reparsed.Chunks() {
		if c.Type().String() == "ruSt" {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("found %d ruSt chunks, want 1", matches)
	}
	c, ok := reparsed.ChunkByType("ruSt")
	if !ok {
		t.Fatal("ChunkByType(ruSt) not found")
	}
	got, err := c.DataAsString()
	if err != nil {
		t.Fatal(err)
	}
	if got != msg {
		t.Errorf("payload = %q, want %q", got, msg)
	}
}

func TestPng_ChunkByType(t *testing.T) {
	t.Parallel()

	p := FromChunks(testChunks())
	p.AppendChunk(NewChunk(MustParseTypeCode("FrSt"), []byte("second FrSt")))

	c, ok := p.ChunkByType("FrSt")
	if !ok {
		t.Fatal("ChunkByType(FrSt) not found")
	}
	if string(c.Data()) != "I am the first chunk" {
		t.Errorf("ChunkByType returned %q, want the lowest-index match", c.Data())
	}

	if c, ok := p.ChunkByType("nOpe"); ok || c != nil {
		t.Errorf("ChunkByType(nOpe) = %v, %v; want nil, false", c, ok)
	}
	if _, ok := p.ChunkByType("frst"); ok {
		t.Error("ChunkByType must compare case-sensitively")
	}
}

func TestPng_RemoveChunk(t *testing.T) {
	t.Parallel()

	p := FromChunks(testChunks())
	p.AppendChunk(NewChunk(MustParseTypeCode("miDl"), []byte("second miDl")))

	removed, err := p.RemoveChunk("miDl")
	if err != nil {
		t.Fatalf("RemoveChunk() error = %v", err)
	}
	if string(removed.Data()) != "I am another chunk" {
		t.Errorf("removed %q, want the first miDl", removed.Data())
	}
	if got, want := chunkTypes(p), []string{"FrSt", "LASt", "miDl"}; !equalStrings(got, want) {
		t.Errorf("chunks after remove = %v, want %v", got, want)
	}

	_, err = p.RemoveChunk("nOpe")
	if !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("RemoveChunk(nOpe) error = %v, want ErrChunkNotFound", err)
	}
	var nfErr *ChunkNotFoundError
	if !errors.As(err, &nfErr) || nfErr.Type != "nOpe" {
		t.Errorf("error = %#v, want *ChunkNotFoundError{Type: nOpe}", err)
	}
	if len(p.Chunks()) != 3 {
		t.Errorf("failed removal changed the sequence: %d chunks", len(p.Chunks()))
	}
}

func TestPng_ChunksIsACopy(t *testing.T) {
	t.Parallel()

	p := FromChunks(testChunks())
	view := p.Chunks()
	view[0], view[2] = view[2], view[0]
	if got := chunkTypes(p); got[0] != "FrSt" {
		t.Errorf("reordering Chunks() result changed the container: %v", got)
	}
}

func TestPng_FromChunksRoundTrip(t *testing.T) {
	t.Parallel()

	p := FromChunks(testChunks())
	if !bytes.Equal(p.Bytes(), testPngBytes()) {
		t.Error("FromChunks().Bytes() differs from hand-framed container")
	}
}
