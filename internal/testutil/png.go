// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"

	"github.com/pngme/pngme/pkg/pngfile"

	"github.com/spf13/afero"
)

// MinimalPNG returns the bytes of a file holding IHDR, the extra chunks, and
// IEND, in that order. Pixel data is not meaningful; only the framing is.
func MinimalPNG(extra ...*pngfile.Chunk) []byte {
	chunks := make([]*pngfile.Chunk, 0, len(extra)+2)
	chunks = append(chunks, pngfile.NewChunk(pngfile.MustParseTypeCode("IHDR"), make([]byte, 13)))
	chunks = append(chunks, extra...)
	chunks = append(chunks, pngfile.NewChunk(pngfile.MustParseTypeCode("IEND"), nil))
	return pngfile.FromChunks(chunks).Bytes()
}

// TextChunk builds a chunk of the given type holding s verbatim.
func TextChunk(typ, s string) *pngfile.Chunk {
	return pngfile.NewChunk(pngfile.MustParseTypeCode(typ), []byte(s))
}

// WriteFile writes data to path on fsys, failing the test on error.
func WriteFile(t testing.TB, fsys afero.Fs, path string, data []byte) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ChunkTypes lists the type codes of png in order.
func ChunkTypes(png *pngfile.Png) []string {
	var out []string
	for _, c := range png.Chunks() {
		out = append(out, c.Type().String())
	}
	return out
}
