// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pngme/pngme/internal/issue"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const defaultParallelism = 4

// ErrReservedTypeCode is returned by Encode when the chunk type has a
// lowercase third letter and Options.RequireValidType is set.
var ErrReservedTypeCode = errors.New("chunk type has the reserved bit set")

type (
	// Options tunes Service behavior. The zero value writes without backups,
	// accepts any well-formed type code, and inspects files one at a time.
	Options struct {
		// RequireValidType rejects type codes whose reserved bit is set.
		RequireValidType bool
		// Backup copies the original file to <file>.bak before an in-place rewrite.
		Backup bool
		// Parallelism bounds how many files Print inspects at once.
		Parallelism int
	}

	// Service performs chunk operations on PNG files.
	Service struct {
		fs     afero.Fs
		logger *log.Logger
		opts   Options
	}

	// EncodeRequest describes a message to hide.
	EncodeRequest struct {
		Path      types.FilesystemPath
		ChunkType string
		Message   string
		// Encoding selects how Message becomes payload bytes (default utf-8).
		Encoding pngfile.TextEncoding
		// Output is written instead of Path when set.
		Output types.FilesystemPath
	}

	// EncodeResult reports where the encoded image went.
	EncodeResult struct {
		Written types.FilesystemPath
		Backup  types.FilesystemPath
		Chunk   *pngfile.Chunk
	}

	// DecodeRequest selects the chunk to read.
	DecodeRequest struct {
		Path      types.FilesystemPath
		ChunkType string
		Encoding  pngfile.TextEncoding
		// Raw skips text decoding; DecodeResult.Text stays empty.
		Raw bool
	}

	// DecodeResult is the first chunk of the requested type and its text.
	DecodeResult struct {
		Chunk *pngfile.Chunk
		Text  string
	}

	// RemoveRequest selects the chunk to drop.
	RemoveRequest struct {
		Path      types.FilesystemPath
		ChunkType string
		Output    types.FilesystemPath
	}

	// RemoveResult reports the removed chunk and the file written.
	RemoveResult struct {
		Written types.FilesystemPath
		Backup  types.FilesystemPath
		Removed *pngfile.Chunk
	}
)

// New creates a Service. A nil logger discards log output.
func New(fs afero.Fs, logger *log.Logger, opts Options) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}
	return &Service{fs: fs, logger: logger, opts: opts}
}

// NewOS creates a Service backed by the real filesystem.
func NewOS(logger *log.Logger, opts Options) *Service {
	return New(afero.NewOsFs(), logger, opts)
}

// Encode appends a chunk carrying req.Message and writes the result.
func (s *Service) Encode(ctx context.Context, req EncodeRequest) (EncodeResult, error) {
	if err := ctx.Err(); err != nil {
		return EncodeResult{}, err
	}

	typ, err := s.chunkType(req.ChunkType, true)
	if err != nil {
		return EncodeResult{}, err
	}

	payload, err := pngfile.EncodeText(req.Encoding, req.Message)
	if err != nil {
		return EncodeResult{}, operationError("encode message", req.Path.String(), err)
	}

	png, original, err := s.load(req.Path)
	if err != nil {
		return EncodeResult{}, err
	}

	chunk := pngfile.NewChunk(typ, payload)
	png.AppendChunk(chunk)

	written, backup, err := s.save(req.Path, req.Output, original, png.Bytes())
	if err != nil {
		return EncodeResult{}, err
	}

	s.logger.Debug("encoded message", "path", written, "type", typ, "bytes", chunk.Length())
	return EncodeResult{Written: written, Backup: backup, Chunk: chunk}, nil
}

// Decode returns the first chunk of the requested type.
func (s *Service) Decode(ctx context.Context, req DecodeRequest) (DecodeResult, error) {
	if err := ctx.Err(); err != nil {
		return DecodeResult{}, err
	}

	if _, err := s.chunkType(req.ChunkType, false); err != nil {
		return DecodeResult{}, err
	}

	png, _, err := s.load(req.Path)
	if err != nil {
		return DecodeResult{}, err
	}

	chunk, ok := png.ChunkByType(req.ChunkType)
	if !ok {
		return DecodeResult{}, operationError("decode message", req.Path.String(),
			&pngfile.ChunkNotFoundError{Type: req.ChunkType})
	}

	result := DecodeResult{Chunk: chunk}
	if !req.Raw {
		text, err := chunk.DataAsText(req.Encoding)
		if err != nil {
			return DecodeResult{}, operationError("decode message", req.Path.String(), err)
		}
		result.Text = text
	}

	s.logger.Debug("decoded message", "path", req.Path, "type", req.ChunkType, "bytes", chunk.Length(), "raw", req.Raw)
	return result, nil
}

// Remove drops the first chunk of the requested type and writes the result.
func (s *Service) Remove(ctx context.Context, req RemoveRequest) (RemoveResult, error) {
	if err := ctx.Err(); err != nil {
		return RemoveResult{}, err
	}

	if _, err := s.chunkType(req.ChunkType, false); err != nil {
		return RemoveResult{}, err
	}

	png, original, err := s.load(req.Path)
	if err != nil {
		return RemoveResult{}, err
	}

	removed, err := png.RemoveChunk(req.ChunkType)
	if err != nil {
		return RemoveResult{}, operationError("remove chunk", req.Path.String(), err)
	}

	written, backup, err := s.save(req.Path, req.Output, original, png.Bytes())
	if err != nil {
		return RemoveResult{}, err
	}

	s.logger.Debug("removed chunk", "path", written, "type", req.ChunkType, "bytes", removed.Length())
	return RemoveResult{Written: written, Backup: backup, Removed: removed}, nil
}

// chunkType parses a type code and, for writes, applies the reserved-bit policy.
func (s *Service) chunkType(raw string, forWrite bool) (pngfile.TypeCode, error) {
	typ, err := pngfile.ParseTypeCode(raw)
	if err != nil {
		return pngfile.TypeCode{}, issue.NewErrorContext().
			WithOperation("parse chunk type").
			WithResource(raw).
			WithIssue(issue.InvalidChunkTypeId).
			WithSuggestion("Chunk types are exactly four ASCII letters, for example 'ruSt'").
			Wrap(err).
			BuildError()
	}

	if forWrite && s.opts.RequireValidType && !typ.IsValid() {
		return pngfile.TypeCode{}, issue.NewErrorContext().
			WithOperation("parse chunk type").
			WithResource(raw).
			WithIssue(issue.InvalidChunkTypeId).
			WithSuggestion("Make the third letter uppercase").
			WithSuggestion("Set encode.require_valid_type to false to allow it anyway").
			Wrap(fmt.Errorf("%w: %s", ErrReservedTypeCode, typ)).
			BuildError()
	}

	return typ, nil
}

// load checks that path exists, reads it, and parses it.
func (s *Service) load(path types.FilesystemPath) (*pngfile.Png, []byte, error) {
	if err := path.Validate(); err != nil {
		return nil, nil, operationError("read PNG", path.String(), err)
	}

	info, err := s.fs.Stat(path.String())
	if err != nil {
		return nil, nil, operationError("read PNG", path.String(), err)
	}
	if info.IsDir() {
		return nil, nil, operationError("read PNG", path.String(), fmt.Errorf("%s is a directory", path))
	}

	data, err := afero.ReadFile(s.fs, path.String())
	if err != nil {
		return nil, nil, operationError("read PNG", path.String(), err)
	}

	png, err := pngfile.Parse(data)
	if err != nil {
		return nil, nil, operationError("parse PNG", path.String(), err)
	}

	s.logger.Debug("parsed PNG", "path", path, "size", len(data), "chunks", len(png.Chunks()))
	return png, data, nil
}

// save writes data to output, or back to path when output is empty. An
// in-place rewrite keeps a copy of original first if backups are enabled.
func (s *Service) save(path, output types.FilesystemPath, original, data []byte) (written, backup types.FilesystemPath, err error) {
	target := path
	if output != "" {
		if err := output.Validate(); err != nil {
			return "", "", operationError("write PNG", output.String(), err)
		}
		target = output
	}

	mode := os.FileMode(0o644)
	if info, statErr := s.fs.Stat(path.String()); statErr == nil {
		mode = info.Mode().Perm()
	}

	if s.opts.Backup && s.samePath(path, target) {
		backup = path.BackupPath()
		if err := afero.WriteFile(s.fs, backup.String(), original, mode); err != nil {
			return "", "", operationError("write backup", backup.String(), err)
		}
		s.logger.Debug("wrote backup", "path", backup)
	}

	if err := s.writeAtomic(target.String(), data, mode); err != nil {
		return "", "", operationError("write PNG", target.String(), err)
	}

	return target, backup, nil
}

// samePath reports whether a and b name the same file, however spelled.
func (s *Service) samePath(a, b types.FilesystemPath) bool {
	if a == b || filepath.Clean(a.String()) == filepath.Clean(b.String()) {
		return true
	}

	if absA, errA := filepath.Abs(a.String()); errA == nil {
		if absB, errB := filepath.Abs(b.String()); errB == nil && absA == absB {
			return true
		}
	}

	infoA, errA := s.fs.Stat(a.String())
	infoB, errB := s.fs.Stat(b.String())
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func (s *Service) writeAtomic(path string, data []byte, mode os.FileMode) (err error) {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = s.fs.Chmod(tmpName, mode); err != nil {
		return err
	}
	return s.fs.Rename(tmpName, path)
}
