// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"context"

	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"

	"golang.org/x/sync/errgroup"
)

// Inspection is the chunk listing of one file. Err is set, and Chunks is
// empty, when the file could not be read or parsed.
type Inspection struct {
	Path   types.FilesystemPath
	Size   int
	Chunks []*pngfile.Chunk
	Err    error
}

// Print inspects every path concurrently, at most Options.Parallelism at a
// time. Results are returned in argument order. A file that fails to load
// does not stop the others; its error is recorded in its Inspection. The
// returned error is non-nil only when ctx ends first.
func (s *Service) Print(ctx context.Context, paths []types.FilesystemPath) ([]Inspection, error) {
	results := make([]Inspection, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallelism)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.inspect(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) inspect(path types.FilesystemPath) Inspection {
	png, data, err := s.load(path)
	if err != nil {
		s.logger.Debug("inspect failed", "path", path, "error", err)
		return Inspection{Path: path, Err: err}
	}
	return Inspection{Path: path, Size: len(data), Chunks: png.Chunks()}
}
