// SPDX-License-Identifier: MPL-2.0

package secret

import (
	"errors"
	"io/fs"

	"github.com/pngme/pngme/internal/issue"
	"github.com/pngme/pngme/pkg/pngfile"
)

// IssueFor maps an error to the catalog entry that explains it, or 0 when
// no entry applies.
func IssueFor(err error) issue.Id {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, ErrReservedTypeCode):
		return issue.InvalidChunkTypeId
	}

	switch pngfile.Kind(err) {
	case pngfile.KindInvalidSignature:
		return issue.NotAPngId
	case pngfile.KindChecksumMismatch:
		return issue.CorruptChunkId
	case pngfile.KindUnexpectedEOF:
		return issue.TruncatedFileId
	case pngfile.KindChunkNotFound:
		return issue.ChunkNotFoundId
	case pngfile.KindInvalidTypeCode, pngfile.KindInvalidLength:
		return issue.InvalidChunkTypeId
	case pngfile.KindInvalidPayloadEncoding:
		return issue.InvalidMessageEncodingId
	default:
		return 0
	}
}

// operationError wraps err with the operation and file it came from.
func operationError(operation, resource string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(IssueFor(err))

	for _, s := range suggestionsFor(err) {
		ctx.WithSuggestion(s)
	}

	return ctx.Wrap(err).BuildError()
}

func suggestionsFor(err error) []string {
	switch IssueFor(err) {
	case issue.FileNotFoundId:
		return []string{"Check the file path for typos"}
	case issue.PermissionDeniedId:
		return []string{"Check the file and directory permissions"}
	case issue.NotAPngId:
		return []string{"Make sure the file is a PNG image and not another format renamed to .png"}
	case issue.CorruptChunkId, issue.TruncatedFileId:
		return []string{"Restore the file from a backup (<file>.bak if encode.backup was enabled)"}
	case issue.ChunkNotFoundId:
		return []string{"Run 'pngme print <file>' to list the chunk types present", "Type codes are case-sensitive"}
	case issue.InvalidMessageEncodingId:
		return []string{"Try '--encoding latin-1' or '--raw'"}
	default:
		return nil
	}
}
