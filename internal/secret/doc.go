// SPDX-License-Identifier: MPL-2.0

// Package secret implements the file-level operations behind the pngme
// commands: hiding a message in a chunk, reading it back, removing it, and
// listing the chunks of one or more files.
//
// All file access goes through an afero.Fs so the operations can run against
// an in-memory filesystem in tests. Rewrites are atomic: the new image is
// written to a temporary file in the target directory and renamed over the
// destination.
package secret
