// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pngme.
//
// This package implements the Cobra command hierarchy: encode, decode,
// remove and print operate on PNG files through a ChunkService, and config
// manages the optional configuration file.
package cmd
