// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the CLI and service
// layers: process exit codes and filesystem paths. Each type carries its own
// validation and a sentinel-wrapping error type.
//
// This package is a leaf dependency: it imports only the standard library.
package types
