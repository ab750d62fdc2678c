// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pngme/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/pngme/config.cue on macOS, %APPDATA%\pngme\config.cue
// on Windows), falling back to ./config.cue and then to built-in defaults. Any key can be
// overridden through a PNGME_* environment variable, e.g. PNGME_ENCODE_CHUNK_TYPE.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before being
// merged into Viper, so type errors are reported with their CUE path.
package config
