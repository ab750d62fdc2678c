// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError wraps a failure with the operation that was attempted, the
// file involved and remediation hints. The issue catalog holds one Markdown
// help page per failure class (not a PNG, corrupt chunk, chunk not found, ...)
// that the CLI renders with glamour below the error line.
package issue
