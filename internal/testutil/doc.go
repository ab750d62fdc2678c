// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests: PNG fixtures built from
// chunk lists and environment management that restores the original state.
package testutil
