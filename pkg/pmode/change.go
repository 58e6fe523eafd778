// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

// Change reports whether a mutation actually modified state. Callers use
// it to skip invalidating derived state on no-op updates.
type Change bool

const (
	// Unchanged means the call left the value as it was.
	Unchanged Change = false
	// Changed means the call stored a different value.
	Changed Change = true
)

// IsChanged reports whether the mutation modified state.
func (c Change) IsChanged() bool { return bool(c) }

// IsUnchanged reports whether the mutation was a no-op.
func (c Change) IsUnchanged() bool { return !bool(c) }

// Or combines two results; the outcome is Changed if either was.
func (c Change) Or(other Change) Change { return c || other }

// String returns "changed" or "unchanged".
func (c Change) String() string {
	if c {
		return "changed"
	}
	return "unchanged"
}
