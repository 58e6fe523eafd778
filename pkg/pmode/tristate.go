// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TriState is a boolean that may also be left undefined.
//
// P-Mode parameters are frequently only partially specified. An undefined
// value inherits the protocol default when it is resolved, so it must stay
// distinguishable from an explicit false.
type TriState uint8

const (
	// Undefined means the parameter was not specified.
	Undefined TriState = iota
	// True means the parameter was explicitly enabled.
	True
	// False means the parameter was explicitly disabled.
	False
)

// TriStateOf wraps a plain boolean.
func TriStateOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

// IsValid reports whether t is one of the three defined states.
func (t TriState) IsValid() bool {
	return t <= False
}

// IsDefined reports whether t carries an explicit value.
func (t TriState) IsDefined() bool {
	return t == True || t == False
}

// IsTrue reports whether t is explicitly true.
func (t TriState) IsTrue() bool {
	return t == True
}

// IsFalse reports whether t is explicitly false.
func (t TriState) IsFalse() bool {
	return t == False
}

// Resolve returns the boolean value of t, or def when t is undefined.
func (t TriState) Resolve(def bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return def
	}
}

// String returns a human-readable name for the state.
func (t TriState) String() string {
	switch t {
	case Undefined:
		return "undefined"
	case True:
		return "true"
	case False:
		return "false"
	default:
		return fmt.Sprintf("TriState(%d)", uint8(t))
	}
}

// ParseTriState parses "true", "false" or "undefined" (case-insensitive).
// The empty string is undefined.
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "undefined":
		return Undefined, nil
	case "true":
		return True, nil
	case "false":
		return False, nil
	}
	return Undefined, fmt.Errorf("%w: tri-state value %q", ErrInvalidArgument, s)
}

// IsZero lets yaml omitempty drop undefined values.
func (t TriState) IsZero() bool {
	return t == Undefined
}

// MarshalYAML implements yaml.Marshaler.
func (t TriState) MarshalYAML() (interface{}, error) {
	switch t {
	case True:
		return true, nil
	case False:
		return false, nil
	case Undefined:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, t)
}

// UnmarshalYAML implements yaml.Unmarshaler. Booleans map to True/False,
// the string "undefined" maps to Undefined.
func (t *TriState) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: tri-state must be a scalar (line %d)", ErrInvalidArgument, node.Line)
	}
	var b bool
	if err := node.Decode(&b); err == nil {
		*t = TriStateOf(b)
		return nil
	}
	parsed, err := ParseTriState(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

func checkTriState(field string, t TriState) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %s has no tri-state value (%s)", ErrInvalidArgument, field, t)
	}
	return nil
}
