// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import "errors"

// ErrInvalidArgument is returned when a setter that requires a tri-state
// value is handed something outside True, False and Undefined.
var ErrInvalidArgument = errors.New("pmode: invalid argument")
