// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// fieldHasher feeds fields into an xxhash digest in declaration order.
// Strings and lists are length-prefixed so adjacent fields cannot collide
// by shifting bytes between them.
type fieldHasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newFieldHasher() *fieldHasher {
	return &fieldHasher{d: xxhash.New()}
}

func (h *fieldHasher) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *fieldHasher) writeString(s string) {
	h.writeUint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *fieldHasher) writeStrings(list []string) {
	h.writeUint64(uint64(len(list)))
	for _, s := range list {
		h.writeString(s)
	}
}

func (h *fieldHasher) writeBool(b bool) {
	if b {
		h.writeUint64(1)
		return
	}
	h.writeUint64(0)
}

// writeFloat64 hashes -0 and +0 alike since they compare equal.
func (h *fieldHasher) writeFloat64(f float64) {
	if f == 0 {
		f = 0
	}
	h.writeUint64(math.Float64bits(f))
}

func (h *fieldHasher) writeTriState(t TriState) {
	h.writeUint64(uint64(t))
}

func (h *fieldHasher) writeOptionalInt(v *int) {
	if v == nil {
		h.writeUint64(0)
		return
	}
	h.writeUint64(1)
	h.writeUint64(uint64(int64(*v)))
}

func (h *fieldHasher) sum() uint64 {
	return h.d.Sum64()
}
