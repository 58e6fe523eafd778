// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"time"
)

// ReceptionAwareness holds the PMode[1].ReceptionAwareness parameters of
// one leg: retransmission of unacknowledged messages and duplicate
// detection on receipt. The zero value disables both.
type ReceptionAwareness struct {
	Enabled            bool
	Retry              RetryConfig
	DuplicateDetection DuplicateDetectionConfig
}

// RetryConfig contains retry parameters
type RetryConfig struct {
	Enabled         bool
	MaxRetries      int
	RetryInterval   time.Duration
	RetryMultiplier float64
}

// DuplicateDetectionConfig contains duplicate detection parameters
type DuplicateDetectionConfig struct {
	Enabled      bool
	HashFunction string
	Window       time.Duration
}

// DefaultReceptionAwareness returns the reception awareness settings used
// by DefaultPMode: three retries starting one minute apart and a 24 hour
// duplicate detection window.
func DefaultReceptionAwareness() ReceptionAwareness {
	return ReceptionAwareness{
		Enabled: true,
		Retry: RetryConfig{
			Enabled:         true,
			MaxRetries:      3,
			RetryInterval:   time.Minute,
			RetryMultiplier: 2.0,
		},
		DuplicateDetection: DuplicateDetectionConfig{
			Enabled:      true,
			HashFunction: "SHA-256",
			Window:       24 * time.Hour,
		},
	}
}

// ShouldRetry reports whether another attempt is allowed after attempts
// sends have already failed, and how long to wait before making it.
func (ra ReceptionAwareness) ShouldRetry(attempts int) (bool, time.Duration) {
	if !ra.Enabled || !ra.Retry.Enabled || attempts >= ra.Retry.MaxRetries {
		return false, 0
	}
	return true, ra.Retry.Delay(attempts)
}

// Delay returns the wait before the retry following attempts failed sends.
// The interval grows linearly with the attempt count, scaled by the
// multiplier; a multiplier of zero keeps the interval fixed.
func (r RetryConfig) Delay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	if r.RetryMultiplier <= 0 {
		return r.RetryInterval
	}
	return time.Duration(float64(r.RetryInterval) * r.RetryMultiplier * float64(attempts))
}

// IsDuplicate reports whether a message first received at receivedAt is
// still inside the duplicate detection window at now.
func (ra ReceptionAwareness) IsDuplicate(receivedAt, now time.Time) bool {
	if !ra.Enabled || !ra.DuplicateDetection.Enabled {
		return false
	}
	return now.Sub(receivedAt) < ra.DuplicateDetection.Window
}

func (ra ReceptionAwareness) writeHash(h *fieldHasher) {
	h.writeBool(ra.Enabled)
	h.writeBool(ra.Retry.Enabled)
	h.writeUint64(uint64(int64(ra.Retry.MaxRetries)))
	h.writeUint64(uint64(ra.Retry.RetryInterval))
	h.writeFloat64(ra.Retry.RetryMultiplier)
	h.writeBool(ra.DuplicateDetection.Enabled)
	h.writeString(ra.DuplicateDetection.HashFunction)
	h.writeUint64(uint64(ra.DuplicateDetection.Window))
}
