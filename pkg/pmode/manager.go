// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// PModeManager manages processing modes.
//
// P-Modes handed to AddPMode are considered published: the manager may be
// read from many goroutines, and callers must not mutate a registered
// P-Mode or its legs afterwards.
type PModeManager struct {
	mu     sync.RWMutex
	pmodes map[string]*ProcessingMode
	legs   map[uint64][]legRef // leg hash -> registered legs
	logger *slog.Logger
}

type legRef struct {
	pmode *ProcessingMode
	index int
}

// ManagerOption configures a PModeManager.
type ManagerOption func(*PModeManager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *PModeManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewPModeManager creates a new P-Mode manager
func NewPModeManager(opts ...ManagerOption) *PModeManager {
	m := &PModeManager{
		pmodes: make(map[string]*ProcessingMode),
		legs:   make(map[uint64][]legRef),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddPMode adds a processing mode, replacing any P-Mode with the same ID.
// A P-Mode without an ID is assigned a random one.
func (m *PModeManager) AddPMode(pmode *ProcessingMode) {
	if pmode.ID == "" {
		pmode.ID = uuid.NewString()
	}

	hashes := make([]uint64, len(pmode.Legs))
	for i := range pmode.Legs {
		hashes[i] = pmode.Legs[i].Hash()
	}

	m.mu.Lock()
	old, replaced := m.pmodes[pmode.ID]
	if replaced {
		m.unindexLocked(old)
	}
	m.pmodes[pmode.ID] = pmode
	for i, h := range hashes {
		m.legs[h] = append(m.legs[h], legRef{pmode: pmode, index: i})
	}
	m.mu.Unlock()

	m.logger.Debug("registered P-Mode",
		"pmode", pmode.ID,
		"service", pmode.Service,
		"action", pmode.Action,
		"legs", len(pmode.Legs),
		"replaced", replaced)
}

// GetPMode retrieves a processing mode by ID
func (m *PModeManager) GetPMode(id string) *ProcessingMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pmodes[id]
}

// RemovePMode removes a processing mode
func (m *PModeManager) RemovePMode(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pm, ok := m.pmodes[id]; ok {
		m.unindexLocked(pm)
		delete(m.pmodes, id)
	}
}

func (m *PModeManager) unindexLocked(pm *ProcessingMode) {
	for h, refs := range m.legs {
		refs = slices.DeleteFunc(refs, func(r legRef) bool { return r.pmode == pm })
		if len(refs) == 0 {
			delete(m.legs, h)
		} else {
			m.legs[h] = refs
		}
	}
}

// PModes returns all registered P-Modes ordered by ID.
func (m *PModeManager) PModes() []*ProcessingMode {
	m.mu.RLock()
	out := make([]*ProcessingMode, 0, len(m.pmodes))
	for _, pm := range m.pmodes {
		out = append(out, pm)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindPMode finds a matching P-Mode based on message parameters. Parties
// are only compared when both the P-Mode and the caller specify them. When
// several P-Modes match, the one with the lowest ID wins.
func (m *PModeManager) FindPMode(service, action string, fromParty, toParty string) *ProcessingMode {
	for _, pmode := range m.PModes() {
		if pmode.Service != service || pmode.Action != action {
			continue
		}
		if !partyMatches(pmode.Initiator.ID, fromParty) || !partyMatches(pmode.Responder.ID, toParty) {
			continue
		}
		return pmode
	}
	return nil
}

func partyMatches(configured, actual string) bool {
	return configured == "" || actual == "" || configured == actual
}

// FindEquivalentLeg looks for a registered leg equal to leg. It returns the
// owning P-Mode and the leg index, which lets callers reuse derived state
// (e.g. prepared security settings) across P-Modes with identical legs.
// Leg hashes are computed once at AddPMode time. When several legs match,
// the lowest P-Mode ID and then the lowest index wins.
func (m *PModeManager) FindEquivalentLeg(leg *Leg) (*ProcessingMode, int, bool) {
	want := leg.Hash()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var best *legRef
	for i := range m.legs[want] {
		ref := &m.legs[want][i]
		if !ref.pmode.Legs[ref.index].Equal(leg) {
			continue
		}
		if best == nil || ref.pmode.ID < best.pmode.ID ||
			(ref.pmode.ID == best.pmode.ID && ref.index < best.index) {
			best = ref
		}
	}
	if best == nil {
		return nil, -1, false
	}
	return best.pmode, best.index, true
}
