// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"fmt"
	"slices"
	"strings"
)

// Defaults applied when a reliability flag is left undefined.
const (
	DefaultAtLeastOnceContract            = false
	DefaultAtLeastOnceAckOnDelivery       = false
	DefaultAtLeastOnceContractAckResponse = false
	DefaultAtMostOnceContract             = false
	DefaultInOrderContract                = false
	DefaultStartGroup                     = false
	DefaultTerminateGroup                 = false
)

// AckReplyPattern selects how reliability acknowledgments are returned.
type AckReplyPattern string

const (
	// AckReplyUnset leaves the pattern unconfigured.
	AckReplyUnset AckReplyPattern = ""
	// AckReplyResponse returns acknowledgments on the back-channel.
	AckReplyResponse AckReplyPattern = "Response"
	// AckReplyCallback sends acknowledgments on a separate connection.
	AckReplyCallback AckReplyPattern = "Callback"
	// AckReplyPoll makes acknowledgments available for pulling.
	AckReplyPoll AckReplyPattern = "Poll"
)

// IsValid reports whether p is a known pattern (or unset).
func (p AckReplyPattern) IsValid() bool {
	switch p {
	case AckReplyUnset, AckReplyResponse, AckReplyCallback, AckReplyPoll:
		return true
	}
	return false
}

// Correlation is an ordered list of XPath expressions, relative to
// eb:Messaging, whose values together identify a reliability group, e.g.
//
//	eb:UserMessage/eb:CollaborationInfo/eb:ConversationId
//	eb:UserMessage/eb:MessageProperties/eb:Property[@name="ProcessInstance"]
//
// Order matters: the keys form a single matching tuple.
type Correlation []string

// Add appends a key.
func (c *Correlation) Add(key string) {
	*c = append(*c, key)
}

// Remove deletes the first occurrence of key.
func (c *Correlation) Remove(key string) Change {
	i := slices.Index(*c, key)
	if i < 0 {
		return Unchanged
	}
	*c = slices.Delete(*c, i, i+1)
	return Changed
}

// Contains reports whether key is part of the correlation.
func (c Correlation) Contains(key string) bool {
	return slices.Contains(c, key)
}

// Len returns the number of keys.
func (c Correlation) Len() int { return len(c) }

// ReliabilityLegConfig holds the PMode[1].Reliability parameters of one leg.
//
// Every setter reports whether it changed anything so the owner can decide
// whether derived state (e.g. a running sequence) needs to be rebuilt.
// Not safe for concurrent mutation; treat as read-only once published.
type ReliabilityLegConfig struct {
	atLeastOnceContract            TriState
	atLeastOnceAckOnDelivery       TriState
	atLeastOnceContractAcksTo      string
	atLeastOnceContractAckResponse TriState
	atLeastOnceReplyPattern        AckReplyPattern
	atMostOnceContract             TriState
	inOrderContract                TriState
	startGroup                     TriState
	correlation                    Correlation
	terminateGroup                 TriState
}

// NewReliabilityLegConfig creates a config with every field set.
func NewReliabilityLegConfig(
	atLeastOnceContract TriState,
	atLeastOnceAckOnDelivery TriState,
	atLeastOnceContractAcksTo string,
	atLeastOnceContractAckResponse TriState,
	atLeastOnceReplyPattern AckReplyPattern,
	atMostOnceContract TriState,
	inOrderContract TriState,
	startGroup TriState,
	correlation []string,
	terminateGroup TriState,
) (*ReliabilityLegConfig, error) {
	r := &ReliabilityLegConfig{}
	for _, f := range []struct {
		set func(TriState) (Change, error)
		v   TriState
	}{
		{r.SetAtLeastOnceContractState, atLeastOnceContract},
		{r.SetAtLeastOnceAckOnDeliveryState, atLeastOnceAckOnDelivery},
		{r.SetAtLeastOnceContractAckResponseState, atLeastOnceContractAckResponse},
		{r.SetAtMostOnceContractState, atMostOnceContract},
		{r.SetInOrderContractState, inOrderContract},
		{r.SetStartGroupState, startGroup},
		{r.SetTerminateGroupState, terminateGroup},
	} {
		if _, err := f.set(f.v); err != nil {
			return nil, err
		}
	}
	r.SetAtLeastOnceContractAcksTo(atLeastOnceContractAcksTo)
	r.SetAtLeastOnceReplyPattern(atLeastOnceReplyPattern)
	r.SetCorrelation(correlation)
	return r, nil
}

func setTriState(field string, dst *TriState, t TriState) (Change, error) {
	if err := checkTriState(field, t); err != nil {
		return Unchanged, err
	}
	if *dst == t {
		return Unchanged, nil
	}
	*dst = t
	return Changed, nil
}

func setString[T ~string](dst *T, v T) Change {
	if *dst == v {
		return Unchanged
	}
	*dst = v
	return Changed
}

// IsAtLeastOnceContract reports whether the At-Least-Once (guaranteed
// delivery) contract applies between MSH and Consumer. It also covers
// signals such as PullRequest between the reliability module and the next
// MSH component.
func (r *ReliabilityLegConfig) IsAtLeastOnceContract() bool {
	return r.atLeastOnceContract.Resolve(DefaultAtLeastOnceContract)
}

// IsAtLeastOnceContractDefined reports whether AtLeastOnceContract was set explicitly.
func (r *ReliabilityLegConfig) IsAtLeastOnceContractDefined() bool {
	return r.atLeastOnceContract.IsDefined()
}

// AtLeastOnceContractState returns AtLeastOnceContract without applying the default.
func (r *ReliabilityLegConfig) AtLeastOnceContractState() TriState { return r.atLeastOnceContract }

// SetAtLeastOnceContract sets AtLeastOnceContract explicitly.
func (r *ReliabilityLegConfig) SetAtLeastOnceContract(v bool) Change {
	c, _ := r.SetAtLeastOnceContractState(TriStateOf(v))
	return c
}

// SetAtLeastOnceContractState sets AtLeastOnceContract.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetAtLeastOnceContractState(t TriState) (Change, error) {
	return setTriState("AtLeastOnceContract", &r.atLeastOnceContract, t)
}

// IsAtLeastOnceAckOnDelivery reports when acknowledgments are generated.
// For User messages true means only after delivery to the Consumer. For
// Signal messages true means only after delivery to the next MSH component
// (the RM-Consumer). False only guarantees receipt in both cases. The value
// is stored as given; which reading applies is up to the caller.
func (r *ReliabilityLegConfig) IsAtLeastOnceAckOnDelivery() bool {
	return r.atLeastOnceAckOnDelivery.Resolve(DefaultAtLeastOnceAckOnDelivery)
}

// IsAtLeastOnceAckOnDeliveryDefined reports whether AtLeastOnceAckOnDelivery was set explicitly.
func (r *ReliabilityLegConfig) IsAtLeastOnceAckOnDeliveryDefined() bool {
	return r.atLeastOnceAckOnDelivery.IsDefined()
}

// AtLeastOnceAckOnDeliveryState returns AtLeastOnceAckOnDelivery without applying the default.
func (r *ReliabilityLegConfig) AtLeastOnceAckOnDeliveryState() TriState {
	return r.atLeastOnceAckOnDelivery
}

// SetAtLeastOnceAckOnDelivery sets AtLeastOnceAckOnDelivery explicitly.
func (r *ReliabilityLegConfig) SetAtLeastOnceAckOnDelivery(v bool) Change {
	c, _ := r.SetAtLeastOnceAckOnDeliveryState(TriStateOf(v))
	return c
}

// SetAtLeastOnceAckOnDeliveryState sets AtLeastOnceAckOnDelivery.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetAtLeastOnceAckOnDeliveryState(t TriState) (Change, error) {
	return setTriState("AtLeastOnceAckOnDelivery", &r.atLeastOnceAckOnDelivery, t)
}

// AtLeastOnceContractAcksTo is the URI acknowledgments go to. Empty means
// the URI of the MSH sending messages reliably.
func (r *ReliabilityLegConfig) AtLeastOnceContractAcksTo() string {
	return r.atLeastOnceContractAcksTo
}

// HasAtLeastOnceContractAcksTo reports whether AtLeastOnceContractAcksTo is set.
func (r *ReliabilityLegConfig) HasAtLeastOnceContractAcksTo() bool {
	return r.atLeastOnceContractAcksTo != ""
}

// SetAtLeastOnceContractAcksTo sets AtLeastOnceContractAcksTo.
func (r *ReliabilityLegConfig) SetAtLeastOnceContractAcksTo(uri string) Change {
	return setString(&r.atLeastOnceContractAcksTo, uri)
}

// IsAtLeastOnceContractAckResponse reports whether a response sent
// reliably must itself be acknowledged.
func (r *ReliabilityLegConfig) IsAtLeastOnceContractAckResponse() bool {
	return r.atLeastOnceContractAckResponse.Resolve(DefaultAtLeastOnceContractAckResponse)
}

// IsAtLeastOnceContractAckResponseDefined reports whether AtLeastOnceContractAckResponse was set explicitly.
func (r *ReliabilityLegConfig) IsAtLeastOnceContractAckResponseDefined() bool {
	return r.atLeastOnceContractAckResponse.IsDefined()
}

// AtLeastOnceContractAckResponseState returns AtLeastOnceContractAckResponse without applying the default.
func (r *ReliabilityLegConfig) AtLeastOnceContractAckResponseState() TriState {
	return r.atLeastOnceContractAckResponse
}

// SetAtLeastOnceContractAckResponse sets AtLeastOnceContractAckResponse explicitly.
func (r *ReliabilityLegConfig) SetAtLeastOnceContractAckResponse(v bool) Change {
	c, _ := r.SetAtLeastOnceContractAckResponseState(TriStateOf(v))
	return c
}

// SetAtLeastOnceContractAckResponseState sets AtLeastOnceContractAckResponse.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetAtLeastOnceContractAckResponseState(t TriState) (Change, error) {
	return setTriState("AtLeastOnceContractAckResponse", &r.atLeastOnceContractAckResponse, t)
}

// AtLeastOnceReplyPattern returns how acknowledgments are sent back.
func (r *ReliabilityLegConfig) AtLeastOnceReplyPattern() AckReplyPattern {
	return r.atLeastOnceReplyPattern
}

// HasAtLeastOnceReplyPattern reports whether AtLeastOnceReplyPattern is set.
func (r *ReliabilityLegConfig) HasAtLeastOnceReplyPattern() bool {
	return r.atLeastOnceReplyPattern != AckReplyUnset
}

// SetAtLeastOnceReplyPattern sets AtLeastOnceReplyPattern.
func (r *ReliabilityLegConfig) SetAtLeastOnceReplyPattern(p AckReplyPattern) Change {
	return setString(&r.atLeastOnceReplyPattern, p)
}

// IsAtMostOnceContract reports whether duplicate elimination is enforced
// on receipt.
func (r *ReliabilityLegConfig) IsAtMostOnceContract() bool {
	return r.atMostOnceContract.Resolve(DefaultAtMostOnceContract)
}

// IsAtMostOnceContractDefined reports whether AtMostOnceContract was set explicitly.
func (r *ReliabilityLegConfig) IsAtMostOnceContractDefined() bool {
	return r.atMostOnceContract.IsDefined()
}

// AtMostOnceContractState returns AtMostOnceContract without applying the default.
func (r *ReliabilityLegConfig) AtMostOnceContractState() TriState { return r.atMostOnceContract }

// SetAtMostOnceContract sets AtMostOnceContract explicitly.
func (r *ReliabilityLegConfig) SetAtMostOnceContract(v bool) Change {
	c, _ := r.SetAtMostOnceContractState(TriStateOf(v))
	return c
}

// SetAtMostOnceContractState sets AtMostOnceContract.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetAtMostOnceContractState(t TriState) (Change, error) {
	return setTriState("AtMostOnceContract", &r.atMostOnceContract, t)
}

// IsInOrderContract reports whether User messages on this leg belong to
// an ordered sequence.
func (r *ReliabilityLegConfig) IsInOrderContract() bool {
	return r.inOrderContract.Resolve(DefaultInOrderContract)
}

// IsInOrderContractDefined reports whether InOrderContract was set explicitly.
func (r *ReliabilityLegConfig) IsInOrderContractDefined() bool {
	return r.inOrderContract.IsDefined()
}

// InOrderContractState returns InOrderContract without applying the default.
func (r *ReliabilityLegConfig) InOrderContractState() TriState { return r.inOrderContract }

// SetInOrderContract sets InOrderContract explicitly.
func (r *ReliabilityLegConfig) SetInOrderContract(v bool) Change {
	c, _ := r.SetInOrderContractState(TriStateOf(v))
	return c
}

// SetInOrderContractState sets InOrderContract.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetInOrderContractState(t TriState) (Change, error) {
	return setTriState("InOrderContract", &r.inOrderContract, t)
}

// IsStartGroup reports whether matching messages open a new reliability
// group or sequence.
func (r *ReliabilityLegConfig) IsStartGroup() bool {
	return r.startGroup.Resolve(DefaultStartGroup)
}

// IsStartGroupDefined reports whether StartGroup was set explicitly.
func (r *ReliabilityLegConfig) IsStartGroupDefined() bool {
	return r.startGroup.IsDefined()
}

// StartGroupState returns StartGroup without applying the default.
func (r *ReliabilityLegConfig) StartGroupState() TriState { return r.startGroup }

// SetStartGroup sets StartGroup explicitly.
func (r *ReliabilityLegConfig) SetStartGroup(v bool) Change {
	c, _ := r.SetStartGroupState(TriStateOf(v))
	return c
}

// SetStartGroupState sets StartGroup.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetStartGroupState(t TriState) (Change, error) {
	return setTriState("StartGroup", &r.startGroup, t)
}

// Correlations returns a handle to the live correlation list for in-place
// edits. The handle is only valid while r is; it must not be retained
// after r is copied or published.
func (r *ReliabilityLegConfig) Correlations() *Correlation {
	return &r.correlation
}

// AllCorrelations returns a copy of the correlation keys.
func (r *ReliabilityLegConfig) AllCorrelations() []string {
	return slices.Clone([]string(r.correlation))
}

// SetCorrelation replaces the correlation keys. Unchanged is returned when
// keys equals the current list element by element.
func (r *ReliabilityLegConfig) SetCorrelation(keys []string) Change {
	if slices.Equal(keys, []string(r.correlation)) {
		return Unchanged
	}
	r.correlation = Correlation(slices.Clone(keys))
	return Changed
}

// IsTerminateGroup reports whether matching messages close the group they
// correlate with.
func (r *ReliabilityLegConfig) IsTerminateGroup() bool {
	return r.terminateGroup.Resolve(DefaultTerminateGroup)
}

// IsTerminateGroupDefined reports whether TerminateGroup was set explicitly.
func (r *ReliabilityLegConfig) IsTerminateGroupDefined() bool {
	return r.terminateGroup.IsDefined()
}

// TerminateGroupState returns TerminateGroup without applying the default.
func (r *ReliabilityLegConfig) TerminateGroupState() TriState { return r.terminateGroup }

// SetTerminateGroup sets TerminateGroup explicitly.
func (r *ReliabilityLegConfig) SetTerminateGroup(v bool) Change {
	c, _ := r.SetTerminateGroupState(TriStateOf(v))
	return c
}

// SetTerminateGroupState sets TerminateGroup.
// Undefined restores the default; invalid states yield ErrInvalidArgument.
func (r *ReliabilityLegConfig) SetTerminateGroupState(t TriState) (Change, error) {
	return setTriState("TerminateGroup", &r.terminateGroup, t)
}

// Clone returns a deep copy.
func (r *ReliabilityLegConfig) Clone() ReliabilityLegConfig {
	c := *r
	c.correlation = slices.Clone(r.correlation)
	return c
}

// Equal compares every field; correlations are compared element by element
// in order.
func (r *ReliabilityLegConfig) Equal(o *ReliabilityLegConfig) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return r.atLeastOnceContract == o.atLeastOnceContract &&
		r.atLeastOnceAckOnDelivery == o.atLeastOnceAckOnDelivery &&
		r.atLeastOnceContractAcksTo == o.atLeastOnceContractAcksTo &&
		r.atLeastOnceContractAckResponse == o.atLeastOnceContractAckResponse &&
		r.atLeastOnceReplyPattern == o.atLeastOnceReplyPattern &&
		r.atMostOnceContract == o.atMostOnceContract &&
		r.inOrderContract == o.inOrderContract &&
		r.startGroup == o.startGroup &&
		slices.Equal(r.correlation, o.correlation) &&
		r.terminateGroup == o.terminateGroup
}

// Hash returns a hash consistent with Equal.
func (r *ReliabilityLegConfig) Hash() uint64 {
	h := newFieldHasher()
	r.writeHash(h)
	return h.sum()
}

func (r *ReliabilityLegConfig) writeHash(h *fieldHasher) {
	h.writeTriState(r.atLeastOnceContract)
	h.writeTriState(r.atLeastOnceAckOnDelivery)
	h.writeString(r.atLeastOnceContractAcksTo)
	h.writeTriState(r.atLeastOnceContractAckResponse)
	h.writeString(string(r.atLeastOnceReplyPattern))
	h.writeTriState(r.atMostOnceContract)
	h.writeTriState(r.inOrderContract)
	h.writeTriState(r.startGroup)
	h.writeStrings(r.correlation)
	h.writeTriState(r.terminateGroup)
}

// String formats every field for logging.
func (r *ReliabilityLegConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ReliabilityLegConfig{AtLeastOnceContract=%s", r.atLeastOnceContract)
	fmt.Fprintf(&b, " AtLeastOnceAckOnDelivery=%s", r.atLeastOnceAckOnDelivery)
	fmt.Fprintf(&b, " AtLeastOnceContractAcksTo=%q", r.atLeastOnceContractAcksTo)
	fmt.Fprintf(&b, " AtLeastOnceContractAckResponse=%s", r.atLeastOnceContractAckResponse)
	fmt.Fprintf(&b, " AtLeastOnceReplyPattern=%q", r.atLeastOnceReplyPattern)
	fmt.Fprintf(&b, " AtMostOnceContract=%s", r.atMostOnceContract)
	fmt.Fprintf(&b, " InOrderContract=%s", r.inOrderContract)
	fmt.Fprintf(&b, " StartGroup=%s", r.startGroup)
	fmt.Fprintf(&b, " Correlation=%v", []string(r.correlation))
	fmt.Fprintf(&b, " TerminateGroup=%s}", r.terminateGroup)
	return b.String()
}
