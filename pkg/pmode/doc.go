// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package pmode provides Processing Mode (P-Mode) configuration for AS4.

P-Mode is the central configuration mechanism in AS4 that defines how
messages are processed. Each P-Mode specifies settings for a particular
message exchange agreement between parties, split into one or more legs.

# Legs

Every leg owns its PMode[1].Security and PMode[1].Reliability parameters:

	type Leg struct {
	    Protocol       Protocol
	    BusinessInfo   BusinessInfo
	    ErrorHandling  ErrorHandling
	    Security       SecurityLegConfig    // signing, encryption, receipts
	    Reliability    ReliabilityLegConfig // delivery contracts, groups
	    PayloadService PayloadService
	}

# Partially specified parameters

P-Mode legs are often only partially defined and completed later from a
profile. Boolean parameters are therefore stored as a TriState: True,
False or Undefined. Accessors resolve Undefined to the documented default
(false for every flag in this package):

	var r pmode.ReliabilityLegConfig
	r.IsAtLeastOnceContract()        // false, the default
	r.IsAtLeastOnceContractDefined() // false
	r.SetAtLeastOnceContract(true)   // pmode.Changed
	r.SetAtLeastOnceContract(true)   // pmode.Unchanged

Setters taking a TriState reject values outside the three states with
ErrInvalidArgument. Reliability setters report whether they changed the
config, so owners of derived state know when to rebuild it.

# Concurrency

Leg configs carry no locking. Populate them from a single goroutine, then
publish the P-Mode through a PModeManager; after that they are read-only
and safe for concurrent readers.

# P-Mode Manager

	manager := pmode.NewPModeManager(pmode.WithLogger(logger))
	manager.AddPMode(pmode.DefaultPMode())

	found := manager.FindPMode(service, action, fromParty, toParty)

# References

  - OASIS ebMS 3.0 Core, Appendix D (P-Mode parameters): https://docs.oasis-open.org/ebxml-msg/ebms/v3.0/core/os/
  - OASIS AS4 P-Mode: https://docs.oasis-open.org/ebxml-msg/ebms/v3.0/profiles/AS4-profile/v1.0/
*/
package pmode
