// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package goas4pmode implements AS4 Processing Mode (P-Mode) configuration
for the European Commission's eDelivery AS4 profile of ebMS 3.0.

# Overview

A P-Mode describes how one message exchange agreement is processed. This
module models P-Modes and, in particular, the per-leg Security and
Reliability parameter sets that a message service handler reads when it
signs, encrypts, acknowledges and sequences messages. Building and securing
the messages themselves is left to the handler.

# Package Structure

	github.com/sirosfoundation/go-as4-pmode/pkg/pmode   - P-Modes, legs, tri-state parameters, manager
	github.com/sirosfoundation/go-as4-pmode/pkg/sdk     - Swedish SDK federation preset
	github.com/sirosfoundation/go-as4-pmode/internal/config - YAML P-Mode profile loader

# Partially specified legs

Boolean leg parameters are tri-state: explicitly true, explicitly false, or
undefined. Undefined parameters resolve to the protocol default when read,
which lets a profile leave values open for later negotiation:

	var rel pmode.ReliabilityLegConfig
	rel.SetAtLeastOnceContract(true)
	rel.SetCorrelation([]string{pmode.CorrelationConvo})

	rel.IsAtLeastOnceContract()      // true
	rel.IsAtLeastOnceAckOnDelivery() // false, undefined falls back to the default

# References

  - OASIS ebXML Messaging Services v3.0: https://docs.oasis-open.org/ebxml-msg/ebms/v3.0/core/os/
  - OASIS AS4 Profile of ebMS 3.0 Version 1.0: https://docs.oasis-open.org/ebxml-msg/ebms/v3.0/profiles/AS4-profile/v1.0/
  - eDelivery AS4 2.0: https://ec.europa.eu/digital-building-blocks/sites/spaces/DIGITAL/pages/845480153/eDelivery+AS4+-+2.0

# License

BSD-2-Clause License
*/
package goas4pmode
