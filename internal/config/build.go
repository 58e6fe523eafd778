// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"fmt"

	"github.com/sirosfoundation/go-as4-pmode/pkg/pmode"
)

// ProcessingModes builds the configured P-Modes. Each call returns fresh
// values, so the result may be mutated freely before publishing.
func (c *Config) ProcessingModes() ([]*pmode.ProcessingMode, error) {
	out := make([]*pmode.ProcessingMode, 0, len(c.PModes))
	for i := range c.PModes {
		pm, err := c.PModes[i].Build()
		if err != nil {
			return nil, fmt.Errorf("pmodes[%d]: %w", i, err)
		}
		out = append(out, pm)
	}
	return out, nil
}

// Register builds every configured P-Mode and adds it to the manager.
func (c *Config) Register(manager *pmode.PModeManager) error {
	pms, err := c.ProcessingModes()
	if err != nil {
		return err
	}
	for _, pm := range pms {
		manager.AddPMode(pm)
	}
	return nil
}

// Build converts the configuration into a ProcessingMode.
func (p *PModeConfig) Build() (*pmode.ProcessingMode, error) {
	pm := &pmode.ProcessingMode{
		ID: p.ID,
		Agreement: pmode.Agreement{
			Name:  p.Agreement,
			Type:  p.AgreementType,
			Pmode: p.ID,
		},
		MEP:              p.MEP,
		MEPBinding:       p.MEPBinding,
		Initiator:        pmode.Party(p.Initiator),
		Responder:        pmode.Party(p.Responder),
		Service:          p.Service,
		Action:           p.Action,
		NamespaceVersion: pmode.NamespaceVersion(p.Namespace),
		SecurityProfile:  pmode.SecurityProfile(p.SecurityProfile),
		Legs:             make([]pmode.Leg, 0, len(p.Legs)),
	}
	for i := range p.Legs {
		leg, err := p.Legs[i].Build()
		if err != nil {
			return nil, fmt.Errorf("legs[%d]: %w", i, err)
		}
		pm.Legs = append(pm.Legs, leg)
	}
	return pm, nil
}

// Build converts the configuration into a Leg.
func (l *LegConfig) Build() (pmode.Leg, error) {
	leg := pmode.Leg{
		Protocol: pmode.Protocol{
			Address:     l.Protocol.Address,
			SOAPVersion: l.Protocol.SOAPVersion,
		},
		BusinessInfo: pmode.BusinessInfo{
			Service: pmode.Service{
				Value: l.BusinessInfo.Service,
				Type:  l.BusinessInfo.ServiceType,
			},
			Action: l.BusinessInfo.Action,
			MPC:    l.BusinessInfo.MPC,
		},
		ErrorHandling: pmode.ErrorHandling{
			AsResponse:                     l.ErrorHandling.AsResponse,
			ReceiverErrorsTo:               l.ErrorHandling.ReceiverErrorsTo,
			SenderErrorsTo:                 l.ErrorHandling.SenderErrorsTo,
			ProcessErrorNotifyProducer:     l.ErrorHandling.ProcessErrorNotifyProducer,
			MissingReceiptNotifyProducer:   l.ErrorHandling.MissingReceiptNotifyProducer,
			DeliveryFailuresNotifyProducer: l.ErrorHandling.DeliveryFailuresNotifyProducer,
		},
		PayloadService: pmode.PayloadService{
			CompressionType: l.PayloadService.CompressionType,
		},
	}
	for _, p := range l.BusinessInfo.Properties {
		leg.BusinessInfo.Properties = append(leg.BusinessInfo.Properties, pmode.Property{
			Name:  p.Name,
			Value: p.Value,
			Type:  p.Type,
		})
	}

	security, err := l.Security.Build()
	if err != nil {
		return pmode.Leg{}, fmt.Errorf("security: %w", err)
	}
	leg.Security = security

	reliability, err := l.Reliability.Build()
	if err != nil {
		return pmode.Leg{}, fmt.Errorf("reliability: %w", err)
	}
	leg.Reliability = *reliability

	leg.ReceptionAwareness = pmode.DefaultReceptionAwareness()
	if l.ReceptionAwareness != nil {
		leg.ReceptionAwareness = l.ReceptionAwareness.Build()
	}

	return leg, nil
}

// Build converts the configuration into a ReceptionAwareness.
func (r *ReceptionAwarenessConfig) Build() pmode.ReceptionAwareness {
	return pmode.ReceptionAwareness{
		Enabled: r.Enabled,
		Retry: pmode.RetryConfig{
			Enabled:         r.Retry.Enabled,
			MaxRetries:      r.Retry.MaxRetries,
			RetryInterval:   r.Retry.Interval,
			RetryMultiplier: r.Retry.Multiplier,
		},
		DuplicateDetection: pmode.DuplicateDetectionConfig{
			Enabled:      r.DuplicateDetection.Enabled,
			HashFunction: r.DuplicateDetection.HashFunction,
			Window:       r.DuplicateDetection.Window,
		},
	}
}

// Build converts the configuration into a SecurityLegConfig. Empty strings
// and lists, and omitted flags, keep the profile value.
func (s *SecurityConfig) Build() (pmode.SecurityLegConfig, error) {
	var sec pmode.SecurityLegConfig
	if s.Profile != "" {
		sec = pmode.DefaultSecurityLeg(pmode.SecurityProfile(s.Profile))
	}

	overrideString(s.WSSVersion, sec.SetWSSVersion)
	if s.X509.Sign != nil {
		sec.SetX509Sign(s.X509.Sign)
	}
	overrideString(s.X509.SignatureCertificate, sec.SetX509SignatureCertificate)
	overrideString(s.X509.SignatureHashFunction, sec.SetX509SignatureHashFunction)
	overrideString(s.X509.SignatureAlgorithm, sec.SetX509SignatureAlgorithm)
	if s.X509.Encrypt != nil {
		sec.SetX509EncryptionEncrypt(s.X509.Encrypt)
	}
	overrideString(s.X509.EncryptionCertificate, sec.SetX509EncryptionCertificate)
	overrideString(s.X509.EncryptionAlgorithm, sec.SetX509EncryptionAlgorithm)
	if s.X509.MinimumStrength != nil {
		sec.SetX509EncryptionMinimumStrength(*s.X509.MinimumStrength)
	}
	overrideString(s.UsernameToken.Username, sec.SetUsernameTokenUsername)
	overrideString(s.UsernameToken.Password, sec.SetUsernameTokenPassword)
	if s.SendReceiptReplyPattern != "" {
		sec.SetSendReceiptReplyPattern(pmode.ReceiptReplyPattern(s.SendReceiptReplyPattern))
	}

	for _, f := range []struct {
		v   *pmode.TriState
		set func(pmode.TriState) error
	}{
		{s.UsernameToken.Digest, sec.SetUsernameTokenDigestState},
		{s.UsernameToken.Nonce, sec.SetUsernameTokenNonceState},
		{s.UsernameToken.Created, sec.SetUsernameTokenCreatedState},
		{s.PModeAuthorize, sec.SetPModeAuthorizeState},
		{s.SendReceipt, sec.SetSendReceiptState},
	} {
		if f.v == nil {
			continue
		}
		if err := f.set(*f.v); err != nil {
			return pmode.SecurityLegConfig{}, err
		}
	}
	return sec, nil
}

// Build converts the configuration into a ReliabilityLegConfig.
func (r *ReliabilityConfig) Build() (*pmode.ReliabilityLegConfig, error) {
	return pmode.NewReliabilityLegConfig(
		r.AtLeastOnce.Contract,
		r.AtLeastOnce.AckOnDelivery,
		r.AtLeastOnce.ContractAcksTo,
		r.AtLeastOnce.ContractAckResponse,
		pmode.AckReplyPattern(r.AtLeastOnce.ReplyPattern),
		r.AtMostOnce.Contract,
		r.InOrder.Contract,
		r.StartGroup,
		r.Correlation,
		r.TerminateGroup,
	)
}

func overrideString(v string, set func(string)) {
	if v != "" {
		set(v)
	}
}
