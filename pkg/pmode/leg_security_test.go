// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type securityFlag struct {
	name       string
	get        func(*SecurityLegConfig) bool
	defined    func(*SecurityLegConfig) bool
	set        func(*SecurityLegConfig, bool)
	setState   func(*SecurityLegConfig, TriState) error
	defaultVal bool
}

func securityFlags() []securityFlag {
	return []securityFlag{
		{
			name:       "UsernameTokenDigest",
			get:        (*SecurityLegConfig).UsernameTokenDigest,
			defined:    (*SecurityLegConfig).IsUsernameTokenDigestDefined,
			set:        (*SecurityLegConfig).SetUsernameTokenDigest,
			setState:   (*SecurityLegConfig).SetUsernameTokenDigestState,
			defaultVal: DefaultUsernameTokenDigest,
		},
		{
			name:       "UsernameTokenNonce",
			get:        (*SecurityLegConfig).UsernameTokenNonce,
			defined:    (*SecurityLegConfig).IsUsernameTokenNonceDefined,
			set:        (*SecurityLegConfig).SetUsernameTokenNonce,
			setState:   (*SecurityLegConfig).SetUsernameTokenNonceState,
			defaultVal: DefaultUsernameTokenNonce,
		},
		{
			name:       "UsernameTokenCreated",
			get:        (*SecurityLegConfig).UsernameTokenCreated,
			defined:    (*SecurityLegConfig).IsUsernameTokenCreatedDefined,
			set:        (*SecurityLegConfig).SetUsernameTokenCreated,
			setState:   (*SecurityLegConfig).SetUsernameTokenCreatedState,
			defaultVal: DefaultUsernameTokenCreated,
		},
		{
			name:       "PModeAuthorize",
			get:        (*SecurityLegConfig).PModeAuthorize,
			defined:    (*SecurityLegConfig).IsPModeAuthorizeDefined,
			set:        (*SecurityLegConfig).SetPModeAuthorize,
			setState:   (*SecurityLegConfig).SetPModeAuthorizeState,
			defaultVal: DefaultPModeAuthorize,
		},
		{
			name:       "SendReceipt",
			get:        (*SecurityLegConfig).SendReceipt,
			defined:    (*SecurityLegConfig).IsSendReceiptDefined,
			set:        (*SecurityLegConfig).SetSendReceipt,
			setState:   (*SecurityLegConfig).SetSendReceiptState,
			defaultVal: DefaultSendReceipt,
		},
	}
}

func TestSecurityLegConfig_Empty(t *testing.T) {
	var s SecurityLegConfig

	assert.False(t, s.UsernameTokenDigest())
	assert.False(t, s.SendReceipt())
	assert.Nil(t, s.X509Sign())
	assert.Nil(t, s.X509EncryptionEncrypt())
	assert.Empty(t, s.WSSVersion())
	assert.Equal(t, ReceiptAny, s.SendReceiptReplyPattern())

	_, ok := s.X509EncryptionMinimumStrength()
	assert.False(t, ok)
}

func TestSecurityLegConfig_Flags(t *testing.T) {
	for _, f := range securityFlags() {
		t.Run(f.name, func(t *testing.T) {
			var s SecurityLegConfig
			assert.Equal(t, f.defaultVal, f.get(&s), "default")
			assert.False(t, f.defined(&s))

			for _, b := range []bool{true, false} {
				f.set(&s, b)
				assert.Equal(t, b, f.get(&s))
				assert.True(t, f.defined(&s))
			}

			require.NoError(t, f.setState(&s, True))
			assert.True(t, f.get(&s))

			require.NoError(t, f.setState(&s, Undefined))
			assert.Equal(t, f.defaultVal, f.get(&s))
			assert.False(t, f.defined(&s))

			f.set(&s, true)
			err := f.setState(&s, TriState(42))
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), f.name)
			assert.True(t, f.get(&s), "rejected value must not be stored")
		})
	}
}

func TestSecurityLegConfig_NoCrossFieldValidation(t *testing.T) {
	var s SecurityLegConfig
	s.SetX509SignatureAlgorithm(AlgoRSASHA256)
	s.SetX509EncryptionCertificate("enc-cert")

	assert.Equal(t, AlgoRSASHA256, s.X509SignatureAlgorithm())
	assert.Equal(t, "enc-cert", s.X509EncryptionCertificate())
	assert.Empty(t, s.X509Sign())
}

func TestSecurityLegConfig_Fields(t *testing.T) {
	var s SecurityLegConfig
	sign := []string{ElementSOAPBody, "cid:payload-1"}

	s.SetWSSVersion("1.1")
	s.SetX509Sign(sign)
	s.SetX509SignatureCertificate("sign-cert")
	s.SetX509SignatureHashFunction(HashSHA256)
	s.SetX509SignatureAlgorithm(AlgoEd25519)
	s.SetX509EncryptionEncrypt([]string{AttachmentsAll})
	s.SetX509EncryptionCertificate("enc-cert")
	s.SetX509EncryptionAlgorithm(DataAlgoAES128GCM)
	s.SetX509EncryptionMinimumStrength(128)
	s.SetUsernameTokenUsername("alice")
	s.SetUsernameTokenPassword("secret")
	s.SetSendReceiptReplyPattern(ReceiptCallback)

	sign[0] = "mutated"
	assert.Equal(t, []string{ElementSOAPBody, "cid:payload-1"}, s.X509Sign(), "setter must copy")

	assert.Equal(t, "1.1", s.WSSVersion())
	assert.Equal(t, "sign-cert", s.X509SignatureCertificate())
	assert.Equal(t, HashSHA256, s.X509SignatureHashFunction())
	assert.Equal(t, AlgoEd25519, s.X509SignatureAlgorithm())
	assert.Equal(t, []string{AttachmentsAll}, s.X509EncryptionEncrypt())
	assert.Equal(t, "enc-cert", s.X509EncryptionCertificate())
	assert.Equal(t, DataAlgoAES128GCM, s.X509EncryptionAlgorithm())
	assert.Equal(t, "alice", s.UsernameTokenUsername())
	assert.Equal(t, "secret", s.UsernameTokenPassword())
	assert.Equal(t, ReceiptCallback, s.SendReceiptReplyPattern())

	bits, ok := s.X509EncryptionMinimumStrength()
	assert.True(t, ok)
	assert.Equal(t, 128, bits)

	s.ClearX509EncryptionMinimumStrength()
	_, ok = s.X509EncryptionMinimumStrength()
	assert.False(t, ok)
}

func fullSecurity() SecurityLegConfig {
	s := DefaultSecurityLeg(ProfileEDelivery)
	s.SetWSSVersion("1.1")
	s.SetX509SignatureCertificate("sign-cert")
	s.SetX509EncryptionCertificate("enc-cert")
	s.SetUsernameTokenUsername("alice")
	s.SetUsernameTokenPassword("secret")
	s.SetUsernameTokenDigest(true)
	s.SetUsernameTokenNonce(true)
	s.SetUsernameTokenCreated(false)
	s.SetPModeAuthorize(false)
	return s
}

func TestSecurityLegConfig_CloneAndEqual(t *testing.T) {
	s := fullSecurity()

	c := s.Clone()
	assert.True(t, s.Equal(&c))
	assert.Equal(t, s.Hash(), c.Hash())
	assert.True(t, s.Equal(&s))
	assert.False(t, s.Equal(nil))

	var empty1, empty2 SecurityLegConfig
	assert.True(t, empty1.Equal(&empty2))
	assert.Equal(t, empty1.Hash(), empty2.Hash())

	c.SetX509Sign([]string{ElementSOAPBody})
	assert.Len(t, s.X509Sign(), 3, "clone must not share storage")

	c = s.Clone()
	c.SetX509EncryptionMinimumStrength(256)
	bits, _ := s.X509EncryptionMinimumStrength()
	assert.Equal(t, 128, bits)
}

func TestSecurityLegConfig_EqualAndHash(t *testing.T) {
	base := fullSecurity()
	ref := fullSecurity()

	mutations := map[string]func(*SecurityLegConfig){
		"WSSVersion": func(s *SecurityLegConfig) { s.SetWSSVersion("1.0") },
		"X509Sign":   func(s *SecurityLegConfig) { s.SetX509Sign([]string{ElementSOAPBody}) },
		"X509SignOrder": func(s *SecurityLegConfig) {
			all := s.X509Sign()
			s.SetX509Sign([]string{all[1], all[0], all[2]})
		},
		"X509SignatureCertificate":  func(s *SecurityLegConfig) { s.SetX509SignatureCertificate("other-cert") },
		"X509SignatureHashFunction": func(s *SecurityLegConfig) { s.SetX509SignatureHashFunction(HashSHA512) },
		"X509SignatureAlgorithm":    func(s *SecurityLegConfig) { s.SetX509SignatureAlgorithm(AlgoRSASHA512) },
		"X509EncryptionEncrypt":     func(s *SecurityLegConfig) { s.SetX509EncryptionEncrypt(nil) },
		"X509EncryptionCertificate": func(s *SecurityLegConfig) { s.SetX509EncryptionCertificate("") },
		"X509EncryptionAlgorithm":   func(s *SecurityLegConfig) { s.SetX509EncryptionAlgorithm(DataAlgoAES256GCM) },
		"X509EncryptionMinimumStrength": func(s *SecurityLegConfig) {
			s.SetX509EncryptionMinimumStrength(256)
		},
		"X509EncryptionMinimumStrengthCleared": func(s *SecurityLegConfig) {
			s.ClearX509EncryptionMinimumStrength()
		},
		"UsernameTokenUsername":   func(s *SecurityLegConfig) { s.SetUsernameTokenUsername("bob") },
		"UsernameTokenPassword":   func(s *SecurityLegConfig) { s.SetUsernameTokenPassword("") },
		"UsernameTokenDigest":     func(s *SecurityLegConfig) { s.SetUsernameTokenDigest(false) },
		"UsernameTokenNonce":      func(s *SecurityLegConfig) { _ = s.SetUsernameTokenNonceState(Undefined) },
		"UsernameTokenCreated":    func(s *SecurityLegConfig) { s.SetUsernameTokenCreated(true) },
		"PModeAuthorize":          func(s *SecurityLegConfig) { _ = s.SetPModeAuthorizeState(Undefined) },
		"SendReceipt":             func(s *SecurityLegConfig) { s.SetSendReceipt(false) },
		"SendReceiptReplyPattern": func(s *SecurityLegConfig) { s.SetSendReceiptReplyPattern(ReceiptCallback) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := base.Clone()
			mutate(&c)
			assert.False(t, base.Equal(&c))
			assert.False(t, c.Equal(&base))
			assert.NotEqual(t, base.Hash(), c.Hash())
			assert.True(t, base.Equal(&ref), "original must be untouched")
		})
	}
}

func TestSecurityLegConfig_ListGettersCopy(t *testing.T) {
	s := fullSecurity()
	c := s.Clone()
	h := s.Hash()

	s.X509Sign()[0] = "mutated"
	s.X509EncryptionEncrypt()[0] = "mutated"

	assert.Equal(t, ElementSOAPBody, s.X509Sign()[0])
	assert.Equal(t, []string{AttachmentsAll}, s.X509EncryptionEncrypt())
	assert.True(t, s.Equal(&c))
	assert.Equal(t, h, s.Hash())
}

func TestReceiptReplyPattern_IsValid(t *testing.T) {
	assert.True(t, ReceiptAny.IsValid())
	assert.True(t, ReceiptCallback.IsValid())
	assert.True(t, ReceiptResponse.IsValid())
	assert.False(t, ReceiptReplyPattern("poll").IsValid())
}
