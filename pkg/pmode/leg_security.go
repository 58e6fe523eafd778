// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

import (
	"slices"
)

// Defaults applied when a security flag is left undefined.
const (
	DefaultUsernameTokenDigest  = false
	DefaultUsernameTokenNonce   = false
	DefaultUsernameTokenCreated = false
	DefaultPModeAuthorize       = false
	DefaultSendReceipt          = false
)

// ReceiptReplyPattern selects how a Receipt signal is returned.
type ReceiptReplyPattern string

const (
	// ReceiptAny leaves the pattern open; any pattern may be used.
	ReceiptAny ReceiptReplyPattern = ""
	// ReceiptCallback sends the receipt on a separate connection.
	ReceiptCallback ReceiptReplyPattern = "callback"
	// ReceiptResponse returns the receipt on the back-channel.
	ReceiptResponse ReceiptReplyPattern = "response"
)

// IsValid reports whether p is a known pattern (or unset).
func (p ReceiptReplyPattern) IsValid() bool {
	switch p {
	case ReceiptAny, ReceiptCallback, ReceiptResponse:
		return true
	}
	return false
}

// SecurityLegConfig holds the PMode[1].Security parameters of one leg.
//
// Certificate and algorithm values only matter when the matching element
// list is non-empty. That is not checked here; consumers validate before
// use. A SecurityLegConfig is not safe for concurrent mutation.
type SecurityLegConfig struct {
	wssVersion string

	x509Sign                  []string
	x509SignatureCertificate  string
	x509SignatureHashFunction string
	x509SignatureAlgorithm    string

	x509EncryptionEncrypt         []string
	x509EncryptionCertificate     string
	x509EncryptionAlgorithm       string
	x509EncryptionMinimumStrength *int

	usernameTokenUsername string
	usernameTokenPassword string
	usernameTokenDigest   TriState
	usernameTokenNonce    TriState
	usernameTokenCreated  TriState

	pmodeAuthorize          TriState
	sendReceipt             TriState
	sendReceiptReplyPattern ReceiptReplyPattern
}

// WSSVersion returns the WS-Security version ("1.0" or "1.1").
func (s *SecurityLegConfig) WSSVersion() string { return s.wssVersion }

// SetWSSVersion sets the WS-Security version.
func (s *SecurityLegConfig) SetWSSVersion(v string) { s.wssVersion = v }

// X509Sign returns a copy of the elements to sign: XML names, qualified
// names or attachment Content-IDs. Nil when nothing is signed.
func (s *SecurityLegConfig) X509Sign() []string { return slices.Clone(s.x509Sign) }

// SetX509Sign sets the elements to sign. The slice is copied.
func (s *SecurityLegConfig) SetX509Sign(elements []string) { s.x509Sign = slices.Clone(elements) }

// X509SignatureCertificate identifies the certificate used to verify signatures.
func (s *SecurityLegConfig) X509SignatureCertificate() string { return s.x509SignatureCertificate }

// SetX509SignatureCertificate sets X509SignatureCertificate.
func (s *SecurityLegConfig) SetX509SignatureCertificate(v string) { s.x509SignatureCertificate = v }

// X509SignatureHashFunction is the digest algorithm URI.
func (s *SecurityLegConfig) X509SignatureHashFunction() string { return s.x509SignatureHashFunction }

// SetX509SignatureHashFunction sets X509SignatureHashFunction.
func (s *SecurityLegConfig) SetX509SignatureHashFunction(v string) { s.x509SignatureHashFunction = v }

// X509SignatureAlgorithm is the signature algorithm URI.
func (s *SecurityLegConfig) X509SignatureAlgorithm() string { return s.x509SignatureAlgorithm }

// SetX509SignatureAlgorithm sets X509SignatureAlgorithm.
func (s *SecurityLegConfig) SetX509SignatureAlgorithm(v string) { s.x509SignatureAlgorithm = v }

// X509EncryptionEncrypt returns a copy of the elements to encrypt,
// identified as in X509Sign.
func (s *SecurityLegConfig) X509EncryptionEncrypt() []string {
	return slices.Clone(s.x509EncryptionEncrypt)
}

// SetX509EncryptionEncrypt sets the elements to encrypt. The slice is copied.
func (s *SecurityLegConfig) SetX509EncryptionEncrypt(elements []string) {
	s.x509EncryptionEncrypt = slices.Clone(elements)
}

// X509EncryptionCertificate identifies the certificate used to encrypt.
func (s *SecurityLegConfig) X509EncryptionCertificate() string { return s.x509EncryptionCertificate }

// SetX509EncryptionCertificate sets X509EncryptionCertificate.
func (s *SecurityLegConfig) SetX509EncryptionCertificate(v string) { s.x509EncryptionCertificate = v }

// X509EncryptionAlgorithm is the data encryption algorithm URI.
func (s *SecurityLegConfig) X509EncryptionAlgorithm() string { return s.x509EncryptionAlgorithm }

// SetX509EncryptionAlgorithm sets X509EncryptionAlgorithm.
func (s *SecurityLegConfig) SetX509EncryptionAlgorithm(v string) { s.x509EncryptionAlgorithm = v }

// X509EncryptionMinimumStrength returns the required effective key strength
// in bits. ok is false when no minimum was configured.
func (s *SecurityLegConfig) X509EncryptionMinimumStrength() (bits int, ok bool) {
	if s.x509EncryptionMinimumStrength == nil {
		return 0, false
	}
	return *s.x509EncryptionMinimumStrength, true
}

// SetX509EncryptionMinimumStrength sets X509EncryptionMinimumStrength.
func (s *SecurityLegConfig) SetX509EncryptionMinimumStrength(bits int) {
	s.x509EncryptionMinimumStrength = &bits
}

// ClearX509EncryptionMinimumStrength removes the minimum strength requirement.
func (s *SecurityLegConfig) ClearX509EncryptionMinimumStrength() {
	s.x509EncryptionMinimumStrength = nil
}

// UsernameTokenUsername is the username for UsernameToken authentication.
func (s *SecurityLegConfig) UsernameTokenUsername() string { return s.usernameTokenUsername }

// SetUsernameTokenUsername sets UsernameTokenUsername.
func (s *SecurityLegConfig) SetUsernameTokenUsername(v string) { s.usernameTokenUsername = v }

// UsernameTokenPassword is the UsernameToken password.
func (s *SecurityLegConfig) UsernameTokenPassword() string { return s.usernameTokenPassword }

// SetUsernameTokenPassword sets UsernameTokenPassword.
func (s *SecurityLegConfig) SetUsernameTokenPassword(v string) { s.usernameTokenPassword = v }

// SendReceiptReplyPattern returns how the Receipt is sent back. ReceiptAny
// means any pattern is acceptable.
func (s *SecurityLegConfig) SendReceiptReplyPattern() ReceiptReplyPattern {
	return s.sendReceiptReplyPattern
}

// SetSendReceiptReplyPattern sets SendReceiptReplyPattern.
func (s *SecurityLegConfig) SetSendReceiptReplyPattern(p ReceiptReplyPattern) {
	s.sendReceiptReplyPattern = p
}

// UsernameTokenDigest reports whether a password digest goes into the
// UsernameToken.
func (s *SecurityLegConfig) UsernameTokenDigest() bool {
	return s.usernameTokenDigest.Resolve(DefaultUsernameTokenDigest)
}

// IsUsernameTokenDigestDefined reports whether UsernameTokenDigest was set explicitly.
func (s *SecurityLegConfig) IsUsernameTokenDigestDefined() bool {
	return s.usernameTokenDigest.IsDefined()
}

// UsernameTokenDigestState returns UsernameTokenDigest without applying the default.
func (s *SecurityLegConfig) UsernameTokenDigestState() TriState { return s.usernameTokenDigest }

// SetUsernameTokenDigest sets UsernameTokenDigest explicitly.
func (s *SecurityLegConfig) SetUsernameTokenDigest(v bool) {
	s.usernameTokenDigest = TriStateOf(v)
}

// SetUsernameTokenDigestState sets UsernameTokenDigest; Undefined restores the default.
func (s *SecurityLegConfig) SetUsernameTokenDigestState(t TriState) error {
	if err := checkTriState("UsernameTokenDigest", t); err != nil {
		return err
	}
	s.usernameTokenDigest = t
	return nil
}

// UsernameTokenNonce reports whether the UsernameToken carries a Nonce.
func (s *SecurityLegConfig) UsernameTokenNonce() bool {
	return s.usernameTokenNonce.Resolve(DefaultUsernameTokenNonce)
}

// IsUsernameTokenNonceDefined reports whether UsernameTokenNonce was set explicitly.
func (s *SecurityLegConfig) IsUsernameTokenNonceDefined() bool {
	return s.usernameTokenNonce.IsDefined()
}

// UsernameTokenNonceState returns UsernameTokenNonce without applying the default.
func (s *SecurityLegConfig) UsernameTokenNonceState() TriState { return s.usernameTokenNonce }

// SetUsernameTokenNonce sets UsernameTokenNonce explicitly.
func (s *SecurityLegConfig) SetUsernameTokenNonce(v bool) {
	s.usernameTokenNonce = TriStateOf(v)
}

// SetUsernameTokenNonceState sets UsernameTokenNonce; Undefined restores the default.
func (s *SecurityLegConfig) SetUsernameTokenNonceState(t TriState) error {
	if err := checkTriState("UsernameTokenNonce", t); err != nil {
		return err
	}
	s.usernameTokenNonce = t
	return nil
}

// UsernameTokenCreated reports whether the UsernameToken carries a Created
// timestamp.
func (s *SecurityLegConfig) UsernameTokenCreated() bool {
	return s.usernameTokenCreated.Resolve(DefaultUsernameTokenCreated)
}

// IsUsernameTokenCreatedDefined reports whether UsernameTokenCreated was set explicitly.
func (s *SecurityLegConfig) IsUsernameTokenCreatedDefined() bool {
	return s.usernameTokenCreated.IsDefined()
}

// UsernameTokenCreatedState returns UsernameTokenCreated without applying the default.
func (s *SecurityLegConfig) UsernameTokenCreatedState() TriState { return s.usernameTokenCreated }

// SetUsernameTokenCreated sets UsernameTokenCreated explicitly.
func (s *SecurityLegConfig) SetUsernameTokenCreated(v bool) {
	s.usernameTokenCreated = TriStateOf(v)
}

// SetUsernameTokenCreatedState sets UsernameTokenCreated; Undefined restores the default.
func (s *SecurityLegConfig) SetUsernameTokenCreatedState(t TriState) error {
	if err := checkTriState("UsernameTokenCreated", t); err != nil {
		return err
	}
	s.usernameTokenCreated = t
	return nil
}

// PModeAuthorize reports whether messages on this leg must be authorized
// against the initiator or responder authorization credentials.
func (s *SecurityLegConfig) PModeAuthorize() bool {
	return s.pmodeAuthorize.Resolve(DefaultPModeAuthorize)
}

// IsPModeAuthorizeDefined reports whether PModeAuthorize was set explicitly.
func (s *SecurityLegConfig) IsPModeAuthorizeDefined() bool {
	return s.pmodeAuthorize.IsDefined()
}

// PModeAuthorizeState returns PModeAuthorize without applying the default.
func (s *SecurityLegConfig) PModeAuthorizeState() TriState { return s.pmodeAuthorize }

// SetPModeAuthorize sets PModeAuthorize explicitly.
func (s *SecurityLegConfig) SetPModeAuthorize(v bool) {
	s.pmodeAuthorize = TriStateOf(v)
}

// SetPModeAuthorizeState sets PModeAuthorize; Undefined restores the default.
func (s *SecurityLegConfig) SetPModeAuthorizeState(t TriState) error {
	if err := checkTriState("PModeAuthorize", t); err != nil {
		return err
	}
	s.pmodeAuthorize = t
	return nil
}

// SendReceipt reports whether a signed Receipt must be sent back.
func (s *SecurityLegConfig) SendReceipt() bool {
	return s.sendReceipt.Resolve(DefaultSendReceipt)
}

// IsSendReceiptDefined reports whether SendReceipt was set explicitly.
func (s *SecurityLegConfig) IsSendReceiptDefined() bool {
	return s.sendReceipt.IsDefined()
}

// SendReceiptState returns SendReceipt without applying the default.
func (s *SecurityLegConfig) SendReceiptState() TriState { return s.sendReceipt }

// SetSendReceipt sets SendReceipt explicitly.
func (s *SecurityLegConfig) SetSendReceipt(v bool) {
	s.sendReceipt = TriStateOf(v)
}

// SetSendReceiptState sets SendReceipt; Undefined restores the default.
func (s *SecurityLegConfig) SetSendReceiptState(t TriState) error {
	if err := checkTriState("SendReceipt", t); err != nil {
		return err
	}
	s.sendReceipt = t
	return nil
}

// Clone returns a deep copy.
func (s *SecurityLegConfig) Clone() SecurityLegConfig {
	c := *s
	c.x509Sign = slices.Clone(s.x509Sign)
	c.x509EncryptionEncrypt = slices.Clone(s.x509EncryptionEncrypt)
	if s.x509EncryptionMinimumStrength != nil {
		bits := *s.x509EncryptionMinimumStrength
		c.x509EncryptionMinimumStrength = &bits
	}
	return c
}

// Equal reports whether both configs hold the same values. A nil list and
// an empty list compare equal.
func (s *SecurityLegConfig) Equal(o *SecurityLegConfig) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.wssVersion == o.wssVersion &&
		slices.Equal(s.x509Sign, o.x509Sign) &&
		s.x509SignatureCertificate == o.x509SignatureCertificate &&
		s.x509SignatureHashFunction == o.x509SignatureHashFunction &&
		s.x509SignatureAlgorithm == o.x509SignatureAlgorithm &&
		slices.Equal(s.x509EncryptionEncrypt, o.x509EncryptionEncrypt) &&
		s.x509EncryptionCertificate == o.x509EncryptionCertificate &&
		s.x509EncryptionAlgorithm == o.x509EncryptionAlgorithm &&
		equalOptionalInt(s.x509EncryptionMinimumStrength, o.x509EncryptionMinimumStrength) &&
		s.usernameTokenUsername == o.usernameTokenUsername &&
		s.usernameTokenPassword == o.usernameTokenPassword &&
		s.usernameTokenDigest == o.usernameTokenDigest &&
		s.usernameTokenNonce == o.usernameTokenNonce &&
		s.usernameTokenCreated == o.usernameTokenCreated &&
		s.pmodeAuthorize == o.pmodeAuthorize &&
		s.sendReceipt == o.sendReceipt &&
		s.sendReceiptReplyPattern == o.sendReceiptReplyPattern
}

// Hash returns a hash consistent with Equal.
func (s *SecurityLegConfig) Hash() uint64 {
	h := newFieldHasher()
	s.writeHash(h)
	return h.sum()
}

func (s *SecurityLegConfig) writeHash(h *fieldHasher) {
	h.writeString(s.wssVersion)
	h.writeStrings(s.x509Sign)
	h.writeString(s.x509SignatureCertificate)
	h.writeString(s.x509SignatureHashFunction)
	h.writeString(s.x509SignatureAlgorithm)
	h.writeStrings(s.x509EncryptionEncrypt)
	h.writeString(s.x509EncryptionCertificate)
	h.writeString(s.x509EncryptionAlgorithm)
	h.writeOptionalInt(s.x509EncryptionMinimumStrength)
	h.writeString(s.usernameTokenUsername)
	h.writeString(s.usernameTokenPassword)
	h.writeTriState(s.usernameTokenDigest)
	h.writeTriState(s.usernameTokenNonce)
	h.writeTriState(s.usernameTokenCreated)
	h.writeTriState(s.pmodeAuthorize)
	h.writeTriState(s.sendReceipt)
	h.writeString(string(s.sendReceiptReplyPattern))
}

func equalOptionalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
