// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

package pmode

// Element identifiers used in the Sign and Encrypt lists. Attachments are
// referenced by Content-ID; "cid:*" selects all of them.
const (
	ElementSOAPBody  = "{http://www.w3.org/2003/05/soap-envelope}Body"
	ElementMessaging = "{http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/}Messaging"
	AttachmentsAll   = "cid:*"
)

// DefaultSecurityLeg returns the leg security settings for an algorithm
// suite profile. Unknown profiles get the minimal custom suite, which signs
// the envelope only and leaves encryption unset.
func DefaultSecurityLeg(profile SecurityProfile) SecurityLegConfig {
	var s SecurityLegConfig
	s.SetWSSVersion("1.1")
	s.SetSendReceipt(true)
	s.SetSendReceiptReplyPattern(ReceiptResponse)

	switch profile {
	case ProfileAS4v2:
		s.SetX509Sign([]string{ElementSOAPBody, ElementMessaging, AttachmentsAll})
		s.SetX509SignatureAlgorithm(AlgoEd25519)
		s.SetX509SignatureHashFunction(HashSHA256)
		s.SetX509EncryptionEncrypt([]string{AttachmentsAll})
		s.SetX509EncryptionAlgorithm(DataAlgoAES128GCM)
		s.SetX509EncryptionMinimumStrength(128)
	case ProfileDomibus, ProfileEDelivery:
		s.SetX509Sign([]string{ElementSOAPBody, ElementMessaging, AttachmentsAll})
		s.SetX509SignatureAlgorithm(AlgoRSASHA256)
		s.SetX509SignatureHashFunction(HashSHA256)
		s.SetX509EncryptionEncrypt([]string{AttachmentsAll})
		s.SetX509EncryptionAlgorithm(DataAlgoAES128GCM)
		s.SetX509EncryptionMinimumStrength(128)
	default:
		s.SetX509Sign([]string{ElementSOAPBody, ElementMessaging})
		s.SetX509SignatureAlgorithm(AlgoRSASHA256)
		s.SetX509SignatureHashFunction(HashSHA256)
	}
	return s
}
