package pmode

import (
	"testing"
	"time"
)

func TestDefaultPMode(t *testing.T) {
	pmode := DefaultPMode()

	if pmode == nil {
		t.Fatal("expected non-nil default pmode")
	}

	if pmode.ID != "default-pmode" {
		t.Errorf("expected ID 'default-pmode', got '%s'", pmode.ID)
	}
	if pmode.MEP != MEPOneWay {
		t.Errorf("expected one-way MEP, got '%s'", pmode.MEP)
	}
	if pmode.MEPBinding != MEPBindingPush {
		t.Errorf("expected push binding, got '%s'", pmode.MEPBinding)
	}

	leg := pmode.Leg(0)
	if leg == nil {
		t.Fatal("expected a first leg")
	}
	if pmode.Leg(1) != nil {
		t.Error("expected exactly one leg")
	}

	if leg.Protocol.SOAPVersion != "1.2" {
		t.Errorf("expected SOAP 1.2, got '%s'", leg.Protocol.SOAPVersion)
	}
	if leg.Security.WSSVersion() != "1.1" {
		t.Errorf("expected WSS 1.1, got '%s'", leg.Security.WSSVersion())
	}
	if len(leg.Security.X509Sign()) == 0 {
		t.Error("expected signed elements")
	}
	if !leg.Security.SendReceipt() {
		t.Error("expected signed receipts")
	}

	if !leg.Reliability.IsAtLeastOnceContract() {
		t.Error("expected At-Least-Once contract")
	}
	if !leg.Reliability.IsAtMostOnceContract() {
		t.Error("expected duplicate elimination")
	}
	if leg.Reliability.IsInOrderContractDefined() {
		t.Error("expected in-order contract to be left undefined")
	}
	if got := leg.Reliability.AllCorrelations(); len(got) != 1 || got[0] != CorrelationConvo {
		t.Errorf("unexpected correlation %v", got)
	}

	if leg.ReceptionAwareness != DefaultReceptionAwareness() {
		t.Errorf("unexpected reception awareness %+v", leg.ReceptionAwareness)
	}

	if leg.PayloadService.CompressionType != "application/gzip" {
		t.Errorf("expected gzip compression, got '%s'", leg.PayloadService.CompressionType)
	}

	if pmode.NamespaceVersion != NamespaceEBMS3 {
		t.Errorf("expected NamespaceEBMS3, got '%s'", pmode.NamespaceVersion)
	}
	if pmode.SecurityProfile != ProfileDomibus {
		t.Errorf("expected ProfileDomibus, got '%s'", pmode.SecurityProfile)
	}
}

func TestDefaultSecurityLeg(t *testing.T) {
	tests := []struct {
		name            string
		profile         SecurityProfile
		expectAlgorithm string
		expectEncrypt   bool
		expectSigned    int
	}{
		{
			name:            "AS4v2 profile uses Ed25519",
			profile:         ProfileAS4v2,
			expectAlgorithm: AlgoEd25519,
			expectEncrypt:   true,
			expectSigned:    3,
		},
		{
			name:            "Domibus profile uses RSA-SHA256",
			profile:         ProfileDomibus,
			expectAlgorithm: AlgoRSASHA256,
			expectEncrypt:   true,
			expectSigned:    3,
		},
		{
			name:            "EDelivery profile uses RSA-SHA256",
			profile:         ProfileEDelivery,
			expectAlgorithm: AlgoRSASHA256,
			expectEncrypt:   true,
			expectSigned:    3,
		},
		{
			name:            "Custom profile signs envelope only",
			profile:         ProfileCustom,
			expectAlgorithm: AlgoRSASHA256,
			expectSigned:    2,
		},
		{
			name:            "Unknown profile falls back to custom",
			profile:         SecurityProfile("unknown"),
			expectAlgorithm: AlgoRSASHA256,
			expectSigned:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSecurityLeg(tt.profile)
			if s.X509SignatureAlgorithm() != tt.expectAlgorithm {
				t.Errorf("expected algorithm '%s', got '%s'", tt.expectAlgorithm, s.X509SignatureAlgorithm())
			}
			if s.X509SignatureHashFunction() != HashSHA256 {
				t.Errorf("expected SHA-256 digest, got '%s'", s.X509SignatureHashFunction())
			}
			if len(s.X509Sign()) != tt.expectSigned {
				t.Errorf("expected %d signed elements, got %d", tt.expectSigned, len(s.X509Sign()))
			}
			encrypts := len(s.X509EncryptionEncrypt()) > 0
			if encrypts != tt.expectEncrypt {
				t.Errorf("expected encryption %v, got %v", tt.expectEncrypt, encrypts)
			}
			if _, ok := s.X509EncryptionMinimumStrength(); ok != tt.expectEncrypt {
				t.Errorf("expected minimum strength set=%v", tt.expectEncrypt)
			}
			if s.SendReceiptReplyPattern() != ReceiptResponse {
				t.Errorf("expected response receipts, got '%s'", s.SendReceiptReplyPattern())
			}
		})
	}
}

func TestLeg_CloneIsDeep(t *testing.T) {
	orig := DefaultPMode().Legs[0]
	orig.BusinessInfo.Properties = []Property{{Name: "originalSender", Value: "0203:123"}}

	c := orig.Clone()
	if !orig.Equal(&c) {
		t.Fatal("expected clone to equal original")
	}
	if orig.Hash() != c.Hash() {
		t.Error("expected equal legs to hash equally")
	}

	c.Reliability.Correlations().Add("eb:UserMessage/eb:MessageInfo/eb:MessageId")
	c.BusinessInfo.Properties[0].Value = "0203:456"
	c.Security.SetX509Sign(nil)

	if len(orig.Reliability.AllCorrelations()) != 1 {
		t.Error("clone shares correlation storage with original")
	}
	if orig.BusinessInfo.Properties[0].Value != "0203:123" {
		t.Error("clone shares properties with original")
	}
	if len(orig.Security.X509Sign()) == 0 {
		t.Error("clone shares security config with original")
	}
	if orig.Equal(&c) {
		t.Error("expected modified clone to differ")
	}
}

func TestLeg_Equal(t *testing.T) {
	base := DefaultPMode().Legs[0]

	tests := []struct {
		name   string
		mutate func(*Leg)
	}{
		{"address", func(l *Leg) { l.Protocol.Address = "https://other.example.com/as4" }},
		{"action", func(l *Leg) { l.BusinessInfo.Action = "submit" }},
		{"error handling", func(l *Leg) { l.ErrorHandling.AsResponse = true }},
		{"compression", func(l *Leg) { l.PayloadService.CompressionType = "" }},
		{"security", func(l *Leg) { l.Security.SetPModeAuthorize(true) }},
		{"reliability", func(l *Leg) { l.Reliability.SetStartGroup(true) }},
		{"reception awareness", func(l *Leg) { l.ReceptionAwareness.Enabled = false }},
		{"retry count", func(l *Leg) { l.ReceptionAwareness.Retry.MaxRetries = 5 }},
		{"retry multiplier", func(l *Leg) { l.ReceptionAwareness.Retry.RetryMultiplier = 1.5 }},
		{"duplicate window", func(l *Leg) { l.ReceptionAwareness.DuplicateDetection.Window = time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base.Clone()
			tt.mutate(&l)
			if base.Equal(&l) {
				t.Error("expected legs to differ")
			}
			if base.Hash() == l.Hash() {
				t.Error("expected hashes to differ")
			}
		})
	}

	var nilLeg *Leg
	if base.Equal(nilLeg) {
		t.Error("expected leg to differ from nil")
	}
}

func TestProcessingMode_NamespaceHelpers(t *testing.T) {
	tests := []struct {
		name             string
		namespaceVersion NamespaceVersion
		expectGetNS      string
		expectIsEBMS3    bool
		expectIsAS4v2    bool
	}{
		{
			name:             "empty defaults to EBMS3",
			namespaceVersion: "",
			expectGetNS:      string(NamespaceEBMS3),
			expectIsEBMS3:    true,
			expectIsAS4v2:    false,
		},
		{
			name:             "explicit EBMS3",
			namespaceVersion: NamespaceEBMS3,
			expectGetNS:      string(NamespaceEBMS3),
			expectIsEBMS3:    true,
			expectIsAS4v2:    false,
		},
		{
			name:             "AS4v2 namespace",
			namespaceVersion: NamespaceAS4v2,
			expectGetNS:      string(NamespaceAS4v2),
			expectIsEBMS3:    false,
			expectIsAS4v2:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pmode := &ProcessingMode{
				NamespaceVersion: tt.namespaceVersion,
			}

			if got := pmode.GetNamespaceURI(); got != tt.expectGetNS {
				t.Errorf("GetNamespaceURI() = '%s', want '%s'", got, tt.expectGetNS)
			}
			if got := pmode.IsEBMS3(); got != tt.expectIsEBMS3 {
				t.Errorf("IsEBMS3() = %v, want %v", got, tt.expectIsEBMS3)
			}
			if got := pmode.IsAS4v2(); got != tt.expectIsAS4v2 {
				t.Errorf("IsAS4v2() = %v, want %v", got, tt.expectIsAS4v2)
			}
		})
	}
}
