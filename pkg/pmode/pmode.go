// Package pmode implements Processing Mode configuration for AS4

package pmode

import (
	"slices"
)

// Algorithm suite profiles for interoperability
type SecurityProfile string

const (
	// ProfileAS4v2 uses modern elliptic curve cryptography (Ed25519/X25519)
	ProfileAS4v2 SecurityProfile = "as4v2"
	// ProfileDomibus uses traditional RSA/AES for compatibility with Domibus
	ProfileDomibus SecurityProfile = "domibus"
	// ProfileEDelivery uses EU eDelivery standard algorithms
	ProfileEDelivery SecurityProfile = "edelivery"
	// ProfileCustom allows full custom algorithm configuration
	ProfileCustom SecurityProfile = "custom"
)

// Signature algorithms
const (
	AlgoEd25519     = "http://www.w3.org/2021/04/xmldsig-more#eddsa-ed25519"
	AlgoRSASHA256   = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	AlgoRSASHA384   = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha384"
	AlgoRSASHA512   = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha512"
	AlgoECDSASHA256 = "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha256"
)

// Hash algorithms
const (
	HashSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"
	HashSHA384 = "http://www.w3.org/2001/04/xmlenc#sha384"
	HashSHA512 = "http://www.w3.org/2001/04/xmlenc#sha512"
)

// Data encryption algorithms
const (
	DataAlgoAES128GCM = "http://www.w3.org/2009/xmlenc11#aes128-gcm"
	DataAlgoAES256GCM = "http://www.w3.org/2009/xmlenc11#aes256-gcm"
	DataAlgoAES128CBC = "http://www.w3.org/2001/04/xmlenc#aes128-cbc"
	DataAlgoAES256CBC = "http://www.w3.org/2001/04/xmlenc#aes256-cbc"
)

// Namespace versions for message format
type NamespaceVersion string

const (
	// NamespaceEBMS3 is the ebXML Messaging 3.0 namespace (AS4 Profile 1.0)
	NamespaceEBMS3 NamespaceVersion = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/"
	// NamespaceAS4v2 is the AS4 2.0 namespace
	NamespaceAS4v2 NamespaceVersion = "http://docs.oasis-open.org/ebxml-msg/as4/v2.0/ns/core/202X/"
)

// MEP and binding URIs
const (
	MEPOneWay        = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/oneWay"
	MEPTwoWay        = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/twoWay"
	MEPBindingPush   = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/push"
	MEPBindingPull   = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/pull"
	MEPBindingSync   = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/sync"
	CorrelationConvo = "eb:UserMessage/eb:CollaborationInfo/eb:ConversationId"
)

// ProcessingMode represents an AS4 Processing Mode configuration
type ProcessingMode struct {
	ID string

	// General parameters
	Agreement  Agreement
	MEP        string // MEP URI
	MEPBinding string // MEP binding URI

	// Parties; FindPMode matches their IDs when set
	Initiator Party
	Responder Party

	// Business info
	Service string
	Action  string

	// Legs in exchange order; a one-way MEP has a single leg
	Legs []Leg

	// Message format version
	NamespaceVersion NamespaceVersion // ebMS3 or AS4v2

	// Security profile (determines default algorithm suite)
	SecurityProfile SecurityProfile
}

// Leg represents one leg of a message exchange.
//
// A leg owns its security, reliability and reception awareness
// configuration by value. Copying
// a Leg with plain assignment still shares list storage; use Clone when
// handing a leg to another P-Mode.
type Leg struct {
	Protocol       Protocol
	BusinessInfo   BusinessInfo
	ErrorHandling  ErrorHandling
	Security           SecurityLegConfig
	Reliability        ReliabilityLegConfig
	ReceptionAwareness ReceptionAwareness
	PayloadService     PayloadService
}

// Party identifies an exchange party and the role it plays
type Party struct {
	ID   string
	Type string // party ID type URI
	Role string
}

// Agreement contains agreement reference information
type Agreement struct {
	Name  string
	Type  string
	Pmode string
}

// Protocol contains protocol parameters
type Protocol struct {
	Address     string
	SOAPVersion string // "1.2" for AS4
}

// BusinessInfo contains business-level message information
type BusinessInfo struct {
	Service    Service
	Action     string
	MPC        string // Message Partition Channel (for Pull)
	Properties []Property
}

// Service represents a service
type Service struct {
	Value string
	Type  string
}

// Property represents a message or part property
type Property struct {
	Name  string
	Value string
	Type  string
}

// ErrorHandling configures error reporting
type ErrorHandling struct {
	AsResponse                     bool
	ReceiverErrorsTo               string
	SenderErrorsTo                 string
	ProcessErrorNotifyProducer     bool
	MissingReceiptNotifyProducer   bool
	DeliveryFailuresNotifyProducer bool
}

// PayloadService contains payload handling configuration
type PayloadService struct {
	CompressionType string // "application/gzip" or empty
}

// Clone returns a deep copy of the leg.
func (l *Leg) Clone() Leg {
	c := *l
	c.BusinessInfo.Properties = slices.Clone(l.BusinessInfo.Properties)
	c.Security = l.Security.Clone()
	c.Reliability = l.Reliability.Clone()
	return c
}

// Equal reports whether two legs are interchangeable.
func (l *Leg) Equal(o *Leg) bool {
	if l == o {
		return true
	}
	if l == nil || o == nil {
		return false
	}
	return l.Protocol == o.Protocol &&
		l.BusinessInfo.Service == o.BusinessInfo.Service &&
		l.BusinessInfo.Action == o.BusinessInfo.Action &&
		l.BusinessInfo.MPC == o.BusinessInfo.MPC &&
		slices.Equal(l.BusinessInfo.Properties, o.BusinessInfo.Properties) &&
		l.ErrorHandling == o.ErrorHandling &&
		l.PayloadService == o.PayloadService &&
		l.ReceptionAwareness == o.ReceptionAwareness &&
		l.Security.Equal(&o.Security) &&
		l.Reliability.Equal(&o.Reliability)
}

// Hash returns a hash consistent with Equal.
func (l *Leg) Hash() uint64 {
	h := newFieldHasher()
	h.writeString(l.Protocol.Address)
	h.writeString(l.Protocol.SOAPVersion)
	h.writeString(l.BusinessInfo.Service.Value)
	h.writeString(l.BusinessInfo.Service.Type)
	h.writeString(l.BusinessInfo.Action)
	h.writeString(l.BusinessInfo.MPC)
	h.writeUint64(uint64(len(l.BusinessInfo.Properties)))
	for _, p := range l.BusinessInfo.Properties {
		h.writeString(p.Name)
		h.writeString(p.Value)
		h.writeString(p.Type)
	}
	eh := l.ErrorHandling
	for _, b := range []bool{eh.AsResponse, eh.ProcessErrorNotifyProducer, eh.MissingReceiptNotifyProducer, eh.DeliveryFailuresNotifyProducer} {
		h.writeBool(b)
	}
	h.writeString(eh.ReceiverErrorsTo)
	h.writeString(eh.SenderErrorsTo)
	h.writeString(l.PayloadService.CompressionType)
	l.ReceptionAwareness.writeHash(h)
	l.Security.writeHash(h)
	l.Reliability.writeHash(h)
	return h.sum()
}

// Leg returns the leg at index i (0-based), or nil.
func (pm *ProcessingMode) Leg(i int) *Leg {
	if i < 0 || i >= len(pm.Legs) {
		return nil
	}
	return &pm.Legs[i]
}

// DefaultPMode creates a default P-Mode for testing
func DefaultPMode() *ProcessingMode {
	leg := Leg{
		Protocol: Protocol{
			Address:     "https://receiver.example.com/as4",
			SOAPVersion: "1.2",
		},
		Security:           DefaultSecurityLeg(ProfileDomibus),
		ReceptionAwareness: DefaultReceptionAwareness(),
		PayloadService: PayloadService{
			CompressionType: "application/gzip",
		},
	}
	leg.Reliability.SetAtLeastOnceContract(true)
	leg.Reliability.SetAtMostOnceContract(true)
	leg.Reliability.SetAtLeastOnceReplyPattern(AckReplyResponse)
	leg.Reliability.SetCorrelation([]string{CorrelationConvo})

	return &ProcessingMode{
		ID:               "default-pmode",
		MEP:              MEPOneWay,
		MEPBinding:       MEPBindingPush,
		Legs:             []Leg{leg},
		NamespaceVersion: NamespaceEBMS3, // Default to ebMS3 for compatibility
		SecurityProfile:  ProfileDomibus, // Default to Domibus profile
	}
}

// GetNamespaceURI returns the namespace URI for the configured version
func (pm *ProcessingMode) GetNamespaceURI() string {
	if pm.NamespaceVersion == "" {
		// Default to ebMS3 for compatibility
		return string(NamespaceEBMS3)
	}
	return string(pm.NamespaceVersion)
}

// IsEBMS3 returns true if using ebMS 3.0 namespace
func (pm *ProcessingMode) IsEBMS3() bool {
	return pm.NamespaceVersion == NamespaceEBMS3 || pm.NamespaceVersion == ""
}

// IsAS4v2 returns true if using AS4 2.0 namespace
func (pm *ProcessingMode) IsAS4v2() bool {
	return pm.NamespaceVersion == NamespaceAS4v2
}
