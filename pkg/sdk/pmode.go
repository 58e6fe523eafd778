// Package sdk provides Swedish SDK (Säker Digital Kommunikation) specific functionality.
// It includes pre-configured P-Modes, property builders, and SDK-specific constants.
package sdk

import (
	"fmt"

	"github.com/sirosfoundation/go-as4-pmode/pkg/pmode"
)

// SDK Constants
const (
	// PartyType is the party type for SDK accesspoints
	PartyType = "urn:fdc:digg.se:edelivery:transportprofile:as4:partytype:ap"
	// ParticipantPartyType is the party type for SDK participants (originalSender/finalRecipient)
	ParticipantPartyType = "urn:fdc:digg.se:edelivery:transportprofile:as4:partytype:participant"
	// APRole is the role for accesspoints
	APRole = "urn:fdc:digg.se:edelivery:transportprofile:as4:role:ap"
	// ServiceType is the default service type
	ServiceType = "urn:fdc:digg.se:edelivery:process"
	// TransportProfile is the SDK transport profile identifier
	TransportProfile = "digg-transport-as4-v1_2"
	// ParticipantIDScheme is the participant identifier scheme
	ParticipantIDScheme = "iso6523-actorid-upis"
)

// SDKPModeOptions configures SDK P-Mode creation
type SDKPModeOptions struct {
	// PModeID is the unique identifier for this P-Mode
	PModeID string
	// APPartyID is this accesspoint's party identifier
	APPartyID string
	// PeerPartyID is the receiving accesspoint's party identifier
	PeerPartyID string
	// Service is the business service identifier
	Service string
	// Action is the business action
	Action string
	// EncryptPayloads enables encryption of payloads
	EncryptPayloads bool
	// SignAttachments enables signing of MIME attachments
	SignAttachments bool
	// Properties are added to the leg's business info
	Properties []pmode.Property
}

// NewSDKPMode creates a P-Mode configured for Swedish SDK federation
func NewSDKPMode(opts SDKPModeOptions) *pmode.ProcessingMode {
	// Set defaults
	if opts.PModeID == "" {
		opts.PModeID = "sdk-default"
	}
	if opts.Action == "" {
		opts.Action = "submit"
	}

	leg := pmode.Leg{
		Protocol: pmode.Protocol{
			SOAPVersion: "1.2",
		},
		BusinessInfo: pmode.BusinessInfo{
			Service: pmode.Service{
				Value: opts.Service,
				Type:  ServiceType,
			},
			Action:     opts.Action,
			Properties: append([]pmode.Property(nil), opts.Properties...),
		},
		ReceptionAwareness: pmode.DefaultReceptionAwareness(),
		PayloadService: pmode.PayloadService{
			CompressionType: "application/gzip",
		},
	}

	sec := &leg.Security
	sec.SetWSSVersion("1.1")
	sign := []string{pmode.ElementSOAPBody, pmode.ElementMessaging}
	if opts.SignAttachments {
		sign = append(sign, pmode.AttachmentsAll)
	}
	sec.SetX509Sign(sign)
	sec.SetX509SignatureAlgorithm(pmode.AlgoRSASHA256)
	sec.SetX509SignatureHashFunction(pmode.HashSHA256)
	if opts.EncryptPayloads {
		sec.SetX509EncryptionEncrypt([]string{pmode.AttachmentsAll})
		sec.SetX509EncryptionAlgorithm(pmode.DataAlgoAES128GCM)
		sec.SetX509EncryptionMinimumStrength(128)
	}
	sec.SetSendReceipt(true)
	sec.SetSendReceiptReplyPattern(pmode.ReceiptCallback)

	// SDK relies on AS4 reception awareness: retries with duplicate
	// elimination, correlated per conversation.
	rel := &leg.Reliability
	rel.SetAtLeastOnceContract(true)
	rel.SetAtMostOnceContract(true)
	rel.SetAtLeastOnceReplyPattern(pmode.AckReplyCallback)
	rel.SetCorrelation([]string{pmode.CorrelationConvo})

	return &pmode.ProcessingMode{
		ID: opts.PModeID,
		Agreement: pmode.Agreement{
			Name:  TransportProfile,
			Pmode: opts.PModeID,
		},
		MEP:              pmode.MEPOneWay,
		MEPBinding:       pmode.MEPBindingPush,
		Initiator:        APParty(opts.APPartyID),
		Responder:        APParty(opts.PeerPartyID),
		Service:          opts.Service,
		Action:           opts.Action,
		Legs:             []pmode.Leg{leg},
		SecurityProfile:  pmode.ProfileEDelivery,
		NamespaceVersion: pmode.NamespaceEBMS3,
	}
}

// Validate checks the party identifiers and the originalSender and
// finalRecipient properties.
func (o SDKPModeOptions) Validate() error {
	if o.APPartyID == "" {
		return fmt.Errorf("AP party ID is required")
	}
	for _, p := range o.Properties {
		if p.Type != ParticipantPartyType {
			continue
		}
		if err := ValidateParticipantID(p.Value); err != nil {
			return fmt.Errorf("property %s: %w", p.Name, err)
		}
	}
	return nil
}

// APParty returns an accesspoint party with the SDK party type and role.
// An empty partyID yields the zero Party.
func APParty(partyID string) pmode.Party {
	if partyID == "" {
		return pmode.Party{}
	}
	return pmode.Party{
		ID:   partyID,
		Type: PartyType,
		Role: APRole,
	}
}

// PropertyBuilder helps build SDK message properties
type PropertyBuilder struct {
	properties []pmode.Property
}

// NewPropertyBuilder creates a new property builder
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		properties: make([]pmode.Property, 0),
	}
}

// WithOriginalSender sets the originalSender property
func (b *PropertyBuilder) WithOriginalSender(participantID string) *PropertyBuilder {
	b.properties = append(b.properties, pmode.Property{
		Name:  "originalSender",
		Type:  ParticipantPartyType,
		Value: participantID,
	})
	return b
}

// WithFinalRecipient sets the finalRecipient property
func (b *PropertyBuilder) WithFinalRecipient(participantID string) *PropertyBuilder {
	b.properties = append(b.properties, pmode.Property{
		Name:  "finalRecipient",
		Type:  ParticipantPartyType,
		Value: participantID,
	})
	return b
}

// WithProperty adds a custom property
func (b *PropertyBuilder) WithProperty(name, propType, value string) *PropertyBuilder {
	b.properties = append(b.properties, pmode.Property{
		Name:  name,
		Type:  propType,
		Value: value,
	})
	return b
}

// Build returns the message properties
func (b *PropertyBuilder) Build() []pmode.Property {
	return b.properties
}

// ValidateParticipantID validates an SDK participant identifier
func ValidateParticipantID(id string) error {
	// SDK participant IDs should follow format: <scheme>:<identifier>
	// e.g., 0203:org-number for Swedish organizations
	if len(id) < 5 { // Minimum: "0203:x"
		return fmt.Errorf("participant ID too short: %s", id)
	}
	return nil
}

// FormatParticipantID formats a participant ID with the standard scheme
func FormatParticipantID(orgNumber string) string {
	return ParticipantIDScheme + ":" + orgNumber
}
