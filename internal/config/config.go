// Package config loads P-Mode profiles for the AS4 message service handler.
//
// Profiles are read from a YAML file with support for environment variable
// expansion (${VAR} or $VAR syntax), so credentials such as UsernameToken
// passwords can be injected at runtime.
//
// # Example Profile
//
//	pmodes:
//	  - id: order-push
//	    mep: http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/oneWay
//	    mepBinding: http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/push
//	    service: urn:example:orders
//	    action: submitOrder
//	    initiator:
//	      id: sender-ap
//	      role: http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/initiator
//	    securityProfile: domibus
//	    legs:
//	      - protocol:
//	          address: https://receiver.example.com/as4
//	        security:
//	          profile: domibus
//	          usernameToken:
//	            username: orders
//	            password: ${ORDERS_PASSWORD}
//	            digest: true
//	        reliability:
//	          atLeastOnce:
//	            contract: true
//	            replyPattern: Response
//	          correlation:
//	            - eb:UserMessage/eb:CollaborationInfo/eb:ConversationId
//	        receptionAwareness:
//	          enabled: true
//	          retry:
//	            enabled: true
//	            maxRetries: 5
//	            interval: 2m
//	            multiplier: 1.5
//
// Boolean leg parameters that are omitted stay undefined and resolve to the
// protocol default when read. A security flag set by the profile can be
// cleared again with an explicit "undefined".
//
// See [Load] for loading a profile from a file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-as4-pmode/pkg/pmode"
)

// Config is the root configuration structure
type Config struct {
	PModes []PModeConfig `yaml:"pmodes"`
}

// PModeConfig describes one processing mode
type PModeConfig struct {
	ID              string      `yaml:"id"`
	Agreement       string      `yaml:"agreement"`
	AgreementType   string      `yaml:"agreementType"`
	MEP             string      `yaml:"mep"`
	MEPBinding      string      `yaml:"mepBinding"`
	Initiator       PartyConfig `yaml:"initiator"`
	Responder       PartyConfig `yaml:"responder"`
	Service         string      `yaml:"service"`
	Action          string      `yaml:"action"`
	Namespace       string      `yaml:"namespace"`
	SecurityProfile string      `yaml:"securityProfile"`
	Legs            []LegConfig `yaml:"legs"`
}

// PartyConfig describes an initiator or responder
type PartyConfig struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
	Role string `yaml:"role"`
}

// LegConfig describes one leg of a processing mode
type LegConfig struct {
	Protocol struct {
		Address     string `yaml:"address"`
		SOAPVersion string `yaml:"soapVersion"`
	} `yaml:"protocol"`
	BusinessInfo struct {
		Service     string `yaml:"service"`
		ServiceType string `yaml:"serviceType"`
		Action      string `yaml:"action"`
		MPC         string `yaml:"mpc"`
		Properties  []struct {
			Name  string `yaml:"name"`
			Value string `yaml:"value"`
			Type  string `yaml:"type"`
		} `yaml:"properties"`
	} `yaml:"businessInfo"`
	ErrorHandling struct {
		AsResponse                     bool   `yaml:"asResponse"`
		ReceiverErrorsTo               string `yaml:"receiverErrorsTo"`
		SenderErrorsTo                 string `yaml:"senderErrorsTo"`
		ProcessErrorNotifyProducer     bool   `yaml:"processErrorNotifyProducer"`
		MissingReceiptNotifyProducer   bool   `yaml:"missingReceiptNotifyProducer"`
		DeliveryFailuresNotifyProducer bool   `yaml:"deliveryFailuresNotifyProducer"`
	} `yaml:"errorHandling"`
	Security           SecurityConfig            `yaml:"security"`
	Reliability        ReliabilityConfig         `yaml:"reliability"`
	ReceptionAwareness *ReceptionAwarenessConfig `yaml:"receptionAwareness"`
	PayloadService     struct {
		CompressionType string `yaml:"compressionType"`
	} `yaml:"payloadService"`
}

// SecurityConfig holds PMode[1].Security. When Profile is set, its
// algorithm suite is applied first and the remaining fields override it.
// Flags are pointers so that an explicit "undefined" clears a value the
// profile set, while an omitted flag keeps it.
type SecurityConfig struct {
	Profile    string `yaml:"profile"`
	WSSVersion string `yaml:"wssVersion"`
	X509       struct {
		Sign                  []string `yaml:"sign"`
		SignatureCertificate  string   `yaml:"signatureCertificate"`
		SignatureHashFunction string   `yaml:"signatureHashFunction"`
		SignatureAlgorithm    string   `yaml:"signatureAlgorithm"`
		Encrypt               []string `yaml:"encrypt"`
		EncryptionCertificate string   `yaml:"encryptionCertificate"`
		EncryptionAlgorithm   string   `yaml:"encryptionAlgorithm"`
		MinimumStrength       *int     `yaml:"minimumStrength"`
	} `yaml:"x509"`
	UsernameToken struct {
		Username string          `yaml:"username"`
		Password string          `yaml:"password"`
		Digest   *pmode.TriState `yaml:"digest"`
		Nonce    *pmode.TriState `yaml:"nonce"`
		Created  *pmode.TriState `yaml:"created"`
	} `yaml:"usernameToken"`
	PModeAuthorize          *pmode.TriState `yaml:"pmodeAuthorize"`
	SendReceipt             *pmode.TriState `yaml:"sendReceipt"`
	SendReceiptReplyPattern string          `yaml:"sendReceiptReplyPattern"`
}

// ReliabilityConfig holds PMode[1].Reliability
type ReliabilityConfig struct {
	AtLeastOnce struct {
		Contract            pmode.TriState `yaml:"contract"`
		AckOnDelivery       pmode.TriState `yaml:"ackOnDelivery"`
		ContractAcksTo      string         `yaml:"contractAcksTo"`
		ContractAckResponse pmode.TriState `yaml:"contractAckResponse"`
		ReplyPattern        string         `yaml:"replyPattern"`
	} `yaml:"atLeastOnce"`
	AtMostOnce struct {
		Contract pmode.TriState `yaml:"contract"`
	} `yaml:"atMostOnce"`
	InOrder struct {
		Contract pmode.TriState `yaml:"contract"`
	} `yaml:"inOrder"`
	StartGroup     pmode.TriState `yaml:"startGroup"`
	Correlation    []string       `yaml:"correlation"`
	TerminateGroup pmode.TriState `yaml:"terminateGroup"`
}

// ReceptionAwarenessConfig holds PMode[1].ReceptionAwareness. A leg without
// this section gets the package defaults; durations use Go syntax ("5m").
type ReceptionAwarenessConfig struct {
	Enabled bool `yaml:"enabled"`
	Retry   struct {
		Enabled    bool          `yaml:"enabled"`
		MaxRetries int           `yaml:"maxRetries"`
		Interval   time.Duration `yaml:"interval"`
		Multiplier float64       `yaml:"multiplier"`
	} `yaml:"retry"`
	DuplicateDetection struct {
		Enabled      bool          `yaml:"enabled"`
		HashFunction string        `yaml:"hashFunction"`
		Window       time.Duration `yaml:"window"`
	} `yaml:"duplicateDetection"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse reads configuration from YAML data
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	for i := range c.PModes {
		pm := &c.PModes[i]
		if pm.MEP == "" {
			pm.MEP = pmode.MEPOneWay
		}
		if pm.MEPBinding == "" {
			pm.MEPBinding = pmode.MEPBindingPush
		}
		if pm.Namespace == "" {
			pm.Namespace = string(pmode.NamespaceEBMS3)
		}
		for j := range pm.Legs {
			leg := &pm.Legs[j]
			if leg.Protocol.SOAPVersion == "" {
				leg.Protocol.SOAPVersion = "1.2"
			}
			if leg.Security.Profile == "" {
				leg.Security.Profile = pm.SecurityProfile
			}
		}
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool)
	for i, pm := range c.PModes {
		if pm.ID != "" {
			if seen[pm.ID] {
				return fmt.Errorf("pmodes[%d]: duplicate id '%s'", i, pm.ID)
			}
			seen[pm.ID] = true
		}
		if len(pm.Legs) == 0 {
			return fmt.Errorf("pmodes[%d]: at least one leg is required", i)
		}
		switch pmode.NamespaceVersion(pm.Namespace) {
		case pmode.NamespaceEBMS3, pmode.NamespaceAS4v2:
		default:
			return fmt.Errorf("pmodes[%d].namespace: unknown namespace '%s'", i, pm.Namespace)
		}
		for j, leg := range pm.Legs {
			if err := leg.validate(); err != nil {
				return fmt.Errorf("pmodes[%d].legs[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

func (l *LegConfig) validate() error {
	switch pmode.SecurityProfile(l.Security.Profile) {
	case "", pmode.ProfileAS4v2, pmode.ProfileDomibus, pmode.ProfileEDelivery, pmode.ProfileCustom:
	default:
		return fmt.Errorf("security.profile must be 'as4v2', 'domibus', 'edelivery' or 'custom', got '%s'", l.Security.Profile)
	}
	if !pmode.ReceiptReplyPattern(l.Security.SendReceiptReplyPattern).IsValid() {
		return fmt.Errorf("security.sendReceiptReplyPattern must be 'callback' or 'response', got '%s'", l.Security.SendReceiptReplyPattern)
	}
	if ms := l.Security.X509.MinimumStrength; ms != nil && *ms <= 0 {
		return fmt.Errorf("security.x509.minimumStrength must be positive, got %d", *ms)
	}
	if !pmode.AckReplyPattern(l.Reliability.AtLeastOnce.ReplyPattern).IsValid() {
		return fmt.Errorf("reliability.atLeastOnce.replyPattern must be 'Response', 'Callback' or 'Poll', got '%s'", l.Reliability.AtLeastOnce.ReplyPattern)
	}
	if ra := l.ReceptionAwareness; ra != nil {
		if ra.Retry.MaxRetries < 0 {
			return fmt.Errorf("receptionAwareness.retry.maxRetries must not be negative, got %d", ra.Retry.MaxRetries)
		}
		if ra.Retry.Interval < 0 {
			return fmt.Errorf("receptionAwareness.retry.interval must not be negative, got %s", ra.Retry.Interval)
		}
		if !(ra.Retry.Multiplier >= 0) {
			return fmt.Errorf("receptionAwareness.retry.multiplier must not be negative, got %v", ra.Retry.Multiplier)
		}
		if ra.DuplicateDetection.Window < 0 {
			return fmt.Errorf("receptionAwareness.duplicateDetection.window must not be negative, got %s", ra.DuplicateDetection.Window)
		}
	}
	for k, key := range l.Reliability.Correlation {
		if key == "" {
			return fmt.Errorf("reliability.correlation[%d] is empty", k)
		}
	}
	return nil
}
