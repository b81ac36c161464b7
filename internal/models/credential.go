package models

// Credential categories offered by the dashboard.
const (
	CategoryIdentity      = "Identity"
	CategoryEducation     = "Education"
	CategoryCertification = "Certification"
	CategoryLicense       = "License"
	CategoryMembership    = "Membership"
	CategoryAchievement   = "Achievement"
)

var Categories = []string{
	CategoryIdentity,
	CategoryEducation,
	CategoryCertification,
	CategoryLicense,
	CategoryMembership,
	CategoryAchievement,
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Credential is one issuance result, immutable once created.
// TransactionHash is either a 64-char lowercase hex Stellar tx hash or a
// mock_tx_* synthetic value when the backend did not reach the chain.
type Credential struct {
	ID              string         `json:"id"`
	Holder          string         `json:"holder"`
	Issuer          string         `json:"issuer"`
	Category        string         `json:"category"`
	Description     string         `json:"description"`
	IssuedAt        string         `json:"issuedAt"`
	ExpiresAt       string         `json:"expiresAt"`
	Claims          map[string]any `json:"claims"`
	Schema          string         `json:"schema,omitempty"`
	ContractAddress string         `json:"contractAddress"`
	TransactionHash string         `json:"transactionHash"`
	VerificationURL string         `json:"verificationUrl"`
}

// Customization carries presentation-only choices; it has no semantic
// weight for verification.
type Customization struct {
	Gradient string `json:"gradient,omitempty"`
	Logo     string `json:"logo,omitempty"`
	Template string `json:"template,omitempty"`
}

// StoredCredential is the cache record: the credential plus the locally
// generated verification QR image and the customization it was created with.
type StoredCredential struct {
	Credential
	QRCode        string         `json:"qrCode,omitempty"` // PNG data URL
	Customization *Customization `json:"customization,omitempty"`
}
