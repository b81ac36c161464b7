package dto

import "github.com/starproof/dashboard-api/internal/models"

type ConnectWalletRequest struct {
	Address  string `json:"address"`
	WalletID string `json:"wallet_id,omitempty"`
}

type CreateCredentialRequest struct {
	Holder        string                `json:"holder"`
	Category      string                `json:"category"`
	Description   string                `json:"description,omitempty"`
	ExpiresAt     string                `json:"expires_at"`
	Claims        map[string]any        `json:"claims,omitempty"`
	Schema        string                `json:"schema,omitempty"`
	Customization *models.Customization `json:"customization,omitempty"`
}

type UpdateCustomizationRequest struct {
	Gradient string `json:"gradient,omitempty"`
	Logo     string `json:"logo,omitempty"`
	Template string `json:"template,omitempty"`
}
