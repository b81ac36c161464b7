package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored row, one per wallet address.
type User struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	APIKey        *string   `json:"api_key,omitempty"`
	APIKeyHash    *string   `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserProfile is the external view of a user.
type UserProfile struct {
	WalletAddress string    `json:"wallet_address"`
	HasAPIKey     bool      `json:"has_api_key"`
	APIKey        *string   `json:"api_key,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Profile derives the profile view; has_api_key holds iff the key is
// present and non-empty.
func (u *User) Profile() *UserProfile {
	p := &UserProfile{
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
	}
	if u.APIKey != nil && *u.APIKey != "" {
		p.HasAPIKey = true
		p.APIKey = u.APIKey
	}
	return p
}
